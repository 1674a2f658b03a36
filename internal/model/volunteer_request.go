package model

import "time"

// 志愿者申请状态
const (
	VolunteerStatusPending  = "pending"
	VolunteerStatusAccepted = "accepted"
	VolunteerStatusRejected = "rejected"
)

// VolunteerRequestTTL 申请可见期：创建后 14 天过期，管理员响应时重置
const VolunteerRequestTTL = 14 * 24 * time.Hour

type VolunteerRequest struct {
	ID              uint64    `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"size:200;not null" json:"title"`
	Description     string    `gorm:"type:text;not null" json:"description"`
	UserID          uint64    `gorm:"not null;index:idx_user_status" json:"userId"`
	User            *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Status          string    `gorm:"size:16;not null;default:pending;index:idx_user_status" json:"status"`
	ResponseMessage string    `gorm:"type:text" json:"responseMessage"`
	ExpiresAt       time.Time `gorm:"not null;index" json:"expiresAt"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
