package model

import "time"

// 付款申请状态：pending -> approved/rejected（管理员），approved -> paid（验签成功）
const (
	PaymentStatusPending  = "pending"
	PaymentStatusApproved = "approved"
	PaymentStatusRejected = "rejected"
	PaymentStatusPaid     = "paid"
)

type PaymentRequest struct {
	ID              uint64    `gorm:"primaryKey" json:"id"`
	UserID          uint64    `gorm:"not null;index" json:"userId"`
	User            *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Amount          float64   `gorm:"not null" json:"amount"`
	Description     string    `gorm:"type:text;not null" json:"description"`
	Status          string    `gorm:"size:16;not null;default:pending;index" json:"status"`
	AdminResponse   string    `gorm:"type:text" json:"adminResponse"`
	RazorpayOrderID string    `gorm:"size:100" json:"razorpayOrderId"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
