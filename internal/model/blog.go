package model

import "time"

type Blog struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	AuthorID  uint64    `gorm:"not null;index:idx_author_time" json:"authorId"`
	Author    *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CreatedAt time.Time `gorm:"index:idx_author_time" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
