package model

import "time"

// 交易状态
const (
	TransactionStatusSuccess = "success"
	TransactionStatusFailed  = "failed"
)

// Receipt 网关侧支付凭据快照（金额已换算回主币种单位）
type Receipt struct {
	PaymentID string    `gorm:"size:100" json:"paymentId"`
	Amount    float64   `json:"amount"`
	Currency  string    `gorm:"size:8" json:"currency"`
	Status    string    `gorm:"size:32" json:"status"`
	Method    string    `gorm:"size:32" json:"method"`
	CreatedAt time.Time `json:"createdAt"`
	Email     string    `gorm:"size:64" json:"email"`
}

// Transaction 创建后不可变；razorpay_payment_id 全局唯一，是防止同一笔外部支付被重复入账的唯一防线
type Transaction struct {
	ID                uint64          `gorm:"primaryKey" json:"id"`
	UserID            uint64          `gorm:"not null;index" json:"userId"`
	User              *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	PaymentRequestID  uint64          `gorm:"not null;index" json:"paymentRequestId"`
	PaymentRequest    *PaymentRequest `gorm:"foreignKey:PaymentRequestID" json:"paymentRequest,omitempty"`
	Amount            float64         `gorm:"not null" json:"amount"`
	RazorpayPaymentID string          `gorm:"uniqueIndex;size:100;not null" json:"razorpayPaymentId"`
	RazorpayOrderID   string          `gorm:"size:100;not null" json:"razorpayOrderId"`
	RazorpaySignature string          `gorm:"size:128;not null" json:"razorpaySignature"`
	Status            string          `gorm:"size:16;not null" json:"status"`
	Receipt           Receipt         `gorm:"embedded;embeddedPrefix:receipt_" json:"receipt"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// PaymentOutbox 交易入账事件监控表，由 relayer 异步投递到 kafka
type PaymentOutbox struct {
	ID            uint64 `gorm:"primaryKey"`
	EventType     string `gorm:"size:32;not null"` // transaction.recorded
	UserID        uint64 `gorm:"not null"`
	TransactionID uint64 `gorm:"not null"`
	Payload       string `gorm:"type:json;not null"`
	Status        int8   `gorm:"not null;default:0;comment:'0=pending,1=sent,2=failed'"`
	Retry         int    `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (PaymentOutbox) TableName() string { return "payment_outbox" }
