package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

var (
	ErrOrderCreateFailed  = errors.New("gateway order create failed")
	ErrPaymentFetchFailed = errors.New("gateway payment fetch failed")
)

// Payment 网关返回的支付详情，金额为最小币种单位（paise）
type Payment struct {
	ID        string
	Amount    int64
	Currency  string
	Status    string
	Method    string
	CreatedAt int64 // 网关侧时间戳（秒）
	Email     string
}

// Client 支付网关适配层，service 只依赖这个接口
type Client interface {
	// CreateOrder 创建外部订单，金额传最小币种单位，receipt 用业务侧申请 ID
	CreateOrder(amountMinor int64, currency, receipt string) (string, error)
	// FetchPayment 按支付 ID 拉取权威支付详情
	FetchPayment(paymentID string) (*Payment, error)
}

// RazorpayClient 基于官方 SDK 的实现
type RazorpayClient struct {
	api       *razorpay.Client
	keySecret string
}

func NewRazorpayClient(keyID, keySecret string) *RazorpayClient {
	return &RazorpayClient{
		api:       razorpay.NewClient(keyID, keySecret),
		keySecret: keySecret,
	}
}

func (c *RazorpayClient) CreateOrder(amountMinor int64, currency, receipt string) (string, error) {
	data := map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
	}
	body, err := c.api.Order.Create(data, nil)
	if err != nil {
		return "", ErrOrderCreateFailed
	}
	orderID, ok := body["id"].(string)
	if !ok || orderID == "" {
		return "", ErrOrderCreateFailed
	}
	return orderID, nil
}

func (c *RazorpayClient) FetchPayment(paymentID string) (*Payment, error) {
	body, err := c.api.Payment.Fetch(paymentID, nil, nil)
	if err != nil {
		return nil, ErrPaymentFetchFailed
	}
	return &Payment{
		ID:        asString(body["id"]),
		Amount:    asInt64(body["amount"]),
		Currency:  asString(body["currency"]),
		Status:    asString(body["status"]),
		Method:    asString(body["method"]),
		CreatedAt: asInt64(body["created_at"]),
		Email:     asString(body["email"]),
	}, nil
}

func (c *RazorpayClient) KeySecret() string { return c.keySecret }

// Signature 计算 orderId|paymentId 的 HMAC-SHA256，hex 编码
func Signature(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature 常数时间比较，防时序侧信道
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	expected := Signature(orderID, paymentID, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// SDK 返回的是 map[string]interface{}，数字经过 encoding/json 变成 float64
func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	case string:
		var out int64
		fmt.Sscan(n, &out)
		return out
	default:
		return 0
	}
}
