package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/gateway"
	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/middleware"
	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/model"
	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubGateway struct{}

func (stubGateway) CreateOrder(amountMinor int64, currency, receipt string) (string, error) {
	return "order_stub_1", nil
}

func (stubGateway) FetchPayment(paymentID string) (*gateway.Payment, error) {
	return &gateway.Payment{ID: paymentID, Amount: 50000, Currency: "INR", Status: "captured"}, nil
}

// newTestRouter 绕过鉴权中间件，直接注入 user_id
func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB, *model.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&model.User{}, &model.PaymentRequest{}, &model.Transaction{}, &model.PaymentOutbox{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	user := &model.User{Username: "caller", Password: "x", Email: "caller@example.com"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	h := NewPaymentHandler(service.NewPaymentService(db, stubGateway{}, "s3cret", "https://rzp.io/l", nil), nil)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserIDKey, user.ID)
		c.Next()
	})
	r.POST("/payments/request", h.Create)
	r.PUT("/payments/request/:id/respond", h.Respond)
	r.POST("/payments/verify", h.Verify)
	return r, db, user
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreatePaymentRequestReturns201(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/payments/request", `{"amount":500,"description":"books"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", w.Code, w.Body.String())
	}
}

func TestRespondInvalidStatusReturns400(t *testing.T) {
	r, _, _ := newTestRouter(t)

	doJSON(t, r, http.MethodPost, "/payments/request", `{"amount":500,"description":"books"}`)
	w := doJSON(t, r, http.MethodPut, "/payments/request/1/respond", `{"status":"paid"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body %s", w.Code, w.Body.String())
	}
}

func TestVerifyBadSignatureReturns400(t *testing.T) {
	r, _, _ := newTestRouter(t)

	doJSON(t, r, http.MethodPost, "/payments/request", `{"amount":500,"description":"books"}`)
	doJSON(t, r, http.MethodPut, "/payments/request/1/respond", `{"status":"approved"}`)

	w := doJSON(t, r, http.MethodPost, "/payments/verify",
		`{"razorpay_payment_id":"pay_1","razorpay_order_id":"order_stub_1","razorpay_signature":"deadbeef","paymentRequestId":1}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body %s", w.Code, w.Body.String())
	}
}

func TestVerifyMissingRequestReturns404(t *testing.T) {
	r, _, _ := newTestRouter(t)

	sig := gateway.Signature("order_stub_1", "pay_1", "s3cret")
	w := doJSON(t, r, http.MethodPost, "/payments/verify",
		fmt.Sprintf(`{"razorpay_payment_id":"pay_1","razorpay_order_id":"order_stub_1","razorpay_signature":"%s","paymentRequestId":42}`, sig))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404, body %s", w.Code, w.Body.String())
	}
}

func TestVerifySuccessReturnsTransaction(t *testing.T) {
	r, db, _ := newTestRouter(t)

	doJSON(t, r, http.MethodPost, "/payments/request", `{"amount":500,"description":"books"}`)
	doJSON(t, r, http.MethodPut, "/payments/request/1/respond", `{"status":"approved"}`)

	sig := gateway.Signature("order_stub_1", "pay_1", "s3cret")
	w := doJSON(t, r, http.MethodPost, "/payments/verify",
		fmt.Sprintf(`{"razorpay_payment_id":"pay_1","razorpay_order_id":"order_stub_1","razorpay_signature":"%s","paymentRequestId":1}`, sig))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}

	var count int64
	if err := db.Model(&model.Transaction{}).Count(&count).Error; err != nil {
		t.Fatalf("count transactions: %v", err)
	}
	if count != 1 {
		t.Fatalf("transactions = %d, want 1", count)
	}
}
