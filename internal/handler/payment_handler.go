package handler

import (
	"net/http"

	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/service"
	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type PaymentHandler struct {
	svc *service.PaymentService
	hub *ws.Hub
}

type PaymentCreateReq struct {
	Amount      float64 `json:"amount" binding:"required"`
	Description string  `json:"description" binding:"required"`
}

type PaymentRespondReq struct {
	Status        string `json:"status" binding:"required"`
	AdminResponse string `json:"adminResponse"`
}

// VerifyReq 字段名与 Razorpay checkout 回调保持一致
type VerifyReq struct {
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
	PaymentRequestID  uint64 `json:"paymentRequestId" binding:"required"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func NewPaymentHandler(svc *service.PaymentService, hub *ws.Hub) *PaymentHandler {
	return &PaymentHandler{svc: svc, hub: hub}
}

// Create 提交付款申请
func (h *PaymentHandler) Create(c *gin.Context) {
	var req PaymentCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	pr, err := h.svc.Create(c.Request.Context(), currentUserID(c), req.Amount, req.Description)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, pr)
}

// ListAll 管理员列表，支持 ?status= 过滤
func (h *PaymentHandler) ListAll(c *gin.Context) {
	list, err := h.svc.ListAll(c.Request.Context(), c.Query("status"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *PaymentHandler) MyRequests(c *gin.Context) {
	list, err := h.svc.MyRequests(c.Request.Context(), currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Respond 管理员审批付款申请，approved 时创建网关订单
func (h *PaymentHandler) Respond(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	var req PaymentRespondReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	pr, err := h.svc.Respond(c.Request.Context(), id, req.Status, req.AdminResponse)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, pr)
}

// CheckoutQR 已批准申请的收款链接二维码
func (h *PaymentHandler) CheckoutQR(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	png, err := h.svc.CheckoutQR(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// Verify 支付完成回验，成功后推送到实时看板
func (h *PaymentHandler) Verify(c *gin.Context) {
	var req VerifyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	txn, err := h.svc.Verify(
		c.Request.Context(),
		currentUserID(c),
		req.RazorpayPaymentID,
		req.RazorpayOrderID,
		req.RazorpaySignature,
		req.PaymentRequestID,
	)
	if err != nil {
		fail(c, err)
		return
	}

	if h.hub != nil {
		h.hub.Broadcast(gin.H{"event": "transaction.recorded", "transaction": txn})
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment successful", "transaction": txn})
}

func (h *PaymentHandler) MyTransactions(c *gin.Context) {
	list, err := h.svc.MyTransactions(c.Request.Context(), currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *PaymentHandler) AllTransactions(c *gin.Context) {
	list, err := h.svc.AllTransactions(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// TransactionFeed 管理端 websocket 实时交易流
func (h *PaymentHandler) TransactionFeed(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	h.hub.Add(conn)

	// 读循环只为感知断开
	go func() {
		defer h.hub.Remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
