package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"time"

	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/gateway"
	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/model"
	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/pkg"
	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/repository/mysql"

	"gorm.io/gorm"
)

// Currency 网关结算币种，金额换算按 1 元 = 100 最小单位
const Currency = "INR"

type PaymentService struct {
	repo     *mysql.PaymentRequestRepository
	txnRepo  *mysql.TransactionRepository
	userRepo *mysql.UserRepository

	gw          gateway.Client
	keySecret   string
	checkoutURL string
	notify      Notifier
}

func NewPaymentService(db *gorm.DB, gw gateway.Client, keySecret, checkoutURL string, notify Notifier) *PaymentService {
	return &PaymentService{
		repo:        &mysql.PaymentRequestRepository{DB: db},
		txnRepo:     &mysql.TransactionRepository{DB: db},
		userRepo:    &mysql.UserRepository{DB: db},
		gw:          gw,
		keySecret:   keySecret,
		checkoutURL: checkoutURL,
		notify:      notify,
	}
}

func (s *PaymentService) Create(ctx context.Context, userID uint64, amount float64, description string) (*model.PaymentRequest, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if description == "" {
		return nil, errors.New("description required")
	}

	req := &model.PaymentRequest{
		UserID:      userID,
		Amount:      amount,
		Description: description,
		Status:      model.PaymentStatusPending,
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *PaymentService) MyRequests(ctx context.Context, userID uint64) ([]model.PaymentRequest, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *PaymentService) ListAll(ctx context.Context, status string) ([]model.PaymentRequest, error) {
	return s.repo.ListAll(ctx, status)
}

// Respond 管理员审批：只接受 approved/rejected，且只能从 pending 出发。
// 通过审批时在网关创建订单（金额换算为最小币种单位，receipt 用申请自身 ID）。
// 网关订单建成后若保存失败，外部会留下一笔孤儿订单，这里不做补偿。
func (s *PaymentService) Respond(ctx context.Context, id uint64, status, adminResponse string) (*model.PaymentRequest, error) {
	if status != model.PaymentStatusApproved && status != model.PaymentStatusRejected {
		return nil, ErrInvalidStatus
	}

	req, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.Status != model.PaymentStatusPending {
		return nil, ErrAlreadyProcessed
	}

	req.Status = status
	req.AdminResponse = adminResponse

	if status == model.PaymentStatusApproved {
		orderID, err := s.gw.CreateOrder(
			toMinorUnits(req.Amount),
			Currency,
			strconv.FormatUint(req.ID, 10),
		)
		if err != nil {
			return nil, err
		}
		req.RazorpayOrderID = orderID
	}

	if err := s.repo.Save(ctx, req); err != nil {
		return nil, err
	}

	s.notifyOwner(req)
	return req, nil
}

// CheckoutQR 为已批准的申请生成收款链接二维码；仅本人或管理员可取
func (s *PaymentService) CheckoutQR(ctx context.Context, callerID, id uint64) ([]byte, error) {
	req, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.UserID != callerID {
		caller, err := s.userRepo.FindByID(callerID)
		if err != nil {
			return nil, err
		}
		if !caller.IsAdmin {
			return nil, ErrForbidden
		}
	}

	if req.RazorpayOrderID == "" {
		return nil, ErrNotApproved
	}

	link := fmt.Sprintf("%s/%s", s.checkoutURL, req.RazorpayOrderID)
	return pkg.GenerateQRCode(link)
}

// Verify 支付完成后的回验：
//  1. 本地重算 HMAC-SHA256(orderId|paymentId) 并做常数时间比较，不一致直接拒绝，状态不动；
//  2. 申请必须处于 approved，未批准的申请永远到不了 paid；
//  3. 从网关拉取权威支付详情；
//  4. 一个事务内置为 paid 并写入交易（含回执快照）和 outbox 事件。
//     同一外部支付 ID 第二次入账会撞唯一键，整体回滚并返回 Conflict，
//     这就是系统对重复入账的全部防御。
func (s *PaymentService) Verify(ctx context.Context, callerID uint64, paymentID, orderID, signature string, requestID uint64) (*model.Transaction, error) {
	if !gateway.VerifySignature(orderID, paymentID, signature, s.keySecret) {
		return nil, ErrInvalidSignature
	}

	req, err := s.repo.FindByID(ctx, requestID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.Status != model.PaymentStatusApproved {
		return nil, ErrNotApproved
	}

	payment, err := s.gw.FetchPayment(paymentID)
	if err != nil {
		return nil, err
	}

	txn := &model.Transaction{
		UserID:            callerID,
		PaymentRequestID:  req.ID,
		Amount:            fromMinorUnits(payment.Amount),
		RazorpayPaymentID: paymentID,
		RazorpayOrderID:   orderID,
		RazorpaySignature: signature,
		Status:            model.TransactionStatusSuccess,
		Receipt: model.Receipt{
			PaymentID: payment.ID,
			Amount:    fromMinorUnits(payment.Amount),
			Currency:  payment.Currency,
			Status:    payment.Status,
			Method:    payment.Method,
			CreatedAt: time.Unix(payment.CreatedAt, 0),
			Email:     payment.Email,
		},
	}

	if err := s.txnRepo.Record(ctx, req, txn); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicatePayment
		}
		return nil, err
	}
	return txn, nil
}

func (s *PaymentService) MyTransactions(ctx context.Context, userID uint64) ([]model.Transaction, error) {
	return s.txnRepo.ListByUser(ctx, userID)
}

func (s *PaymentService) AllTransactions(ctx context.Context) ([]model.Transaction, error) {
	return s.txnRepo.ListAll(ctx)
}

func (s *PaymentService) notifyOwner(req *model.PaymentRequest) {
	if s.notify == nil {
		return
	}
	owner, err := s.userRepo.FindByID(req.UserID)
	if err != nil {
		return
	}
	go func() {
		html := pkg.ResponseNotifyHTML("付款申请", req.Description, req.Status, req.AdminResponse)
		if err := s.notify(owner.Email, "付款申请处理结果", html); err != nil {
			log.Printf("payment notify mail err: %v", err)
		}
	}()
}

func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func fromMinorUnits(minor int64) float64 {
	return float64(minor) / 100
}
