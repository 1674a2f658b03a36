package mysql

import (
	"context"
	"encoding/json"

	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/model"

	"gorm.io/gorm"
)

type TransactionRepository struct {
	DB *gorm.DB
}

type OutboxRepository struct {
	DB *gorm.DB
}

// Record 一个事务内完成：申请置为 paid + 写入交易 + 写入 outbox 事件。
// razorpay_payment_id 撞唯一键时整体回滚，返回 gorm.ErrDuplicatedKey。
func (r *TransactionRepository) Record(ctx context.Context, req *model.PaymentRequest, txn *model.Transaction) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(req).Update("status", model.PaymentStatusPaid).Error; err != nil {
			return err
		}

		if err := tx.Create(txn).Error; err != nil {
			return err
		}

		return insertOutbox(tx, txn)
	})
}

func insertOutbox(tx *gorm.DB, txn *model.Transaction) error {
	payload, err := json.Marshal(map[string]any{
		"transaction_id":      txn.ID,
		"user_id":             txn.UserID,
		"payment_request_id":  txn.PaymentRequestID,
		"amount":              txn.Amount,
		"razorpay_payment_id": txn.RazorpayPaymentID,
	})
	if err != nil {
		return err
	}
	return tx.Create(&model.PaymentOutbox{
		EventType:     "transaction.recorded",
		UserID:        txn.UserID,
		TransactionID: txn.ID,
		Payload:       string(payload),
	}).Error
}

func (r *TransactionRepository) FindByID(ctx context.Context, id uint64) (*model.Transaction, error) {
	var txn model.Transaction
	err := r.DB.WithContext(ctx).First(&txn, id).Error
	return &txn, err
}

func (r *TransactionRepository) ListByUser(ctx context.Context, userID uint64) ([]model.Transaction, error) {
	var list []model.Transaction
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *TransactionRepository) ListAll(ctx context.Context) ([]model.Transaction, error) {
	var list []model.Transaction
	err := r.DB.WithContext(ctx).Preload("User").Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *OutboxRepository) List(ctx context.Context, batchSize int) ([]model.PaymentOutbox, error) {
	var rows []model.PaymentOutbox
	err := r.DB.WithContext(ctx).
		Where("status = 0").
		Order("id").
		Limit(batchSize).
		Find(&rows).Error
	return rows, err
}

func (r *OutboxRepository) RetryUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.PaymentOutbox{}).
		Where("id = ?", id).
		Updates(map[string]any{"retry": gorm.Expr("retry + 1"), "status": 2}).Error
}

func (r *OutboxRepository) SuccessUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.PaymentOutbox{}).
		Where("id = ?", id).
		Update("status", 1).Error
}
