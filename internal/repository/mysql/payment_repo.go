package mysql

import (
	"context"

	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/model"

	"gorm.io/gorm"
)

type PaymentRequestRepository struct {
	DB *gorm.DB
}

func (r *PaymentRequestRepository) Create(ctx context.Context, req *model.PaymentRequest) error {
	return r.DB.WithContext(ctx).Create(req).Error
}

func (r *PaymentRequestRepository) FindByID(ctx context.Context, id uint64) (*model.PaymentRequest, error) {
	var req model.PaymentRequest
	err := r.DB.WithContext(ctx).First(&req, id).Error
	return &req, err
}

func (r *PaymentRequestRepository) ListByUser(ctx context.Context, userID uint64) ([]model.PaymentRequest, error) {
	var list []model.PaymentRequest
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

// ListAll 管理端列表，status 为空时不过滤，带上提交人信息
func (r *PaymentRequestRepository) ListAll(ctx context.Context, status string) ([]model.PaymentRequest, error) {
	var list []model.PaymentRequest
	q := r.DB.WithContext(ctx).Preload("User")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *PaymentRequestRepository) Save(ctx context.Context, req *model.PaymentRequest) error {
	return r.DB.WithContext(ctx).Save(req).Error
}
