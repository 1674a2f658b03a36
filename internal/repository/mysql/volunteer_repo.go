package mysql

import (
	"context"
	"time"

	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/model"

	"gorm.io/gorm"
)

type VolunteerRepository struct {
	DB *gorm.DB
}

func (r *VolunteerRepository) Create(ctx context.Context, req *model.VolunteerRequest) error {
	return r.DB.WithContext(ctx).Create(req).Error
}

func (r *VolunteerRepository) FindByID(ctx context.Context, id uint64) (*model.VolunteerRequest, error) {
	var req model.VolunteerRequest
	err := r.DB.WithContext(ctx).First(&req, id).Error
	return &req, err
}

func (r *VolunteerRepository) ListByUser(ctx context.Context, userID uint64) ([]model.VolunteerRequest, error) {
	var list []model.VolunteerRequest
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

// ListAll 管理端列表，status 为空时不过滤，带上提交人信息
func (r *VolunteerRepository) ListAll(ctx context.Context, status string) ([]model.VolunteerRequest, error) {
	var list []model.VolunteerRequest
	q := r.DB.WithContext(ctx).Preload("User")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *VolunteerRepository) Save(ctx context.Context, req *model.VolunteerRequest) error {
	return r.DB.WithContext(ctx).Save(req).Error
}

// DeleteExpired 硬删除所有过期记录，不看状态。返回删掉的行数。
func (r *VolunteerRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tx := r.DB.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&model.VolunteerRequest{})
	return tx.RowsAffected, tx.Error
}
