package mysql

import (
	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/model"

	"gorm.io/gorm"
)

type BlogRepository struct {
	DB *gorm.DB
}

func (r *BlogRepository) Create(blog *model.Blog) error {
	return r.DB.Create(blog).Error
}

func (r *BlogRepository) FindByID(id uint64) (*model.Blog, error) {
	var blog model.Blog
	err := r.DB.First(&blog, id).Error
	return &blog, err
}

// ListAll 公开列表，带上作者信息
func (r *BlogRepository) ListAll() ([]model.Blog, error) {
	var list []model.Blog
	err := r.DB.Preload("Author").Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *BlogRepository) ListByAuthor(authorID uint64) ([]model.Blog, error) {
	var list []model.Blog
	err := r.DB.Preload("Author").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *BlogRepository) Save(blog *model.Blog) error {
	return r.DB.Save(blog).Error
}

func (r *BlogRepository) Delete(id uint64) error {
	return r.DB.Delete(&model.Blog{}, id).Error
}
