package mysql

import (
	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("username = ? OR email = ?", username, username).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByID(id uint64) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) List() ([]model.User, error) {
	var users []model.User
	err := r.DB.Order("id").Find(&users).Error
	return users, err
}

func (r *UserRepository) Save(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) Delete(id uint64) error {
	// 幂等硬删除：已不存在也视为成功
	return r.DB.Delete(&model.User{}, id).Error
}

func (r *UserRepository) CountAdmins() (int64, error) {
	var count int64
	err := r.DB.Model(&model.User{}).Where("is_admin = ?", true).Count(&count).Error
	return count, err
}

func (r *UserRepository) UpdateAdmin(user *model.User, isAdmin bool) error {
	return r.DB.Model(user).Update("is_admin", isAdmin).Error
}
