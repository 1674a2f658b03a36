package service

import (
	"errors"

	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/model"
	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/pkg"
	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/repository/mysql"
	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/repository/redis"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	repo   *mysql.UserRepository
	rToken *redis.TokenRepository
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{
		repo:   &mysql.UserRepository{DB: db},
		rToken: &redis.TokenRepository{},
	}
}

func (s *UserService) Register(username, password, email string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: username,
		Password: string(hash),
		Email:    email,
	}

	if err := s.repo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) Login(username, password string) (*pkg.Pair, error) {
	user, err := s.repo.FindByUsername(username)
	if err != nil {
		return nil, errors.New("user not found")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, errors.New("invalid password")
	}

	token, err := pkg.GeneratePair(user.ID)
	if err != nil {
		return nil, err
	}
	// 登录态写入 redis，实现单端登录
	if err = s.rToken.AddToken(user.ID, token.AccessToken); err != nil {
		return nil, err
	}
	return token, nil
}

func (s *UserService) Logout(userID uint64) error {
	return s.rToken.DeleteToken(userID)
}

func (s *UserService) Refresh(refreshToken string) (*pkg.Pair, error) {
	return pkg.Refresh(refreshToken)
}

func (s *UserService) GetProfile(userID uint64) (*model.User, error) {
	user, err := s.repo.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return user, err
}

// UpdateProfile 只更新传入的非空字段，密码重新加盐散列
func (s *UserService) UpdateProfile(userID uint64, username, email, password string) (*model.User, error) {
	user, err := s.repo.FindByID(userID)
	if err != nil {
		return nil, ErrNotFound
	}

	if username != "" {
		user.Username = username
	}
	if email != "" {
		user.Email = email
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}

	if err := s.repo.Save(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) ListUsers() ([]model.User, error) {
	return s.repo.List()
}

func (s *UserService) GetUser(id uint64) (*model.User, error) {
	user, err := s.repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return user, err
}

// UpdateUser 管理员更新用户；把最后一个管理员改成普通用户同样会被拦下
func (s *UserService) UpdateUser(id uint64, username, email string, isAdmin *bool) (*model.User, error) {
	user, err := s.repo.FindByID(id)
	if err != nil {
		return nil, ErrNotFound
	}

	if username != "" {
		user.Username = username
	}
	if email != "" {
		user.Email = email
	}
	if isAdmin != nil {
		if !*isAdmin && user.IsAdmin {
			if err := s.ensureNotLastAdmin(); err != nil {
				return nil, err
			}
		}
		user.IsAdmin = *isAdmin
	}

	if err := s.repo.Save(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeleteUser(id uint64) error {
	if _, err := s.repo.FindByID(id); err != nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}

func (s *UserService) MakeAdmin(id uint64) (*model.User, error) {
	user, err := s.repo.FindByID(id)
	if err != nil {
		return nil, ErrNotFound
	}
	if err := s.repo.UpdateAdmin(user, true); err != nil {
		return nil, err
	}
	user.IsAdmin = true
	return user, nil
}

// RemoveAdmin 收回管理员权限；系统必须始终留有至少一个管理员
func (s *UserService) RemoveAdmin(id uint64) (*model.User, error) {
	user, err := s.repo.FindByID(id)
	if err != nil {
		return nil, ErrNotFound
	}

	if user.IsAdmin {
		if err := s.ensureNotLastAdmin(); err != nil {
			return nil, err
		}
	}

	if err := s.repo.UpdateAdmin(user, false); err != nil {
		return nil, err
	}
	user.IsAdmin = false
	return user, nil
}

func (s *UserService) ensureNotLastAdmin() error {
	count, err := s.repo.CountAdmins()
	if err != nil {
		return err
	}
	if count <= 1 {
		return ErrLastAdmin
	}
	return nil
}
