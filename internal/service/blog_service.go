package service

import (
	"errors"

	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/model"
	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/repository/mysql"

	"gorm.io/gorm"
)

type BlogService struct {
	repo     *mysql.BlogRepository
	userRepo *mysql.UserRepository
}

func NewBlogService(db *gorm.DB) *BlogService {
	return &BlogService{
		repo:     &mysql.BlogRepository{DB: db},
		userRepo: &mysql.UserRepository{DB: db},
	}
}

func (s *BlogService) Create(userID uint64, title, content string) (*model.Blog, error) {
	if title == "" {
		return nil, errors.New("title required")
	}

	blog := &model.Blog{
		Title:    title,
		Content:  content,
		AuthorID: userID,
	}
	if err := s.repo.Create(blog); err != nil {
		return nil, err
	}
	return blog, nil
}

func (s *BlogService) List() ([]model.Blog, error) {
	return s.repo.ListAll()
}

func (s *BlogService) MyBlogs(userID uint64) ([]model.Blog, error) {
	return s.repo.ListByAuthor(userID)
}

// Update 仅作者或管理员可改
func (s *BlogService) Update(userID, blogID uint64, title, content string) (*model.Blog, error) {
	blog, err := s.repo.FindByID(blogID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if blog.AuthorID != userID {
		ok, err := s.isAdmin(userID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrForbidden
		}
	}

	blog.Title = title
	blog.Content = content
	if err := s.repo.Save(blog); err != nil {
		return nil, err
	}
	return blog, nil
}

// Delete 仅作者或管理员可删
func (s *BlogService) Delete(userID, blogID uint64) error {
	blog, err := s.repo.FindByID(blogID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if blog.AuthorID != userID {
		ok, err := s.isAdmin(userID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrForbidden
		}
	}

	return s.repo.Delete(blogID)
}

func (s *BlogService) isAdmin(userID uint64) (bool, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return false, err
	}
	return user.IsAdmin, nil
}
