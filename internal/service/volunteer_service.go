package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/model"
	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/pkg"
	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/repository/mysql"

	"gorm.io/gorm"
)

// Notifier 申请处理结果的通知回调，为 nil 时不发通知
type Notifier func(to, subject, html string) error

type VolunteerService struct {
	repo     *mysql.VolunteerRepository
	userRepo *mysql.UserRepository
	notify   Notifier
}

// VolunteerSweeper 过期清理器：到期记录直接物理删除，不看状态
type VolunteerSweeper struct {
	repo     *mysql.VolunteerRepository
	interval time.Duration
}

func NewVolunteerService(db *gorm.DB, notify Notifier) *VolunteerService {
	return &VolunteerService{
		repo:     &mysql.VolunteerRepository{DB: db},
		userRepo: &mysql.UserRepository{DB: db},
		notify:   notify,
	}
}

func NewVolunteerSweeper(db *gorm.DB) *VolunteerSweeper {
	return &VolunteerSweeper{
		repo:     &mysql.VolunteerRepository{DB: db},
		interval: 10 * time.Minute,
	}
}

// EmailNotifier 用 SMTP 配置构造默认通知器
func EmailNotifier(cfg pkg.SMTPConfig) Notifier {
	return func(to, subject, html string) error {
		return pkg.SendEmail(cfg, to, subject, html)
	}
}

func (s *VolunteerService) Create(ctx context.Context, userID uint64, title, description string) (*model.VolunteerRequest, error) {
	if title == "" || description == "" {
		return nil, errors.New("title and description required")
	}

	req := &model.VolunteerRequest{
		Title:       title,
		Description: description,
		UserID:      userID,
		Status:      model.VolunteerStatusPending,
		ExpiresAt:   time.Now().Add(model.VolunteerRequestTTL),
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *VolunteerService) MyRequests(ctx context.Context, userID uint64) ([]model.VolunteerRequest, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *VolunteerService) ListAll(ctx context.Context, status string) ([]model.VolunteerRequest, error) {
	return s.repo.ListAll(ctx, status)
}

// Get 仅本人或管理员可读
func (s *VolunteerService) Get(ctx context.Context, callerID, id uint64) (*model.VolunteerRequest, error) {
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
	return req, nil
}

// Respond 管理员处理申请：只允许从 pending 出发，处理后过期时间重置为 14 天后
func (s *VolunteerService) Respond(ctx context.Context, id uint64, status, responseMessage string) (*model.VolunteerRequest, error) {
	if status != model.VolunteerStatusAccepted && status != model.VolunteerStatusRejected {
		return nil, ErrInvalidStatus
	}

	req, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.Status != model.VolunteerStatusPending {
		return nil, ErrAlreadyProcessed
	}

	req.Status = status
	req.ResponseMessage = responseMessage
	req.ExpiresAt = time.Now().Add(model.VolunteerRequestTTL)

	if err := s.repo.Save(ctx, req); err != nil {
		return nil, err
	}

	s.notifyOwner(req)
	return req, nil
}

func (s *VolunteerService) notifyOwner(req *model.VolunteerRequest) {
	if s.notify == nil {
		return
	}
	owner, err := s.userRepo.FindByID(req.UserID)
	if err != nil {
		return
	}
	go func() {
		html := pkg.ResponseNotifyHTML("志愿者申请", req.Title, req.Status, req.ResponseMessage)
		if err := s.notify(owner.Email, "志愿者申请处理结果", html); err != nil {
			log.Printf("volunteer notify mail err: %v", err)
		}
	}()
}

// Run 周期清理过期申请
func (w *VolunteerSweeper) Run(ctx context.Context) {
	t := time.NewTicker(w.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			w.SweepOnce(ctx)
		}
	}
}

func (w *VolunteerSweeper) SweepOnce(ctx context.Context) {
	n, err := w.repo.DeleteExpired(ctx, time.Now())
	if err != nil {
		log.Printf("volunteer sweep err: %v", err)
		return
	}
	if n > 0 {
		log.Printf("volunteer sweep removed %d expired requests", n)
	}
}
