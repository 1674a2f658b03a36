package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/model"

	"gorm.io/gorm"
)

func TestVolunteerCreateSetsExpiry(t *testing.T) {
	db := newTestDB(t)
	svc := NewVolunteerService(db, nil)
	user := createUser(t, db, "vol", false)

	before := time.Now()
	req, err := svc.Create(context.Background(), user.ID, "Teach math", "weekend classes")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	want := before.Add(model.VolunteerRequestTTL)
	if req.ExpiresAt.Before(want.Add(-time.Minute)) || req.ExpiresAt.After(want.Add(time.Minute)) {
		t.Fatalf("expiresAt = %v, want about %v", req.ExpiresAt, want)
	}
	if req.Status != model.VolunteerStatusPending {
		t.Fatalf("status = %s, want pending", req.Status)
	}
}

func TestVolunteerRespondResetsExpiry(t *testing.T) {
	db := newTestDB(t)
	svc := NewVolunteerService(db, nil)
	user := createUser(t, db, "vol", false)
	ctx := context.Background()

	req, err := svc.Create(ctx, user.ID, "Teach math", "weekend classes")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// 把过期时间改到只剩 1 天，模拟申请已放了一阵子
	oldExpiry := time.Now().Add(24 * time.Hour)
	if err := db.Model(req).Update("expires_at", oldExpiry).Error; err != nil {
		t.Fatalf("backdate expiry: %v", err)
	}

	resp, err := svc.Respond(ctx, req.ID, model.VolunteerStatusAccepted, "welcome aboard")
	if err != nil {
		t.Fatalf("respond: %v", err)
	}

	want := time.Now().Add(model.VolunteerRequestTTL)
	if resp.ExpiresAt.Before(want.Add(-time.Minute)) || resp.ExpiresAt.After(want.Add(time.Minute)) {
		t.Fatalf("expiresAt = %v, want reset to about %v", resp.ExpiresAt, want)
	}
	if !resp.ExpiresAt.After(oldExpiry) {
		t.Fatal("respond shortened the visibility window")
	}
	if resp.Status != model.VolunteerStatusAccepted {
		t.Fatalf("status = %s, want accepted", resp.Status)
	}
	if resp.ResponseMessage != "welcome aboard" {
		t.Fatalf("responseMessage = %q", resp.ResponseMessage)
	}
}

func TestVolunteerRespondNonPending(t *testing.T) {
	db := newTestDB(t)
	svc := NewVolunteerService(db, nil)
	user := createUser(t, db, "vol", false)
	ctx := context.Background()

	req, err := svc.Create(ctx, user.ID, "Teach math", "weekend classes")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Respond(ctx, req.ID, model.VolunteerStatusRejected, ""); err != nil {
		t.Fatalf("first respond: %v", err)
	}

	_, err = svc.Respond(ctx, req.ID, model.VolunteerStatusAccepted, "changed my mind")
	if !errors.Is(err, ErrAlreadyProcessed) {
		t.Fatalf("second respond err = %v, want ErrAlreadyProcessed", err)
	}
}

func TestVolunteerRespondInvalidStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewVolunteerService(db, nil)
	user := createUser(t, db, "vol", false)
	ctx := context.Background()

	req, err := svc.Create(ctx, user.ID, "Teach math", "weekend classes")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.Respond(ctx, req.ID, "pending", "")
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("err = %v, want ErrInvalidStatus", err)
	}
}

func TestVolunteerGetOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewVolunteerService(db, nil)
	owner := createUser(t, db, "vol", false)
	stranger := createUser(t, db, "stranger", false)
	admin := createUser(t, db, "root", true)
	ctx := context.Background()

	req, err := svc.Create(ctx, owner.ID, "Teach math", "weekend classes")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Get(ctx, owner.ID, req.ID); err != nil {
		t.Fatalf("owner get: %v", err)
	}
	if _, err := svc.Get(ctx, admin.ID, req.ID); err != nil {
		t.Fatalf("admin get: %v", err)
	}
	if _, err := svc.Get(ctx, stranger.ID, req.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("stranger get err = %v, want ErrForbidden", err)
	}
}

func TestVolunteerSweepDeletesExpired(t *testing.T) {
	db := newTestDB(t)
	svc := NewVolunteerService(db, nil)
	sweeper := NewVolunteerSweeper(db)
	user := createUser(t, db, "vol", false)
	ctx := context.Background()

	expired, err := svc.Create(ctx, user.ID, "Old request", "left pending")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	alive, err := svc.Create(ctx, user.ID, "Fresh request", "still valid")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// pending 状态也照删：过期就是过期
	if err := db.Model(expired).Update("expires_at", time.Now().Add(-time.Hour)).Error; err != nil {
		t.Fatalf("expire request: %v", err)
	}

	sweeper.SweepOnce(ctx)

	var gone model.VolunteerRequest
	err = db.First(&gone, expired.ID).Error
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expired request still present, err = %v", err)
	}
	if err := db.First(&model.VolunteerRequest{}, alive.ID).Error; err != nil {
		t.Fatalf("fresh request removed: %v", err)
	}
}
