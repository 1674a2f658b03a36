package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/model"
)

func seedOutbox(t *testing.T, r *OutboxRelayer, n int) []model.PaymentOutbox {
	t.Helper()
	rows := make([]model.PaymentOutbox, 0, n)
	for i := 0; i < n; i++ {
		ob := model.PaymentOutbox{
			EventType:     "transaction.recorded",
			UserID:        1,
			TransactionID: uint64(i + 1),
			Payload:       `{"transaction_id":1}`,
		}
		if err := r.repo.DB.Create(&ob).Error; err != nil {
			t.Fatalf("seed outbox: %v", err)
		}
		rows = append(rows, ob)
	}
	return rows
}

func TestOutboxDrainMarksSent(t *testing.T) {
	db := newTestDB(t)

	var sent []uint64
	relayer := NewOutboxRelayer(db, func(ctx context.Context, ob *model.PaymentOutbox) error {
		sent = append(sent, ob.TransactionID)
		return nil
	})
	seedOutbox(t, relayer, 3)

	relayer.DrainOnce(context.Background())

	if len(sent) != 3 {
		t.Fatalf("sent = %d events, want 3", len(sent))
	}
	var pending int64
	if err := db.Model(&model.PaymentOutbox{}).Where("status = 0").Count(&pending).Error; err != nil {
		t.Fatalf("count pending: %v", err)
	}
	if pending != 0 {
		t.Fatalf("pending rows = %d, want 0", pending)
	}
}

func TestOutboxDrainMarksFailed(t *testing.T) {
	db := newTestDB(t)

	relayer := NewOutboxRelayer(db, func(ctx context.Context, ob *model.PaymentOutbox) error {
		return errors.New("broker down")
	})
	seedOutbox(t, relayer, 2)

	relayer.DrainOnce(context.Background())

	var rows []model.PaymentOutbox
	if err := db.Find(&rows).Error; err != nil {
		t.Fatalf("list outbox: %v", err)
	}
	for _, ob := range rows {
		if ob.Status != 2 || ob.Retry != 1 {
			t.Fatalf("row %d status=%d retry=%d, want status=2 retry=1", ob.ID, ob.Status, ob.Retry)
		}
	}
}
