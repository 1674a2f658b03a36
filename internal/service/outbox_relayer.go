package service

import (
	"context"
	"log"
	"time"

	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/model"
	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/pkg"
	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/repository/mysql"

	"gorm.io/gorm"
)

type Sender func(ctx context.Context, ob *model.PaymentOutbox) error

// OutboxRelayer 周期扫描 payment_outbox，把待投递事件交给 sender
type OutboxRelayer struct {
	repo      *mysql.OutboxRepository
	batchSize int
	interval  time.Duration
	sender    Sender
}

func NewOutboxRelayer(db *gorm.DB, sender Sender) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      &mysql.OutboxRepository{DB: db},
		batchSize: 200,
		interval:  time.Second,
		sender:    sender,
	}
}

func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.DrainOnce(ctx)
		}
	}
}

func (r *OutboxRelayer) DrainOnce(ctx context.Context) {
	rows, err := r.repo.List(ctx, r.batchSize)
	if err != nil {
		log.Printf("outbox query err: %v", err)
		return
	}
	for i := range rows {
		ob := rows[i]
		if err = r.sender(ctx, &ob); err != nil {
			_ = r.repo.RetryUpdate(ctx, ob.ID)
			continue
		}
		_ = r.repo.SuccessUpdate(ctx, ob.ID)
	}
}

// KafkaSender 把 outbox 事件写入 kafka，key 按交易 ID 分区
func KafkaSender(producer *pkg.KafkaProducer) Sender {
	return func(ctx context.Context, ob *model.PaymentOutbox) error {
		return producer.Send(ctx, pkg.MakeKeyFromID(ob.TransactionID), []byte(ob.Payload))
	}
}

// LogSender 默认 sender：kafka 不可用时退化为打日志
func LogSender(ctx context.Context, ob *model.PaymentOutbox) error {
	log.Printf("OUTBOX SEND type=%s user=%d txn=%d payload=%s", ob.EventType, ob.UserID, ob.TransactionID, ob.Payload)
	return nil
}
