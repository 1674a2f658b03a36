package main

import (
	"context"
	"log"

	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/config"
	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/model"
	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/pkg"
	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/repository/mysql"
	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/repository/redis"
	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/router"
	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	pkg.SetSecrets(cfg.JWTAccessSecret, cfg.JWTRefreshSecret)

	if err := mysql.InitDB(cfg.MySQLDSN); err != nil {
		panic(err)
	}

	// 连接 redis
	if err := redis.Init(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		panic(err)
	}
	defer redis.Close()

	// 自动建表（开发阶段 OK）
	mysql.DB.AutoMigrate(
		&model.User{},
		&model.Blog{},
		&model.VolunteerRequest{},
		&model.PaymentRequest{},
		&model.Transaction{},
		&model.PaymentOutbox{},
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 志愿者申请过期清理
	sweeper := service.NewVolunteerSweeper(mysql.DB)
	go sweeper.Run(ctx)

	// outbox 投递：kafka 不可用时退化为日志
	sender := service.LogSender
	producer, err := pkg.NewKafkaProducer(pkg.KafkaConfig{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.KafkaTopic,
	})
	if err != nil {
		log.Printf("kafka producer init failed, fall back to log sender: %v", err)
	} else {
		defer producer.Close()
		sender = service.KafkaSender(producer)
	}
	relayer := service.NewOutboxRelayer(mysql.DB, sender)
	go relayer.Run(ctx)

	// Gin
	r := router.InitRouter(cfg)
	if err := r.Run(cfg.ServerAddr); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
