package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	ServerAddr string

	MySQLDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTAccessSecret  string
	JWTRefreshSecret string

	RazorpayKeyID     string
	RazorpayKeySecret string
	CheckoutBaseURL   string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	KafkaBrokers []string
	KafkaTopic   string
}

// Load 优先从工作目录读取 config.yaml，找不到再尝试可执行文件目录
func Load() (*Config, error) {
	viper.SetConfigFile("config.yaml")
	if err := viper.ReadInConfig(); err != nil {
		execDir, dirErr := filepath.Abs(filepath.Dir(os.Args[0]))
		if dirErr != nil {
			return nil, err
		}
		viper.SetConfigFile(filepath.Join(execDir, "config.yaml"))
		if err := viper.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		viper.GetString("mysql.user"),
		viper.GetString("mysql.password"),
		viper.GetString("mysql.host"),
		viper.GetInt("mysql.port"),
		viper.GetString("mysql.dbname"),
	)

	cfg := &Config{
		ServerAddr:        viper.GetString("server.addr"),
		MySQLDSN:          dsn,
		RedisAddr:         viper.GetString("redis.addr"),
		RedisPassword:     viper.GetString("redis.password"),
		RedisDB:           viper.GetInt("redis.db"),
		JWTAccessSecret:   viper.GetString("jwt.access_secret"),
		JWTRefreshSecret:  viper.GetString("jwt.refresh_secret"),
		RazorpayKeyID:     viper.GetString("razorpay.key_id"),
		RazorpayKeySecret: viper.GetString("razorpay.key_secret"),
		CheckoutBaseURL:   viper.GetString("razorpay.checkout_base_url"),
		SMTPHost:          viper.GetString("smtp.host"),
		SMTPPort:          viper.GetInt("smtp.port"),
		SMTPUsername:      viper.GetString("smtp.username"),
		SMTPPassword:      viper.GetString("smtp.password"),
		SMTPFrom:          viper.GetString("smtp.from"),
		KafkaBrokers:      viper.GetStringSlice("kafka.brokers"),
		KafkaTopic:        viper.GetString("kafka.topic"),
	}
	if cfg.ServerAddr == "" {
		cfg.ServerAddr = ":8080"
	}
	return cfg, nil
}
