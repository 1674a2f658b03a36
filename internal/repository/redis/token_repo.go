package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrTokenNotFound    = errors.New("token not found")
	ErrRedisUnavailable = errors.New("redis unavailable")
	ErrExtendFailed     = errors.New("token extend failed")
	ErrTokenDeleted     = errors.New("token delete failed")
)

const (
	LoginTokenPrefix = "login:user:token"
	LoginTokenExpire = 60 * 30
)

// TokenRepository 登录态 token 存储：一个用户同一时间只允许一个有效 access token
type TokenRepository struct{}

func (r *TokenRepository) AddToken(userID uint64, token string) error {
	key := fmt.Sprintf("%s:%d", LoginTokenPrefix, userID)
	if err := Client.Set(context.Background(), key, token, time.Second*LoginTokenExpire).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (r *TokenRepository) GetToken(userID uint64) (string, error) {
	key := fmt.Sprintf("%s:%d", LoginTokenPrefix, userID)
	token, err := Client.Get(context.Background(), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", ErrRedisUnavailable
	}
	return token, nil
}

// ExtendToken 每次鉴权通过后顺延过期时间
func (r *TokenRepository) ExtendToken(userID uint64) error {
	key := fmt.Sprintf("%s:%d", LoginTokenPrefix, userID)
	_, err := Client.Expire(context.Background(), key, time.Second*LoginTokenExpire).Result()
	if err != nil {
		return ErrExtendFailed
	}
	return nil
}

func (r *TokenRepository) DeleteToken(userID uint64) error {
	key := fmt.Sprintf("%s:%d", LoginTokenPrefix, userID)
	err := Client.Del(context.Background(), key).Err()
	if err != nil {
		return ErrTokenDeleted
	}
	return nil
}
