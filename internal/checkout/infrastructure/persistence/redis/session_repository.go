// Package redis 结账会话的 Redis 存储
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wyfcoding/ecommerce/internal/checkout/domain"
	"github.com/wyfcoding/ecommerce/pkg/cache"
)

// 结账会话保留 24 小时，过期由 Redis 自动清理
const sessionTTL = 24 * time.Hour

type sessionRepository struct{ cache *cache.RedisCache }

// NewSessionRepository 创建基于 Redis 的会话仓储
func NewSessionRepository(c *cache.RedisCache) domain.SessionRepository {
	return &sessionRepository{cache: c}
}

func key(sessionID string) string {
	return fmt.Sprintf("checkout:session:%s", sessionID)
}

func (r *sessionRepository) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	var session domain.Session
	err := r.cache.GetJSON(ctx, key(sessionID), &session)
	if errors.Is(err, cache.ErrNotFound) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Save(ctx context.Context, session *domain.Session) error {
	return r.cache.SetJSON(ctx, key(session.ID), session, sessionTTL)
}

func (r *sessionRepository) Delete(ctx context.Context, sessionID string) error {
	return r.cache.Delete(ctx, key(sessionID))
}
