package domain

import "context"

// SessionRepository 结账会话仓储
type SessionRepository interface {
	// Get 按会话 ID 读取，不存在时返回 ErrSessionNotFound
	Get(ctx context.Context, sessionID string) (*Session, error)
	// Save 写入会话
	Save(ctx context.Context, session *Session) error
	// Delete 删除会话
	Delete(ctx context.Context, sessionID string) error
}
