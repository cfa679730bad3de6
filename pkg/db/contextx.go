package db

import (
	"context"

	"gorm.io/gorm"
)

type txContextKey struct{}

// ContextWithTx 将事务句柄写入 context，供仓储在同一事务内执行
func ContextWithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

// TxFromContext 从 context 取事务句柄；不存在时返回 nil
func TxFromContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok {
		return tx
	}
	return nil
}

// HandleFromContext 返回 context 中的事务句柄，否则返回 fallback
func HandleFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx := TxFromContext(ctx); tx != nil {
		return tx
	}
	return fallback
}
