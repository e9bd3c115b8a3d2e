// Package ctxutil переносит через context данные обновления Telegram
// (чат, отправитель, операция) и задаёт таймауты обращений к БД.
package ctxutil

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type key int

const (
	keyChatID key = iota
	keyUserID
	keyOpName
)

func value[T any](ctx context.Context, k key) (T, bool) {
	v, ok := ctx.Value(k).(T)
	return v, ok
}

func WithChatID(ctx context.Context, chatID int64) context.Context {
	return context.WithValue(ctx, keyChatID, chatID)
}

func ChatID(ctx context.Context) (int64, bool) { return value[int64](ctx, keyChatID) }

// WithUserID: Telegram ID отправителя; в личном чате совпадает с chatID.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, keyUserID, userID)
}

func UserID(ctx context.Context) (int64, bool) { return value[int64](ctx, keyUserID) }

// WithOp задаёт имя операции, например "/start" или "callback".
func WithOp(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, keyOpName, name)
}

func Op(ctx context.Context) (string, bool) { return value[string](ctx, keyOpName) }

// LogFields: chat_id, user_id и op для zap, только заданные.
func LogFields(ctx context.Context) []zap.Field {
	var f []zap.Field
	if id, ok := ChatID(ctx); ok {
		f = append(f, zap.Int64("chat_id", id))
	}
	if id, ok := UserID(ctx); ok {
		f = append(f, zap.Int64("user_id", id))
	}
	if op, ok := Op(ctx); ok {
		f = append(f, zap.String("op", op))
	}
	return f
}

// DefaultDBTimeout: таймаут одного обращения к БД.
var DefaultDBTimeout = 5 * time.Second

// WithDBTimeout: DefaultDBTimeout, но не дольше дедлайна родителя.
func WithDBTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if dl, ok := parent.Deadline(); ok {
		if remain := time.Until(dl); remain < DefaultDBTimeout {
			return context.WithTimeout(parent, remain)
		}
	}
	return context.WithTimeout(parent, DefaultDBTimeout)
}
