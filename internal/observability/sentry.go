package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/Spok95/university-assistant-bot/internal/ctxutil"
)

// InitSentry: пустой dsn выключает отправку, возвращается no-op flush.
// PII не отправляется: в текстах сообщений бывают телефоны и ИИН.
func InitSentry(dsn, env, release string) (func(), error) {
	if dsn == "" {
		return func() {}, nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      env,
		Release:          release,
		AttachStacktrace: true,
		SendDefaultPII:   false,
	}); err != nil {
		return func() {}, err
	}
	sentry.ConfigureScope(func(s *sentry.Scope) { s.SetTag("service", "university-assistant-bot") })
	return func() { sentry.Flush(2 * time.Second) }, nil
}

func CaptureErr(err error) {
	if err != nil {
		sentry.CaptureException(err)
	}
}

// CaptureCtx добавляет к событию chat_id, user_id и op из контекста обновления.
func CaptureCtx(ctx context.Context, err error) {
	if err == nil {
		return
	}
	hub := sentry.CurrentHub().Clone()
	hub.WithScope(func(s *sentry.Scope) {
		s.SetTags(Tags(ctx))
		hub.CaptureException(err)
	})
}

// Tags: теги события по значениям ctxutil.
func Tags(ctx context.Context) map[string]string {
	tags := map[string]string{}
	if id, ok := ctxutil.ChatID(ctx); ok {
		tags["chat_id"] = strconv.FormatInt(id, 10)
	}
	if id, ok := ctxutil.UserID(ctx); ok {
		tags["user_id"] = strconv.FormatInt(id, 10)
	}
	if op, ok := ctxutil.Op(ctx); ok {
		tags["op"] = op
	}
	return tags
}
