package app

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/Spok95/university-assistant-bot/internal/data"
	"github.com/Spok95/university-assistant-bot/internal/db"
	"github.com/Spok95/university-assistant-bot/internal/jobs"
	"github.com/Spok95/university-assistant-bot/internal/tg"
)

// ReloadNotifier шлёт админам сообщение о сбое фоновой перезагрузки данных.
// Одна и та же ошибка подряд повторно не отправляется.
type ReloadNotifier struct {
	bot      *tgbotapi.BotAPI
	db       *sqlx.DB
	adminIDs []int64
	log      *zap.Logger

	mu      sync.Mutex
	lastErr string
}

// NewReloadNotifier: database может быть nil, тогда пишем всем ADMIN_IDS.
func NewReloadNotifier(bot *tgbotapi.BotAPI, database *sqlx.DB, adminIDs []int64, log *zap.Logger) *ReloadNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReloadNotifier{bot: bot, db: database, adminIDs: adminIDs, log: log}
}

// recipients: админы, которые уже писали боту (есть профиль).
// Остальным Telegram всё равно не даст отправить сообщение.
func (n *ReloadNotifier) recipients(ctx context.Context) []int64 {
	if n.db == nil || len(n.adminIDs) == 0 {
		return n.adminIDs
	}
	users, err := db.ListUsersByIDs(ctx, n.db, n.adminIDs)
	if err != nil {
		n.log.Warn("load admin profiles", zap.Error(err))
		return n.adminIDs
	}
	out := make([]int64, 0, len(users))
	for _, u := range users {
		out = append(out, u.UserID)
	}
	return out
}

// shouldNotify запоминает исход; true: об этой ошибке ещё не сообщали.
func (n *ReloadNotifier) shouldNotify(err error) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err == nil {
		n.lastErr = ""
		return false
	}
	if err.Error() == n.lastErr {
		return false
	}
	n.lastErr = err.Error()
	return true
}

// Job для jobs.Runner перезагружает данные и уведомляет при сбое.
func (n *ReloadNotifier) Job(store *data.Store) jobs.Job {
	return func(ctx context.Context) error {
		err := store.Reload(ctx)
		if n.shouldNotify(err) && n.bot != nil {
			text := "⚠️ Не удалось перезагрузить данные, бот работает на прежнем снимке:\n" + err.Error()
			for _, chatID := range n.recipients(ctx) {
				if _, sendErr := tg.Send(n.bot, tgbotapi.NewMessage(chatID, text)); sendErr != nil {
					n.log.Warn("notify admin", zap.Int64("chat_id", chatID), zap.Error(sendErr))
				}
			}
		}
		return err
	}
}
