package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/Spok95/university-assistant-bot/internal/apperr"
	"github.com/Spok95/university-assistant-bot/internal/assistant"
	"github.com/Spok95/university-assistant-bot/internal/bot/auth"
	"github.com/Spok95/university-assistant-bot/internal/bot/handlers"
	"github.com/Spok95/university-assistant-bot/internal/config"
	"github.com/Spok95/university-assistant-bot/internal/ctxutil"
	"github.com/Spok95/university-assistant-bot/internal/data"
	"github.com/Spok95/university-assistant-bot/internal/metrics"
	"github.com/Spok95/university-assistant-bot/internal/observability"
	"github.com/Spok95/university-assistant-bot/internal/tg"
)

const (
	unknownCommandText = "⚠️ Неизвестная команда. Используйте /help"
	unavailableText    = "⚠️ Сервис временно недоступен, попробуйте позже."
)

type Dispatcher struct {
	bot       *tgbotapi.BotAPI
	db        *sqlx.DB
	data      *data.Store
	assistant *assistant.Responder
	cfg       *config.Config
	limiter   *ChatLimiter
	log       *zap.Logger
	now       func() time.Time
}

func NewDispatcher(bot *tgbotapi.BotAPI, database *sqlx.DB, store *data.Store, resp *assistant.Responder, cfg *config.Config, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	if resp == nil {
		resp = assistant.NewResponder(nil, 0, log)
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &Dispatcher{
		bot:       bot,
		db:        database,
		data:      store,
		assistant: resp,
		cfg:       cfg,
		limiter:   NewChatLimiter(),
		log:       log,
		now:       time.Now,
	}
}

// HandleUpdate обрабатывает одно обновление. Обновления одного чата выполняются по очереди.
func (d *Dispatcher) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	metrics.BotUpdates.Inc()
	chat := upd.FromChat()
	if chat == nil {
		return
	}
	unlock := d.limiter.lock(chat.ID)
	defer unlock()

	ctx = ctxutil.WithChatID(ctx, chat.ID)
	if from := upd.SentFrom(); from != nil {
		ctx = ctxutil.WithUserID(ctx, from.ID)
	}
	defer func() {
		if r := recover(); r != nil {
			d.fail(ctx, fmt.Errorf("panic: %v", r))
		}
	}()

	var err error
	switch {
	case upd.CallbackQuery != nil:
		ctx = ctxutil.WithOp(ctx, "callback")
		handlers.HandleCallback(d.bot, upd.CallbackQuery, d.cfg.WebAppURL)
	case upd.Message != nil:
		ctx = ctxutil.WithOp(ctx, messageOp(upd.Message))
		err = d.handleMessage(ctx, upd.Message)
	}
	if err != nil {
		d.fail(ctx, err)
	}
}

func (d *Dispatcher) fail(ctx context.Context, err error) {
	metrics.HandlerErrors.Inc()
	observability.CaptureCtx(ctx, err)
	d.log.Error("update failed", append(ctxutil.LogFields(ctx), zap.Error(err))...)
}

func messageOp(msg *tgbotapi.Message) string {
	switch {
	case msg.Contact != nil:
		return "contact"
	case msg.IsCommand():
		return "/" + msg.Command()
	}
	return "text"
}

func (d *Dispatcher) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	switch {
	case msg.Contact != nil:
		return auth.HandleContact(ctx, d.bot, d.db, msg)
	case msg.IsCommand():
		return d.handleCommand(ctx, msg)
	case strings.TrimSpace(msg.Text) != "":
		return d.handleText(ctx, msg)
	}
	return nil
}

func (d *Dispatcher) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	chatID := msg.Chat.ID
	url := d.cfg.WebAppURL
	switch msg.Command() {
	case "start":
		handlers.HandleStart(d.bot, msg, url)
	case "help":
		handlers.HandleHelp(d.bot, chatID, url)
	case "app":
		handlers.HandleApp(d.bot, chatID, url)
	case "moodle":
		handlers.HandleMoodleInfo(d.bot, chatID, url)
	case "schedule":
		handlers.HandleScheduleInfo(d.bot, chatID, url)
	case "admission":
		handlers.HandleAdmissionInfo(d.bot, chatID, url)
	case "reload":
		if !d.isAdmin(msg) {
			break
		}
		return handlers.HandleReload(ctx, d.bot, chatID, d.data)
	case "export_users":
		if !d.isAdmin(msg) {
			break
		}
		return handlers.HandleExportUsers(ctx, d.bot, d.db, chatID, d.cfg.Location, d.now())
	default:
		_, _ = tg.Send(d.bot, tgbotapi.NewMessage(chatID, unknownCommandText))
	}
	return nil
}

// admin-команды для остальных выглядят как неизвестные
func (d *Dispatcher) isAdmin(msg *tgbotapi.Message) bool {
	if msg.From != nil && d.cfg.IsAdmin(msg.From.ID) {
		return true
	}
	_, _ = tg.Send(d.bot, tgbotapi.NewMessage(msg.Chat.ID, unknownCommandText))
	return false
}

func (d *Dispatcher) handleText(ctx context.Context, msg *tgbotapi.Message) error {
	chatID := msg.Chat.ID
	if msg.From == nil {
		return nil
	}
	profile, err := auth.CurrentProfile(ctx, d.db, msg.From.ID)
	if err != nil {
		_, _ = tg.Send(d.bot, tgbotapi.NewMessage(chatID, unavailableText))
		return err
	}
	if !profile.Authenticated() {
		auth.AskContact(d.bot, chatID)
		return nil
	}

	text := strings.TrimSpace(msg.Text)
	snap := d.data.Current()
	switch handlers.Classify(text) {
	case handlers.IntentMoodle:
		err := handlers.HandleMoodleRequest(d.bot, chatID, snap.Roster, profile, text)
		if isLookupMiss(err) {
			d.log.Info("moodle lookup miss", append(ctxutil.LogFields(ctx), zap.String("code", apperr.FromError(err).Code))...)
			return nil
		}
		return err
	case handlers.IntentSchedule:
		handlers.HandleScheduleRequest(d.bot, chatID, snap.Book, text, d.now().In(d.cfg.Location), d.cfg.WebAppURL)
	default:
		_, _ = tg.Request(d.bot, tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping))
		_, _ = tg.Send(d.bot, tgbotapi.NewMessage(chatID, d.assistant.Reply(ctx, text)))
	}
	return nil
}

// штатные исходы поиска, не ошибки обработчика
func isLookupMiss(err error) bool {
	return errors.Is(err, apperr.ErrNotFound) ||
		errors.Is(err, apperr.ErrInvalidInput) ||
		errors.Is(err, apperr.ErrIncompleteRecord)
}
