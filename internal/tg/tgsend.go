package tg

import (
	"errors"
	"net"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/university-assistant-bot/internal/metrics"
	"github.com/Spok95/university-assistant-bot/internal/observability"
)

// errKind: "system" для 429, 5xx и сетевых сбоев, "user" для ответа Telegram с 4xx (заблокировал бота,
// чат не найден, неизменённый текст). В Sentry уходят только системные.
func errKind(err error) string {
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == 429 || apiErr.Code >= 500 {
			return "system"
		}
		return "user"
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return "system"
	}
	// тело 5xx от прокси Telegram не JSON и приходит обычной ошибкой
	s := strings.ToLower(err.Error())
	if strings.Contains(s, "502") || strings.Contains(s, "503") || strings.Contains(s, "timeout") {
		return "system"
	}
	return "user"
}

func report(method string, err error) {
	if err == nil {
		return
	}
	kind := errKind(err)
	metrics.TelegramErrors.WithLabelValues(method, kind).Inc()
	if kind == "system" {
		observability.CaptureErr(err)
	}
}

func Send(bot *tgbotapi.BotAPI, msg tgbotapi.Chattable) (tgbotapi.Message, error) {
	m, err := bot.Send(msg)
	report("send", err)
	return m, err
}

// Request: для методов без Message в ответе (answerCallbackQuery, sendChatAction).
func Request(bot *tgbotapi.BotAPI, req tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	r, err := bot.Request(req)
	report("request", err)
	return r, err
}
