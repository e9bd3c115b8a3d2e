package handlers

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jmoiron/sqlx"

	"github.com/Spok95/university-assistant-bot/internal/bot/shared/guard"
	"github.com/Spok95/university-assistant-bot/internal/data"
	"github.com/Spok95/university-assistant-bot/internal/db"
	"github.com/Spok95/university-assistant-bot/internal/export"
	"github.com/Spok95/university-assistant-bot/internal/tg"
)

func ReloadSummary(s *data.Snapshot) string {
	return fmt.Sprintf("✅ Данные перезагружены.\n\n👥 Студентов: %d (%s)\n📅 Листов расписания: %d",
		s.Roster.Len(), s.Roster.Format(), s.Book.SheetCount())
}

func busyText(action string, chatID, owner int64) string {
	if owner == chatID {
		return "⏳ " + action + " уже выполняется."
	}
	return "⏳ " + action + " уже запущена другим администратором."
}

// HandleReload перечитывает исходные файлы; при ошибке остаётся прежний снимок.
func HandleReload(ctx context.Context, bot *tgbotapi.BotAPI, chatID int64, store *data.Store) error {
	done, owner, ok := guard.Begin(guard.Reload, chatID)
	if !ok {
		_, _ = tg.Send(bot, tgbotapi.NewMessage(chatID, busyText("Перезагрузка", chatID, owner)))
		return nil
	}
	defer done()

	if err := store.Reload(ctx); err != nil {
		_, _ = tg.Send(bot, tgbotapi.NewMessage(chatID, "❌ Не удалось перезагрузить данные, работаем на прежних: "+err.Error()))
		return err
	}
	_, _ = tg.Send(bot, tgbotapi.NewMessage(chatID, ReloadSummary(store.Current())))
	return nil
}

// HandleExportUsers отправляет xlsx со всеми профилями.
func HandleExportUsers(ctx context.Context, bot *tgbotapi.BotAPI, database *sqlx.DB, chatID int64, loc *time.Location, now time.Time) error {
	done, owner, ok := guard.Begin(guard.ExportUsers, chatID)
	if !ok {
		_, _ = tg.Send(bot, tgbotapi.NewMessage(chatID, busyText("Выгрузка", chatID, owner)))
		return nil
	}
	defer done()

	users, err := db.ListUsers(ctx, database)
	if err != nil {
		_, _ = tg.Send(bot, tgbotapi.NewMessage(chatID, "❌ Не удалось получить пользователей."))
		return err
	}
	wb, err := export.UsersWorkbook(users, loc)
	if err != nil {
		return err
	}
	defer wb.Close()
	content, err := wb.Bytes()
	if err != nil {
		return err
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: export.UsersFilename(now.In(loc)), Bytes: content})
	doc.Caption = fmt.Sprintf("👥 Пользователей: %d", len(users))
	_, err = tg.Send(bot, doc)
	return err
}
