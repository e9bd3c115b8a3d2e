// Package auth: «авторизация» по номеру телефона. Профиль создаётся из контакта,
// которым пользователь поделился сам.
package auth

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jmoiron/sqlx"

	"github.com/Spok95/university-assistant-bot/internal/bot/menu"
	"github.com/Spok95/university-assistant-bot/internal/db"
	"github.com/Spok95/university-assistant-bot/internal/identity"
	"github.com/Spok95/university-assistant-bot/internal/models"
	"github.com/Spok95/university-assistant-bot/internal/tg"
)

const (
	contactSavedText = "✅ Спасибо! Номер телефона сохранен.\n\n" +
		"Теперь вы можете получить доступ к вашим данным Moodle. " +
		"Для этого отправьте мне ваше ФИО или ИИН."
	askContactText = "📞 Для доступа к функциям бота необходимо предоставить номер телефона.\n\n" +
		"Нажмите кнопку ниже или используйте команду /start"
	foreignContactText = "⚠️ Пожалуйста, отправьте свой номер кнопкой «" + menu.BtnShareContact + "»."
)

var ErrForeignContact = errors.New("contact belongs to another user")

// ProfileFromContact собирает профиль; чужой контакт не принимается.
func ProfileFromContact(msg *tgbotapi.Message) (models.UserProfile, error) {
	c := msg.Contact
	if c == nil || msg.From == nil {
		return models.UserProfile{}, ErrForeignContact
	}
	if c.UserID != 0 && c.UserID != msg.From.ID {
		return models.UserProfile{}, ErrForeignContact
	}
	phone := identity.NormalizePhone(c.PhoneNumber)
	if phone == "" {
		phone = c.PhoneNumber
	}
	return models.UserProfile{
		UserID:      msg.From.ID,
		Username:    msg.From.UserName,
		FirstName:   msg.From.FirstName,
		LastName:    msg.From.LastName,
		PhoneNumber: phone,
	}, nil
}

// HandleContact сохраняет профиль и подтверждает. Ошибка БД возвращается вызывающему.
func HandleContact(ctx context.Context, bot *tgbotapi.BotAPI, database *sqlx.DB, msg *tgbotapi.Message) error {
	chatID := msg.Chat.ID
	p, err := ProfileFromContact(msg)
	if err != nil {
		_, _ = tg.Send(bot, tgbotapi.NewMessage(chatID, foreignContactText))
		return nil
	}
	if err := db.UpsertUser(ctx, database, p); err != nil {
		return err
	}
	out := tgbotapi.NewMessage(chatID, contactSavedText)
	out.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	_, _ = tg.Send(bot, out)
	return nil
}

// AskContact: ответ неавторизованному пользователю.
func AskContact(bot *tgbotapi.BotAPI, chatID int64) {
	out := tgbotapi.NewMessage(chatID, askContactText)
	out.ReplyMarkup = menu.ContactKeyboard()
	_, _ = tg.Send(bot, out)
}

// CurrentProfile обновляет last_active и возвращает профиль (nil: профиля нет).
func CurrentProfile(ctx context.Context, database *sqlx.DB, userID int64) (*models.UserProfile, error) {
	if err := db.TouchUser(ctx, database, userID); err != nil {
		return nil, err
	}
	return db.GetUser(ctx, database, userID)
}
