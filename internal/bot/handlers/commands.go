package handlers

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/university-assistant-bot/internal/bot/menu"
	"github.com/Spok95/university-assistant-bot/internal/tg"
)

// withApp добавляет кнопку приложения, если адрес задан.
func withApp(out *tgbotapi.MessageConfig, url string) {
	if kb, ok := menu.AppKeyboard(url); ok {
		out.ReplyMarkup = kb
	}
}

// HandleStart: приветствие и запрос контакта. Кнопка приложения идёт отдельным сообщением,
// у одного сообщения не может быть двух клавиатур.
func HandleStart(bot *tgbotapi.BotAPI, msg *tgbotapi.Message, webAppURL string) {
	chatID := msg.Chat.ID
	name := ""
	if msg.From != nil {
		name = msg.From.FirstName
	}
	out := tgbotapi.NewMessage(chatID, startText(name))
	out.ReplyMarkup = menu.ContactKeyboard()
	_, _ = tg.Send(bot, out)

	if kb, ok := menu.AppKeyboard(webAppURL); ok {
		app := tgbotapi.NewMessage(chatID, menu.BtnOpenApp)
		app.ReplyMarkup = kb
		_, _ = tg.Send(bot, app)
	}
}

func HandleHelp(bot *tgbotapi.BotAPI, chatID int64, webAppURL string) {
	out := tgbotapi.NewMessage(chatID, helpText)
	out.ReplyMarkup = menu.HelpKeyboard(webAppURL)
	_, _ = tg.Send(bot, out)
}

func HandleApp(bot *tgbotapi.BotAPI, chatID int64, webAppURL string) {
	out := tgbotapi.NewMessage(chatID, appText(webAppURL))
	out.DisableWebPagePreview = true
	if kb, ok := menu.OpenAppKeyboard(webAppURL); ok {
		out.ReplyMarkup = kb
	}
	_, _ = tg.Send(bot, out)
}

func HandleMoodleInfo(bot *tgbotapi.BotAPI, chatID int64, webAppURL string) {
	out := tgbotapi.NewMessage(chatID, moodleInfoText)
	out.ReplyMarkup = menu.ContactKeyboard()
	_, _ = tg.Send(bot, out)
}

func HandleScheduleInfo(bot *tgbotapi.BotAPI, chatID int64, webAppURL string) {
	out := tgbotapi.NewMessage(chatID, scheduleInfoText)
	withApp(&out, webAppURL)
	_, _ = tg.Send(bot, out)
}

func HandleAdmissionInfo(bot *tgbotapi.BotAPI, chatID int64, webAppURL string) {
	out := tgbotapi.NewMessage(chatID, admissionInfoText)
	withApp(&out, webAppURL)
	_, _ = tg.Send(bot, out)
}

// HandleCallback отвечает на нажатие inline-кнопки и редактирует исходное сообщение.
func HandleCallback(bot *tgbotapi.BotAPI, cb *tgbotapi.CallbackQuery, webAppURL string) {
	_, _ = tg.Request(bot, tgbotapi.NewCallback(cb.ID, ""))
	if cb.Message == nil {
		return
	}
	text := "🚀 Открытие приложения"
	if cb.Data == menu.CbSupport {
		text = supportText
	}
	edit := tgbotapi.NewEditMessageText(cb.Message.Chat.ID, cb.Message.MessageID, text)
	if kb, ok := menu.AppKeyboard(webAppURL); ok {
		edit.ReplyMarkup = &kb
	}
	_, _ = tg.Send(bot, edit)
}
