package menu

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

const (
	BtnShareContact = "📞 Предоставить номер телефона"
	BtnOpenApp      = "📱 Открыть приложение"
	BtnOpenBrowser  = "🔗 Открыть в браузере"
	BtnSupport      = "📞 Поддержка"

	CbSupport = "support"
)

// ContactKeyboard: reply-клавиатура с запросом номера телефона.
func ContactKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButtonContact(BtnShareContact),
		),
	)
	kb.OneTimeKeyboard = true
	kb.ResizeKeyboard = true
	return kb
}

// AppKeyboard: кнопка веб-приложения; без адреса клавиатуры нет (ok=false).
func AppKeyboard(url string) (tgbotapi.InlineKeyboardMarkup, bool) {
	if url == "" {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL(BtnOpenApp, url)),
	), true
}

// HelpKeyboard: приложение (если задано) и поддержка.
func HelpKeyboard(url string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	if url != "" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL(BtnOpenApp, url)))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(BtnSupport, CbSupport)))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// OpenAppKeyboard для /app: в Telegram и в браузере ведут на один адрес.
func OpenAppKeyboard(url string) (tgbotapi.InlineKeyboardMarkup, bool) {
	if url == "" {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL(BtnOpenApp, url)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL(BtnOpenBrowser, url)),
	), true
}
