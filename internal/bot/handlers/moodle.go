package handlers

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/university-assistant-bot/internal/apperr"
	"github.com/Spok95/university-assistant-bot/internal/metrics"
	"github.com/Spok95/university-assistant-bot/internal/models"
	"github.com/Spok95/university-assistant-bot/internal/moodle"
	"github.com/Spok95/university-assistant-bot/internal/tg"
)

var moodleWords = []string{"логин", "пароль", "moodle", "данные", "учетные"}

// ИИН в тексте: 12 цифр подряд, допускаются пробелы и дефисы между группами
var iinInText = regexp.MustCompile(`\d{3}[\s-]?\d{3}[\s-]?\d{3}[\s-]?\d{3}`)

// MoodleQuery разбирает запрос: ИИН, если он есть в тексте, иначе ФИО, то есть текст
// без ключевых слов и знаков препинания.
func MoodleQuery(text string) (iin, name string) {
	if m := iinInText.FindString(text); m != "" {
		return strings.NewReplacer(" ", "", "-", "").Replace(m), ""
	}
	var parts []string
	for _, f := range strings.Fields(text) {
		w := strings.Trim(f, ".,:;!?«»\"'()")
		if w == "" || containsAny(strings.ToLower(w), moodleWords) {
			continue
		}
		parts = append(parts, w)
	}
	return "", strings.Join(parts, " ")
}

func FormatCredentials(c moodle.Credentials) string {
	var b strings.Builder
	b.WriteString("🎓 Ваши учетные данные для Moodle:\n\n")
	fmt.Fprintf(&b, "👤 ФИО: %s\n", c.FullName)
	fmt.Fprintf(&b, "📚 Группа: %s\n", c.Group)
	fmt.Fprintf(&b, "🔑 Логин: %s\n", c.Login)
	fmt.Fprintf(&b, "🔒 Пароль: %s\n", c.Password)
	fmt.Fprintf(&b, "📧 Email: %s\n\n", c.Email)
	b.WriteString("💡 Сохраните эти данные в надежном месте!")
	return b.String()
}

// lookupFailureText: на «не найдено» и неверный ввод подсказка, иначе текст ошибки.
func lookupFailureText(err error) string {
	if errors.Is(err, apperr.ErrNotFound) || errors.Is(err, apperr.ErrInvalidInput) {
		return credentialsNotFoundText
	}
	return "❌ " + apperr.FromError(err).Message
}

// FindCredentials: по ИИН из текста или по телефону профиля и ФИО.
func FindCredentials(roster *moodle.Index, profile *models.UserProfile, text string) (moodle.Credentials, string, error) {
	iin, name := MoodleQuery(text)
	if iin != "" {
		c, err := roster.LookupByID(iin)
		return c, "iin", err
	}
	c, err := roster.LookupByPhoneAndName(profile.PhoneNumber, name)
	return c, "phone", err
}

// HandleMoodleRequest отвечает учётными данными. Возвращаемая ошибка: исход поиска,
// пользователю уже отправлен ответ.
func HandleMoodleRequest(bot *tgbotapi.BotAPI, chatID int64, roster *moodle.Index, profile *models.UserProfile, text string) error {
	c, kind, err := FindCredentials(roster, profile, text)
	if err != nil {
		metrics.ObserveLookup(kind, apperr.FromError(err).Code)
		_, _ = tg.Send(bot, tgbotapi.NewMessage(chatID, lookupFailureText(err)))
		return err
	}
	metrics.ObserveLookup(kind, "ok")
	_, _ = tg.Send(bot, tgbotapi.NewMessage(chatID, FormatCredentials(c)))
	return nil
}
