// Package assistant отвечает на свободный текст: языковая модель, если она
// настроена, иначе ответы по ключевым словам.
package assistant

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Spok95/university-assistant-bot/internal/metrics"
)

const SystemPrompt = `Ты - AW_ZEO, умный помощник для студентов и абитуриентов КРУ им. А. Байтурсынова.
Отвечай дружелюбно, но по делу. Используй уважительное обращение на "вы".

Основные функции бота:
1. Расписание пар - показывает когда и какие пары
2. Учетные данные Moodle - логины и пароли
3. Информация о поступлении - программы, баллы ЕНТ
4. Тест Климова - профориентация
5. Образовательные программы - бакалавриат, магистратура, докторантура

Отвечай кратко и полезно. Если вопрос не по теме, вежливо направляй в нужный раздел.`

// Generator: внешний генератор текста.
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

type topic struct {
	words []string
	reply string
}

// порядок важен: первая подходящая тема выигрывает
var topics = []topic{
	{
		words: []string{"расписание", "пары", "когда учиться", "распис", "занятия"},
		reply: "📅 Чтобы посмотреть расписание, откройте приложение и перейдите в раздел 'Расписание'. Там вы сможете выбрать свою группу и посмотреть пары на любой день!",
	},
	{
		words: []string{"логин", "пароль", "moodle", "аккаунт", "учетные данные"},
		reply: "🎓 Ваши данные для Moodle можно получить в разделе 'Moodle' приложения. Там же есть инструкции по входу в систему!",
	},
	{
		words: []string{"поступление", "ент", "баллы", "абитуриент", "поступить"},
		reply: "🎯 Вся информация о поступлении, включая программы, проходные баллы и документы, доступна в разделе 'Поступление'. Там же можно пройти профориентационный тест!",
	},
	{
		words: []string{"тест", "климова", "профориентация", "профессия"},
		reply: "🧩 Тест Климова поможет определить подходящие профессии! Пройдите его в разделе 'Поступление' -> 'Профориентация'.",
	},
	{
		words: []string{"программы", "специальности", "факультет", "образование"},
		reply: "📚 Информация обо всех образовательных программах (бакалавриат, магистратура, докторантура) доступна в разделе 'Поступление'.",
	},
}

const defaultReply = "🤖 Я понял ваш вопрос! Для получения точной информации откройте приложение AW_ZEO - там есть все необходимые разделы:\n\n" +
	"• 📅 Расписание\n• 🎓 Moodle\n• 🎯 Поступление\n• 👤 Профиль\n\nИли задайте вопрос более конкретно!"

// Fallback: детерминированный ответ по ключевым словам.
func Fallback(text string) string {
	lower := strings.ToLower(text)
	for _, t := range topics {
		for _, w := range t.words {
			if strings.Contains(lower, w) {
				return t.reply
			}
		}
	}
	return defaultReply
}

type Responder struct {
	gen     Generator
	timeout time.Duration
	log     *zap.Logger
}

// NewResponder: gen может быть nil, тогда только ответы по ключевым словам.
func NewResponder(gen Generator, timeout time.Duration, log *zap.Logger) *Responder {
	if log == nil {
		log = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Responder{gen: gen, timeout: timeout, log: log}
}

func (r *Responder) HasModel() bool { return r != nil && r.gen != nil }

// Reply никогда не возвращает ошибку: при любом сбое модели отвечает по ключевым словам.
func (r *Responder) Reply(ctx context.Context, text string) string {
	if !r.HasModel() {
		return Fallback(text)
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	out, err := r.gen.Generate(ctx, SystemPrompt, text)
	out = strings.TrimSpace(out)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		metrics.LLMRequests.WithLabelValues("timeout").Inc()
		r.log.Warn("llm timeout, using fallback", zap.Duration("timeout", r.timeout))
		return Fallback(text)
	case err != nil:
		metrics.LLMRequests.WithLabelValues("error").Inc()
		r.log.Warn("llm error, using fallback", zap.Error(err))
		return Fallback(text)
	case out == "":
		metrics.LLMRequests.WithLabelValues("empty").Inc()
		return Fallback(text)
	}
	metrics.LLMRequests.WithLabelValues("ok").Inc()
	return out
}
