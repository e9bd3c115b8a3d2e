package handlers

import (
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/university-assistant-bot/internal/metrics"
	"github.com/Spok95/university-assistant-bot/internal/schedule"
	"github.com/Spok95/university-assistant-bot/internal/tg"
)

var scheduleWords = []string{"расписание", "пары", "когда учиться", "распис"}

// ScheduleDate берёт из текста явную дату или относительное слово, затем день недели,
// иначе сегодня.
func ScheduleDate(text string, now time.Time) time.Time {
	if w := schedule.ExtractDate(text); w != "" {
		if d, ok := schedule.ParseDate(w, now); ok {
			return d
		}
	}
	for _, f := range strings.Fields(strings.ToLower(text)) {
		if d, ok := schedule.ParseDate(strings.Trim(f, ".,:;!?"), now); ok {
			return d
		}
	}
	d, _ := schedule.ParseDate("сегодня", now)
	return d
}

func FormatDaySchedule(ds schedule.DaySchedule) string {
	if ds.Status != schedule.StatusSuccess {
		return "❌ Произошла ошибка при получении расписания"
	}
	if len(ds.Lessons) == 0 {
		return noLessonsText
	}
	var b strings.Builder
	fmt.Fprintf(&b, "📅 Расписание для группы %s\n", ds.Group)
	fmt.Fprintf(&b, "📅 %s", ds.DayOfWeek)
	if ds.Date != "" {
		if d, err := time.Parse("2006-01-02", ds.Date); err == nil {
			fmt.Fprintf(&b, ", %s", d.Format("02.01.2006"))
		}
	}
	b.WriteString("\n\n")
	for _, l := range ds.Lessons {
		fmt.Fprintf(&b, "🕒 %s - %s\n", l.Time, l.Subject)
	}
	return strings.TrimRight(b.String(), "\n")
}

// HandleScheduleRequest: если группа найдена в тексте, шлёт расписание на день, иначе подсказку.
func HandleScheduleRequest(bot *tgbotapi.BotAPI, chatID int64, book *schedule.Book, text string, now time.Time, webAppURL string) {
	group := schedule.ExtractGroup(text)
	if group == "" {
		out := tgbotapi.NewMessage(chatID, scheduleHintText)
		withApp(&out, webAppURL)
		_, _ = tg.Send(bot, out)
		return
	}
	ds := book.Day(group, ScheduleDate(text, now))
	metrics.ObserveLookup("schedule", ds.Status)
	_, _ = tg.Send(bot, tgbotapi.NewMessage(chatID, FormatDaySchedule(ds)))
}
