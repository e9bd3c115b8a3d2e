package schedule

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var weekdays = map[string]time.Weekday{
	"понедельник": time.Monday,
	"вторник":     time.Tuesday,
	"среда":       time.Wednesday,
	"четверг":     time.Thursday,
	"пятница":     time.Friday,
	"суббота":     time.Saturday,
	"воскресенье": time.Sunday,
}

var months = map[string]time.Month{
	"января": time.January, "февраля": time.February, "марта": time.March,
	"апреля": time.April, "мая": time.May, "июня": time.June,
	"июля": time.July, "августа": time.August, "сентября": time.September,
	"октября": time.October, "ноября": time.November, "декабря": time.December,
}

var dateLayouts = []string{"02.01.2006", dateLayout, "02/01/2006"}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ParseDate понимает «сегодня/завтра/послезавтра», название дня недели (ближайший
// такой день строго после сегодняшнего), 25.12.2024, 2024-12-25, 25/12/2024 и
// «25 декабря 2024». Результат: полночь в часовом поясе now.
func ParseDate(input string, now time.Time) (time.Time, bool) {
	s := strings.ToLower(strings.TrimSpace(input))
	today := midnight(now)

	switch s {
	case "сегодня":
		return today, true
	case "завтра":
		return today.AddDate(0, 0, 1), true
	case "послезавтра":
		return today.AddDate(0, 0, 2), true
	}
	if wd, ok := weekdays[s]; ok {
		ahead := int(wd) - int(today.Weekday())
		if ahead <= 0 {
			ahead += 7
		}
		return today.AddDate(0, 0, ahead), true
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, now.Location()); err == nil {
			return t, true
		}
	}
	if f := strings.Fields(s); len(f) == 3 {
		day, err1 := strconv.Atoi(f[0])
		year, err2 := strconv.Atoi(f[2])
		m, ok := months[f[1]]
		if err1 == nil && err2 == nil && ok && day >= 1 && day <= 31 {
			t := time.Date(year, m, day, 0, 0, 0, 0, now.Location())
			if t.Day() == day {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

var groupPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[А-Яа-я]{2,4}-\d{2}-\d{3}-\d{2}`),
	regexp.MustCompile(`[А-Яа-я]{2,4}\d{2}-\d{3}-\d{2}`),
	regexp.MustCompile(`\d{2}-\d{3}-\d{2}`),
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{2}\.\d{2}\.\d{4}`),
	regexp.MustCompile(`\d{4}-\d{2}-\d{2}`),
	regexp.MustCompile(`\d{1,2}\s+\p{L}+\s+\d{4}`),
}

// относительные слова; «послезавтра» раньше «завтра»
var relativeWords = []string{
	"послезавтра", "сегодня", "завтра",
	"понедельник", "вторник", "среда", "четверг", "пятница", "суббота", "воскресенье",
}

// ExtractGroup находит в тексте шифр группы вида ИС-21-101-01; пусто, если не нашёл.
func ExtractGroup(text string) string {
	for _, re := range groupPatterns {
		if m := re.FindString(text); m != "" {
			return m
		}
	}
	return ""
}

// ExtractDate возвращает фрагмент текста, пригодный для ParseDate.
func ExtractDate(text string) string {
	for _, re := range datePatterns {
		if m := re.FindString(text); m != "" {
			return m
		}
	}
	lower := strings.ToLower(text)
	for _, w := range relativeWords {
		if strings.Contains(lower, w) {
			return w
		}
	}
	return ""
}
