// Package schedule разбирает сетку расписания (лист = курс/поток, колонки = группы).
package schedule

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Spok95/university-assistant-bot/internal/sheet"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"

	missingCell = "nan"
	dateLayout  = "2006-01-02"
)

var dayLabels = [7]string{
	time.Sunday:    "Жексенбі / Воскресенье",
	time.Monday:    "Дүйсенбі / Понедельник",
	time.Tuesday:   "Сейсенбі / Вторник",
	time.Wednesday: "Сәрсенбі / Среда",
	time.Thursday:  "Бейсенбі / Четверг",
	time.Friday:    "Жұма / Пятница",
	time.Saturday:  "Сенбі / Суббота",
}

// DayLabel: двуязычное название дня недели, как оно записано в первой колонке сетки.
func DayLabel(t time.Time) string {
	return dayLabels[t.Weekday()]
}

type Lesson struct {
	Number  string `json:"lesson_number"`
	Time    string `json:"time"`
	Subject string `json:"subject"`
	SortKey int    `json:"time_order"`
}

type DaySchedule struct {
	Group     string   `json:"group"`
	Date      string   `json:"date"`
	DayOfWeek string   `json:"day_of_week"`
	Lessons   []Lesson `json:"schedule"`
	Status    string   `json:"status"`
	Error     string   `json:"error,omitempty"`
}

type WeekSchedule struct {
	Group     string                 `json:"group"`
	WeekStart string                 `json:"week_start"`
	Days      map[string]DaySchedule `json:"schedule"`
	Status    string                 `json:"status"`
}

// Book: неизменяемый набор листов расписания.
type Book struct {
	sheets []sheet.Grid
}

func NewBook(sheets []sheet.Grid) *Book {
	cp := make([]sheet.Grid, len(sheets))
	copy(cp, sheets)
	return &Book{sheets: cp}
}

// Load читает все листы файла расписания.
func Load(path string) (*Book, error) {
	grids, err := sheet.ReadWorkbook(path)
	if err != nil {
		return nil, fmt.Errorf("timetable load: %w", err)
	}
	return NewBook(grids), nil
}

func (b *Book) SheetCount() int {
	if b == nil {
		return 0
	}
	return len(b.sheets)
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Find собирает пары группы на день со всех листов и всех колонок, в заголовке
// которых встречается group. Результат отсортирован по номеру пары.
func (b *Book) Find(group, dayLabel string) []Lesson {
	lessons := []Lesson{}
	if b == nil || group == "" || dayLabel == "" {
		return lessons
	}
	for _, g := range b.sheets {
		if len(g.Rows) < 2 {
			continue
		}
		dayRow := -1
		for i := 1; i < len(g.Rows); i++ {
			if strings.Contains(cell(g.Rows[i], 0), dayLabel) {
				dayRow = i
				break
			}
		}
		if dayRow < 0 {
			continue
		}
		for col, h := range g.Rows[0] {
			if strings.Contains(h, group) {
				lessons = append(lessons, extract(g.Rows, dayRow, col)...)
			}
		}
	}
	sort.SliceStable(lessons, func(i, j int) bool { return lessons[i].SortKey < lessons[j].SortKey })
	return lessons
}

// extract читает строки под строкой дня, пока заполнены номер пары и время.
func extract(rows [][]string, dayRow, col int) []Lesson {
	var out []Lesson
	for _, row := range rows[dayRow+1:] {
		num, tm := cell(row, 1), cell(row, 2)
		if num == "" || tm == "" {
			break
		}
		subj := cell(row, col)
		if subj == "" || subj == missingCell {
			continue
		}
		out = append(out, Lesson{Number: num, Time: tm, Subject: subj, SortKey: sortKey(num)})
	}
	return out
}

// sortKey: "3" и "3.0" дают 3, всё остальное 0.
func sortKey(num string) int {
	if strings.Count(num, ".") > 1 {
		return 0
	}
	for _, r := range num {
		if r != '.' && (r < '0' || r > '9') {
			return 0
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	return int(f)
}

// Day: расписание группы на дату. Отсутствие пар не ошибка, а пустой список.
func (b *Book) Day(group string, date time.Time) DaySchedule {
	ds := DaySchedule{
		Group:     group,
		Date:      date.Format(dateLayout),
		DayOfWeek: DayLabel(date),
		Lessons:   []Lesson{},
		Status:    StatusSuccess,
	}
	if b == nil {
		ds.Status = StatusError
		ds.Error = "расписание не загружено"
		return ds
	}
	ds.Lessons = b.Find(group, ds.DayOfWeek)
	return ds
}

// Week: семь календарных дней начиная со start, ключ в формате 2006-01-02.
func (b *Book) Week(group string, start time.Time) WeekSchedule {
	ws := WeekSchedule{
		Group:     group,
		WeekStart: start.Format(dateLayout),
		Days:      make(map[string]DaySchedule, 7),
		Status:    StatusSuccess,
	}
	for i := 0; i < 7; i++ {
		d := start.AddDate(0, 0, i)
		ds := b.Day(group, d)
		if ds.Status != StatusSuccess {
			ws.Status = ds.Status
		}
		ws.Days[ds.Date] = ds
	}
	return ws
}
