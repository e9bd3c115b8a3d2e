// Package moodle приводит таблицу учётных записей Moodle к единому виду и ищет по ней.
package moodle

import (
	"fmt"
	"strings"

	"github.com/Spok95/university-assistant-bot/internal/sheet"
)

// Канонические поля записи.
const (
	FieldFullName  = "full_name"
	FieldGroup     = "group"
	FieldLogin     = "login"
	FieldPassword  = "password"
	FieldEmail     = "email"
	FieldPhone     = "phone"
	FieldIIN       = "iin"
	FieldSpecialty = "specialty"
	FieldLastName  = "last_name"
	FieldFirstName = "first_name"
)

const EmailDomain = "kru.edu.kz"

type StudentRecord struct {
	Row        int    `json:"row"`
	FullName   string `json:"full_name"`
	Group      string `json:"group"`
	Login      string `json:"login"`
	Password   string `json:"password"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	NationalID string `json:"iin,omitempty"`
	Specialty  string `json:"specialty,omitempty"`
	// Extra: все исходные колонки строки, без изменений.
	Extra sheet.Record `json:"-"`
}

// Roster: неизменяемый результат разбора одной таблицы.
type Roster struct {
	Format  string
	Columns []string
	Records []StudentRecord
	// Колонки-источники для полей (имя исходной колонки).
	Sources map[string]string
}

// Detector: одно правило распознавания формата. Map возвращает соответствие
// «каноническое поле → исходная колонка» или ok=false, если формат не подходит.
type Detector struct {
	Name string
	Map  func(cols []string) (map[string]string, bool)
}

// Detectors перебираются строго по порядку; auto подходит всегда.
var Detectors = []Detector{
	{Name: "format1", Map: detectFormat1},
	{Name: "format2", Map: detectFormat2},
	{Name: "auto", Map: detectAuto},
}

var format1Columns = []struct{ src, dst string }{
	{"cohort1", FieldGroup},
	{"lastname", FieldLastName},
	{"firstname", FieldFirstName},
	{"username", FieldLogin},
	{"password", FieldPassword},
	{"email", FieldEmail},
	{"Телефон", FieldPhone},
	{"ИИН", FieldIIN},
}

var format2Columns = []struct{ src, dst string }{
	{"ФИО", FieldFullName},
	{"Группа", FieldGroup},
	{"Сотовый телефон", FieldPhone},
	{"ОП / Специальность", FieldSpecialty},
	{"ОП/Специальность", FieldSpecialty},
}

// подсказки автоматического режима, порядок полей важен только для логов
var autoHints = []struct {
	field string
	words []string
}{
	{FieldFullName, []string{"фио", "name", "full"}},
	{FieldGroup, []string{"group", "групп"}},
	{FieldPhone, []string{"phone", "телефон", "тел"}},
	{FieldLogin, []string{"login", "username"}},
	{FieldPassword, []string{"password", "пароль"}},
	{FieldEmail, []string{"email", "почта"}},
	{FieldIIN, []string{"iin", "иин"}},
}

func hasCol(cols []string, name string) bool {
	for _, c := range cols {
		if c == name {
			return true
		}
	}
	return false
}

func renameMap(cols []string, table []struct{ src, dst string }) map[string]string {
	m := map[string]string{}
	// канонические колонки, уже присутствующие в файле, имеют приоритет
	for _, c := range cols {
		for _, r := range table {
			if c == r.dst {
				m[r.dst] = c
			}
		}
	}
	for _, r := range table {
		if _, ok := m[r.dst]; ok {
			continue
		}
		if hasCol(cols, r.src) {
			m[r.dst] = r.src
		}
	}
	if hasCol(cols, FieldFullName) {
		m[FieldFullName] = FieldFullName
	}
	return m
}

func detectFormat1(cols []string) (map[string]string, bool) {
	if !hasCol(cols, "username") || !hasCol(cols, "password") {
		return nil, false
	}
	return renameMap(cols, format1Columns), true
}

func detectFormat2(cols []string) (map[string]string, bool) {
	if !hasCol(cols, "ФИО") || !hasCol(cols, "Группа") {
		return nil, false
	}
	return renameMap(cols, format2Columns), true
}

func detectAuto(cols []string) (map[string]string, bool) {
	m := map[string]string{}
	for _, h := range autoHints {
		if hasCol(cols, h.field) {
			m[h.field] = h.field
			continue
		}
		for _, c := range cols {
			lc := strings.ToLower(c)
			if containsAny(lc, h.words) {
				m[h.field] = c
				break
			}
		}
	}
	return m, true
}

func hintFallback(sources map[string]string, cols []string, fields ...string) {
	for _, f := range fields {
		if _, ok := sources[f]; ok {
			continue
		}
		for _, h := range autoHints {
			if h.field != f {
				continue
			}
			for _, c := range cols {
				if containsAny(strings.ToLower(c), h.words) {
					sources[f] = c
					break
				}
			}
		}
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// Resolve определяет формат таблицы и строит нормализованный список записей.
func Resolve(t *sheet.Table) (*Roster, error) {
	if t == nil {
		return nil, fmt.Errorf("resolve: nil table")
	}
	for _, d := range Detectors {
		sources, ok := d.Map(t.Columns)
		if !ok {
			continue
		}
		// ИИН и телефон ищутся по подсказкам в любом формате
		hintFallback(sources, t.Columns, FieldIIN, FieldPhone)
		return build(t, d.Name, sources), nil
	}
	return nil, fmt.Errorf("resolve: no detector matched %v", t.Columns)
}

func build(t *sheet.Table, format string, sources map[string]string) *Roster {
	idx := map[string]int{}
	for field, col := range sources {
		idx[field] = t.Col(col)
	}
	get := func(row int, field string) string {
		i, ok := idx[field]
		if !ok {
			return ""
		}
		return t.Cell(row, i)
	}

	_, hasFullName := sources[FieldFullName]
	records := make([]StudentRecord, 0, t.Len())
	for row := 0; row < t.Len(); row++ {
		rec := StudentRecord{
			Row:        row,
			FullName:   get(row, FieldFullName),
			Group:      get(row, FieldGroup),
			Login:      get(row, FieldLogin),
			Password:   get(row, FieldPassword),
			Email:      get(row, FieldEmail),
			Phone:      get(row, FieldPhone),
			NationalID: get(row, FieldIIN),
			Specialty:  get(row, FieldSpecialty),
			Extra:      t.Record(row),
		}
		if format == "format1" && !hasFullName {
			rec.FullName = joinName(get(row, FieldLastName), get(row, FieldFirstName))
		}
		Synthesize(&rec)
		records = append(records, rec)
	}

	cols := make([]string, len(t.Columns))
	copy(cols, t.Columns)
	return &Roster{Format: format, Columns: cols, Records: records, Sources: sources}
}

func joinName(last, first string) string {
	if first == "" {
		return last
	}
	return last + " " + first
}

// Synthesize заполняет пустые login, password, email детерминированно по
// ФИО, группе и номеру строки. Заполненные значения не трогает.
func Synthesize(r *StudentRecord) {
	n := r.Row + 1
	if r.Login == "" {
		var parts []string
		if f := strings.Fields(r.FullName); len(f) > 0 {
			parts = append(parts, strings.ToLower(f[0]))
		}
		if g := strings.NewReplacer(" ", "", "-", "").Replace(r.Group); g != "" {
			parts = append(parts, g)
		}
		if len(parts) > 0 {
			r.Login = fmt.Sprintf("%s_%03d", strings.Join(parts, "_"), n)
		} else {
			r.Login = fmt.Sprintf("user_%05d", n)
		}
	}
	if r.Password == "" {
		if g := strings.ReplaceAll(r.Group, " ", ""); g != "" {
			r.Password = fmt.Sprintf("%s_%04d", g, n)
		} else {
			r.Password = fmt.Sprintf("pass_%05d", n)
		}
	}
	if r.Email == "" {
		if r.Login != "" {
			r.Email = r.Login + "@" + EmailDomain
		} else {
			r.Email = fmt.Sprintf("user_%05d@%s", n, EmailDomain)
		}
	}
}
