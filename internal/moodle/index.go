package moodle

import (
	"sort"
	"strings"

	"github.com/Spok95/university-assistant-bot/internal/apperr"
	"github.com/Spok95/university-assistant-bot/internal/identity"
)

const DefaultSearchLimit = 10

type Credentials struct {
	FullName string `json:"full_name"`
	Group    string `json:"group"`
	Login    string `json:"login"`
	Password string `json:"password"`
	Email    string `json:"email"`
	IIN      string `json:"iin,omitempty"`
}

type StudentSummary struct {
	FullName string `json:"full_name"`
	Group    string `json:"group"`
	IIN      string `json:"iin"`
	Login    string `json:"login"`
}

type Stats struct {
	TotalStudents int              `json:"total_students"`
	TotalGroups   int              `json:"total_groups"`
	Format        string           `json:"format"`
	Columns       []string         `json:"columns_available"`
	Sample        []StudentSummary `json:"sample_data"`
}

var (
	errEmpty        = apperr.WithMessage(apperr.ErrDataUnavailable, "База данных недоступна")
	errBadIIN       = apperr.WithMessage(apperr.ErrInvalidInput, "Неверный формат ИИН. Должно быть 12 цифр.")
	errNoIINColumn  = apperr.WithMessage(apperr.ErrNotFound, "В данных отсутствует колонка с ИИН")
	errIINNotFound  = apperr.WithMessage(apperr.ErrNotFound, "Студент с указанным ИИН не найден")
	errBadPhoneName = apperr.WithMessage(apperr.ErrInvalidInput, "Не указан номер телефона или ФИО")
	errNoPhoneCol   = apperr.WithMessage(apperr.ErrNotFound, "Не найдена колонка с телефонами")
	errNotFound     = apperr.WithMessage(apperr.ErrNotFound, "Данные не найдены")
)

// Index отвечает на запросы по одному Roster. Индексов нет, каждый вызов делает линейный
// проход, первая подходящая строка выигрывает.
type Index struct {
	roster *Roster
}

func NewIndex(r *Roster) *Index {
	if r == nil {
		r = &Roster{}
	}
	return &Index{roster: r}
}

func (ix *Index) Len() int { return len(ix.roster.Records) }

func (ix *Index) Format() string { return ix.roster.Format }

func (ix *Index) hasSource(field string) bool {
	_, ok := ix.roster.Sources[field]
	return ok
}

func credentialsOf(r StudentRecord) Credentials {
	return Credentials{
		FullName: r.FullName,
		Group:    r.Group,
		Login:    r.Login,
		Password: r.Password,
		Email:    r.Email,
	}
}

// LookupByID ищет студента по ИИН.
func (ix *Index) LookupByID(raw string) (Credentials, error) {
	if ix.Len() == 0 {
		return Credentials{}, errEmpty
	}
	id := identity.CleanNationalID(raw)
	if !identity.ValidNationalID(id) {
		return Credentials{}, errBadIIN
	}
	if !ix.hasSource(FieldIIN) {
		return Credentials{}, errNoIINColumn
	}
	for _, r := range ix.roster.Records {
		if identity.CleanNationalID(r.NationalID) != id {
			continue
		}
		if r.Login == "" || r.Password == "" {
			return Credentials{}, apperr.ErrIncompleteRecord
		}
		c := credentialsOf(r)
		c.IIN = id
		return c, nil
	}
	return Credentials{}, errIINNotFound
}

// LookupByPhoneAndName: телефон строки совпадает после нормализации и ФИО строки
// содержит name без учёта регистра.
func (ix *Index) LookupByPhoneAndName(phone, name string) (Credentials, error) {
	if ix.Len() == 0 {
		return Credentials{}, errEmpty
	}
	name = strings.ToLower(strings.TrimSpace(name))
	want := identity.NormalizePhone(phone)
	if want == "" || name == "" {
		return Credentials{}, errBadPhoneName
	}
	if !ix.hasSource(FieldPhone) {
		return Credentials{}, errNoPhoneCol
	}
	for _, r := range ix.roster.Records {
		if r.Phone == "" || identity.NormalizePhone(r.Phone) != want {
			continue
		}
		if strings.Contains(strings.ToLower(r.FullName), name) {
			if r.Login == "" || r.Password == "" {
				return Credentials{}, apperr.ErrIncompleteRecord
			}
			return credentialsOf(r), nil
		}
	}
	return Credentials{}, errNotFound
}

// Search: подстрока без учёта регистра по ФИО, группе, ИИН и логину, в порядке таблицы.
func (ix *Index) Search(term string, limit int) []StudentSummary {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	term = strings.ToLower(term)
	out := make([]StudentSummary, 0, min(limit, ix.Len()))
	for _, r := range ix.roster.Records {
		if len(out) >= limit {
			break
		}
		if matchAny(term, r.FullName, r.Group, r.NationalID, r.Login) {
			out = append(out, summaryOf(r))
		}
	}
	return out
}

func matchAny(term string, fields ...string) bool {
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func summaryOf(r StudentRecord) StudentSummary {
	return StudentSummary{
		FullName: orDefault(r.FullName, "Не указано"),
		Group:    orDefault(r.Group, "Не указана"),
		IIN:      orDefault(r.NationalID, "Не указан"),
		Login:    orDefault(r.Login, "Не указан"),
	}
}

// Groups: отсортированный список групп без дублей и пустых.
func (ix *Index) Groups() []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, r := range ix.roster.Records {
		g := strings.TrimSpace(r.Group)
		if g == "" {
			continue
		}
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

func (ix *Index) Statistics() Stats {
	st := Stats{
		TotalStudents: ix.Len(),
		TotalGroups:   len(ix.Groups()),
		Format:        ix.roster.Format,
		Columns:       ix.roster.Columns,
		Sample:        []StudentSummary{},
	}
	for i := 0; i < min(3, ix.Len()); i++ {
		r := ix.roster.Records[i]
		st.Sample = append(st.Sample, StudentSummary{FullName: r.FullName, Group: r.Group, Login: r.Login})
	}
	return st
}
