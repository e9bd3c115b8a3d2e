// Package identity приводит телефоны и ИИН к сравнимому виду.
package identity

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// cleanPhone оставляет цифры и ведущий '+'.
func cleanPhone(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && b.Len() == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizePhone переписывает казахстанские номера к виду +7…
// Правила применяются строго по порядку; нераспознанный формат возвращается очищенным.
func NormalizePhone(raw string) string {
	c := cleanPhone(raw)
	switch {
	case strings.HasPrefix(c, "87") && len(c) == 11:
		return "+7" + c[2:]
	case strings.HasPrefix(c, "7") && len(c) == 11:
		return "+" + c
	case strings.HasPrefix(c, "8") && len(c) == 11:
		return "+7" + c[1:]
	case strings.HasPrefix(c, "+7") && len(c) == 12:
		return c
	}
	return c
}

// SamePhone: номера равны, если совпадают нормализованные формы.
func SamePhone(a, b string) bool {
	return NormalizePhone(a) == NormalizePhone(b)
}

// Набор шаблонов валидации намеренно не совпадает с правилами NormalizePhone.
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\+7\d{10}$`),
	regexp.MustCompile(`^87\d{9}$`),
	regexp.MustCompile(`^7\d{10}$`),
	regexp.MustCompile(`^8\d{10}$`),
}

func ValidatePhone(raw string) bool {
	c := cleanPhone(raw)
	for _, p := range phonePatterns {
		if p.MatchString(c) {
			return true
		}
	}
	return false
}

const NationalIDLen = 12

// числовые ячейки таблиц: "123456789012.0", "1.23456789012E+11"
var numericCell = regexp.MustCompile(`^\d+(\.\d+)?([eE][+-]?\d+)?$`)

// CleanNationalID оставляет только цифры. Значения, пришедшие из числовых ячеек,
// сначала переводятся в целое.
func CleanNationalID(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if numericCell.MatchString(s) && strings.ContainsAny(s, ".eE") {
		if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) && f < 1e15 {
			return strconv.FormatInt(int64(f), 10)
		}
	}
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func ValidNationalID(id string) bool {
	if len(id) != NationalIDLen {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
