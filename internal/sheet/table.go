// Package sheet читает xlsx/csv в простые таблицы строк.
package sheet

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Table: лист с заголовком в первой строке. Rows выровнены по индексу с исходным файлом
// (нулевая строка данных = вторая строка листа).
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// Col возвращает индекс колонки с точным именем или -1.
func (t *Table) Col(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

func (t *Table) Has(name string) bool { return t.Col(name) >= 0 }

// Cell: значение ячейки без пробелов по краям, за пределами строки пустая строка.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return ""
	}
	r := t.Rows[row]
	if col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

func (t *Table) Len() int { return len(t.Rows) }

// Records: строки как упорядоченные записи «колонка → значение».
func (t *Table) Records() []Record {
	out := make([]Record, 0, len(t.Rows))
	for i := range t.Rows {
		out = append(out, t.Record(i))
	}
	return out
}

func (t *Table) Record(row int) Record {
	rec := make(Record, 0, len(t.Columns))
	for c, name := range t.Columns {
		rec = append(rec, Field{Name: name, Value: t.Cell(row, c)})
	}
	return rec
}

type Field struct {
	Name  string
	Value string
}

// Record сохраняет порядок колонок исходного файла.
type Record []Field

func (r Record) Get(name string) (string, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

func (r Record) Value(name string) string {
	v, _ := r.Get(name)
	return v
}

// MarshalJSON пишет объект в порядке колонок.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func normalizeHeader(h []string) []string {
	out := make([]string, len(h))
	for i, v := range h {
		out[i] = strings.TrimSpace(strings.TrimPrefix(v, "\ufeff"))
	}
	return out
}

func newTable(name string, rows [][]string) *Table {
	t := &Table{Name: name}
	if len(rows) == 0 {
		return t
	}
	t.Columns = normalizeHeader(rows[0])
	t.Rows = rows[1:]
	return t
}
