package export

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

type SheetSpec struct {
	Title  string
	Header []string
	Rows   [][]string
}

type Workbook struct {
	File *excelize.File
}

// NewWorkbook собирает книгу из листов; у каждого листа заголовок в первой строке.
// Пустой Header пишет Rows как есть (нужно для сеток без шапки).
func NewWorkbook(sheets []SheetSpec) (*Workbook, error) {
	f := excelize.NewFile()
	bold, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})

	for i, s := range sheets {
		name := s.Title
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("new sheet: %w", err)
		}

		offset := 1
		if len(s.Header) > 0 {
			for col, h := range s.Header {
				cell, _ := excelize.CoordinatesToCellName(col+1, 1)
				if err := f.SetCellStr(name, cell, h); err != nil {
					return nil, fmt.Errorf("set cell %s: %w", cell, err)
				}
			}
			end := colName(len(s.Header)) + "1"
			_ = f.SetCellStyle(name, "A1", end, bold)
			_ = f.AutoFilter(name, "A1:"+end, nil)
			offset = 2
		}

		for r, row := range s.Rows {
			for c, val := range row {
				if val == "" {
					continue
				}
				cell, _ := excelize.CoordinatesToCellName(c+1, r+offset)
				if err := f.SetCellStr(name, cell, val); err != nil {
					return nil, fmt.Errorf("set cell %s: %w", cell, err)
				}
			}
		}
		fitColumns(f, name, s)
	}
	return &Workbook{File: f}, nil
}

func (w *Workbook) SaveAs(path string) error { return w.File.SaveAs(path) }

func (w *Workbook) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := w.File.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (w *Workbook) Close() error { return w.File.Close() }

// UsersFilename: имя файла выгрузки профилей.
func UsersFilename(now time.Time) string {
	return sanitizeFileName(fmt.Sprintf("Пользователи — %s.xlsx", now.Format("2006-01-02")))
}

// эвристическая ширина: по длине заголовка и первых 50 строк
func fitColumns(f *excelize.File, sheet string, s SheetSpec) {
	cols := len(s.Header)
	for _, r := range s.Rows {
		if len(r) > cols {
			cols = len(r)
		}
	}
	for c := 0; c < cols; c++ {
		maxim := 0
		if c < len(s.Header) {
			maxim = visualLen(s.Header[c])
		}
		for r := 0; r < min(50, len(s.Rows)); r++ {
			if c < len(s.Rows[r]) {
				if l := visualLen(s.Rows[r][c]); l > maxim {
					maxim = l
				}
			}
		}
		w := float64(maxim) * 1.1
		if w < 12 {
			w = 12
		}
		if w > 60 {
			w = 60
		}
		_ = f.SetColWidth(sheet, colName(c+1), colName(c+1), w)
	}
}

// 1 -> A; 27 -> AA
func colName(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+(n%26))) + s
		n /= 26
	}
	return s
}

func visualLen(s string) int {
	n := 0
	for _, r := range s {
		if r == '\t' {
			n += 4
		} else {
			n++
		}
	}
	return n
}

var invalidFileRe = regexp.MustCompile(`[\\/:*?"<>|]+`)

func sanitizeFileName(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Join(strings.Fields(s), " ")
	return invalidFileRe.ReplaceAllString(s, "_")
}
