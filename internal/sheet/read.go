package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/Spok95/university-assistant-bot/internal/apperr"
)

// Grid: лист без выделения заголовка (для сеток расписания).
type Grid struct {
	Name string
	Rows [][]string
}

func openWorkbook(path string) (*excelize.File, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperr.Wrap(err, apperr.ErrDataUnavailable, "файл не найден: "+path)
		}
		return nil, apperr.Wrap(err, apperr.ErrDataUnavailable, "")
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.ErrDataUnavailable, "не удалось открыть "+path)
	}
	return f, nil
}

// ReadXLSX читает лист sheet (пусто: первый лист). Первая строка считается заголовком.
func ReadXLSX(path, sheet string) (*Table, error) {
	f, err := openWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return nil, apperr.Wrap(fmt.Errorf("no sheets in %s", path), apperr.ErrDataUnavailable, "")
		}
		sheet = list[0]
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, apperr.Wrap(err, apperr.ErrDataUnavailable, "не удалось прочитать лист "+sheet)
	}
	return newTable(sheet, rows), nil
}

// ReadWorkbook возвращает все листы книги как сетки, в порядке листов.
func ReadWorkbook(path string) ([]Grid, error) {
	f, err := openWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var out []Grid
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, apperr.Wrap(err, apperr.ErrDataUnavailable, "не удалось прочитать лист "+name)
		}
		out = append(out, Grid{Name: name, Rows: rows})
	}
	return out, nil
}

// ReadCSV читает csv с разделителем sep; первая строка: заголовок.
func ReadCSV(path string, sep rune) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperr.Wrap(err, apperr.ErrDataUnavailable, "файл не найден: "+path)
		}
		return nil, apperr.Wrap(err, apperr.ErrDataUnavailable, "")
	}
	defer func() { _ = f.Close() }()
	return parseCSV(f, path, sep)
}

func parseCSV(r io.Reader, name string, sep rune) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = sep
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, apperr.Wrap(err, apperr.ErrDataUnavailable, "некорректный csv "+name)
	}
	if len(rows) == 0 {
		return nil, apperr.Wrap(fmt.Errorf("%s: empty csv", name), apperr.ErrDataUnavailable, "")
	}
	return newTable(name, rows), nil
}

// ReadCSVAuto пробует ';', затем ','. Одна колонка после разбора значит, что
// разделитель угадан неверно.
func ReadCSVAuto(path string) (*Table, error) {
	t, err := ReadCSV(path, ';')
	if err == nil && len(t.Columns) > 1 {
		return t, nil
	}
	return ReadCSV(path, ',')
}
