package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Spok95/university-assistant-bot/internal/models"
)

func TestNewWorkbook(t *testing.T) {
	wb, err := NewWorkbook([]SheetSpec{
		{Title: "Пользователи", Header: []string{"user_id", "phone_number"}, Rows: [][]string{{"1", "+77051234567"}}},
		{Title: "Сетка", Rows: [][]string{{"День", "№"}, {"Дүйсенбі / Понедельник"}}},
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, wb.SaveAs(path))
	require.NoError(t, wb.Close())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Пользователи", "Сетка"}, f.GetSheetList())
	v, _ := f.GetCellValue("Пользователи", "B2")
	assert.Equal(t, "+77051234567", v)
	v, _ = f.GetCellValue("Сетка", "A2")
	assert.Equal(t, "Дүйсенбі / Понедельник", v)
}

func TestUsersFilename(t *testing.T) {
	name := UsersFilename(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "Пользователи — 2025-09-01.xlsx", name)
}

func TestColName(t *testing.T) {
	assert.Equal(t, "A", colName(1))
	assert.Equal(t, "Z", colName(26))
	assert.Equal(t, "AA", colName(27))
}

func TestUsersWorkbook(t *testing.T) {
	ts := time.Date(2024, 12, 25, 5, 0, 0, 0, time.UTC)
	wb, err := UsersWorkbook([]models.UserProfile{
		{UserID: 42, Username: "aliev", FirstName: "Алихан", PhoneNumber: "+77051234567", CreatedAt: ts, LastActive: ts},
		{UserID: 7, FirstName: "Аня", CreatedAt: ts, LastActive: ts},
	}, time.FixedZone("ALMT", 5*3600))
	require.NoError(t, err)
	defer func() { _ = wb.Close() }()

	rows, err := wb.File.GetRows("Пользователи")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Телефон", rows[0][4])
	assert.Equal(t, []string{"42", "@aliev", "Алихан", "", "+77051234567", "25.12.2024 10:00", "25.12.2024 10:00"}, rows[1])
	assert.Equal(t, "7", rows[2][0])
	assert.Equal(t, "", rows[2][1])
}
