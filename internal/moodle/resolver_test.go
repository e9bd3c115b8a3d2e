package moodle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/university-assistant-bot/internal/sheet"
)

func TestResolveFormat1(t *testing.T) {
	tbl := &sheet.Table{
		Columns: []string{"username", "password", "lastname", "firstname"},
		Rows: [][]string{
			{"ivanov_i", "Qwerty1", "Иванов", "Иван"},
			{"petrova", "Secret2", "Петрова", "Анна"},
		},
	}
	r, err := Resolve(tbl)
	require.NoError(t, err)
	assert.Equal(t, "format1", r.Format)
	require.Len(t, r.Records, 2)

	for i, rec := range r.Records {
		assert.NotEmpty(t, rec.Login)
		assert.NotEmpty(t, rec.Password)
		assert.Equal(t, tbl.Rows[i][2]+" "+tbl.Rows[i][3], rec.FullName)
	}
	assert.Equal(t, "ivanov_i", r.Records[0].Login)
	assert.Equal(t, "Qwerty1", r.Records[0].Password)
	assert.Equal(t, "ivanov_i@kru.edu.kz", r.Records[0].Email)
}

func TestResolveFormat1Renames(t *testing.T) {
	tbl := &sheet.Table{
		Columns: []string{"username", "password", "lastname", "cohort1", "email", "Телефон", "ИИН"},
		Rows: [][]string{
			{"", "", "Сидоров", "ИС-21", "sid@mail.kz", "8 705 111 22 33", "990101300123"},
		},
	}
	r, err := Resolve(tbl)
	require.NoError(t, err)
	rec := r.Records[0]

	assert.Equal(t, "Сидоров", rec.FullName)
	assert.Equal(t, "ИС-21", rec.Group)
	assert.Equal(t, "сидоров_ИС21_001", rec.Login)
	assert.Equal(t, "ИС-21_0001", rec.Password)
	assert.Equal(t, "sid@mail.kz", rec.Email)
	assert.Equal(t, "990101300123", rec.NationalID)
	assert.Equal(t, "8 705 111 22 33", rec.Phone)
}

func TestResolveFormat2GeneratesCredentials(t *testing.T) {
	tbl := &sheet.Table{
		Columns: []string{"ФИО", "Группа", "Сотовый телефон", "ОП / Специальность"},
		Rows: [][]string{
			{"Ахметов Серик Болатович", "ВТ 22-1", "87051234567", "6B06101 Информатика"},
			{"", "", "", ""},
			{"Жумабаева Айгерим", "", "", ""},
		},
	}
	r, err := Resolve(tbl)
	require.NoError(t, err)
	assert.Equal(t, "format2", r.Format)

	first := r.Records[0]
	assert.Equal(t, "ахметов_ВТ221_001", first.Login)
	assert.Equal(t, "ВТ22-1_0001", first.Password)
	assert.Equal(t, "ахметов_ВТ221_001@kru.edu.kz", first.Email)
	assert.Equal(t, "6B06101 Информатика", first.Specialty)

	empty := r.Records[1]
	assert.Equal(t, "user_00002", empty.Login)
	assert.Equal(t, "pass_00002", empty.Password)
	assert.Equal(t, "user_00002@kru.edu.kz", empty.Email)

	noGroup := r.Records[2]
	assert.Equal(t, "жумабаева_003", noGroup.Login)
	assert.Equal(t, "pass_00003", noGroup.Password)
}

func TestResolveAutoMode(t *testing.T) {
	tbl := &sheet.Table{
		Columns: []string{"№", "Full Name", "Учебная группа", "Контактный тел.", "ИИН студента", "Пароль"},
		Rows: [][]string{
			{"1", "Омаров Дания", "ПО-23", "+7 701 000 00 01", "010203400500", "p@ss"},
		},
	}
	r, err := Resolve(tbl)
	require.NoError(t, err)
	assert.Equal(t, "auto", r.Format)

	rec := r.Records[0]
	assert.Equal(t, "Омаров Дания", rec.FullName)
	assert.Equal(t, "ПО-23", rec.Group)
	assert.Equal(t, "+7 701 000 00 01", rec.Phone)
	assert.Equal(t, "010203400500", rec.NationalID)
	assert.Equal(t, "p@ss", rec.Password)
	assert.Equal(t, "омаров_ПО23_001", rec.Login)
	assert.Equal(t, "омаров_ПО23_001@kru.edu.kz", rec.Email)
	assert.Equal(t, "1", rec.Extra.Value("№"))
}

func TestAutoModeTakesFirstMatchingColumn(t *testing.T) {
	m, ok := detectAuto([]string{"Телефон домашний", "Телефон мобильный"})
	require.True(t, ok)
	assert.Equal(t, "Телефон домашний", m[FieldPhone])
}

func TestDetectorOrder(t *testing.T) {
	// обе сигнатуры в одной таблице: format1 проверяется первым
	tbl := &sheet.Table{Columns: []string{"ФИО", "Группа", "username", "password"}, Rows: [][]string{{"A B", "G", "l", "p"}}}
	r, err := Resolve(tbl)
	require.NoError(t, err)
	assert.Equal(t, "format1", r.Format)
	assert.Equal(t, "l", r.Records[0].Login)
}

func TestSynthesizeNeverOverwrites(t *testing.T) {
	rec := StudentRecord{Row: 4, FullName: "Test User", Group: "G-1", Login: "given", Password: "pw", Email: "e@x"}
	Synthesize(&rec)
	assert.Equal(t, "given", rec.Login)
	assert.Equal(t, "pw", rec.Password)
	assert.Equal(t, "e@x", rec.Email)

	again := rec
	Synthesize(&again)
	assert.Equal(t, rec, again)
}

func TestSynthesizeFillsOnlyBlank(t *testing.T) {
	rec := StudentRecord{Row: 9, FullName: "Test User", Group: "G 1", Login: "given"}
	Synthesize(&rec)
	assert.Equal(t, "given", rec.Login)
	assert.Equal(t, "G1_0010", rec.Password)
	assert.Equal(t, "given@kru.edu.kz", rec.Email)
}
