package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	loc := time.FixedZone("ALMT", 5*3600)
	now := time.Date(2024, 12, 25, 22, 30, 0, 0, loc) // среда

	cases := []struct {
		in   string
		want string
	}{
		{"сегодня", "2024-12-25"},
		{" Завтра ", "2024-12-26"},
		{"послезавтра", "2024-12-27"},
		{"понедельник", "2024-12-30"},
		{"среда", "2025-01-01"},
		{"четверг", "2024-12-26"},
		{"31.12.2024", "2024-12-31"},
		{"2025-01-10", "2025-01-10"},
		{"05/01/2025", "2025-01-05"},
		{"8 марта 2025", "2025-03-08"},
	}
	for _, c := range cases {
		got, ok := ParseDate(c.in, now)
		require.True(t, ok, c.in)
		assert.Equal(t, c.want, got.Format("2006-01-02"), c.in)
		assert.Equal(t, loc, got.Location(), c.in)
	}

	for _, bad := range []string{"", "вчера", "32.01.2025", "31 февраля 2025", "2025/01/10"} {
		_, ok := ParseDate(bad, now)
		assert.False(t, ok, bad)
	}
}

func TestExtractGroup(t *testing.T) {
	assert.Equal(t, "ИС-21-101-01", ExtractGroup("расписание ИС-21-101-01 на завтра"))
	assert.Equal(t, "ВТ21-102-02", ExtractGroup("пары ВТ21-102-02"))
	assert.Equal(t, "21-103-01", ExtractGroup("группа 21-103-01"))
	assert.Equal(t, "", ExtractGroup("просто текст"))
}

func TestExtractDate(t *testing.T) {
	assert.Equal(t, "25.12.2024", ExtractDate("пары на 25.12.2024"))
	assert.Equal(t, "2024-12-25", ExtractDate("пары 2024-12-25"))
	assert.Equal(t, "25 декабря 2024", ExtractDate("расписание на 25 декабря 2024 года"))
	assert.Equal(t, "послезавтра", ExtractDate("что послезавтра?"))
	assert.Equal(t, "завтра", ExtractDate("Расписание на ЗАВТРА"))
	assert.Equal(t, "пятница", ExtractDate("пары в пятница"))
	assert.Equal(t, "", ExtractDate("привет"))

	now := time.Date(2024, 12, 25, 12, 0, 0, 0, time.UTC)
	d, ok := ParseDate(ExtractDate("расписание на 25 декабря 2024 года"), now)
	require.True(t, ok)
	assert.Equal(t, time.December, d.Month())
}
