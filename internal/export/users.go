package export

import (
	"strconv"
	"time"

	"github.com/Spok95/university-assistant-bot/internal/models"
)

var usersHeader = []string{"ID", "Username", "Имя", "Фамилия", "Телефон", "Зарегистрирован", "Активность"}

// UsersWorkbook: выгрузка профилей для администратора; время в часовом поясе loc.
func UsersWorkbook(users []models.UserProfile, loc *time.Location) (*Workbook, error) {
	if loc == nil {
		loc = time.UTC
	}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		username := ""
		if u.Username != "" {
			username = "@" + u.Username
		}
		rows = append(rows, []string{
			strconv.FormatInt(u.UserID, 10),
			username,
			u.FirstName,
			u.LastName,
			u.PhoneNumber,
			u.CreatedAt.In(loc).Format("02.01.2006 15:04"),
			u.LastActive.In(loc).Format("02.01.2006 15:04"),
		})
	}
	return NewWorkbook([]SheetSpec{{Title: "Пользователи", Header: usersHeader, Rows: rows}})
}
