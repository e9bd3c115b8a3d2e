package models

import (
	"strings"
	"time"
)

// UserProfile: пользователь чата, поделившийся контактом.
type UserProfile struct {
	UserID      int64     `db:"user_id"`
	Username    string    `db:"username"`
	FirstName   string    `db:"first_name"`
	LastName    string    `db:"last_name"`
	PhoneNumber string    `db:"phone_number"`
	CreatedAt   time.Time `db:"created_at"`
	LastActive  time.Time `db:"last_active"`
}

// Authenticated: телефон уже получен.
func (u *UserProfile) Authenticated() bool {
	return u != nil && strings.TrimSpace(u.PhoneNumber) != ""
}

func (u *UserProfile) DisplayName() string {
	if u == nil {
		return ""
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
