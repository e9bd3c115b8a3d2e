package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Spok95/university-assistant-bot/internal/ctxutil"
	"github.com/Spok95/university-assistant-bot/internal/models"
)

const userColumns = `user_id, COALESCE(username, '') AS username, first_name,
COALESCE(last_name, '') AS last_name, phone_number, created_at, last_active`

// UpsertUser заменяет профиль по user_id; created_at сохраняется, last_active = now().
func UpsertUser(ctx context.Context, database *sqlx.DB, u models.UserProfile) error {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	_, err := database.NamedExecContext(ctx, `
		INSERT INTO users (user_id, username, first_name, last_name, phone_number, created_at, last_active)
		VALUES (:user_id, NULLIF(:username, ''), :first_name, NULLIF(:last_name, ''), :phone_number, now(), now())
		ON CONFLICT (user_id) DO UPDATE SET
			username     = EXCLUDED.username,
			first_name   = EXCLUDED.first_name,
			last_name    = EXCLUDED.last_name,
			phone_number = EXCLUDED.phone_number,
			last_active  = now()`, u)
	return err
}

// GetUser возвращает nil, nil если профиля нет.
func GetUser(ctx context.Context, database *sqlx.DB, userID int64) (*models.UserProfile, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	var u models.UserProfile
	err := database.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE user_id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// TouchUser обновляет только last_active. Неизвестный user_id: не ошибка.
func TouchUser(ctx context.Context, database *sqlx.DB, userID int64) error {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	_, err := database.ExecContext(ctx, `UPDATE users SET last_active = now() WHERE user_id = $1`, userID)
	return err
}

func ListUsers(ctx context.Context, database *sqlx.DB) ([]models.UserProfile, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	var out []models.UserProfile
	err := database.SelectContext(ctx, &out, `SELECT `+userColumns+` FROM users ORDER BY created_at, user_id`)
	return out, err
}

// ListUsersByIDs: профили из списка; отсутствующие id пропускаются.
func ListUsersByIDs(ctx context.Context, database *sqlx.DB, ids []int64) ([]models.UserProfile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	var out []models.UserProfile
	err := database.SelectContext(ctx, &out,
		`SELECT `+userColumns+` FROM users WHERE user_id = ANY($1) ORDER BY user_id`, pq.Array(ids))
	return out, err
}
