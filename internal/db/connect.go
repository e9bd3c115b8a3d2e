package db

import (
	"context"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/Spok95/university-assistant-bot/internal/ctxutil"
)

// Open подключается к Postgres через pgx и проверяет соединение.
func Open(ctx context.Context, dsn string) (*sqlx.DB, error) {
	database, err := sqlx.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	database.SetMaxOpenConns(10)
	database.SetMaxIdleConns(5)

	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	if err := database.PingContext(ctx); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return database, nil
}
