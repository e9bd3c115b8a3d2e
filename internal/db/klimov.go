package db

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/Spok95/university-assistant-bot/internal/ctxutil"
	"github.com/Spok95/university-assistant-bot/internal/models"
)

func SaveKlimovResult(ctx context.Context, database *sqlx.DB, r models.KlimovResult) (int64, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	var id int64
	err := database.QueryRowxContext(ctx, `
		INSERT INTO klimov_results (user_id, nature_score, tech_score, person_score, sign_score, art_score, recommended_category)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING result_id`,
		r.UserID, r.NatureScore, r.TechScore, r.PersonScore, r.SignScore, r.ArtScore, r.RecommendedCategory,
	).Scan(&id)
	return id, err
}

// LastKlimovResults: последние результаты пользователя, новые первыми.
func LastKlimovResults(ctx context.Context, database *sqlx.DB, userID int64, limit int) ([]models.KlimovResult, error) {
	if limit <= 0 {
		limit = 5
	}
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	var out []models.KlimovResult
	err := database.SelectContext(ctx, &out, `
		SELECT result_id, user_id, test_date, nature_score, tech_score, person_score, sign_score, art_score,
		       COALESCE(recommended_category, '') AS recommended_category
		FROM klimov_results WHERE user_id = $1
		ORDER BY test_date DESC, result_id DESC
		LIMIT $2`, userID, limit)
	return out, err
}
