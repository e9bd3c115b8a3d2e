package models

import "time"

type KlimovResult struct {
	ResultID            int64     `db:"result_id" json:"result_id"`
	UserID              int64     `db:"user_id" json:"user_id"`
	TestDate            time.Time `db:"test_date" json:"test_date"`
	NatureScore         int       `db:"nature_score" json:"nature_score"`
	TechScore           int       `db:"tech_score" json:"tech_score"`
	PersonScore         int       `db:"person_score" json:"person_score"`
	SignScore           int       `db:"sign_score" json:"sign_score"`
	ArtScore            int       `db:"art_score" json:"art_score"`
	RecommendedCategory string    `db:"recommended_category" json:"recommended_category"`
}
