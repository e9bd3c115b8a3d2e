//go:build testutil
// +build testutil

package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/Spok95/university-assistant-bot/internal/db"
	"github.com/Spok95/university-assistant-bot/internal/models"
	"github.com/Spok95/university-assistant-bot/internal/testutil/testdb"
)

func TestProfileStore_UpsertKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	database := h.Sqlx()

	if u, err := db.GetUser(ctx, database, 100); err != nil || u != nil {
		t.Fatalf("expected absent user, got %v, %v", u, err)
	}

	p := models.UserProfile{UserID: 100, FirstName: "Алихан", PhoneNumber: "+77051234567"}
	if err := db.UpsertUser(ctx, database, p); err != nil {
		t.Fatal(err)
	}
	first, err := db.GetUser(ctx, database, 100)
	if err != nil || first == nil {
		t.Fatalf("get after upsert: %v", err)
	}
	if !first.Authenticated() {
		t.Fatal("profile with phone must be authenticated")
	}

	time.Sleep(20 * time.Millisecond)
	p.Username = "aliev"
	p.PhoneNumber = "+77050000000"
	if err := db.UpsertUser(ctx, database, p); err != nil {
		t.Fatal(err)
	}
	second, err := db.GetUser(ctx, database, 100)
	if err != nil {
		t.Fatal(err)
	}
	if second.PhoneNumber != "+77050000000" || second.Username != "aliev" {
		t.Fatalf("upsert did not replace: %+v", second)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("created_at changed: %v -> %v", first.CreatedAt, second.CreatedAt)
	}
	if !second.LastActive.After(first.LastActive) {
		t.Fatalf("last_active not bumped: %v -> %v", first.LastActive, second.LastActive)
	}

	time.Sleep(20 * time.Millisecond)
	if err := db.TouchUser(ctx, database, 100); err != nil {
		t.Fatal(err)
	}
	if err := db.TouchUser(ctx, database, 999); err != nil {
		t.Fatalf("touch of unknown user: %v", err)
	}
	third, _ := db.GetUser(ctx, database, 100)
	if !third.LastActive.After(second.LastActive) {
		t.Fatal("touch did not update last_active")
	}

	if err := db.UpsertUser(ctx, database, models.UserProfile{UserID: 200, FirstName: "Бек", PhoneNumber: "+77010000001"}); err != nil {
		t.Fatal(err)
	}
	byIDs, err := db.ListUsersByIDs(ctx, database, []int64{200, 100, 300})
	if err != nil {
		t.Fatal(err)
	}
	if len(byIDs) != 2 || byIDs[0].UserID != 100 {
		t.Fatalf("unexpected users: %+v", byIDs)
	}
	all, err := db.ListUsers(ctx, database)
	if err != nil || len(all) != 2 {
		t.Fatalf("list users: %d, %v", len(all), err)
	}
}

func TestProfileStore_KlimovResults(t *testing.T) {
	ctx := context.Background()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	database := h.Sqlx()

	if err := db.UpsertUser(ctx, database, models.UserProfile{UserID: 1, FirstName: "Аня", PhoneNumber: "+77010000001"}); err != nil {
		t.Fatal(err)
	}
	for _, cat := range []string{"nature", "art"} {
		if _, err := db.SaveKlimovResult(ctx, database, models.KlimovResult{UserID: 1, ArtScore: 2, RecommendedCategory: cat}); err != nil {
			t.Fatal(err)
		}
	}
	res, err := db.LastKlimovResults(ctx, database, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 || res[0].RecommendedCategory != "art" {
		t.Fatalf("unexpected results: %+v", res)
	}
}
