package repositories

import (
	"testing"

	"github.com/fran21fran/candyweb-backend/internal/models"
)

func intPtr(v int) *int { return &v }

func saveScore(t *testing.T, repo ScoreRepository, userID uint, gameID string, score int, completionTime *int) {
	t.Helper()
	err := repo.SaveScore(&models.GameScore{
		UserID:         userID,
		GameID:         gameID,
		Score:          score,
		CompletionTime: completionTime,
	})
	if err != nil {
		t.Fatalf("failed to save score: %v", err)
	}
}

func TestSaveScoreAppliesDefaults(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresScoreRepository(db)
	user := createTestUser(t, db, "ana", "ana@example.com")

	score := &models.GameScore{UserID: user.ID, GameID: "memoria", Score: 100}
	if err := repo.SaveScore(score); err != nil {
		t.Fatalf("failed to save score: %v", err)
	}

	if score.Difficulty != models.DefaultDifficulty {
		t.Errorf("expected default difficulty %q, got %q", models.DefaultDifficulty, score.Difficulty)
	}
	if score.Language != models.DefaultLanguage {
		t.Errorf("expected default language %q, got %q", models.DefaultLanguage, score.Language)
	}
	if score.PlayedAt.IsZero() {
		t.Error("expected PlayedAt to be set")
	}
}

func TestSaveScoreKeepsEveryAttempt(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresScoreRepository(db)
	user := createTestUser(t, db, "ana", "ana@example.com")

	saveScore(t, repo, user.ID, "memoria", 100, nil)
	saveScore(t, repo, user.ID, "memoria", 80, nil)

	scores, err := repo.GetUserScores(user.ID)
	if err != nil {
		t.Fatalf("failed to get user scores: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(scores))
	}
}

func TestGetUserScoresEmpty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresScoreRepository(db)

	scores, err := repo.GetUserScores(42)
	if err != nil {
		t.Fatalf("failed to get user scores: %v", err)
	}
	if scores == nil || len(scores) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", scores)
	}
}

func TestGameLeaderboardOrdering(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresScoreRepository(db)
	ana := createTestUser(t, db, "ana", "ana@example.com")
	beto := createTestUser(t, db, "beto", "beto@example.com")
	carla := createTestUser(t, db, "carla", "carla@example.com")

	// Same score, different completion times, plus one untimed attempt.
	saveScore(t, repo, ana.ID, "memoria", 100, intPtr(60))
	saveScore(t, repo, beto.ID, "memoria", 100, intPtr(30))
	saveScore(t, repo, carla.ID, "memoria", 100, nil)
	saveScore(t, repo, ana.ID, "memoria", 150, nil)
	saveScore(t, repo, beto.ID, "otro-juego", 999, nil)

	entries, err := repo.GetGameLeaderboard("memoria", 10)
	if err != nil {
		t.Fatalf("failed to get game leaderboard: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}

	// Highest score first, then faster completion, untimed last.
	wantUsernames := []string{"ana", "beto", "ana", "carla"}
	wantScores := []int{150, 100, 100, 100}
	for i := range entries {
		if entries[i].Username != wantUsernames[i] {
			t.Errorf("entry %d: expected username %q, got %q", i, wantUsernames[i], entries[i].Username)
		}
		if entries[i].Score != wantScores[i] {
			t.Errorf("entry %d: expected score %d, got %d", i, wantScores[i], entries[i].Score)
		}
	}
}

func TestGameLeaderboardLimit(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresScoreRepository(db)
	user := createTestUser(t, db, "ana", "ana@example.com")

	for i := 0; i < 5; i++ {
		saveScore(t, repo, user.ID, "memoria", 10*i, nil)
	}

	entries, err := repo.GetGameLeaderboard("memoria", 3)
	if err != nil {
		t.Fatalf("failed to get game leaderboard: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	entries, err = repo.GetGameLeaderboard("memoria", 0)
	if err != nil {
		t.Fatalf("failed to get game leaderboard: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty result for non-positive limit, got %d entries", len(entries))
	}
}

func TestGlobalLeaderboardAggregation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresScoreRepository(db)
	ana := createTestUser(t, db, "ana", "ana@example.com")
	beto := createTestUser(t, db, "beto", "beto@example.com")

	// ana: 10 + 20 across two games, beto: 25 in one.
	saveScore(t, repo, ana.ID, "memoria", 10, nil)
	saveScore(t, repo, ana.ID, "ahorcado", 20, nil)
	saveScore(t, repo, beto.ID, "memoria", 25, nil)

	entries, err := repo.GetGlobalLeaderboard(10)
	if err != nil {
		t.Fatalf("failed to get global leaderboard: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Username != "ana" || entries[0].TotalScore != 30 || entries[0].GamesPlayed != 2 {
		t.Errorf("expected ana first with total 30 over 2 attempts, got %+v", entries[0])
	}
	if entries[1].Username != "beto" || entries[1].TotalScore != 25 || entries[1].GamesPlayed != 1 {
		t.Errorf("expected beto second with total 25 over 1 attempt, got %+v", entries[1])
	}
}

func TestGlobalLeaderboardEmpty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresScoreRepository(db)
	createTestUser(t, db, "ana", "ana@example.com")

	entries, err := repo.GetGlobalLeaderboard(10)
	if err != nil {
		t.Fatalf("failed to get global leaderboard: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries without scores, got %d", len(entries))
	}
}

func TestUserRankingCompetitionStyle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresScoreRepository(db)
	ana := createTestUser(t, db, "ana", "ana@example.com")
	beto := createTestUser(t, db, "beto", "beto@example.com")
	carla := createTestUser(t, db, "carla", "carla@example.com")

	// totals: ana=30, beto=25, carla=30 (tied with ana)
	saveScore(t, repo, ana.ID, "memoria", 10, nil)
	saveScore(t, repo, ana.ID, "ahorcado", 20, nil)
	saveScore(t, repo, beto.ID, "memoria", 25, nil)
	saveScore(t, repo, carla.ID, "memoria", 30, nil)

	anaRanking, err := repo.GetUserRanking(ana.ID)
	if err != nil {
		t.Fatalf("failed to get ranking: %v", err)
	}
	if anaRanking == nil {
		t.Fatal("expected a ranking for ana")
	}
	if anaRanking.Rank != 1 || anaRanking.TotalScore != 30 || anaRanking.GamesPlayed != 2 {
		t.Errorf("expected ana rank 1 total 30 over 2 attempts, got %+v", anaRanking)
	}

	carlaRanking, err := repo.GetUserRanking(carla.ID)
	if err != nil {
		t.Fatalf("failed to get ranking: %v", err)
	}
	if carlaRanking.Rank != 1 {
		t.Errorf("expected tied carla at rank 1, got %d", carlaRanking.Rank)
	}

	// Two users above at 30 each: beto ranks third, not second.
	betoRanking, err := repo.GetUserRanking(beto.ID)
	if err != nil {
		t.Fatalf("failed to get ranking: %v", err)
	}
	if betoRanking.Rank != 3 {
		t.Errorf("expected beto rank 3 after the tie, got %d", betoRanking.Rank)
	}
}

func TestUserRankingNoAttempts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresScoreRepository(db)
	user := createTestUser(t, db, "ana", "ana@example.com")

	ranking, err := repo.GetUserRanking(user.ID)
	if err != nil {
		t.Fatalf("failed to get ranking: %v", err)
	}
	if ranking != nil {
		t.Fatalf("expected nil ranking for user without attempts, got %+v", ranking)
	}
}
