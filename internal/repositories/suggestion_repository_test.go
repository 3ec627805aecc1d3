package repositories

import (
	"testing"
	"time"

	"github.com/fran21fran/candyweb-backend/internal/models"
	"gorm.io/gorm"
)

func createTestSuggestion(t *testing.T, repo SuggestionRepository, userID uint, title, language string) *models.Suggestion {
	t.Helper()
	suggestion, err := repo.CreateSuggestion(userID, &models.CreateSuggestionRequest{
		Type:        "cancion",
		Title:       title,
		Artist:      "Soda Stereo",
		Language:    language,
		Description: "Buena para practicar vocabulario",
	})
	if err != nil {
		t.Fatalf("failed to create suggestion: %v", err)
	}
	return suggestion
}

func TestCreateSuggestionSnapshotsUsername(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresSuggestionRepository(db)
	user := createTestUser(t, db, "ana", "ana@example.com")

	suggestion := createTestSuggestion(t, repo, user.ID, "De Música Ligera", "spanish")
	if suggestion.SubmittedBy != "ana" {
		t.Errorf("expected SubmittedBy %q, got %q", "ana", suggestion.SubmittedBy)
	}
	if suggestion.Likes != 0 {
		t.Errorf("expected new suggestion with 0 likes, got %d", suggestion.Likes)
	}

	// Rename after submission; the snapshot must not change.
	if err := db.Model(&models.User{}).Where("id = ?", user.ID).Update("username", "ana_renamed").Error; err != nil {
		t.Fatalf("failed to rename user: %v", err)
	}
	stored, err := repo.GetSuggestionByID(suggestion.ID)
	if err != nil {
		t.Fatalf("failed to get suggestion: %v", err)
	}
	if stored.SubmittedBy != "ana" {
		t.Errorf("expected snapshot %q after rename, got %q", "ana", stored.SubmittedBy)
	}
}

func TestCreateSuggestionUnknownUserFallback(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresSuggestionRepository(db)

	suggestion := createTestSuggestion(t, repo, 999, "De Música Ligera", "spanish")
	if suggestion.SubmittedBy != "Usuario" {
		t.Errorf("expected fallback submitter %q, got %q", "Usuario", suggestion.SubmittedBy)
	}
}

func TestToggleLikeFlipsStateAndCounter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresSuggestionRepository(db)
	user := createTestUser(t, db, "ana", "ana@example.com")
	suggestion := createTestSuggestion(t, repo, user.ID, "De Música Ligera", "spanish")

	liked, err := repo.ToggleLike(user.ID, suggestion.ID)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !liked {
		t.Error("expected first toggle to like")
	}
	assertLikeState(t, repo, user.ID, suggestion.ID, true, 1)

	liked, err = repo.ToggleLike(user.ID, suggestion.ID)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if liked {
		t.Error("expected second toggle to unlike")
	}
	assertLikeState(t, repo, user.ID, suggestion.ID, false, 0)

	// Re-like after unlike must work despite the unique pair index.
	liked, err = repo.ToggleLike(user.ID, suggestion.ID)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !liked {
		t.Error("expected third toggle to like again")
	}
	assertLikeState(t, repo, user.ID, suggestion.ID, true, 1)
}

func assertLikeState(t *testing.T, repo SuggestionRepository, userID, suggestionID uint, wantLiked bool, wantLikes int) {
	t.Helper()

	hasLiked, err := repo.HasUserLiked(userID, suggestionID)
	if err != nil {
		t.Fatalf("failed to check like: %v", err)
	}
	if hasLiked != wantLiked {
		t.Errorf("expected hasLiked=%v, got %v", wantLiked, hasLiked)
	}

	suggestion, err := repo.GetSuggestionByID(suggestionID)
	if err != nil {
		t.Fatalf("failed to get suggestion: %v", err)
	}
	if suggestion.Likes != wantLikes {
		t.Errorf("expected counter %d, got %d", wantLikes, suggestion.Likes)
	}

	rows, err := repo.CountLikes(suggestionID)
	if err != nil {
		t.Fatalf("failed to count likes: %v", err)
	}
	if rows != int64(wantLikes) {
		t.Errorf("counter %d out of sync with %d like rows", wantLikes, rows)
	}
}

func TestToggleLikeCountsPerUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresSuggestionRepository(db)
	ana := createTestUser(t, db, "ana", "ana@example.com")
	beto := createTestUser(t, db, "beto", "beto@example.com")
	suggestion := createTestSuggestion(t, repo, ana.ID, "De Música Ligera", "spanish")

	if _, err := repo.ToggleLike(ana.ID, suggestion.ID); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if _, err := repo.ToggleLike(beto.ID, suggestion.ID); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}

	stored, err := repo.GetSuggestionByID(suggestion.ID)
	if err != nil {
		t.Fatalf("failed to get suggestion: %v", err)
	}
	if stored.Likes != 2 {
		t.Errorf("expected 2 likes from two users, got %d", stored.Likes)
	}

	// ana unliking must not touch beto's like.
	if _, err := repo.ToggleLike(ana.ID, suggestion.ID); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	assertLikeState(t, repo, beto.ID, suggestion.ID, true, 1)
}

func TestToggleLikeUnknownSuggestion(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresSuggestionRepository(db)
	user := createTestUser(t, db, "ana", "ana@example.com")

	_, err := repo.ToggleLike(user.ID, 999)
	if err != gorm.ErrRecordNotFound {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestUnlikeWithoutLikeIsNoop(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresSuggestionRepository(db)
	user := createTestUser(t, db, "ana", "ana@example.com")
	suggestion := createTestSuggestion(t, repo, user.ID, "De Música Ligera", "spanish")

	if err := repo.Unlike(user.ID, suggestion.ID); err != nil {
		t.Fatalf("unlike failed: %v", err)
	}
	assertLikeState(t, repo, user.ID, suggestion.ID, false, 0)

	// Counter never goes negative, even after repeated unlikes.
	if err := repo.Unlike(user.ID, suggestion.ID); err != nil {
		t.Fatalf("unlike failed: %v", err)
	}
	stored, err := repo.GetSuggestionByID(suggestion.ID)
	if err != nil {
		t.Fatalf("failed to get suggestion: %v", err)
	}
	if stored.Likes != 0 {
		t.Errorf("expected counter to stay at 0, got %d", stored.Likes)
	}
}

func TestGetAllSuggestionsOrderingAndLikedFlag(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresSuggestionRepository(db)
	ana := createTestUser(t, db, "ana", "ana@example.com")
	beto := createTestUser(t, db, "beto", "beto@example.com")

	first := createTestSuggestion(t, repo, ana.ID, "Primera", "spanish")
	second := createTestSuggestion(t, repo, ana.ID, "Segunda", "spanish")
	third := createTestSuggestion(t, repo, ana.ID, "Tercera", "french")

	// Spread submission times so the tie-break is deterministic.
	base := time.Now()
	for i, id := range []uint{first.ID, second.ID, third.ID} {
		err := db.Model(&models.Suggestion{}).Where("id = ?", id).
			Update("submitted_at", base.Add(time.Duration(i)*time.Minute)).Error
		if err != nil {
			t.Fatalf("failed to adjust submitted_at: %v", err)
		}
	}

	if _, err := repo.ToggleLike(ana.ID, second.ID); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if _, err := repo.ToggleLike(beto.ID, second.ID); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if _, err := repo.ToggleLike(ana.ID, third.ID); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}

	suggestions, err := repo.GetAllSuggestions(ana.ID)
	if err != nil {
		t.Fatalf("failed to list suggestions: %v", err)
	}
	if len(suggestions) != 3 {
		t.Fatalf("expected 3 suggestions, got %d", len(suggestions))
	}

	// Most liked first; first has no likes and comes last.
	if suggestions[0].ID != second.ID || suggestions[1].ID != third.ID || suggestions[2].ID != first.ID {
		t.Errorf("unexpected order: %d, %d, %d", suggestions[0].ID, suggestions[1].ID, suggestions[2].ID)
	}
	if !suggestions[0].UserHasLiked || !suggestions[1].UserHasLiked || suggestions[2].UserHasLiked {
		t.Error("viewer liked flags do not match toggles")
	}

	// Anonymous viewer never sees a liked flag.
	anonymous, err := repo.GetAllSuggestions(0)
	if err != nil {
		t.Fatalf("failed to list suggestions: %v", err)
	}
	for _, s := range anonymous {
		if s.UserHasLiked {
			t.Errorf("anonymous viewer has liked flag on suggestion %d", s.ID)
		}
	}
}

func TestGetSuggestionsByLanguage(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresSuggestionRepository(db)
	user := createTestUser(t, db, "ana", "ana@example.com")

	createTestSuggestion(t, repo, user.ID, "Primera", "spanish")
	createTestSuggestion(t, repo, user.ID, "Deuxième", "french")

	suggestions, err := repo.GetSuggestionsByLanguage("french", 0)
	if err != nil {
		t.Fatalf("failed to list suggestions: %v", err)
	}
	if len(suggestions) != 1 || suggestions[0].Title != "Deuxième" {
		t.Fatalf("expected only the french suggestion, got %+v", suggestions)
	}
}
