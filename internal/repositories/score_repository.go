package repositories

import (
	"time"

	"github.com/fran21fran/candyweb-backend/internal/models"
	"gorm.io/gorm"
)

// ScoreRepository defines the interface for game score and leaderboard
// operations
type ScoreRepository interface {
	SaveScore(score *models.GameScore) error
	GetUserScores(userID uint) ([]models.GameScore, error)
	GetGameLeaderboard(gameID string, limit int) ([]models.GameLeaderboardEntry, error)
	GetGlobalLeaderboard(limit int) ([]models.GlobalLeaderboardEntry, error)
	GetUserRanking(userID uint) (*models.UserRanking, error)
}

// PostgresScoreRepository implements ScoreRepository for PostgreSQL
type PostgresScoreRepository struct {
	db *gorm.DB
}

// NewPostgresScoreRepository creates a new PostgresScoreRepository
func NewPostgresScoreRepository(db *gorm.DB) *PostgresScoreRepository {
	return &PostgresScoreRepository{db: db}
}

// SaveScore inserts a new attempt row. Attempts are immutable; every
// submission creates a fresh row.
func (r *PostgresScoreRepository) SaveScore(score *models.GameScore) error {
	if score.Difficulty == "" {
		score.Difficulty = models.DefaultDifficulty
	}
	if score.Language == "" {
		score.Language = models.DefaultLanguage
	}
	if score.PlayedAt.IsZero() {
		score.PlayedAt = time.Now()
	}
	return r.db.Create(score).Error
}

// GetUserScores retrieves a user's attempts, newest played first
func (r *PostgresScoreRepository) GetUserScores(userID uint) ([]models.GameScore, error) {
	scores := []models.GameScore{}
	err := r.db.
		Where("user_id = ?", userID).
		Order("played_at DESC").
		Find(&scores).Error
	if err != nil {
		return nil, err
	}
	return scores, nil
}

// GetGameLeaderboard returns the top attempts for one game, highest score
// first. Equal scores are broken by completion time ascending; attempts
// without a completion time sort after those with one. A non-positive limit
// yields no rows.
func (r *PostgresScoreRepository) GetGameLeaderboard(gameID string, limit int) ([]models.GameLeaderboardEntry, error) {
	entries := []models.GameLeaderboardEntry{}
	if limit <= 0 {
		return entries, nil
	}
	err := r.db.Model(&models.GameScore{}).
		Select("game_scores.id, game_scores.user_id, game_scores.game_id, game_scores.score, game_scores.completion_time, game_scores.difficulty, game_scores.language, game_scores.played_at, users.username").
		Joins("INNER JOIN users ON users.id = game_scores.user_id").
		Where("game_scores.game_id = ?", gameID).
		Order("game_scores.score DESC, game_scores.completion_time IS NULL, game_scores.completion_time ASC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// GetGlobalLeaderboard returns one row per user with at least one score,
// ordered by the sum of all their scores across games. A non-positive limit
// yields no rows; an empty score table yields an empty leaderboard.
func (r *PostgresScoreRepository) GetGlobalLeaderboard(limit int) ([]models.GlobalLeaderboardEntry, error) {
	entries := []models.GlobalLeaderboardEntry{}
	if limit <= 0 {
		return entries, nil
	}
	err := r.db.Model(&models.GameScore{}).
		Select("game_scores.user_id, users.username, SUM(game_scores.score) AS total_score, COUNT(game_scores.id) AS games_played").
		Joins("INNER JOIN users ON users.id = game_scores.user_id").
		Group("game_scores.user_id, users.username").
		Order("total_score DESC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// GetUserRanking computes the user's total, attempt count and competition
// rank (1 + number of users with a strictly greater total; ties share a
// rank). Returns nil for a user with no attempts. Both queries run in one
// transaction so the rank count is never staler than the totals.
func (r *PostgresScoreRepository) GetUserRanking(userID uint) (*models.UserRanking, error) {
	var ranking *models.UserRanking
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var stats struct {
			TotalScore  int
			GamesPlayed int
		}
		res := tx.Model(&models.GameScore{}).
			Select("SUM(game_scores.score) AS total_score, COUNT(game_scores.id) AS games_played").
			Where("game_scores.user_id = ?", userID).
			Group("game_scores.user_id").
			Scan(&stats)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil // no attempts: ranking stays nil
		}

		better := tx.Model(&models.GameScore{}).
			Select("game_scores.user_id").
			Group("game_scores.user_id").
			Having("SUM(game_scores.score) > ?", stats.TotalScore)

		var higherRanked int64
		if err := tx.Table("(?) AS better", better).Count(&higherRanked).Error; err != nil {
			return err
		}

		ranking = &models.UserRanking{
			Rank:        int(higherRanked) + 1,
			TotalScore:  stats.TotalScore,
			GamesPlayed: stats.GamesPlayed,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ranking, nil
}
