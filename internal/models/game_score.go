package models

import (
	"time"

	"gorm.io/gorm"
)

// Defaults applied when a score submission omits the labels, matching the
// game clients' primary market.
const (
	DefaultDifficulty = "Principiante"
	DefaultLanguage   = "spanish"
)

// GameScore is one immutable game attempt. A user keeps one row per attempt;
// there is no upsert or deduplication.
type GameScore struct {
	gorm.Model     `json:"-"`
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserID         uint      `json:"user_id" gorm:"not null;index"`
	User           User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	GameID         string    `json:"game_id" gorm:"not null;index"`
	Score          int       `json:"score" gorm:"not null;default:0"`
	CompletionTime *int      `json:"completion_time,omitempty"` // seconds; nil when the game has no timer
	Difficulty     string    `json:"difficulty" gorm:"not null"`
	Language       string    `json:"language" gorm:"not null"`
	PlayedAt       time.Time `json:"played_at"`
}

// CreateGameScoreRequest defines the request body for submitting a score
type CreateGameScoreRequest struct {
	GameID         string `json:"game_id" validate:"required"`
	Score          int    `json:"score" validate:"min=0"`
	CompletionTime *int   `json:"completion_time,omitempty" validate:"omitempty,gt=0"`
	Difficulty     string `json:"difficulty,omitempty"`
	Language       string `json:"language,omitempty"`
}

// GameLeaderboardEntry is a per-game leaderboard row: the attempt joined
// with the player's username.
type GameLeaderboardEntry struct {
	ID             uint      `json:"id"`
	UserID         uint      `json:"user_id"`
	GameID         string    `json:"game_id"`
	Score          int       `json:"score"`
	CompletionTime *int      `json:"completion_time,omitempty"`
	Difficulty     string    `json:"difficulty"`
	Language       string    `json:"language"`
	PlayedAt       time.Time `json:"played_at"`
	Username       string    `json:"username"`
}

// GlobalLeaderboardEntry is one row per user with at least one score.
type GlobalLeaderboardEntry struct {
	UserID      uint   `json:"user_id"`
	Username    string `json:"username"`
	TotalScore  int    `json:"total_score"`
	GamesPlayed int    `json:"games_played"`
}

// UserRanking is competition ranking: rank = 1 + number of users with a
// strictly greater total score, so ties share a rank and leave gaps.
type UserRanking struct {
	Rank        int `json:"rank"`
	TotalScore  int `json:"total_score"`
	GamesPlayed int `json:"games_played"`
}
