package models

import (
	"time"

	"gorm.io/gorm"
)

// Suggestion is a community content recommendation. SubmittedBy is a
// snapshot of the submitter's username at creation time; renaming the
// account later does not rewrite history. Likes is a denormalized counter
// over SuggestionLike rows, which remain the source of truth.
type Suggestion struct {
	gorm.Model  `json:"-"`
	ID          uint      `json:"id" gorm:"primaryKey"`
	Type        string    `json:"type" gorm:"not null"` // pelicula, cancion, comic, artista, libro, serie, podcast
	Title       string    `json:"title" gorm:"not null"`
	Artist      string    `json:"artist,omitempty"`
	Language    string    `json:"language" gorm:"not null;index"`
	Description string    `json:"description" gorm:"not null"`
	Reason      string    `json:"reason,omitempty"`
	SubmittedBy string    `json:"submitted_by" gorm:"not null"`
	SubmittedAt time.Time `json:"submitted_at"`
	Likes       int       `json:"likes" gorm:"not null;default:0"`
}

// SuggestionLike records that a user likes a suggestion. At most one row
// exists per (suggestion, user) pair; rows are hard-deleted on unlike so the
// unique index stays accurate.
type SuggestionLike struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	SuggestionID uint      `json:"suggestion_id" gorm:"not null;uniqueIndex:idx_suggestion_user,priority:1"`
	UserID       uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_suggestion_user,priority:2"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateSuggestionRequest defines the request body for creating a suggestion
type CreateSuggestionRequest struct {
	Type        string `json:"type" validate:"required,oneof=pelicula cancion comic artista libro serie podcast"`
	Title       string `json:"title" validate:"required,max=200"`
	Artist      string `json:"artist,omitempty" validate:"omitempty,max=200"`
	Language    string `json:"language" validate:"required"`
	Description string `json:"description" validate:"required"`
	Reason      string `json:"reason,omitempty"`
}

// SuggestionWithLiked is a suggestion with the viewer-specific liked flag.
// UserHasLiked is always false for anonymous viewers.
type SuggestionWithLiked struct {
	Suggestion
	UserHasLiked bool `json:"user_has_liked"`
}
