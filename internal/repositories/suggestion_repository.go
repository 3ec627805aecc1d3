package repositories

import (
	"time"

	"github.com/fran21fran/candyweb-backend/internal/models"
	"gorm.io/gorm"
)

// SuggestionRepository defines the interface for community suggestion
// operations
type SuggestionRepository interface {
	CreateSuggestion(userID uint, req *models.CreateSuggestionRequest) (*models.Suggestion, error)
	GetSuggestionByID(id uint) (*models.Suggestion, error)
	GetAllSuggestions(viewerID uint) ([]models.SuggestionWithLiked, error)
	GetSuggestionsByLanguage(language string, viewerID uint) ([]models.SuggestionWithLiked, error)
	ToggleLike(userID, suggestionID uint) (bool, error)
	Unlike(userID, suggestionID uint) error
	HasUserLiked(userID, suggestionID uint) (bool, error)
	CountLikes(suggestionID uint) (int64, error)
}

// PostgresSuggestionRepository implements SuggestionRepository for PostgreSQL
type PostgresSuggestionRepository struct {
	db *gorm.DB
}

// NewPostgresSuggestionRepository creates a new PostgresSuggestionRepository
func NewPostgresSuggestionRepository(db *gorm.DB) *PostgresSuggestionRepository {
	return &PostgresSuggestionRepository{db: db}
}

// CreateSuggestion stores a suggestion with the submitter's current username
// snapshotted into SubmittedBy. Later renames do not touch old suggestions.
func (r *PostgresSuggestionRepository) CreateSuggestion(userID uint, req *models.CreateSuggestionRequest) (*models.Suggestion, error) {
	submittedBy := "Usuario"
	var user models.User
	if err := r.db.First(&user, userID).Error; err == nil {
		submittedBy = user.Username
	}

	suggestion := &models.Suggestion{
		Type:        req.Type,
		Title:       req.Title,
		Artist:      req.Artist,
		Language:    req.Language,
		Description: req.Description,
		Reason:      req.Reason,
		SubmittedBy: submittedBy,
		SubmittedAt: time.Now(),
	}
	if err := r.db.Create(suggestion).Error; err != nil {
		return nil, err
	}
	return suggestion, nil
}

// GetSuggestionByID retrieves a single suggestion
func (r *PostgresSuggestionRepository) GetSuggestionByID(id uint) (*models.Suggestion, error) {
	var suggestion models.Suggestion
	if err := r.db.First(&suggestion, id).Error; err != nil {
		return nil, err
	}
	return &suggestion, nil
}

// GetAllSuggestions lists every suggestion, most liked first, ties broken by
// newest submission. viewerID 0 means anonymous: UserHasLiked is false on
// every row.
func (r *PostgresSuggestionRepository) GetAllSuggestions(viewerID uint) ([]models.SuggestionWithLiked, error) {
	var suggestions []models.Suggestion
	err := r.db.
		Order("likes DESC, submitted_at DESC").
		Find(&suggestions).Error
	if err != nil {
		return nil, err
	}
	return r.withLikedStatus(suggestions, viewerID)
}

// GetSuggestionsByLanguage lists suggestions for one language with the same
// ordering as GetAllSuggestions
func (r *PostgresSuggestionRepository) GetSuggestionsByLanguage(language string, viewerID uint) ([]models.SuggestionWithLiked, error) {
	var suggestions []models.Suggestion
	err := r.db.
		Where("language = ?", language).
		Order("likes DESC, submitted_at DESC").
		Find(&suggestions).Error
	if err != nil {
		return nil, err
	}
	return r.withLikedStatus(suggestions, viewerID)
}

func (r *PostgresSuggestionRepository) withLikedStatus(suggestions []models.Suggestion, viewerID uint) ([]models.SuggestionWithLiked, error) {
	likedSet := make(map[uint]bool)
	if viewerID != 0 {
		var likes []models.SuggestionLike
		if err := r.db.Where("user_id = ?", viewerID).Find(&likes).Error; err != nil {
			return nil, err
		}
		for _, like := range likes {
			likedSet[like.SuggestionID] = true
		}
	}

	result := make([]models.SuggestionWithLiked, len(suggestions))
	for i, suggestion := range suggestions {
		result[i] = models.SuggestionWithLiked{
			Suggestion:   suggestion,
			UserHasLiked: likedSet[suggestion.ID],
		}
	}
	return result, nil
}

// ToggleLike flips the user's like on a suggestion and keeps the
// denormalized counter in sync, inside one transaction. The delete's
// rows-affected result is the branch point, and the composite unique index
// on (suggestion_id, user_id) is the serialization point against two
// concurrent toggles inserting twice. The decrement is guarded so the
// counter can never go below zero. Returns whether the suggestion is liked
// after the call, or gorm.ErrRecordNotFound for an unknown suggestion.
func (r *PostgresSuggestionRepository) ToggleLike(userID, suggestionID uint) (bool, error) {
	liked := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var suggestion models.Suggestion
		if err := tx.First(&suggestion, suggestionID).Error; err != nil {
			return err
		}

		res := tx.
			Where("suggestion_id = ? AND user_id = ?", suggestionID, userID).
			Delete(&models.SuggestionLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return tx.Model(&models.Suggestion{}).
				Where("id = ? AND likes > 0", suggestionID).
				UpdateColumn("likes", gorm.Expr("likes - 1")).Error
		}

		like := &models.SuggestionLike{SuggestionID: suggestionID, UserID: userID}
		if err := tx.Create(like).Error; err != nil {
			return err
		}
		liked = true
		return tx.Model(&models.Suggestion{}).
			Where("id = ?", suggestionID).
			UpdateColumn("likes", gorm.Expr("likes + 1")).Error
	})
	if err != nil {
		return false, err
	}
	return liked, nil
}

// Unlike removes the user's like if present. A missing like row is a no-op,
// not an error, and the counter is only decremented when a row was actually
// deleted.
func (r *PostgresSuggestionRepository) Unlike(userID, suggestionID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.
			Where("suggestion_id = ? AND user_id = ?", suggestionID, userID).
			Delete(&models.SuggestionLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&models.Suggestion{}).
			Where("id = ? AND likes > 0", suggestionID).
			UpdateColumn("likes", gorm.Expr("likes - 1")).Error
	})
}

// HasUserLiked checks whether a like row exists for the pair
func (r *PostgresSuggestionRepository) HasUserLiked(userID, suggestionID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.SuggestionLike{}).
		Where("suggestion_id = ? AND user_id = ?", suggestionID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountLikes counts the like rows for a suggestion. The stored Likes counter
// must always equal this value; recovery tooling recomputes from here.
func (r *PostgresSuggestionRepository) CountLikes(suggestionID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.SuggestionLike{}).
		Where("suggestion_id = ?", suggestionID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
