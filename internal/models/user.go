package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// User is an account on the language-learning platform. Premium fields are
// only mutated by the subscription webhook, never by profile updates.
type User struct {
	gorm.Model       `json:"-"`
	ID               uint       `json:"id" gorm:"primaryKey"`
	Username         string     `json:"username" gorm:"uniqueIndex;not null"`
	Email            string     `json:"email" gorm:"uniqueIndex;not null"`
	Password         string     `json:"-"` // bcrypt hash, never serialized
	IsPremium        bool       `json:"is_premium" gorm:"default:false"`
	SubscriptionDate *time.Time `json:"subscription_date,omitempty"`
	FirebaseUID      string     `json:"firebase_uid,omitempty" gorm:"index"` // set only for Google sign-in accounts
}

// PublicUser is the user shape returned to clients.
type PublicUser struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	IsPremium bool   `json:"is_premium"`
}

// ToPublic strips credentials and internal fields for API responses.
func (u *User) ToPublic() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsPremium: u.IsPremium,
	}
}

// CreateUserRequest defines the request body for local registration
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest defines the request body for local sign-in
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
