package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

const (
	DefaultImageURL       = "/static/images/default-pic.png"
	DefaultHeaderImageURL = "/static/images/warbler-hero.jpg"
)

// User is a registered account. Followers and following are derived from
// the follows table and are never stored on the user row.
type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Username       string    `json:"username" gorm:"size:20;not null;uniqueIndex"`
	Email          string    `json:"email" gorm:"not null;uniqueIndex"` // Ensure email is unique across all users
	Password       string    `json:"-" gorm:"not null"`                // Store hashed password, ignore for JSON serialization
	ImageURL       string    `json:"image_url"`
	HeaderImageURL string    `json:"header_image_url"`
	Bio            string    `json:"bio"`
	Location       string    `json:"location"`
	CreatedAt      time.Time `json:"created_at"`
}

// BeforeCreate fills in the default images for users created without one.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ImageURL == "" {
		u.ImageURL = DefaultImageURL
	}
	if u.HeaderImageURL == "" {
		u.HeaderImageURL = DefaultHeaderImageURL
	}
	return nil
}

// UserCompact is the short form of a user embedded in lists.
type UserCompact struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	ImageURL string `json:"image_url"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, Username: u.Username, ImageURL: u.ImageURL}
}

// UserProfile is a user together with relationship and message counts.
type UserProfile struct {
	User
	MessagesCount  int64 `json:"messages_count"`
	FollowersCount int64 `json:"followers_count"`
	FollowingCount int64 `json:"following_count"`
	LikesCount     int64 `json:"likes_count"`
}

type SignupRequest struct {
	Username string `json:"username" validate:"required,notblank,max=20"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	ImageURL string `json:"image_url,omitempty" validate:"omitempty,uri"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest requires the current password; empty fields are left unchanged.
type UpdateProfileRequest struct {
	Username       string `json:"username,omitempty" validate:"omitempty,notblank,max=20"`
	Email          string `json:"email,omitempty" validate:"omitempty,email"`
	ImageURL       string `json:"image_url,omitempty" validate:"omitempty,uri"`
	HeaderImageURL string `json:"header_image_url,omitempty" validate:"omitempty,uri"`
	Bio            string `json:"bio,omitempty"`
	Location       string `json:"location,omitempty" validate:"omitempty,max=50"`
	Password       string `json:"password" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
