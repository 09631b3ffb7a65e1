package models

import "time"

const MaxMessageLength = 140

// Message is a short post owned by exactly one user.
type Message struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Text      string    `json:"text" gorm:"size:140;not null"`
	Timestamp time.Time `json:"timestamp" gorm:"not null;index"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	User      *User     `json:"user,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

// CreateMessageRequest defines the request body for posting a message
type CreateMessageRequest struct {
	Text string `json:"text" validate:"required,notblank,max=140"`
}
