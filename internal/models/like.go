package models

import "time"

// Like represents a user liking a message. A user likes a message at most once.
type Like struct {
	UserID    uint      `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	MessageID uint      `json:"message_id" gorm:"primaryKey;autoIncrement:false;index"`
	User      *User     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Message   *Message  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}
