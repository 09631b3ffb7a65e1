package repositories

import (
	"context"
	"time"

	"github.com/anonto42/warbler/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultTimelineLimit is the number of messages shown on a home timeline.
const DefaultTimelineLimit = 100

// MessageRepository defines the interface for message data operations
type MessageRepository interface {
	CreateMessage(ctx context.Context, message *models.Message) error
	GetMessageByID(ctx context.Context, id uint) (*models.Message, error)
	GetMessagesByUserID(ctx context.Context, userID uint, limit int) ([]models.Message, error)
	GetTimeline(ctx context.Context, userID uint, limit int) ([]models.Message, error)
	DeleteMessage(ctx context.Context, id, ownerID uint) error
	CountByUserID(ctx context.Context, userID uint) (int64, error)
}

// PostgresMessageRepository implements MessageRepository on a gorm connection
type PostgresMessageRepository struct {
	db *gorm.DB
}

// NewPostgresMessageRepository creates a new PostgresMessageRepository
func NewPostgresMessageRepository(db *gorm.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

// CreateMessage inserts message, stamping it with the current time unless a
// timestamp is already set.
func (r *PostgresMessageRepository) CreateMessage(ctx context.Context, message *models.Message) error {
	message.ID = 0
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(message).Error
}

// GetMessageByID retrieves a message with its author
func (r *PostgresMessageRepository) GetMessageByID(ctx context.Context, id uint) (*models.Message, error) {
	var message models.Message
	if err := r.db.WithContext(ctx).Preload("User").First(&message, id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// GetMessagesByUserID retrieves a user's messages, newest first
func (r *PostgresMessageRepository) GetMessagesByUserID(ctx context.Context, userID uint, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("User").
		Order("messages.timestamp DESC, messages.id DESC").
		Limit(normalizeLimit(limit)).
		Find(&messages).Error
	return messages, err
}

// GetTimeline returns the messages of userID and of everyone userID follows,
// newest first.
func (r *PostgresMessageRepository) GetTimeline(ctx context.Context, userID uint, limit int) ([]models.Message, error) {
	db := r.db.WithContext(ctx)
	var messages []models.Message
	err := db.
		Where("user_id = ? OR user_id IN (?)", userID,
			db.Model(&models.Follow{}).Select("followed_id").Where("follower_id = ?", userID),
		).
		Preload("User").
		Order("messages.timestamp DESC, messages.id DESC").
		Limit(normalizeLimit(limit)).
		Find(&messages).Error
	return messages, err
}

// DeleteMessage deletes a message owned by ownerID together with its likes
func (r *PostgresMessageRepository) DeleteMessage(ctx context.Context, id, ownerID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var message models.Message
		if err := tx.First(&message, id).Error; err != nil {
			return err
		}
		if message.UserID != ownerID {
			return ErrNotOwner
		}
		if err := tx.Where("message_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Message{}, id).Error
	})
}

func (r *PostgresMessageRepository) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Message{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultTimelineLimit
	}
	return limit
}
