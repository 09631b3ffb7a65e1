package repositories

import (
	"context"

	"github.com/anonto42/warbler/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	ToggleLike(ctx context.Context, userID, messageID uint) (bool, error)
	HasUserLikedMessage(ctx context.Context, userID, messageID uint) (bool, error)
	GetLikedMessages(ctx context.Context, userID uint) ([]models.Message, error)
	LikedMessageIDs(ctx context.Context, userID uint, messageIDs []uint) (map[uint]bool, error)
	GetLikesCountByUserID(ctx context.Context, userID uint) (int64, error)
}

// PostgresLikeRepository implements LikeRepository on a gorm connection
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// ToggleLike likes the message, or removes the like when one exists, and
// reports whether the message is liked afterwards.
func (r *PostgresLikeRepository) ToggleLike(ctx context.Context, userID, messageID uint) (bool, error) {
	liked := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var message models.Message
		if err := tx.First(&message, messageID).Error; err != nil {
			return err
		}
		if message.UserID == userID {
			return ErrOwnMessage
		}

		res := tx.Where("user_id = ? AND message_id = ?", userID, messageID).Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		liked = true
		like := &models.Like{UserID: userID, MessageID: messageID}
		return tx.Omit(clause.Associations).Create(like).Error
	})
	if err != nil {
		return false, err
	}
	return liked, nil
}

func (r *PostgresLikeRepository) HasUserLikedMessage(ctx context.Context, userID, messageID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetLikedMessages returns the messages userID likes, newest first
func (r *PostgresLikeRepository) GetLikedMessages(ctx context.Context, userID uint) ([]models.Message, error) {
	db := r.db.WithContext(ctx)
	var messages []models.Message
	err := db.Where("id IN (?)",
		db.Model(&models.Like{}).Select("message_id").Where("user_id = ?", userID),
	).Preload("User").Order("messages.timestamp DESC, messages.id DESC").Find(&messages).Error
	return messages, err
}

func (r *PostgresLikeRepository) LikedMessageIDs(ctx context.Context, userID uint, messageIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool)
	if len(messageIDs) == 0 {
		return result, nil
	}
	var likes []models.Like
	err := r.db.WithContext(ctx).Where("user_id = ? AND message_id IN ?", userID, messageIDs).Find(&likes).Error
	if err != nil {
		return nil, err
	}
	for _, l := range likes {
		result[l.MessageID] = true
	}
	return result, nil
}

func (r *PostgresLikeRepository) GetLikesCountByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
