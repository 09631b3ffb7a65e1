package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/anonto42/warbler/backend/internal/models"
	"github.com/anonto42/warbler/backend/internal/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	users    *PostgresUserRepository
	follows  *PostgresFollowRepository
	messages *PostgresMessageRepository
	likes    *PostgresLikeRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	return &fixture{
		db:       db,
		users:    NewPostgresUserRepository(db),
		follows:  NewPostgresFollowRepository(db),
		messages: NewPostgresMessageRepository(db),
		likes:    NewPostgresLikeRepository(db),
	}
}

func (f *fixture) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@email.com", username),
		Password: "HASHED_PASSWORD",
	}
	require.NoError(t, f.users.CreateUser(context.Background(), user))
	return user
}

func (f *fixture) postMessage(t *testing.T, user *models.User, text string, at time.Time) *models.Message {
	t.Helper()
	message := &models.Message{Text: text, UserID: user.ID, Timestamp: at}
	require.NoError(t, f.messages.CreateMessage(context.Background(), message))
	return message
}

func userIDs(users []models.User) []uint {
	ids := make([]uint, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return ids
}

func messageTexts(messages []models.Message) []string {
	texts := make([]string, len(messages))
	for i, m := range messages {
		texts[i] = m.Text
	}
	return texts
}
