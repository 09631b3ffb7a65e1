package services

import (
	"context"
	"strings"
	"testing"

	"github.com/anonto42/warbler/backend/internal/models"
	"github.com/anonto42/warbler/backend/internal/repositories"
	"github.com/anonto42/warbler/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) (*AccountService, *repositories.PostgresUserRepository) {
	t.Helper()
	users := repositories.NewPostgresUserRepository(testutil.NewDB(t))
	return NewAccountService(users).WithHashCost(bcrypt.MinCost), users
}

func signup(t *testing.T, s *AccountService, username string) *models.User {
	t.Helper()
	user, err := s.Signup(context.Background(), models.SignupRequest{
		Username: username,
		Email:    username + "@email.com",
		Password: "password",
	})
	require.NoError(t, err)
	return user
}

func TestSignup(t *testing.T) {
	s, users := newTestService(t)
	ctx := context.Background()

	user, err := s.Signup(ctx, models.SignupRequest{
		Username: "testtest",
		Email:    "test@test.com",
		Password: "password",
		ImageURL: "http://example.com/me.png",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)

	stored, err := users.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "testtest", stored.Username)
	assert.Equal(t, "test@test.com", stored.Email)
	assert.Equal(t, "http://example.com/me.png", stored.ImageURL)
	assert.NotEqual(t, "password", stored.Password)
	assert.True(t, strings.HasPrefix(stored.Password, "$2a$"))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("password")))
}

func TestSignup_DefaultImages(t *testing.T) {
	s, _ := newTestService(t)
	user := signup(t, s, "plain")
	assert.Equal(t, models.DefaultImageURL, user.ImageURL)
	assert.Equal(t, models.DefaultHeaderImageURL, user.HeaderImageURL)
}

func TestSignup_StoreAssignsIDs(t *testing.T) {
	s, _ := newTestService(t)
	first := signup(t, s, "first")
	second := signup(t, s, "second")
	assert.Greater(t, second.ID, first.ID)
}

func TestSignup_Duplicates(t *testing.T) {
	s, users := newTestService(t)
	ctx := context.Background()
	signup(t, s, "taken")

	tests := []struct {
		name  string
		req   models.SignupRequest
		field string
	}{
		{
			name:  "username",
			req:   models.SignupRequest{Username: "taken", Email: "other@email.com", Password: "password"},
			field: "username",
		},
		{
			name:  "email",
			req:   models.SignupRequest{Username: "other", Email: "taken@email.com", Password: "password"},
			field: "email",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Signup(ctx, tt.req)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.True(t, verr.Duplicate)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	count, err := users.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSignup_InvalidInput(t *testing.T) {
	s, users := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		req   models.SignupRequest
		field string
	}{
		{"missing username", models.SignupRequest{Email: "a@email.com", Password: "password"}, "username"},
		{"long username", models.SignupRequest{Username: strings.Repeat("x", 21), Email: "a@email.com", Password: "password"}, "username"},
		{"blank username", models.SignupRequest{Username: "   ", Email: "a@email.com", Password: "password"}, "username"},
		{"bad email", models.SignupRequest{Username: "a", Email: "not-an-email", Password: "password"}, "email"},
		{"short password", models.SignupRequest{Username: "a", Email: "a@email.com", Password: "123"}, "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Signup(ctx, tt.req)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.False(t, verr.Duplicate)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	count, err := users.CountUsers(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSignup_TrimsUsernameAndEmail(t *testing.T) {
	s, users := newTestService(t)
	ctx := context.Background()

	user, err := s.Signup(ctx, models.SignupRequest{Username: "  bob ", Email: " bob@email.com", Password: "password"})
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)

	_, err = users.GetUserByUsername(ctx, "bob")
	require.NoError(t, err)

	_, err = s.Signup(ctx, models.SignupRequest{Username: "bob  ", Email: "other@email.com", Password: "password"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Duplicate)
}

func TestAuthenticate(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()
	created := signup(t, s, "testuser")

	user, ok, err := s.Authenticate(ctx, "testuser", "password")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, created.ID, user.ID)

	user, ok, err = s.Authenticate(ctx, "testuser", "wrongpassword")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, user)

	user, ok, err = s.Authenticate(ctx, "nobody", "password")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, user)
}

func TestUpdateProfile(t *testing.T) {
	s, users := newTestService(t)
	ctx := context.Background()
	me := signup(t, s, "me")
	signup(t, s, "other")

	_, err := s.UpdateProfile(ctx, me.ID, models.UpdateProfileRequest{Bio: "hi", Password: "nope"})
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = s.UpdateProfile(ctx, me.ID, models.UpdateProfileRequest{Username: "other", Password: "password"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Duplicate)

	// Keeping one's own username is not a collision.
	updated, err := s.UpdateProfile(ctx, me.ID, models.UpdateProfileRequest{
		Username: "me",
		Bio:      "hello there",
		Location: "Earth",
		Password: "password",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello there", updated.Bio)

	stored, err := users.GetUserByID(ctx, me.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello there", stored.Bio)
	assert.Equal(t, "Earth", stored.Location)
	assert.Equal(t, "me@email.com", stored.Email)
}
