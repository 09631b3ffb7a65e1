package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anonto42/warbler/backend/internal/models"
	"github.com/anonto42/warbler/backend/internal/repositories"
	"github.com/anonto42/warbler/backend/pkg/monitoring"
	"github.com/anonto42/warbler/backend/validators"
	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrWrongPassword is returned when an operation that re-checks the current
// password is given the wrong one.
var ErrWrongPassword = errors.New("wrong password")

// ValidationError reports invalid input. Duplicate is set when the input
// collides with an existing user's unique field.
type ValidationError struct {
	Field     string
	Message   string
	Duplicate bool
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// AccountService creates users and checks their credentials.
type AccountService struct {
	users    repositories.UserRepository
	validate *validator.Validate
	hashCost int
}

func NewAccountService(users repositories.UserRepository) *AccountService {
	return &AccountService{
		users:    users,
		validate: validators.New(),
		hashCost: bcrypt.DefaultCost,
	}
}

// WithHashCost returns a copy of s hashing with cost instead of bcrypt.DefaultCost.
func (s *AccountService) WithHashCost(cost int) *AccountService {
	c := *s
	c.hashCost = cost
	return &c
}

// Signup hashes the password and stores a new user. The store assigns the ID.
func (s *AccountService) Signup(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validateStruct(req); err != nil {
		return nil, err
	}
	if err := s.checkAvailable(ctx, req.Username, req.Email, 0); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
		ImageURL: req.ImageURL,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.duplicateError(ctx, req.Username, 0)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	monitoring.SignupSuccess.Inc()
	log.WithField("user_id", user.ID).Info("user signed up")
	return user, nil
}

// Authenticate returns the user when password matches the stored hash. An
// unknown username or a wrong password yields ok == false and a nil error;
// err is only set for store failures.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (user *models.User, ok bool, err error) {
	user, err = s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			monitoring.LoginFailure.WithLabelValues("unknown_user").Inc()
			return nil, false, nil
		}
		return nil, false, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		monitoring.LoginFailure.WithLabelValues("wrong_password").Inc()
		return nil, false, nil
	}

	monitoring.LoginSuccess.Inc()
	return user, true, nil
}

// UpdateProfile changes the profile of userID after re-checking its password.
// Empty fields are left unchanged.
func (s *AccountService) UpdateProfile(ctx context.Context, userID uint, req models.UpdateProfileRequest) (*models.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrWrongPassword
	}
	if err := s.checkAvailable(ctx, req.Username, req.Email, user.ID); err != nil {
		return nil, err
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.ImageURL != "" {
		user.ImageURL = req.ImageURL
	}
	if req.HeaderImageURL != "" {
		user.HeaderImageURL = req.HeaderImageURL
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.Location != "" {
		user.Location = req.Location
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.duplicateError(ctx, user.Username, user.ID)
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// checkAvailable rejects a username or email held by a user other than self.
func (s *AccountService) checkAvailable(ctx context.Context, username, email string, self uint) error {
	if username != "" {
		existing, err := s.users.GetUserByUsername(ctx, username)
		if err == nil && existing.ID != self {
			return &ValidationError{Field: "username", Message: "username already taken", Duplicate: true}
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}
	if email != "" {
		existing, err := s.users.GetUserByEmail(ctx, email)
		if err == nil && existing.ID != self {
			return &ValidationError{Field: "email", Message: "email already registered", Duplicate: true}
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}
	return nil
}

// duplicateError names the field behind a unique constraint violation. The
// username is blamed only when another user than self holds it.
func (s *AccountService) duplicateError(ctx context.Context, username string, self uint) error {
	if existing, err := s.users.GetUserByUsername(ctx, username); err == nil && existing.ID != self {
		return &ValidationError{Field: "username", Message: "username already taken", Duplicate: true}
	}
	return &ValidationError{Field: "email", Message: "email already registered", Duplicate: true}
}

func (s *AccountService) validateStruct(v interface{}) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ValidationError{Field: fe.Field(), Message: fmt.Sprintf("failed on the '%s' rule", fe.Tag())}
	}
	return err
}
