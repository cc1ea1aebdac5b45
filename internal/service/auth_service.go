package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tripcraft/internal/auth"
	apperrors "tripcraft/internal/errors"
	"tripcraft/internal/events"
	"tripcraft/internal/logging"
	"tripcraft/internal/model"
	"tripcraft/internal/repository"
)

// AuthService handles authentication operations.
type AuthService interface {
	Signup(ctx context.Context, username, email, password string) (token string, user *model.User, err error)
	Login(ctx context.Context, username, password string) (token string, user *model.User, err error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	publisher  events.Publisher
	bcryptCost int
}

// NewAuthService creates a new authentication service.
// Costs below bcrypt.DefaultCost are raised to it.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, publisher events.Publisher, bcryptCost int) AuthService {
	if bcryptCost < bcrypt.DefaultCost {
		bcryptCost = bcrypt.DefaultCost
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		publisher:  publisher,
		bcryptCost: bcryptCost,
	}
}

// Signup creates a user with a hashed password and returns a fresh token.
func (s *authService) Signup(ctx context.Context, username, email, password string) (string, *model.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.signup")

	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" || password == "" {
		return "", nil, fmt.Errorf("%w: username, email and password are required", apperrors.ErrBadRequest)
	}

	exists, err := s.userRepo.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return "", nil, fmt.Errorf("check user existence: %w", err)
	}
	if exists {
		l.Warn("signup_conflict", "username", username)
		return "", nil, apperrors.ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", nil, fmt.Errorf("%w: password is too long", apperrors.ErrBadRequest)
		}
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	// The unique indexes catch a concurrent signup that passed the check above.
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrUserAlreadyExists) {
			l.Warn("signup_conflict", "username", username, "stage", "insert")
			return "", nil, apperrors.ErrUserAlreadyExists
		}
		return "", nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	s.publish(ctx, events.Event{Type: events.TypeUserSignedUp, UserID: user.ID, Data: map[string]any{"username": user.Username}})
	l.Info("signup_ok", "user_id", user.ID)
	return token, user, nil
}

// Login verifies credentials and returns a fresh token.
func (s *authService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "reason", "unknown_user")
			return "", nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		l.Warn("login_failed", "reason", "bad_password", "user_id", user.ID)
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	s.publish(ctx, events.Event{Type: events.TypeUserLoggedIn, UserID: user.ID})
	return token, user, nil
}

func (s *authService) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		logging.FromContext(ctx).Error("event_publish_failed", "type", event.Type, "error", err)
	}
}
