package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tripcraft/internal/auth"
	apperrors "tripcraft/internal/errors"
	"tripcraft/internal/events"
	"tripcraft/internal/model"
)

func TestAuthService_Signup(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		email         string
		password      string
		setupMock     func(*MockUserRepository, *MockPublisher)
		expectedError error
	}{
		{
			name:     "successful signup",
			username: "alice",
			email:    "a@x.com",
			password: "pw123",
			setupMock: func(m *MockUserRepository, p *MockPublisher) {
				m.On("ExistsByUsernameOrEmail", mock.Anything, "alice", "a@x.com").Return(false, nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
					Run(func(args mock.Arguments) { args.Get(1).(*model.User).ID = 17 }).
					Return(nil)
				p.On("Publish", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
					return e.Type == events.TypeUserSignedUp && e.UserID == 17
				})).Return(nil)
			},
		},
		{
			name:     "username or email taken",
			username: "alice",
			email:    "a@x.com",
			password: "pw123",
			setupMock: func(m *MockUserRepository, p *MockPublisher) {
				m.On("ExistsByUsernameOrEmail", mock.Anything, "alice", "a@x.com").Return(true, nil)
			},
			expectedError: apperrors.ErrUserAlreadyExists,
		},
		{
			name:     "lost race caught by unique index",
			username: "alice",
			email:    "a@x.com",
			password: "pw123",
			setupMock: func(m *MockUserRepository, p *MockPublisher) {
				m.On("ExistsByUsernameOrEmail", mock.Anything, "alice", "a@x.com").Return(false, nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(apperrors.ErrUserAlreadyExists)
			},
			expectedError: apperrors.ErrUserAlreadyExists,
		},
		{
			name:          "missing fields",
			username:      "alice",
			email:         "",
			password:      "pw123",
			setupMock:     func(m *MockUserRepository, p *MockPublisher) {},
			expectedError: apperrors.ErrBadRequest,
		},
		{
			name:          "password longer than bcrypt accepts",
			username:      "alice",
			email:         "a@x.com",
			password:      string(make([]byte, 80)),
			setupMock: func(m *MockUserRepository, p *MockPublisher) {
				m.On("ExistsByUsernameOrEmail", mock.Anything, "alice", "a@x.com").Return(false, nil)
			},
			expectedError: apperrors.ErrBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockPub := new(MockPublisher)
			tt.setupMock(mockRepo, mockPub)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService, mockPub, bcrypt.DefaultCost)
			token, user, err := service.Signup(context.Background(), tt.username, tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, tt.username, user.Username)
				assert.NotEqual(t, tt.password, user.PasswordHash)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(tt.password)))

				claims, err := jwtService.ValidateToken(token)
				require.NoError(t, err)
				assert.Equal(t, user.ID, claims.UserID)
			}

			mockRepo.AssertExpectations(t)
			mockPub.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("pw123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	stored := &model.User{ID: 9, Username: "alice", Email: "a@x.com", PasswordHash: string(hashedPassword)}

	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(*MockUserRepository, *MockPublisher)
		expectedError error
	}{
		{
			name:     "successful login",
			username: "alice",
			password: "pw123",
			setupMock: func(m *MockUserRepository, p *MockPublisher) {
				m.On("FindByUsername", mock.Anything, "alice").Return(stored, nil)
				p.On("Publish", mock.Anything, mock.AnythingOfType("events.Event")).Return(nil)
			},
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "nope",
			setupMock: func(m *MockUserRepository, p *MockPublisher) {
				m.On("FindByUsername", mock.Anything, "alice").Return(stored, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "unknown user",
			username: "mallory",
			password: "pw123",
			setupMock: func(m *MockUserRepository, p *MockPublisher) {
				m.On("FindByUsername", mock.Anything, "mallory").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "publish failure does not fail login",
			username: "alice",
			password: "pw123",
			setupMock: func(m *MockUserRepository, p *MockPublisher) {
				m.On("FindByUsername", mock.Anything, "alice").Return(stored, nil)
				p.On("Publish", mock.Anything, mock.AnythingOfType("events.Event")).Return(errors.New("broker down"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockPub := new(MockPublisher)
			tt.setupMock(mockRepo, mockPub)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService, mockPub, bcrypt.DefaultCost)
			token, user, err := service.Login(context.Background(), tt.username, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				claims, err := jwtService.ValidateToken(token)
				require.NoError(t, err)
				assert.Equal(t, stored.ID, claims.UserID)
			}

			mockRepo.AssertExpectations(t)
			mockPub.AssertExpectations(t)
		})
	}
}

func TestAuthService_LoginDatabaseError(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByUsername", mock.Anything, "alice").Return(nil, errors.New("connection reset"))

	service := NewAuthService(mockRepo, auth.NewJWTService("s"), nil, 0)
	_, _, err := service.Login(context.Background(), "alice", "pw")

	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrInvalidCredentials)
}
