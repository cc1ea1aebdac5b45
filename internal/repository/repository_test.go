package repository

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	apperrors "tripcraft/internal/errors"
	"tripcraft/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, gormDB.AutoMigrate(&model.User{}, &model.SavedItinerary{}))
	return gormDB
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	user := &model.User{Username: "alice", Email: "a@x.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, user))
	require.NotZero(t, user.ID)

	found, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", byID.Email)

	_, err = repo.FindByUsername(ctx, "Alice")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_UniqueViolation(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))
	require.NoError(t, repo.Create(ctx, &model.User{Username: "alice", Email: "a@x.com", PasswordHash: "h"}))

	tests := []struct {
		name string
		user *model.User
	}{
		{"same username", &model.User{Username: "alice", Email: "other@x.com", PasswordHash: "h"}},
		{"same email", &model.User{Username: "bob", Email: "a@x.com", PasswordHash: "h"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(ctx, tt.user)
			assert.ErrorIs(t, err, apperrors.ErrUserAlreadyExists)
		})
	}
}

func TestUserRepository_ExistsByUsernameOrEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))
	require.NoError(t, repo.Create(ctx, &model.User{Username: "alice", Email: "a@x.com", PasswordHash: "h"}))

	exists, err := repo.ExistsByUsernameOrEmail(ctx, "alice", "new@x.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUsernameOrEmail(ctx, "new", "a@x.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUsernameOrEmail(ctx, "new", "new@x.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestItineraryRepository_CreateAndList(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	users := NewUserRepository(gormDB)
	repo := NewItineraryRepository(gormDB)

	alice := &model.User{Username: "alice", Email: "a@x.com", PasswordHash: "h"}
	bob := &model.User{Username: "bob", Email: "b@x.com", PasswordHash: "h"}
	require.NoError(t, users.Create(ctx, alice))
	require.NoError(t, users.Create(ctx, bob))

	empty, err := repo.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	base := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	older := &model.SavedItinerary{
		UserID: alice.ID, City: "Paris", ArrivalDate: "2025-06-01", DepartureDate: "2025-06-03",
		Preferences: model.StringList{}, ItineraryItems: model.StringList{"9:00 Louvre", "12:00 Lunch"},
		CreatedAt: base,
	}
	newer := &model.SavedItinerary{
		UserID: alice.ID, City: "Rome", ArrivalDate: "2025-07-01", DepartureDate: "2025-07-02",
		Preferences: model.StringList{"food"}, ItineraryItems: model.StringList{"8:00 Espresso"},
		CreatedAt: base.Add(time.Hour),
	}
	other := &model.SavedItinerary{
		UserID: bob.ID, City: "Oslo", ArrivalDate: "a", DepartureDate: "d",
		Preferences: model.StringList{}, ItineraryItems: model.StringList{"x"},
	}

	for _, it := range []*model.SavedItinerary{older, newer, other} {
		rows, err := repo.Create(ctx, it)
		require.NoError(t, err)
		assert.EqualValues(t, 1, rows)
	}

	list, err := repo.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Rome", list[0].City)
	assert.Equal(t, "Paris", list[1].City)
	assert.Equal(t, model.StringList{"9:00 Louvre", "12:00 Lunch"}, list[1].ItineraryItems)
	assert.Equal(t, model.StringList{"food"}, list[0].Preferences)
	assert.Equal(t, model.StringList{}, list[1].Preferences)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, isUniqueViolation(nil))
	assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	assert.False(t, isUniqueViolation(assert.AnError))
}
