package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"tripcraft/internal/auth"
	"tripcraft/internal/config"
	"tripcraft/internal/db"
	apperrors "tripcraft/internal/errors"
	"tripcraft/internal/logging"
	"tripcraft/internal/repository"
	"tripcraft/internal/service"
)

const defaultFixture = "cmd/seed/fixture.json"

// SeedUser is one account in the fixture, with the trips it should own.
type SeedUser struct {
	Username    string          `json:"username"`
	Email       string          `json:"email"`
	Password    string          `json:"password"`
	Itineraries []SeedItinerary `json:"itineraries"`
}

// SeedItinerary is a saved trip in the fixture.
type SeedItinerary struct {
	City        string   `json:"city"`
	Arrival     string   `json:"arrival"`
	Departure   string   `json:"departure"`
	Preferences []string `json:"preferences"`
	Itinerary   []string `json:"itinerary"`
}

// Fixture is the seed document.
type Fixture struct {
	Users []SeedUser `json:"users"`
}

type seedStats struct {
	usersCreated       int
	usersSkipped       int
	itinerariesCreated int
}

func main() {
	source := flag.String("fixture", defaultFixture, "path or http(s) URL of the seed fixture")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)
	logger.Info("starting seed script", "fixture", *source)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := logging.IntoContext(context.Background(), logger)

	// Connect to database
	gormDB, err := db.Open(ctx, db.Options{Driver: cfg.DBDriver, DSN: cfg.DatabaseDSN})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close(gormDB) }()

	// Run migrations to ensure schema is up to date
	if err := db.Migrate(gormDB); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	fixture, err := loadFixture(ctx, *source)
	if err != nil {
		logger.Error("failed to load fixture", "error", err)
		os.Exit(1)
	}
	logger.Info("fixture loaded", "users", len(fixture.Users))

	jwtService := auth.NewJWTService(cfg.JWTSecret, auth.WithTTL(cfg.TokenTTL))
	authService := service.NewAuthService(repository.NewUserRepository(gormDB), jwtService, nil, cfg.BcryptCost)
	itineraryService := service.NewItineraryService(repository.NewItineraryRepository(gormDB), nil)

	stats, err := seed(ctx, authService, itineraryService, fixture)
	if err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}

	logger.Info("seed completed",
		"users_created", stats.usersCreated,
		"users_skipped", stats.usersSkipped,
		"itineraries_created", stats.itinerariesCreated,
	)
}

// loadFixture reads the fixture from a local file or fetches it over HTTP.
func loadFixture(ctx context.Context, source string) (*Fixture, error) {
	var body []byte
	var err error
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		body, err = fetchFixture(ctx, source)
	} else {
		body, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, err
	}

	var fixture Fixture
	if err := json.Unmarshal(body, &fixture); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return &fixture, nil
}

func fetchFixture(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fixture: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fixture source returned status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// seed signs up every fixture user and saves their itineraries.
// Users that already exist are skipped together with their itineraries.
func seed(ctx context.Context, authService service.AuthService, itineraryService service.ItineraryService, fixture *Fixture) (seedStats, error) {
	var stats seedStats
	l := logging.FromContext(ctx)

	for _, u := range fixture.Users {
		_, user, err := authService.Signup(ctx, u.Username, u.Email, u.Password)
		if errors.Is(err, apperrors.ErrUserAlreadyExists) {
			l.Info("skipping existing user", "username", u.Username)
			stats.usersSkipped++
			continue
		}
		if err != nil {
			return stats, fmt.Errorf("error creating user %s: %w", u.Username, err)
		}
		stats.usersCreated++

		for _, it := range u.Itineraries {
			_, err := itineraryService.Save(ctx, user.ID, service.SaveItineraryInput{
				City:        it.City,
				Arrival:     it.Arrival,
				Departure:   it.Departure,
				Itinerary:   it.Itinerary,
				Preferences: it.Preferences,
			})
			if err != nil {
				return stats, fmt.Errorf("error saving itinerary %s for %s: %w", it.City, u.Username, err)
			}
			stats.itinerariesCreated++
		}
	}

	return stats, nil
}
