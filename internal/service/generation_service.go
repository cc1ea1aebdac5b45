package service

import (
	"context"
	"fmt"
	"strings"

	apperrors "tripcraft/internal/errors"
	"tripcraft/internal/logging"
)

const (
	systemPrompt = "You are a helpful assistant."
	// ItineraryMaxTokens bounds the length of a generated itinerary.
	ItineraryMaxTokens = 900
)

// TextGenerator completes a chat prompt.
type TextGenerator interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// GenerateInput describes the trip to plan.
type GenerateInput struct {
	City        string
	Arrival     string
	Departure   string
	Preferences []string
}

// GenerationService produces itineraries with a text generation model.
type GenerationService interface {
	Generate(ctx context.Context, in GenerateInput) ([]string, error)
}

type generationService struct {
	generator TextGenerator
}

// NewGenerationService creates a new generation service.
func NewGenerationService(generator TextGenerator) GenerationService {
	return &generationService{generator: generator}
}

// BuildItineraryPrompt renders the instruction sent to the model.
func BuildItineraryPrompt(in GenerateInput) string {
	return fmt.Sprintf(
		"Create an hour-by-hour travel itinerary for %s from %s to %s. Prioritize %s. Make sure the plan is well-balanced.",
		in.City, in.Arrival, in.Departure, strings.Join(in.Preferences, ","),
	)
}

// Generate returns the model's plan, one line per element.
func (s *generationService) Generate(ctx context.Context, in GenerateInput) ([]string, error) {
	if strings.TrimSpace(in.City) == "" {
		return nil, fmt.Errorf("%w: city is required", apperrors.ErrBadRequest)
	}

	text, err := s.generator.Complete(ctx, systemPrompt, BuildItineraryPrompt(in))
	if err != nil {
		logging.FromContext(ctx).Error("upstream_failed", "upstream", "openai", "error", err)
		return nil, fmt.Errorf("%w: %w", apperrors.ErrUpstream, err)
	}
	return strings.Split(strings.TrimSpace(text), "\n"), nil
}
