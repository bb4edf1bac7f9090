package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"songswipe_server/models"

	"github.com/rs/zerolog"
)

// ProfileService handles profile reads and upserts for the HTTP layer.
type ProfileService struct {
	Profiles ProfileStore
	Logger   zerolog.Logger
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (models.UserProfile, error) {
	return s.Profiles.Get(ctx, userID)
}

// UpsertProfile saves the identity and questionnaire fields. The learned
// preference vector and engagement history are owned by the engine, so an
// upsert never overwrites them with client-supplied values.
func (s *ProfileService) UpsertProfile(ctx context.Context, profile models.UserProfile) (models.UserProfile, error) {
	if strings.TrimSpace(profile.UserID) == "" {
		return models.UserProfile{}, fmt.Errorf("userId is required")
	}

	existing, err := s.Profiles.Get(ctx, profile.UserID)
	switch {
	case err == nil:
		profile.Preference = existing.Preference
		profile.Engagement = existing.Engagement
		profile.CreatedAt = existing.CreatedAt
	case errors.Is(err, ErrNotFound):
		profile.Preference = nil
		profile.Engagement = models.EngagementHistory{}
		profile.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	default:
		// A transient read failure must not be mistaken for a new user: the
		// save would wipe the learned vector and engagement history.
		return models.UserProfile{}, fmt.Errorf("read profile %s: %w", profile.UserID, err)
	}

	if err := s.Profiles.Save(ctx, profile); err != nil {
		return models.UserProfile{}, fmt.Errorf("save profile %s: %w", profile.UserID, err)
	}
	s.Logger.Debug().Str("userId", profile.UserID).Msg("profile saved")
	return profile, nil
}
