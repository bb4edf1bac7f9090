package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"songswipe_server/models"

	"github.com/rs/zerolog"
)

// DefaultLearnerWindow is how many recent likes feed the learned vector.
const DefaultLearnerWindow = 20

// PreferenceService re-learns a user's taste vector from their recent liked
// posts. It runs best-effort: callers in the discovery path log and ignore
// its errors and keep whatever vector the profile already has.
type PreferenceService struct {
	Profiles ProfileStore
	Posts    ContentStore
	Swipes   SwipeStore
	Window   int
	Logger   zerolog.Logger
}

// Refresh recomputes and stores the learned preference vector for userID.
// Zero liked posts is a no-op; liked posts whose audio features are missing
// still contribute their genres and mood tags.
func (s *PreferenceService) Refresh(ctx context.Context, userID string) error {
	window := s.Window
	if window <= 0 {
		window = DefaultLearnerWindow
	}

	likedIDs, err := s.Swipes.LikedPostIDs(ctx, userID, window)
	if err != nil {
		return fmt.Errorf("liked posts for %s: %w", userID, err)
	}
	if len(likedIDs) == 0 {
		return nil
	}

	var sums models.AudioFeatures
	featureCount := 0
	genres := make(map[string]struct{})
	moods := make(map[string]struct{})

	for _, postID := range likedIDs {
		post, err := s.Posts.PostByID(ctx, postID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return fmt.Errorf("liked post %s: %w", postID, err)
		}

		if f := post.Song.AudioFeatures; f != nil {
			sums.Valence += f.Valence
			sums.Energy += f.Energy
			sums.Danceability += f.Danceability
			sums.Acousticness += f.Acousticness
			sums.Tempo += f.Tempo
			featureCount++
		}
		for _, g := range post.Song.Genres {
			genres[g] = struct{}{}
		}
		for _, m := range post.MoodTagsOrLabel() {
			moods[m] = struct{}{}
		}
	}

	vector := models.PreferenceVector{
		Genres:    setToSlice(genres),
		MoodTags:  setToSlice(moods),
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if featureCount > 0 {
		n := float64(featureCount)
		vector.AudioFeatures = &models.AudioFeatures{
			Valence:      sums.Valence / n,
			Energy:       sums.Energy / n,
			Danceability: sums.Danceability / n,
			Acousticness: sums.Acousticness / n,
			Tempo:        sums.Tempo / n,
		}
	}

	profile, err := s.Profiles.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("profile %s: %w", userID, err)
	}
	profile.Preference = &vector

	if err := s.Profiles.Save(ctx, profile); err != nil {
		return fmt.Errorf("save preference for %s: %w", userID, err)
	}

	s.Logger.Debug().
		Str("userId", userID).
		Int("likedPosts", len(likedIDs)).
		Int("withFeatures", featureCount).
		Msg("preference vector refreshed")
	return nil
}

func setToSlice(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
