package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"songswipe_server/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const catalogBackfillTimeout = 2 * time.Second

// AudioFeatureSource supplies a track's audio-feature vector from an
// external catalog. Implemented by SongCatalog; nil disables backfill.
type AudioFeatureSource interface {
	AudioFeatures(ctx context.Context, trackID string) (*models.AudioFeatures, error)
}

// PostService creates the daily post and serves per-user listings.
type PostService struct {
	Posts    ContentStore
	Profiles ProfileStore
	Catalog  AudioFeatureSource
	Clock    Clock
	Logger   zerolog.Logger
}

// CreatePostRequest carries the author's song of the day.
type CreatePostRequest struct {
	AuthorID string                `json:"authorId"`
	Song     models.SongDescriptor `json:"song"`
	Mood     string                `json:"mood"`
	MoodTags []string              `json:"moodTags,omitempty"`
	Caption  string                `json:"caption,omitempty"`
}

func (r CreatePostRequest) validate() error {
	if strings.TrimSpace(r.AuthorID) == "" {
		return fmt.Errorf("authorId is required")
	}
	if strings.TrimSpace(r.Song.Title) == "" || strings.TrimSpace(r.Song.Artist) == "" {
		return fmt.Errorf("song title and artist are required")
	}
	if strings.TrimSpace(r.Mood) == "" {
		return fmt.Errorf("mood is required")
	}
	return nil
}

// CreatePost stores a new immutable post. When no audio features were
// supplied and the song carries a catalog track ref, the vector is
// backfilled best-effort; a catalog failure leaves the features absent and
// scoring degrades neutrally.
func (s *PostService) CreatePost(ctx context.Context, req CreatePostRequest) (models.Post, error) {
	if err := req.validate(); err != nil {
		return models.Post{}, err
	}
	if _, err := s.Profiles.Get(ctx, req.AuthorID); err != nil {
		return models.Post{}, fmt.Errorf("author %s: %w", req.AuthorID, err)
	}

	post := models.Post{
		PostID:    uuid.NewString(),
		AuthorID:  req.AuthorID,
		Song:      req.Song,
		Mood:      req.Mood,
		MoodTags:  req.MoodTags,
		Caption:   req.Caption,
		CreatedAt: time.Now().UTC(),
	}

	if post.Song.AudioFeatures == nil && post.Song.SpotifyTrackID != "" && s.Catalog != nil {
		catalogCtx, cancel := context.WithTimeout(ctx, catalogBackfillTimeout)
		features, err := s.Catalog.AudioFeatures(catalogCtx, post.Song.SpotifyTrackID)
		cancel()
		if err != nil {
			s.Logger.Warn().Err(err).Str("trackId", post.Song.SpotifyTrackID).Msg("audio feature backfill skipped")
		} else {
			post.Song.AudioFeatures = features
		}
	}

	if err := s.Posts.Put(ctx, post); err != nil {
		return models.Post{}, fmt.Errorf("store post: %w", err)
	}

	s.recordPostedMood(ctx, post)

	s.Logger.Info().Str("postId", post.PostID).Str("authorId", post.AuthorID).Msg("post created")
	return post, nil
}

// ActivePostsByAuthor lists the author's posts still inside the liveness
// window, newest first.
func (s *PostService) ActivePostsByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	posts, err := s.Posts.PostsByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	active := posts[:0]
	for _, post := range posts {
		if s.Clock.IsActive(post.CreatedAt, now) {
			active = append(active, post)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].CreatedAt.After(active[j].CreatedAt)
	})
	return active, nil
}

// recordPostedMood mirrors the post's mood into the author's engagement
// history, best-effort.
func (s *PostService) recordPostedMood(ctx context.Context, post models.Post) {
	profile, err := s.Profiles.Get(ctx, post.AuthorID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.Logger.Warn().Err(err).Str("userId", post.AuthorID).Msg("posted mood update skipped")
		}
		return
	}
	profile.Engagement.PostedMoods = append(profile.Engagement.PostedMoods, post.Mood)
	profile.Engagement = profile.Engagement.Normalize()
	if err := s.Profiles.Save(ctx, profile); err != nil {
		s.Logger.Warn().Err(err).Str("userId", post.AuthorID).Msg("posted mood update failed")
	}
}
