package services

import (
	"context"
	"fmt"

	"songswipe_server/models"

	"github.com/rs/zerolog"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"
)

// SongCatalog looks up audio-feature vectors for tracks in the external
// catalog. The client is constructed once and injected; nothing here caches
// tokens in package state.
type SongCatalog struct {
	api    *spotify.Client
	Logger zerolog.Logger
}

// NewSongCatalog authenticates against the catalog with the client
// credentials flow.
func NewSongCatalog(ctx context.Context, clientID, clientSecret string, logger zerolog.Logger) (*SongCatalog, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("song catalog credentials missing")
	}

	creds := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}
	token, err := creds.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("song catalog auth: %w", ErrUnavailable)
	}

	httpClient := spotifyauth.New().Client(ctx, token)
	return &SongCatalog{
		api:    spotify.New(httpClient, spotify.WithRetry(true)),
		Logger: logger,
	}, nil
}

// AudioFeatures fetches the feature vector for one track. An unknown track
// is ErrNotFound; transport failures are ErrUnavailable.
func (c *SongCatalog) AudioFeatures(ctx context.Context, trackID string) (*models.AudioFeatures, error) {
	features, err := c.api.GetAudioFeatures(ctx, spotify.ID(trackID))
	if err != nil {
		return nil, fmt.Errorf("audio features for %s: %w", trackID, ErrUnavailable)
	}
	if len(features) == 0 || features[0] == nil {
		return nil, fmt.Errorf("track %s: %w", trackID, ErrNotFound)
	}

	f := features[0]
	return &models.AudioFeatures{
		Valence:      float64(f.Valence),
		Energy:       float64(f.Energy),
		Danceability: float64(f.Danceability),
		Acousticness: float64(f.Acousticness),
		Tempo:        float64(f.Tempo),
	}, nil
}
