package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"songswipe_server/models"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"github.com/rs/zerolog"
)

// Mood-era clustering defaults.
const (
	DefaultInsightWindow   = 50
	DefaultNumClusters     = 3
	DefaultMinClusterSize  = 3
	insightFeatureCount    = 4 // energy, valence, danceability, acousticness
	acousticModifierCutoff = 0.6
)

// MoodEra is a cluster of a user's liked posts that share a vibe.
type MoodEra struct {
	Name     string             `json:"name"`
	PostIDs  []string           `json:"postIds"`
	Centroid map[string]float64 `json:"centroid"`
	Start    time.Time          `json:"start"`
	End      time.Time          `json:"end"`
}

// MoodInsights groups the eras with the liked posts that fit none of them.
type MoodInsights struct {
	Eras     []MoodEra `json:"eras"`
	Outliers []string  `json:"outlierPostIds"`
}

// InsightService clusters a user's liked posts by audio features into named
// mood eras. Read-only: it never feeds back into matching state.
type InsightService struct {
	Posts  ContentStore
	Swipes SwipeStore

	Window         int
	NumClusters    int
	MinClusterSize int
	Logger         zerolog.Logger
}

// postObservation adapts a post's audio features to the clustering
// interface.
type postObservation struct {
	post   models.Post
	coords clusters.Coordinates
}

func (o postObservation) Coordinates() clusters.Coordinates {
	return o.coords
}

func (o postObservation) Distance(point clusters.Coordinates) float64 {
	return o.coords.Distance(point)
}

var insightFeatureNames = [insightFeatureCount]string{"energy", "valence", "danceability", "acousticness"}

// MoodEras computes the mood eras for userID's recent likes. Posts without
// audio features, and clusters below the minimum size, are reported as
// outliers rather than errors.
func (s *InsightService) MoodEras(ctx context.Context, userID string) (MoodInsights, error) {
	window := s.Window
	if window <= 0 {
		window = DefaultInsightWindow
	}
	numClusters := s.NumClusters
	if numClusters <= 0 {
		numClusters = DefaultNumClusters
	}
	minSize := s.MinClusterSize
	if minSize <= 0 {
		minSize = DefaultMinClusterSize
	}

	likedIDs, err := s.Swipes.LikedPostIDs(ctx, userID, window)
	if err != nil {
		return MoodInsights{}, fmt.Errorf("liked posts for %s: %w", userID, err)
	}

	var observations clusters.Observations
	var outliers []string
	for _, postID := range likedIDs {
		post, err := s.Posts.PostByID(ctx, postID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return MoodInsights{}, fmt.Errorf("liked post %s: %w", postID, err)
		}
		f := post.Song.AudioFeatures
		if f == nil {
			outliers = append(outliers, post.PostID)
			continue
		}
		observations = append(observations, postObservation{
			post:   post,
			coords: clusters.Coordinates{f.Energy, f.Valence, f.Danceability, f.Acousticness},
		})
	}

	// Too few usable posts to cluster: everything is an outlier.
	if len(observations) < numClusters {
		for _, obs := range observations {
			outliers = append(outliers, obs.(postObservation).post.PostID)
		}
		sort.Strings(outliers)
		return MoodInsights{Outliers: outliers}, nil
	}

	km := kmeans.New()
	result, err := km.Partition(observations, numClusters)
	if err != nil {
		s.Logger.Warn().Err(err).Str("userId", userID).Msg("mood clustering failed")
		for _, obs := range observations {
			outliers = append(outliers, obs.(postObservation).post.PostID)
		}
		sort.Strings(outliers)
		return MoodInsights{Outliers: outliers}, nil
	}

	var eras []MoodEra
	for _, cluster := range result {
		var posts []models.Post
		for _, obs := range cluster.Observations {
			if po, ok := obs.(postObservation); ok {
				posts = append(posts, po.post)
			}
		}
		if len(posts) < minSize {
			for _, post := range posts {
				outliers = append(outliers, post.PostID)
			}
			continue
		}

		sort.Slice(posts, func(i, j int) bool {
			return posts[i].CreatedAt.Before(posts[j].CreatedAt)
		})

		centroid := make(map[string]float64, insightFeatureCount)
		for i, name := range insightFeatureNames {
			centroid[name] = cluster.Center[i]
		}

		postIDs := make([]string, len(posts))
		for i, post := range posts {
			postIDs[i] = post.PostID
		}

		eras = append(eras, MoodEra{
			Name:     moodName(centroid),
			PostIDs:  postIDs,
			Centroid: centroid,
			Start:    posts[0].CreatedAt,
			End:      posts[len(posts)-1].CreatedAt,
		})
	}

	sort.Slice(eras, func(i, j int) bool {
		return eras[i].Start.After(eras[j].Start)
	})
	sort.Strings(outliers)
	return MoodInsights{Eras: eras, Outliers: outliers}, nil
}

// moodName labels a centroid by its energy/valence quadrant, with an
// acoustic modifier when acousticness dominates.
func moodName(centroid map[string]float64) string {
	highEnergy := centroid["energy"] > 0.6
	highValence := centroid["valence"] > 0.5

	var name string
	switch {
	case highEnergy && highValence:
		name = "Upbeat Party"
	case highEnergy:
		name = "Intense & Dark"
	case highValence:
		name = "Chill & Happy"
	default:
		name = "Reflective & Melancholy"
	}

	if centroid["acousticness"] > acousticModifierCutoff {
		return name + " (Acoustic)"
	}
	return name
}
