package services

import (
	"math/rand"
	"testing"
	"time"

	"songswipe_server/models"

	"github.com/stretchr/testify/assert"
)

func featureVector(valence, energy, dance, acoustic, tempo float64) *models.AudioFeatures {
	return &models.AudioFeatures{
		Valence:      valence,
		Energy:       energy,
		Danceability: dance,
		Acousticness: acoustic,
		Tempo:        tempo,
	}
}

func TestScoreBounds(t *testing.T) {
	var scorer CompatibilityScorer
	rng := rand.New(rand.NewSource(1))

	words := []string{"indie", "rock", "jazz", "late", "night", "driving", "coffee", "rain", "summer", "festival"}
	randomText := func() string {
		if rng.Intn(3) == 0 {
			return ""
		}
		out := ""
		for i := 0; i < 1+rng.Intn(5); i++ {
			out += words[rng.Intn(len(words))] + " "
		}
		return out
	}
	randomFeatures := func() *models.AudioFeatures {
		if rng.Intn(3) == 0 {
			return nil
		}
		return featureVector(rng.Float64(), rng.Float64(), rng.Float64(), rng.Float64(), rng.Float64()*200)
	}
	randomTags := func() []string {
		n := rng.Intn(4)
		tags := make([]string, 0, n)
		for i := 0; i < n; i++ {
			tags = append(tags, words[rng.Intn(len(words))])
		}
		return tags
	}
	randomProfile := func(id string) models.UserProfile {
		p := models.UserProfile{
			UserID: id,
			Questionnaire: models.Questionnaire{
				WeekendListening: randomText(),
				PrimaryGenre:     randomText(),
				DiscoveryCadence: randomText(),
				PreferredMoodTag: randomText(),
				MusicMemory:      randomText(),
			},
			Engagement: models.EngagementHistory{
				MatchedUserIDs: randomTags(),
				PostedMoods:    randomTags(),
			},
		}
		if rng.Intn(2) == 0 {
			p.Preference = &models.PreferenceVector{
				AudioFeatures: randomFeatures(),
				MoodTags:      randomTags(),
			}
		}
		return p
	}

	for i := 0; i < 2000; i++ {
		viewer := randomProfile("viewer")
		author := randomProfile("author")
		post := models.Post{
			PostID:   "p",
			AuthorID: "author",
			Mood:     randomText(),
			MoodTags: randomTags(),
			Song: models.SongDescriptor{
				Title:         "t",
				Artist:        "a",
				AudioFeatures: randomFeatures(),
			},
		}

		score := scorer.Score(viewer, author, post)
		assert.GreaterOrEqual(t, score, 0.0, "iteration %d", i)
		assert.LessOrEqual(t, score, 1.0, "iteration %d", i)
	}
}

func TestScoreDeterministic(t *testing.T) {
	var scorer CompatibilityScorer
	viewer := models.UserProfile{
		UserID:        "v",
		Questionnaire: models.Questionnaire{PrimaryGenre: "indie rock", DiscoveryCadence: "weekly"},
		Preference: &models.PreferenceVector{
			AudioFeatures: featureVector(0.7, 0.6, 0.5, 0.2, 120),
			MoodTags:      []string{"chill", "warm"},
		},
	}
	author := models.UserProfile{
		UserID:        "a",
		Questionnaire: models.Questionnaire{PrimaryGenre: "indie rock", DiscoveryCadence: "daily"},
	}
	post := models.Post{
		PostID:   "p",
		AuthorID: "a",
		Mood:     "chill",
		Song:     models.SongDescriptor{Title: "t", Artist: "x", AudioFeatures: featureVector(0.6, 0.6, 0.4, 0.3, 118)},
	}

	first := scorer.Score(viewer, author, post)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, scorer.Score(viewer, author, post))
	}
}

func TestScoreNeutralDegradation(t *testing.T) {
	var scorer CompatibilityScorer

	// No questionnaire on either side, no learned vector, no post features,
	// no engagement history: the score must sit at the midpoint, not crash
	// or collapse to an extreme.
	viewer := models.UserProfile{UserID: "v"}
	author := models.UserProfile{UserID: "a"}
	post := models.Post{PostID: "p", AuthorID: "a", Song: models.SongDescriptor{Title: "t", Artist: "x"}}

	score := scorer.Score(viewer, author, post)
	assert.InDelta(t, 0.5, score, 0.01)
}

func TestScoreIdenticalAudioScenario(t *testing.T) {
	var scorer CompatibilityScorer

	features := featureVector(0.8, 0.8, 0.8, 0.1, 128)
	viewer := models.UserProfile{
		UserID: "v",
		Preference: &models.PreferenceVector{
			AudioFeatures: features,
			MoodTags:      []string{"hype"},
		},
	}
	author := models.UserProfile{UserID: "a"}
	post := models.Post{
		PostID:   "p",
		AuthorID: "a",
		Mood:     "hype",
		Song:     models.SongDescriptor{Title: "t", Artist: "x", AudioFeatures: features},
	}

	// Identical vectors: the audio sub-score alone is exactly 1.
	assert.InDelta(t, 1.0, audioScore(viewer.Preference, post.Song.AudioFeatures), 1e-9)

	// With matching mood tags and empty questionnaires the overall score
	// stays high.
	score := scorer.Score(viewer, author, post)
	assert.GreaterOrEqual(t, score, 0.9)
}

func TestQuestionnaireScore(t *testing.T) {
	t.Run("all fields empty is not comparable", func(t *testing.T) {
		_, ok := questionnaireScore(models.Questionnaire{}, models.Questionnaire{})
		assert.False(t, ok)
	})

	t.Run("missing fields are omitted from the denominator", func(t *testing.T) {
		viewer := models.Questionnaire{DiscoveryCadence: "weekly"}
		author := models.Questionnaire{DiscoveryCadence: "weekly", MusicMemory: "summer road trips"}

		score, ok := questionnaireScore(viewer, author)
		assert.True(t, ok)
		// Only the cadence field is comparable, and it matches exactly.
		assert.InDelta(t, 1.0, score, 1e-9)
	})

	t.Run("cadence mismatch scores half", func(t *testing.T) {
		viewer := models.Questionnaire{DiscoveryCadence: "weekly"}
		author := models.Questionnaire{DiscoveryCadence: "daily"}

		score, ok := questionnaireScore(viewer, author)
		assert.True(t, ok)
		assert.InDelta(t, 0.5, score, 1e-9)
	})

	t.Run("genre exact match beats token overlap", func(t *testing.T) {
		exact, _ := questionnaireScore(
			models.Questionnaire{PrimaryGenre: "Indie Rock"},
			models.Questionnaire{PrimaryGenre: "indie rock"},
		)
		partial, _ := questionnaireScore(
			models.Questionnaire{PrimaryGenre: "indie rock"},
			models.Questionnaire{PrimaryGenre: "indie pop"},
		)
		assert.InDelta(t, 1.0, exact, 1e-9)
		assert.Less(t, partial, exact)
		assert.Greater(t, partial, 0.0)
	})
}

func TestTextSimilarity(t *testing.T) {
	assert.Equal(t, 0.0, textSimilarity("", ""), "empty union is defined as zero")
	assert.Equal(t, 1.0, textSimilarity("late night driving", "Late Night Driving"))
	assert.Equal(t, 0.0, textSimilarity("jazz", "metal"))

	// Tokens of length <= 2 are ignored.
	assert.Equal(t, 0.0, textSimilarity("to of an", "to of an"))

	// "night" shared out of {late, night} u {night, runs} = 1/3.
	assert.InDelta(t, 1.0/3.0, textSimilarity("late night", "night runs"), 1e-9)
}

func TestAudioScore(t *testing.T) {
	t.Run("missing either side is neutral", func(t *testing.T) {
		assert.Equal(t, 0.5, audioScore(nil, featureVector(1, 1, 1, 1, 100)))
		assert.Equal(t, 0.5, audioScore(&models.PreferenceVector{}, featureVector(1, 1, 1, 1, 100)))
		assert.Equal(t, 0.5, audioScore(&models.PreferenceVector{AudioFeatures: featureVector(1, 1, 1, 1, 100)}, nil))
	})

	t.Run("opposite vectors score low", func(t *testing.T) {
		pref := &models.PreferenceVector{AudioFeatures: featureVector(0, 0, 0, 0, 0)}
		score := audioScore(pref, featureVector(1, 1, 1, 1, 200))
		// Every normalized feature contributes zero; tempo term is zero too.
		assert.InDelta(t, 0.0, score, 1e-9)
	})

	t.Run("tempo compared relative to the faster track", func(t *testing.T) {
		assert.InDelta(t, 1.0, tempoSimilarity(128, 128), 1e-9)
		assert.InDelta(t, 0.5, tempoSimilarity(60, 120), 1e-9)
		assert.InDelta(t, 1.0, tempoSimilarity(0, 0), 1e-9)
	})
}

func TestMoodScore(t *testing.T) {
	pref := &models.PreferenceVector{MoodTags: []string{"Chill", "warm"}}

	t.Run("falls back to the single mood label", func(t *testing.T) {
		post := models.Post{Mood: "chill"}
		assert.InDelta(t, 0.5, moodScore(pref, post), 1e-9) // {chill,warm} n {chill} = 1/2
	})

	t.Run("tag set preferred over label", func(t *testing.T) {
		post := models.Post{Mood: "ignored", MoodTags: []string{"chill", "warm"}}
		assert.InDelta(t, 1.0, moodScore(pref, post), 1e-9)
	})

	t.Run("either side empty is neutral", func(t *testing.T) {
		assert.Equal(t, 0.5, moodScore(nil, models.Post{Mood: "chill"}))
		assert.Equal(t, 0.5, moodScore(pref, models.Post{}))
	})
}

func TestEngagementAffinity(t *testing.T) {
	t.Run("no signal on either side", func(t *testing.T) {
		_, ok := engagementAffinity(models.EngagementHistory{}, models.EngagementHistory{})
		assert.False(t, ok)
	})

	t.Run("shared connections accumulate and cap", func(t *testing.T) {
		shared := []string{"u1", "u2", "u3"}
		bonus, ok := engagementAffinity(
			models.EngagementHistory{MatchedUserIDs: shared},
			models.EngagementHistory{MatchedUserIDs: shared},
		)
		assert.True(t, ok)
		assert.InDelta(t, 0.3, bonus, 1e-9)

		many := make([]string, 15)
		for i := range many {
			many[i] = string(rune('a' + i))
		}
		bonus, ok = engagementAffinity(
			models.EngagementHistory{MatchedUserIDs: many},
			models.EngagementHistory{MatchedUserIDs: many},
		)
		assert.True(t, ok)
		assert.Equal(t, 1.0, bonus, "bonus must cap at 1")
	})

	t.Run("posted mood similarity contributes", func(t *testing.T) {
		bonus, ok := engagementAffinity(
			models.EngagementHistory{PostedMoods: []string{"chill", "mellow"}},
			models.EngagementHistory{PostedMoods: []string{"chill", "mellow"}},
		)
		assert.True(t, ok)
		assert.InDelta(t, 0.2, bonus, 1e-9)
	})
}

func TestScoreIgnoresWallClock(t *testing.T) {
	// The scorer must not depend on when it runs: two calls spaced apart
	// give identical results for identical inputs.
	var scorer CompatibilityScorer
	viewer := models.UserProfile{UserID: "v", Preference: &models.PreferenceVector{MoodTags: []string{"chill"}}}
	author := models.UserProfile{UserID: "a"}
	post := models.Post{PostID: "p", AuthorID: "a", Mood: "chill", CreatedAt: time.Now()}

	before := scorer.Score(viewer, author, post)
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, before, scorer.Score(viewer, author, post))
}
