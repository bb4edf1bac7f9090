package services

import (
	"math"
	"strings"

	"songswipe_server/models"
)

// Component weights of the final score. Components whose inputs are entirely
// missing are omitted and the remaining weights renormalized, so a sparse
// profile lands near the middle of the range instead of being dragged down.
const (
	questionnaireWeight = 0.40
	audioWeight         = 0.30
	moodWeight          = 0.20
	engagementWeight    = 0.10
)

// Questionnaire sub-weights, normalized to 1 before combining.
const (
	weekendListeningWeight = 0.25
	primaryGenreWeight     = 0.25
	discoveryCadenceWeight = 0.20
	preferredMoodWeight    = 0.20
	musicMemoryWeight      = 0.10
)

// Audio-feature sub-weights.
const (
	valenceWeight      = 0.25
	energyWeight       = 0.25
	danceabilityWeight = 0.20
	acousticnessWeight = 0.15
	tempoWeight        = 0.15
)

// Engagement-affinity terms.
const (
	sharedConnectionBonus = 0.1
	postedMoodWeight      = 0.2
)

const neutralScore = 0.5

// CompatibilityScorer computes how well a candidate post fits a viewer.
// It is pure and deterministic: no storage access, no clock, safe to call
// from any number of goroutines.
type CompatibilityScorer struct{}

// Score returns a compatibility score in [0,1] for the viewer against the
// candidate post and its author. Missing sub-signals contribute neutrally;
// the function never fails.
func (CompatibilityScorer) Score(viewer, author models.UserProfile, post models.Post) float64 {
	var sum, weight float64

	if q, ok := questionnaireScore(viewer.Questionnaire, author.Questionnaire); ok {
		sum += questionnaireWeight * q
		weight += questionnaireWeight
	}

	sum += audioWeight * audioScore(viewer.Preference, post.Song.AudioFeatures)
	weight += audioWeight

	sum += moodWeight * moodScore(viewer.Preference, post)
	weight += moodWeight

	if b, ok := engagementAffinity(viewer.Engagement, author.Engagement); ok {
		sum += engagementWeight * b
		weight += engagementWeight
	}

	return clamp01(sum / weight)
}

// questionnaireScore compares the two questionnaires field by field. Fields
// missing on either side are dropped from both the numerator and the
// normalizing denominator. ok is false when nothing was comparable.
func questionnaireScore(viewer, author models.Questionnaire) (float64, bool) {
	if viewer.IsZero() || author.IsZero() {
		return 0, false
	}

	var sum, weight float64

	add := func(w, s float64) {
		sum += w * s
		weight += w
	}

	if viewer.WeekendListening != "" && author.WeekendListening != "" {
		add(weekendListeningWeight, textSimilarity(viewer.WeekendListening, author.WeekendListening))
	}
	if viewer.PrimaryGenre != "" && author.PrimaryGenre != "" {
		if strings.EqualFold(strings.TrimSpace(viewer.PrimaryGenre), strings.TrimSpace(author.PrimaryGenre)) {
			add(primaryGenreWeight, 1)
		} else {
			add(primaryGenreWeight, textSimilarity(viewer.PrimaryGenre, author.PrimaryGenre))
		}
	}
	if viewer.DiscoveryCadence != "" && author.DiscoveryCadence != "" {
		if strings.EqualFold(strings.TrimSpace(viewer.DiscoveryCadence), strings.TrimSpace(author.DiscoveryCadence)) {
			add(discoveryCadenceWeight, 1)
		} else {
			add(discoveryCadenceWeight, 0.5)
		}
	}
	if viewer.PreferredMoodTag != "" && author.PreferredMoodTag != "" {
		if strings.EqualFold(strings.TrimSpace(viewer.PreferredMoodTag), strings.TrimSpace(author.PreferredMoodTag)) {
			add(preferredMoodWeight, 1)
		} else {
			add(preferredMoodWeight, textSimilarity(viewer.PreferredMoodTag, author.PreferredMoodTag))
		}
	}
	if viewer.MusicMemory != "" && author.MusicMemory != "" {
		add(musicMemoryWeight, textSimilarity(viewer.MusicMemory, author.MusicMemory))
	}

	if weight == 0 {
		return 0, false
	}
	return sum / weight, true
}

// audioScore compares the viewer's learned audio-feature vector against the
// post's, feature by feature. Neutral when either side is absent.
func audioScore(pref *models.PreferenceVector, post *models.AudioFeatures) float64 {
	if pref == nil || pref.AudioFeatures == nil || post == nil {
		return neutralScore
	}
	learned := pref.AudioFeatures

	score := valenceWeight*(1-math.Abs(learned.Valence-post.Valence)) +
		energyWeight*(1-math.Abs(learned.Energy-post.Energy)) +
		danceabilityWeight*(1-math.Abs(learned.Danceability-post.Danceability)) +
		acousticnessWeight*(1-math.Abs(learned.Acousticness-post.Acousticness)) +
		tempoWeight*tempoSimilarity(learned.Tempo, post.Tempo)
	return clamp01(score)
}

// tempoSimilarity compares tempos relative to the faster of the two, so a
// 10 BPM gap matters more at 90 BPM than at 170.
func tempoSimilarity(a, b float64) float64 {
	faster := math.Max(a, b)
	if faster == 0 {
		return 1
	}
	return math.Max(0, 1-math.Abs(a-b)/faster)
}

// moodScore overlaps the viewer's learned mood tags with the post's tags
// (or its single mood label). Neutral when either side is empty.
func moodScore(pref *models.PreferenceVector, post models.Post) float64 {
	if pref == nil || len(pref.MoodTags) == 0 {
		return neutralScore
	}
	postTags := post.MoodTagsOrLabel()
	if len(postTags) == 0 {
		return neutralScore
	}
	return jaccard(normalizeSet(pref.MoodTags), normalizeSet(postTags))
}

// engagementAffinity awards a small bonus for shared matched connections and
// for similar posting moods. ok is false when neither term has signal on
// both sides.
func engagementAffinity(viewer, author models.EngagementHistory) (float64, bool) {
	var bonus float64
	ok := false

	if len(viewer.MatchedUserIDs) > 0 && len(author.MatchedUserIDs) > 0 {
		ok = true
		authorSet := normalizeSet(author.MatchedUserIDs)
		for _, id := range viewer.MatchedUserIDs {
			if _, shared := authorSet[strings.ToLower(id)]; shared {
				bonus += sharedConnectionBonus
			}
		}
	}

	if len(viewer.PostedMoods) > 0 && len(author.PostedMoods) > 0 {
		ok = true
		bonus += postedMoodWeight * textSimilarity(
			strings.Join(viewer.PostedMoods, " "),
			strings.Join(author.PostedMoods, " "),
		)
	}

	if !ok {
		return 0, false
	}
	return math.Min(bonus, 1), true
}

// textSimilarity is token-set Jaccard over lower-cased words longer than two
// characters. An empty union scores 0.
func textSimilarity(a, b string) float64 {
	return jaccard(tokenSet(a), tokenSet(b))
}

func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
	for _, tok := range tokens {
		if len(tok) > 2 {
			set[tok] = struct{}{}
		}
	}
	return set
}

func normalizeSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	union := len(b)
	intersection := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			intersection++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
