package models

import "time"

// AudioFeatures is the numeric mood/energy descriptor of a song. All values
// except Tempo are pre-normalized to 0..1; Tempo is in BPM.
type AudioFeatures struct {
	Valence      float64 `dynamodbav:"valence" json:"valence"`
	Energy       float64 `dynamodbav:"energy" json:"energy"`
	Danceability float64 `dynamodbav:"danceability" json:"danceability"`
	Acousticness float64 `dynamodbav:"acousticness" json:"acousticness"`
	Tempo        float64 `dynamodbav:"tempo" json:"tempo"`
}

// SongDescriptor identifies the shared song. AudioFeatures and the track ref
// are optional; scoring degrades to a neutral contribution without them.
type SongDescriptor struct {
	Title          string         `dynamodbav:"title" json:"title"`
	Artist         string         `dynamodbav:"artist" json:"artist"`
	CoverArt       string         `dynamodbav:"coverArt,omitempty" json:"coverArt,omitempty"`
	SpotifyTrackID string         `dynamodbav:"spotifyTrackId,omitempty" json:"spotifyTrackId,omitempty"`
	PreviewURL     string         `dynamodbav:"previewUrl,omitempty" json:"previewUrl,omitempty"`
	Genres         []string       `dynamodbav:"genres,omitempty" json:"genres,omitempty"`
	AudioFeatures  *AudioFeatures `dynamodbav:"audioFeatures,omitempty" json:"audioFeatures,omitempty"`
}

// Post is one user's song of the day. Immutable after creation except for the
// engagement counters; whether it is still discoverable is computed from
// CreatedAt against the liveness boundary, never stored.
type Post struct {
	PostID       string         `dynamodbav:"postId" json:"postId"`
	AuthorID     string         `dynamodbav:"authorId" json:"authorId"`
	Song         SongDescriptor `dynamodbav:"song" json:"song"`
	Mood         string         `dynamodbav:"mood" json:"mood"`
	MoodTags     []string       `dynamodbav:"moodTags,omitempty" json:"moodTags,omitempty"`
	Caption      string         `dynamodbav:"caption,omitempty" json:"caption,omitempty"`
	LikeCount    int            `dynamodbav:"likeCount" json:"likeCount"`
	CommentCount int            `dynamodbav:"commentCount" json:"commentCount"`
	CreatedAt    time.Time      `dynamodbav:"createdAt" json:"createdAt"`
}

// MoodTagsOrLabel returns the post's mood-tag set, falling back to the single
// mood label when no tag set was provided.
func (p Post) MoodTagsOrLabel() []string {
	if len(p.MoodTags) > 0 {
		return p.MoodTags
	}
	if p.Mood != "" {
		return []string{p.Mood}
	}
	return nil
}

// PostsTable is the DynamoDB table name for posts
const PostsTable = "Posts"

// AuthorIndex is the GSI used to query posts by author
const AuthorIndex = "authorId-index"
