package models

// Questionnaire holds the five short free-text answers collected at signup.
// Any field may be empty; scoring omits empty fields instead of penalizing them.
type Questionnaire struct {
	WeekendListening string `dynamodbav:"weekendListening,omitempty" json:"weekendListening,omitempty"`
	PrimaryGenre     string `dynamodbav:"primaryGenre,omitempty" json:"primaryGenre,omitempty"`
	DiscoveryCadence string `dynamodbav:"discoveryCadence,omitempty" json:"discoveryCadence,omitempty"`
	PreferredMoodTag string `dynamodbav:"preferredMoodTag,omitempty" json:"preferredMoodTag,omitempty"`
	MusicMemory      string `dynamodbav:"musicMemory,omitempty" json:"musicMemory,omitempty"`
}

// IsZero reports whether no answer has been filled in.
func (q Questionnaire) IsZero() bool {
	return q.WeekendListening == "" && q.PrimaryGenre == "" && q.DiscoveryCadence == "" &&
		q.PreferredMoodTag == "" && q.MusicMemory == ""
}

// PreferenceVector is the learned taste profile derived from a user's liked
// posts. Absent until the user has liked at least one post with usable
// audio features.
type PreferenceVector struct {
	Genres        []string       `dynamodbav:"genres,omitempty" json:"genres,omitempty"`
	AudioFeatures *AudioFeatures `dynamodbav:"audioFeatures,omitempty" json:"audioFeatures,omitempty"`
	MoodTags      []string       `dynamodbav:"moodTags,omitempty" json:"moodTags,omitempty"`
	UpdatedAt     string         `dynamodbav:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// UserProfile defines the structure for user profiles
type UserProfile struct {
	UserID        string            `dynamodbav:"userId" json:"userId"`
	Name          string            `dynamodbav:"name,omitempty" json:"name,omitempty"`
	EmailID       string            `dynamodbav:"emailId,omitempty" json:"emailId,omitempty"`
	Questionnaire Questionnaire     `dynamodbav:"questionnaire,omitempty" json:"questionnaire,omitempty"`
	Preference    *PreferenceVector `dynamodbav:"preference,omitempty" json:"preference,omitempty"`
	FriendIDs     []string          `dynamodbav:"friendIds,omitempty" json:"friendIds,omitempty"`
	Engagement    EngagementHistory `dynamodbav:"engagement,omitempty" json:"engagement,omitempty"`
	CreatedAt     string            `dynamodbav:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// UserProfilesTable is the DynamoDB table name for user profiles
const UserProfilesTable = "UserProfiles"
