package services

import (
	"context"
	"time"

	"songswipe_server/models"
)

// The matching engine consumes persistence through these interfaces. The
// DynamoDB implementations live in *_store.go; tests substitute in-memory
// fakes.

// ProfileStore reads and writes user profiles.
type ProfileStore interface {
	Get(ctx context.Context, userID string) (models.UserProfile, error)
	Save(ctx context.Context, profile models.UserProfile) error
}

// ContentStore reads and writes posts.
type ContentStore interface {
	Put(ctx context.Context, post models.Post) error
	PostByID(ctx context.Context, postID string) (models.Post, error)
	PostsByAuthor(ctx context.Context, authorID string) ([]models.Post, error)
	// ActivePostsExcludingAuthor returns posts created strictly after since,
	// excluding those authored by authorID. A partial result may be returned
	// alongside a non-nil error when the fetch fails midway.
	ActivePostsExcludingAuthor(ctx context.Context, authorID string, since time.Time) ([]models.Post, error)
}

// SwipeStore records swipes and answers reciprocity queries.
type SwipeStore interface {
	// Append upserts the swipe under its (swiper, post) key.
	Append(ctx context.Context, swipe models.Swipe) error
	// HasLike reports whether userID has a recorded like on postID.
	HasLike(ctx context.Context, userID, postID string) (bool, error)
	// LikedPostIDs returns up to limit of userID's most recently liked
	// post ids, newest first.
	LikedPostIDs(ctx context.Context, userID string, limit int) ([]string, error)
	// SwipedPostIDs returns every post id userID has swiped, any direction.
	SwipedPostIDs(ctx context.Context, userID string) ([]string, error)
}

// MatchStore creates and lists matches.
type MatchStore interface {
	// CreateIfAbsent writes match under its pair key unless a match for that
	// pair already exists, in which case the existing match is returned with
	// created=false and a nil error.
	CreateIfAbsent(ctx context.Context, match models.Match) (models.Match, bool, error)
	// ActiveMatchIDs returns the ids of users userID has an active match with.
	ActiveMatchIDs(ctx context.Context, userID string) ([]string, error)
}
