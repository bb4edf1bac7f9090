package models

// SwipeDirection is the decision a user makes on a candidate post.
type SwipeDirection string

const (
	SwipeLike SwipeDirection = "like"
	SwipePass SwipeDirection = "pass"
)

// Valid reports whether d is one of the two known directions.
func (d SwipeDirection) Valid() bool {
	return d == SwipeLike || d == SwipePass
}

// Match statuses
const (
	MatchStatusActive   = "active"
	MatchStatusArchived = "archived"
)
