package models

import "time"

// Match links two users who liked each other's posts. PairKey is the table's
// primary key: a deterministic identifier for the unordered user pair, which
// is what makes concurrent creation attempts converge on a single row.
type Match struct {
	PairKey   string    `dynamodbav:"pairKey" json:"pairKey"`
	MatchID   string    `dynamodbav:"matchId" json:"matchId"`
	UserAID   string    `dynamodbav:"userAId" json:"userAId"`
	UserBID   string    `dynamodbav:"userBId" json:"userBId"`
	Status    string    `dynamodbav:"status" json:"status"`
	CreatedAt time.Time `dynamodbav:"createdAt" json:"createdAt"`
}

// CounterpartOf returns the other member of the pair, or "" when userID is
// not part of this match.
func (m Match) CounterpartOf(userID string) string {
	switch userID {
	case m.UserAID:
		return m.UserBID
	case m.UserBID:
		return m.UserAID
	default:
		return ""
	}
}

// NormalizePair orders two user ids deterministically.
func NormalizePair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

// PairKey builds the deterministic key for an unordered user pair.
func PairKey(a, b string) string {
	a, b = NormalizePair(a, b)
	return a + "#" + b
}

// MatchesTable is the DynamoDB table name for matches
const MatchesTable = "Matches"

// Match member GSIs, one per pair slot.
const (
	UserAIndex = "userAId-index"
	UserBIndex = "userBId-index"
)
