package models

import "time"

// Swipe records one directional decision by a user on a post. The table key
// is (swiperId, targetPostId), so re-swiping the same post overwrites the
// existing row instead of growing the history.
type Swipe struct {
	SwiperID       string         `dynamodbav:"swiperId" json:"swiperId"`
	TargetPostID   string         `dynamodbav:"targetPostId" json:"targetPostId"`
	TargetAuthorID string         `dynamodbav:"targetAuthorId" json:"targetAuthorId"`
	Direction      SwipeDirection `dynamodbav:"direction" json:"direction"`
	CreatedAt      time.Time      `dynamodbav:"createdAt" json:"createdAt"`
}

// SwipesTable is the DynamoDB table name for swipes
const SwipesTable = "Swipes"
