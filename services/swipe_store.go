package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"songswipe_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoSwipeStore persists swipes keyed by (swiperId, targetPostId), so a
// repeated swipe on the same post overwrites rather than duplicates.
type DynamoSwipeStore struct {
	Dynamo *DynamoService
}

func (s *DynamoSwipeStore) Append(ctx context.Context, swipe models.Swipe) error {
	if swipe.SwiperID == "" || swipe.TargetPostID == "" {
		return fmt.Errorf("swipe is missing swiperId or targetPostId")
	}
	if err := s.Dynamo.PutItem(ctx, models.SwipesTable, swipe); err != nil {
		return fmt.Errorf("append swipe: %w", ErrUnavailable)
	}
	return nil
}

func (s *DynamoSwipeStore) HasLike(ctx context.Context, userID, postID string) (bool, error) {
	key := map[string]types.AttributeValue{
		"swiperId":     &types.AttributeValueMemberS{Value: userID},
		"targetPostId": &types.AttributeValueMemberS{Value: postID},
	}
	item, err := s.Dynamo.GetItem(ctx, models.SwipesTable, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("like lookup: %w", ErrUnavailable)
	}

	var swipe models.Swipe
	if err := attributevalue.UnmarshalMap(item, &swipe); err != nil {
		return false, fmt.Errorf("failed to unmarshal swipe: %w", err)
	}
	return swipe.Direction == models.SwipeLike, nil
}

func (s *DynamoSwipeStore) LikedPostIDs(ctx context.Context, userID string, limit int) ([]string, error) {
	swipes, err := s.swipesBySwiper(ctx, userID)
	if err != nil {
		return nil, err
	}

	liked := swipes[:0]
	for _, swipe := range swipes {
		if swipe.Direction == models.SwipeLike {
			liked = append(liked, swipe)
		}
	}

	// The table sorts by target post id, not by time, so the recency
	// ordering has to happen client-side.
	sort.Slice(liked, func(i, j int) bool {
		return liked[i].CreatedAt.After(liked[j].CreatedAt)
	})
	if limit > 0 && len(liked) > limit {
		liked = liked[:limit]
	}

	ids := make([]string, len(liked))
	for i, swipe := range liked {
		ids[i] = swipe.TargetPostID
	}
	return ids, nil
}

func (s *DynamoSwipeStore) SwipedPostIDs(ctx context.Context, userID string) ([]string, error) {
	swipes, err := s.swipesBySwiper(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(swipes))
	for i, swipe := range swipes {
		ids[i] = swipe.TargetPostID
	}
	return ids, nil
}

func (s *DynamoSwipeStore) swipesBySwiper(ctx context.Context, userID string) ([]models.Swipe, error) {
	keyCondition := "swiperId = :swiper"
	expressionValues := map[string]types.AttributeValue{
		":swiper": &types.AttributeValueMemberS{Value: userID},
	}

	items, err := s.Dynamo.QueryItems(ctx, models.SwipesTable, keyCondition, expressionValues, 0)
	if err != nil {
		return nil, fmt.Errorf("swipes for %s: %w", userID, ErrUnavailable)
	}

	var swipes []models.Swipe
	if err := attributevalue.UnmarshalListOfMaps(items, &swipes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal swipes for %s: %w", userID, err)
	}
	return swipes, nil
}
