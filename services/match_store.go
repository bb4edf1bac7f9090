package services

import (
	"context"
	"errors"
	"fmt"

	"songswipe_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoMatchStore persists matches keyed by the deterministic pair key,
// with one GSI per pair slot for member lookups.
type DynamoMatchStore struct {
	Dynamo *DynamoService
}

// CreateIfAbsent writes the match unless the pair already has one. Losing
// the conditional write is not an error: the existing row is fetched and
// returned so both racing callers end up holding the same match.
func (s *DynamoMatchStore) CreateIfAbsent(ctx context.Context, match models.Match) (models.Match, bool, error) {
	err := s.Dynamo.PutItemIfAbsent(ctx, models.MatchesTable, "pairKey", match)
	if err == nil {
		return match, true, nil
	}
	if !errors.Is(err, ErrAlreadyExists) {
		return models.Match{}, false, fmt.Errorf("create match: %w", ErrUnavailable)
	}

	existing, err := s.byPairKey(ctx, match.PairKey)
	if err != nil {
		return models.Match{}, false, fmt.Errorf("existing match %s: %w", match.PairKey, err)
	}
	return existing, false, nil
}

func (s *DynamoMatchStore) ActiveMatchIDs(ctx context.Context, userID string) ([]string, error) {
	var counterparts []string

	lookups := []struct {
		index     string
		condition string
	}{
		{models.UserAIndex, "userAId = :user"},
		{models.UserBIndex, "userBId = :user"},
	}
	for _, lookup := range lookups {
		items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.MatchesTable, lookup.index, lookup.condition,
			map[string]types.AttributeValue{":user": &types.AttributeValueMemberS{Value: userID}}, 0)
		if err != nil {
			return nil, fmt.Errorf("matches for %s: %w", userID, ErrUnavailable)
		}

		var matches []models.Match
		if err := attributevalue.UnmarshalListOfMaps(items, &matches); err != nil {
			return nil, fmt.Errorf("failed to unmarshal matches for %s: %w", userID, err)
		}
		for _, match := range matches {
			if match.Status != models.MatchStatusActive {
				continue
			}
			if other := match.CounterpartOf(userID); other != "" {
				counterparts = append(counterparts, other)
			}
		}
	}

	return counterparts, nil
}

func (s *DynamoMatchStore) byPairKey(ctx context.Context, pairKey string) (models.Match, error) {
	key := map[string]types.AttributeValue{
		"pairKey": &types.AttributeValueMemberS{Value: pairKey},
	}
	item, err := s.Dynamo.GetItem(ctx, models.MatchesTable, key)
	if err != nil {
		return models.Match{}, err
	}

	var match models.Match
	if err := attributevalue.UnmarshalMap(item, &match); err != nil {
		return models.Match{}, fmt.Errorf("failed to unmarshal match %s: %w", pairKey, err)
	}
	return match, nil
}
