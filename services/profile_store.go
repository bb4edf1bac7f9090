package services

import (
	"context"
	"fmt"

	"songswipe_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoProfileStore persists user profiles in the UserProfiles table.
type DynamoProfileStore struct {
	Dynamo *DynamoService
}

func (s *DynamoProfileStore) Get(ctx context.Context, userID string) (models.UserProfile, error) {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
	item, err := s.Dynamo.GetItem(ctx, models.UserProfilesTable, key)
	if err != nil {
		return models.UserProfile{}, err
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to unmarshal profile %s: %w", userID, err)
	}
	// The engagement history is normalized here so nothing downstream has to
	// cope with duplicates or blank entries.
	profile.Engagement = profile.Engagement.Normalize()
	return profile, nil
}

func (s *DynamoProfileStore) Save(ctx context.Context, profile models.UserProfile) error {
	if profile.UserID == "" {
		return fmt.Errorf("profile is missing userId")
	}
	profile.Engagement = profile.Engagement.Normalize()
	return s.Dynamo.PutItem(ctx, models.UserProfilesTable, profile)
}
