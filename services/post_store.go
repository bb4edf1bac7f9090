package services

import (
	"context"
	"fmt"
	"time"

	"songswipe_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoPostStore persists posts in the Posts table, with an authorId GSI
// for per-user listings.
type DynamoPostStore struct {
	Dynamo *DynamoService
}

func (s *DynamoPostStore) Put(ctx context.Context, post models.Post) error {
	if post.PostID == "" || post.AuthorID == "" {
		return fmt.Errorf("post is missing postId or authorId")
	}
	return s.Dynamo.PutItem(ctx, models.PostsTable, post)
}

func (s *DynamoPostStore) PostByID(ctx context.Context, postID string) (models.Post, error) {
	key := map[string]types.AttributeValue{
		"postId": &types.AttributeValueMemberS{Value: postID},
	}
	item, err := s.Dynamo.GetItem(ctx, models.PostsTable, key)
	if err != nil {
		return models.Post{}, err
	}

	var post models.Post
	if err := attributevalue.UnmarshalMap(item, &post); err != nil {
		return models.Post{}, fmt.Errorf("failed to unmarshal post %s: %w", postID, err)
	}
	return post, nil
}

func (s *DynamoPostStore) PostsByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	keyCondition := "authorId = :author"
	expressionValues := map[string]types.AttributeValue{
		":author": &types.AttributeValueMemberS{Value: authorID},
	}

	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.PostsTable, models.AuthorIndex, keyCondition, expressionValues, 0)
	if err != nil {
		return nil, fmt.Errorf("posts by author %s: %w", authorID, ErrUnavailable)
	}

	var posts []models.Post
	if err := attributevalue.UnmarshalListOfMaps(items, &posts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal posts for %s: %w", authorID, err)
	}
	return posts, nil
}

// ActivePostsExcludingAuthor scans for posts created strictly after since
// by any author other than authorID. On a mid-scan failure the rows
// collected so far are returned with the error so discovery can degrade to
// a partial pool.
func (s *DynamoPostStore) ActivePostsExcludingAuthor(ctx context.Context, authorID string, since time.Time) ([]models.Post, error) {
	var posts []models.Post
	err := s.Dynamo.ScanWithFilter(ctx, models.PostsTable, func(item map[string]types.AttributeValue) bool {
		if author, ok := item["authorId"].(*types.AttributeValueMemberS); !ok || author.Value == authorID {
			return false
		}
		createdAttr, ok := item["createdAt"].(*types.AttributeValueMemberS)
		if !ok {
			return false
		}
		createdAt, parseErr := time.Parse(time.RFC3339Nano, createdAttr.Value)
		if parseErr != nil {
			return false
		}
		return createdAt.After(since)
	}, &posts)
	if err != nil {
		return posts, fmt.Errorf("active posts: %w", ErrUnavailable)
	}
	return posts, nil
}
