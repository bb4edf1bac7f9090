package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"songswipe_server/models"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultPoolSize caps how many candidates one discovery request returns.
const DefaultPoolSize = 15

// DefaultScoreParallelism bounds concurrent author lookups per request.
const DefaultScoreParallelism = 8

// Candidate pairs a discoverable post with its compatibility score. It lives
// only for the duration of one discovery response.
type Candidate struct {
	Post  models.Post `json:"post"`
	Score float64     `json:"score"`
}

// DiscoveryService assembles the ranked candidate pool shown to a viewer.
type DiscoveryService struct {
	Profiles ProfileStore
	Posts    ContentStore
	Swipes   SwipeStore
	Matches  MatchStore
	Learner  *PreferenceService
	Scorer   CompatibilityScorer
	Clock    Clock

	PoolSize    int
	Parallelism int
	Logger      zerolog.Logger
}

// CandidatesFor returns up to PoolSize scored candidates for viewerID,
// ranked by score. A missing viewer profile is fatal; every other upstream
// failure degrades to a smaller (possibly empty) pool.
func (s *DiscoveryService) CandidatesFor(ctx context.Context, viewerID string) ([]Candidate, error) {
	// Best-effort taste refresh; a stale or absent vector is acceptable.
	if s.Learner != nil {
		if err := s.Learner.Refresh(ctx, viewerID); err != nil {
			s.Logger.Warn().Err(err).Str("userId", viewerID).Msg("preference refresh skipped")
		}
	}

	viewer, err := s.Profiles.Get(ctx, viewerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("viewer profile %s: %w", viewerID, ErrNotFound)
		}
		return nil, fmt.Errorf("viewer profile %s: %w", viewerID, err)
	}

	excludedAuthors, swipedPosts := s.exclusionSets(ctx, viewer)

	now := time.Now()
	posts, err := s.Posts.ActivePostsExcludingAuthor(ctx, viewerID, s.Clock.LastBoundary(now))
	if err != nil {
		// Degrade to whatever the fetch managed to return.
		s.Logger.Warn().Err(err).Str("userId", viewerID).Msg("active post fetch incomplete")
	}

	eligible := make([]models.Post, 0, len(posts))
	for _, post := range posts {
		if post.AuthorID == viewerID {
			continue
		}
		if _, swiped := swipedPosts[post.PostID]; swiped {
			continue
		}
		if _, excluded := excludedAuthors[post.AuthorID]; excluded {
			continue
		}
		if !s.Clock.IsActive(post.CreatedAt, now) {
			continue
		}
		eligible = append(eligible, post)
	}

	candidates := s.scoreCandidates(ctx, viewer, eligible)

	// Rank: score descending, then newer post first, then post id for a
	// total deterministic order.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		if !candidates[i].Post.CreatedAt.Equal(candidates[j].Post.CreatedAt) {
			return candidates[i].Post.CreatedAt.After(candidates[j].Post.CreatedAt)
		}
		return candidates[i].Post.PostID < candidates[j].Post.PostID
	})

	limit := s.PoolSize
	if limit <= 0 {
		limit = DefaultPoolSize
	}
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	s.Logger.Debug().
		Str("userId", viewerID).
		Int("eligible", len(eligible)).
		Int("returned", len(candidates)).
		Msg("discovery pool built")
	return candidates, nil
}

// exclusionSets builds the author ids and post ids that must never appear in
// the viewer's pool: self, friends, matched users, and already-swiped posts.
// Failures fall back to the engagement history on the profile document so a
// transient store error narrows the pool instead of widening it.
func (s *DiscoveryService) exclusionSets(ctx context.Context, viewer models.UserProfile) (map[string]struct{}, map[string]struct{}) {
	authors := map[string]struct{}{viewer.UserID: {}}
	for _, id := range viewer.FriendIDs {
		authors[id] = struct{}{}
	}
	for _, id := range viewer.Engagement.MatchedUserIDs {
		authors[id] = struct{}{}
	}

	matched, err := s.Matches.ActiveMatchIDs(ctx, viewer.UserID)
	if err != nil {
		s.Logger.Warn().Err(err).Str("userId", viewer.UserID).Msg("match lookup failed, using profile history")
	}
	for _, id := range matched {
		authors[id] = struct{}{}
	}

	swiped := make(map[string]struct{})
	swipedIDs, err := s.Swipes.SwipedPostIDs(ctx, viewer.UserID)
	if err != nil {
		s.Logger.Warn().Err(err).Str("userId", viewer.UserID).Msg("swipe lookup failed, using profile history")
		swipedIDs = viewer.Engagement.LikedPostIDs
	}
	for _, id := range swipedIDs {
		swiped[id] = struct{}{}
	}

	return authors, swiped
}

// scoreCandidates joins each post with its author profile and scores the
// pair. Author lookups run in parallel with bounded concurrency; a post
// whose author cannot be fetched is dropped, never the whole batch.
func (s *DiscoveryService) scoreCandidates(ctx context.Context, viewer models.UserProfile, posts []models.Post) []Candidate {
	if len(posts) == 0 {
		return nil
	}

	parallelism := s.Parallelism
	if parallelism <= 0 {
		parallelism = DefaultScoreParallelism
	}

	// One lookup per distinct author, shared across that author's posts.
	authorIDs := make([]string, 0, len(posts))
	seen := make(map[string]struct{}, len(posts))
	for _, post := range posts {
		if _, ok := seen[post.AuthorID]; !ok {
			seen[post.AuthorID] = struct{}{}
			authorIDs = append(authorIDs, post.AuthorID)
		}
	}

	var mu sync.Mutex
	authors := make(map[string]models.UserProfile, len(authorIDs))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(parallelism)
	for _, authorID := range authorIDs {
		authorID := authorID
		group.Go(func() error {
			if groupCtx.Err() != nil {
				// Request abandoned; stop issuing further lookups.
				return nil
			}
			author, err := s.Profiles.Get(groupCtx, authorID)
			if err != nil {
				s.Logger.Debug().Err(err).Str("authorId", authorID).Msg("author dropped from pool")
				return nil
			}
			mu.Lock()
			authors[authorID] = author
			mu.Unlock()
			return nil
		})
	}
	// Author fetch errors are swallowed above, so this only reflects
	// context cancellation.
	_ = group.Wait()

	candidates := make([]Candidate, 0, len(posts))
	for _, post := range posts {
		author, ok := authors[post.AuthorID]
		if !ok {
			continue
		}
		candidates = append(candidates, Candidate{
			Post:  post,
			Score: s.Scorer.Score(viewer, author, post),
		})
	}
	return candidates
}
