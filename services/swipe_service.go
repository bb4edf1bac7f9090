package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"songswipe_server/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MatchNotifier surfaces a freshly created match to connected clients.
type MatchNotifier interface {
	NotifyMatch(matchID, userAID, userBID string)
}

// SwipeResult tells the caller whether the swipe completed a mutual like.
// MatchID is set whenever reciprocity exists, including when the match row
// was created by the concurrent opposite swipe.
type SwipeResult struct {
	Matched bool   `json:"matched"`
	MatchID string `json:"matchId,omitempty"`
}

// SwipeService records swipes and runs the mutual-like protocol. At most one
// active match can ever exist per user pair: match rows are keyed by the
// deterministic pair key and written create-if-absent, so concurrent
// reciprocal likes converge on a single row with both callers succeeding.
type SwipeService struct {
	Profiles ProfileStore
	Posts    ContentStore
	Swipes   SwipeStore
	Matches  MatchStore
	Notifier MatchNotifier
	Logger   zerolog.Logger
}

// ProcessSwipe persists the swipe and, on a like, checks reciprocity and
// creates the match if one is due. The swipe write and any match write use a
// context detached from cancellation: once a swipe is issued it must land,
// because match state depends on it.
func (s *SwipeService) ProcessSwipe(ctx context.Context, swiperID, targetPostID string, direction models.SwipeDirection) (SwipeResult, error) {
	if !direction.Valid() {
		return SwipeResult{}, fmt.Errorf("unknown swipe direction %q", direction)
	}

	target, err := s.Posts.PostByID(ctx, targetPostID)
	if err != nil {
		return SwipeResult{}, fmt.Errorf("target post %s: %w", targetPostID, err)
	}
	if target.AuthorID == swiperID {
		return SwipeResult{}, fmt.Errorf("cannot swipe on own post %s", targetPostID)
	}

	writeCtx := context.WithoutCancel(ctx)
	swipe := models.Swipe{
		SwiperID:       swiperID,
		TargetPostID:   targetPostID,
		TargetAuthorID: target.AuthorID,
		Direction:      direction,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.Swipes.Append(writeCtx, swipe); err != nil {
		return SwipeResult{}, fmt.Errorf("record swipe: %w", err)
	}

	if direction == models.SwipePass {
		return SwipeResult{}, nil
	}

	s.recordLikeOnProfile(writeCtx, swiperID, targetPostID)

	return s.checkReciprocity(writeCtx, swiperID, target.AuthorID)
}

// checkReciprocity scans the swiper's own posts for a like from the target
// author and creates the pair's match on the first hit.
func (s *SwipeService) checkReciprocity(ctx context.Context, swiperID, targetAuthorID string) (SwipeResult, error) {
	ownPosts, err := s.Posts.PostsByAuthor(ctx, swiperID)
	if err != nil {
		// The like is recorded; the match will be created when the other
		// side swipes next. Reciprocity checking is not worth failing the
		// swipe over.
		s.Logger.Warn().Err(err).Str("userId", swiperID).Msg("reciprocity check skipped")
		return SwipeResult{}, nil
	}
	if len(ownPosts) == 0 {
		return SwipeResult{}, nil
	}

	for _, own := range ownPosts {
		liked, err := s.Swipes.HasLike(ctx, targetAuthorID, own.PostID)
		if err != nil {
			s.Logger.Warn().Err(err).Str("postId", own.PostID).Msg("like lookup failed")
			continue
		}
		if !liked {
			continue
		}
		return s.createMatch(ctx, swiperID, targetAuthorID)
	}

	return SwipeResult{}, nil
}

func (s *SwipeService) createMatch(ctx context.Context, swiperID, targetAuthorID string) (SwipeResult, error) {
	userA, userB := models.NormalizePair(swiperID, targetAuthorID)
	match := models.Match{
		PairKey:   models.PairKey(swiperID, targetAuthorID),
		MatchID:   uuid.NewString(),
		UserAID:   userA,
		UserBID:   userB,
		Status:    models.MatchStatusActive,
		CreatedAt: time.Now().UTC(),
	}

	stored, created, err := s.Matches.CreateIfAbsent(ctx, match)
	if err != nil {
		return SwipeResult{}, fmt.Errorf("create match %s: %w", match.PairKey, err)
	}

	if created {
		s.Logger.Info().
			Str("matchId", stored.MatchID).
			Str("pairKey", stored.PairKey).
			Msg("match created")
		s.recordMatchOnProfiles(ctx, stored)
		if s.Notifier != nil {
			s.Notifier.NotifyMatch(stored.MatchID, stored.UserAID, stored.UserBID)
		}
	}

	return SwipeResult{Matched: true, MatchID: stored.MatchID}, nil
}

// recordLikeOnProfile mirrors a like into the swiper's engagement history,
// best-effort. Discovery falls back to this copy when the swipe store is
// unreachable, so the exclusion set stays populated.
func (s *SwipeService) recordLikeOnProfile(ctx context.Context, swiperID, postID string) {
	profile, err := s.Profiles.Get(ctx, swiperID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.Logger.Warn().Err(err).Str("userId", swiperID).Msg("like history update skipped")
		}
		return
	}
	profile.Engagement.LikedPostIDs = append(profile.Engagement.LikedPostIDs, postID)
	profile.Engagement = profile.Engagement.Normalize()
	if err := s.Profiles.Save(ctx, profile); err != nil {
		s.Logger.Warn().Err(err).Str("userId", swiperID).Msg("like history update failed")
	}
}

// recordMatchOnProfiles mirrors the new match into both members' engagement
// history, best-effort. MatchStore remains the source of truth.
func (s *SwipeService) recordMatchOnProfiles(ctx context.Context, match models.Match) {
	for _, userID := range []string{match.UserAID, match.UserBID} {
		profile, err := s.Profiles.Get(ctx, userID)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				s.Logger.Warn().Err(err).Str("userId", userID).Msg("match history update skipped")
			}
			continue
		}
		profile.Engagement.MatchedUserIDs = append(profile.Engagement.MatchedUserIDs, match.CounterpartOf(userID))
		profile.Engagement = profile.Engagement.Normalize()
		if err := s.Profiles.Save(ctx, profile); err != nil {
			s.Logger.Warn().Err(err).Str("userId", userID).Msg("match history update failed")
		}
	}
}
