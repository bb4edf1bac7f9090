package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"songswipe_server/models"
)

// In-memory store fakes shared by the engine tests. All of them are safe
// for concurrent use so the race tests exercise the same interleavings the
// real stores would see.

type fakeProfileStore struct {
	mu       sync.Mutex
	profiles map[string]models.UserProfile
	getErr   error
	saveErr  error
	// failFor makes Get fail for specific user ids only.
	failFor map[string]error
}

func newFakeProfileStore(profiles ...models.UserProfile) *fakeProfileStore {
	s := &fakeProfileStore{profiles: make(map[string]models.UserProfile)}
	for _, p := range profiles {
		s.profiles[p.UserID] = p
	}
	return s
}

func (s *fakeProfileStore) Get(_ context.Context, userID string) (models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return models.UserProfile{}, s.getErr
	}
	if err, ok := s.failFor[userID]; ok {
		return models.UserProfile{}, err
	}
	profile, ok := s.profiles[userID]
	if !ok {
		return models.UserProfile{}, fmt.Errorf("profile %s: %w", userID, ErrNotFound)
	}
	return profile, nil
}

func (s *fakeProfileStore) Save(_ context.Context, profile models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.profiles[profile.UserID] = profile
	return nil
}

type fakeContentStore struct {
	mu        sync.Mutex
	posts     map[string]models.Post
	activeErr error
	byAuthErr error
	// partial, when set with activeErr, is returned alongside the error.
	partial []models.Post
}

func newFakeContentStore(posts ...models.Post) *fakeContentStore {
	s := &fakeContentStore{posts: make(map[string]models.Post)}
	for _, p := range posts {
		s.posts[p.PostID] = p
	}
	return s
}

func (s *fakeContentStore) Put(_ context.Context, post models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts[post.PostID] = post
	return nil
}

func (s *fakeContentStore) PostByID(_ context.Context, postID string) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[postID]
	if !ok {
		return models.Post{}, fmt.Errorf("post %s: %w", postID, ErrNotFound)
	}
	return post, nil
}

func (s *fakeContentStore) PostsByAuthor(_ context.Context, authorID string) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.byAuthErr != nil {
		return nil, s.byAuthErr
	}
	var posts []models.Post
	for _, post := range s.posts {
		if post.AuthorID == authorID {
			posts = append(posts, post)
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].PostID < posts[j].PostID })
	return posts, nil
}

func (s *fakeContentStore) ActivePostsExcludingAuthor(_ context.Context, authorID string, since time.Time) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeErr != nil {
		return s.partial, s.activeErr
	}
	var posts []models.Post
	for _, post := range s.posts {
		if post.AuthorID != authorID && post.CreatedAt.After(since) {
			posts = append(posts, post)
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].PostID < posts[j].PostID })
	return posts, nil
}

type fakeSwipeStore struct {
	mu        sync.Mutex
	swipes    map[string]models.Swipe // key swiperId|postId
	appendErr error
	likedErr  error
	swipedErr error
}

func newFakeSwipeStore() *fakeSwipeStore {
	return &fakeSwipeStore{swipes: make(map[string]models.Swipe)}
}

func swipeKey(swiperID, postID string) string { return swiperID + "|" + postID }

func (s *fakeSwipeStore) Append(_ context.Context, swipe models.Swipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.appendErr != nil {
		return s.appendErr
	}
	s.swipes[swipeKey(swipe.SwiperID, swipe.TargetPostID)] = swipe
	return nil
}

func (s *fakeSwipeStore) HasLike(_ context.Context, userID, postID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	swipe, ok := s.swipes[swipeKey(userID, postID)]
	return ok && swipe.Direction == models.SwipeLike, nil
}

func (s *fakeSwipeStore) LikedPostIDs(_ context.Context, userID string, limit int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.likedErr != nil {
		return nil, s.likedErr
	}
	var liked []models.Swipe
	for _, swipe := range s.swipes {
		if swipe.SwiperID == userID && swipe.Direction == models.SwipeLike {
			liked = append(liked, swipe)
		}
	}
	sort.Slice(liked, func(i, j int) bool { return liked[i].CreatedAt.After(liked[j].CreatedAt) })
	if limit > 0 && len(liked) > limit {
		liked = liked[:limit]
	}
	ids := make([]string, len(liked))
	for i, swipe := range liked {
		ids[i] = swipe.TargetPostID
	}
	return ids, nil
}

func (s *fakeSwipeStore) SwipedPostIDs(_ context.Context, userID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.swipedErr != nil {
		return nil, s.swipedErr
	}
	var ids []string
	for _, swipe := range s.swipes {
		if swipe.SwiperID == userID {
			ids = append(ids, swipe.TargetPostID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *fakeSwipeStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.swipes)
}

type fakeMatchStore struct {
	mu        sync.Mutex
	matches   map[string]models.Match // key pairKey
	createErr error
	listErr   error
	creates   int // successful conditional writes, for race assertions
}

func newFakeMatchStore() *fakeMatchStore {
	return &fakeMatchStore{matches: make(map[string]models.Match)}
}

func (s *fakeMatchStore) CreateIfAbsent(_ context.Context, match models.Match) (models.Match, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return models.Match{}, false, s.createErr
	}
	if existing, ok := s.matches[match.PairKey]; ok {
		return existing, false, nil
	}
	s.matches[match.PairKey] = match
	s.creates++
	return match, true, nil
}

func (s *fakeMatchStore) ActiveMatchIDs(_ context.Context, userID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	var ids []string
	for _, match := range s.matches {
		if match.Status != models.MatchStatusActive {
			continue
		}
		if other := match.CounterpartOf(userID); other != "" {
			ids = append(ids, other)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *fakeMatchStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.matches)
}
