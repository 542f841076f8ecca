package services

import (
	"context"
	"strings"

	"github.com/avatimes/avatimes/internal/model"
	"github.com/avatimes/avatimes/internal/store"
)

// ExploreService backs the explore page: cross-collection search, category
// browsing and the recent-search list.
type ExploreService struct {
	store store.Store
}

func NewExploreService(s store.Store) *ExploreService { return &ExploreService{store: s} }

// SearchResults groups hits per collection, unranked.
type SearchResults struct {
	Posts []*model.Post `json:"posts"`
	Reels []*model.Reel `json:"reels"`
	Users []string      `json:"users"`
}

// Search runs the query over posts, reels and known usernames, and records
// it in the recent-search list. Blank queries return empty results and are
// not recorded.
func (s *ExploreService) Search(ctx context.Context, query string) (*SearchResults, error) {
	query = strings.TrimSpace(query)
	res := &SearchResults{Posts: []*model.Post{}, Reels: []*model.Reel{}, Users: []string{}}
	if query == "" {
		return res, nil
	}

	posts, err := s.store.Posts().Search(ctx, query)
	if err != nil {
		return nil, err
	}
	reels, err := s.store.Reels().Search(ctx, query)
	if err != nil {
		return nil, err
	}
	res.Posts = posts
	res.Reels = reels

	seen := map[string]bool{}
	for _, p := range posts {
		addUserHit(res, seen, p.Author, query)
	}
	for _, r := range reels {
		addUserHit(res, seen, r.Author, query)
	}
	users, err := s.store.Users().List(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		addUserHit(res, seen, u.Username, query)
	}

	if err := s.store.Searches().Add(ctx, query); err != nil {
		return nil, err
	}
	return res, nil
}

// Browse filters posts by feature category; "all" passes everything.
func (s *ExploreService) Browse(ctx context.Context, category string) ([]*model.Post, error) {
	return s.store.Posts().ByCategory(ctx, category)
}

func (s *ExploreService) RecentSearches(ctx context.Context) ([]string, error) {
	return s.store.Searches().List(ctx)
}

func (s *ExploreService) ClearSearches(ctx context.Context) error {
	return s.store.Searches().Clear(ctx)
}

func addUserHit(res *SearchResults, seen map[string]bool, username, query string) {
	key := strings.ToLower(username)
	if seen[key] || !strings.Contains(key, strings.ToLower(query)) {
		return
	}
	seen[key] = true
	res.Users = append(res.Users, username)
}
