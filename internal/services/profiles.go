package services

import (
	"context"
	"errors"
	"strings"

	"github.com/avatimes/avatimes/internal/model"
	"github.com/avatimes/avatimes/internal/store"
)

// ProfileService serves the presentation record for a username. The post
// count is always derived from the post and reel collections on read.
type ProfileService struct {
	store store.Store
}

func NewProfileService(s store.Store) *ProfileService { return &ProfileService{store: s} }

func (s *ProfileService) Get(ctx context.Context, username string) (*model.Profile, error) {
	p, err := s.store.Profiles().Get(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		// Any username renders a profile page; unknown ones start blank.
		p = &model.Profile{Username: username, DisplayName: username}
	} else if err != nil {
		return nil, err
	}

	posts, err := s.store.Posts().ByAuthor(ctx, username)
	if err != nil {
		return nil, err
	}
	reels, err := s.store.Reels().ByAuthor(ctx, username)
	if err != nil {
		return nil, err
	}
	p.Posts = len(posts) + len(reels)
	return p, nil
}

// Update saves the editable fields and returns the merged view.
func (s *ProfileService) Update(ctx context.Context, username string, fn func(*model.Profile)) (*model.Profile, error) {
	if strings.TrimSpace(username) == "" {
		return nil, model.ErrValidation
	}
	p, err := s.store.Profiles().Get(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		p = &model.Profile{Username: username, DisplayName: username}
	} else if err != nil {
		return nil, err
	}
	fn(p)
	p.Username = username
	if _, err := s.store.Profiles().Save(ctx, p); err != nil {
		return nil, err
	}
	return s.Get(ctx, username)
}
