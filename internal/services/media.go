package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/avatimes/avatimes/internal/model"
	"github.com/avatimes/avatimes/internal/store"
)

// MediaService covers reels and stories.
type MediaService struct {
	store store.Store
}

func NewMediaService(s store.Store) *MediaService { return &MediaService{store: s} }

func (s *MediaService) Reels(ctx context.Context) ([]*model.Reel, error) {
	return s.store.Reels().List(ctx)
}

func (s *MediaService) CreateReel(ctx context.Context, r *model.Reel) (*model.Reel, error) {
	if strings.TrimSpace(r.Author) == "" {
		session, err := s.store.Session().Get(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: author required", model.ErrValidation)
		}
		r.Author = session.Username
	}
	return s.store.Reels().Add(ctx, r)
}

func (s *MediaService) ToggleReelLike(ctx context.Context, id string) (*model.Reel, error) {
	return s.store.Reels().ToggleLike(ctx, id)
}

func (s *MediaService) DeleteReel(ctx context.Context, id string) error {
	return s.store.Reels().Remove(ctx, id)
}

func (s *MediaService) Stories(ctx context.Context) ([]*model.Story, error) {
	return s.store.Stories().List(ctx)
}

func (s *MediaService) CreateStory(ctx context.Context, st *model.Story) (*model.Story, error) {
	if strings.TrimSpace(st.Author) == "" {
		session, err := s.store.Session().Get(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: author required", model.ErrValidation)
		}
		st.Author = session.Username
		if st.Avatar == "" && st.Author != "" {
			st.Avatar = strings.ToUpper(st.Author[:1])
		}
	}
	return s.store.Stories().Add(ctx, st)
}

func (s *MediaService) ViewStory(ctx context.Context, id string) (*model.Story, error) {
	return s.store.Stories().MarkViewed(ctx, id)
}
