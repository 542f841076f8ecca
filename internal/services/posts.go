// Package services orchestrates feed, chat, notification, profile and
// explore use cases on top of the store.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/avatimes/avatimes/internal/model"
	"github.com/avatimes/avatimes/internal/store"
)

// PostService handles the feed and per-post comment threads.
type PostService struct {
	store store.Store
}

func NewPostService(s store.Store) *PostService { return &PostService{store: s} }

func (s *PostService) Feed(ctx context.Context) ([]*model.Post, error) {
	return s.store.Posts().List(ctx)
}

func (s *PostService) Get(ctx context.Context, id string) (*model.Post, error) {
	return s.store.Posts().Get(ctx, id)
}

// Create publishes a post for the logged-in user.
func (s *PostService) Create(ctx context.Context, p *model.Post) (*model.Post, error) {
	if strings.TrimSpace(p.Author) == "" {
		session, err := s.store.Session().Get(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: author required", model.ErrValidation)
		}
		p.Author = session.Username
	}
	return s.store.Posts().Add(ctx, p)
}

func (s *PostService) Delete(ctx context.Context, id string) error {
	return s.store.Posts().Remove(ctx, id)
}

func (s *PostService) ToggleLike(ctx context.Context, id string) (*model.Post, error) {
	return s.store.Posts().ToggleLike(ctx, id)
}

// Comments returns the post's thread, materializing the starter thread the
// first time a seeded post's comment sheet is opened.
func (s *PostService) Comments(ctx context.Context, postID string) ([]model.Comment, error) {
	p, err := s.store.Posts().Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p.CommentList != nil {
		return p.CommentList, nil
	}
	p, err = s.store.Posts().Update(ctx, postID, func(post *model.Post) error {
		post.CommentList = store.SeedComments(post.Author)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p.CommentList, nil
}

// AddComment appends to the thread and keeps the count in step.
func (s *PostService) AddComment(ctx context.Context, postID, text string) (*model.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: comment text required", model.ErrValidation)
	}
	session, err := s.store.Session().Get(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.Comments(ctx, postID); err != nil {
		return nil, err
	}

	c := model.Comment{
		ID:   store.NewID("comment"),
		User: session.Username,
		Text: text,
		Time: "Just now",
	}
	_, err = s.store.Posts().Update(ctx, postID, func(post *model.Post) error {
		post.CommentList = append(post.CommentList, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// DeleteComment removes a comment by id. Unknown comment ids are a no-op.
func (s *PostService) DeleteComment(ctx context.Context, postID, commentID string) error {
	_, err := s.store.Posts().Update(ctx, postID, func(post *model.Post) error {
		if post.CommentList == nil {
			post.CommentList = []model.Comment{}
			return nil
		}
		kept := post.CommentList[:0]
		for _, c := range post.CommentList {
			if c.ID != commentID {
				kept = append(kept, c)
			}
		}
		post.CommentList = kept
		return nil
	})
	return err
}

// LikeComment bumps a comment's like count.
func (s *PostService) LikeComment(ctx context.Context, postID, commentID string) (*model.Comment, error) {
	var liked *model.Comment
	_, err := s.store.Posts().Update(ctx, postID, func(post *model.Post) error {
		for i := range post.CommentList {
			if post.CommentList[i].ID == commentID {
				post.CommentList[i].Likes++
				c := post.CommentList[i]
				liked = &c
				return nil
			}
		}
		return fmt.Errorf("comment %s: %w", commentID, model.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return liked, nil
}
