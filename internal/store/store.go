package store

import (
	"context"

	"github.com/avatimes/avatimes/internal/model"
)

// Store exposes the persistence operations every page controller depends on.
// Collections iterate newest-first; absence is reported as model.ErrNotFound,
// never as a panic or an empty-value surprise.
type Store interface {
	Users() Users
	Session() Session
	Posts() Posts
	Reels() Reels
	Stories() Stories
	Conversations() Conversations
	Notifications() Notifications
	Profiles() Profiles
	Settings() Settings
	Searches() Searches
}

type Users interface {
	List(ctx context.Context) ([]*model.User, error)
	Add(ctx context.Context, u *model.User) (*model.User, error)
	Get(ctx context.Context, id string) (*model.User, error)
	// ByUsername and ByEmail match case-insensitively.
	ByUsername(ctx context.Context, username string) (*model.User, error)
	ByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, id string, fn func(*model.User) error) (*model.User, error)
	Remove(ctx context.Context, id string) error
}

// Session is the single scalar slot holding the logged-in user. Get returns
// model.ErrNotFound when logged out.
type Session interface {
	Get(ctx context.Context) (*model.SessionUser, error)
	Set(ctx context.Context, u *model.SessionUser) error
	Clear(ctx context.Context) error
}

type Posts interface {
	List(ctx context.Context) ([]*model.Post, error)
	Add(ctx context.Context, p *model.Post) (*model.Post, error)
	Get(ctx context.Context, id string) (*model.Post, error)
	Update(ctx context.Context, id string, fn func(*model.Post) error) (*model.Post, error)
	// Remove is idempotent: deleting an unknown id succeeds.
	Remove(ctx context.Context, id string) error
	ByAuthor(ctx context.Context, username string) ([]*model.Post, error)
	ByCategory(ctx context.Context, category string) ([]*model.Post, error)
	Search(ctx context.Context, query string) ([]*model.Post, error)
	ToggleLike(ctx context.Context, id string) (*model.Post, error)
}

type Reels interface {
	List(ctx context.Context) ([]*model.Reel, error)
	Add(ctx context.Context, r *model.Reel) (*model.Reel, error)
	Get(ctx context.Context, id string) (*model.Reel, error)
	Update(ctx context.Context, id string, fn func(*model.Reel) error) (*model.Reel, error)
	Remove(ctx context.Context, id string) error
	ByAuthor(ctx context.Context, username string) ([]*model.Reel, error)
	Search(ctx context.Context, query string) ([]*model.Reel, error)
	ToggleLike(ctx context.Context, id string) (*model.Reel, error)
}

type Stories interface {
	List(ctx context.Context) ([]*model.Story, error)
	Add(ctx context.Context, s *model.Story) (*model.Story, error)
	Get(ctx context.Context, id string) (*model.Story, error)
	MarkViewed(ctx context.Context, id string) (*model.Story, error)
	Remove(ctx context.Context, id string) error
}

type Conversations interface {
	List(ctx context.Context) ([]*model.Conversation, error)
	Add(ctx context.Context, c *model.Conversation) (*model.Conversation, error)
	Get(ctx context.Context, id string) (*model.Conversation, error)
	Update(ctx context.Context, id string, fn func(*model.Conversation) error) (*model.Conversation, error)
	Remove(ctx context.Context, id string) error
}

type Notifications interface {
	List(ctx context.Context) ([]*model.Notification, error)
	Add(ctx context.Context, n *model.Notification) (*model.Notification, error)
	Get(ctx context.Context, id string) (*model.Notification, error)
	Update(ctx context.Context, id string, fn func(*model.Notification) error) (*model.Notification, error)
	Remove(ctx context.Context, id string) error
}

// Profiles are keyed by username (case-insensitive).
type Profiles interface {
	Get(ctx context.Context, username string) (*model.Profile, error)
	Save(ctx context.Context, p *model.Profile) (*model.Profile, error)
}

type Settings interface {
	Get(ctx context.Context) (*model.Settings, error)
	Save(ctx context.Context, s *model.Settings) error
}

// Searches records recent search queries, most recent first.
type Searches interface {
	List(ctx context.Context) ([]string, error)
	Add(ctx context.Context, query string) error
	Clear(ctx context.Context) error
}
