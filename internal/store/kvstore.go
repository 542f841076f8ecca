package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/avatimes/avatimes/internal/blob"
	"github.com/avatimes/avatimes/internal/model"
)

// Blob keys. The names are this implementation's own; only the shape of what
// is stored under them is contractual.
const (
	keyUsers         = "users"
	keySession       = "current_user"
	keyPosts         = "posts"
	keyReels         = "reels"
	keyStories       = "stories"
	keyConversations = "conversations"
	keyNotifications = "notifications"
	keyProfiles      = "profiles"
	keySettings      = "settings"
	keySearches      = "recent_searches"
)

// recentSearchLimit caps the recent-searches list.
const recentSearchLimit = 10

// NewID returns a fresh collision-free record id with the conventional
// kind prefix ("post-", "conv-", ...).
func NewID(kind string) string { return kind + "-" + uuid.New().String() }

// kvStore implements Store over a blob.KV.
type kvStore struct {
	kv     blob.KV
	log    zerolog.Logger
	noSeed bool
}

// Option configures the store.
type Option func(*kvStore)

// WithoutSeedData disables demo seeding; empty collections stay empty.
func WithoutSeedData() Option {
	return func(s *kvStore) { s.noSeed = true }
}

// New constructs the store over the given persistence backend. The store is
// handed to consumers by reference; nothing reads the backend directly.
func New(kv blob.KV, log zerolog.Logger, opts ...Option) Store {
	s := &kvStore{kv: kv, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// seedFn returns fn, or nil when seeding is disabled.
func seedFn[T any](s *kvStore, fn func() []*T) func() []*T {
	if s.noSeed {
		return nil
	}
	return fn
}

func (s *kvStore) Users() Users {
	return &users{c: collection[model.User]{
		kv: s.kv, key: keyUsers, log: s.log,
		id: func(u *model.User) string { return u.ID },
	}}
}

func (s *kvStore) Session() Session { return &session{kv: s.kv, log: s.log} }

func (s *kvStore) Posts() Posts {
	return &posts{c: collection[model.Post]{
		kv: s.kv, key: keyPosts, log: s.log,
		id:   func(p *model.Post) string { return p.ID },
		seed: seedFn(s, seedPosts),
	}}
}

func (s *kvStore) Reels() Reels {
	return &reels{c: collection[model.Reel]{
		kv: s.kv, key: keyReels, log: s.log,
		id:   func(r *model.Reel) string { return r.ID },
		seed: seedFn(s, seedReels),
	}}
}

func (s *kvStore) Stories() Stories {
	return &stories{c: collection[model.Story]{
		kv: s.kv, key: keyStories, log: s.log,
		id:   func(st *model.Story) string { return st.ID },
		seed: seedFn(s, seedStories),
	}}
}

func (s *kvStore) Conversations() Conversations {
	return &conversations{c: collection[model.Conversation]{
		kv: s.kv, key: keyConversations, log: s.log,
		id:   func(cv *model.Conversation) string { return cv.ID },
		seed: seedFn(s, seedConversations),
	}}
}

func (s *kvStore) Notifications() Notifications {
	return &notifications{c: collection[model.Notification]{
		kv: s.kv, key: keyNotifications, log: s.log,
		id:   func(n *model.Notification) string { return n.ID },
		seed: seedFn(s, seedNotifications),
	}}
}

func (s *kvStore) Profiles() Profiles {
	return &profiles{c: collection[model.Profile]{
		kv: s.kv, key: keyProfiles, log: s.log,
		id: func(p *model.Profile) string { return p.Username },
	}}
}

func (s *kvStore) Settings() Settings { return &settings{kv: s.kv, log: s.log} }

func (s *kvStore) Searches() Searches { return &searches{kv: s.kv, log: s.log} }

// --- Users ---

type users struct{ c collection[model.User] }

func (u *users) List(ctx context.Context) ([]*model.User, error) { return u.c.list(ctx) }

func (u *users) Add(ctx context.Context, in *model.User) (*model.User, error) {
	if in.ID == "" {
		in.ID = NewID("user")
	}
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now().UTC()
	}
	return u.c.add(ctx, in)
}

func (u *users) Get(ctx context.Context, id string) (*model.User, error) { return u.c.get(ctx, id) }

func (u *users) ByUsername(ctx context.Context, username string) (*model.User, error) {
	items, err := u.c.list(ctx)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if strings.EqualFold(it.Username, username) {
			return it, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", username, model.ErrNotFound)
}

func (u *users) ByEmail(ctx context.Context, email string) (*model.User, error) {
	items, err := u.c.list(ctx)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if strings.EqualFold(it.Email, email) {
			return it, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", email, model.ErrNotFound)
}

func (u *users) Update(ctx context.Context, id string, fn func(*model.User) error) (*model.User, error) {
	return u.c.update(ctx, id, fn)
}

func (u *users) Remove(ctx context.Context, id string) error { return u.c.remove(ctx, id) }

// --- Session ---

type session struct {
	kv  blob.KV
	log zerolog.Logger
}

func (s *session) Get(ctx context.Context) (*model.SessionUser, error) {
	data, ok, err := s.kv.Get(ctx, keySession)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", keySession, err)
	}
	if !ok {
		return nil, fmt.Errorf("session: %w", model.ErrNotFound)
	}
	var u model.SessionUser
	if err := json.Unmarshal(data, &u); err != nil {
		s.log.Error().
			Str("key", keySession).
			AnErr("cause", err).
			Msgf("%v: treating unreadable session as logged out", model.ErrCorrupted)
		return nil, fmt.Errorf("session: %w", model.ErrNotFound)
	}
	return &u, nil
}

func (s *session) Set(ctx context.Context, u *model.SessionUser) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("save %s: %w", keySession, err)
	}
	return s.kv.Put(ctx, keySession, data)
}

func (s *session) Clear(ctx context.Context) error { return s.kv.Delete(ctx, keySession) }

// --- Posts ---

type posts struct{ c collection[model.Post] }

func (p *posts) List(ctx context.Context) ([]*model.Post, error) { return p.c.list(ctx) }

func (p *posts) Add(ctx context.Context, in *model.Post) (*model.Post, error) {
	if in.ID == "" {
		in.ID = NewID("post")
	}
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now().UTC()
	}
	normalizePost(in)
	return p.c.add(ctx, in)
}

func (p *posts) Get(ctx context.Context, id string) (*model.Post, error) { return p.c.get(ctx, id) }

func (p *posts) Update(ctx context.Context, id string, fn func(*model.Post) error) (*model.Post, error) {
	return p.c.update(ctx, id, func(post *model.Post) error {
		if err := fn(post); err != nil {
			return err
		}
		normalizePost(post)
		return nil
	})
}

func (p *posts) Remove(ctx context.Context, id string) error { return p.c.remove(ctx, id) }

func (p *posts) ByAuthor(ctx context.Context, username string) ([]*model.Post, error) {
	items, err := p.c.list(ctx)
	if err != nil {
		return nil, err
	}
	var out []*model.Post
	for _, it := range items {
		if strings.EqualFold(it.Author, username) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (p *posts) ByCategory(ctx context.Context, category string) ([]*model.Post, error) {
	items, err := p.c.list(ctx)
	if err != nil {
		return nil, err
	}
	if category == "" || category == "all" {
		return items, nil
	}
	var out []*model.Post
	for _, it := range items {
		if f, ok := it.Features[category]; ok && !f.Empty() {
			out = append(out, it)
		}
	}
	return out, nil
}

func (p *posts) Search(ctx context.Context, query string) ([]*model.Post, error) {
	items, err := p.c.list(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	var out []*model.Post
	for _, it := range items {
		if containsFold(it.Title, q) || containsFold(it.Caption, q) || containsFold(it.Author, q) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (p *posts) ToggleLike(ctx context.Context, id string) (*model.Post, error) {
	return p.Update(ctx, id, func(post *model.Post) error {
		post.Liked = !post.Liked
		if post.Liked {
			post.Likes++
		} else if post.Likes > 0 {
			post.Likes--
		}
		return nil
	})
}

// normalizePost is the single authoritative fix-up for derived post state:
// once a comment list is attached the counter tracks it, and likes never go
// negative. Seeded posts carry a bare count with no list; that count stands
// until the thread is materialized.
func normalizePost(p *model.Post) {
	if p.CommentList != nil {
		p.Comments = len(p.CommentList)
	}
	if p.Likes < 0 {
		p.Likes = 0
	}
}

// --- Reels ---

type reels struct{ c collection[model.Reel] }

func (r *reels) List(ctx context.Context) ([]*model.Reel, error) { return r.c.list(ctx) }

func (r *reels) Add(ctx context.Context, in *model.Reel) (*model.Reel, error) {
	if in.ID == "" {
		in.ID = NewID("reel")
	}
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now().UTC()
	}
	if in.Likes < 0 {
		in.Likes = 0
	}
	return r.c.add(ctx, in)
}

func (r *reels) Get(ctx context.Context, id string) (*model.Reel, error) { return r.c.get(ctx, id) }

func (r *reels) Update(ctx context.Context, id string, fn func(*model.Reel) error) (*model.Reel, error) {
	return r.c.update(ctx, id, fn)
}

func (r *reels) Remove(ctx context.Context, id string) error { return r.c.remove(ctx, id) }

func (r *reels) ByAuthor(ctx context.Context, username string) ([]*model.Reel, error) {
	items, err := r.c.list(ctx)
	if err != nil {
		return nil, err
	}
	var out []*model.Reel
	for _, it := range items {
		if strings.EqualFold(it.Author, username) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *reels) Search(ctx context.Context, query string) ([]*model.Reel, error) {
	items, err := r.c.list(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	var out []*model.Reel
	for _, it := range items {
		if containsFold(it.Caption, q) || containsFold(it.Author, q) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *reels) ToggleLike(ctx context.Context, id string) (*model.Reel, error) {
	return r.c.update(ctx, id, func(reel *model.Reel) error {
		reel.Liked = !reel.Liked
		if reel.Liked {
			reel.Likes++
		} else if reel.Likes > 0 {
			reel.Likes--
		}
		return nil
	})
}

// --- Stories ---

type stories struct{ c collection[model.Story] }

func (s *stories) List(ctx context.Context) ([]*model.Story, error) { return s.c.list(ctx) }

func (s *stories) Add(ctx context.Context, in *model.Story) (*model.Story, error) {
	if in.ID == "" {
		in.ID = NewID("story")
	}
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now().UTC()
	}
	return s.c.add(ctx, in)
}

func (s *stories) Get(ctx context.Context, id string) (*model.Story, error) { return s.c.get(ctx, id) }

func (s *stories) MarkViewed(ctx context.Context, id string) (*model.Story, error) {
	return s.c.update(ctx, id, func(st *model.Story) error {
		st.Viewed = true
		return nil
	})
}

func (s *stories) Remove(ctx context.Context, id string) error { return s.c.remove(ctx, id) }

// --- Conversations ---

type conversations struct{ c collection[model.Conversation] }

func (c *conversations) List(ctx context.Context) ([]*model.Conversation, error) {
	return c.c.list(ctx)
}

func (c *conversations) Add(ctx context.Context, in *model.Conversation) (*model.Conversation, error) {
	if in.ID == "" {
		in.ID = NewID("conv")
	}
	if in.Messages == nil {
		in.Messages = []model.Message{}
	}
	return c.c.add(ctx, in)
}

func (c *conversations) Get(ctx context.Context, id string) (*model.Conversation, error) {
	return c.c.get(ctx, id)
}

func (c *conversations) Update(ctx context.Context, id string, fn func(*model.Conversation) error) (*model.Conversation, error) {
	return c.c.update(ctx, id, fn)
}

func (c *conversations) Remove(ctx context.Context, id string) error { return c.c.remove(ctx, id) }

// --- Notifications ---

type notifications struct{ c collection[model.Notification] }

func (n *notifications) List(ctx context.Context) ([]*model.Notification, error) {
	return n.c.list(ctx)
}

func (n *notifications) Add(ctx context.Context, in *model.Notification) (*model.Notification, error) {
	if in.ID == "" {
		in.ID = NewID("notif")
	}
	if in.Time == "" {
		in.Time = "Just now"
	}
	return n.c.add(ctx, in)
}

func (n *notifications) Get(ctx context.Context, id string) (*model.Notification, error) {
	return n.c.get(ctx, id)
}

func (n *notifications) Update(ctx context.Context, id string, fn func(*model.Notification) error) (*model.Notification, error) {
	return n.c.update(ctx, id, fn)
}

func (n *notifications) Remove(ctx context.Context, id string) error { return n.c.remove(ctx, id) }

// --- Profiles ---

type profiles struct{ c collection[model.Profile] }

func (p *profiles) Get(ctx context.Context, username string) (*model.Profile, error) {
	items, err := p.c.list(ctx)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if strings.EqualFold(it.Username, username) {
			return it, nil
		}
	}
	return nil, fmt.Errorf("profile %q: %w", username, model.ErrNotFound)
}

func (p *profiles) Save(ctx context.Context, in *model.Profile) (*model.Profile, error) {
	items, err := p.c.list(ctx)
	if err != nil {
		return nil, err
	}
	for i, it := range items {
		if strings.EqualFold(it.Username, in.Username) {
			items[i] = in
			return in, p.c.save(ctx, items)
		}
	}
	items = append([]*model.Profile{in}, items...)
	return in, p.c.save(ctx, items)
}

// --- Settings ---

type settings struct {
	kv  blob.KV
	log zerolog.Logger
}

func (s *settings) Get(ctx context.Context) (*model.Settings, error) {
	data, ok, err := s.kv.Get(ctx, keySettings)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", keySettings, err)
	}
	if !ok {
		return model.DefaultSettings(), nil
	}
	var out model.Settings
	if err := json.Unmarshal(data, &out); err != nil {
		s.log.Error().
			Str("key", keySettings).
			AnErr("cause", err).
			Msgf("%v: falling back to default settings", model.ErrCorrupted)
		return model.DefaultSettings(), nil
	}
	return &out, nil
}

func (s *settings) Save(ctx context.Context, in *model.Settings) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("save %s: %w", keySettings, err)
	}
	return s.kv.Put(ctx, keySettings, data)
}

// --- Recent searches ---

type searches struct {
	kv  blob.KV
	log zerolog.Logger
}

func (s *searches) List(ctx context.Context) ([]string, error) {
	data, ok, err := s.kv.Get(ctx, keySearches)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", keySearches, err)
	}
	if !ok {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		s.log.Error().
			Str("key", keySearches).
			AnErr("cause", err).
			Msgf("%v: dropping unreadable collection", model.ErrCorrupted)
		return nil, nil
	}
	return out, nil
}

func (s *searches) Add(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	recent, err := s.List(ctx)
	if err != nil {
		return err
	}
	kept := []string{query}
	for _, q := range recent {
		if strings.EqualFold(q, query) {
			continue
		}
		kept = append(kept, q)
		if len(kept) == recentSearchLimit {
			break
		}
	}
	data, err := json.Marshal(kept)
	if err != nil {
		return fmt.Errorf("save %s: %w", keySearches, err)
	}
	return s.kv.Put(ctx, keySearches, data)
}

func (s *searches) Clear(ctx context.Context) error { return s.kv.Delete(ctx, keySearches) }

// containsFold reports whether s contains the already-lowercased substr.
func containsFold(s, lowered string) bool {
	return strings.Contains(strings.ToLower(s), lowered)
}
