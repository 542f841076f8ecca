// Package storetest holds a compliance suite run against every persistence
// backend the store supports.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/avatimes/avatimes/internal/model"
	"github.com/avatimes/avatimes/internal/store"
)

// Run exercises the store contract against a fresh, isolated store returned
// by makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	// Posts seed on first access and iterate newest-first thereafter.
	seeded, err := s.Posts().List(ctx)
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if len(seeded) == 0 {
		t.Fatalf("ListPosts: expected demo seed on first access")
	}

	p, err := s.Posts().Add(ctx, &model.Post{Author: "ava", Caption: "hi"})
	if err != nil {
		t.Fatalf("AddPost: %v", err)
	}
	if p.ID == "" || p.CreatedAt.IsZero() {
		t.Fatalf("AddPost: missing id or creation time: %+v", p)
	}
	if p.Likes != 0 || p.Liked || p.Comments != 0 {
		t.Fatalf("AddPost: unexpected defaults: %+v", p)
	}
	all, err := s.Posts().List(ctx)
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if len(all) != len(seeded)+1 || all[0].ID != p.ID {
		t.Fatalf("ListPosts: new post not at front (n=%d, head=%s)", len(all), all[0].ID)
	}

	// Get / Update / Remove
	if got, err := s.Posts().Get(ctx, p.ID); err != nil || got.Caption != "hi" {
		t.Fatalf("GetPost: got=%+v err=%v", got, err)
	}
	if _, err := s.Posts().Update(ctx, p.ID, func(post *model.Post) error {
		post.Caption = "hello"
		return nil
	}); err != nil {
		t.Fatalf("UpdatePost: %v", err)
	}
	if got, _ := s.Posts().Get(ctx, p.ID); got.Caption != "hello" {
		t.Fatalf("UpdatePost not persisted: %+v", got)
	}

	// ToggleLike is an involution and clamps at zero.
	liked, err := s.Posts().ToggleLike(ctx, p.ID)
	if err != nil || !liked.Liked || liked.Likes != 1 {
		t.Fatalf("ToggleLike on: got=%+v err=%v", liked, err)
	}
	unliked, err := s.Posts().ToggleLike(ctx, p.ID)
	if err != nil || unliked.Liked || unliked.Likes != 0 {
		t.Fatalf("ToggleLike off: got=%+v err=%v", unliked, err)
	}
	if _, err := s.Posts().ToggleLike(ctx, "post-missing"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("ToggleLike missing: err=%v", err)
	}

	// Author match is case-insensitive on the whole string.
	mine, err := s.Posts().ByAuthor(ctx, "AVA")
	if err != nil || len(mine) != 1 || mine[0].ID != p.ID {
		t.Fatalf("ByAuthor: n=%d err=%v", len(mine), err)
	}

	// Search spans title, caption and author without ranking.
	hits, err := s.Posts().Search(ctx, "ethereal")
	if err != nil || len(hits) != 1 || hits[0].ID != "post-1" {
		t.Fatalf("Search title: n=%d err=%v", len(hits), err)
	}
	hits, err = s.Posts().Search(ctx, "NIGHTKING")
	if err != nil || len(hits) != 1 {
		t.Fatalf("Search author: n=%d err=%v", len(hits), err)
	}

	// Category filter keys off non-empty feature names.
	beards, err := s.Posts().ByCategory(ctx, "beard")
	if err != nil || len(beards) != 1 || beards[0].ID != "post-2" {
		t.Fatalf("ByCategory: n=%d err=%v", len(beards), err)
	}
	everything, err := s.Posts().ByCategory(ctx, "all")
	if err != nil || len(everything) != len(all) {
		t.Fatalf("ByCategory all: n=%d err=%v", len(everything), err)
	}

	// Remove is idempotent; Get after Remove reports not-found.
	if err := s.Posts().Remove(ctx, p.ID); err != nil {
		t.Fatalf("RemovePost: %v", err)
	}
	if _, err := s.Posts().Get(ctx, p.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetPost after remove: err=%v", err)
	}
	if err := s.Posts().Remove(ctx, p.ID); err != nil {
		t.Fatalf("RemovePost twice: %v", err)
	}
	after, _ := s.Posts().List(ctx)
	if len(after) != len(seeded) {
		t.Fatalf("RemovePost altered collection: n=%d", len(after))
	}

	// Reels carry the same like semantics.
	reelSeed, err := s.Reels().List(ctx)
	if err != nil || len(reelSeed) == 0 {
		t.Fatalf("ListReels: n=%d err=%v", len(reelSeed), err)
	}
	r, err := s.Reels().Add(ctx, &model.Reel{Author: "ava", Caption: "clip"})
	if err != nil {
		t.Fatalf("AddReel: %v", err)
	}
	if rl, err := s.Reels().ToggleLike(ctx, r.ID); err != nil || rl.Likes != 1 {
		t.Fatalf("ToggleLike reel: got=%+v err=%v", rl, err)
	}
	if byA, err := s.Reels().ByAuthor(ctx, "Ava"); err != nil || len(byA) != 1 {
		t.Fatalf("ReelsByAuthor: n=%d err=%v", len(byA), err)
	}

	// Stories seed and mark viewed.
	sts, err := s.Stories().List(ctx)
	if err != nil || len(sts) == 0 {
		t.Fatalf("ListStories: n=%d err=%v", len(sts), err)
	}
	viewed, err := s.Stories().MarkViewed(ctx, sts[0].ID)
	if err != nil || !viewed.Viewed {
		t.Fatalf("MarkViewed: got=%+v err=%v", viewed, err)
	}

	// Session is a scalar slot; absence means logged out.
	if _, err := s.Session().Get(ctx); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Session before login: err=%v", err)
	}
	if err := s.Session().Set(ctx, &model.SessionUser{ID: "user-1", Username: "ava"}); err != nil {
		t.Fatalf("SetSession: %v", err)
	}
	if cur, err := s.Session().Get(ctx); err != nil || cur.Username != "ava" {
		t.Fatalf("GetSession: got=%+v err=%v", cur, err)
	}
	if err := s.Session().Clear(ctx); err != nil {
		t.Fatalf("ClearSession: %v", err)
	}
	if _, err := s.Session().Get(ctx); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Session after clear: err=%v", err)
	}

	// Settings default until saved.
	cfg, err := s.Settings().Get(ctx)
	if err != nil || !cfg.Notifications || !cfg.DarkMode || cfg.Language != "en" {
		t.Fatalf("Settings defaults: got=%+v err=%v", cfg, err)
	}
	cfg.Language = "fr"
	if err := s.Settings().Save(ctx, cfg); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	if again, _ := s.Settings().Get(ctx); again.Language != "fr" {
		t.Fatalf("Settings not persisted: %+v", again)
	}

	// Recent searches dedupe case-insensitively, newest first.
	for _, q := range []string{"glow", "kawaii", "GLOW"} {
		if err := s.Searches().Add(ctx, q); err != nil {
			t.Fatalf("AddSearch: %v", err)
		}
	}
	recent, err := s.Searches().List(ctx)
	if err != nil || len(recent) != 2 || recent[0] != "GLOW" || recent[1] != "kawaii" {
		t.Fatalf("RecentSearches: got=%v err=%v", recent, err)
	}
}
