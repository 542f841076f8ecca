package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/avatimes/avatimes/internal/blob"
	"github.com/avatimes/avatimes/internal/model"
	"github.com/avatimes/avatimes/internal/store"
	"github.com/avatimes/avatimes/internal/store/storetest"
)

func newMemoryStore(t *testing.T) store.Store {
	t.Helper()
	return store.New(blob.NewMemoryKV(), zerolog.Nop())
}

func newSqliteStore(t *testing.T) store.Store {
	t.Helper()
	kv, err := blob.OpenSqlite(filepath.Join(t.TempDir(), "avatimes.db"))
	if err != nil {
		t.Fatalf("OpenSqlite: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	return store.New(kv, zerolog.Nop())
}

func TestStoreContract_Memory(t *testing.T) {
	storetest.Run(t, newMemoryStore)
}

func TestStoreContract_Sqlite(t *testing.T) {
	storetest.Run(t, newSqliteStore)
}

func TestUsers_CaseInsensitiveLookup(t *testing.T) {
	s := newMemoryStore(t)
	ctx := context.Background()

	u, err := s.Users().Add(ctx, &model.User{Username: "Ava", Email: "ava@example.com", PasswordHash: "x"})
	if err != nil {
		t.Fatalf("AddUser: %v", err)
	}
	if u.ID == "" {
		t.Fatalf("AddUser: missing id")
	}

	byName, err := s.Users().ByUsername(ctx, "aVa")
	if err != nil || byName.ID != u.ID {
		t.Fatalf("ByUsername: got=%+v err=%v", byName, err)
	}
	byMail, err := s.Users().ByEmail(ctx, "AVA@EXAMPLE.COM")
	if err != nil || byMail.ID != u.ID {
		t.Fatalf("ByEmail: got=%+v err=%v", byMail, err)
	}
	if _, err := s.Users().ByUsername(ctx, "nobody"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("ByUsername missing: err=%v", err)
	}
}

func TestPosts_CommentCountTracksThread(t *testing.T) {
	s := newMemoryStore(t)
	ctx := context.Background()

	// Seeded bare counts stand until the thread is materialized.
	seeded, err := s.Posts().Get(ctx, "post-1")
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if seeded.Comments == 0 {
		t.Fatalf("seed post should carry a comment count: %+v", seeded)
	}

	updated, err := s.Posts().Update(ctx, "post-1", func(p *model.Post) error {
		p.CommentList = []model.Comment{{ID: "comment-a", User: "ava", Text: "nice"}}
		return nil
	})
	if err != nil {
		t.Fatalf("UpdatePost: %v", err)
	}
	if updated.Comments != 1 {
		t.Fatalf("comment count not recomputed: %+v", updated)
	}

	emptied, err := s.Posts().Update(ctx, "post-1", func(p *model.Post) error {
		p.CommentList = []model.Comment{}
		return nil
	})
	if err != nil || emptied.Comments != 0 {
		t.Fatalf("empty thread should zero the count: got=%+v err=%v", emptied, err)
	}
}

func TestStore_CorruptBlobCoercedToEmpty(t *testing.T) {
	kv := blob.NewMemoryKV()
	ctx := context.Background()
	if err := kv.Put(ctx, "users", []byte("{not json")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	s := store.New(kv, zerolog.Nop())

	users, err := s.Users().List(ctx)
	if err != nil {
		t.Fatalf("List over corrupt blob: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("corrupt blob should read as empty, got %d", len(users))
	}

	// The slot is usable again after the next write.
	if _, err := s.Users().Add(ctx, &model.User{Username: "ava", Email: "a@b.c", PasswordHash: "x"}); err != nil {
		t.Fatalf("Add after corruption: %v", err)
	}
	again, _ := s.Users().List(ctx)
	if len(again) != 1 {
		t.Fatalf("store did not recover: %d", len(again))
	}
}

func TestConversations_AddAndGet(t *testing.T) {
	s := newMemoryStore(t)
	ctx := context.Background()

	seeded, err := s.Conversations().List(ctx)
	if err != nil || len(seeded) == 0 {
		t.Fatalf("ListConversations: n=%d err=%v", len(seeded), err)
	}

	c, err := s.Conversations().Add(ctx, &model.Conversation{
		Type: model.ConversationDirect,
		Name: "LunaGlow",
	})
	if err != nil {
		t.Fatalf("AddConversation: %v", err)
	}
	if c.Messages == nil {
		t.Fatalf("AddConversation: messages slice must not be nil")
	}
	got, err := s.Conversations().Get(ctx, c.ID)
	if err != nil || got.Name != "LunaGlow" {
		t.Fatalf("GetConversation: got=%+v err=%v", got, err)
	}
}
