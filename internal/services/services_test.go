package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/avatimes/avatimes/internal/blob"
	"github.com/avatimes/avatimes/internal/model"
	"github.com/avatimes/avatimes/internal/services"
	"github.com/avatimes/avatimes/internal/store"
)

func newStore(t *testing.T) store.Store {
	t.Helper()
	return store.New(blob.NewMemoryKV(), zerolog.Nop())
}

func login(t *testing.T, s store.Store, username string) {
	t.Helper()
	if err := s.Session().Set(context.Background(), &model.SessionUser{ID: "user-test", Username: username}); err != nil {
		t.Fatalf("SetSession: %v", err)
	}
}

func TestComments_SeedOnFirstOpen(t *testing.T) {
	s := newStore(t)
	svc := services.NewPostService(s)
	ctx := context.Background()

	before, err := s.Posts().Get(ctx, "post-1")
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if before.CommentList != nil {
		t.Fatalf("seed post should not carry a thread yet")
	}

	thread, err := svc.Comments(ctx, "post-1")
	if err != nil {
		t.Fatalf("Comments: %v", err)
	}
	if len(thread) == 0 {
		t.Fatalf("first open should materialize the starter thread")
	}

	// Count now tracks the materialized thread.
	after, _ := s.Posts().Get(ctx, "post-1")
	if after.Comments != len(thread) {
		t.Fatalf("count=%d thread=%d", after.Comments, len(thread))
	}

	// Second open returns the same thread, no re-seed.
	again, err := svc.Comments(ctx, "post-1")
	if err != nil || len(again) != len(thread) {
		t.Fatalf("second open: n=%d err=%v", len(again), err)
	}
}

func TestAddDeleteLikeComment(t *testing.T) {
	s := newStore(t)
	svc := services.NewPostService(s)
	ctx := context.Background()

	// Commenting requires a session.
	if _, err := svc.AddComment(ctx, "post-1", "hi"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("AddComment logged out: err=%v", err)
	}
	login(t, s, "ava")

	if _, err := svc.AddComment(ctx, "post-1", "   "); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("blank comment: err=%v", err)
	}

	c, err := svc.AddComment(ctx, "post-1", "so pretty!")
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if c.User != "ava" || c.Time != "Just now" || !strings.HasPrefix(c.ID, "comment-") {
		t.Fatalf("comment fields: %+v", c)
	}

	thread, _ := svc.Comments(ctx, "post-1")
	p, _ := s.Posts().Get(ctx, "post-1")
	if p.Comments != len(thread) {
		t.Fatalf("count out of step: count=%d thread=%d", p.Comments, len(thread))
	}

	liked, err := svc.LikeComment(ctx, "post-1", c.ID)
	if err != nil || liked.Likes != 1 {
		t.Fatalf("LikeComment: got=%+v err=%v", liked, err)
	}
	if _, err := svc.LikeComment(ctx, "post-1", "comment-missing"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("LikeComment missing: err=%v", err)
	}

	if err := svc.DeleteComment(ctx, "post-1", c.ID); err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}
	// Deleting again is a no-op.
	if err := svc.DeleteComment(ctx, "post-1", c.ID); err != nil {
		t.Fatalf("DeleteComment twice: %v", err)
	}
	p, _ = s.Posts().Get(ctx, "post-1")
	if p.Comments != len(thread)-1 {
		t.Fatalf("count after delete: %d", p.Comments)
	}
}

func TestChat_SendAndReceive(t *testing.T) {
	s := newStore(t)
	svc := services.NewChatService(s)
	ctx := context.Background()

	convs, err := svc.List(ctx)
	if err != nil || len(convs) == 0 {
		t.Fatalf("List: n=%d err=%v", len(convs), err)
	}
	conv := convs[0]

	m, err := svc.SendMessage(ctx, conv.ID, "hey!")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if !m.IsMe {
		t.Fatalf("outgoing message not marked mine: %+v", m)
	}
	got, _ := svc.Get(ctx, conv.ID)
	if got.LastMessage != "You: hey!" || got.Time != m.Time {
		t.Fatalf("preview not updated: %+v", got)
	}
	// Sending does not change unread.
	if got.Unread != conv.Unread {
		t.Fatalf("unread moved on send: %d -> %d", conv.Unread, got.Unread)
	}

	in, err := svc.ReceiveMessage(ctx, conv.ID, conv.Name, "hi back")
	if err != nil {
		t.Fatalf("ReceiveMessage: %v", err)
	}
	if in.IsMe {
		t.Fatalf("incoming message marked mine")
	}
	got, _ = svc.Get(ctx, conv.ID)
	if got.LastMessage != "hi back" || got.Unread != conv.Unread+1 {
		t.Fatalf("incoming not reflected: %+v", got)
	}

	if err := svc.MarkRead(ctx, conv.ID); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	got, _ = svc.Get(ctx, conv.ID)
	if got.Unread != 0 {
		t.Fatalf("unread after MarkRead: %d", got.Unread)
	}

	if _, err := svc.SendMessage(ctx, conv.ID, "  "); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("blank message: err=%v", err)
	}
	if _, err := svc.SendMessage(ctx, "conv-missing", "hello"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("missing conversation: err=%v", err)
	}
}

func TestChat_CreateGroupAndDirect(t *testing.T) {
	s := newStore(t)
	svc := services.NewChatService(s)
	ctx := context.Background()

	if _, err := svc.CreateGroup(ctx, "", []string{"a", "b"}); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("nameless group: err=%v", err)
	}
	if _, err := svc.CreateGroup(ctx, "Squad", []string{"a"}); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("one-member group: err=%v", err)
	}
	g, err := svc.CreateGroup(ctx, "Squad", []string{"AvaQueen", "NightKing"})
	if err != nil || g.Type != model.ConversationGroup {
		t.Fatalf("CreateGroup: got=%+v err=%v", g, err)
	}

	d1, err := svc.CreateDirect(ctx, "LunaGlow")
	if err != nil || d1.Type != model.ConversationDirect {
		t.Fatalf("CreateDirect: got=%+v err=%v", d1, err)
	}
	// Same username returns the existing thread.
	d2, err := svc.CreateDirect(ctx, "lunaglow")
	if err != nil || d2.ID != d1.ID {
		t.Fatalf("CreateDirect dedupe: got=%+v err=%v", d2, err)
	}
}

func TestNotifications(t *testing.T) {
	s := newStore(t)
	svc := services.NewNotificationService(s)
	ctx := context.Background()

	unread, err := svc.UnreadCount(ctx)
	if err != nil {
		t.Fatalf("UnreadCount: %v", err)
	}
	if unread == 0 {
		t.Fatalf("seed inbox should carry unread entries")
	}

	n, err := svc.Push(ctx, &model.Notification{
		Type: model.NotificationLike, User: "NightKing", Text: "liked your post", Time: "Just now",
	})
	if err != nil || !n.Unread {
		t.Fatalf("Push: got=%+v err=%v", n, err)
	}
	all, _ := svc.List(ctx)
	if all[0].ID != n.ID {
		t.Fatalf("pushed notification not at front")
	}

	if err := svc.MarkRead(ctx, n.ID); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	after, _ := svc.UnreadCount(ctx)
	if after != unread {
		t.Fatalf("unread after MarkRead: got %d want %d", after, unread)
	}

	if err := svc.MarkAllRead(ctx); err != nil {
		t.Fatalf("MarkAllRead: %v", err)
	}
	if n, _ := svc.UnreadCount(ctx); n != 0 {
		t.Fatalf("unread after MarkAllRead: %d", n)
	}
}

func TestProfile_DerivedPostCount(t *testing.T) {
	s := newStore(t)
	svc := services.NewProfileService(s)
	ctx := context.Background()

	// Seeded author: posts and reels both count.
	p, err := svc.Get(ctx, "AvaQueen")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.Posts != 2 {
		t.Fatalf("derived count: %d", p.Posts)
	}

	// Unknown usernames still render a blank profile.
	blank, err := svc.Get(ctx, "stranger")
	if err != nil || blank.Posts != 0 || blank.Username != "stranger" {
		t.Fatalf("blank profile: got=%+v err=%v", blank, err)
	}

	updated, err := svc.Update(ctx, "stranger", func(p *model.Profile) {
		p.Bio = "just visiting"
		p.Posts = 99 // stored value must not leak into the derived field
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Bio != "just visiting" || updated.Posts != 0 {
		t.Fatalf("update result: %+v", updated)
	}
}

func TestExplore_SearchAndRecents(t *testing.T) {
	s := newStore(t)
	svc := services.NewExploreService(s)
	ctx := context.Background()

	res, err := svc.Search(ctx, "NightKing")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res.Posts) == 0 || len(res.Users) == 0 {
		t.Fatalf("expected author hits: %+v", res)
	}

	// Blank queries return empty results and are not recorded.
	if res, err := svc.Search(ctx, "   "); err != nil || len(res.Posts) != 0 {
		t.Fatalf("blank query: got=%+v err=%v", res, err)
	}

	recents, err := svc.RecentSearches(ctx)
	if err != nil || len(recents) != 1 || recents[0] != "NightKing" {
		t.Fatalf("recents: got=%v err=%v", recents, err)
	}
	if err := svc.ClearSearches(ctx); err != nil {
		t.Fatalf("ClearSearches: %v", err)
	}
	if recents, _ := svc.RecentSearches(ctx); len(recents) != 0 {
		t.Fatalf("recents after clear: %v", recents)
	}

	cat, err := svc.Browse(ctx, "beard")
	if err != nil || len(cat) != 1 {
		t.Fatalf("Browse: n=%d err=%v", len(cat), err)
	}
}
