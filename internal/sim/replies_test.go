package sim

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/avatimes/avatimes/internal/blob"
	"github.com/avatimes/avatimes/internal/services"
	"github.com/avatimes/avatimes/internal/store"
)

func setup(t *testing.T, delay time.Duration) (*Replies, *services.ChatService, chan string) {
	t.Helper()
	s := store.New(blob.NewMemoryKV(), zerolog.Nop())
	chat := services.NewChatService(s)
	r := NewReplies(chat, delay, zerolog.Nop())
	delivered := make(chan string, 8)
	r.onDelivered = func(convID string) { delivered <- convID }
	t.Cleanup(r.Stop)
	return r, chat, delivered
}

func waitFor(t *testing.T, ch chan string, want string) {
	t.Helper()
	select {
	case got := <-ch:
		if got != want {
			t.Fatalf("reply in wrong conversation: got %s want %s", got, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no reply delivered")
	}
}

func TestRepliesArriveInDirectChats(t *testing.T) {
	r, chat, delivered := setup(t, 10*time.Millisecond)
	ctx := context.Background()

	conv, err := chat.CreateDirect(ctx, "LunaGlow")
	if err != nil {
		t.Fatalf("CreateDirect: %v", err)
	}
	before := len(conv.Messages)

	if _, err := chat.SendMessage(ctx, conv.ID, "hey!"); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	r.MessageSent(ctx, conv)
	waitFor(t, delivered, conv.ID)

	got, err := chat.Get(ctx, conv.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Messages) != before+2 {
		t.Fatalf("messages: %d", len(got.Messages))
	}
	last := got.Messages[len(got.Messages)-1]
	if last.IsMe || last.Sender != conv.Name {
		t.Fatalf("reply fields: %+v", last)
	}
	if got.Unread != 1 || got.LastMessage != last.Text {
		t.Fatalf("preview after reply: %+v", got)
	}
}

func TestGroupChatsGetNoReplies(t *testing.T) {
	r, chat, delivered := setup(t, 5*time.Millisecond)
	ctx := context.Background()

	g, err := chat.CreateGroup(ctx, "Squad", []string{"a", "b"})
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	if _, err := chat.SendMessage(ctx, g.ID, "anyone here?"); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	r.MessageSent(ctx, g)

	select {
	case <-delivered:
		t.Fatalf("group conversation received a simulated reply")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestNewerSendSupersedesPendingReply(t *testing.T) {
	r, chat, delivered := setup(t, 50*time.Millisecond)
	ctx := context.Background()

	conv, err := chat.CreateDirect(ctx, "LunaGlow")
	if err != nil {
		t.Fatalf("CreateDirect: %v", err)
	}

	if _, err := chat.SendMessage(ctx, conv.ID, "one"); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	r.MessageSent(ctx, conv)
	if _, err := chat.SendMessage(ctx, conv.ID, "two"); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	r.MessageSent(ctx, conv)

	waitFor(t, delivered, conv.ID)
	select {
	case <-delivered:
		t.Fatalf("superseded timer still fired")
	case <-time.After(150 * time.Millisecond):
	}

	got, _ := chat.Get(ctx, conv.ID)
	incoming := 0
	for _, m := range got.Messages {
		if !m.IsMe && m.Sender == conv.Name {
			incoming++
		}
	}
	if incoming != 1 {
		t.Fatalf("incoming replies: %d", incoming)
	}
}

func TestStopCancelsPendingReplies(t *testing.T) {
	r, chat, delivered := setup(t, 30*time.Millisecond)
	ctx := context.Background()

	conv, _ := chat.CreateDirect(ctx, "LunaGlow")
	if _, err := chat.SendMessage(ctx, conv.ID, "hello?"); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	r.MessageSent(ctx, conv)
	r.Stop()

	select {
	case <-delivered:
		t.Fatalf("reply delivered after Stop")
	case <-time.After(120 * time.Millisecond):
	}

	// Stopped simulators ignore further sends.
	r.MessageSent(ctx, conv)
	select {
	case <-delivered:
		t.Fatalf("stopped simulator scheduled a reply")
	case <-time.After(80 * time.Millisecond):
	}

	got, _ := chat.Get(ctx, conv.ID)
	if got.Unread != 0 {
		t.Fatalf("unread after cancelled reply: %d", got.Unread)
	}
}
