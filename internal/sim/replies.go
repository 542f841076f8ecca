// Package sim produces canned replies in direct conversations so the demo
// feels alive without a second user.
package sim

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/avatimes/avatimes/internal/model"
	"github.com/avatimes/avatimes/internal/services"
)

var cannedReplies = []string{
	"That sounds great! 😊",
	"I love it!",
	"Thanks for sharing ❤️",
	"Cool! Tell me more",
	"Awesome 🔥",
	"Can't wait to see!",
	"Nice one! 👍",
}

// Replies schedules one simulated reply per outgoing message in a direct
// conversation. A newer send supersedes the pending reply for the same
// conversation.
type Replies struct {
	chat  *services.ChatService
	log   zerolog.Logger
	delay time.Duration
	rnd   *rand.Rand

	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool

	// onDelivered is a test hook; nil in production.
	onDelivered func(convID string)
}

func NewReplies(chat *services.ChatService, delay time.Duration, log zerolog.Logger) *Replies {
	return &Replies{
		chat:   chat,
		log:    log.With().Str("component", "reply-sim").Logger(),
		delay:  delay,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		timers: make(map[string]*time.Timer),
	}
}

// MessageSent tells the simulator an outgoing message was sent. Replies only
// arrive in direct conversations.
func (r *Replies) MessageSent(ctx context.Context, conv *model.Conversation) {
	if conv == nil || conv.Type != model.ConversationDirect {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return
	}
	if prev, ok := r.timers[conv.ID]; ok {
		prev.Stop()
	}
	id, name := conv.ID, conv.Name
	reply := cannedReplies[r.rnd.Intn(len(cannedReplies))]
	r.timers[id] = time.AfterFunc(r.delay, func() {
		r.deliver(id, name, reply)
	})
}

func (r *Replies) deliver(convID, sender, text string) {
	r.mu.Lock()
	delete(r.timers, convID)
	stopped := r.stopped
	r.mu.Unlock()
	if stopped {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := r.chat.ReceiveMessage(ctx, convID, sender, text); err != nil {
		// The conversation may have been deleted while the timer ran.
		r.log.Warn().Err(err).Str("conversation_id", convID).Msg("simulated reply dropped")
		return
	}

	r.mu.Lock()
	hook := r.onDelivered
	r.mu.Unlock()
	if hook != nil {
		hook(convID)
	}
}

// Stop cancels every pending reply. The simulator cannot be restarted.
func (r *Replies) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopped = true
	for id, t := range r.timers {
		t.Stop()
		delete(r.timers, id)
	}
}
