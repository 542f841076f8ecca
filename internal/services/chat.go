package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avatimes/avatimes/internal/model"
	"github.com/avatimes/avatimes/internal/store"
)

// ChatService handles direct and group conversations.
type ChatService struct {
	store store.Store
}

func NewChatService(s store.Store) *ChatService { return &ChatService{store: s} }

func (s *ChatService) List(ctx context.Context) ([]*model.Conversation, error) {
	return s.store.Conversations().List(ctx)
}

func (s *ChatService) Get(ctx context.Context, id string) (*model.Conversation, error) {
	return s.store.Conversations().Get(ctx, id)
}

// SendMessage appends an outgoing message and updates the conversation
// preview line.
func (s *ChatService) SendMessage(ctx context.Context, convID, text string) (*model.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: message text required", model.ErrValidation)
	}
	m := model.Message{
		ID:   store.NewID("msg"),
		Text: text,
		Time: clockLabel(time.Now()),
		IsMe: true,
	}
	_, err := s.store.Conversations().Update(ctx, convID, func(c *model.Conversation) error {
		c.Messages = append(c.Messages, m)
		c.LastMessage = "You: " + text
		c.Time = m.Time
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ReceiveMessage appends an incoming message and bumps the unread counter.
// The reply simulator and the seeder both deliver through here so preview,
// time label and unread count always move together.
func (s *ChatService) ReceiveMessage(ctx context.Context, convID, sender, text string) (*model.Message, error) {
	m := model.Message{
		ID:     store.NewID("msg"),
		Sender: sender,
		Text:   text,
		Time:   clockLabel(time.Now()),
	}
	_, err := s.store.Conversations().Update(ctx, convID, func(c *model.Conversation) error {
		c.Messages = append(c.Messages, m)
		c.LastMessage = text
		c.Time = m.Time
		c.Unread++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// MarkRead zeroes the unread counter, e.g. when the thread is opened.
func (s *ChatService) MarkRead(ctx context.Context, convID string) error {
	_, err := s.store.Conversations().Update(ctx, convID, func(c *model.Conversation) error {
		c.Unread = 0
		return nil
	})
	return err
}

// CreateGroup starts a group conversation with the given members.
func (s *ChatService) CreateGroup(ctx context.Context, name string, members []string) (*model.Conversation, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: group name required", model.ErrValidation)
	}
	if len(members) < 2 {
		return nil, fmt.Errorf("%w: a group needs at least two members", model.ErrValidation)
	}
	return s.store.Conversations().Add(ctx, &model.Conversation{
		Type:        model.ConversationGroup,
		Name:        name,
		Members:     members,
		LastMessage: "Group created",
		Time:        clockLabel(time.Now()),
	})
}

// CreateDirect starts (or returns) a one-to-one conversation with a user.
func (s *ChatService) CreateDirect(ctx context.Context, username string) (*model.Conversation, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username required", model.ErrValidation)
	}
	existing, err := s.store.Conversations().List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range existing {
		if c.Type == model.ConversationDirect && strings.EqualFold(c.Name, username) {
			return c, nil
		}
	}
	return s.store.Conversations().Add(ctx, &model.Conversation{
		Type: model.ConversationDirect,
		Name: username,
		Time: clockLabel(time.Now()),
	})
}

// clockLabel renders the short display time messages carry, e.g. "14:05".
func clockLabel(t time.Time) string { return t.Format("15:04") }
