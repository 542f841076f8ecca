package services

import (
	"context"

	"github.com/avatimes/avatimes/internal/model"
	"github.com/avatimes/avatimes/internal/store"
)

// NotificationService manages the inbox.
type NotificationService struct {
	store store.Store
}

func NewNotificationService(s store.Store) *NotificationService {
	return &NotificationService{store: s}
}

func (s *NotificationService) List(ctx context.Context) ([]*model.Notification, error) {
	return s.store.Notifications().List(ctx)
}

// Push adds a new unread notification at the front of the inbox.
func (s *NotificationService) Push(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	n.Unread = true
	return s.store.Notifications().Add(ctx, n)
}

func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	_, err := s.store.Notifications().Update(ctx, id, func(n *model.Notification) error {
		n.Unread = false
		return nil
	})
	return err
}

// MarkAllRead clears the unread flag on every entry.
func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	all, err := s.store.Notifications().List(ctx)
	if err != nil {
		return err
	}
	for _, n := range all {
		if !n.Unread {
			continue
		}
		if _, err := s.store.Notifications().Update(ctx, n.ID, func(n *model.Notification) error {
			n.Unread = false
			return nil
		}); err != nil {
			return err
		}
	}
	return nil
}

// UnreadCount feeds the badge on the bell icon.
func (s *NotificationService) UnreadCount(ctx context.Context) (int, error) {
	all, err := s.store.Notifications().List(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range all {
		if n.Unread {
			count++
		}
	}
	return count, nil
}
