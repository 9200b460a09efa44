package memory

import (
	"context"
	"sort"
	"sync"

	"pet-care-log/internal/domain/notifications"
)

type notificationRepo struct {
	mu     sync.RWMutex
	byUser map[string][]notifications.Setting
}

func NewNotificationRepo() notifications.Repository {
	return &notificationRepo{
		byUser: make(map[string][]notifications.Setting),
	}
}

func (r *notificationRepo) ListByUser(ctx context.Context, userID string) ([]notifications.Setting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]notifications.Setting, 0, len(r.byUser[userID]))
	for _, s := range r.byUser[userID] {
		out = append(out, cloneSetting(s))
	}
	return out, nil
}

func (r *notificationRepo) ReplaceForUser(ctx context.Context, userID string, settings []notifications.Setting) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(settings) == 0 {
		delete(r.byUser, userID)
		return nil
	}
	items := make([]notifications.Setting, 0, len(settings))
	for _, s := range settings {
		s.UserID = userID
		items = append(items, cloneSetting(s))
	}
	r.byUser[userID] = items
	return nil
}

func (r *notificationRepo) ListEnabled(ctx context.Context) ([]notifications.Setting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userIDs := make([]string, 0, len(r.byUser))
	for id := range r.byUser {
		userIDs = append(userIDs, id)
	}
	sort.Strings(userIDs)

	out := make([]notifications.Setting, 0)
	for _, id := range userIDs {
		for _, s := range r.byUser[id] {
			if s.Enabled {
				out = append(out, cloneSetting(s))
			}
		}
	}
	return out, nil
}

func cloneSetting(s notifications.Setting) notifications.Setting {
	s.Times = append([]string(nil), s.Times...)
	return s
}
