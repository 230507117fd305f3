package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/doodle-journal/core/internal/models"
	"github.com/doodle-journal/core/internal/store"
)

type reminderStore Store

func (s *reminderStore) ListByOwner(ctx context.Context, ownerID string) ([]models.ReminderModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ReminderModel, 0)
	for _, r := range s.reminders {
		if r.OwnerID == ownerID {
			out = append(out, *r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ScheduledTime < out[j].ScheduledTime
	})
	return out, nil
}

func (s *reminderStore) Create(ctx context.Context, ownerID string, in store.ReminderInput) (*models.ReminderModel, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	now := time.Now()
	r := &models.ReminderModel{
		Base:          models.Base{ID: newID(), CreatedAt: now, UpdatedAt: now},
		OwnerID:       ownerID,
		Title:         in.Title,
		Message:       in.Message,
		ScheduledTime: in.ScheduledTime,
		IsActive:      active,
	}

	s.mu.Lock()
	s.reminders[r.ID] = r
	s.mu.Unlock()
	cp := *r
	return &cp, nil
}

func (s *reminderStore) GetByID(ctx context.Context, ownerID, id string) (*models.ReminderModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reminders[id]
	if !ok || r.OwnerID != ownerID {
		return nil, store.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *reminderStore) Update(ctx context.Context, ownerID, id string, patch store.ReminderPatch) (*models.ReminderModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reminders[id]
	if !ok || r.OwnerID != ownerID {
		return nil, store.ErrNotFound
	}

	if patch.Title != nil {
		r.Title = *patch.Title
	}
	if patch.Message != nil {
		r.Message = *patch.Message
	}
	if patch.ScheduledTime != nil {
		r.ScheduledTime = *patch.ScheduledTime
	}
	if patch.IsActive != nil {
		r.IsActive = *patch.IsActive
	}
	r.UpdatedAt = time.Now()
	cp := *r
	return &cp, nil
}

func (s *reminderStore) Delete(ctx context.Context, ownerID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reminders[id]
	if !ok || r.OwnerID != ownerID {
		return store.ErrNotFound
	}
	delete(s.reminders, id)
	return nil
}

func (s *reminderStore) ListDue(ctx context.Context, nowMillis int64) ([]models.ReminderModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ReminderModel, 0)
	for _, r := range s.reminders {
		if r.IsActive && r.ScheduledTime <= nowMillis {
			out = append(out, *r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ScheduledTime < out[j].ScheduledTime
	})
	return out, nil
}

func (s *reminderStore) Deactivate(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reminders[id]
	if !ok {
		return store.ErrNotFound
	}
	r.IsActive = false
	r.UpdatedAt = time.Now()
	return nil
}
