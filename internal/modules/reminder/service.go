package reminder

import (
	"context"

	"github.com/doodle-journal/core/internal/models"
	"github.com/doodle-journal/core/internal/store"
)

// Service implements reminder CRUD over the reminder store.
type Service struct {
	reminders store.ReminderStore
}

func NewService(st store.Store) *Service {
	return &Service{reminders: st.Reminders()}
}

func (s *Service) List(ctx context.Context, ownerID string) ([]models.ReminderModel, error) {
	return s.reminders.ListByOwner(ctx, ownerID)
}

func (s *Service) Create(ctx context.Context, ownerID string, dto *CreateReminderDTO) (*models.ReminderModel, error) {
	return s.reminders.Create(ctx, ownerID, dto.toInput())
}

func (s *Service) Update(ctx context.Context, ownerID, id string, dto *UpdateReminderDTO) (*models.ReminderModel, error) {
	return s.reminders.Update(ctx, ownerID, id, dto.toPatch())
}

func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	return s.reminders.Delete(ctx, ownerID, id)
}
