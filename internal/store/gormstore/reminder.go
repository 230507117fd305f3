package gormstore

import (
	"context"

	"github.com/doodle-journal/core/internal/models"
	"github.com/doodle-journal/core/internal/store"
	"gorm.io/gorm"
)

type reminderStore struct{ db *gorm.DB }

func (s *reminderStore) ListByOwner(ctx context.Context, ownerID string) ([]models.ReminderModel, error) {
	reminders := make([]models.ReminderModel, 0)
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("scheduled_time ASC").
		Find(&reminders).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return reminders, nil
}

func (s *reminderStore) Create(ctx context.Context, ownerID string, in store.ReminderInput) (*models.ReminderModel, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	r := models.ReminderModel{
		OwnerID:       ownerID,
		Title:         in.Title,
		Message:       in.Message,
		ScheduledTime: in.ScheduledTime,
		IsActive:      active,
	}
	if err := s.db.WithContext(ctx).Create(&r).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &r, nil
}

func (s *reminderStore) GetByID(ctx context.Context, ownerID, id string) (*models.ReminderModel, error) {
	var r models.ReminderModel
	err := s.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&r).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return &r, nil
}

func (s *reminderStore) Update(ctx context.Context, ownerID, id string, patch store.ReminderPatch) (*models.ReminderModel, error) {
	r, err := s.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
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

	if err := s.db.WithContext(ctx).Save(r).Error; err != nil {
		return nil, wrapErr(err)
	}
	return r, nil
}

func (s *reminderStore) Delete(ctx context.Context, ownerID, id string) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&models.ReminderModel{})
	if res.Error != nil {
		return wrapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *reminderStore) ListDue(ctx context.Context, nowMillis int64) ([]models.ReminderModel, error) {
	reminders := make([]models.ReminderModel, 0)
	err := s.db.WithContext(ctx).
		Where("is_active = ? AND scheduled_time <= ?", true, nowMillis).
		Order("scheduled_time ASC").
		Find(&reminders).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return reminders, nil
}

func (s *reminderStore) Deactivate(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Model(&models.ReminderModel{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return wrapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.ReminderModel{}).
			Where("id = ?", id).Count(&count).Error; err != nil {
			return wrapErr(err)
		}
		if count == 0 {
			return store.ErrNotFound
		}
		// Already inactive: the transition is one-way and idempotent.
	}
	return nil
}
