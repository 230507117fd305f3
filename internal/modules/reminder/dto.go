package reminder

import (
	"github.com/doodle-journal/core/internal/models"
	"github.com/doodle-journal/core/internal/store"
)

// CreateReminderDTO is the request body for POST /reminders.
// ScheduledTime is an epoch-millisecond instant.
type CreateReminderDTO struct {
	Title         string `json:"title"         binding:"required"`
	Message       string `json:"message"       binding:"required"`
	ScheduledTime int64  `json:"scheduledTime" binding:"required"`
	IsActive      *bool  `json:"isActive"`
}

// UpdateReminderDTO is a partial update; absent fields keep their value.
type UpdateReminderDTO struct {
	Title         *string `json:"title"`
	Message       *string `json:"message"`
	ScheduledTime *int64  `json:"scheduledTime"`
	IsActive      *bool   `json:"isActive"`
}

type reminderResponse struct {
	ID            string `json:"id"`
	UserID        string `json:"userId"`
	Title         string `json:"title"`
	Message       string `json:"message"`
	ScheduledTime int64  `json:"scheduledTime"`
	IsActive      bool   `json:"isActive"`
	CreatedAt     int64  `json:"createdAt"`
}

func (dto *CreateReminderDTO) toInput() store.ReminderInput {
	return store.ReminderInput{
		Title:         dto.Title,
		Message:       dto.Message,
		ScheduledTime: dto.ScheduledTime,
		IsActive:      dto.IsActive,
	}
}

func (dto *UpdateReminderDTO) toPatch() store.ReminderPatch {
	return store.ReminderPatch{
		Title:         dto.Title,
		Message:       dto.Message,
		ScheduledTime: dto.ScheduledTime,
		IsActive:      dto.IsActive,
	}
}

func toResponse(r *models.ReminderModel) reminderResponse {
	return reminderResponse{
		ID:            r.ID,
		UserID:        r.OwnerID,
		Title:         r.Title,
		Message:       r.Message,
		ScheduledTime: r.ScheduledTime,
		IsActive:      r.IsActive,
		CreatedAt:     r.CreatedAt.UnixMilli(),
	}
}

func toResponses(reminders []models.ReminderModel) []reminderResponse {
	items := make([]reminderResponse, len(reminders))
	for i := range reminders {
		items[i] = toResponse(&reminders[i])
	}
	return items
}
