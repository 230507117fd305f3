// Package store defines the ownership-scoped persistence contract shared by
// the durable (MySQL) and ephemeral (in-memory) backends. The implementation
// is chosen once at startup and injected; nothing branches on it per call.
package store

import (
	"context"

	"github.com/doodle-journal/core/internal/models"
)

// Store bundles the per-kind record stores over one backend.
type Store interface {
	Users() UserStore
	Posts() PostStore
	Reminders() ReminderStore

	// Ping reports backend reachability, for the liveness endpoint.
	Ping(ctx context.Context) error
}

// UserStore persists registered users.
type UserStore interface {
	Create(ctx context.Context, username, email, passwordHash string) (*models.UserModel, error)
	GetByEmail(ctx context.Context, email string) (*models.UserModel, error)
	GetByID(ctx context.Context, id string) (*models.UserModel, error)
}

// PostInput carries the user-editable fields of a new entry.
// Title and Content are required.
type PostInput struct {
	Title      string
	Content    string
	Mood       string
	Tags       []string
	Category   string
	Images     []string
	AISummary  string
	ColorTheme models.ColorTheme
}

// PostPatch is a partial update; nil fields keep their current value.
type PostPatch struct {
	Title      *string
	Content    *string
	Mood       *string
	Tags       *[]string
	Category   *string
	Images     *[]string
	AISummary  *string
	ColorTheme *models.ColorTheme
}

// PostStore persists journal entries and their embedded comment threads.
// Every operation except the comment ones is scoped to ownerID: a record
// owned by anyone else behaves as if it did not exist.
type PostStore interface {
	// ListByOwner returns the owner's entries, newest createdAt first,
	// comments included. An owner with no entries gets an empty slice.
	ListByOwner(ctx context.Context, ownerID string) ([]models.PostModel, error)
	Create(ctx context.Context, ownerID string, in PostInput) (*models.PostModel, error)
	GetByID(ctx context.Context, ownerID, id string) (*models.PostModel, error)
	// Update merges patch over the existing record and refreshes updatedAt.
	Update(ctx context.Context, ownerID, id string, patch PostPatch) (*models.PostModel, error)
	// Delete removes the entry and cascades its comments.
	Delete(ctx context.Context, ownerID, id string) error

	// AddComment appends to the entry's thread; any authenticated user may
	// comment on any entry they can reference.
	AddComment(ctx context.Context, postID, authorID, authorUsername, content string) (*models.CommentModel, error)
	// DeleteComment enforces the two-party rule: requester must be the
	// comment's author or the entry's owner.
	DeleteComment(ctx context.Context, postID, commentID, requesterID string) error
}

// ReminderInput carries the user-editable fields of a new reminder.
// Title, Message and ScheduledTime (epoch ms) are required.
type ReminderInput struct {
	Title         string
	Message       string
	ScheduledTime int64
	IsActive      *bool
}

// ReminderPatch is a partial update; nil fields keep their current value.
type ReminderPatch struct {
	Title         *string
	Message       *string
	ScheduledTime *int64
	IsActive      *bool
}

// ReminderStore persists reminders. ListDue and Deactivate are the trigger
// loop's system-level view: they span owners and must stay the only path
// that fires a reminder, so the IsActive flag remains the single source of
// truth for whether a notification went out.
type ReminderStore interface {
	// ListByOwner returns the owner's reminders, soonest scheduledTime first.
	ListByOwner(ctx context.Context, ownerID string) ([]models.ReminderModel, error)
	Create(ctx context.Context, ownerID string, in ReminderInput) (*models.ReminderModel, error)
	GetByID(ctx context.Context, ownerID, id string) (*models.ReminderModel, error)
	Update(ctx context.Context, ownerID, id string, patch ReminderPatch) (*models.ReminderModel, error)
	Delete(ctx context.Context, ownerID, id string) error

	// ListDue returns every reminder with IsActive and scheduledTime ≤ now.
	ListDue(ctx context.Context, nowMillis int64) ([]models.ReminderModel, error)
	// Deactivate flips IsActive false. The transition is one-way.
	Deactivate(ctx context.Context, id string) error
}
