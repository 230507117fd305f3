package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodle-journal/core/internal/models"
	"github.com/doodle-journal/core/internal/store"
)

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func TestUserStore_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	users := New().Users()

	u, err := users.Create(ctx, "ayaka", "ayaka@example.com", "hash")
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)

	byEmail, err := users.GetByEmail(ctx, "ayaka@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	byID, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ayaka", byID.Username)

	_, err = users.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUserStore_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	users := New().Users()

	_, err := users.Create(ctx, "a", "dup@example.com", "hash")
	require.NoError(t, err)

	_, err = users.Create(ctx, "b", "dup@example.com", "hash")
	assert.ErrorIs(t, err, store.ErrValidation)
}

func TestPostStore_OwnershipScoping(t *testing.T) {
	ctx := context.Background()
	posts := New().Posts()

	mine, err := posts.Create(ctx, "owner-1", store.PostInput{Title: "t", Content: "c"})
	require.NoError(t, err)

	// A foreign id behaves exactly like a missing one.
	_, err = posts.GetByID(ctx, "owner-2", mine.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = posts.Update(ctx, "owner-2", mine.ID, store.PostPatch{Title: strPtr("x")})
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, posts.Delete(ctx, "owner-2", mine.ID), store.ErrNotFound)

	list, err := posts.ListByOwner(ctx, "owner-2")
	require.NoError(t, err)
	assert.Empty(t, list)

	got, err := posts.GetByID(ctx, "owner-1", mine.ID)
	require.NoError(t, err)
	assert.Equal(t, "t", got.Title)
}

func TestPostStore_CreateDefaults(t *testing.T) {
	ctx := context.Background()
	posts := New().Posts()

	p, err := posts.Create(ctx, "owner", store.PostInput{
		Title:   "day one",
		Content: "wrote some things",
		Tags:    []string{"life", "life", "work"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultColorTheme, p.ColorTheme)
	assert.Equal(t, models.StringSlice{"life", "work"}, p.Tags)
	assert.NotNil(t, p.Comments)
}

func TestPostStore_CreateValidation(t *testing.T) {
	ctx := context.Background()
	posts := New().Posts()

	_, err := posts.Create(ctx, "owner", store.PostInput{Title: " ", Content: "c"})
	assert.ErrorIs(t, err, store.ErrValidation)

	_, err = posts.Create(ctx, "owner", store.PostInput{Title: "t", Content: ""})
	assert.ErrorIs(t, err, store.ErrValidation)

	_, err = posts.Create(ctx, "owner", store.PostInput{Title: "t", Content: "c", ColorTheme: "magenta"})
	assert.ErrorIs(t, err, store.ErrValidation)
}

func TestPostStore_PartialUpdate(t *testing.T) {
	ctx := context.Background()
	posts := New().Posts()

	p, err := posts.Create(ctx, "owner", store.PostInput{
		Title: "before", Content: "body", Mood: "happy",
	})
	require.NoError(t, err)

	updated, err := posts.Update(ctx, "owner", p.ID, store.PostPatch{Title: strPtr("after")})
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, "body", updated.Content)
	assert.Equal(t, "happy", updated.Mood)

	theme := models.ColorTheme("neon")
	_, err = posts.Update(ctx, "owner", p.ID, store.PostPatch{ColorTheme: &theme})
	assert.ErrorIs(t, err, store.ErrValidation)
}

func TestPostStore_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	posts := New().Posts()

	first, err := posts.Create(ctx, "owner", store.PostInput{Title: "first", Content: "c"})
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	second, err := posts.Create(ctx, "owner", store.PostInput{Title: "second", Content: "c"})
	require.NoError(t, err)

	list, err := posts.ListByOwner(ctx, "owner")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestPostStore_Comments(t *testing.T) {
	ctx := context.Background()
	posts := New().Posts()

	p, err := posts.Create(ctx, "owner", store.PostInput{Title: "t", Content: "c"})
	require.NoError(t, err)

	_, err = posts.AddComment(ctx, p.ID, "friend", "friend-name", "   ")
	assert.ErrorIs(t, err, store.ErrValidation)

	cm, err := posts.AddComment(ctx, p.ID, "friend", "friend-name", "nice entry")
	require.NoError(t, err)
	assert.Equal(t, p.ID, cm.PostID)

	got, err := posts.GetByID(ctx, "owner", p.ID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "friend-name", got.Comments[0].AuthorUsername)

	_, err = posts.AddComment(ctx, "missing-post", "friend", "friend-name", "hello")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestPostStore_DeleteComment_TwoPartyRule(t *testing.T) {
	ctx := context.Background()
	posts := New().Posts()

	p, err := posts.Create(ctx, "owner", store.PostInput{Title: "t", Content: "c"})
	require.NoError(t, err)

	byAuthor, err := posts.AddComment(ctx, p.ID, "friend", "friend-name", "one")
	require.NoError(t, err)
	byOwnerTurn, err := posts.AddComment(ctx, p.ID, "friend", "friend-name", "two")
	require.NoError(t, err)

	// An unrelated third user can do neither.
	err = posts.DeleteComment(ctx, p.ID, byAuthor.ID, "stranger")
	assert.ErrorIs(t, err, store.ErrForbidden)

	// The author deletes their own comment.
	require.NoError(t, posts.DeleteComment(ctx, p.ID, byAuthor.ID, "friend"))

	// The entry owner deletes anyone's comment.
	require.NoError(t, posts.DeleteComment(ctx, p.ID, byOwnerTurn.ID, "owner"))

	// Gone means gone.
	err = posts.DeleteComment(ctx, p.ID, byAuthor.ID, "friend")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestPostStore_ReturnedCopiesAreDetached(t *testing.T) {
	ctx := context.Background()
	posts := New().Posts()

	p, err := posts.Create(ctx, "owner", store.PostInput{
		Title: "t", Content: "c", Tags: []string{"a"},
	})
	require.NoError(t, err)

	p.Title = "mutated"
	p.Tags[0] = "mutated"

	got, err := posts.GetByID(ctx, "owner", p.ID)
	require.NoError(t, err)
	assert.Equal(t, "t", got.Title)
	assert.Equal(t, models.StringSlice{"a"}, got.Tags)
}

func TestReminderStore_CRUD(t *testing.T) {
	ctx := context.Background()
	reminders := New().Reminders()

	_, err := reminders.Create(ctx, "owner", store.ReminderInput{Title: "t", Message: "m"})
	assert.ErrorIs(t, err, store.ErrValidation)

	r, err := reminders.Create(ctx, "owner", store.ReminderInput{
		Title: "walk", Message: "go outside", ScheduledTime: 1000,
	})
	require.NoError(t, err)
	assert.True(t, r.IsActive)

	inactive, err := reminders.Create(ctx, "owner", store.ReminderInput{
		Title: "nap", Message: "rest", ScheduledTime: 500, IsActive: boolPtr(false),
	})
	require.NoError(t, err)
	assert.False(t, inactive.IsActive)

	list, err := reminders.ListByOwner(ctx, "owner")
	require.NoError(t, err)
	require.Len(t, list, 2)
	// Soonest scheduledTime first.
	assert.Equal(t, inactive.ID, list[0].ID)

	updated, err := reminders.Update(ctx, "owner", r.ID, store.ReminderPatch{Message: strPtr("stretch too")})
	require.NoError(t, err)
	assert.Equal(t, "stretch too", updated.Message)
	assert.Equal(t, "walk", updated.Title)

	_, err = reminders.GetByID(ctx, "someone-else", r.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, reminders.Delete(ctx, "owner", r.ID))
	assert.ErrorIs(t, reminders.Delete(ctx, "owner", r.ID), store.ErrNotFound)
}

func TestReminderStore_ListDueAndDeactivate(t *testing.T) {
	ctx := context.Background()
	reminders := New().Reminders()

	due, err := reminders.Create(ctx, "owner", store.ReminderInput{
		Title: "due", Message: "m", ScheduledTime: 100,
	})
	require.NoError(t, err)
	_, err = reminders.Create(ctx, "owner", store.ReminderInput{
		Title: "future", Message: "m", ScheduledTime: 10_000,
	})
	require.NoError(t, err)
	_, err = reminders.Create(ctx, "owner", store.ReminderInput{
		Title: "fired already", Message: "m", ScheduledTime: 50, IsActive: boolPtr(false),
	})
	require.NoError(t, err)

	batch, err := reminders.ListDue(ctx, 5000)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, due.ID, batch[0].ID)

	require.NoError(t, reminders.Deactivate(ctx, due.ID))

	batch, err = reminders.ListDue(ctx, 5000)
	require.NoError(t, err)
	assert.Empty(t, batch)

	err = reminders.Deactivate(ctx, "missing")
	assert.True(t, errors.Is(err, store.ErrNotFound))
}
