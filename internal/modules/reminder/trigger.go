package reminder

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/doodle-journal/core/internal/pkg/push"
	"github.com/doodle-journal/core/internal/store"
)

// Notifier is the outbound side of a fired reminder. Satisfied by
// push.Service; tests substitute a recorder.
type Notifier interface {
	Push(ctx context.Context, n push.Notification) error
}

var _ Notifier = (*push.Service)(nil)

// Trigger fires due reminders: every poll it scans for reminders that are
// still active with a scheduledTime at or before now, raises one
// notification each and flips them inactive. The isActive flag in the
// store, not the loop, is what prevents double-firing, so the server runs
// a single poller.
type Trigger struct {
	reminders store.ReminderStore
	notifier  Notifier
	logger    *zap.Logger
	now       func() time.Time
}

func NewTrigger(st store.Store, notifier Notifier, logger *zap.Logger) *Trigger {
	return &Trigger{
		reminders: st.Reminders(),
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
	}
}

// Poll runs one scan. Errors on individual reminders are logged and do not
// stop the rest of the batch; a reminder that fails to deactivate stays
// active and is retried next interval.
func (t *Trigger) Poll(ctx context.Context) error {
	due, err := t.reminders.ListDue(ctx, t.now().UnixMilli())
	if err != nil {
		return err
	}

	for i := range due {
		r := &due[i]
		notification := push.Notification{
			Title:     r.Title,
			Body:      r.Message,
			DedupeTag: r.ID,
		}
		if err := t.notifier.Push(ctx, notification); err != nil {
			// Delivery is fire-and-forget; still deactivate so the
			// reminder does not nag every interval.
			t.logger.Warn("reminder notification failed",
				zap.String("reminder_id", r.ID), zap.Error(err))
		}
		if err := t.reminders.Deactivate(ctx, r.ID); err != nil {
			t.logger.Error("reminder deactivate failed",
				zap.String("reminder_id", r.ID), zap.Error(err))
			continue
		}
		t.logger.Info("reminder fired",
			zap.String("reminder_id", r.ID),
			zap.Int64("scheduled_time", r.ScheduledTime))
	}
	return nil
}
