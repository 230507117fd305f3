package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/doodle-journal/core/internal/modules/export"
	"github.com/doodle-journal/core/internal/modules/reminder"
	pkgcron "github.com/doodle-journal/core/internal/pkg/cron"
)

// registerCronJobs registers all scheduled background jobs.
func (a *App) registerCronJobs(notifier reminder.Notifier) {
	cronLogger := a.logger.Named("CronService")

	trigger := reminder.NewTrigger(a.st, notifier, cronLogger)
	a.sched.Register(pkgcron.Job{
		Name:        "reminder_trigger",
		Description: "檢查到期的提醒並推送通知",
		Interval:    a.cfg.Reminder.PollInterval(),
		RunAtStart:  true,
		Fn:          trigger.Poll,
	})

	if !a.cfg.Backup.Enable {
		return
	}
	if a.db == nil {
		cronLogger.Warn("備份已啟用但記憶體儲存不支援全量備份，跳過")
		return
	}
	uploader, err := export.NewUploader(a.cfg.Backup.S3)
	if err != nil {
		cronLogger.Warn("S3 設定不完整，停用自動備份", zap.Error(err))
		return
	}
	exportSvc := export.NewService(a.st, a.db)
	a.sched.Register(pkgcron.Job{
		Name:        "backup_upload",
		Description: "全量備份資料庫並上傳到 S3",
		Interval:    a.cfg.Backup.Interval(),
		Fn: func(ctx context.Context) error {
			cronLogger.Info("備份資料庫中...")
			buf, err := exportSvc.FullArchive(ctx)
			if err != nil {
				cronLogger.Warn("備份失敗", zap.Error(err))
				return err
			}
			key, err := uploader.Upload(ctx, export.ArchiveFilename(time.Now()), buf.Bytes())
			if err != nil {
				cronLogger.Warn("備份上傳失敗", zap.Error(err))
				return err
			}
			cronLogger.Info("備份上傳成功", zap.String("key", key))
			return nil
		},
	})
}
