package models

// ReminderModel is a user-scheduled notification. ScheduledTime is an epoch
// instant in milliseconds, matching the wire format of the original clients.
// IsActive flips true→false exactly once when the reminder fires; the
// transition is never reversed.
type ReminderModel struct {
	Base
	OwnerID       string `json:"userId"        gorm:"index;not null"`
	Title         string `json:"title"         gorm:"not null"`
	Message       string `json:"message"       gorm:"type:text;not null"`
	ScheduledTime int64  `json:"scheduledTime" gorm:"not null;index"`
	IsActive      bool   `json:"isActive"      gorm:"default:true;index"`
}

func (ReminderModel) TableName() string { return "reminders" }
