package models

// UserModel represents a registered journal owner.
type UserModel struct {
	Base
	Username string `json:"username" gorm:"not null"`
	Email    string `json:"email"    gorm:"uniqueIndex;not null"`
	Password string `json:"-"        gorm:"not null"`
}

func (UserModel) TableName() string { return "users" }
