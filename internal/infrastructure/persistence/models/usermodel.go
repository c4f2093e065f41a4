package models

import "time"

// UserModel maps the users table; ID is the auth service's user id.
type UserModel struct {
	ID                string    `gorm:"primaryKey;size:36"`
	Email             *string   `gorm:"size:255;index"`
	FirstName         *string   `gorm:"size:100"`
	LastName          *string   `gorm:"size:100"`
	FriendlyName      *string   `gorm:"size:100"`
	Role              string    `gorm:"size:20;not null;default:customer"`
	ProfilePictureURL *string   `gorm:"column:profile_picture_url;type:text"`
	CreatedAt         time.Time `gorm:"autoCreateTime;not null"`
}

func (UserModel) TableName() string {
	return "users"
}
