package models

import "time"

type QueueModel struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"size:100;not null;uniqueIndex"`
	Description *string   `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime;not null"`
}

func (QueueModel) TableName() string {
	return "queues"
}

// UserQueueModel is keyed by (user_id, queue_id).
type UserQueueModel struct {
	UserID    string    `gorm:"primaryKey;size:36"`
	QueueID   uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime;not null"`
}

func (UserQueueModel) TableName() string {
	return "user_queues"
}
