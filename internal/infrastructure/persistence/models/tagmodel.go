package models

import "time"

type TagModel struct {
	ID        uint      `gorm:"primaryKey"`
	Tag       *string   `gorm:"size:50;uniqueIndex"`
	CreatedAt time.Time `gorm:"autoCreateTime;not null"`
}

func (TagModel) TableName() string {
	return "tags"
}
