package models

import "time"

type MessageModel struct {
	ID          uint       `gorm:"primaryKey"`
	TicketID    *uint      `gorm:"index"`
	Text        *string    `gorm:"type:text"`
	SenderID    *string    `gorm:"size:36;index"`
	MessageType *string    `gorm:"size:20;default:public"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;not null;index"`
	UpdatedAt   *time.Time
}

func (MessageModel) TableName() string {
	return "messages"
}
