package models

import "time"

type TicketFileModel struct {
	ID        uint      `gorm:"primaryKey"`
	TicketID  *uint     `gorm:"index"`
	FileName  *string   `gorm:"type:text"`
	FileType  *string   `gorm:"size:255"`
	FileURL   *string   `gorm:"column:file_url;type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime;not null"`
}

func (TicketFileModel) TableName() string {
	return "ticket_files"
}
