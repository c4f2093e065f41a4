package models

import "time"

// TicketModel maps the tickets table. Creator and assignee hold user ids;
// NULL is read as the unassigned sentinel.
type TicketModel struct {
	ID          uint      `gorm:"primaryKey"`
	Title       string    `gorm:"size:200;not null"`
	Description *string   `gorm:"type:text"`
	Status      *string   `gorm:"size:20;index;default:open"`
	Priority    string    `gorm:"size:20;not null;index"`
	Type        string    `gorm:"column:type;size:20;not null"`
	Creator     *string   `gorm:"size:36;index"`
	Assignee    *string   `gorm:"size:36;index"`
	QueueID     *uint     `gorm:"index"`
	CreatedAt   time.Time `gorm:"autoCreateTime;not null"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime;not null;index"`

	// Foreign keys live in the remote schema only.
}

func (TicketModel) TableName() string {
	return "tickets"
}

// TicketTagModel is one row of the ticket/tag join table.
type TicketTagModel struct {
	ID        uint      `gorm:"primaryKey"`
	TicketID  uint      `gorm:"not null;uniqueIndex:idx_ticket_tag"`
	TagID     uint      `gorm:"not null;uniqueIndex:idx_ticket_tag"`
	CreatedAt time.Time `gorm:"autoCreateTime;not null"`
}

func (TicketTagModel) TableName() string {
	return "ticket_tags"
}
