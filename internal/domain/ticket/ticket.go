package ticket

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	vo "github.com/autocrm/autocrm/internal/domain/ticket/valueobjects"
	"github.com/autocrm/autocrm/internal/shared/biztime"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 10000
)

// Ticket is a support request. A zero creator or assignee id is the
// unassigned sentinel user, never "no value".
type Ticket struct {
	id          uint
	title       string
	description string
	status      vo.TicketStatus
	priority    vo.Priority
	ticketType  vo.TicketType
	creatorID   uuid.UUID
	assigneeID  uuid.UUID
	queueID     *uint
	tags        []*Tag
	createdAt   time.Time
	updatedAt   time.Time
}

func NewTicket(
	title string,
	description string,
	status vo.TicketStatus,
	priority vo.Priority,
	ticketType vo.TicketType,
	creatorID uuid.UUID,
) (*Ticket, error) {
	title = strings.TrimSpace(title)
	if err := validateText(title, description); err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if !ticketType.IsValid() {
		return nil, fmt.Errorf("invalid ticket type")
	}

	now := biztime.NowUTC()
	return &Ticket{
		title:       title,
		description: description,
		status:      status,
		priority:    priority,
		ticketType:  ticketType,
		creatorID:   creatorID,
		tags:        []*Tag{},
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructTicket(
	id uint,
	title string,
	description string,
	status vo.TicketStatus,
	priority vo.Priority,
	ticketType vo.TicketType,
	creatorID uuid.UUID,
	assigneeID uuid.UUID,
	queueID *uint,
	createdAt, updatedAt time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority: %s", priority)
	}
	if !ticketType.IsValid() {
		return nil, fmt.Errorf("invalid ticket type: %s", ticketType)
	}

	return &Ticket{
		id:          id,
		title:       title,
		description: description,
		status:      status,
		priority:    priority,
		ticketType:  ticketType,
		creatorID:   creatorID,
		assigneeID:  assigneeID,
		queueID:     queueID,
		tags:        []*Tag{},
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func validateText(title, description string) error {
	if len(title) == 0 {
		return fmt.Errorf("title is required")
	}
	if len(title) > maxTitleLength {
		return fmt.Errorf("title exceeds maximum length of %d characters", maxTitleLength)
	}
	if len(description) > maxDescriptionLength {
		return fmt.Errorf("description exceeds maximum length of %d characters", maxDescriptionLength)
	}
	return nil
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) Title() string {
	return t.title
}

func (t *Ticket) Description() string {
	return t.description
}

func (t *Ticket) Status() vo.TicketStatus {
	return t.status
}

func (t *Ticket) Priority() vo.Priority {
	return t.priority
}

func (t *Ticket) Type() vo.TicketType {
	return t.ticketType
}

func (t *Ticket) CreatorID() uuid.UUID {
	return t.creatorID
}

func (t *Ticket) AssigneeID() uuid.UUID {
	return t.assigneeID
}

func (t *Ticket) QueueID() *uint {
	return t.queueID
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

// Tags returns a copy of the tags loaded with the ticket.
func (t *Ticket) Tags() []*Tag {
	out := make([]*Tag, len(t.tags))
	copy(out, t.tags)
	return out
}

// SetTags replaces the loaded tag list; it does not touch the join table.
func (t *Ticket) SetTags(tags []*Tag) {
	if tags == nil {
		tags = []*Tag{}
	}
	t.tags = tags
}

func (t *Ticket) HasTag(tagID uint) bool {
	for _, tag := range t.tags {
		if tag.ID() == tagID {
			return true
		}
	}
	return false
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 && t.id != id {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

// SetTimestamps records the instants assigned by the database.
func (t *Ticket) SetTimestamps(createdAt, updatedAt time.Time) {
	t.createdAt = createdAt
	t.updatedAt = updatedAt
}

func (t *Ticket) Edit(title, description string) error {
	title = strings.TrimSpace(title)
	if err := validateText(title, description); err != nil {
		return err
	}
	t.title = title
	t.description = description
	t.touch()
	return nil
}

// AssignTo sets the assignee; uuid.Nil hands the ticket back to the sentinel.
func (t *Ticket) AssignTo(assigneeID uuid.UUID) {
	t.assigneeID = assigneeID
	t.touch()
}

func (t *Ticket) MoveToQueue(queueID *uint) {
	t.queueID = queueID
	t.touch()
}

func (t *Ticket) ChangeStatus(newStatus vo.TicketStatus) error {
	if !newStatus.IsValid() {
		return fmt.Errorf("invalid status: %s", newStatus)
	}
	if t.status == newStatus {
		return nil
	}
	t.status = newStatus
	t.touch()
	return nil
}

func (t *Ticket) ChangePriority(newPriority vo.Priority) error {
	if !newPriority.IsValid() {
		return fmt.Errorf("invalid priority: %s", newPriority)
	}
	if t.priority == newPriority {
		return nil
	}
	t.priority = newPriority
	t.touch()
	return nil
}

func (t *Ticket) ChangeType(newType vo.TicketType) error {
	if !newType.IsValid() {
		return fmt.Errorf("invalid ticket type: %s", newType)
	}
	t.ticketType = newType
	t.touch()
	return nil
}

func (t *Ticket) IsAssigned() bool {
	return t.assigneeID != uuid.Nil
}

func (t *Ticket) touch() {
	t.updatedAt = biztime.NowUTC()
}
