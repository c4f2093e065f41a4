package ticket

import (
	"github.com/google/uuid"

	"github.com/autocrm/autocrm/internal/application/crm"
	"github.com/autocrm/autocrm/internal/shared/errors"
)

type CreateTicketRequest struct {
	Title       string   `json:"title" binding:"required,max=200"`
	Description string   `json:"description" binding:"max=10000"`
	Priority    string   `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	Type        string   `json:"type" binding:"omitempty,oneof=bug feature support inquiry"`
	QueueID     *uint    `json:"queue_id,omitempty"`
	TagIDs      []uint   `json:"tag_ids,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

func (r *CreateTicketRequest) ToInput(creatorID uuid.UUID) crm.TicketInput {
	return crm.TicketInput{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Type:        r.Type,
		CreatorID:   creatorID,
		QueueID:     r.QueueID,
	}
}

// UpdateTicketRequest replaces the writable columns; omitted enum fields keep
// their stored value.
type UpdateTicketRequest struct {
	Title       string  `json:"title" binding:"required,max=200"`
	Description string  `json:"description" binding:"max=10000"`
	Status      string  `json:"status" binding:"omitempty,oneof=open in_progress closed on_hold"`
	Priority    string  `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	Type        string  `json:"type" binding:"omitempty,oneof=bug feature support inquiry"`
	AssigneeID  *string `json:"assignee_id,omitempty"`
	QueueID     *uint   `json:"queue_id,omitempty"`
}

// AssignTicketRequest hands a ticket to a user; an empty id unassigns it.
type AssignTicketRequest struct {
	AssigneeID string `json:"assignee_id"`
}

// ParseAssignee returns uuid.Nil for an empty id.
func ParseAssignee(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.NewValidationError("invalid assignee ID")
	}
	return id, nil
}

// UpdateQueueRequest moves a ticket; a null queue_id removes it from any queue.
type UpdateQueueRequest struct {
	QueueID *uint `json:"queue_id"`
}

type UpdatePriorityRequest struct {
	Priority string `json:"priority" binding:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AddMessageRequest struct {
	Text        string `json:"text" binding:"required,max=10000"`
	MessageType string `json:"message_type" binding:"omitempty,oneof=public agent_only"`
}

// AddTagRequest attaches an existing tag by id, or by text creating it first.
type AddTagRequest struct {
	TagID uint   `json:"tag_id"`
	Tag   string `json:"tag" binding:"max=50"`
}

type CreateTagRequest struct {
	Tag string `json:"tag" binding:"required,max=50"`
}
