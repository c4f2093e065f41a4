package ticket

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	vo "github.com/autocrm/autocrm/internal/domain/ticket/valueobjects"
	"github.com/autocrm/autocrm/internal/shared/biztime"
)

const maxMessageLength = 10000

// Message is one entry in a ticket thread.
type Message struct {
	id          uint
	ticketID    uint
	text        string
	senderID    uuid.UUID
	messageType vo.MessageType
	createdAt   time.Time
}

func NewMessage(ticketID uint, senderID uuid.UUID, text string, messageType vo.MessageType) (*Message, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("message text cannot be empty")
	}
	if len(text) > maxMessageLength {
		return nil, fmt.Errorf("message exceeds maximum length of %d characters", maxMessageLength)
	}
	if messageType == "" {
		messageType = vo.MessagePublic
	}
	if !messageType.IsValid() {
		return nil, fmt.Errorf("invalid message type: %s", messageType)
	}

	return &Message{
		ticketID:    ticketID,
		text:        text,
		senderID:    senderID,
		messageType: messageType,
		createdAt:   biztime.NowUTC(),
	}, nil
}

func ReconstructMessage(
	id uint,
	ticketID uint,
	text string,
	senderID uuid.UUID,
	messageType vo.MessageType,
	createdAt time.Time,
) (*Message, error) {
	if id == 0 {
		return nil, fmt.Errorf("message ID cannot be zero")
	}
	if !messageType.IsValid() {
		return nil, fmt.Errorf("invalid message type: %s", messageType)
	}
	return &Message{
		id:          id,
		ticketID:    ticketID,
		text:        text,
		senderID:    senderID,
		messageType: messageType,
		createdAt:   createdAt,
	}, nil
}

func (m *Message) ID() uint {
	return m.id
}

func (m *Message) TicketID() uint {
	return m.ticketID
}

func (m *Message) Text() string {
	return m.text
}

func (m *Message) SenderID() uuid.UUID {
	return m.senderID
}

func (m *Message) Type() vo.MessageType {
	return m.messageType
}

func (m *Message) CreatedAt() time.Time {
	return m.createdAt
}

func (m *Message) IsAgentOnly() bool {
	return m.messageType.IsAgentOnly()
}

func (m *Message) SetID(id uint) error {
	if m.id != 0 && m.id != id {
		return fmt.Errorf("message ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("message ID cannot be zero")
	}
	m.id = id
	return nil
}

func (m *Message) SetCreatedAt(createdAt time.Time) {
	m.createdAt = createdAt
}
