package ticket

import (
	"fmt"
	"strings"
)

const maxTagLength = 50

// Tag is a free-text label that can be attached to many tickets.
type Tag struct {
	id   uint
	text string
}

func NewTag(text string) (*Tag, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("tag cannot be empty")
	}
	if len(text) > maxTagLength {
		return nil, fmt.Errorf("tag exceeds maximum length of %d characters", maxTagLength)
	}
	return &Tag{text: text}, nil
}

func ReconstructTag(id uint, text string) (*Tag, error) {
	if id == 0 {
		return nil, fmt.Errorf("tag ID cannot be zero")
	}
	return &Tag{id: id, text: text}, nil
}

func (t *Tag) ID() uint {
	return t.id
}

func (t *Tag) Text() string {
	return t.text
}

func (t *Tag) SetID(id uint) error {
	if t.id != 0 && t.id != id {
		return fmt.Errorf("tag ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("tag ID cannot be zero")
	}
	t.id = id
	return nil
}

// TicketTag is one row of the ticket/tag join table.
type TicketTag struct {
	TicketID uint
	TagID    uint
}
