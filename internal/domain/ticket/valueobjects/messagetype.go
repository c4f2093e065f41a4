package valueobjects

import "fmt"

// MessageType controls who may read a message on a ticket thread.
type MessageType string

const (
	MessagePublic    MessageType = "public"
	MessageAgentOnly MessageType = "agent_only"
)

func (mt MessageType) String() string {
	return string(mt)
}

func (mt MessageType) IsValid() bool {
	return mt == MessagePublic || mt == MessageAgentOnly
}

func (mt MessageType) IsAgentOnly() bool {
	return mt == MessageAgentOnly
}

// NewMessageType parses s; an empty value means public.
func NewMessageType(s string) (MessageType, error) {
	if s == "" {
		return MessagePublic, nil
	}
	mt := MessageType(s)
	if !mt.IsValid() {
		return "", fmt.Errorf("invalid message type: %s", s)
	}
	return mt, nil
}
