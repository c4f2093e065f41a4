package valueobjects

import "fmt"

type TicketStatus string

const (
	StatusOpen       TicketStatus = "open"
	StatusInProgress TicketStatus = "in_progress"
	StatusClosed     TicketStatus = "closed"
	StatusOnHold     TicketStatus = "on_hold"
)

var validTicketStatuses = map[TicketStatus]bool{
	StatusOpen:       true,
	StatusInProgress: true,
	StatusClosed:     true,
	StatusOnHold:     true,
}

// TicketStatuses lists the statuses in the order the UI offers them.
func TicketStatuses() []TicketStatus {
	return []TicketStatus{StatusOpen, StatusInProgress, StatusOnHold, StatusClosed}
}

func (ts TicketStatus) String() string {
	return string(ts)
}

func (ts TicketStatus) IsValid() bool {
	return validTicketStatuses[ts]
}

func (ts TicketStatus) IsClosed() bool {
	return ts == StatusClosed
}

// IsActive reports whether the ticket still needs attention.
func (ts TicketStatus) IsActive() bool {
	return ts == StatusOpen || ts == StatusInProgress
}

func NewTicketStatus(s string) (TicketStatus, error) {
	ts := TicketStatus(s)
	if !ts.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return ts, nil
}
