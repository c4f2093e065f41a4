package valueobjects

import "fmt"

type TicketType string

const (
	TypeBug     TicketType = "bug"
	TypeFeature TicketType = "feature"
	TypeSupport TicketType = "support"
	TypeInquiry TicketType = "inquiry"
)

var validTicketTypes = map[TicketType]bool{
	TypeBug:     true,
	TypeFeature: true,
	TypeSupport: true,
	TypeInquiry: true,
}

func TicketTypes() []TicketType {
	return []TicketType{TypeBug, TypeFeature, TypeSupport, TypeInquiry}
}

func (tt TicketType) String() string {
	return string(tt)
}

func (tt TicketType) IsValid() bool {
	return validTicketTypes[tt]
}

func NewTicketType(s string) (TicketType, error) {
	tt := TicketType(s)
	if !tt.IsValid() {
		return "", fmt.Errorf("invalid ticket type: %s", s)
	}
	return tt, nil
}
