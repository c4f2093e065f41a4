package ticket

import (
	"cmp"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	vo "github.com/autocrm/autocrm/internal/domain/ticket/valueobjects"
	"github.com/autocrm/autocrm/internal/shared/errors"
)

// FilterAll matches every value of an enum field.
const FilterAll = "all"

// Filter narrows a ticket list. Enum fields hold a concrete value, "all" or "".
type Filter struct {
	Status   string
	Priority string
	Type     string
	Search   string
}

type SortField string

const (
	SortByCreatedAt   SortField = "created_at"
	SortByUpdatedAt   SortField = "updated_at"
	SortByTitle       SortField = "title"
	SortByDescription SortField = "description"
	SortByStatus      SortField = "status"
	SortByPriority    SortField = "priority"
	SortByType        SortField = "type"
	SortByID          SortField = "id"
)

var validSortFields = map[SortField]bool{
	SortByCreatedAt:   true,
	SortByUpdatedAt:   true,
	SortByTitle:       true,
	SortByDescription: true,
	SortByStatus:      true,
	SortByPriority:    true,
	SortByType:        true,
	SortByID:          true,
}

func (f SortField) IsValid() bool {
	return validSortFields[f]
}

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Sort selects the ordering of a filtered list. String fields are compared
// with the collation rules of Locale.
type Sort struct {
	Field     SortField
	Direction SortDirection
	Locale    language.Tag
}

// DefaultSort puts the most recently touched tickets first.
func DefaultSort() Sort {
	return Sort{Field: SortByUpdatedAt, Direction: SortDesc, Locale: language.English}
}

// FilterTickets returns the tickets matching f, ordered by s. The input slice
// is not modified; ties keep their input order.
func FilterTickets(tickets []*Ticket, f Filter, s Sort) []*Ticket {
	search := strings.ToLower(f.Search)

	out := make([]*Ticket, 0, len(tickets))
	for _, t := range tickets {
		if t == nil {
			continue
		}
		if !matchesEnum(f.Status, t.status.String()) ||
			!matchesEnum(f.Priority, t.priority.String()) ||
			!matchesEnum(f.Type, t.ticketType.String()) {
			continue
		}
		if search != "" && !matchesSearch(t, search) {
			continue
		}
		out = append(out, t)
	}

	slices.SortStableFunc(out, comparator(s))
	return out
}

func isWildcard(v string) bool {
	return v == "" || v == FilterAll
}

func matchesEnum(want, got string) bool {
	return isWildcard(want) || want == got
}

func matchesSearch(t *Ticket, search string) bool {
	if strings.Contains(strings.ToLower(t.title), search) ||
		strings.Contains(strings.ToLower(t.description), search) {
		return true
	}
	for _, tag := range t.tags {
		if strings.Contains(strings.ToLower(tag.Text()), search) {
			return true
		}
	}
	return false
}

func comparator(s Sort) func(a, b *Ticket) int {
	if s.Field == "" {
		s.Field = SortByUpdatedAt
	}
	if s.Direction == "" {
		s.Direction = SortDesc
	}
	// collate.Collator is not safe for concurrent use
	col := collate.New(s.Locale)

	var cmpFn func(a, b *Ticket) int
	switch s.Field {
	case SortByCreatedAt:
		cmpFn = func(a, b *Ticket) int { return compareTime(a.createdAt, b.createdAt) }
	case SortByID:
		cmpFn = func(a, b *Ticket) int { return cmp.Compare(a.id, b.id) }
	case SortByTitle:
		cmpFn = func(a, b *Ticket) int { return col.CompareString(a.title, b.title) }
	case SortByDescription:
		cmpFn = func(a, b *Ticket) int { return col.CompareString(a.description, b.description) }
	case SortByStatus:
		cmpFn = func(a, b *Ticket) int { return col.CompareString(a.status.String(), b.status.String()) }
	case SortByPriority:
		cmpFn = func(a, b *Ticket) int { return col.CompareString(a.priority.String(), b.priority.String()) }
	case SortByType:
		cmpFn = func(a, b *Ticket) int { return col.CompareString(a.ticketType.String(), b.ticketType.String()) }
	default:
		cmpFn = func(a, b *Ticket) int { return compareTime(a.updatedAt, b.updatedAt) }
	}

	if s.Direction == SortDesc {
		return func(a, b *Ticket) int { return -cmpFn(a, b) }
	}
	return cmpFn
}

func compareTime(a, b time.Time) int {
	return a.Compare(b)
}

// ParseFilter reads status, priority, type and search from query values.
func ParseFilter(values url.Values) (Filter, error) {
	f := Filter{
		Status:   strings.TrimSpace(values.Get("status")),
		Priority: strings.TrimSpace(values.Get("priority")),
		Type:     strings.TrimSpace(values.Get("type")),
		Search:   values.Get("search"),
	}

	if !isWildcard(f.Status) {
		if _, err := vo.NewTicketStatus(f.Status); err != nil {
			return Filter{}, errors.NewValidationError("invalid status filter", err.Error())
		}
	}
	if !isWildcard(f.Priority) {
		if _, err := vo.NewPriority(f.Priority); err != nil {
			return Filter{}, errors.NewValidationError("invalid priority filter", err.Error())
		}
	}
	if !isWildcard(f.Type) {
		if _, err := vo.NewTicketType(f.Type); err != nil {
			return Filter{}, errors.NewValidationError("invalid type filter", err.Error())
		}
	}
	return f, nil
}

// ParseSort builds a Sort; empty field or direction fall back to DefaultSort.
func ParseSort(field, direction string, locale language.Tag) (Sort, error) {
	s := DefaultSort()
	s.Locale = locale

	if field != "" {
		sf := SortField(field)
		if !sf.IsValid() {
			return Sort{}, errors.NewValidationError(fmt.Sprintf("unknown sort field: %s", field))
		}
		s.Field = sf
	}

	switch SortDirection(strings.ToLower(direction)) {
	case "":
	case SortAsc:
		s.Direction = SortAsc
	case SortDesc:
		s.Direction = SortDesc
	default:
		return Sort{}, errors.NewValidationError(fmt.Sprintf("unknown sort direction: %s", direction))
	}
	return s, nil
}
