package ticket

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/autocrm/autocrm/internal/domain/ticket/valueobjects"
)

func newValidTicket(t *testing.T) *Ticket {
	t.Helper()
	tk, err := NewTicket("  Printer jam ", "Tray 2 keeps jamming", vo.StatusOpen, vo.PriorityMedium, vo.TypeSupport, uuid.New())
	require.NoError(t, err)
	return tk
}

func TestNewTicket(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		desc     string
		status   vo.TicketStatus
		priority vo.Priority
		tt       vo.TicketType
		wantErr  string
	}{
		{"valid", "Login fails", "details", vo.StatusOpen, vo.PriorityHigh, vo.TypeBug, ""},
		{"empty description allowed", "Login fails", "", vo.StatusOpen, vo.PriorityHigh, vo.TypeBug, ""},
		{"blank title", "   ", "details", vo.StatusOpen, vo.PriorityHigh, vo.TypeBug, "title is required"},
		{"long title", strings.Repeat("x", 201), "details", vo.StatusOpen, vo.PriorityHigh, vo.TypeBug, "title exceeds"},
		{"bad status", "t", "d", vo.TicketStatus("resolved"), vo.PriorityHigh, vo.TypeBug, "invalid status"},
		{"bad priority", "t", "d", vo.StatusOpen, vo.Priority("p0"), vo.TypeBug, "invalid priority"},
		{"bad type", "t", "d", vo.StatusOpen, vo.PriorityHigh, vo.TicketType("task"), "invalid ticket type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk, err := NewTicket(tt.title, tt.desc, tt.status, tt.priority, tt.tt, uuid.New())
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, tk)
				return
			}
			require.NoError(t, err)
			assert.Zero(t, tk.ID())
			assert.False(t, tk.IsAssigned())
			assert.Empty(t, tk.Tags())
		})
	}
}

func TestNewTicket_TrimsTitle(t *testing.T) {
	tk := newValidTicket(t)
	assert.Equal(t, "Printer jam", tk.Title())
	assert.Equal(t, uuid.Nil, tk.AssigneeID())
}

func TestReconstructTicket_RejectsZeroID(t *testing.T) {
	now := time.Now().UTC()
	_, err := ReconstructTicket(0, "t", "d", vo.StatusOpen, vo.PriorityLow, vo.TypeBug, uuid.Nil, uuid.Nil, nil, now, now)
	assert.Error(t, err)
}

func TestTicket_Mutations(t *testing.T) {
	tk := newValidTicket(t)
	agent := uuid.New()
	queueID := uint(3)

	tk.AssignTo(agent)
	tk.MoveToQueue(&queueID)
	require.NoError(t, tk.ChangeStatus(vo.StatusInProgress))
	require.NoError(t, tk.ChangePriority(vo.PriorityUrgent))
	require.NoError(t, tk.ChangeType(vo.TypeBug))
	require.NoError(t, tk.Edit("Printer jam on floor 2", "tray 2"))

	assert.True(t, tk.IsAssigned())
	assert.Equal(t, agent, tk.AssigneeID())
	assert.Equal(t, &queueID, tk.QueueID())
	assert.Equal(t, vo.StatusInProgress, tk.Status())
	assert.Equal(t, vo.PriorityUrgent, tk.Priority())
	assert.Equal(t, vo.TypeBug, tk.Type())
	assert.Equal(t, "Printer jam on floor 2", tk.Title())

	assert.Error(t, tk.ChangeStatus("done"))
	assert.Error(t, tk.ChangePriority("p1"))
	assert.Error(t, tk.Edit("", "x"))
}

func TestTicket_SetID(t *testing.T) {
	tk := newValidTicket(t)
	require.NoError(t, tk.SetID(9))
	require.NoError(t, tk.SetID(9))
	assert.Error(t, tk.SetID(10))
	assert.Error(t, newValidTicket(t).SetID(0))
}

func TestTicket_TagsAreCopied(t *testing.T) {
	tk := newValidTicket(t)
	tag, err := ReconstructTag(4, "network")
	require.NoError(t, err)
	tk.SetTags([]*Tag{tag})

	tags := tk.Tags()
	tags[0] = nil

	assert.True(t, tk.HasTag(4))
	assert.False(t, tk.HasTag(5))
	assert.NotNil(t, tk.Tags()[0])
}

func TestNewMessage(t *testing.T) {
	msg, err := NewMessage(1, uuid.New(), "Have you tried turning it off?", "")
	require.NoError(t, err)
	assert.Equal(t, vo.MessagePublic, msg.Type())
	assert.False(t, msg.IsAgentOnly())

	msg, err = NewMessage(1, uuid.New(), "customer seems annoyed", vo.MessageAgentOnly)
	require.NoError(t, err)
	assert.True(t, msg.IsAgentOnly())

	_, err = NewMessage(0, uuid.New(), "x", "")
	assert.Error(t, err)
	_, err = NewMessage(1, uuid.New(), "   ", "")
	assert.Error(t, err)
	_, err = NewMessage(1, uuid.New(), "x", "secret")
	assert.Error(t, err)
}

func TestNewTag(t *testing.T) {
	tag, err := NewTag("  vpn ")
	require.NoError(t, err)
	assert.Equal(t, "vpn", tag.Text())

	_, err = NewTag(" ")
	assert.Error(t, err)
	_, err = NewTag(strings.Repeat("t", 51))
	assert.Error(t, err)
}

func TestFile_StoragePath(t *testing.T) {
	f, err := ReconstructFile(1, 7, "report.pdf", "application/pdf",
		"https://proj.example.co/storage/v1/object/public/auto_crm_ticket_files/7/report-20250120t090000.000000000z-ab12cd34.pdf",
		time.Now())
	require.NoError(t, err)

	path, err := f.StoragePath("auto_crm_ticket_files")
	require.NoError(t, err)
	assert.Equal(t, "7/report-20250120t090000.000000000z-ab12cd34.pdf", path)

	_, err = f.StoragePath("other_bucket")
	assert.Error(t, err)
}
