package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTicketStatus(t *testing.T) {
	for _, s := range []string{"open", "in_progress", "closed", "on_hold"} {
		t.Run(s, func(t *testing.T) {
			st, err := NewTicketStatus(s)
			require.NoError(t, err)
			assert.Equal(t, s, st.String())
		})
	}

	_, err := NewTicketStatus("resolved")
	assert.Error(t, err)
	_, err = NewTicketStatus("")
	assert.Error(t, err)
	assert.Len(t, TicketStatuses(), 4)
}

func TestTicketStatus_IsActive(t *testing.T) {
	assert.True(t, StatusOpen.IsActive())
	assert.True(t, StatusInProgress.IsActive())
	assert.False(t, StatusOnHold.IsActive())
	assert.False(t, StatusClosed.IsActive())
	assert.True(t, StatusClosed.IsClosed())
}

func TestNewPriority(t *testing.T) {
	tests := []struct {
		input   string
		rank    int
		wantErr bool
	}{
		{"low", 1, false},
		{"medium", 2, false},
		{"high", 3, false},
		{"urgent", 4, false},
		{"critical", 0, true},
		{"URGENT", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, err := NewPriority(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.rank, p.Rank())
		})
	}
	assert.True(t, PriorityUrgent.IsUrgent())
}

func TestNewTicketType(t *testing.T) {
	for _, tt := range TicketTypes() {
		got, err := NewTicketType(tt.String())
		require.NoError(t, err)
		assert.Equal(t, tt, got)
	}
	_, err := NewTicketType("question")
	assert.Error(t, err)
}

func TestNewMessageType(t *testing.T) {
	mt, err := NewMessageType("")
	require.NoError(t, err)
	assert.Equal(t, MessagePublic, mt)

	mt, err = NewMessageType("agent_only")
	require.NoError(t, err)
	assert.True(t, mt.IsAgentOnly())

	_, err = NewMessageType("internal")
	assert.Error(t, err)
}
