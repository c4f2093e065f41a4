package crm

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/autocrm/autocrm/internal/domain/ticket/valueobjects"
	"github.com/autocrm/autocrm/internal/domain/user"
	"github.com/autocrm/autocrm/internal/shared/errors"
)

func TestService_UpsertThenDetailsRoundTrip(t *testing.T) {
	ctx := context.Background()
	env := newTestService(t, true)

	creator := createUser(t, env.svc, "carol@example.com", user.RoleCustomer)
	assignee := createUser(t, env.svc, "aaron@example.com", user.RoleAgent)

	saved, err := env.svc.UpsertTicket(ctx, TicketInput{
		Title:       "Printer offline",
		Description: "Third floor printer shows **offline**",
		Status:      "in_progress",
		Priority:    "high",
		Type:        "bug",
		CreatorID:   creator.ID(),
		AssigneeID:  assignee.ID(),
	})
	require.NoError(t, err)
	require.NotZero(t, saved.ID())

	details, err := env.svc.GetTicketDetails(ctx, saved.ID())
	require.NoError(t, err)
	require.NotNil(t, details)

	got := details.Ticket
	assert.Equal(t, "Printer offline", got.Title())
	assert.Equal(t, "Third floor printer shows **offline**", got.Description())
	assert.Equal(t, vo.StatusInProgress, got.Status())
	assert.Equal(t, vo.PriorityHigh, got.Priority())
	assert.Equal(t, vo.TypeBug, got.Type())

	require.NotNil(t, details.Creator)
	require.NotNil(t, details.Assignee)
	assert.Equal(t, creator.ID(), details.Creator.ID())
	assert.Equal(t, "carol@example.com", details.Creator.Email())
	assert.Equal(t, assignee.ID(), details.Assignee.ID())
	assert.Equal(t, user.RoleAgent, details.Assignee.Role())
	assert.Empty(t, details.Messages)
	assert.Empty(t, details.Tags)
	assert.Empty(t, details.Files)
}

func TestService_UpsertTicketUpdatesExistingRow(t *testing.T) {
	ctx := context.Background()
	env := newTestService(t, true)
	creator := createUser(t, env.svc, "carol@example.com", user.RoleCustomer)

	first, err := env.svc.UpsertTicket(ctx, TicketInput{Title: "Wifi slow", CreatorID: creator.ID()})
	require.NoError(t, err)
	assert.Equal(t, vo.StatusOpen, first.Status())
	assert.Equal(t, vo.PriorityMedium, first.Priority())
	assert.Equal(t, vo.TypeSupport, first.Type())

	opened := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	require.NoError(t, env.db.Exec("UPDATE tickets SET created_at = ? WHERE id = ?", opened, first.ID()).Error)

	updated, err := env.svc.UpsertTicket(ctx, TicketInput{
		ID:        first.ID(),
		Title:     "Wifi slow in lobby",
		Status:    "closed",
		CreatorID: creator.ID(),
	})
	require.NoError(t, err)

	got, err := env.svc.GetTicket(ctx, first.ID())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Wifi slow in lobby", got.Title())
	assert.Equal(t, vo.StatusClosed, got.Status())
	assert.True(t, opened.Equal(got.CreatedAt()), "stored created_at %s", got.CreatedAt())
	assert.True(t, got.CreatedAt().Equal(updated.CreatedAt()), "returned %s, stored %s", updated.CreatedAt(), got.CreatedAt())

	all, err := env.svc.GetAllTickets(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestService_DetailsResolveUnassignedSentinel(t *testing.T) {
	tests := []struct {
		name string
		seed bool
	}{
		{name: "sentinel row present", seed: true},
		{name: "sentinel row missing", seed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			env := newTestService(t, tt.seed)
			creator := createUser(t, env.svc, "dana@example.com", user.RoleCustomer)

			saved, err := env.svc.UpsertTicket(ctx, TicketInput{Title: "Locked out", CreatorID: creator.ID()})
			require.NoError(t, err)

			details, err := env.svc.GetTicketDetails(ctx, saved.ID())
			require.NoError(t, err)
			require.NotNil(t, details.Assignee)
			assert.True(t, details.Assignee.IsUnassigned())
			assert.Equal(t, user.UnassignedID, details.Assignee.ID())
			assert.Equal(t, "Unassigned", details.Assignee.DisplayName())
		})
	}
}

func TestService_DetailsMissingCreatorFails(t *testing.T) {
	ctx := context.Background()
	env := newTestService(t, true)

	saved, err := env.svc.UpsertTicket(ctx, TicketInput{Title: "Orphan", CreatorID: uuid.New()})
	require.NoError(t, err)

	_, err = env.svc.GetTicketDetails(ctx, saved.ID())
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeInternal, appErr.Type)
}

func TestService_DetailsOfMissingTicketIsNil(t *testing.T) {
	env := newTestService(t, true)

	details, err := env.svc.GetTicketDetails(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, details)
}

func TestService_CreateTicketAttachesTags(t *testing.T) {
	ctx := context.Background()
	env := newTestService(t, true)
	creator := createUser(t, env.svc, "erin@example.com", user.RoleCustomer)

	network, err := env.svc.CreateTag(ctx, "network")
	require.NoError(t, err)
	vpn, err := env.svc.EnsureTag(ctx, "vpn")
	require.NoError(t, err)

	created, err := env.svc.CreateTicket(ctx, TicketInput{Title: "VPN drops", CreatorID: creator.ID()},
		[]uint{network.ID(), vpn.ID()})
	require.NoError(t, err)
	assert.Len(t, created.Tags(), 2)

	list, err := env.svc.GetTicketsByCreator(ctx, creator.ID())
	require.NoError(t, err)
	require.Len(t, list, 1)
	texts := []string{}
	for _, tag := range list[0].Tags() {
		texts = append(texts, tag.Text())
	}
	assert.ElementsMatch(t, []string{"network", "vpn"}, texts)
}

func TestService_TicketScopesAndColumnUpdates(t *testing.T) {
	ctx := context.Background()
	env := newTestService(t, true)
	creator := createUser(t, env.svc, "fay@example.com", user.RoleCustomer)
	agent := createUser(t, env.svc, "gus@example.com", user.RoleAgent)
	q, err := env.svc.GetQueueByName(ctx, "Intake")
	require.NoError(t, err)
	require.NotNil(t, q)

	tk, err := env.svc.UpsertTicket(ctx, TicketInput{Title: "Laptop fan", CreatorID: creator.ID()})
	require.NoError(t, err)

	unassigned, err := env.svc.GetTicketsByAssignee(ctx, user.UnassignedID)
	require.NoError(t, err)
	assert.Len(t, unassigned, 1)

	require.NoError(t, env.svc.AssignTicket(ctx, tk.ID(), agent.ID()))
	queueID := q.ID()
	require.NoError(t, env.svc.UpdateTicketQueue(ctx, tk.ID(), &queueID))
	require.NoError(t, env.svc.UpdateTicketPriority(ctx, tk.ID(), "urgent"))
	require.NoError(t, env.svc.UpdateTicketStatus(ctx, tk.ID(), "on_hold"))

	byAgent, err := env.svc.GetTicketsByAssignee(ctx, agent.ID())
	require.NoError(t, err)
	require.Len(t, byAgent, 1)
	assert.Equal(t, vo.PriorityUrgent, byAgent[0].Priority())
	assert.Equal(t, vo.StatusOnHold, byAgent[0].Status())

	byQueue, err := env.svc.GetTicketsByQueue(ctx, q.ID())
	require.NoError(t, err)
	assert.Len(t, byQueue, 1)

	byStatus, err := env.svc.GetTicketsByStatus(ctx, "on_hold")
	require.NoError(t, err)
	assert.Len(t, byStatus, 1)

	_, err = env.svc.GetTicketsByStatus(ctx, "pending")
	assert.True(t, errors.IsValidationError(err))
	assert.True(t, errors.IsValidationError(env.svc.UpdateTicketPriority(ctx, tk.ID(), "critical")))
}

func TestService_UpsertTicketRejectsBadInput(t *testing.T) {
	env := newTestService(t, true)

	tests := []struct {
		name string
		in   TicketInput
	}{
		{name: "empty title", in: TicketInput{Title: "  "}},
		{name: "unknown status", in: TicketInput{Title: "x", Status: "pending"}},
		{name: "unknown type", in: TicketInput{Title: "x", Type: "question"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.UpsertTicket(context.Background(), tt.in)
			assert.True(t, errors.IsValidationError(err), "got %v", err)
		})
	}
}
