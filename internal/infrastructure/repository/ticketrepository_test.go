package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autocrm/autocrm/internal/domain/ticket"
	vo "github.com/autocrm/autocrm/internal/domain/ticket/valueobjects"
	"github.com/autocrm/autocrm/internal/infrastructure/database/dbtest"
	"github.com/autocrm/autocrm/internal/infrastructure/persistence/models"
)

func newTestTicket(t *testing.T, title string, creator uuid.UUID) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.NewTicket(title, "details", vo.StatusOpen, vo.PriorityMedium, vo.TypeSupport, creator)
	require.NoError(t, err)
	return tk
}

func TestTicketRepository_UpsertInsertsThenUpdates(t *testing.T) {
	ctx := context.Background()
	repo := NewTicketRepository(dbtest.New(t, true))
	creator := uuid.New()

	tk := newTestTicket(t, "VPN drops", creator)
	require.NoError(t, repo.Upsert(ctx, tk))
	require.NotZero(t, tk.ID())

	require.NoError(t, tk.Edit("VPN drops hourly", "since Monday"))
	require.NoError(t, repo.Upsert(ctx, tk))

	got, err := repo.Get(ctx, tk.ID())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "VPN drops hourly", got.Title())
	assert.Equal(t, "since Monday", got.Description())
	assert.Equal(t, creator, got.CreatorID())
	assert.Equal(t, uuid.Nil, got.AssigneeID())
	assert.Equal(t, vo.StatusOpen, got.Status())
}

func TestTicketRepository_GetMissingReturnsNil(t *testing.T) {
	repo := NewTicketRepository(dbtest.New(t, false))

	got, err := repo.Get(context.Background(), 4242)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTicketRepository_ListScopes(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t, true)
	repo := NewTicketRepository(db)

	alice, bob := uuid.New(), uuid.New()
	first := newTestTicket(t, "first", alice)
	second := newTestTicket(t, "second", bob)
	require.NoError(t, repo.Upsert(ctx, first))
	require.NoError(t, repo.Upsert(ctx, second))
	require.NoError(t, repo.UpdateAssignee(ctx, second.ID(), alice))

	// a legacy row without assignee or status
	legacy := models.TicketModel{Title: "legacy", Priority: "low", Type: "bug"}
	require.NoError(t, db.Omit("status").Create(&legacy).Error)

	t.Run("by creator", func(t *testing.T) {
		got, err := repo.List(ctx, ticket.Scope{CreatorID: &alice})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, first.ID(), got[0].ID())
	})

	t.Run("by assignee", func(t *testing.T) {
		got, err := repo.List(ctx, ticket.Scope{AssigneeID: &alice})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, second.ID(), got[0].ID())
	})

	t.Run("unassigned includes null assignee", func(t *testing.T) {
		nobody := uuid.Nil
		got, err := repo.List(ctx, ticket.Scope{AssigneeID: &nobody})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("everything", func(t *testing.T) {
		got, err := repo.List(ctx, ticket.Scope{})
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})
}

func TestTicketRepository_SingleColumnUpdates(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t, true)
	repo := NewTicketRepository(db)

	var intake models.QueueModel
	require.NoError(t, db.First(&intake).Error)

	tk := newTestTicket(t, "printer jam", uuid.New())
	require.NoError(t, repo.Upsert(ctx, tk))

	require.NoError(t, repo.UpdateStatus(ctx, tk.ID(), vo.StatusInProgress))
	require.NoError(t, repo.UpdatePriority(ctx, tk.ID(), vo.PriorityUrgent))
	require.NoError(t, repo.UpdateQueue(ctx, tk.ID(), &intake.ID))

	got, err := repo.Get(ctx, tk.ID())
	require.NoError(t, err)
	assert.Equal(t, vo.StatusInProgress, got.Status())
	assert.Equal(t, vo.PriorityUrgent, got.Priority())
	require.NotNil(t, got.QueueID())
	assert.Equal(t, intake.ID, *got.QueueID())

	require.NoError(t, repo.UpdateQueue(ctx, tk.ID(), nil))
	got, err = repo.Get(ctx, tk.ID())
	require.NoError(t, err)
	assert.Nil(t, got.QueueID())

	// missing rows are ignored
	assert.NoError(t, repo.UpdateStatus(ctx, 9999, vo.StatusClosed))
}
