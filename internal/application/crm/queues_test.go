package crm

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autocrm/autocrm/internal/domain/user"
	"github.com/autocrm/autocrm/internal/infrastructure/repository"
	"github.com/autocrm/autocrm/internal/shared/errors"
	"github.com/autocrm/autocrm/internal/shared/logger"
)

func TestService_QueueMembership(t *testing.T) {
	ctx := context.Background()
	env := newTestService(t, true)
	agent := createUser(t, env.svc, "olga@example.com", user.RoleAgent)

	billing, err := env.svc.CreateQueue(ctx, "Billing", "Invoices and refunds")
	require.NoError(t, err)
	_, err = env.svc.CreateQueue(ctx, "Billing", "")
	assert.True(t, errors.IsConflictError(err))

	all, err := env.svc.GetAllQueues(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Billing", all[0].Name())
	assert.Equal(t, "Intake", all[1].Name())

	require.NoError(t, env.svc.AssignUserToQueue(ctx, agent.ID(), billing.ID()))
	require.NoError(t, env.svc.AssignUserToQueue(ctx, agent.ID(), billing.ID()))

	mine, err := env.svc.GetUserQueues(ctx, agent.ID())
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, billing.ID(), mine[0].ID())

	require.NoError(t, env.svc.UnassignUserFromQueue(ctx, agent.ID(), billing.ID()))
	require.NoError(t, env.svc.UnassignUserFromQueue(ctx, agent.ID(), billing.ID()))
	mine, err = env.svc.GetUserQueues(ctx, agent.ID())
	require.NoError(t, err)
	assert.Empty(t, mine)

	missing, err := env.svc.GetQueueByName(ctx, "Nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.True(t, errors.IsValidationError(env.svc.AssignUserToQueue(ctx, uuid.Nil, billing.ID())))
}

func TestService_UpsertUserDefaults(t *testing.T) {
	ctx := context.Background()
	env := newTestService(t, true)
	id := uuid.New()

	created, err := env.svc.UpsertUser(ctx, UserInput{ID: id, Email: "Pat@Example.com", FriendlyName: "Pat"})
	require.NoError(t, err)
	assert.Equal(t, user.RoleCustomer, created.Role())
	assert.Equal(t, "pat@example.com", created.Email())

	_, err = env.svc.UpsertUser(ctx, UserInput{ID: id, Role: "agent", FriendlyName: "Patty"})
	require.NoError(t, err)

	got, err := env.svc.GetUser(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user.RoleAgent, got.Role())
	assert.Equal(t, "Patty", got.DisplayName())

	users, err := env.svc.GetAllUsers(ctx)
	require.NoError(t, err)
	// the seeded unassigned row plus Pat
	assert.Len(t, users, 2)

	_, err = env.svc.UpsertUser(ctx, UserInput{ID: uuid.New()})
	assert.True(t, errors.IsValidationError(err))
	_, err = env.svc.UpsertUser(ctx, UserInput{ID: uuid.New(), Email: "x@example.com", Role: "owner"})
	assert.True(t, errors.IsValidationError(err))

	none, err := env.svc.GetUser(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestService_GetUserFreshSeesOutsideWrites(t *testing.T) {
	ctx := context.Background()
	env := newTestService(t, true)
	boss := createUser(t, env.svc, "boss@example.com", user.RoleAdmin)

	cached, err := env.svc.GetUser(ctx, boss.ID())
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, cached.Role())

	// another server instance demotes the user
	demoted, err := user.NewUser(boss.ID(), "boss@example.com", user.RoleCustomer)
	require.NoError(t, err)
	other := repository.NewUserRepository(env.db, logger.NewNopLogger())
	require.NoError(t, other.Upsert(ctx, demoted))

	fresh, err := env.svc.GetUserFresh(ctx, boss.ID())
	require.NoError(t, err)
	require.NotNil(t, fresh)
	assert.Equal(t, user.RoleCustomer, fresh.Role())

	// the cached copy is refreshed too
	cached, err = env.svc.GetUser(ctx, boss.ID())
	require.NoError(t, err)
	assert.Equal(t, user.RoleCustomer, cached.Role())

	require.NoError(t, env.db.Exec("DELETE FROM users WHERE id = ?", boss.ID().String()).Error)
	gone, err := env.svc.GetUserFresh(ctx, boss.ID())
	require.NoError(t, err)
	assert.Nil(t, gone)
	gone, err = env.svc.GetUser(ctx, boss.ID())
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestService_Ping(t *testing.T) {
	env := newTestService(t, false)
	assert.NoError(t, env.svc.Ping(context.Background()))

	bare := NewService(Deps{}, DefaultOptions())
	assert.Error(t, bare.Ping(context.Background()))
}
