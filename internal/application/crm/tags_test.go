package crm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autocrm/autocrm/internal/domain/ticket"
	"github.com/autocrm/autocrm/internal/domain/user"
	"github.com/autocrm/autocrm/internal/shared/errors"
)

func TestService_TagLifecycle(t *testing.T) {
	ctx := context.Background()
	env := newTestService(t, true)
	creator := createUser(t, env.svc, "jo@example.com", user.RoleCustomer)
	tk, err := env.svc.UpsertTicket(ctx, TicketInput{Title: "Mail bounce", CreatorID: creator.ID()})
	require.NoError(t, err)

	email, err := env.svc.CreateTag(ctx, "email")
	require.NoError(t, err)
	_, err = env.svc.CreateTag(ctx, "email")
	assert.True(t, errors.IsConflictError(err))

	again, err := env.svc.EnsureTag(ctx, "email")
	require.NoError(t, err)
	assert.Equal(t, email.ID(), again.ID())

	require.NoError(t, env.svc.AddTag(ctx, tk.ID(), email.ID()))
	require.NoError(t, env.svc.AddTag(ctx, tk.ID(), email.ID()))

	tags, err := env.svc.GetTagsForTicket(ctx, tk.ID())
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "email", tags[0].Text())

	require.NoError(t, env.svc.RemoveTag(ctx, tk.ID(), email.ID()))
	require.NoError(t, env.svc.RemoveTag(ctx, tk.ID(), email.ID()))

	tags, err = env.svc.GetTagsForTicket(ctx, tk.ID())
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestService_RemoveTagNeverAddedIsNoop(t *testing.T) {
	ctx := context.Background()
	env := newTestService(t, true)
	creator := createUser(t, env.svc, "kim@example.com", user.RoleCustomer)
	tk, err := env.svc.UpsertTicket(ctx, TicketInput{Title: "Keyboard", CreatorID: creator.ID()})
	require.NoError(t, err)

	hardware, err := env.svc.CreateTag(ctx, "hardware")
	require.NoError(t, err)
	billing, err := env.svc.CreateTag(ctx, "billing")
	require.NoError(t, err)
	require.NoError(t, env.svc.AddTag(ctx, tk.ID(), hardware.ID()))

	require.NoError(t, env.svc.RemoveTag(ctx, tk.ID(), billing.ID()))

	tags, err := env.svc.GetTagsForTicket(ctx, tk.ID())
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, hardware.ID(), tags[0].ID())

	all, err := env.svc.GetAllTags(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "billing", all[0].Text())
}

func TestService_GetTagByName(t *testing.T) {
	ctx := context.Background()
	env := newTestService(t, true)

	missing, err := env.svc.GetTagByName(ctx, "billing")
	require.NoError(t, err)
	assert.Nil(t, missing)

	created, err := env.svc.CreateTag(ctx, "billing")
	require.NoError(t, err)

	found, err := env.svc.GetTagByName(ctx, "billing")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID(), found.ID())
}

// staleTagReads hides existing links, as when another writer attaches the
// same tag between the read and the insert.
type staleTagReads struct {
	ticket.TagRepository
}

func (staleTagReads) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Tag, error) {
	return nil, nil
}

func TestService_AddTagConcurrentLinkIsNoop(t *testing.T) {
	ctx := context.Background()
	env := newTestService(t, true)
	creator := createUser(t, env.svc, "lu@example.com", user.RoleCustomer)
	tk, err := env.svc.UpsertTicket(ctx, TicketInput{Title: "VPN drops", CreatorID: creator.ID()})
	require.NoError(t, err)
	vpn, err := env.svc.CreateTag(ctx, "vpn")
	require.NoError(t, err)
	require.NoError(t, env.svc.AddTag(ctx, tk.ID(), vpn.ID()))

	tags := env.svc.deps.Tags
	env.svc.deps.Tags = staleTagReads{TagRepository: tags}
	require.NoError(t, env.svc.AddTag(ctx, tk.ID(), vpn.ID()))
	env.svc.deps.Tags = tags

	linked, err := env.svc.GetTagsForTicket(ctx, tk.ID())
	require.NoError(t, err)
	assert.Len(t, linked, 1)
}
