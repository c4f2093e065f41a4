package crm

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/autocrm/autocrm/internal/domain/ticket/valueobjects"
	"github.com/autocrm/autocrm/internal/domain/user"
	"github.com/autocrm/autocrm/internal/shared/errors"
)

func TestService_MessagesResolveSenders(t *testing.T) {
	ctx := context.Background()
	env := newTestService(t, true)
	customer := createUser(t, env.svc, "hana@example.com", user.RoleCustomer)
	agent := createUser(t, env.svc, "ivan@example.com", user.RoleAgent)

	tk, err := env.svc.UpsertTicket(ctx, TicketInput{Title: "Refund", CreatorID: customer.ID()})
	require.NoError(t, err)

	first, err := env.svc.AddMessage(ctx, MessageInput{TicketID: tk.ID(), Text: "Please refund order 12", SenderID: customer.ID()})
	require.NoError(t, err)
	assert.Equal(t, vo.MessagePublic, first.Type())

	_, err = env.svc.AddMessage(ctx, MessageInput{TicketID: tk.ID(), Text: "Check with billing", SenderID: agent.ID(), Type: "agent_only"})
	require.NoError(t, err)

	views, err := env.svc.GetMessagesOnTicket(ctx, tk.ID())
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "Please refund order 12", views[0].Message.Text())
	assert.Equal(t, customer.ID(), views[0].Sender.ID())
	assert.True(t, views[1].Message.IsAgentOnly())
	assert.Equal(t, agent.ID(), views[1].Sender.ID())
}

func TestService_AddMessageValidation(t *testing.T) {
	env := newTestService(t, true)
	ctx := context.Background()

	_, err := env.svc.AddMessage(ctx, MessageInput{TicketID: 1, Text: "hi", SenderID: uuid.New(), Type: "internal"})
	assert.True(t, errors.IsValidationError(err))

	_, err = env.svc.AddMessage(ctx, MessageInput{TicketID: 1, Text: "   ", SenderID: uuid.New()})
	assert.True(t, errors.IsValidationError(err))
}
