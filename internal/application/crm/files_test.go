package crm

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autocrm/autocrm/internal/domain/user"
	"github.com/autocrm/autocrm/internal/shared/errors"
)

func TestService_UploadSameNameTwiceKeepsBoth(t *testing.T) {
	ctx := context.Background()
	env := newTestService(t, true)
	creator := createUser(t, env.svc, "lee@example.com", user.RoleCustomer)
	tk, err := env.svc.UpsertTicket(ctx, TicketInput{Title: "Invoice wrong", CreatorID: creator.ID()})
	require.NoError(t, err)

	first, err := env.svc.UploadTicketFile(ctx, tk.ID(), upload("Invoice March.PDF", "one"))
	require.NoError(t, err)
	second, err := env.svc.UploadTicketFile(ctx, tk.ID(), upload("Invoice March.PDF", "two"))
	require.NoError(t, err)

	assert.NotEqual(t, first.URL(), second.URL())
	assert.Equal(t, "Invoice March.PDF", first.FileName())

	bucket := DefaultOptions().FileBucket
	firstPath, err := first.StoragePath(bucket)
	require.NoError(t, err)
	secondPath, err := second.StoragePath(bucket)
	require.NoError(t, err)

	prefix := strconv.FormatUint(uint64(tk.ID()), 10) + "/invoice-march-"
	for _, p := range []string{firstPath, secondPath} {
		assert.True(t, strings.HasPrefix(p, prefix), p)
		assert.True(t, strings.HasSuffix(p, ".pdf"), p)
	}
	assert.Len(t, env.storage.keys(), 2)

	files, err := env.svc.GetTicketFiles(ctx, tk.ID())
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestService_DeleteTicketFileRemovesObjectAndRow(t *testing.T) {
	ctx := context.Background()
	env := newTestService(t, true)
	creator := createUser(t, env.svc, "max@example.com", user.RoleCustomer)
	tk, err := env.svc.UpsertTicket(ctx, TicketInput{Title: "Screenshot", CreatorID: creator.ID()})
	require.NoError(t, err)

	f, err := env.svc.UploadTicketFile(ctx, tk.ID(), upload("screen.png", "png"))
	require.NoError(t, err)

	require.NoError(t, env.svc.DeleteTicketFile(ctx, f.ID()))
	assert.Empty(t, env.storage.keys())
	require.Len(t, env.storage.removed, 1)

	got, err := env.svc.GetTicketFile(ctx, f.ID())
	require.NoError(t, err)
	assert.Nil(t, got)

	err = env.svc.DeleteTicketFile(ctx, f.ID())
	assert.True(t, errors.IsNotFoundError(err))
}

func TestService_UploadTicketFileRejects(t *testing.T) {
	ctx := context.Background()
	env := newTestService(t, true)

	_, err := env.svc.UploadTicketFile(ctx, 404, upload("a.txt", "a"))
	assert.True(t, errors.IsNotFoundError(err))

	big := upload("big.bin", "x")
	big.Size = 1 << 40
	_, err = env.svc.UploadTicketFile(ctx, 1, big)
	assert.True(t, errors.IsValidationError(err))
	assert.Empty(t, env.storage.keys())
}

func TestService_UploadProfilePicture(t *testing.T) {
	ctx := context.Background()
	env := newTestService(t, true)
	u := createUser(t, env.svc, "nia@example.com", user.RoleAgent)

	updated, err := env.svc.UploadProfilePicture(ctx, u.ID(), upload("Me.JPG", "jpg"))
	require.NoError(t, err)

	prefix := testStorageBase + "/" + DefaultOptions().ProfileBucket + "/" + u.ID().String() + "/profile-"
	assert.True(t, strings.HasPrefix(updated.ProfilePictureURL(), prefix), updated.ProfilePictureURL())
	assert.True(t, strings.HasSuffix(updated.ProfilePictureURL(), ".jpg"))

	// a later profile edit keeps the picture
	_, err = env.svc.UpsertUser(ctx, UserInput{ID: u.ID(), FirstName: "Nia"})
	require.NoError(t, err)
	stored, err := env.svc.GetUserFresh(ctx, u.ID())
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, updated.ProfilePictureURL(), stored.ProfilePictureURL())
	assert.Equal(t, "nia@example.com", stored.Email())
	assert.Equal(t, user.RoleAgent, stored.Role())
	assert.Equal(t, "Nia", stored.FirstName())
}
