package signup

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autocrm/autocrm/internal/application/crm"
	"github.com/autocrm/autocrm/internal/domain/user"
	"github.com/autocrm/autocrm/internal/shared/auth"
)

type fakeRegistrar struct {
	signupErr error
	waitErr   error
	userID    uuid.UUID
	upserted  []crm.UserInput
}

func (f *fakeRegistrar) Signup(ctx context.Context, in crm.SignupInput) (*auth.Account, error) {
	if f.signupErr != nil {
		return nil, f.signupErr
	}
	return &auth.Account{ID: f.userID, Email: in.Email}, nil
}

func (f *fakeRegistrar) WaitForEmailVerification(ctx context.Context, email, password string, interval time.Duration) (*auth.Session, error) {
	if f.waitErr != nil {
		return nil, f.waitErr
	}
	return &auth.Session{UserID: f.userID, Email: email, EmailConfirmed: true}, nil
}

func (f *fakeRegistrar) UpsertUser(ctx context.Context, in crm.UserInput) (*user.User, error) {
	f.upserted = append(f.upserted, in)
	u, err := user.NewUser(in.ID, in.Email, user.Role(in.Role))
	if err != nil {
		return nil, err
	}
	if err := u.UpdateProfile(in.FirstName, in.LastName, in.FriendlyName); err != nil {
		return nil, err
	}
	return u, nil
}

func TestPrompter_Collect(t *testing.T) {
	var out bytes.Buffer
	p := prompter{
		in:           bufio.NewReader(strings.NewReader("casey@example.com\nCasey\nJones\n")),
		out:          &out,
		readPassword: func() (string, error) { return "hunter22", nil },
	}

	f, err := p.collect("", "", "")
	require.NoError(t, err)
	assert.Equal(t, form{Email: "casey@example.com", Password: "hunter22", FirstName: "Casey", LastName: "Jones"}, f)
	assert.Contains(t, out.String(), "Email: ")
	assert.Contains(t, out.String(), "Password: ")
}

func TestPrompter_PresetsSkipQuestions(t *testing.T) {
	var out bytes.Buffer
	p := prompter{
		in:           bufio.NewReader(strings.NewReader("")),
		out:          &out,
		readPassword: func() (string, error) { return "hunter22", nil },
	}

	f, err := p.collect("casey@example.com", "Casey", "Jones")
	require.NoError(t, err)
	assert.Equal(t, "Casey", f.FirstName)
	assert.NotContains(t, out.String(), "Email: ")
}

func TestPrompter_RequiresPassword(t *testing.T) {
	p := prompter{
		in:           bufio.NewReader(strings.NewReader("")),
		out:          &bytes.Buffer{},
		readPassword: func() (string, error) { return "", nil },
	}

	_, err := p.collect("casey@example.com", "Casey", "Jones")
	assert.Error(t, err)
}

func TestRegister_CreatesCustomerProfile(t *testing.T) {
	reg := &fakeRegistrar{userID: uuid.New()}
	var out bytes.Buffer

	err := register(context.Background(), reg, form{
		Email:     "casey@example.com",
		Password:  "hunter22",
		FirstName: "Casey",
		LastName:  "Jones",
	}, time.Minute, &out)
	require.NoError(t, err)

	require.Len(t, reg.upserted, 1)
	assert.Equal(t, reg.userID, reg.upserted[0].ID)
	assert.Equal(t, "customer", reg.upserted[0].Role)
	assert.Contains(t, out.String(), "Welcome, Casey Jones")
}

func TestRegister_StopsWhenNotVerified(t *testing.T) {
	reg := &fakeRegistrar{userID: uuid.New(), waitErr: context.DeadlineExceeded}

	err := register(context.Background(), reg, form{Email: "casey@example.com", Password: "hunter22"}, time.Millisecond, &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Empty(t, reg.upserted)
}
