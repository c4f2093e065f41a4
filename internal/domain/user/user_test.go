package user

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	id := uuid.New()

	u, err := NewUser(id, " Casey@Example.com", RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, id, u.ID())
	assert.Equal(t, "casey@example.com", u.Email())
	assert.False(t, u.IsStaff())

	_, err = NewUser(UnassignedID, "x@example.com", RoleAgent)
	assert.Error(t, err)
	_, err = NewUser(id, "not-an-email", RoleAgent)
	assert.Error(t, err)
	_, err = NewUser(id, "x@example.com", Role("owner"))
	assert.Error(t, err)
}

func TestUnassigned(t *testing.T) {
	u := Unassigned()
	assert.True(t, u.IsUnassigned())
	assert.Equal(t, "00000000-0000-0000-0000-000000000000", u.ID().String())
	assert.Equal(t, "Unassigned", u.DisplayName())
	assert.Equal(t, "U", u.Initials())
}

func TestUser_DisplayNameAndInitials(t *testing.T) {
	tests := []struct {
		name         string
		first, last  string
		friendly     string
		email        string
		wantDisplay  string
		wantInitials string
	}{
		{"friendly wins", "Robin", "Lee", "Robs", "robin@example.com", "Robs", "RL"},
		{"full name", "robin", "lee", "", "robin@example.com", "robin lee", "RL"},
		{"first only", "Robin", "", "", "robin@example.com", "Robin", "R"},
		{"email fallback", "", "", "", "robin@example.com", "robin@example.com", "R"},
		{"unicode", "élodie", "ørsted", "", "", "élodie ørsted", "ÉØ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := ReconstructUser(uuid.New(), tt.email, tt.first, tt.last, tt.friendly, RoleAgent, "", time.Now())
			require.NoError(t, err)
			assert.Equal(t, tt.wantDisplay, u.DisplayName())
			assert.Equal(t, tt.wantInitials, u.Initials())
		})
	}
}

func TestUser_UpdateProfile(t *testing.T) {
	u, err := NewUser(uuid.New(), "sam@example.com", RoleAgent)
	require.NoError(t, err)

	require.NoError(t, u.UpdateProfile(" Sam ", "Rivera", ""))
	assert.Equal(t, "Sam", u.FirstName())
	assert.Equal(t, "Rivera", u.LastName())

	long := make([]rune, 101)
	for i := range long {
		long[i] = 'a'
	}
	assert.Error(t, u.UpdateProfile(string(long), "", ""))
	assert.Equal(t, "Sam", u.FirstName())
}

func TestRole(t *testing.T) {
	for _, s := range []string{"customer", "agent", "admin"} {
		r, err := NewRole(s)
		require.NoError(t, err)
		assert.Equal(t, s, r.String())
	}
	_, err := NewRole("guest")
	assert.Error(t, err)

	assert.True(t, RoleAgent.IsStaff())
	assert.True(t, RoleAdmin.IsStaff())
	assert.False(t, RoleCustomer.IsStaff())
	assert.True(t, RoleAdmin.IsAdmin())
}
