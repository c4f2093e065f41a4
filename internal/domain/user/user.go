// Package user models the people who file and work tickets.
package user

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	vo "github.com/autocrm/autocrm/internal/domain/user/valueobjects"
	"github.com/autocrm/autocrm/internal/shared/biztime"
)

// UnassignedID is the well-known user standing in for "nobody": tickets
// without an assignee point at it, and a null creator resolves to it.
var UnassignedID = uuid.Nil

const unassignedName = "Unassigned"

// User is a row of the users table. The id is the auth service's user id.
type User struct {
	id                uuid.UUID
	email             string
	firstName         string
	lastName          string
	friendlyName      string
	role              Role
	profilePictureURL string
	createdAt         time.Time
}

// NewUser builds a profile for an authenticated account.
func NewUser(id uuid.UUID, email string, role Role) (*User, error) {
	if id == UnassignedID {
		return nil, fmt.Errorf("user ID cannot be the unassigned sentinel")
	}
	addr, err := vo.NewEmail(email)
	if err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid user role: %s", role)
	}
	return &User{
		id:        id,
		email:     addr.String(),
		role:      role,
		createdAt: biztime.NowUTC(),
	}, nil
}

func ReconstructUser(
	id uuid.UUID,
	email string,
	firstName, lastName, friendlyName string,
	role Role,
	profilePictureURL string,
	createdAt time.Time,
) (*User, error) {
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid user role: %s", role)
	}
	return &User{
		id:                id,
		email:             email,
		firstName:         firstName,
		lastName:          lastName,
		friendlyName:      friendlyName,
		role:              role,
		profilePictureURL: profilePictureURL,
		createdAt:         createdAt,
	}, nil
}

// Unassigned synthesises the sentinel record for backends that lack the row.
func Unassigned() *User {
	return &User{
		id:           UnassignedID,
		friendlyName: unassignedName,
		role:         RoleAgent,
	}
}

func (u *User) ID() uuid.UUID {
	return u.id
}

func (u *User) Email() string {
	return u.email
}

func (u *User) FirstName() string {
	return u.firstName
}

func (u *User) LastName() string {
	return u.lastName
}

func (u *User) FriendlyName() string {
	return u.friendlyName
}

func (u *User) Role() Role {
	return u.role
}

func (u *User) ProfilePictureURL() string {
	return u.profilePictureURL
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) IsUnassigned() bool {
	return u.id == UnassignedID
}

func (u *User) IsStaff() bool {
	return u.role.IsStaff()
}

// DisplayName prefers the friendly name, then "first last", then the email.
func (u *User) DisplayName() string {
	if name := strings.TrimSpace(u.friendlyName); name != "" {
		return name
	}
	if full := strings.TrimSpace(u.firstName + " " + u.lastName); full != "" {
		return full
	}
	if u.email != "" {
		return u.email
	}
	return unassignedName
}

// Initials are the upper-cased first letters of first and last name.
func (u *User) Initials() string {
	var b strings.Builder
	for _, part := range []string{u.firstName, u.lastName} {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		r, _ := utf8.DecodeRuneInString(part)
		b.WriteRune(unicode.ToUpper(r))
	}
	if b.Len() == 0 {
		if r, _ := utf8.DecodeRuneInString(u.DisplayName()); r != utf8.RuneError {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

// UpdateProfile replaces the editable name fields.
func (u *User) UpdateProfile(firstName, lastName, friendlyName string) error {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	friendlyName = strings.TrimSpace(friendlyName)
	for _, v := range []string{firstName, lastName, friendlyName} {
		if utf8.RuneCountInString(v) > 100 {
			return fmt.Errorf("name fields cannot exceed 100 characters")
		}
	}
	u.firstName = firstName
	u.lastName = lastName
	u.friendlyName = friendlyName
	return nil
}

func (u *User) ChangeRole(role Role) error {
	if !role.IsValid() {
		return fmt.Errorf("invalid user role: %s", role)
	}
	u.role = role
	return nil
}

func (u *User) SetProfilePictureURL(url string) {
	u.profilePictureURL = url
}
