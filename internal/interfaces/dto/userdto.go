// Package dto shapes domain records for the JSON API.
package dto

import (
	"time"

	"github.com/autocrm/autocrm/internal/domain/queue"
	"github.com/autocrm/autocrm/internal/domain/user"
	"github.com/autocrm/autocrm/internal/shared/auth"
)

type UserDTO struct {
	ID                string    `json:"id"`
	Email             string    `json:"email,omitempty"`
	FirstName         string    `json:"first_name,omitempty"`
	LastName          string    `json:"last_name,omitempty"`
	FriendlyName      string    `json:"friendly_name,omitempty"`
	DisplayName       string    `json:"display_name"`
	Initials          string    `json:"initials"`
	Role              string    `json:"role"`
	ProfilePictureURL string    `json:"profile_picture_url,omitempty"`
	Unassigned        bool      `json:"unassigned,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

func ToUserDTO(u *user.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:                u.ID().String(),
		Email:             u.Email(),
		FirstName:         u.FirstName(),
		LastName:          u.LastName(),
		FriendlyName:      u.FriendlyName(),
		DisplayName:       u.DisplayName(),
		Initials:          u.Initials(),
		Role:              u.Role().String(),
		ProfilePictureURL: u.ProfilePictureURL(),
		Unassigned:        u.IsUnassigned(),
		CreatedAt:         u.CreatedAt(),
	}
}

func ToUserDTOs(users []*user.User) []*UserDTO {
	out := make([]*UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserDTO(u))
	}
	return out
}

type AccountDTO struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	EmailConfirmed bool   `json:"email_confirmed"`
}

func ToAccountDTO(a *auth.Account) *AccountDTO {
	if a == nil {
		return nil
	}
	return &AccountDTO{ID: a.ID.String(), Email: a.Email, EmailConfirmed: a.EmailConfirmed}
}

type SessionDTO struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func ToSessionDTO(s *auth.Session) *SessionDTO {
	if s == nil {
		return nil
	}
	return &SessionDTO{AccessToken: s.AccessToken, RefreshToken: s.RefreshToken, ExpiresAt: s.ExpiresAt}
}

type QueueDTO struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToQueueDTOs(queues []*queue.Queue) []*QueueDTO {
	out := make([]*QueueDTO, 0, len(queues))
	for _, q := range queues {
		out = append(out, ToQueueDTO(q))
	}
	return out
}

func ToQueueDTO(q *queue.Queue) *QueueDTO {
	return &QueueDTO{ID: q.ID(), Name: q.Name(), Description: q.Description(), CreatedAt: q.CreatedAt()}
}
