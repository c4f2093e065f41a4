package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/autocrm/autocrm/internal/application/crm"
	"github.com/autocrm/autocrm/internal/domain/user"
	"github.com/autocrm/autocrm/internal/shared/auth"
)

// Service interfaces for AuthHandler - enables unit testing with mocks.

type authService interface {
	Login(ctx context.Context, email, password string) (*user.User, *auth.Session, error)
	Signup(ctx context.Context, in crm.SignupInput) (*auth.Account, error)
	CheckEmailVerification(ctx context.Context, email, password string) (*auth.Session, bool, error)
	ResendVerificationEmail(ctx context.Context, email string) error
	SendPasswordReset(ctx context.Context, email, redirectTo string) error
	SignOut(ctx context.Context) error
	GetCurrentUser(ctx context.Context) (*user.User, error)
}

type profileService interface {
	GetUser(ctx context.Context, id uuid.UUID) (*user.User, error)
	UpsertUser(ctx context.Context, in crm.UserInput) (*user.User, error)
}
