package crm

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/autocrm/autocrm/internal/domain/user"
	uservo "github.com/autocrm/autocrm/internal/domain/user/valueobjects"
	"github.com/autocrm/autocrm/internal/shared/auth"
	"github.com/autocrm/autocrm/internal/shared/errors"
	"github.com/autocrm/autocrm/internal/shared/utils"
)

const minPasswordLength = 6

// Login signs in with a password and loads the caller's profile row.
func (s *Service) Login(ctx context.Context, email, password string) (*user.User, *auth.Session, error) {
	session, err := s.deps.Auth.SignInWithPassword(ctx, email, password)
	if err != nil {
		switch {
		case stderrors.Is(err, auth.ErrEmailNotConfirmed):
			return nil, nil, errors.NewUnauthorizedError("email not confirmed")
		case stderrors.Is(err, auth.ErrInvalidCredentials):
			return nil, nil, errors.NewUnauthorizedError("invalid email or password")
		}
		return nil, nil, errors.NewBackendError("failed to sign in", err)
	}

	u, err := s.GetUser(ctx, session.UserID)
	if err != nil {
		return nil, nil, err
	}
	if u == nil {
		return nil, nil, errors.NewNotFoundError("user profile not found", session.UserID.String())
	}
	s.logger.Infow("user logged in", "user_id", u.ID(), "email", utils.MaskEmail(u.Email()))
	return u, session, nil
}

// Signup registers an account with the auth service; the address must be
// verified before Login succeeds.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*auth.Account, error) {
	addr, err := uservo.NewEmail(in.Email)
	if err != nil {
		return nil, errors.NewValidationError("invalid email", err.Error())
	}
	if len(in.Password) < minPasswordLength {
		return nil, errors.NewValidationError("password too short", "password must be at least 6 characters")
	}

	redirect := in.RedirectTo
	if redirect == "" {
		redirect = s.opts.EmailRedirectURL
	}
	account, err := s.deps.Auth.SignUp(ctx, addr.String(), in.Password, redirect)
	if err != nil {
		return nil, errors.NewBackendError("failed to sign up", err)
	}
	s.logger.Infow("account signed up", "email", utils.MaskEmail(addr.String()))
	return account, nil
}

// CheckEmailVerification tries a password sign-in. It reports false with no
// error while the address is still unconfirmed.
func (s *Service) CheckEmailVerification(ctx context.Context, email, password string) (*auth.Session, bool, error) {
	session, err := s.deps.Auth.SignInWithPassword(ctx, email, password)
	if err != nil {
		if stderrors.Is(err, auth.ErrEmailNotConfirmed) {
			return nil, false, nil
		}
		if stderrors.Is(err, auth.ErrInvalidCredentials) {
			return nil, false, errors.NewUnauthorizedError("invalid email or password")
		}
		return nil, false, errors.NewBackendError("failed to check email verification", err)
	}
	return session, true, nil
}

// WaitForEmailVerification polls CheckEmailVerification every interval until
// the address is confirmed or ctx ends. Failed checks are logged and retried
// on the next tick.
func (s *Service) WaitForEmailVerification(ctx context.Context, email, password string, interval time.Duration) (*auth.Session, error) {
	if interval <= 0 {
		interval = s.opts.VerificationInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			session, verified, err := s.CheckEmailVerification(ctx, email, password)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				s.logger.Warnw("email verification check failed", "email", utils.MaskEmail(email), "error", err)
				continue
			}
			if verified {
				return session, nil
			}
		}
	}
}

func (s *Service) ResendVerificationEmail(ctx context.Context, email string) error {
	if err := s.deps.Auth.ResendVerification(ctx, email, s.opts.EmailRedirectURL); err != nil {
		return errors.NewBackendError("failed to resend verification email", err)
	}
	return nil
}

// SendPasswordReset asks the auth service to mail a recovery link; an empty
// redirect uses the configured landing page.
func (s *Service) SendPasswordReset(ctx context.Context, email, redirectTo string) error {
	if redirectTo == "" {
		redirectTo = s.opts.EmailRedirectURL
	}
	if err := s.deps.Auth.RecoverPassword(ctx, email, redirectTo); err != nil {
		return errors.NewBackendError("failed to send password reset", err)
	}
	return nil
}

// SignOut revokes the session carried by ctx. Failures are logged, not
// returned; the caller drops its token either way.
func (s *Service) SignOut(ctx context.Context) error {
	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		return nil
	}
	if err := s.deps.Auth.SignOut(ctx, session.AccessToken); err != nil {
		s.logger.Warnw("sign out failed", "user_id", session.UserID, "error", err)
	}
	return nil
}

// GetCurrentUser returns the profile of the session in ctx, or (nil, nil)
// when there is no session or the auth service rejects it.
func (s *Service) GetCurrentUser(ctx context.Context) (*user.User, error) {
	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		return nil, nil
	}
	account, err := s.deps.Auth.GetUser(ctx, session.AccessToken)
	if err != nil {
		s.logger.Debugw("session rejected by auth service", "user_id", session.UserID, "error", err)
		return nil, nil
	}
	return s.GetUser(ctx, account.ID)
}
