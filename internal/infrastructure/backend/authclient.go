package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/autocrm/autocrm/internal/shared/auth"
	"github.com/autocrm/autocrm/internal/shared/biztime"
	"github.com/autocrm/autocrm/internal/shared/config"
	"github.com/autocrm/autocrm/internal/shared/logger"
)

// Error codes of password sign-in.
const (
	CodeEmailNotConfirmed  = "email_not_confirmed"
	CodeInvalidCredentials = "invalid_credentials"
	CodeInvalidGrant       = "invalid_grant"
)

// authUser is the user object of the auth REST API.
type authUser struct {
	ID               uuid.UUID  `json:"id"`
	Email            string     `json:"email"`
	EmailConfirmedAt *time.Time `json:"email_confirmed_at"`
	CreatedAt        time.Time  `json:"created_at"`
}

func (u *authUser) emailConfirmed() bool {
	return u.EmailConfirmedAt != nil && !u.EmailConfirmedAt.IsZero()
}

func (u *authUser) account() *auth.Account {
	return &auth.Account{ID: u.ID, Email: u.Email, EmailConfirmed: u.emailConfirmed()}
}

type tokenResponse struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int64    `json:"expires_in"`
	ExpiresAt    int64    `json:"expires_at"`
	User         authUser `json:"user"`
}

// AuthClient calls the backend auth REST API.
type AuthClient struct {
	restClient
}

func NewAuthClient(cfg *config.BackendConfig, log logger.Interface) *AuthClient {
	return &AuthClient{restClient: newRESTClient(cfg, log)}
}

// SignUp registers an account. The returned user is unconfirmed until the
// emailed link is followed; redirectTo is where that link lands.
func (c *AuthClient) SignUp(ctx context.Context, email, password, redirectTo string) (*auth.Account, error) {
	path := "/auth/v1/signup"
	if redirectTo != "" {
		path += "?redirect_to=" + url.QueryEscape(redirectTo)
	}

	// the service answers with the bare user when confirmation is pending
	// and with a full token response when it is disabled
	var resp struct {
		authUser
		User *authUser `json:"user"`
	}
	payload := map[string]string{"email": email, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, path, payload, "", &resp); err != nil {
		return nil, err
	}

	u := resp.User
	if u == nil {
		u = &resp.authUser
	}
	if u.ID == uuid.Nil {
		return nil, fmt.Errorf("signup returned no user")
	}
	return u.account(), nil
}

// SignInWithPassword exchanges credentials for a session. Rejections match
// auth.ErrEmailNotConfirmed or auth.ErrInvalidCredentials.
func (c *AuthClient) SignInWithPassword(ctx context.Context, email, password string) (*auth.Session, error) {
	var resp tokenResponse
	payload := map[string]string{"email": email, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", payload, "", &resp); err != nil {
		switch {
		case IsAPIError(err, CodeEmailNotConfirmed):
			return nil, fmt.Errorf("%w: %w", auth.ErrEmailNotConfirmed, err)
		case IsAPIError(err, CodeInvalidCredentials), IsAPIError(err, CodeInvalidGrant):
			return nil, fmt.Errorf("%w: %w", auth.ErrInvalidCredentials, err)
		}
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("sign-in returned no access token")
	}
	return sessionFromToken(&resp), nil
}

// SignOut revokes every session of the token's user.
func (c *AuthClient) SignOut(ctx context.Context, accessToken string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/v1/logout?scope=global", nil, accessToken, nil)
}

func (c *AuthClient) GetUser(ctx context.Context, accessToken string) (*auth.Account, error) {
	var u authUser
	if err := c.doJSON(ctx, http.MethodGet, "/auth/v1/user", nil, accessToken, &u); err != nil {
		return nil, err
	}
	return u.account(), nil
}

// ResendVerification sends the signup confirmation email again.
func (c *AuthClient) ResendVerification(ctx context.Context, email, redirectTo string) error {
	payload := map[string]any{"type": "signup", "email": email}
	if redirectTo != "" {
		payload["options"] = map[string]string{"email_redirect_to": redirectTo}
	}
	return c.doJSON(ctx, http.MethodPost, "/auth/v1/resend", payload, "", nil)
}

// RecoverPassword emails a reset link that lands on redirectTo.
func (c *AuthClient) RecoverPassword(ctx context.Context, email, redirectTo string) error {
	path := "/auth/v1/recover"
	if redirectTo != "" {
		path += "?redirect_to=" + url.QueryEscape(redirectTo)
	}
	return c.doJSON(ctx, http.MethodPost, path, map[string]string{"email": email}, "", nil)
}

func sessionFromToken(resp *tokenResponse) *auth.Session {
	var expiresAt time.Time
	switch {
	case resp.ExpiresAt > 0:
		expiresAt = time.Unix(resp.ExpiresAt, 0).UTC()
	case resp.ExpiresIn > 0:
		expiresAt = biztime.NowUTC().Add(time.Duration(resp.ExpiresIn) * time.Second)
	}
	return &auth.Session{
		AccessToken:    resp.AccessToken,
		RefreshToken:   resp.RefreshToken,
		ExpiresAt:      expiresAt,
		UserID:         resp.User.ID,
		Email:          resp.User.Email,
		EmailConfirmed: resp.User.emailConfirmed(),
	}
}
