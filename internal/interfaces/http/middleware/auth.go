package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/autocrm/autocrm/internal/domain/user"
	"github.com/autocrm/autocrm/internal/shared/auth"
	"github.com/autocrm/autocrm/internal/shared/constants"
	"github.com/autocrm/autocrm/internal/shared/logger"
	"github.com/autocrm/autocrm/internal/shared/utils"
)

// SessionVerifier turns a bearer token into a session.
type SessionVerifier interface {
	Session(token string) (*auth.Session, error)
}

// UserLookup resolves the caller's profile row for their role. It must not
// answer from a cache.
type UserLookup interface {
	GetUserFresh(ctx context.Context, id uuid.UUID) (*user.User, error)
}

type AuthMiddleware struct {
	verifier SessionVerifier
	users    UserLookup
	logger   logger.Interface
}

func NewAuthMiddleware(verifier SessionVerifier, users UserLookup, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		users:    users,
		logger:   logger,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}
		token := parts[1]

		session, err := m.verifier.Session(token)
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		// an account without a profile row yet is treated as a customer
		role := user.RoleCustomer
		profile, err := m.users.GetUserFresh(c.Request.Context(), session.UserID)
		if err != nil {
			m.logger.Errorw("failed to load caller profile", "user_id", session.UserID, "error", err)
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}
		if profile != nil {
			role = profile.Role()
		}

		c.Set(constants.ContextKeyUserID, session.UserID)
		c.Set(constants.ContextKeyUserRole, role.String())
		c.Set(constants.ContextKeyAccessToken, token)
		c.Request = c.Request.WithContext(auth.ContextWithSession(c.Request.Context(), session))

		c.Next()
	}
}
