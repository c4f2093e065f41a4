package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/autocrm/autocrm/internal/application/crm"
	"github.com/autocrm/autocrm/internal/domain/user"
	"github.com/autocrm/autocrm/internal/interfaces/dto"
	"github.com/autocrm/autocrm/internal/shared/errors"
	"github.com/autocrm/autocrm/internal/shared/logger"
	"github.com/autocrm/autocrm/internal/shared/utils"
)

type AuthHandler struct {
	auth     authService
	profiles profileService
	logger   logger.Interface
}

func NewAuthHandler(auth authService, profiles profileService, logger logger.Interface) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		profiles: profiles,
		logger:   logger,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SignupRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	RedirectTo string `json:"redirect_to" binding:"omitempty,url"`
}

type VerificationRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type EmailRequest struct {
	Email      string `json:"email" binding:"required,email"`
	RedirectTo string `json:"redirect_to" binding:"omitempty,url"`
}

type LoginResponse struct {
	User    *dto.UserDTO    `json:"user"`
	Session *dto.SessionDTO `json:"session"`
}

type VerificationResponse struct {
	Verified bool            `json:"verified"`
	Session  *dto.SessionDTO `json:"session,omitempty"`
	User     *dto.UserDTO    `json:"user,omitempty"`
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	u, session, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Warnw("login failed",
			"email", utils.MaskEmail(req.Email),
			"ip", c.ClientIP(),
			"error", err,
		)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "login successful", LoginResponse{
		User:    dto.ToUserDTO(u),
		Session: dto.ToSessionDTO(session),
	})
}

// Signup handles POST /auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	account, err := h.auth.Signup(c.Request.Context(), crm.SignupInput{
		Email:      req.Email,
		Password:   req.Password,
		RedirectTo: req.RedirectTo,
	})
	if err != nil {
		h.logger.Errorw("signup failed", "email", utils.MaskEmail(req.Email), "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "signup successful, please verify your email", dto.ToAccountDTO(account))
}

// CheckVerification handles POST /auth/verification. Once the address is
// confirmed the caller gets a customer profile if they have none yet.
func (h *AuthHandler) CheckVerification(c *gin.Context) {
	var req VerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	ctx := c.Request.Context()
	session, verified, err := h.auth.CheckEmailVerification(ctx, req.Email, req.Password)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if !verified {
		utils.SuccessResponse(c, http.StatusOK, "email not verified yet", VerificationResponse{})
		return
	}

	profile, err := h.profiles.GetUser(ctx, session.UserID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if profile == nil {
		profile, err = h.profiles.UpsertUser(ctx, crm.UserInput{
			ID:    session.UserID,
			Email: session.Email,
			Role:  user.RoleCustomer.String(),
		})
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
		h.logger.Infow("customer profile created", "user_id", session.UserID)
	}

	utils.SuccessResponse(c, http.StatusOK, "email verified", VerificationResponse{
		Verified: true,
		Session:  dto.ToSessionDTO(session),
		User:     dto.ToUserDTO(profile),
	})
}

// ResendVerification handles POST /auth/resend-verification
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	if err := h.auth.ResendVerificationEmail(c.Request.Context(), req.Email); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "verification email sent", nil)
}

// RequestPasswordReset handles POST /auth/password-reset. The response does
// not reveal whether the address has an account.
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	if err := h.auth.SendPasswordReset(c.Request.Context(), req.Email, req.RedirectTo); err != nil {
		if errors.IsValidationError(err) {
			utils.ErrorResponseWithError(c, err)
			return
		}
		h.logger.Errorw("password reset request failed", "email", utils.MaskEmail(req.Email), "error", err)
	}
	utils.SuccessResponse(c, http.StatusOK, "if the email exists, a password reset link has been sent", nil)
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.auth.SignOut(c.Request.Context()); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "logout successful", nil)
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.auth.GetCurrentUser(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if u == nil {
		utils.NullResponse(c, "no profile for the current session")
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", dto.ToUserDTO(u))
}
