package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"photoset/api/internal/handler/middleware"
	"photoset/api/internal/service"
	"photoset/api/pkg/response"
)

type AuthHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Username string `json:"username"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "email and password are required")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			response.BadRequest(c, err.Error())
		case errors.Is(err, service.ErrPasswordTooShort):
			response.BadRequest(c, err.Error())
		case errors.Is(err, service.ErrEmailTaken):
			response.Conflict(c, err.Error())
		default:
			h.logger.Error("registration failed", zap.Error(err))
			response.InternalError(c, "registration failed")
		}
		return
	}

	response.Created(c, user)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "email and password are required")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password, clientInfo(c))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, err.Error())
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		response.InternalError(c, "login failed")
		return
	}

	response.Success(c, result)
}

// Me returns the profile behind the presented session token.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Unauthorized(c, "missing authentication")
		return
	}
	response.Success(c, user)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.GetHeader(middleware.SessionTokenHeader)
	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		h.logger.Error("logout failed", zap.Error(err))
		response.InternalError(c, "logout failed")
		return
	}
	response.Success(c, gin.H{"logged_out": true})
}

type resetRequestRequest struct {
	Email string `json:"email" binding:"required"`
}

// RequestPasswordReset always answers 200 so the endpoint cannot be used to
// probe for registered emails.
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req resetRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "email is required")
		return
	}

	token, err := h.authService.RequestPasswordReset(c.Request.Context(), req.Email)
	if err != nil {
		h.logger.Error("password reset request failed", zap.Error(err))
		response.InternalError(c, "password reset request failed")
		return
	}
	if token != "" {
		// Delivery goes out-of-band; the token never appears in the response.
		h.logger.Info("password reset token issued", zap.String("email", req.Email))
	}

	response.Success(c, gin.H{"message": "if the email exists, reset instructions have been sent"})
}

type resetCompleteRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func (h *AuthHandler) CompletePasswordReset(c *gin.Context) {
	var req resetCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "token and new_password are required")
		return
	}

	err := h.authService.CompletePasswordReset(c.Request.Context(), req.Token, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrResetTokenInvalid):
			response.BadRequest(c, err.Error())
		case errors.Is(err, service.ErrPasswordTooShort):
			response.BadRequest(c, err.Error())
		default:
			h.logger.Error("password reset failed", zap.Error(err))
			response.InternalError(c, "password reset failed")
		}
		return
	}

	c.JSON(http.StatusOK, response.APIResponse{Code: 0, Message: "password updated"})
}
