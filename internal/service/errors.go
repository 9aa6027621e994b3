package service

import "errors"

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionNotFound    = errors.New("invalid session token")
	ErrSessionExpired     = errors.New("session expired")
	ErrResetTokenInvalid  = errors.New("invalid or expired reset token")

	ErrPromoNotFound    = errors.New("promo code not found")
	ErrPromoInactive    = errors.New("promo code is deactivated")
	ErrPromoExhausted   = errors.New("promo code usage exhausted")
	ErrPromoAlreadyUsed = errors.New("promo code already used")

	ErrPromptRequired    = errors.New("prompt is required")
	ErrFreeLimitExceeded = errors.New("free generations limit exceeded")
	ErrNoCredits         = errors.New("no credits remaining")

	ErrInvalidPlan         = errors.New("invalid plan")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrAlreadyCaptured     = errors.New("order already captured")
)
