package service

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"photoset/api/internal/model"
	"photoset/api/internal/repository"
	"photoset/api/pkg/crypto"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const resetTokenPrefix = "pwreset:"

type RegisterInput struct {
	Email    string
	Username string
	Password string
	FullName string
}

type ClientInfo struct {
	IPAddress string
	UserAgent string
}

// LoginResult carries the issued session token alongside the user profile.
type LoginResult struct {
	Token     string      `json:"session_token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      *model.User `json:"user"`
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, password string, client ClientInfo) (*LoginResult, error)
	// Verify resolves a session token to its user, refreshing last_activity.
	Verify(ctx context.Context, token string) (*model.User, error)
	Logout(ctx context.Context, token string) error
	// RequestPasswordReset returns the reset token, or "" when the email is
	// unknown. Callers must not reveal which case occurred.
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	CompletePasswordReset(ctx context.Context, token, newPassword string) error
}

type authService struct {
	userRepo       repository.UserRepository
	sessionRepo    repository.SessionRepository
	logRepo        repository.SecurityLogRepository
	tokens         repository.TokenStore
	sessionTTL     time.Duration
	resetTokenTTL  time.Duration
	initialCredits int
	freeLimit      int
}

func NewAuthService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	logRepo repository.SecurityLogRepository,
	tokens repository.TokenStore,
	sessionTTL time.Duration,
	resetTokenTTL time.Duration,
	initialCredits int,
	freeLimit int,
) AuthService {
	return &authService{
		userRepo:       userRepo,
		sessionRepo:    sessionRepo,
		logRepo:        logRepo,
		tokens:         tokens,
		sessionTTL:     sessionTTL,
		resetTokenTTL:  resetTokenTTL,
		initialCredits: initialCredits,
		freeLimit:      freeLimit,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if len(input.Password) < 8 {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:                email,
		Username:             strings.TrimSpace(input.Username),
		PasswordHash:         hash,
		FullName:             strings.TrimSpace(input.FullName),
		Credits:              s.initialCredits,
		Plan:                 model.PlanFree,
		FreeGenerationsLimit: s.freeLimit,
		SubscriptionStatus:   model.SubscriptionNone,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.record(ctx, &user.ID, "register", true, ClientInfo{}, "")
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string, client ClientInfo) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same error as a wrong password; only the log keeps the reason.
			s.record(ctx, nil, "login", false, client, reason("user_not_found", email))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(password, user.PasswordHash) {
		s.record(ctx, &user.ID, "login", false, client, reason("wrong_password", ""))
		return nil, ErrInvalidCredentials
	}

	token, err := crypto.GenerateSessionToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := &model.Session{
		UserID:       user.ID,
		Token:        token,
		IPAddress:    client.IPAddress,
		UserAgent:    client.UserAgent,
		ExpiresAt:    now.Add(s.sessionTTL),
		LastActivity: now,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	// Best-effort: the session already exists, so a failed timestamp update
	// must not turn a successful login into an error.
	_ = s.userRepo.TouchLastLogin(ctx, user.ID)

	s.record(ctx, &user.ID, "login", true, client, "")

	return &LoginResult{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		User:      user,
	}, nil
}

func (s *authService) Verify(ctx context.Context, token string) (*model.User, error) {
	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.Expired(time.Now().UTC()) {
		return nil, ErrSessionExpired
	}
	if err := s.sessionRepo.TouchActivity(ctx, token); err != nil {
		return nil, err
	}
	return &session.User, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	return s.sessionRepo.DeleteByToken(ctx, token)
}

func (s *authService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}

	token, err := crypto.GenerateResetToken()
	if err != nil {
		return "", err
	}
	if err := s.tokens.Set(ctx, resetTokenPrefix+token, []byte(user.ID.String()), s.resetTokenTTL); err != nil {
		return "", err
	}

	s.record(ctx, &user.ID, "password_reset_request", true, ClientInfo{}, "")
	return token, nil
}

func (s *authService) CompletePasswordReset(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 8 {
		return ErrPasswordTooShort
	}

	val, err := s.tokens.Get(ctx, resetTokenPrefix+token)
	if err != nil {
		return err
	}
	if val == nil {
		return ErrResetTokenInvalid
	}
	userID, err := uuid.Parse(string(val))
	if err != nil {
		return ErrResetTokenInvalid
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResetTokenInvalid
		}
		return err
	}

	hash, err := crypto.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	// Consume the token so it is single-use.
	if err := s.tokens.Delete(ctx, resetTokenPrefix+token); err != nil {
		return err
	}

	s.record(ctx, &user.ID, "password_reset_complete", true, ClientInfo{}, "")
	return nil
}

func (s *authService) record(ctx context.Context, userID *uuid.UUID, action string, success bool, client ClientInfo, details string) {
	// Audit writes never fail the request.
	_ = s.logRepo.Record(ctx, &model.SecurityLog{
		UserID:    userID,
		Action:    action,
		Success:   success,
		IPAddress: client.IPAddress,
		UserAgent: client.UserAgent,
		Details:   details,
	})
}

func reason(code, email string) string {
	payload := map[string]string{"reason": code}
	if email != "" {
		payload["email"] = email
	}
	b, _ := json.Marshal(payload)
	return string(b)
}

var _ AuthService = (*authService)(nil)
