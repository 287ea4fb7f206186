package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"zylentrix_crm_backend/internal/auth/password"
	"zylentrix_crm_backend/internal/auth/repository"
	"zylentrix_crm_backend/internal/auth/token"
	"zylentrix_crm_backend/internal/auth/userid"
	"zylentrix_crm_backend/internal/domain"
	"zylentrix_crm_backend/internal/events"
	"zylentrix_crm_backend/platform/config"
	"zylentrix_crm_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already in use")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrAlreadyVerified    = errors.New("email already verified")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrUserNotFound       = errors.New("user not found")
)

const accessTokenType = "access"

// Store is the persistence surface the auth service depends on.
type Store interface {
	CreateUser(ctx context.Context, id, name, email, passwordHash string, sector domain.Sector) (repository.User, error)
	GetUserByEmail(ctx context.Context, email string) (repository.User, error)
	GetUserByID(ctx context.Context, id string) (repository.User, error)
	MarkEmailVerified(ctx context.Context, userID string) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	DeleteUser(ctx context.Context, userID string) error
	CreateUserToken(ctx context.Context, userID, tokenHash, tokenType string, expiresAt time.Time) error
	GetUserToken(ctx context.Context, tokenHash, tokenType string) (string, time.Time, error)
	UseUserToken(ctx context.Context, tokenHash, tokenType string) error
}

type Service struct {
	store Store
	cfg   *config.Config
	bus   events.Bus
	ids   *userid.Generator
	log   *logger.Logger
}

func New(store Store, cfg *config.Config, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		store: store,
		cfg:   cfg,
		bus:   bus,
		ids:   userid.New(cfg.UserIDPrefix),
		log:   log,
	}
}

// Register creates an unverified account and publishes UserSignedUp so the
// notification module can deliver the verification email.
func (s *Service) Register(ctx context.Context, name, email, plainPassword string, sector domain.Sector) error {
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return err
	}

	user, err := s.store.CreateUser(ctx, s.ids.Generate(), name, email, hash, sector)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return ErrEmailTaken
		}
		return err
	}

	verifyToken, err := s.issueUserToken(ctx, user.ID, repository.TokenTypeEmailVerify, s.cfg.VerifyTokenTTL)
	if err != nil {
		return err
	}

	s.log.AuthEvent("register", user.Email, true, "")
	s.bus.Publish(ctx, events.UserSignedUp{
		BaseEvent:   events.NewBaseEvent(),
		UserID:      user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Sector:      user.Sector,
		VerifyToken: verifyToken,
	})

	return nil
}

// ResendVerification issues a fresh verification token for an unverified user.
// An unknown email is reported identically to success to avoid account probing.
func (s *Service) ResendVerification(ctx context.Context, email string) error {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil
	}
	if user.EmailVerified {
		return ErrAlreadyVerified
	}

	verifyToken, err := s.issueUserToken(ctx, user.ID, repository.TokenTypeEmailVerify, s.cfg.VerifyTokenTTL)
	if err != nil {
		return err
	}

	s.bus.Publish(ctx, events.EmailVerificationRequested{
		BaseEvent:   events.NewBaseEvent(),
		UserID:      user.ID,
		Email:       user.Email,
		VerifyToken: verifyToken,
	})
	return nil
}

func (s *Service) VerifyEmail(ctx context.Context, rawToken string) error {
	hash := token.HashSHA256(rawToken)
	userID, expiresAt, err := s.store.GetUserToken(ctx, hash, repository.TokenTypeEmailVerify)
	if err != nil {
		return ErrTokenInvalid
	}

	if time.Now().After(expiresAt) {
		return ErrTokenExpired
	}

	if err := s.store.MarkEmailVerified(ctx, userID); err != nil {
		return err
	}

	_ = s.store.UseUserToken(ctx, hash, repository.TokenTypeEmailVerify)
	return nil
}

// Login validates credentials and returns a signed access token.
func (s *Service) Login(ctx context.Context, email, plainPassword string) (string, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		s.log.AuthEvent("login", email, false, "unknown email")
		return "", ErrInvalidCredentials
	}

	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		s.log.AuthEvent("login", email, false, "wrong password")
		return "", ErrInvalidCredentials
	}

	if !user.EmailVerified {
		return "", ErrEmailNotVerified
	}

	s.log.AuthEvent("login", email, true, "")
	return s.signAccessToken(user)
}

func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil
	}

	resetToken, err := s.issueUserToken(ctx, user.ID, repository.TokenTypePasswordReset, s.cfg.ResetTokenTTL)
	if err != nil {
		return err
	}

	s.bus.Publish(ctx, events.PasswordResetRequested{
		BaseEvent:  events.NewBaseEvent(),
		UserID:     user.ID,
		Email:      user.Email,
		ResetToken: resetToken,
	})
	return nil
}

func (s *Service) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	hash := token.HashSHA256(rawToken)
	userID, expiresAt, err := s.store.GetUserToken(ctx, hash, repository.TokenTypePasswordReset)
	if err != nil {
		return ErrTokenInvalid
	}

	if time.Now().After(expiresAt) {
		return ErrTokenExpired
	}

	passwordHash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}

	if err := s.store.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return err
	}

	_ = s.store.UseUserToken(ctx, hash, repository.TokenTypePasswordReset)
	return nil
}

// DeleteAccount removes a user after confirming their password.
func (s *Service) DeleteAccount(ctx context.Context, userID, plainPassword string) error {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}

	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		return ErrInvalidCredentials
	}

	return s.store.DeleteUser(ctx, user.ID)
}

func (s *Service) GetMe(ctx context.Context, userID string) (repository.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return repository.User{}, ErrUserNotFound
	}
	return user, nil
}

func (s *Service) issueUserToken(ctx context.Context, userID, tokenType string, ttl time.Duration) (string, error) {
	raw, err := token.GenerateRandomToken(32)
	if err != nil {
		return "", err
	}

	hash := token.HashSHA256(raw)
	if err := s.store.CreateUserToken(ctx, userID, hash, tokenType, time.Now().Add(ttl)); err != nil {
		return "", err
	}

	return raw, nil
}

func (s *Service) signAccessToken(user repository.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":    user.ID,
		"type":   accessTokenType,
		"sector": user.Sector.String(),
		"exp":    time.Now().Add(s.cfg.AccessTokenTTL).Unix(),
		"iat":    time.Now().Unix(),
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenObj.SignedString([]byte(s.cfg.JWTSecret))
}

// BuildVerifyURL returns the frontend link that carries a raw verify token.
func BuildVerifyURL(baseURL, rawToken string) string {
	return strings.TrimRight(baseURL, "/") + "/verify-email?token=" + rawToken
}

// BuildResetURL returns the frontend link that carries a raw reset token.
func BuildResetURL(baseURL, rawToken string) string {
	return strings.TrimRight(baseURL, "/") + "/reset-password?token=" + rawToken
}
