package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"zylentrix_crm_backend/internal/auth/password"
	"zylentrix_crm_backend/internal/auth/repository"
	"zylentrix_crm_backend/internal/domain"
	"zylentrix_crm_backend/internal/events"
	"zylentrix_crm_backend/platform/config"
	platformevents "zylentrix_crm_backend/platform/events"
	"zylentrix_crm_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
)

type storedToken struct {
	userID    string
	tokenType string
	expiresAt time.Time
	used      bool
}

type fakeStore struct {
	users  map[string]repository.User
	tokens map[string]storedToken
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:  make(map[string]repository.User),
		tokens: make(map[string]storedToken),
	}
}

func (f *fakeStore) CreateUser(_ context.Context, id, name, email, passwordHash string, sector domain.Sector) (repository.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return repository.User{}, repository.ErrEmailTaken
		}
	}
	user := repository.User{ID: id, Name: name, Email: email, PasswordHash: passwordHash, Sector: sector}
	f.users[id] = user
	return user, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (repository.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return repository.User{}, repository.ErrNotFound
}

func (f *fakeStore) GetUserByID(_ context.Context, id string) (repository.User, error) {
	u, ok := f.users[id]
	if !ok {
		return repository.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeStore) MarkEmailVerified(_ context.Context, userID string) error {
	u, ok := f.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.EmailVerified = true
	f.users[userID] = u
	return nil
}

func (f *fakeStore) UpdatePassword(_ context.Context, userID, passwordHash string) error {
	u, ok := f.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = passwordHash
	f.users[userID] = u
	return nil
}

func (f *fakeStore) DeleteUser(_ context.Context, userID string) error {
	delete(f.users, userID)
	return nil
}

func (f *fakeStore) CreateUserToken(_ context.Context, userID, tokenHash, tokenType string, expiresAt time.Time) error {
	f.tokens[tokenHash] = storedToken{userID: userID, tokenType: tokenType, expiresAt: expiresAt}
	return nil
}

func (f *fakeStore) GetUserToken(_ context.Context, tokenHash, tokenType string) (string, time.Time, error) {
	t, ok := f.tokens[tokenHash]
	if !ok || t.used || t.tokenType != tokenType {
		return "", time.Time{}, repository.ErrNotFound
	}
	return t.userID, t.expiresAt, nil
}

func (f *fakeStore) UseUserToken(_ context.Context, tokenHash, tokenType string) error {
	t, ok := f.tokens[tokenHash]
	if !ok || t.tokenType != tokenType {
		return repository.ErrNotFound
	}
	t.used = true
	f.tokens[tokenHash] = t
	return nil
}

type captureBus struct {
	published []platformevents.Event
}

func (b *captureBus) Publish(_ context.Context, event platformevents.Event) {
	b.published = append(b.published, event)
}

func (b *captureBus) PublishSync(_ context.Context, event platformevents.Event) error {
	b.published = append(b.published, event)
	return nil
}

func (b *captureBus) Subscribe(string, platformevents.Handler) {}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:      "test-secret",
		UserIDPrefix:   "ZYL",
		AccessTokenTTL: time.Hour,
		VerifyTokenTTL: 24 * time.Hour,
		ResetTokenTTL:  time.Hour,
	}
}

func newTestService() (*Service, *fakeStore, *captureBus) {
	store := newFakeStore()
	bus := &captureBus{}
	svc := New(store, testConfig(), bus, logger.New("test"))
	return svc, store, bus
}

func TestRegisterPublishesSignedUp(t *testing.T) {
	svc, store, bus := newTestService()

	err := svc.Register(context.Background(), "Asha", "asha@zylentrix.com", "secret123", domain.SectorDigizign)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if len(store.users) != 1 {
		t.Fatalf("stored %d users, want 1", len(store.users))
	}
	if len(bus.published) != 1 {
		t.Fatalf("published %d events, want 1", len(bus.published))
	}
	evt, ok := bus.published[0].(events.UserSignedUp)
	if !ok {
		t.Fatalf("event type %T", bus.published[0])
	}
	if evt.VerifyToken == "" {
		t.Fatal("event must carry the raw verify token")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()

	if err := svc.Register(context.Background(), "Asha", "asha@zylentrix.com", "secret123", domain.SectorDigizign); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	err := svc.Register(context.Background(), "Other", "asha@zylentrix.com", "secret456", domain.SectorZurelabs)
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestLoginFlow(t *testing.T) {
	svc, _, bus := newTestService()
	ctx := context.Background()

	if err := svc.Register(ctx, "Asha", "asha@zylentrix.com", "secret123", domain.SectorDigizign); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Unverified accounts cannot log in.
	if _, err := svc.Login(ctx, "asha@zylentrix.com", "secret123"); !errors.Is(err, ErrEmailNotVerified) {
		t.Fatalf("err = %v, want ErrEmailNotVerified", err)
	}

	rawToken := bus.published[0].(events.UserSignedUp).VerifyToken
	if err := svc.VerifyEmail(ctx, rawToken); err != nil {
		t.Fatalf("VerifyEmail: %v", err)
	}

	if _, err := svc.Login(ctx, "asha@zylentrix.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}

	signed, err := svc.Login(ctx, "asha@zylentrix.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	parsed, err := jwt.Parse(signed, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["type"] != "access" || claims["sector"] != "DIGIZIGN" {
		t.Fatalf("claims = %v", claims)
	}
}

func TestVerifyEmailRejectsBadToken(t *testing.T) {
	svc, _, _ := newTestService()

	if err := svc.VerifyEmail(context.Background(), "nonsense"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestResetPasswordFlow(t *testing.T) {
	svc, _, bus := newTestService()
	ctx := context.Background()

	if err := svc.Register(ctx, "Asha", "asha@zylentrix.com", "secret123", domain.SectorDigizign); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := svc.VerifyEmail(ctx, bus.published[0].(events.UserSignedUp).VerifyToken); err != nil {
		t.Fatalf("VerifyEmail: %v", err)
	}

	if err := svc.ForgotPassword(ctx, "asha@zylentrix.com"); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	resetEvt := bus.published[len(bus.published)-1].(events.PasswordResetRequested)

	if err := svc.ResetPassword(ctx, resetEvt.ResetToken, "newsecret"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}

	if _, err := svc.Login(ctx, "asha@zylentrix.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatal("old password must stop working")
	}
	if _, err := svc.Login(ctx, "asha@zylentrix.com", "newsecret"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}

	// A used token cannot be replayed.
	if err := svc.ResetPassword(ctx, resetEvt.ResetToken, "again"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestForgotPasswordUnknownEmailSilent(t *testing.T) {
	svc, _, bus := newTestService()

	if err := svc.ForgotPassword(context.Background(), "nobody@zylentrix.com"); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	if len(bus.published) != 0 {
		t.Fatalf("published %d events, want 0", len(bus.published))
	}
}

func TestDeleteAccountRequiresPassword(t *testing.T) {
	svc, store, _ := newTestService()
	ctx := context.Background()

	hash, err := password.Hash("secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	store.users["ZYL0001AA"] = repository.User{ID: "ZYL0001AA", Email: "asha@zylentrix.com", PasswordHash: hash}

	if err := svc.DeleteAccount(ctx, "ZYL0001AA", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if err := svc.DeleteAccount(ctx, "ZYL0001AA", "secret123"); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}
	if _, ok := store.users["ZYL0001AA"]; ok {
		t.Fatal("user not deleted")
	}
}
