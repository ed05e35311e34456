package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/craftpress/printshop-backend/internal/users"
	"github.com/craftpress/printshop-backend/pkg/config"
	"github.com/craftpress/printshop-backend/pkg/db/models"
	"github.com/craftpress/printshop-backend/pkg/enums"
	pkgerrors "github.com/craftpress/printshop-backend/pkg/errors"
	"github.com/craftpress/printshop-backend/pkg/security"
)

type stubUserRepo struct {
	byEmail map[string]*models.User
	created []*models.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: map[string]*models.User{}}
}

func (s *stubUserRepo) Create(_ context.Context, dto users.CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	user.ID = uuid.New()
	s.byEmail[user.Email] = user
	s.created = append(s.created, user)
	return user, nil
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if user, ok := s.byEmail[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type stubSessions struct {
	created []string
	revoked []string
}

func (s *stubSessions) Create(_ context.Context, accessID string) error {
	s.created = append(s.created, accessID)
	return nil
}

func (s *stubSessions) Revoke(_ context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "printshop",
		ExpirationMinutes: 30,
	}
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func newTestService(t *testing.T, repo *stubUserRepo, sessions *stubSessions) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
		PasswordConfig: testPasswordConfig(),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestRegisterCreatesCustomerAndSession(t *testing.T) {
	t.Parallel()

	repo := newStubUserRepo()
	sessions := &stubSessions{}
	svc := newTestService(t, repo, sessions)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Asha Rao",
		Email:    "Asha@Example.com",
		Password: "print-shop-pass",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if resp.AccessToken == "" {
		t.Fatal("expected an access token")
	}
	if resp.User == nil || resp.User.Email != "asha@example.com" {
		t.Fatalf("expected normalized email, got %+v", resp.User)
	}
	if resp.User.Role != enums.UserRoleCustomer {
		t.Fatalf("expected customer role, got %s", resp.User.Role)
	}
	if len(sessions.created) != 1 {
		t.Fatalf("expected one session, got %d", len(sessions.created))
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one user created, got %d", len(repo.created))
	}
	if repo.created[0].PasswordHash == "print-shop-pass" {
		t.Fatal("password must not be stored in plain text")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	t.Parallel()

	repo := newStubUserRepo()
	repo.byEmail["taken@example.com"] = &models.User{ID: uuid.New(), Email: "taken@example.com"}
	svc := newTestService(t, repo, &stubSessions{})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Someone",
		Email:    "taken@example.com",
		Password: "print-shop-pass",
	})
	if err == nil {
		t.Fatal("expected duplicate email error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict code, got %v", err)
	}
}

func TestLoginVerifiesPassword(t *testing.T) {
	t.Parallel()

	hash, err := security.HashPassword("correct-password", testPasswordConfig())
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	repo := newStubUserRepo()
	repo.byEmail["user@example.com"] = &models.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		PasswordHash: hash,
		Role:         enums.UserRoleCustomer,
		IsActive:     true,
	}
	sessions := &stubSessions{}
	svc := newTestService(t, repo, sessions)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "user@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected an access token")
	}
	if len(sessions.created) != 1 {
		t.Fatalf("expected one session, got %d", len(sessions.created))
	}

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "user@example.com",
		Password: "wrong-password",
	})
	if err == nil {
		t.Fatal("expected invalid credentials error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized code, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newStubUserRepo(), &stubSessions{})

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized code, got %v", err)
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	t.Parallel()

	hash, err := security.HashPassword("correct-password", testPasswordConfig())
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	repo := newStubUserRepo()
	repo.byEmail["gone@example.com"] = &models.User{
		ID:           uuid.New(),
		Email:        "gone@example.com",
		PasswordHash: hash,
		Role:         enums.UserRoleCustomer,
		IsActive:     false,
	}
	svc := newTestService(t, repo, &stubSessions{})

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "gone@example.com",
		Password: "correct-password",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized code, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	t.Parallel()

	sessions := &stubSessions{}
	svc := newTestService(t, newStubUserRepo(), sessions)

	if err := svc.Logout(context.Background(), "access-id"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "access-id" {
		t.Fatalf("expected session to be revoked, got %+v", sessions.revoked)
	}

	if err := svc.Logout(context.Background(), " "); err == nil {
		t.Fatal("expected error for blank access id")
	}
}
