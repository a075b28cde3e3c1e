package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"skill-align/internal/pkg/jwt"
	"skill-align/internal/repository"
)

type mockUserRepo struct {
	byEmail map[string]repository.User
	byID    map[uuid.UUID]repository.User
}

func (m *mockUserRepo) Create(_ context.Context, u repository.User) (repository.User, error) {
	if m.byEmail == nil {
		m.byEmail = make(map[string]repository.User)
		m.byID = make(map[uuid.UUID]repository.User)
	}
	if _, ok := m.byEmail[u.Email]; ok {
		return repository.User{}, repository.ErrUserAlreadyExists
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now().UTC()
	m.byEmail[u.Email] = u
	m.byID[u.ID] = u
	return u, nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (repository.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return repository.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (repository.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return repository.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func newTestAuth() (*Auth, *mockUserRepo) {
	users := &mockUserRepo{}
	svc := jwt.NewHMACService("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
	return NewAuthUsecase(users, svc), users
}

func TestAuthUsecase_Register_InvalidInput(t *testing.T) {
	u, _ := newTestAuth()

	cases := []RegisterInput{
		{Email: "", Password: "longenough"},
		{Email: "no-at-sign", Password: "longenough"},
		{Email: "a@b.com", Password: "short"},
	}
	for _, in := range cases {
		if _, _, _, err := u.Register(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("Register(%q): expected ErrInvalidInput, got %v", in.Email, err)
		}
	}
}

func TestAuthUsecase_Register_NormalizesEmailAndHashes(t *testing.T) {
	u, users := newTestAuth()

	usr, access, refresh, err := u.Register(context.Background(), RegisterInput{
		Email:    "  Dev@Example.COM ",
		Password: "correct horse",
		Name:     "Dev",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if usr.Email != "dev@example.com" {
		t.Fatalf("expected lowercased email, got %q", usr.Email)
	}
	if usr.PasswordHash == "correct horse" || usr.PasswordHash == "" {
		t.Fatalf("password stored unhashed")
	}
	if access == "" || refresh == "" {
		t.Fatalf("expected both tokens issued")
	}
	if _, ok := users.byEmail["dev@example.com"]; !ok {
		t.Fatalf("user not persisted")
	}
}

func TestAuthUsecase_Register_DuplicateEmail(t *testing.T) {
	u, _ := newTestAuth()

	in := RegisterInput{Email: "dev@example.com", Password: "correct horse"}
	if _, _, _, err := u.Register(context.Background(), in); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, _, _, err := u.Register(context.Background(), in); !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestAuthUsecase_Login(t *testing.T) {
	u, _ := newTestAuth()

	if _, _, _, err := u.Register(context.Background(), RegisterInput{Email: "dev@example.com", Password: "correct horse"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, _, err := u.Login(context.Background(), LoginInput{Email: "dev@example.com", Password: "wrong horse"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials on bad password, got %v", err)
	}
	if _, _, _, err := u.Login(context.Background(), LoginInput{Email: "ghost@example.com", Password: "correct horse"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials on unknown email, got %v", err)
	}

	usr, access, _, err := u.Login(context.Background(), LoginInput{Email: "DEV@example.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if usr.Email != "dev@example.com" || access == "" {
		t.Fatalf("unexpected login result: %+v", usr)
	}
}

func TestAuthUsecase_Refresh(t *testing.T) {
	u, _ := newTestAuth()

	_, access, refresh, err := u.Register(context.Background(), RegisterInput{Email: "dev@example.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, err := u.Refresh(context.Background(), ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized on empty token, got %v", err)
	}
	if _, _, err := u.Refresh(context.Background(), "not-a-jwt"); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken on garbage, got %v", err)
	}
	// An access token must not pass as a refresh token.
	if _, _, err := u.Refresh(context.Background(), access); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken for access token, got %v", err)
	}

	newAccess, newRefresh, err := u.Refresh(context.Background(), refresh)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if newAccess == "" || newRefresh == "" {
		t.Fatalf("expected a fresh token pair")
	}
}
