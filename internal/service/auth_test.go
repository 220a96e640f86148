package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/taskpad/taskpad-go/internal/crypto"
	"github.com/taskpad/taskpad-go/internal/model"
	"github.com/taskpad/taskpad-go/internal/repository"
)

const testSecret = "test-secret"

// newTestDB creates an in-memory SQLite database. One connection only, since
// each SQLite :memory: connection sees its own private database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access connection pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := repository.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	return NewAuthService(repository.NewUserRepository(newTestDB(t)), testSecret, time.Hour)
}

func TestRegister_EmptyUsername(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "",
		Password: "password123",
	})

	if !errors.Is(err, ErrCredentialsRequired) {
		t.Errorf("expected ErrCredentialsRequired, got %v", err)
	}
}

func TestRegister_EmptyPassword(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "alice",
		Password: "",
	})

	if !errors.Is(err, ErrCredentialsRequired) {
		t.Errorf("expected ErrCredentialsRequired, got %v", err)
	}
}

func TestRegister_ShortPassword(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "alice",
		Password: "12345",
	})

	if !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("expected ErrPasswordTooShort, got %v", err)
	}
}

func TestRegister_PasswordTooLong(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, model.RegisterRequest{
		Username: "alice",
		Password: strings.Repeat("a", 73),
	})
	if !errors.Is(err, ErrPasswordTooLong) {
		t.Errorf("expected ErrPasswordTooLong for 73 bytes, got %v", err)
	}

	// The limit is bcrypt's 72 bytes, not runes.
	_, err = svc.Register(ctx, model.RegisterRequest{
		Username: "alice",
		Password: strings.Repeat("ü", 40),
	})
	if !errors.Is(err, ErrPasswordTooLong) {
		t.Errorf("expected ErrPasswordTooLong for 40 two-byte runes, got %v", err)
	}

	resp, err := svc.Register(ctx, model.RegisterRequest{
		Username: "alice",
		Password: strings.Repeat("a", 72),
	})
	if err != nil {
		t.Fatalf("Register with 72 byte password failed: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token for 72 byte password")
	}
}

func TestRegister_SixCharacterPasswordAccepted(t *testing.T) {
	svc := newTestAuthService(t)

	resp, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "alice",
		Password: "123456",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token for six character password")
	}
}

func TestRegister_Success(t *testing.T) {
	svc := newTestAuthService(t)

	resp, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "alice",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if resp.User.ID == 0 {
		t.Error("expected a generated user ID")
	}
	if resp.User.Username != "alice" {
		t.Errorf("expected username alice, got %q", resp.User.Username)
	}

	claims, err := crypto.ValidateToken(resp.Token, testSecret)
	if err != nil {
		t.Fatalf("issued token failed verification: %v", err)
	}
	if claims.UserID != resp.User.ID {
		t.Errorf("token user ID %d does not match account %d", claims.UserID, resp.User.ID)
	}
	if claims.Username != "alice" {
		t.Errorf("token username %q does not match account", claims.Username)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, model.RegisterRequest{Username: "alice", Password: "secret1"}); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	_, err := svc.Register(ctx, model.RegisterRequest{Username: "alice", Password: "different9"})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, model.RegisterRequest{Username: "alice", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	resp, err := svc.Login(ctx, model.LoginRequest{Username: "alice", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	claims, err := crypto.ValidateToken(resp.Token, testSecret)
	if err != nil {
		t.Fatalf("issued token failed verification: %v", err)
	}
	if claims.UserID != reg.User.ID {
		t.Errorf("token user ID %d does not match account %d", claims.UserID, reg.User.ID)
	}
}

func TestLogin_EmptyFields(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.Login(context.Background(), model.LoginRequest{Username: "alice", Password: ""})
	if !errors.Is(err, ErrCredentialsRequired) {
		t.Errorf("expected ErrCredentialsRequired, got %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, model.RegisterRequest{Username: "alice", Password: "secret1"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err := svc.Login(ctx, model.LoginRequest{Username: "alice", Password: "wrong-password"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownUsername(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.Login(context.Background(), model.LoginRequest{Username: "ghost", Password: "whatever1"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, model.RegisterRequest{Username: "alice", Password: "secret1"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, unknownErr := svc.Login(ctx, model.LoginRequest{Username: "ghost", Password: "secret1"})
	_, wrongPassErr := svc.Login(ctx, model.LoginRequest{Username: "alice", Password: "wrong"})

	if unknownErr == nil || wrongPassErr == nil {
		t.Fatal("expected both login attempts to fail")
	}
	if unknownErr.Error() != wrongPassErr.Error() {
		t.Errorf("expected identical errors, got %q and %q", unknownErr, wrongPassErr)
	}
}

func TestGetUser(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, model.RegisterRequest{Username: "alice", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	user, err := svc.GetUser(ctx, reg.User.ID)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("expected username alice, got %q", user.Username)
	}

	if _, err := svc.GetUser(ctx, reg.User.ID+100); !errors.Is(err, repository.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound for unknown ID, got %v", err)
	}
}
