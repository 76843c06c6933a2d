package admins

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/snakegame/leaderboard/internal/config"
	"github.com/snakegame/leaderboard/internal/models"
	"github.com/snakegame/leaderboard/internal/security"
	"github.com/snakegame/leaderboard/internal/validate"
)

// testBcryptCost keeps hashing fast in tests; production uses the configured
// cost (default 12).
const testBcryptCost = 4

func setupAdminsTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:admins_%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	conn, errOpen := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if errOpen != nil {
		t.Fatalf("open db: %v", errOpen)
	}
	if errMigrate := conn.AutoMigrate(&models.Admin{}); errMigrate != nil {
		t.Fatalf("migrate db: %v", errMigrate)
	}
	return conn
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	conn := setupAdminsTestDB(t)
	jwtCfg := config.JWTConfig{Secret: "test-secret", Expiry: config.Duration(time.Hour)}
	return NewService(conn, jwtCfg, testBcryptCost), conn
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	identity, token, errRegister := svc.Register(context.Background(), "admin1", "secret1")
	if errRegister != nil {
		t.Fatalf("register: %v", errRegister)
	}
	if identity.Username != "admin1" || identity.Role != models.RoleAdmin {
		t.Fatalf("unexpected identity: %+v", identity)
	}
	if token == "" {
		t.Fatalf("expected a session token")
	}

	claims, errParse := security.ParseAdminToken("test-secret", token)
	if errParse != nil {
		t.Fatalf("parse register token: %v", errParse)
	}
	if claims.AdminID != identity.ID || claims.Role != models.RoleAdmin {
		t.Fatalf("claims mismatch: %+v", claims)
	}

	loginIdentity, loginToken, errLogin := svc.Login(context.Background(), "admin1", "secret1")
	if errLogin != nil {
		t.Fatalf("login: %v", errLogin)
	}
	if loginIdentity.ID != identity.ID {
		t.Fatalf("login identity mismatch: %+v", loginIdentity)
	}

	claims, errParse = security.ParseAdminToken("test-secret", loginToken)
	if errParse != nil {
		t.Fatalf("parse login token: %v", errParse)
	}
	if claims.Role != models.RoleAdmin {
		t.Fatalf("expected role %q, got %q", models.RoleAdmin, claims.Role)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	t.Parallel()

	svc, conn := newTestService(t)

	if _, _, err := svc.Register(context.Background(), "admin1", "secret1"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), "admin1", "other-password"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	var count int64
	if errCount := conn.Model(&models.Admin{}).Where("username = ?", "admin1").Count(&count).Error; errCount != nil {
		t.Fatalf("count: %v", errCount)
	}
	if count != 1 {
		t.Fatalf("expected 1 stored admin, got %d", count)
	}
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	_, _, err := svc.Register(context.Background(), "ab", "12345")
	var verr *validate.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(verr.Fields) != 2 {
		t.Fatalf("expected 2 field errors, got %v", verr.Fields)
	}
}

func TestRegisterNeverReturnsHash(t *testing.T) {
	t.Parallel()

	svc, conn := newTestService(t)

	_, _, errRegister := svc.Register(context.Background(), "admin1", "secret1")
	if errRegister != nil {
		t.Fatalf("register: %v", errRegister)
	}

	var stored models.Admin
	if errFind := conn.Where("username = ?", "admin1").First(&stored).Error; errFind != nil {
		t.Fatalf("load admin: %v", errFind)
	}
	if stored.Password == "secret1" || stored.Password == "" {
		t.Fatalf("password stored in plaintext or empty")
	}
	if !security.CheckPassword(stored.Password, "secret1") {
		t.Fatalf("stored hash does not verify")
	}
}

func TestLoginFailures(t *testing.T) {
	t.Parallel()

	svc, conn := newTestService(t)

	if _, _, err := svc.Register(context.Background(), "admin1", "secret1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "admin1", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "nobody", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}

	if errUpdate := conn.Model(&models.Admin{}).Where("username = ?", "admin1").Update("active", false).Error; errUpdate != nil {
		t.Fatalf("disable admin: %v", errUpdate)
	}
	if _, _, err := svc.Login(context.Background(), "admin1", "secret1"); !errors.Is(err, ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
}

func TestGetSelf(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	identity, _, errRegister := svc.Register(context.Background(), "admin1", "secret1")
	if errRegister != nil {
		t.Fatalf("register: %v", errRegister)
	}

	self, errSelf := svc.GetSelf(context.Background(), identity.ID)
	if errSelf != nil {
		t.Fatalf("getSelf: %v", errSelf)
	}
	if self != identity {
		t.Fatalf("identity mismatch: %+v vs %+v", self, identity)
	}

	if _, err := svc.GetSelf(context.Background(), 9999); !errors.Is(err, ErrAdminNotFound) {
		t.Fatalf("expected ErrAdminNotFound, got %v", err)
	}
}
