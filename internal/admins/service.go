// Package admins implements administrator registration, login and identity
// lookup over the credential store.
package admins

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/snakegame/leaderboard/internal/config"
	"github.com/snakegame/leaderboard/internal/models"
	"github.com/snakegame/leaderboard/internal/security"
	"github.com/snakegame/leaderboard/internal/validate"
)

// Service errors.
var (
	// ErrUsernameTaken indicates a register call with an existing username.
	ErrUsernameTaken = errors.New("admins: username already exists")
	// ErrInvalidCredentials indicates an unknown username or wrong password.
	ErrInvalidCredentials = errors.New("admins: invalid credentials")
	// ErrAccountDisabled indicates the account exists but cannot sign in.
	ErrAccountDisabled = errors.New("admins: account disabled")
	// ErrAdminNotFound indicates the admin id no longer resolves.
	ErrAdminNotFound = errors.New("admins: admin not found")
)

// Registration constraints.
const (
	usernameMinLen = 3
	passwordMinLen = 6
)

// Identity carries the public fields of an admin account. The password hash
// is never part of it.
type Identity struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Service exposes admin account operations over the credential store.
type Service struct {
	db         *gorm.DB
	jwtCfg     config.JWTConfig
	bcryptCost int
}

// NewService constructs a Service.
func NewService(db *gorm.DB, jwtCfg config.JWTConfig, bcryptCost int) *Service {
	return &Service{db: db, jwtCfg: jwtCfg, bcryptCost: bcryptCost}
}

// Register creates a new admin account and returns its identity together
// with a freshly issued session token.
func (s *Service) Register(ctx context.Context, username, password string) (Identity, string, error) {
	username = strings.TrimSpace(username)
	if err := validateRegistration(username, password); err != nil {
		return Identity{}, "", err
	}

	var existing models.Admin
	errCheck := s.db.WithContext(ctx).Where("username = ?", username).First(&existing).Error
	switch {
	case errCheck == nil:
		return Identity{}, "", ErrUsernameTaken
	case !errors.Is(errCheck, gorm.ErrRecordNotFound):
		return Identity{}, "", fmt.Errorf("admins: check username: %w", errCheck)
	}

	hash, errHash := security.HashPassword(password, s.bcryptCost)
	if errHash != nil {
		return Identity{}, "", fmt.Errorf("admins: hash password: %w", errHash)
	}

	now := time.Now().UTC()
	admin := models.Admin{
		Username:  username,
		Password:  hash,
		Role:      models.RoleAdmin,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if errCreate := s.db.WithContext(ctx).Create(&admin).Error; errCreate != nil {
		return Identity{}, "", fmt.Errorf("admins: create admin: %w", errCreate)
	}

	return s.identityWithToken(admin)
}

// Login verifies credentials and issues a new session token.
func (s *Service) Login(ctx context.Context, username, password string) (Identity, string, error) {
	username = strings.TrimSpace(username)

	var admin models.Admin
	if errFind := s.db.WithContext(ctx).Where("username = ?", username).First(&admin).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return Identity{}, "", ErrInvalidCredentials
		}
		return Identity{}, "", fmt.Errorf("admins: load admin: %w", errFind)
	}

	if !security.CheckPassword(admin.Password, password) {
		return Identity{}, "", ErrInvalidCredentials
	}
	if !admin.Active {
		return Identity{}, "", ErrAccountDisabled
	}

	return s.identityWithToken(admin)
}

// GetSelf resolves an authenticated admin id back to its identity.
func (s *Service) GetSelf(ctx context.Context, adminID uint64) (Identity, error) {
	var admin models.Admin
	if errFind := s.db.WithContext(ctx).First(&admin, adminID).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return Identity{}, ErrAdminNotFound
		}
		return Identity{}, fmt.Errorf("admins: load admin: %w", errFind)
	}
	return identityOf(admin), nil
}

// identityWithToken issues a session token for the admin.
func (s *Service) identityWithToken(admin models.Admin) (Identity, string, error) {
	token, errToken := security.GenerateAdminToken(s.jwtCfg.Secret, admin.ID, admin.Role, s.jwtCfg.Expiry.Std())
	if errToken != nil {
		return Identity{}, "", fmt.Errorf("admins: generate token: %w", errToken)
	}
	return identityOf(admin), token, nil
}

func identityOf(admin models.Admin) Identity {
	return Identity{ID: admin.ID, Username: admin.Username, Role: admin.Role}
}

// validateRegistration applies the registration rules for new accounts.
func validateRegistration(username, password string) error {
	verr := &validate.Error{}
	if len(username) < usernameMinLen {
		verr.Add("username", "must be at least 3 characters")
	}
	if len(password) < passwordMinLen {
		verr.Add("password", "must be at least 6 characters")
	}
	return verr.Err()
}
