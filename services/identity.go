package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"miniboard/models"
	"miniboard/utils"
)

// Identity is the authenticated user context attached to a request. It is
// only ever built from verified token claims, never from request bodies.
type Identity struct {
	ID       string
	Username string
	IsAdmin  bool
}

// IdentityService validates credentials and manages user records.
type IdentityService struct {
	db             *gorm.DB
	adminUsernames []string
}

// NewIdentityService creates an IdentityService backed by the given store.
func NewIdentityService(db *gorm.DB, adminUsernames []string) *IdentityService {
	return &IdentityService{db: db, adminUsernames: adminUsernames}
}

// Register creates a new user. Usernames are unique; a configured bootstrap
// admin username is created already promoted.
func (s *IdentityService) Register(username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, models.NewValidationError("username and password are required")
	}

	var existing models.User
	if err := s.db.Where("username = ?", username).First(&existing).Error; err == nil {
		return nil, models.NewConflictError("username already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewStoreError("failed to check username", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, models.NewStoreError("failed to hash password", err)
	}

	user := models.User{
		Username:     username,
		PasswordHash: hash,
		IsAdmin:      s.isBootstrapAdmin(username),
	}

	if err := s.db.Create(&user).Error; err != nil {
		// The unique index closes the pre-check race: a concurrent insert of
		// the same username surfaces here as a duplicate key.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.NewConflictError("username already exists")
		}
		return nil, models.NewStoreError("failed to create user", err)
	}

	return &user, nil
}

// Authenticate verifies credentials and returns the matching user. The same
// error is returned for unknown usernames and wrong passwords.
func (s *IdentityService) Authenticate(username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, models.NewValidationError("username and password are required")
	}

	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewAuthenticationError("invalid username or password")
		}
		return nil, models.NewStoreError("failed to look up user", err)
	}

	if !utils.CheckPassword(user.PasswordHash, password) {
		return nil, models.NewAuthenticationError("invalid username or password")
	}

	return &user, nil
}

// ListUsers returns all users in store order. The password hash never
// serializes (json:"-").
func (s *IdentityService) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		return nil, models.NewStoreError("failed to list users", err)
	}
	return users, nil
}

// DeleteUser removes a user by identifier. Posts authored by the user are
// kept; their authorId dangles by design.
func (s *IdentityService) DeleteUser(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return models.NewValidationError("invalid user ID format")
	}

	res := s.db.Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return models.NewStoreError("failed to delete user", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("user")
	}
	return nil
}

// BootstrapAdmins promotes existing users whose username is configured as an
// admin. Run once at startup; there is no API path that grants admin.
func (s *IdentityService) BootstrapAdmins() error {
	if len(s.adminUsernames) == 0 {
		return nil
	}
	if err := s.db.Model(&models.User{}).
		Where("username IN ?", s.adminUsernames).
		Where("is_admin = ?", false).
		Update("is_admin", true).Error; err != nil {
		return models.NewStoreError("failed to bootstrap admins", err)
	}
	return nil
}

// isBootstrapAdmin compares exactly: usernames are case-sensitive distinct
// identities, and a case variant of a configured admin must not be promoted.
func (s *IdentityService) isBootstrapAdmin(username string) bool {
	for _, u := range s.adminUsernames {
		if strings.TrimSpace(u) == username {
			return true
		}
	}
	return false
}
