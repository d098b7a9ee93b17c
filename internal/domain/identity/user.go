package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/salesreport/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor for stored password hashes
const BcryptCost = 10

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_\-.@]+$`)

// User is an account allowed to upload sheets and generate reports.
type User struct {
	shared.BaseEntity
	Username     string
	PasswordHash string
}

// NewUser validates the credentials and hashes the password
func NewUser(username, password string, now time.Time) (*User, error) {
	username = strings.TrimSpace(username)
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(now),
		Username:     username,
		PasswordHash: string(hash),
	}, nil
}

// VerifyPassword checks password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

func validateUsername(username string) error {
	if username == "" {
		return shared.ErrInvalidInput.WithMessage("Username cannot be empty")
	}
	if len(username) > 100 {
		return shared.ErrInvalidInput.WithMessage("Username cannot exceed 100 characters")
	}
	if !usernamePattern.MatchString(username) {
		return shared.ErrInvalidInput.WithMessage("Username can only contain letters, numbers, underscores, hyphens, dots and @")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return shared.ErrInvalidInput.WithMessage("Password must be at least 6 characters")
	}
	// bcrypt ignores input past 72 bytes
	if len(password) > 72 {
		return shared.ErrInvalidInput.WithMessage("Password cannot exceed 72 bytes")
	}
	return nil
}
