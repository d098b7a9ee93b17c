package identity

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/salesreport/backend/internal/domain/shared"
)

func TestNewUser(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	t.Run("hashes password with the configured cost", func(t *testing.T) {
		user, err := NewUser(" alice ", "secret1", now)
		require.NoError(t, err)

		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, now, user.CreatedAt)
		assert.NotEqual(t, "secret1", user.PasswordHash)

		cost, err := bcrypt.Cost([]byte(user.PasswordHash))
		require.NoError(t, err)
		assert.Equal(t, BcryptCost, cost)
		assert.True(t, user.VerifyPassword("secret1"))
		assert.False(t, user.VerifyPassword("secret2"))
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		cases := map[string][2]string{
			"empty username":  {"", "secret1"},
			"bad characters":  {"bob smith", "secret1"},
			"short password":  {"bob", "123"},
			"password > 72 B": {"bob", strings.Repeat("x", 73)},
		}
		for name, c := range cases {
			t.Run(name, func(t *testing.T) {
				_, err := NewUser(c[0], c[1], now)
				assert.ErrorIs(t, err, shared.ErrInvalidInput)
			})
		}
	})
}
