package usecase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateUsername(t *testing.T) {
	t.Run("lowercases and trims", func(t *testing.T) {
		username, err := validateUsername("  Alice_99 ")
		require.NoError(t, err)
		require.Equal(t, "alice_99", username)
	})

	t.Run("rejects short", func(t *testing.T) {
		_, err := validateUsername("ab")
		requireValidationParam(t, err, "username")
	})

	t.Run("rejects long", func(t *testing.T) {
		_, err := validateUsername(strings.Repeat("a", 51))
		requireValidationParam(t, err, "username")
	})

	t.Run("rejects disallowed characters", func(t *testing.T) {
		for _, username := range []string{"has space", "has-dash", "has.dot", "émile"} {
			_, err := validateUsername(username)
			requireValidationParam(t, err, "username")
		}
	})
}

func TestValidatePassword(t *testing.T) {
	require.NoError(t, validatePassword("password123"))

	requireValidationParam(t, validatePassword(""), "password")
	requireValidationParam(t, validatePassword("short"), "password")
	requireValidationParam(t, validatePassword(strings.Repeat("p", 73)), "password")
}
