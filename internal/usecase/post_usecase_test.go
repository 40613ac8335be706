package usecase

import (
	"strings"
	"testing"

	"github.com/oladokun-o/Micro-Feed/internal/model"

	"github.com/stretchr/testify/require"
)

func TestValidateContent(t *testing.T) {
	t.Run("trims surrounding whitespace", func(t *testing.T) {
		content, err := validateContent("  hello  ")
		require.NoError(t, err)
		require.Equal(t, "hello", content)
	})

	t.Run("rejects empty", func(t *testing.T) {
		_, err := validateContent("")
		requireValidationParam(t, err, "content")
	})

	t.Run("rejects whitespace only", func(t *testing.T) {
		_, err := validateContent("   \n\t ")
		requireValidationParam(t, err, "content")
	})

	t.Run("accepts exactly 280 runes", func(t *testing.T) {
		content, err := validateContent(strings.Repeat("x", 280))
		require.NoError(t, err)
		require.Len(t, []rune(content), 280)
	})

	t.Run("rejects 281 runes", func(t *testing.T) {
		_, err := validateContent(strings.Repeat("x", 281))
		requireValidationParam(t, err, "content")
	})

	t.Run("counts runes not bytes", func(t *testing.T) {
		// 280 multibyte characters are fine even though the byte count
		// is far beyond 280.
		content, err := validateContent(strings.Repeat("ä", 280))
		require.NoError(t, err)
		require.Len(t, []rune(content), 280)
	})
}

func TestClampLimit(t *testing.T) {
	require.Equal(t, 10, clampLimit(0), "zero falls back to the default")
	require.Equal(t, 1, clampLimit(-5))
	require.Equal(t, 1, clampLimit(1))
	require.Equal(t, 25, clampLimit(25))
	require.Equal(t, 50, clampLimit(50))
	require.Equal(t, 50, clampLimit(500))
}

func requireValidationParam(t *testing.T, err error, param string) {
	t.Helper()

	require.Error(t, err)
	var validationErr *model.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, param, validationErr.Param)
}
