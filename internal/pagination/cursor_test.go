package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	original := Cursor{
		CreateDatetime: time.Date(2025, 6, 1, 12, 30, 45, 123456000, time.UTC),
		Id:             uuid.New(),
	}

	token, err := Encode(original)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	decoded, ok := Decode(token)
	require.True(t, ok)
	require.Equal(t, original.Id, decoded.Id)
	require.True(t, original.CreateDatetime.Equal(decoded.CreateDatetime))
}

func TestCursorEncodeIsDeterministic(t *testing.T) {
	cursor := Cursor{
		CreateDatetime: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Id:             uuid.MustParse("c0a80101-0000-4000-8000-000000000001"),
	}

	first, err := Encode(cursor)
	require.NoError(t, err)

	second, err := Encode(cursor)
	require.NoError(t, err)

	require.Equal(t, first, second, "same page boundary must always yield the same token")
}

func TestCursorDecodeGarbageNeverPanics(t *testing.T) {
	garbage := []string{
		"",
		"not-base64!!!",
		base64.RawURLEncoding.EncodeToString([]byte("not json")),
		base64.RawURLEncoding.EncodeToString([]byte(`{"createDatetime":"nope","id":42}`)),
		base64.RawURLEncoding.EncodeToString([]byte(`{}`)),
		base64.RawURLEncoding.EncodeToString([]byte(`{"createDatetime":"2025-06-01T12:00:00Z"}`)),
		"AAAA",
	}

	for _, token := range garbage {
		decoded, ok := Decode(token)
		require.False(t, ok, "token %q should not decode", token)
		require.Equal(t, Cursor{}, decoded)
	}
}

func TestCursorDecodeRejectsZeroKey(t *testing.T) {
	token, err := Encode(Cursor{})
	require.NoError(t, err)

	_, ok := Decode(token)
	require.False(t, ok, "a cursor without an ordering key is not resumable")
}
