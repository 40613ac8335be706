package pagination

import (
	"encoding/base64"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
)

// Cursor is the ordering key of the last row of a feed page. The feed is
// ordered by (create_datetime DESC, id DESC); id breaks timestamp ties so
// the order is total.
type Cursor struct {
	CreateDatetime time.Time `json:"createDatetime"`
	Id             uuid.UUID `json:"id"`
}

// Encode produces the opaque page token for a cursor. The encoding is
// deterministic: the same ordering key always yields the same token, so a
// retried load-more carries an identical cursor.
func Encode(cursor Cursor) (string, error) {
	b, err := sonic.Marshal(cursor)
	if err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Decode parses a page token. A malformed or foreign token is not an
// error: it returns (zero, false) and the caller paginates from the top.
func Decode(token string) (Cursor, bool) {
	var cursor Cursor

	if token == "" {
		return cursor, false
	}

	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, false
	}

	err = sonic.Unmarshal(b, &cursor)
	if err != nil {
		return Cursor{}, false
	}

	if cursor.Id == uuid.Nil || cursor.CreateDatetime.IsZero() {
		return Cursor{}, false
	}

	return cursor, true
}
