package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// Cursor points just past the last journal entry of a page.
type Cursor struct {
	Position int    // log index of the last returned entry
	EntryID  string // ID of the last returned entry
}

// EncodeToken creates a base64 encoded token from a cursor.
func EncodeToken(c Cursor) string {
	tokenStr := fmt.Sprintf("%d|%s", c.Position, c.EntryID)
	return base64.RawURLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses the base64 encoded token back into a cursor.
func DecodeToken(token string) (Cursor, error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return Cursor{}, fmt.Errorf("invalid pagination token format (split)")
	}
	pos, err := strconv.Atoi(parts[0])
	if err != nil || pos < 0 {
		return Cursor{}, fmt.Errorf("invalid pagination token format (position)")
	}
	return Cursor{Position: pos, EntryID: parts[1]}, nil
}

// NextStart resolves a cursor against the current ordered IDs and returns the index of the
// first item after it. If the journal shifted since the token was issued, the entry is
// located by ID. ok is false when the entry no longer exists.
func NextStart(ids []string, c Cursor) (start int, ok bool) {
	if c.Position < len(ids) && ids[c.Position] == c.EntryID {
		return c.Position + 1, true
	}
	for i, id := range ids {
		if id == c.EntryID {
			return i + 1, true
		}
	}
	return 0, false
}
