package domain

import (
	"encoding/base64"
	"strconv"
	"strings"
)

// EncodeCursor turns a row id into the opaque token handed to clients.
// The token is the unpadded base64url encoding of the decimal id.
func EncodeCursor(id int64) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatInt(id, 10)))
}

// EncodeCursorOrNil encodes id, or returns nil when there is no next page.
func EncodeCursorOrNil(id *int64) *string {
	if id == nil {
		return nil
	}
	s := EncodeCursor(*id)
	return &s
}

// DecodeCursor reverses EncodeCursor. A bare non-negative decimal string is
// accepted as-is for clients still sending legacy numeric cursors.
// ok is false for anything else; callers fall back to the first page.
func DecodeCursor(token string) (id int64, ok bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, false
	}
	if isDigits(token) {
		return parseID(token)
	}

	// Accept padded tokens too; RawURLEncoding rejects '='.
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(token, "="))
	if err != nil {
		return 0, false
	}
	decoded := strings.TrimSpace(string(raw))
	if !isDigits(decoded) {
		return 0, false
	}
	return parseID(decoded)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// parseID rejects values that overflow int64 instead of wrapping them.
func parseID(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
