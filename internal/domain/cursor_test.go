package domain_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/catering-api/internal/domain"
)

func TestEncodeCursor_IsUnpaddedBase64URL(t *testing.T) {
	got := domain.EncodeCursor(12)

	assert.Equal(t, "MTI", got)
	assert.NotContains(t, got, "=")
}

// TestCursor_RoundTrip verifies decode(encode(x)) == x across a spread of ids,
// including ones whose decimal form needs base64 padding.
func TestCursor_RoundTrip(t *testing.T) {
	for _, id := range []int64{0, 1, 9, 10, 12, 99, 100, 1234, 65535, 9999999, 1<<62 + 7} {
		got, ok := domain.DecodeCursor(domain.EncodeCursor(id))
		require.True(t, ok, "id %d should round-trip", id)
		assert.Equal(t, id, got)
	}
}

func TestDecodeCursor_LegacyNumeric(t *testing.T) {
	got, ok := domain.DecodeCursor("42")

	require.True(t, ok)
	assert.Equal(t, int64(42), got)
}

func TestDecodeCursor_AcceptsPaddedToken(t *testing.T) {
	padded := base64.URLEncoding.EncodeToString([]byte("7"))
	require.Contains(t, padded, "=")

	got, ok := domain.DecodeCursor(padded)

	require.True(t, ok)
	assert.Equal(t, int64(7), got)
}

func TestDecodeCursor_Garbage(t *testing.T) {
	cases := map[string]string{
		"empty":             "",
		"whitespace":        "   ",
		"negative":          "-5",
		"not base64":        "%%%###",
		"base64 of letters": base64.RawURLEncoding.EncodeToString([]byte("abc")),
		"base64 of blank":   base64.RawURLEncoding.EncodeToString([]byte("  ")),
		"overflow":          "99999999999999999999999",
		"mixed":             "12abc",
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				_, ok := domain.DecodeCursor(token)
				assert.False(t, ok)
			})
		})
	}
}

func TestEncodeCursorOrNil(t *testing.T) {
	assert.Nil(t, domain.EncodeCursorOrNil(nil))

	id := int64(12)
	got := domain.EncodeCursorOrNil(&id)
	require.NotNil(t, got)
	assert.Equal(t, domain.EncodeCursor(12), *got)
}
