package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoomToken(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 64; i++ {
		token, err := newRoomToken()
		require.NoError(t, err)

		// 6 random bytes, base64url, no padding.
		assert.Len(t, token, 8)
		assert.NotContains(t, token, "+")
		assert.NotContains(t, token, "/")
		assert.NotContains(t, token, "=")

		assert.False(t, seen[token], "token collision within a handful of draws")
		seen[token] = true
	}
}
