package service

import (
	"encoding/base64"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var urlSafe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func TestRandomTokens(t *testing.T) {
	gen := NewRandomTokens(DefaultTokenBytes)

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		tok := gen.Generate()
		require.Regexp(t, urlSafe, tok)
		require.False(t, seen[tok], "token %q generated twice", tok)
		seen[tok] = true

		raw, err := base64.RawURLEncoding.DecodeString(tok)
		require.NoError(t, err)
		require.Len(t, raw, DefaultTokenBytes)
	}
}

func TestRandomTokensEnforcesMinimumEntropy(t *testing.T) {
	tok := NewRandomTokens(4).Generate()

	raw, err := base64.RawURLEncoding.DecodeString(tok)
	require.NoError(t, err)
	assert.Len(t, raw, minTokenBytes)
}
