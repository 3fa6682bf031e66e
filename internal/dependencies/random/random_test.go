package random

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHexIsFixedLength(t *testing.T) {
	r := New()
	first := r.Hex(8)
	second := r.Hex(8)

	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{16}$`), first)
	assert.NotEqual(t, first, second)
	assert.Empty(t, r.Hex(0))
}

func TestTokenIsURLSafe(t *testing.T) {
	token := New().Token(16)

	assert.Len(t, token, 22)
	assert.Regexp(t, regexp.MustCompile(`^[A-Za-z0-9_-]+$`), token)
}
