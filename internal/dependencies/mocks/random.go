package mocks

import (
	"strings"

	"github.com/mcoot/folio/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing
type MockRandom struct {
	// HexResults is a queue of results to return from Hex
	HexResults []string
	hexIndex   int

	// TokenResults is a queue of results to return from Token
	TokenResults []string
	tokenIndex   int

	generated int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Hex returns the next queued result, or zeros of the right length if none remaining
func (r *MockRandom) Hex(n int) string {
	if r.hexIndex >= len(r.HexResults) {
		return strings.Repeat("0", 2*n)
	}
	result := r.HexResults[r.hexIndex]
	r.hexIndex++
	return result
}

// Token returns the next queued result, or a counter-based token if none remaining
func (r *MockRandom) Token(n int) string {
	if r.tokenIndex >= len(r.TokenResults) {
		r.generated++
		return "token" + strings.Repeat("x", r.generated)
	}
	result := r.TokenResults[r.tokenIndex]
	r.tokenIndex++
	return result
}

// QueueHex adds values to the Hex result queue
func (r *MockRandom) QueueHex(values ...string) {
	r.HexResults = append(r.HexResults, values...)
}

// QueueToken adds values to the Token result queue
func (r *MockRandom) QueueToken(values ...string) {
	r.TokenResults = append(r.TokenResults, values...)
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.HexResults = nil
	r.hexIndex = 0
	r.TokenResults = nil
	r.tokenIndex = 0
	r.generated = 0
}
