package uploads

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/folio/internal/dependencies/mocks"
	"github.com/mcoot/folio/internal/dependencies/random"
	"github.com/mcoot/folio/internal/testutil"
)

func newGatekeeper(t *testing.T, rnd random.Random, maxBytes int64) *Gatekeeper {
	t.Helper()
	g, err := New(Config{Dir: filepath.Join(t.TempDir(), "uploads"), MaxBytes: maxBytes}, rnd, testutil.NopLogger())
	require.NoError(t, err)
	return g
}

func dirEntries(t *testing.T, dir string) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return entries
}

func TestNewCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	_, err := New(Config{Dir: dir}, random.New(), testutil.NopLogger())
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewDefaultsMaxBytes(t *testing.T) {
	g := newGatekeeper(t, random.New(), 0)
	assert.Equal(t, DefaultMaxBytes, g.MaxBytes())
}

func TestAllowed(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"photo.png", true},
		{"photo.PNG", true},
		{"photo.jpg", true},
		{"photo.JpEg", true},
		{"anim.gif", true},
		{"doc.pdf", false},
		{"script.png.exe", false},
		{"noextension", false},
		{"", false},
		{"trailingdot.", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.filename))
		})
	}
}

func TestAcceptStoresUnderRandomName(t *testing.T) {
	rnd := mocks.NewMockRandom()
	rnd.QueueHex("0123456789abcdef")
	g := newGatekeeper(t, rnd, 0)

	stored, err := g.Accept("My Photo.PNG", strings.NewReader("imagedata"))
	require.NoError(t, err)
	assert.Equal(t, "0123456789abcdef.PNG", stored)

	data, err := os.ReadFile(filepath.Join(g.Dir(), stored))
	require.NoError(t, err)
	assert.Equal(t, "imagedata", string(data))
}

func TestAcceptRealRandomNameFormat(t *testing.T) {
	g := newGatekeeper(t, random.New(), 0)

	stored, err := g.Accept("shot.jpeg", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{16}\.jpeg$`), stored)
}

func TestAcceptRejectsUnsupportedType(t *testing.T) {
	g := newGatekeeper(t, random.New(), 0)

	_, err := g.Accept("notes.txt", strings.NewReader("hello"))
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.Empty(t, dirEntries(t, g.Dir()))
}

func TestAcceptRejectsOversizedBeforeWriting(t *testing.T) {
	g := newGatekeeper(t, random.New(), 10)

	_, err := g.Accept("big.png", bytes.NewReader(make([]byte, 11)))
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.Empty(t, dirEntries(t, g.Dir()))
}

func TestAcceptExactlyAtLimit(t *testing.T) {
	g := newGatekeeper(t, random.New(), 10)

	_, err := g.Accept("fits.gif", bytes.NewReader(make([]byte, 10)))
	assert.NoError(t, err)
	assert.Len(t, dirEntries(t, g.Dir()), 1)
}

func TestDiscardRemovesStoredFile(t *testing.T) {
	g := newGatekeeper(t, random.New(), 0)

	stored, err := g.Accept("shot.png", strings.NewReader("x"))
	require.NoError(t, err)
	require.Len(t, dirEntries(t, g.Dir()), 1)

	require.NoError(t, g.Discard(stored))
	assert.Empty(t, dirEntries(t, g.Dir()))

	// already gone
	assert.NoError(t, g.Discard(stored))
}

func TestDiscardIgnoresPathsOutsideDir(t *testing.T) {
	g := newGatekeeper(t, random.New(), 0)
	outside := filepath.Join(filepath.Dir(g.Dir()), "keep.png")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))

	assert.NoError(t, g.Discard("../keep.png"))
	assert.NoError(t, g.Discard(""))

	_, err := os.Stat(outside)
	assert.NoError(t, err)
}
