package uploads

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mcoot/folio/internal/dependencies/random"
)

// Errors
var (
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrTooLarge        = errors.New("upload exceeds maximum size")
)

// DefaultMaxBytes is the default upload limit (2 MiB)
const DefaultMaxBytes int64 = 2 << 20

// allowedExtensions are compared lowercase, without the dot
var allowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
}

// Config holds configuration for the upload gatekeeper
type Config struct {
	// Dir is where accepted files are written. Created if missing.
	Dir string
	// MaxBytes is the largest accepted payload. Zero uses DefaultMaxBytes.
	MaxBytes int64
}

// Gatekeeper validates incoming images and stores them under random names
type Gatekeeper struct {
	dir      string
	maxBytes int64
	random   random.Random
	logger   *slog.Logger
}

// New creates a Gatekeeper, creating the upload directory if needed
func New(cfg Config, rnd random.Random, logger *slog.Logger) (*Gatekeeper, error) {
	if cfg.Dir == "" {
		return nil, errors.New("upload directory is required")
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Gatekeeper{
		dir:      cfg.Dir,
		maxBytes: cfg.MaxBytes,
		random:   rnd,
		logger:   logger.With(slog.String("component", "upload-gatekeeper")),
	}, nil
}

// Dir returns the directory uploads are written to
func (g *Gatekeeper) Dir() string {
	return g.dir
}

// MaxBytes returns the configured upload limit
func (g *Gatekeeper) MaxBytes() int64 {
	return g.maxBytes
}

// Allowed reports whether filename carries an accepted image extension
func Allowed(filename string) bool {
	ext := filepath.Ext(filepath.Base(filename))
	if ext == "" {
		return false
	}
	return allowedExtensions[strings.ToLower(ext[1:])]
}

// Accept validates filename and content, writes the file, and returns the
// stored name: 16 hex characters followed by the original extension.
// Nothing is written when validation fails.
func (g *Gatekeeper) Accept(filename string, r io.Reader) (string, error) {
	if !Allowed(filename) {
		return "", ErrUnsupportedType
	}

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r, g.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if n > g.maxBytes {
		return "", ErrTooLarge
	}

	stored := g.random.Hex(8) + filepath.Ext(filepath.Base(filename))
	if err := os.WriteFile(filepath.Join(g.dir, stored), buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	g.logger.Info("upload stored",
		slog.String("original", filepath.Base(filename)),
		slog.String("stored", stored),
		slog.Int64("bytes", n),
	)
	return stored, nil
}

// Discard removes a file previously returned by Accept. Names that are
// empty or reach outside the upload directory are ignored.
func (g *Gatekeeper) Discard(stored string) error {
	if stored == "" || stored != filepath.Base(stored) {
		return nil
	}
	if err := os.Remove(filepath.Join(g.dir, stored)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("discard upload: %w", err)
	}
	g.logger.Info("upload discarded", slog.String("stored", stored))
	return nil
}
