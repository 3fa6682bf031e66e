package factory

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/folio/internal/dependencies/mocks"
	"github.com/mcoot/folio/internal/dependencies/password"
	"github.com/mcoot/folio/internal/services/auth"
	"github.com/mcoot/folio/internal/services/uploads"
	"github.com/mcoot/folio/internal/storage/memory"
	"github.com/mcoot/folio/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
	Memory     *memory.Storage
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// Uploads are written under uploadDir, typically t.TempDir().
func NewTestApp(uploadDir string) (*TestApp, error) {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	logger := testutil.NopLogger()

	gatekeeper, err := uploads.New(uploads.Config{Dir: uploadDir}, mockRandom, logger)
	if err != nil {
		return nil, err
	}

	app := newWithDependencies(
		store, store, mockClock, mockRandom, password.New(bcrypt.MinCost),
		gatekeeper, auth.DefaultConfig(), logger,
	)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
		Memory:     store,
	}, nil
}
