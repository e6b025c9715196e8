package integration_test

import (
	"os"
	"sync"
	"testing"

	"trailbook_backend/test/helpers"
)

var (
	globalTestServer *helpers.TestServer
	serverOnce       sync.Once
)

// GetTestServer lazily starts the shared server. Tests that reach it are
// skipped entirely when TEST_DATABASE_URL is not set.
func GetTestServer(t *testing.T) *helpers.TestServer {
	testDSN := os.Getenv("TEST_DATABASE_URL")
	if testDSN == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration tests")
	}

	serverOnce.Do(func() {
		os.Setenv("DATABASE_URL", testDSN)
		os.Setenv("SERVER_ENV", "test")

		globalTestServer = helpers.NewTestServer(t)
		globalTestServer.ClearTables(t)
	})
	return globalTestServer
}

func TestMain(m *testing.M) {
	code := m.Run()

	if globalTestServer != nil {
		globalTestServer.Close()
	}
	os.Exit(code)
}
