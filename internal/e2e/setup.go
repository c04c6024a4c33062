//go:build integration

package e2e

import (
	"database/sql"
	"net/http/httptest"
	"testing"

	httpserver "github.com/CareVault-Health/records-service/internal/http"
	"github.com/CareVault-Health/records-service/internal/testutil"
)

// TestServer represents a complete E2E test environment
type TestServer struct {
	Server        *httptest.Server
	DB            *sql.DB
	MockPublisher *testutil.MockPublisher
}

// SetupE2ETest creates a complete test environment for E2E testing
// This includes:
// - Real PostgreSQL database
// - Real HTTP server with all routes
// - Mock RabbitMQ publisher (in-memory only, no real broker calls)
func SetupE2ETest(t *testing.T) *TestServer {
	t.Helper()

	// Setup real database
	db := testutil.SetupTestDB(t)

	// Create mock RabbitMQ publisher
	mockPublisher := testutil.NewMockPublisher()

	// Setup router with real repositories and the mock publisher; metrics
	// are left out so tests do not depend on a meter provider
	router := httpserver.SetupRouter(db, mockPublisher, nil)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestServer{
		Server:        server,
		DB:            db,
		MockPublisher: mockPublisher,
	}
}

// NewClient creates a new HTTP test client for this server
func (ts *TestServer) NewClient() *testutil.HTTPTestClient {
	return testutil.NewHTTPTestClient(ts.Server.URL)
}
