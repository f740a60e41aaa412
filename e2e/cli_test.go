package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wsentinels/sentinelchat/internal/api"
	"github.com/wsentinels/sentinelchat/internal/factory"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "sentinelctl-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/sentinelctl")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	// Create temp token file
	tokenFile := filepath.Join(t.TempDir(), "token")

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  tokenFile,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	// Create application
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		Storage:         app.Storage,
		SessionService:  app.SessionService,
		RosterService:   app.RosterService,
		QueryLogService: app.QueryLogService,
		Orchestrator:    app.Orchestrator,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		addr: serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready")
}

func TestCLIFullFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	srv := startTestServer(t)
	defer srv.shutdown()

	cli := newCLIRunner(t, srv.addr)

	// Health check
	out, err := cli.run("health")
	require.NoError(t, err, out)
	assert.Contains(t, out, `"status": "ok"`)

	// Begin a session; token is persisted to the token file
	out, err = cli.run("session", "begin")
	require.NoError(t, err, out)

	var begin struct {
		Session struct {
			Phase string `json:"phase"`
		} `json:"session"`
		Token string   `json:"token"`
		Roles []string `json:"roles"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &begin))
	assert.Equal(t, "login", begin.Session.Phase)
	assert.Len(t, begin.Roles, 5)
	assert.True(t, strings.HasPrefix(begin.Token, "sess_"))

	// Login as the physician
	out, err = cli.run("session", "login", "--user", "kkitching", "--role", "Team Physician", "--pass", "x")
	require.NoError(t, err, out)
	assert.Contains(t, out, `"phase": "mfa"`)

	// A malformed code is rejected
	out, err = cli.run("session", "verify", "--code", "12345")
	require.Error(t, err)
	assert.Contains(t, out, "MALFORMED_CODE")

	// Any 6 digits pass
	out, err = cli.run("session", "verify", "--code", "123456")
	require.NoError(t, err, out)
	assert.Contains(t, out, `"phase": "dashboard"`)

	// Ask for the injury report
	out, err = cli.run("ask", "List", "all", "injuries")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Marcus Reed")
	assert.Contains(t, out, "Nate Dawson")

	// The question is in the query log
	out, err = cli.run("queries", "list")
	require.NoError(t, err, out)
	assert.Contains(t, out, "List all injuries")
	assert.Contains(t, out, `"status": "new"`)

	// Review the tail entry
	out, err = cli.run("queries", "review", "--status", "reviewed", "--note", "seen")
	require.NoError(t, err, out)
	assert.Contains(t, out, `"status": "reviewed"`)

	// Update a player as physician
	out, err = cli.run("roster", "update", "--index", "0", "--injury", "Shoulder strain (improving)", "--status", "Full throws Wednesday")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Shoulder strain (improving)")

	// Roster reflects the change
	out, err = cli.run("roster", "list")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Full throws Wednesday")
}

func TestCLICoachCannotUpdateRoster(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	srv := startTestServer(t)
	defer srv.shutdown()

	cli := newCLIRunner(t, srv.addr)

	out, err := cli.run("session", "begin")
	require.NoError(t, err, out)
	out, err = cli.run("session", "login", "--user", "coach", "--role", "Head Coach", "--pass", "x")
	require.NoError(t, err, out)
	out, err = cli.run("session", "verify", "--code", "654321")
	require.NoError(t, err, out)

	out, err = cli.run("roster", "update", "--index", "0", "--injury", "x", "--status", "y")
	require.Error(t, err)
	assert.Contains(t, out, "ROLE_FORBIDDEN")
}
