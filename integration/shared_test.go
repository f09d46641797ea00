//go:build integration

package integration

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	// sharedWeektrackPath holds the path to a shared weektrack binary built once for all tests.
	sharedWeektrackPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getWeektrackBinary returns the path to the weektrack binary, building it once if needed.
func getWeektrackBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "weektrack-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		weektrackPath := filepath.Join(tempDir, "weektrack")
		buildCmd := exec.Command("go", "build", "-o", weektrackPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		if err := buildCmd.Run(); err != nil {
			panic(fmt.Sprintf("failed to build weektrack: %v", err))
		}

		sharedWeektrackPath = weektrackPath
	})

	return sharedWeektrackPath
}

// runWeektrack runs the binary in an isolated working directory and home, so
// no user config leaks into the test. env entries override the inherited ones.
func runWeektrack(t *testing.T, env []string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	home := t.TempDir()

	cmd := exec.Command(getWeektrackBinary(), args...)
	cmd.Dir = home
	cmd.Env = append(os.Environ(), "HOME="+home)
	cmd.Env = append(cmd.Env, env...)

	var out, errOut bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errOut
	err = cmd.Run()
	return out.String(), errOut.String(), err
}

// writeTree creates files below root from a relative path -> content map.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}
