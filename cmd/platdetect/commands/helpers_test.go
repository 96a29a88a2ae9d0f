package commands

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/platdetect/internal/logging"
)

const testConfig = `platforms:
  nodejs:
    default_version: "12.2.0"
    supported_versions: ["12.2.0", "14.1.0", "14.3.0", "16.0.0"]
  python:
    default_version: "3.7.1"
    supported_versions: ["2.7.17", "3.7.1", "3.8.2"]
`

// resetFlags restores every package-level flag variable to its default.
func resetFlags() {
	verbosity = 0
	quiet = false
	logFormat = "text"
	logFile = ""
	colorFlag = "auto"
	colorMode = logging.ColorAuto
	configPath = ""
	envFile = ""
	timeout = 0
	metricsFile = ""
	traceEnabled = false

	detectAll = false
	detectPlatform = ""
	detectPlatformVersion = ""
	detectJSON = false
	detectOutput = ""

	versionsJSON = false
	versionsSelect = false

	genDocDir = ""
	genDocFormat = "markdown"
}

// isolate points config discovery at an empty temp dir and returns a config
// file written there.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PLATDETECT_CONFIG_DIR", dir)
	t.Setenv("NO_COLOR", "1")
	t.Chdir(dir)

	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(testConfig), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

// writeTree creates files under a new temp dir and returns it.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	setContext(t, rootCmd)

	err := rootCmd.Execute()
	return out.String(), err
}

// setContext gives every command the test context. Cobra keeps a child's
// context across executions once it has been set.
func setContext(t *testing.T, c *cobra.Command) {
	c.SetContext(t.Context())
	for _, child := range c.Commands() {
		setContext(t, child)
	}
}
