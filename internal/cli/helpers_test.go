package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/vvka-141/buildmeta/pkg/buildmeta"
)

var buildTime = time.Date(2006, 12, 23, 14, 5, 9, 0, time.UTC)

const testPom = `<project>
  <properties>
    <build.number.current>41</build.number.current>
  </properties>
</project>
`

func resetFlags() {
	updateDescFlags = descriptorFlags{}
	updateFlags = updateFlagValues{}
	showDescFlags = descriptorFlags{}
	showJSON = false
	initForce = false
}

// setupCLITest isolates a test from flag state, BUILDMETA_* variables and the clock.
func setupCLITest(t *testing.T) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	t.Setenv(buildmeta.EnvUpdater, "")
	t.Setenv(buildmeta.EnvBuildNumber, "")
	t.Setenv("CI", "true")

	original := clock
	clock = func() time.Time { return buildTime }
	t.Cleanup(func() { clock = original })
}

// unsetEnv removes key for the duration of the test so that .env files can set it.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("Failed to unset %s: %v", key, err)
	}
}

func runCommand(t *testing.T, cmd *cobra.Command, run func(*cobra.Command, []string) error, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	t.Cleanup(func() {
		cmd.SetOut(nil)
		cmd.SetErr(nil)
	})
	err := run(cmd, args)
	return out.String(), errOut.String(), err
}

func createTestProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write file: %v", err)
		}
	}
	return dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}
