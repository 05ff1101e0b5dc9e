package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runSync(t *testing.T, dir string, flags ConvertFlags) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunSync(&buf, newLogger(io.Discard, false), dir, flags))
	return buf.String()
}

func writeFeature(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestSync_ConvertsEveryFeature(t *testing.T) {
	inTempDir(t)
	writeFeature(t, "features/login.feature", loginFeature)
	writeFeature(t, "features/account/signup.feature", "Feature: Signup\nScenario: User signs up\n")
	writeFeature(t, "features/README.md", "not a feature")

	out := runSync(t, "features", ConvertFlags{Package: "acceptance"})

	assert.FileExists(t, filepath.Join("acceptance", "login_test.go"))
	assert.FileExists(t, filepath.Join("acceptance", "signup_test.go"))
	assert.Contains(t, out, "3 added, 0 skipped")
}

func TestSync_FilesInSortedOrder(t *testing.T) {
	inTempDir(t)
	writeFeature(t, "features/b.feature", "Feature: Bravo\nScenario: B\n")
	writeFeature(t, "features/a.feature", "Feature: Alpha\nScenario: A\n")

	out := runSync(t, "features", ConvertFlags{Package: "acceptance"})

	assert.Less(t, strings.Index(out, "alpha_test.go"), strings.Index(out, "bravo_test.go"))
}

func TestSync_Idempotent(t *testing.T) {
	inTempDir(t)
	writeFeature(t, "features/login.feature", loginFeature)
	runSync(t, "features", ConvertFlags{Package: "acceptance"})
	before, err := os.ReadFile(filepath.Join("acceptance", "login_test.go"))
	require.NoError(t, err)

	out := runSync(t, "features", ConvertFlags{Package: "acceptance"})

	after, err := os.ReadFile(filepath.Join("acceptance", "login_test.go"))
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
	assert.Contains(t, out, "0 added, 2 skipped")
}

func TestSync_StopsAtParseError(t *testing.T) {
	inTempDir(t)
	writeFeature(t, "features/bad.feature", "Scenario: no header\n")

	err := RunSync(io.Discard, newLogger(io.Discard, false), "features", ConvertFlags{Package: "acceptance"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.feature")
}

func TestSync_MissingDirectory(t *testing.T) {
	inTempDir(t)

	err := RunSync(io.Discard, newLogger(io.Discard, false), "features", ConvertFlags{Package: "acceptance"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scanning features")
}
