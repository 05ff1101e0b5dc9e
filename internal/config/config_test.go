package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/gherkinstub/internal/naming"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ".", cfg.Location)
	assert.Equal(t, "snake", cfg.MethodFormat)
}

func TestLoad_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`location: src
package: acceptance.login
method_format: Camel
strict_names: true
`), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Location:     "src",
		Package:      "acceptance.login",
		MethodFormat: "Camel",
		StrictNames:  true,
	}, cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("package: acceptance\n"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.Location)
	assert.Equal(t, "snake", cfg.MethodFormat)
	assert.Equal(t, "acceptance", cfg.Package)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("location: [\n"), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), FileName)
}

func TestSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{Location: "pkg", Package: "a.b", MethodFormat: "snake"}

	require.NoError(t, Save(dir, cfg))
	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate_MissingPackage(t *testing.T) {
	err := Default().Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "package is required")
}

func TestValidate_BadMethodFormat(t *testing.T) {
	cfg := &Config{Location: ".", Package: "a", MethodFormat: "kebab"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `method_format "kebab" must be camel or snake`)
}

func TestValidate_BadPackage(t *testing.T) {
	for _, pkg := range []string{"a..b", "a.b-c", "1a"} {
		cfg := &Config{Location: ".", Package: pkg, MethodFormat: "snake"}
		err := cfg.Validate()
		require.Error(t, err, pkg)
		assert.Contains(t, err.Error(), "must be dot separated Go identifiers")
	}
}

func TestValidate_ReportsAllFailures(t *testing.T) {
	cfg := &Config{MethodFormat: "kebab"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "location is required")
	assert.Contains(t, err.Error(), "package is required")
	assert.Contains(t, err.Error(), "method_format")
}

func TestConverterOptions(t *testing.T) {
	cfg := &Config{Location: "src", Package: "a.b", MethodFormat: "CAMEL", StrictNames: true}

	opts, err := cfg.ConverterOptions()
	require.NoError(t, err)
	assert.Equal(t, "src", opts.Location)
	assert.Equal(t, "a.b", opts.PackageName)
	assert.Equal(t, naming.CamelCase, opts.Convention)
	assert.True(t, opts.StrictNames)
}

func TestConverterOptions_Invalid(t *testing.T) {
	_, err := Default().ConverterOptions()
	require.Error(t, err)
}

func TestMustRegister_PanicsOnBadTag(t *testing.T) {
	assert.Panics(t, func() {
		mustRegister(validator.New(), "", func(validator.FieldLevel) bool { return true })
	})
}

func TestNewValidator_CustomTagsRegistered(t *testing.T) {
	assert.NotPanics(t, func() { newValidator() })
}
