package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every bound variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range envBindings {
		t.Setenv(env, "")
		os.Unsetenv(env)
	}
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_API_KEY", "key")

	cfg, err := load("", "")
	require.NoError(t, err)
	assert.Equal(t, 3010, cfg.Port)
	assert.Equal(t, "key", cfg.APIKey)
	assert.Equal(t, "gemini-1.5-flash", cfg.Model)
	assert.Equal(t, []string{"http://localhost:5173", "https://7862ai.netlify.app"}, cfg.AllowedOrigins)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":3010", cfg.ListenAddress())
}

func TestLoadRequiresAPIKey(t *testing.T) {
	clearEnv(t)

	_, err := load("", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api_key is required")
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_API_KEY", "key")
	t.Setenv("PORT", "8081")
	t.Setenv("GEMINI_MODEL", "gemini-2.0-flash")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("REQUEST_TIMEOUT", "5s")

	cfg, err := load("", "")
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, "gemini-2.0-flash", cfg.Model)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
}

func TestEnvironmentOverridesConfigFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "relay.yaml", "port: 9000\napi_key: from-file\nlog_level: debug\n")
	t.Setenv("GOOGLE_API_KEY", "from-env")

	cfg, err := load(path, "")
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "from-env", cfg.APIKey)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestMissingConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_API_KEY", "key")

	_, err := load(filepath.Join(t.TempDir(), "missing.yaml"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestDotEnvFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "relay.env", "GOOGLE_API_KEY=dotenv-key\nPORT=4000\n")
	t.Setenv("PORT", "5000")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "dotenv-key", cfg.APIKey)
	// The real environment wins over the file.
	assert.Equal(t, 5000, cfg.Port)
}

func TestDotEnvInWorkingDirectory(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DotEnvFile), []byte("GOOGLE_API_KEY=cwd-key\nGEMINI_MODEL=gemini-2.0-flash\n"), 0o600))
	t.Chdir(dir)

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "cwd-key", cfg.APIKey)
	assert.Equal(t, "gemini-2.0-flash", cfg.Model)
	assert.Equal(t, 3010, cfg.Port)
}

func TestMissingDotEnvIsIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_API_KEY", "key")

	_, err := load("", filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_API_KEY", "key")

	t.Setenv("PORT", "70000")
	_, err := load("", "")
	assert.Error(t, err)

	t.Setenv("PORT", "3010")
	t.Setenv("REQUEST_TIMEOUT", "-1s")
	_, err = load("", "")
	assert.Error(t, err)
}

func TestParseArgs(t *testing.T) {
	oldArgs, oldCli := os.Args, CliArgs
	t.Cleanup(func() { os.Args, CliArgs = oldArgs, oldCli })

	os.Args = []string{"relay", "-config", "relay.env", "-d", "-v"}
	CliArgs = nil
	ParseArgs()
	require.NotNil(t, CliArgs)
	assert.Equal(t, "relay.env", CliArgs.ConfigFile)
	assert.True(t, CliArgs.Debug)
	assert.True(t, CliArgs.Version)

	assert.Panics(t, ParseArgs, "flags are parsed once")
}

func TestFlagSet(t *testing.T) {
	args := &CliConfig{}
	fs := newFlagSet(args)
	require.NoError(t, fs.Parse([]string{"-config", "relay.yaml", "-debug"}))
	assert.Equal(t, "relay.yaml", args.ConfigFile)
	assert.True(t, args.Debug)
	assert.False(t, args.Version)
}
