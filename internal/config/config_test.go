package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every lookup at an empty temp dir and clears provider keys.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_STATE_HOME", dir)
	for _, k := range []string{
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"GRAVIT_LLM_PROVIDER", "GRAVIT_ANTHROPIC_API_KEY", "GRAVIT_OPENAI_API_KEY",
		"GRAVIT_GEMINI_API_KEY", "GRAVIT_OPENROUTER_API_KEY",
		"GRAVIT_DB_PATH", "GRAVIT_PERSIST_URL", "GRAVIT_CALC_STREAM",
	} {
		t.Setenv(k, "")
	}
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(Options{})
	require.NoError(t, err)

	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.False(t, cfg.Discovered)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 3, cfg.LLM.Retry.MaxAttempts)
	assert.Equal(t, "claude-haiku", cfg.LLM.Anthropic.Model)
	assert.False(t, cfg.Calc.Stream)
	assert.True(t, cfg.Quiz.RefetchOnEnter)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
	assert.Equal(t, 30, cfg.Server.RateLimit)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Console)
}

func TestLoadEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("GRAVIT_LLM_PROVIDER", "openai")
	t.Setenv("GRAVIT_OPENAI_API_KEY", "sk-test")
	t.Setenv("GRAVIT_DB_PATH", "/tmp/g.db")
	t.Setenv("GRAVIT_PERSIST_URL", "http://localhost:9000/api/db/gravitdam")
	t.Setenv("GRAVIT_CALC_STREAM", "true")

	cfg, err := Load(Options{})
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.OpenAI.APIKey)
	assert.Equal(t, "/tmp/g.db", cfg.DB.Path)
	assert.Equal(t, "http://localhost:9000/api/db/gravitdam", cfg.Persist.URL)
	assert.True(t, cfg.Calc.Stream)
	assert.NoError(t, cfg.LLM.Validate())
}

func TestLoadDiscoversStandardKeys(t *testing.T) {
	isolate(t)
	t.Setenv("OPENROUTER_API_KEY", "or-key")

	cfg, err := Load(Options{})
	require.NoError(t, err)

	assert.True(t, cfg.Discovered)
	assert.Equal(t, "openrouter", cfg.LLM.Provider)
	assert.Equal(t, "or-key", cfg.LLM.OpenRouter.APIKey)
}

func TestLoadExplicitProviderSkipsDiscovery(t *testing.T) {
	isolate(t)
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("GRAVIT_LLM_PROVIDER", "mock")

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, "mock", cfg.LLM.Provider)
	assert.False(t, cfg.Discovered)
}

func TestLoadConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
llm:
  provider: gemini
  gemini:
    api_key: file-key
    model: gemini-pro
  timeout: 30s
calc:
  stream: true
quiz:
  refetch_on_enter: false
server:
  rate_limit: 5
`), 0o644))

	cfg, err := Load(Options{ConfigFile: path})
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "file-key", cfg.LLM.Gemini.APIKey)
	assert.Equal(t, "gemini-pro", cfg.LLM.Gemini.Model)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.True(t, cfg.Calc.Stream)
	assert.False(t, cfg.Quiz.RefetchOnEnter)
	assert.Equal(t, 5, cfg.Server.RateLimit)
	assert.Equal(t, time.Minute, cfg.Server.RateWindow)
}

func TestLoadDefaultConfigLocation(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "gravitdam"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gravitdam", "config.yaml"),
		[]byte("llm:\n  provider: mock\n"), 0o644))

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, "mock", cfg.LLM.Provider)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	dir := isolate(t)
	_, err := Load(Options{ConfigFile: filepath.Join(dir, "nope.yaml")})
	assert.Error(t, err)
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	isolate(t)
	t.Setenv("GRAVIT_LLM_PROVIDER", "openai")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("provider", "", "")
	fs.String("db", "", "")
	fs.Bool("stream", false, "")
	fs.String("addr", "", "")
	require.NoError(t, fs.Parse([]string{"--provider", "mock", "--stream"}))

	cfg, err := Load(Options{Flags: fs})
	require.NoError(t, err)

	assert.Equal(t, "mock", cfg.LLM.Provider)
	assert.True(t, cfg.Calc.Stream)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr, "unset flags keep the default")
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("GRAVIT_ANTHROPIC_API_KEY=from-dotenv\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("GRAVIT_ANTHROPIC_API_KEY") })
	os.Unsetenv("GRAVIT_ANTHROPIC_API_KEY")

	cfg, err := Load(Options{DotEnv: envFile})
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.LLM.Anthropic.APIKey)

	_, err = Load(Options{DotEnv: filepath.Join(dir, "missing.env")})
	assert.NoError(t, err, "a missing .env is ignored")
}
