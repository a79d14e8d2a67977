// Package config loads GravIT Dam settings from defaults, an optional YAML
// file, .env, GRAVIT_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gravitdam/gravitdam/internal/llm"
	"github.com/gravitdam/gravitdam/internal/logger"
	"github.com/gravitdam/gravitdam/internal/persist"
)

// EnvPrefix prefixes every environment variable the app reads.
const EnvPrefix = "GRAVIT"

// Config is the full application configuration.
type Config struct {
	LLM     llm.Config           `mapstructure:"llm"`
	DB      DBConfig             `mapstructure:"db"`
	Calc    CalcConfig           `mapstructure:"calc"`
	Quiz    QuizConfig           `mapstructure:"quiz"`
	Persist PersistConfig        `mapstructure:"persist"`
	Server  persist.ServerConfig `mapstructure:"server"`
	Log     logger.Config        `mapstructure:"log"`

	// Discovered is true when the LLM provider was picked from a
	// standard *_API_KEY variable rather than configured explicitly.
	Discovered bool `mapstructure:"-"`
}

type DBConfig struct {
	// Path of the SQLite file. Empty means store.DefaultDBPath.
	Path string `mapstructure:"path"`
}

type CalcConfig struct {
	// Stream selects the streaming calculator.
	Stream bool `mapstructure:"stream"`
}

type QuizConfig struct {
	// RefetchOnEnter fetches a new batch every time the Learn tab is
	// entered. When false a held batch is kept.
	RefetchOnEnter bool `mapstructure:"refetch_on_enter"`
}

type PersistConfig struct {
	// URL of a remote gateway endpoint. Empty means the local store.
	URL string `mapstructure:"url"`
}

// Options tells Load where to look.
type Options struct {
	// ConfigFile is an explicit config path (--config). When empty the
	// default location is tried and a missing file is not an error.
	ConfigFile string

	// DotEnv is the .env file loaded into the environment before reading
	// variables. Missing files are ignored.
	DotEnv string

	// Flags are bound over every other source.
	Flags *pflag.FlagSet
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"provider":  "llm.provider",
	"db":        "db.path",
	"stream":    "calc.stream",
	"log-level": "log.level",
	"addr":      "server.addr",
	"persist":   "persist.url",
}

// envKeys binds nested keys whose variable names do not follow the
// GRAVIT_<SECTION>_<KEY> shape.
var envKeys = map[string]string{
	"llm.anthropic.api_key":  "GRAVIT_ANTHROPIC_API_KEY",
	"llm.openai.api_key":     "GRAVIT_OPENAI_API_KEY",
	"llm.openai.base_url":    "GRAVIT_OPENAI_BASE_URL",
	"llm.gemini.api_key":     "GRAVIT_GEMINI_API_KEY",
	"llm.openrouter.api_key": "GRAVIT_OPENROUTER_API_KEY",
	"llm.anthropic.model":    "GRAVIT_ANTHROPIC_MODEL",
	"llm.openai.model":       "GRAVIT_OPENAI_MODEL",
	"llm.gemini.model":       "GRAVIT_GEMINI_MODEL",
	"llm.openrouter.model":   "GRAVIT_OPENROUTER_MODEL",
}

// DefaultConfigPath resolves $XDG_CONFIG_HOME/gravitdam/config.yaml.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "gravitdam", "config.yaml")
}

// Load builds the configuration.
func Load(opts Options) (*Config, error) {
	if opts.DotEnv != "" {
		if err := godotenv.Load(opts.DotEnv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", opts.DotEnv, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if err := readConfigFile(v, opts.ConfigFile); err != nil {
		return nil, err
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind --%s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.LLM.Provider == "" {
		if found, ok := llm.DiscoverConfig(cfg.LLM); ok {
			cfg.LLM = found
			cfg.Discovered = true
		} else {
			cfg.LLM.Provider = llm.DefaultConfig().Provider
		}
	}

	return &cfg, nil
}

func readConfigFile(v *viper.Viper, explicit string) error {
	path := explicit
	if path == "" {
		path = DefaultConfigPath()
		if path == "" {
			return nil
		}
		if _, err := os.Stat(path); err != nil {
			return nil
		}
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// setDefaults registers every key so AutomaticEnv can see it during
// Unmarshal. llm.provider is left unset so key discovery can run.
func setDefaults(v *viper.Viper) {
	d := llm.DefaultConfig()
	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", d.Anthropic.Model)
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", d.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", d.Gemini.Model)
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", d.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")
	v.SetDefault("llm.retry.max_attempts", d.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.Retry.Multiplier)
	v.SetDefault("llm.timeout", d.Timeout)
	v.SetDefault("llm.max_tokens", d.MaxTokens)

	v.SetDefault("db.path", "")
	v.SetDefault("calc.stream", false)
	v.SetDefault("quiz.refetch_on_enter", true)
	v.SetDefault("persist.url", "")

	s := persist.DefaultServerConfig()
	v.SetDefault("server.addr", s.Addr)
	v.SetDefault("server.rate_limit", s.RateLimit)
	v.SetDefault("server.rate_window", s.RateWindow)

	l := logger.DefaultConfig()
	v.SetDefault("log.level", l.Level)
	v.SetDefault("log.file", l.File)
	v.SetDefault("log.max_size_mb", l.MaxSizeMB)
	v.SetDefault("log.max_backups", l.MaxBackups)
	v.SetDefault("log.max_age_days", l.MaxAgeDays)
	v.SetDefault("log.console", false)
}
