package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gravitdam/gravitdam/internal/calc"
	"github.com/gravitdam/gravitdam/internal/config"
	"github.com/gravitdam/gravitdam/internal/llm"
	"github.com/gravitdam/gravitdam/internal/logger"
	"github.com/gravitdam/gravitdam/internal/persist"
	"github.com/gravitdam/gravitdam/internal/quiz"
	"github.com/gravitdam/gravitdam/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "gravitdam",
	Short: "Gravity dam calculations and learning",
	Long:  "GravIT Dam: AI-assisted gravity dam stability calculations and exam practice in the terminal.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides GRAVIT_DB_PATH)")
	pf.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/gravitdam/config.yaml)")
	pf.String("provider", "", "LLM provider: anthropic, openai, gemini, openrouter or mock")
	pf.String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// env is the wiring shared by all commands.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *store.Store
}

// setup loads configuration, builds the logger and opens the store.
// console mirrors log output to stderr; the TUI owns the terminal and
// passes false.
func setup(cmd *cobra.Command, console bool) (*env, error) {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.Options{
		ConfigFile: configFile,
		DotEnv:     ".env",
		Flags:      cmd.Flags(),
	})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if console {
		cfg.Log.Console = true
	}

	log, err := logger.New(cfg.Log, nil)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	dbPath, err := resolveDBPath(cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	log.Debug("environment ready",
		zap.String("db", dbPath),
		zap.String("provider", cfg.LLM.Provider),
		zap.Bool("discovered", cfg.Discovered),
	)
	return &env{cfg: cfg, logger: log, store: st}, nil
}

// Close releases the store and flushes the logger.
func (e *env) Close() {
	_ = e.store.Close()
	_ = e.logger.Sync()
}

// resolveDBPath returns the configured path, falling back to the default
// XDG location.
func resolveDBPath(configured string) (string, error) {
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}

// provider builds the LLM provider with retry and audit logging.
func (e *env) provider(ctx context.Context) (llm.Provider, error) {
	return llm.NewProvider(ctx, e.cfg.LLM, e.store.EventRepo(), e.logger)
}

// gateway returns the remote gateway when persist.url is set, otherwise
// one writing straight to the local store.
func (e *env) gateway() persist.Gateway {
	if e.cfg.Persist.URL != "" {
		return persist.NewHTTPGateway(e.cfg.Persist.URL, nil)
	}
	return persist.NewLocalGateway(e.store, nil)
}

func (e *env) calcService(p llm.Provider, stream bool) *calc.Service {
	c := calc.NewCalculator(p, stream, e.cfg.LLM.MaxTokens)
	rec := persist.NewRecorder(e.gateway(), e.logger)
	return calc.NewService(c, rec, e.cfg.LLM.Timeout, e.logger)
}

func (e *env) quizGenerator(p llm.Provider) *quiz.Generator {
	qc := quiz.DefaultConfig()
	qc.Timeout = e.cfg.LLM.Timeout
	return quiz.NewGenerator(p, qc)
}
