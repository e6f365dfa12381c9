package commands

import (
	"log/slog"
	"os"
	"time"

	"github.com/blockmail/composer/internal/cli/config"
	"github.com/blockmail/composer/internal/cli/output"
	sharedcfg "github.com/blockmail/composer/internal/config"
	"github.com/blockmail/composer/pkg/compose"
	_ "github.com/blockmail/composer/pkg/compose/rules" // register composition rules
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the command's loaded config.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to
// environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	return &config.Config{
		Viewport:      getEnvOrDefault("COMPOSER_VIEWPORT", config.DefaultViewport),
		Accessibility: getEnvOrDefault("COMPOSER_ACCESSIBILITY", config.DefaultAccessibility),
		Verbose:       os.Getenv("COMPOSER_VERBOSE") == "true",
		OutputFormat:  os.Getenv("COMPOSER_OUTPUT"),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// newEngine creates a composition engine from the loaded configuration.
func newEngine(cfg *config.Config, logger *slog.Logger) *compose.Engine {
	shared := cfg.Shared()
	return compose.New(compose.Config{
		RuleConfig:    shared.ToRuleConfig(),
		Viewport:      compose.Viewport(shared.Viewport),
		Accessibility: compose.Level(shared.Accessibility),
		Logger:        logger,
		Middlewares: []compose.Middleware{
			compose.LoggingMiddleware(logger),
			compose.PerformanceGuard(logger),
		},
	})
}

// debounceFor returns the configured watch debounce.
func debounceFor(cfg *config.Config) time.Duration {
	return sharedcfg.WatchConfig{DebounceMs: cfg.Watch.DebounceMs}.Debounce()
}
