package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quantumrishi/rishi/internal/config"
	"github.com/quantumrishi/rishi/internal/llm"
	"github.com/quantumrishi/rishi/internal/logger"
	"github.com/quantumrishi/rishi/internal/store"
)

// runtime holds what every command that talks to a model needs.
type runtime struct {
	cfg      *config.Config
	log      *logger.Logger
	store    *store.Store
	provider llm.StreamProvider
}

// logTarget selects where a command's logs go.
type logTarget int

const (
	// logQuiet writes to RISHI_LOG_FILE when set and discards otherwise, so
	// the terminal is left to the command's own output.
	logQuiet logTarget = iota
	// logConsole writes to RISHI_LOG_FILE or stderr.
	logConsole
)

// loadConfig reads the dotenv file named by --env-file and the environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}
	return config.Load()
}

func newRuntime(cmd *cobra.Command, target logTarget) (*runtime, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	log := logger.Nop()
	if target == logConsole || cfg.LogFile != "" {
		log, err = logger.New(cfg.LogMode, cfg.LogFile)
		if err != nil {
			return nil, fmt.Errorf("create logger: %w", err)
		}
	}

	rt := &runtime{cfg: cfg, log: log}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	eventRepo := store.NopEventRepo()
	if dbPath != "" {
		rt.store, err = store.Open(dbPath)
		if err != nil {
			return nil, fmt.Errorf("open event log: %w", err)
		}
		eventRepo = rt.store.EventRepo()
		log.Debug("LLM event log enabled", "path", dbPath)
	}

	rt.provider, err = llm.NewProvider(cfg.LLM, eventRepo, log)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("create LLM provider: %w", err)
	}
	log.Info("LLM provider ready", "provider", cfg.LLM.Provider, "model", rt.provider.ModelID())

	return rt, nil
}

func (rt *runtime) Close() {
	if rt.store != nil {
		if err := rt.store.Close(); err != nil {
			rt.log.Warn("close event log", "err", err)
		}
	}
	rt.log.Sync()
}

// resolveDBPath returns the event log path using --db (highest priority),
// then RISHI_DB. An empty path disables the log.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	p, _ := cmd.Flags().GetString("db")
	if p == "" && cfg != nil {
		p = cfg.DBPath
	}
	return store.ResolveDBPath(p)
}
