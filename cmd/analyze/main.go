package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tw93/dircount/internal/config"
	"github.com/tw93/dircount/internal/count"
	"github.com/tw93/dircount/internal/logging"
	"github.com/tw93/dircount/internal/nav"
	"github.com/tw93/dircount/internal/ui"
)

type flags struct {
	configPath string
	workers    int
	sort       string
	noMouse    bool
	logFile    string
	logLevel   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitError)
	}
	os.Exit(exitOK)
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Browse a directory tree with live per-directory file counts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveRoot(args, os.Getenv)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			return run(cmd.Context(), root, cfg)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVar(&f.configPath, "config", "", "config file (default ~/.config/dircount/config.json)")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "number of concurrent scan workers (0 = based on CPU count)")
	cmd.Flags().StringVar(&f.sort, "sort", "count", "initial sort order: count or name")
	cmd.Flags().BoolVar(&f.noMouse, "no-mouse", false, "disable mouse support")
	cmd.Flags().StringVar(&f.logFile, "log-file", "", "write logs to this file")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	return cmd
}

// resolveRoot picks the starting directory: the argument, then the
// environment, then the working directory.
func resolveRoot(args []string, getenv func(string) string) (string, error) {
	target := ""
	if len(args) > 0 {
		target = args[0]
	}
	if target == "" {
		target = getenv(envPath)
	}
	if target == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("cannot determine working directory: %w", err)
		}
		target = wd
	}
	return count.ValidateRoot(target)
}

// loadConfig merges the config file with any flags set on the command line.
func loadConfig(cmd *cobra.Command, f flags) (*config.Config, error) {
	loader := config.NewLoader()
	var (
		cfg *config.Config
		err error
	)
	if f.configPath != "" {
		cfg, err = loader.LoadFrom(f.configPath)
	} else {
		cfg, err = loader.Load()
	}
	if err != nil {
		return nil, err
	}

	fl := cmd.Flags()
	if fl.Changed("workers") {
		cfg.Workers = f.workers
	}
	if fl.Changed("sort") {
		cfg.Sort = f.sort
	}
	if fl.Changed("no-mouse") {
		cfg.Mouse = !f.noMouse
	}
	if fl.Changed("log-file") {
		cfg.Log.File = f.logFile
	}
	if fl.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, root string, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger, err := logging.Init(logging.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		OutputPath: cfg.Log.File,
	})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logging.Sync() }()

	cache := count.NewCache()
	d := count.NewDispatcher(cache, count.DirScanner{}, cfg.Workers, logger)
	d.Start(ctx)
	defer func() { _ = d.Close() }()

	n, err := nav.New(root, cache, d, nav.WithSort(nav.ParseSortMode(cfg.Sort)))
	if err != nil {
		return err
	}
	logger.Info("analyzer started",
		zap.String("root", root),
		zap.Int("workers", d.Workers()),
		zap.String("sort", cfg.Sort),
	)

	model := ui.New(n, d.Completions(), ui.Options{
		SpinnerInterval: time.Duration(cfg.SpinnerIntervalMs) * time.Millisecond,
		Mouse:           cfg.Mouse,
		Logger:          logger,
	})

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(model, opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("analyzer error: %w", err)
	}

	st := cache.Stats()
	logger.Info("analyzer exited",
		zap.Int("entries", cache.Len()),
		zap.Int("done", st.Done),
		zap.Int("failed", st.Failed),
		zap.Int("queued", d.Queued()),
	)
	return nil
}
