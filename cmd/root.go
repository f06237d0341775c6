package cmd

import (
	"fmt"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"todo-screen/app"
	"todo-screen/config"
	"todo-screen/model"
	"todo-screen/tui"
)

var (
	version    = "dev"
	configPath string
	debugLog   string
	filterFlag string
)

var rootCmd = &cobra.Command{
	Use:     "todo-screen",
	Short:   "A single-screen to-do list for the terminal",
	Long:    "todo-screen keeps a to-do list in memory for one session: add, complete, delete and filter tasks.",
	Version: version,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger, closeLog, err := openLogger(debugLog)
		if err != nil {
			return err
		}
		defer closeLog()

		m, err := newScreen(cfg, logger)
		if err != nil {
			return err
		}
		logger.Printf("starting %s (active filter mode %s)", version, cfg.ActiveFilter)
		if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run(); err != nil {
			return fmt.Errorf("running screen: %w", err)
		}
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "config file path")
	rootCmd.PersistentFlags().StringVar(&debugLog, "debug-log", "", "write debug logs to this file")
	rootCmd.PersistentFlags().StringVar(&filterFlag, "filter", "", "initial filter: all, active or completed")
}

func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the config file and applies --filter on top.
// Only commands that need it call this, so a broken file can still be
// replaced with "config init --force".
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if filterFlag != "" {
		f, err := model.ParseFilter(filterFlag)
		if err != nil {
			return nil, err
		}
		cfg.InitialFilter = string(f)
	}
	return cfg, nil
}

// newScreen builds a fresh store and the bubbletea model that renders it.
func newScreen(cfg *config.Config, logger *log.Logger) (*tui.Model, error) {
	opts, err := cfg.StoreOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, app.WithLogger(logger))
	svc := app.NewStore(opts...)
	return tui.NewModel(svc, tui.Options{
		Title:       cfg.Title,
		Placeholder: cfg.Placeholder,
		CharLimit:   cfg.CharLimit,
		ExportDir:   cfg.ExportDir,
	}), nil
}

// openLogger routes the standard logger to path through tea.LogToFile.
// With no path, logs are discarded so they never draw over the screen.
func openLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	f, err := tea.LogToFile(path, "todo-screen")
	if err != nil {
		return nil, nil, fmt.Errorf("opening debug log: %w", err)
	}
	return log.Default(), func() { _ = f.Close() }, nil
}
