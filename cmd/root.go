package cmd

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/msgboard/msgboard/internal/app"
	"github.com/msgboard/msgboard/internal/backend"
	"github.com/msgboard/msgboard/internal/clipboard"
	"github.com/msgboard/msgboard/internal/config"
	"github.com/msgboard/msgboard/internal/logger"
	"github.com/msgboard/msgboard/internal/session"
)

var (
	debugMode             bool
	quietMode             bool
	demoMode              bool
	envFile               string
	version, commit, date string
)

// commandTimeout bounds each service call made by a subcommand
const commandTimeout = 30 * time.Second

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "msgboard",
	Short: "Terminal message board backed by a hosted auth + data service",
	Long: `msgboard signs you in to a hosted backend (Supabase-compatible auth and
rows) and shows a shared list of messages you can add to.

Connection settings come from MSGBOARD_URL and MSGBOARD_ANON_KEY, optionally
loaded from a .env file. Use --demo to try it without a backend.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.PersistentFlags().BoolVar(&demoMode, "demo", false, "Use an in-memory demo backend (login demo@example.com / demo)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Load service settings from this file if it exists")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("msgboard %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("msgboard %s\n", version)
}

// service is a backend.Service that holds resources until closed
type service interface {
	backend.Service
	Close()
}

// newService builds the backend every command talks to. Tests replace it.
var newService = defaultService

func defaultService() (service, error) {
	if demoMode {
		logger.WithComponent("cmd").Info("using demo backend")
		return backend.NewDemoService(), nil
	}

	loaded, err := config.LoadEnvFiles(envFile)
	if err != nil {
		return nil, err
	}
	if len(loaded) > 0 {
		logger.WithComponent("cmd").Debug("loaded env files", "files", loaded)
	}

	svcCfg, err := config.LoadService()
	if err != nil {
		return nil, err
	}
	store, err := sessionStore()
	if err != nil {
		return nil, err
	}
	client, err := backend.NewClientFromConfig(svcCfg, store, version)
	if err != nil {
		return nil, fmt.Errorf("%w\n\nSet MSGBOARD_URL and MSGBOARD_ANON_KEY, or run with --demo", err)
	}
	return client, nil
}

// sessionStore returns the file the signed-in session is persisted to
func sessionStore() (*session.FileStore, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, fmt.Errorf("error locating config dir: %w", err)
	}
	return session.NewFileStore(session.DefaultPath(dir)), nil
}

// commandContext returns cmd's context bounded by commandTimeout
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, commandTimeout)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	// Ensure logger is closed on exit
	defer logger.Close()

	svc, err := newService()
	if err != nil {
		return err
	}
	defer svc.Close()

	if client, ok := svc.(*backend.Client); ok {
		client.StartAutoRefresh(context.Background())
	}

	if err := clipboard.Init(); err != nil {
		// Copying is optional; everything else still works
		logger.WithComponent("cmd").Warn("clipboard unavailable", "error", err)
	}

	m := app.New(cfg, svc, version)
	defer m.Close()
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
