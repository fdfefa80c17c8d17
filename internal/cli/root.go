package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"porch/internal/config"
	"porch/internal/logging"
	"porch/internal/storage"
	"porch/internal/todo"
	"porch/internal/ui"
)

type App struct {
	ConfigPath string
}

// ExitError carries a process exit code for failures that were already
// reported to the user.
type ExitError struct {
	Code int
}

func (e ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:           "porch",
		Short:         "A personal page for the terminal: to-do list, contact form, section navigation",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Open the interactive page
  porch

  # Print the active tasks
  porch tasks --filter active

  # Check a contact form submission
  porch contact --name Ada --email ada@example.com --message "Hello"
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(app)
		},
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Path to config.toml (default: $PORCH_CONFIG or ~/.config/porch/config.toml)")

	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newContactCmd(app))
	return cmd
}

// Execute runs the root command and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	var exit ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}
	fmt.Fprintln(stderr, err)
	return 1
}

type session struct {
	cfg    config.Config
	kv     *storage.Store
	log    *slog.Logger
	closer io.Closer
}

func (s *session) Close() {
	if s.kv != nil {
		s.kv.Close()
	}
	if s.closer != nil {
		s.closer.Close()
	}
}

// tasks opens the to-do store. Without options it starts on the "all"
// filter, which is what the page uses.
func (s *session) tasks(opts ...todo.Option) *todo.Store {
	return todo.Open(s.kv, s.cfg.StorageKey, append([]todo.Option{todo.WithLogger(s.log)}, opts...)...)
}

// listFilter is the filter `porch tasks` uses when --filter is not given.
func (s *session) listFilter() todo.Filter {
	filter, ok := todo.ParseFilter(s.cfg.DefaultFilter)
	if !ok {
		s.log.Warn("unknown default filter, using all", "filter", s.cfg.DefaultFilter)
	}
	return filter
}

func (app *App) open() (*session, error) {
	path := app.ConfigPath
	if path == "" {
		path = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, closer, err := logging.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}

	kv, err := storage.Open(cfg.DBPath)
	if err != nil {
		closer.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	logger.Debug("session opened", "config", path, "db", cfg.DBPath)
	return &session{cfg: cfg, kv: kv, log: logger, closer: closer}, nil
}

func runTUI(app *App) error {
	s, err := app.open()
	if err != nil {
		return err
	}
	defer s.Close()

	about := ""
	if s.cfg.PagePath != "" {
		data, err := os.ReadFile(s.cfg.PagePath)
		if err != nil {
			s.log.Warn("page file unreadable, using built-in text", "path", s.cfg.PagePath, "err", err)
		} else {
			about = string(data)
		}
	}

	if err := ui.Run(s.tasks(), s.cfg, s.log, about); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
