package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/evanschultz/taskboard/internal/adapters/storage/sqlite"
	"github.com/evanschultz/taskboard/internal/app"
	"github.com/evanschultz/taskboard/internal/config"
	"github.com/evanschultz/taskboard/internal/platform"
	"github.com/evanschultz/taskboard/internal/tui"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// version stores a package-level helper value.
var version = "dev"

// program represents program data used by this package.
type program interface {
	Run() (tea.Model, error)
}

// programFactory stores a package-level helper value.
var programFactory = func(m tea.Model) program {
	return tea.NewProgram(m)
}

// isTerminal reports whether stdin and stdout are attached to a terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// errNotTerminal is returned when the TUI is launched without a terminal.
var errNotTerminal = errors.New("the board needs an interactive terminal; use `taskboard theme` from scripts")

// main handles main.
func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// rootOptions holds persistent flag values.
type rootOptions struct {
	configPath string
	dbPath     string
	appName    string
	devMode    bool
}

// run runs the requested command flow.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	if args == nil {
		args = []string{}
	}

	root := newRootCmd(&rootOptions{})
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return fang.Execute(ctx, root, fang.WithVersion(version), fang.WithErrorHandler(printError))
}

// printError reports a failed command on stderr.
func printError(w io.Writer, _ fang.Styles, err error) {
	_, _ = fmt.Fprintln(w, "error:", err)
}

// newRootCmd builds the command tree.
func newRootCmd(opts *rootOptions) *cobra.Command {
	defaultDevMode := version == "dev"
	if envDev, ok := parseBoolEnv("TASKBOARD_DEV_MODE"); ok {
		defaultDevMode = envDev
	}
	defaultApp := platform.DefaultAppName
	if envApp := strings.TrimSpace(os.Getenv("TASKBOARD_APP_NAME")); envApp != "" {
		defaultApp = envApp
	}

	root := &cobra.Command{
		Use:   "taskboard",
		Short: "A terminal to-do list with a remembered dark mode",
		Long: `taskboard keeps a short list of tasks in a terminal board.

Add, edit, complete and filter tasks with the keyboard or mouse. Tasks live
for the session; the dark-mode choice is stored and restored on next launch.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(opts, cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config TOML")
	root.PersistentFlags().StringVar(&opts.dbPath, "db", "", "path to sqlite database")
	root.PersistentFlags().StringVar(&opts.appName, "app", defaultApp, "application name for config/data path resolution")
	root.PersistentFlags().BoolVar(&opts.devMode, "dev", defaultDevMode, "use dev mode paths (<app>-dev)")

	root.AddCommand(
		newPathsCmd(opts),
		newVersionCmd(),
		newThemeCmd(opts),
	)
	return root
}

// newPathsCmd prints resolved locations.
func newPathsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print resolved config, data and log paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			paths, err := resolvePaths(opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "app: %s\n", opts.appName)
			_, _ = fmt.Fprintf(out, "dev_mode: %t\n", opts.devMode)
			_, _ = fmt.Fprintf(out, "config: %s\n", paths.ConfigPath)
			_, _ = fmt.Fprintf(out, "data_dir: %s\n", paths.DataDir)
			_, _ = fmt.Fprintf(out, "db: %s\n", paths.DBPath)
			_, _ = fmt.Fprintf(out, "log_dir: %s\n", paths.LogDir)
			return nil
		},
	}
}

// newVersionCmd prints the build version.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "taskboard %s\n", version)
			return nil
		},
	}
}

// newThemeCmd inspects or changes the stored dark-mode flag.
func newThemeCmd(opts *rootOptions) *cobra.Command {
	var saveDefault bool
	cmd := &cobra.Command{
		Use:       "theme [show|dark|light|toggle]",
		Short:     "Show or change the stored theme",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"show", "dark", "light", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			action := "show"
			if len(args) == 1 {
				action = args[0]
			}
			return runTheme(cmd.Context(), opts, action, saveDefault, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().BoolVar(&saveDefault, "save-default", false, "also write the result to theme.default_dark in the config file")
	return cmd
}

// runtimeEnv bundles resolved state shared by commands that touch storage.
type runtimeEnv struct {
	paths      platform.Paths
	configPath string
	cfg        config.Config
	logger     *runtimeLogger
	repo       *sqlite.Repository
	stderr     io.Writer
}

// resolvePaths resolves platform paths for the current flags.
func resolvePaths(opts *rootOptions) (platform.Paths, error) {
	return platform.DefaultPathsWithOptions(platform.Options{
		AppName: opts.appName,
		DevMode: opts.devMode,
	})
}

// openRuntime loads config, starts logging and opens the preference store.
func openRuntime(opts *rootOptions, command string, stderr io.Writer) (*runtimeEnv, error) {
	paths, err := resolvePaths(opts)
	if err != nil {
		return nil, err
	}

	configPath := opts.configPath
	if configPath == "" {
		if envPath := strings.TrimSpace(os.Getenv("TASKBOARD_CONFIG")); envPath != "" {
			configPath = envPath
		} else {
			configPath = paths.ConfigPath
		}
	}
	dbPath := strings.TrimSpace(opts.dbPath)
	dbOverridden := dbPath != ""
	if !dbOverridden {
		if envPath := strings.TrimSpace(os.Getenv("TASKBOARD_DB_PATH")); envPath != "" {
			dbPath = envPath
			dbOverridden = true
		} else {
			dbPath = paths.DBPath
		}
	}

	cfg, err := config.Load(configPath, config.Default(dbPath))
	if err != nil {
		return nil, fmt.Errorf("load config %q: %w", configPath, err)
	}
	if dbOverridden {
		cfg.Database.Path = dbPath
	}

	logger, err := newRuntimeLogger(stderr, opts.appName, opts.devMode, cfg.Logging, defaultLogDir(paths, configPath))
	if err != nil {
		return nil, fmt.Errorf("configure runtime logger: %w", err)
	}
	if command == "tui" {
		// Runtime logs stay in the dev-file sink while the board owns the terminal.
		logger.SetConsoleEnabled(false)
	}

	logger.Info("startup configuration resolved", "app", opts.appName, "dev_mode", opts.devMode, "command", command)
	logger.Debug("runtime paths resolved", "config_path", configPath, "data_dir", paths.DataDir, "db_path", dbPath)
	logger.Info("configuration loaded", "config_path", configPath, "db_path", cfg.Database.Path, "log_level", cfg.Logging.Level)
	if devPath := logger.DevLogPath(); devPath != "" {
		logger.Info("dev file logging enabled", "path", devPath)
	}

	logger.Info("opening sqlite repository", "db_path", cfg.Database.Path)
	repo, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Error("sqlite open failed", "db_path", cfg.Database.Path, "err", err)
		_ = logger.Close()
		return nil, fmt.Errorf("open sqlite repository: %w", err)
	}
	logger.Info("sqlite repository ready", "db_path", cfg.Database.Path)

	return &runtimeEnv{
		paths:      paths,
		configPath: configPath,
		cfg:        cfg,
		logger:     logger,
		repo:       repo,
		stderr:     stderr,
	}, nil
}

// Close releases the repository and log sinks.
func (e *runtimeEnv) Close() {
	if closeErr := e.repo.Close(); closeErr != nil {
		e.logger.Warn("sqlite close failed", "db_path", e.cfg.Database.Path, "err", closeErr)
	}
	if closeErr := e.logger.Close(); closeErr != nil && e.logger.shouldLogToSink(e.logger.consoleSink) {
		_, _ = fmt.Fprintf(e.stderr, "warning: close runtime log sink: %v\n", closeErr)
	}
}

// newBoard builds a board over the runtime store.
func (e *runtimeEnv) newBoard() *app.Board {
	return app.NewBoard(e.repo, newTaskID, app.BoardConfig{
		ThemeKey:    e.cfg.Theme.Key,
		DefaultDark: e.cfg.Theme.DefaultDark,
	})
}

// runTUI launches the interactive board.
func runTUI(opts *rootOptions, stderr io.Writer) error {
	if !isTerminal() {
		return errNotTerminal
	}
	env, err := openRuntime(opts, "tui", stderr)
	if err != nil {
		return err
	}
	defer env.Close()

	board := env.newBoard()
	env.logger.Debug("board initialized", "theme_key", board.ThemeKey(), "default_dark", env.cfg.Theme.DefaultDark)

	m := tui.NewModel(
		board,
		tui.WithTitle(env.cfg.UI.Title),
		tui.WithShowHelp(env.cfg.UI.ShowHelp),
		tui.WithCharLimit(env.cfg.UI.CharLimit),
		tui.WithInitialFilter(env.cfg.UI.DefaultFilter),
		tui.WithKeyConfig(toTUIKeyConfig(env.cfg.Keys)),
		tui.WithLogger(env.logger),
	)
	env.logger.Info("starting tui program loop")
	if _, err := programFactory(m).Run(); err != nil {
		env.logger.Error("tui program terminated with error", "err", err)
		return fmt.Errorf("run tui program: %w", err)
	}
	counts := board.Counts()
	env.logger.Info("command flow complete", "command", "tui", "tasks", counts.Total, "completed", counts.Completed, "dark_mode", board.DarkMode())
	return nil
}

// runTheme applies one theme action without the TUI.
func runTheme(ctx context.Context, opts *rootOptions, action string, saveDefault bool, stdout, stderr io.Writer) error {
	env, err := openRuntime(opts, "theme", stderr)
	if err != nil {
		return err
	}
	defer env.Close()

	board := env.newBoard()
	if err := board.LoadPreference(ctx); err != nil {
		env.logger.Error("theme preference load failed", "err", err)
		return err
	}
	switch action {
	case "show":
	case "dark":
		err = board.SetDarkMode(ctx, true)
	case "light":
		err = board.SetDarkMode(ctx, false)
	case "toggle":
		err = board.ToggleDarkMode(ctx)
	default:
		return fmt.Errorf("unknown theme action: %s", action)
	}
	if err != nil {
		env.logger.Error("theme preference save failed", "action", action, "err", err)
		return err
	}
	env.logger.Info("theme command complete", "action", action, "dark_mode", board.DarkMode())

	if saveDefault {
		if err := config.UpsertThemeDefault(env.configPath, board.DarkMode()); err != nil {
			return fmt.Errorf("save theme default: %w", err)
		}
		env.logger.Info("theme default saved", "config_path", env.configPath, "default_dark", board.DarkMode())
	}

	theme := "light"
	if board.DarkMode() {
		theme = "dark"
	}
	_, _ = fmt.Fprintf(stdout, "theme: %s\n", theme)
	_, _ = fmt.Fprintf(stdout, "key: %s\n", board.ThemeKey())
	updatedAt, ok, err := env.repo.PreferenceUpdatedAt(ctx, board.ThemeKey())
	if err != nil {
		return err
	}
	if ok {
		_, _ = fmt.Fprintf(stdout, "updated: %s\n", updatedAt.Format(time.RFC3339))
	}
	return nil
}

// toTUIKeyConfig maps configured keys onto the TUI key overrides.
func toTUIKeyConfig(keys config.KeyConfig) tui.KeyConfig {
	return tui.KeyConfig{
		AddTask:     keys.AddTask,
		EditTask:    keys.EditTask,
		ToggleTask:  keys.ToggleTask,
		ToggleTheme: keys.ToggleTheme,
		CycleFilter: keys.CycleFilter,
		CopyTask:    keys.CopyTask,
	}
}

// newTaskID returns a time-ordered task id.
func newTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// defaultLogDir picks the dev log directory when the config leaves it blank.
func defaultLogDir(paths platform.Paths, configPath string) string {
	if paths.LogDir != "" {
		return paths.LogDir
	}
	return filepath.Join(filepath.Dir(configPath), "log")
}

// parseBoolEnv parses input into a normalized form.
func parseBoolEnv(name string) (bool, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
