// Package main provides the CLI entrypoint for typemaster.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kmatveev/typemaster/internal/auth"
	"github.com/kmatveev/typemaster/internal/config"
	"github.com/kmatveev/typemaster/internal/leaderboard"
	"github.com/kmatveev/typemaster/internal/logger"
	"github.com/kmatveev/typemaster/internal/model"
	"github.com/kmatveev/typemaster/internal/stats"
	"github.com/kmatveev/typemaster/internal/store"
	"github.com/kmatveev/typemaster/internal/textgen"
	"github.com/kmatveev/typemaster/internal/tui"
)

var (
	practiceLevel int
	practiceUser  string
	practiceGuest bool
	practicePool  string

	racePrivate bool

	statsUser string

	leaderboardUser string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typemaster",
		Short:         "TUI typing tutor with levels, races, and achievements",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().IntVar(&practiceLevel, "level", 0, "pin difficulty level 1-4 (default: profile level)")
	rootCmd.Flags().StringVar(&practiceUser, "user", "", "practice as a specific registered user")
	rootCmd.Flags().BoolVar(&practiceGuest, "guest", false, "practice without saving progress")
	rootCmd.Flags().StringVar(&practicePool, "pool", "", "path to a custom sentence pool file")

	rootCmd.AddCommand(newRaceCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newLeaderboardCmd())
	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "level", &practiceLevel, fileCfg.Practice.Level)
	applyStringConfig(cmd, "pool", &practicePool, fileCfg.Practice.Pool)

	if practiceLevel < 0 || practiceLevel > model.MaxLevel() {
		return fmt.Errorf("--level must be between 1 and %d", model.MaxLevel())
	}

	log := logger.New(config.DefaultLogPath())
	st, closeStore := openStore(log)
	defer closeStore()

	profile, err := resolveProfile(context.Background(), st, log)
	if err != nil {
		return err
	}

	selector, err := newSelector(practicePool)
	if err != nil {
		return err
	}

	m := tui.NewModel(profile, st, selector, stats.NewAggregator(), log, practiceLevel)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newRaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "race",
		Short: "Race against a simulated opponent",
		Args:  cobra.NoArgs,
		RunE:  runRaceCmd,
	}
	cmd.Flags().BoolVar(&racePrivate, "private", false, "create a private race with a room code")
	cmd.Flags().StringVar(&practiceUser, "user", "", "race as a specific registered user")
	cmd.Flags().BoolVar(&practiceGuest, "guest", false, "race without saving progress")
	return cmd
}

func runRaceCmd(_ *cobra.Command, _ []string) error {
	log := logger.New(config.DefaultLogPath())
	st, closeStore := openStore(log)
	defer closeStore()

	profile, err := resolveProfile(context.Background(), st, log)
	if err != nil {
		return err
	}

	selector, err := newSelector(practicePool)
	if err != nil {
		return err
	}

	m := tui.NewRaceModel(profile, st, selector, log, racePrivate)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run race TUI: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the profile dashboard",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsUser, "user", "", "show stats for a specific registered user")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	log := logger.New(config.DefaultLogPath())
	st, closeStore := openStore(log)
	defer closeStore()

	ctx := context.Background()
	var profile *model.Profile
	var err error
	if statsUser != "" {
		profile, err = st.GetProfile(ctx, statsUser)
	} else {
		profile, err = st.CurrentProfile(ctx)
	}
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no profile found; register or log in first")
	}
	if err != nil {
		return err
	}
	return stats.RenderDashboard(cmd.OutOrStdout(), profile)
}

func newLeaderboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show race standings",
		Args:  cobra.NoArgs,
		RunE:  runLeaderboardCmd,
	}
	cmd.Flags().StringVar(&leaderboardUser, "user", "", "rank a specific registered user")
	return cmd
}

func runLeaderboardCmd(cmd *cobra.Command, _ []string) error {
	log := logger.New(config.DefaultLogPath())
	st, closeStore := openStore(log)
	defer closeStore()

	ctx := context.Background()
	var profile *model.Profile
	var err error
	if leaderboardUser != "" {
		profile, err = st.GetProfile(ctx, leaderboardUser)
	} else {
		profile, err = st.CurrentProfile(ctx)
	}
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}

	entries := leaderboard.Standings(profile)
	highlight := ""
	if profile != nil {
		highlight = profile.Username
	}
	return leaderboard.Render(cmd.OutOrStdout(), entries, highlight)
}

func newRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register [username]",
		Short: "Create a profile",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRegisterCmd,
	}
}

func runRegisterCmd(cmd *cobra.Command, args []string) error {
	log := logger.New(config.DefaultLogPath())
	st, closeStore := openStore(log)
	defer closeStore()

	username, password, err := promptCredentials(args)
	if err != nil {
		return err
	}

	svc := auth.NewService(st, log)
	profile, err := svc.Register(context.Background(), username, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s! You are now logged in.\n", profile.Username)
	return nil
}

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login [username]",
		Short: "Log in to a profile",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLoginCmd,
	}
}

func runLoginCmd(cmd *cobra.Command, args []string) error {
	log := logger.New(config.DefaultLogPath())
	st, closeStore := openStore(log)
	defer closeStore()

	username, password, err := promptCredentials(args)
	if err != nil {
		return err
	}

	svc := auth.NewService(st, log)
	profile, err := svc.Login(context.Background(), username, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Welcome back, %s!\n", profile.Username)
	return nil
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out of the current profile",
		Args:  cobra.NoArgs,
		RunE:  runLogoutCmd,
	}
}

func runLogoutCmd(cmd *cobra.Command, _ []string) error {
	log := logger.New(config.DefaultLogPath())
	st, closeStore := openStore(log)
	defer closeStore()

	svc := auth.NewService(st, log)
	if err := svc.Logout(context.Background()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// openStore opens the SQLite store, degrading to an in-memory store when
// the database cannot be opened. Practice still works; progress is lost
// on exit.
func openStore(log *logger.Logger) (store.ProfileStore, func()) {
	st, err := store.Open(config.DefaultDBPath(), log)
	if err != nil {
		log.Error().Err(err).Msg("failed to open db, using in-memory store")
		logErrf("warning: storage unavailable, progress will not be saved: %v\n", err)
		return store.NewMemory(), func() {}
	}
	return st, func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}
}

// resolveProfile picks the active profile: --guest wins, then --user,
// then the logged-in user, then a guest fallback.
func resolveProfile(ctx context.Context, st store.ProfileStore, log *logger.Logger) (*model.Profile, error) {
	if practiceGuest {
		return auth.Guest(), nil
	}
	if practiceUser != "" {
		profile, err := st.GetProfile(ctx, practiceUser)
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("unknown user %q; register first", practiceUser)
		}
		return profile, err
	}
	profile, err := st.CurrentProfile(ctx)
	if errors.Is(err, store.ErrNotFound) {
		log.Debug().Msg("no logged-in user, starting guest session")
		return auth.Guest(), nil
	}
	return profile, err
}

func newSelector(poolPath string) (*textgen.Selector, error) {
	selector := textgen.New()
	if poolPath == "" {
		if _, err := os.Stat(config.DefaultPoolPath()); err == nil {
			poolPath = config.DefaultPoolPath()
		}
	}
	if poolPath != "" {
		pool, err := textgen.LoadPool(poolPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load sentence pool: %w", err)
		}
		selector.SetPool(pool)
	}
	return selector, nil
}

func promptCredentials(args []string) (string, string, error) {
	username := ""
	if len(args) == 1 {
		username = strings.TrimSpace(args[0])
	}
	if username == "" {
		fmt.Fprint(os.Stderr, "Username: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", fmt.Errorf("failed to read username: %w", err)
		}
		username = strings.TrimSpace(line)
	}

	fmt.Fprint(os.Stderr, "Password: ")
	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", "", fmt.Errorf("failed to read password: %w", err)
	}
	return username, string(secret), nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return `# typemaster configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# level = 0                 # Pin difficulty level 1-4 (0 = profile level)
# pool = "/path/pool.txt"   # Custom sentence pool, one sentence per line
`
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
