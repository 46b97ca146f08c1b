package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/vulnetix/totp/internal/clipboard"
	"github.com/vulnetix/totp/internal/config"
	"github.com/vulnetix/totp/internal/store"
	"github.com/vulnetix/totp/internal/ui"
)

// skipStore marks commands that run without loading the account file
const skipStore = "skip-store"

var (
	// Global state, set up before each command runs
	cfg      *config.Config
	accounts *store.Store
	theme    *ui.Theme

	// Command line flags
	colorMode string
	debug     bool
	version   = "1.0.0" // This will be set during build
)

// Seams replaced in tests
var (
	now                   = time.Now
	clip clipboard.Writer = clipboard.System{}
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "totp",
	Short: "A fast local TOTP account manager",
	Long: `totp stores TOTP secrets in a local JSON file and prints the current
6-digit code for any account.

Accounts are kept in ~/.totp/secrets.json (override the directory with TOTP_HOME).
Secrets are stored unencrypted, exactly as entered.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(cmd)

		c, err := config.Load()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("color") {
			if c.Color, err = config.ValidateColor(colorMode); err != nil {
				return err
			}
		}
		cfg = c
		theme = ui.NewTheme(cmd.OutOrStdout(), cfg.Color)

		if _, ok := cmd.Annotations[skipStore]; ok {
			return nil
		}
		s, err := store.Open(cfg.StorePath())
		if err != nil {
			return err
		}
		s.Label = theme.Name
		accounts = s
		return nil
	},
}

func setupLogging(cmd *cobra.Command) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "Colorize output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log diagnostics to stderr")

	versionCmd := &cobra.Command{
		Use:         "version",
		Short:       "Print the version number of totp",
		Annotations: map[string]string{skipStore: ""},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "totp v%s\n", version)
		},
	}

	rootCmd.AddCommand(versionCmd)
}
