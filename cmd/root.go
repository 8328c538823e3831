package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/tikhub/client"
	"github.com/s0up4200/tikhub/config"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger

	// Command flags
	tokenFlag   string
	baseURLFlag string
	verbose     bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tikhub",
	Short: "Query the TikHub social media data API from the command line",
	Long: `tikhub is a CLI for the TikHub API, which aggregates public data from
TikTok, Douyin, Instagram, Xiaohongshu, Weibo, YouTube, Twitter/X, Bilibili
and Kuaishou behind one authenticated REST interface.

Every endpoint known to the client library can be listed with "endpoints" and
invoked with "call"; responses can be reduced with expr expressions.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&tokenFlag, "token", "", "API token (overrides tikhub.token)")
	rootCmd.PersistentFlags().StringVar(&baseURLFlag, "base-url", "", "API base URL (overrides tikhub.base_url)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every request at debug level")
}

// initializeApp loads the configuration and sets up logging
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Command line overrides
	if tokenFlag != "" {
		cfg.TikHub.Token = tokenFlag
	}
	if baseURLFlag != "" {
		cfg.TikHub.BaseURL = baseURLFlag
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	return nil
}

// newAPIClient builds an authenticated client from the loaded configuration
func newAPIClient() (*client.Client, error) {
	if err := cfg.RequireToken(); err != nil {
		return nil, err
	}

	c, err := client.NewAuthenticatedClient(cfg.TikHub.BaseURL, cfg.TikHub.Token, logger, cfg.ClientOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create TikHub client: %w", err)
	}
	return c, nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format, colour only on a terminal
	fd := os.Stderr.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !tty,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
