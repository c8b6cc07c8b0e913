package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/studiowebux/reqform/internal/cli"
	"github.com/studiowebux/reqform/internal/config"
	"github.com/studiowebux/reqform/internal/executor"
	"github.com/studiowebux/reqform/internal/form"
	"github.com/studiowebux/reqform/internal/keybinds"
	"github.com/studiowebux/reqform/internal/tui"
	"github.com/studiowebux/reqform/internal/types"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, cli.ErrRequestFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "reqform [url]",
	Short: "reqform - terminal HTTP request form",
	Long: `reqform is an interactive form for building and sending HTTP requests.

The Url and Query fields stay in sync while you edit either one.

Examples:
  reqform                                  # Start with an empty form
  reqform https://api.example.com/?a=1     # Prefill the Url and Query fields
  reqform -X POST -d '{"a":1}' URL         # Prefill method and body
  reqform run https://api.example.com      # Send once without the form
  reqform replay session.keys              # Drive the form from a key script
  reqform keybinds                         # Write the default keybindings`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) {
			return fmt.Errorf("the form needs a terminal; use 'reqform run' for scripted requests")
		}

		logger, closeLog, err := openLog(cfg.LogFile)
		if err != nil {
			return err
		}
		defer closeLog()

		registry, err := keybinds.LoadOrDefault(cfg.Keybinds, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		return tui.Run(ctx, tui.Options{
			TickInterval: cfg.TickInterval,
			Transport:    form.HTTPTransport{Options: transportOptions(cfg)},
			Keybinds:     registry,
			Theme:        cfg.Theme,
			Prefill:      prefill(args),
		}, logger)
	},
}

var runCmd = &cobra.Command{
	Use:   "run <url>",
	Short: "Send one request without the form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		opts := transportOptions(cfg)
		return cli.Run(ctx, cli.RunOptions{
			Method:       flagMethod,
			URL:          args[0],
			Body:         flagBody,
			OutputFormat: flagOutput,
			ShowFull:     flagFull,
			Filter:       flagFilter,
			Query:        flagQuery,
			Timeout:      opts.Timeout,
			Insecure:     opts.InsecureSkipVerify,
			CAFile:       opts.CAFile,
		})
	},
}

var replayCmd = &cobra.Command{
	Use:   "replay <script> [url]",
	Short: "Drive the form from a key script and print the final state",
	Long: `Replay feeds a key script into the form without a terminal.

Each line of the script is one directive:
  enter            a key name (ctrl+s, shift+up, esc, ...)
  type a=1&b=2     one key per character
  sleep 500ms      pause before the next key
  # comment

Use "-" to read the script from stdin.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		script := io.Reader(os.Stdin)
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open script: %w", err)
			}
			defer f.Close()
			script = f
		}

		logger := stderrLogger()
		registry, err := keybinds.LoadOrDefault(cfg.Keybinds, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		_, err = cli.Replay(ctx, cli.ReplayOptions{
			Script:       script,
			Transport:    form.HTTPTransport{Options: transportOptions(cfg)},
			Keybinds:     registry,
			TickInterval: cfg.TickInterval,
			Prefill:      prefill(args[1:]),
			OutputFormat: flagOutput,
			Logger:       logger,
		})
		return err
	},
}

var keybindsCmd = &cobra.Command{
	Use:   "keybinds",
	Short: "Write the default keybindings to the keybinds file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		path := cfg.Keybinds
		if flagKeybindsOut != "" {
			path = flagKeybindsOut
		}
		if _, err := os.Stat(path); err == nil && !flagForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		if err := keybinds.SaveConfig(keybinds.ExportConfig(keybinds.NewDefaultRegistry()), path); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Keybindings written to %s\n", path)
		return nil
	},
}

// Flags shared by every command
var (
	flagConfig   string
	flagTick     time.Duration
	flagTimeout  time.Duration
	flagVerbose  bool
	flagInsecure bool
	flagCAFile   string
)

// Flags for the form and run command
var (
	flagMethod string
	flagBody   string
	flagOutput string
	flagFull   bool
	flagFilter string
	flagQuery  string
)

// Flags for keybinds
var (
	flagKeybindsOut string
	flagForce       bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Config file (default ~/.reqform/config.yaml)")
	rootCmd.PersistentFlags().DurationVar(&flagTick, "tick", 0, "Render tick interval")
	rootCmd.PersistentFlags().DurationVarP(&flagTimeout, "timeout", "t", 0, "Request timeout")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output")
	rootCmd.PersistentFlags().BoolVarP(&flagInsecure, "insecure", "k", false, "Skip TLS certificate verification")
	rootCmd.PersistentFlags().StringVar(&flagCAFile, "ca-file", "", "Extra CA certificate (PEM)")

	// Root command flags
	rootCmd.Flags().StringVarP(&flagMethod, "method", "X", "", "Initial method (GET/POST/PUT/DELETE)")
	rootCmd.Flags().StringVarP(&flagBody, "data", "d", "", "Initial request body")

	// Run command flags
	runCmd.Flags().StringVarP(&flagMethod, "method", "X", "GET", "Request method (GET/POST/PUT/DELETE)")
	runCmd.Flags().StringVarP(&flagBody, "data", "d", "", "Request body")
	runCmd.Flags().StringVarP(&flagOutput, "output", "o", "text", "Output format (text/body/json/yaml)")
	runCmd.Flags().BoolVarP(&flagFull, "full", "f", false, "Show headers as well as the body")
	runCmd.Flags().StringVar(&flagFilter, "filter", "", "JMESPath filter applied to a JSON body")
	runCmd.Flags().StringVar(&flagQuery, "query", "", "JMESPath query applied after the filter")

	// Replay command flags
	replayCmd.Flags().StringVarP(&flagMethod, "method", "X", "", "Initial method (GET/POST/PUT/DELETE)")
	replayCmd.Flags().StringVarP(&flagBody, "data", "d", "", "Initial request body")
	replayCmd.Flags().StringVarP(&flagOutput, "output", "o", "text", "Report format (text/json/yaml)")

	// Keybinds command flags
	keybindsCmd.Flags().StringVarP(&flagKeybindsOut, "output", "o", "", "Destination (default ~/.reqform/keybinds.jsonc)")
	keybindsCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing file")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(keybindsCmd)
}

// loadConfig initializes the config directory and applies flag overrides
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	if err := config.Initialize(); err != nil {
		return config.Config{}, fmt.Errorf("failed to initialize config: %w", err)
	}

	path := flagConfig
	if path == "" {
		path = config.ConfigFile
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("tick") {
		cfg.TickInterval = flagTick
	}
	if flags.Changed("timeout") {
		cfg.Timeout = flagTimeout
	}
	return cfg, cfg.Validate()
}

func transportOptions(cfg config.Config) executor.Options {
	return executor.Options{
		Timeout:            cfg.Timeout,
		InsecureSkipVerify: flagInsecure,
		CAFile:             flagCAFile,
	}
}

// prefill builds the initial request from the optional url argument and
// the -X/-d flags. It returns nil when there is nothing to prefill.
func prefill(args []string) *types.HttpRequest {
	req := &types.HttpRequest{
		Method: strings.ToUpper(flagMethod),
		Body:   flagBody,
	}
	if len(args) > 0 {
		req.URL = args[0]
	}
	if *req == (types.HttpRequest{}) {
		return nil
	}
	return req
}

// openLog sends diagnostics to path since the form owns the terminal
func openLog(path string) (*slog.Logger, func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, config.FilePermissions)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{
		Level:     logLevel(),
		AddSource: flagVerbose,
	}))
	return logger, func() { f.Close() }, nil
}

func stderrLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel()}))
}

func logLevel() slog.Level {
	if flagVerbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}
