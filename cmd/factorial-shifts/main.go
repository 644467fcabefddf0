package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"gopkg.in/yaml.v3"

	"github.com/username/factorial-shifts/internal/config"
	"github.com/username/factorial-shifts/pkg/random"
)

// Exit codes
const (
	exitOK               = 0
	exitFailure          = 1 // config or login failure
	exitUsage            = 2 // invalid arguments, nothing was sent
	exitSubmissionFailed = 3 // logged in, but at least one shift was not created
)

var (
	configPath string
	logFile    string
	logLevel   string
	cfg        *config.Config
	logger     *zap.Logger = zap.NewNop()
	stdout     io.Writer   = os.Stdout
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

// execute runs the CLI with args and returns the process exit code
func execute(ctx context.Context, args []string) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)
	_ = logger.Sync()
	if err == nil {
		return exitOK
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		if exitErr.err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", exitErr.err)
		}
		return exitErr.code
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return exitFailure
}

func newRootCmd() *cobra.Command {
	var (
		args   runArgs
		dryRun bool
		offset int
	)

	rootCmd := &cobra.Command{
		Use:   "factorial-shifts",
		Short: "Factorial attendance filler",
		Long: "Log in to Factorial and submit a morning and an afternoon attendance shift " +
			"for one date, together adding up to a full working day",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("log-file") {
				cfg.Log.File = logFile
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Log.Level = logLevel
			}

			if cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
			} else {
				logger, err = initLogger(cfg.Log.Level)
			}
			if err != nil {
				return err
			}
			logger = logger.With(zap.String("run_id", uuid.NewString()))
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			args = args.withDefaults(cmd, cfg.Credentials)

			if err := args.Validate(); err != nil {
				_ = cmd.Usage()
				return &exitError{code: exitUsage, err: err}
			}

			var src random.Source
			if offset >= 0 {
				src = random.Fixed(offset)
			}

			r := &runner{
				cfg:    cfg,
				logger: logger,
				out:    stdout,
				src:    src,
			}
			return r.run(cmd.Context(), args, dryRun)
		},
	}

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		_ = cmd.Usage()
		return &exitError{code: exitUsage, err: err}
	})

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: ./config.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write JSON logs to this file with rotation")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.Flags().StringVar(&args.Email, "email", "", "User email for login (env FACTORIAL_EMAIL)")
	rootCmd.Flags().StringVar(&args.Password, "password", "", "User password for login (env FACTORIAL_PASSWORD)")
	rootCmd.Flags().StringVar(&args.Date, "date", "", "Date for the shifts (YYYY-MM-DD)")
	rootCmd.Flags().IntVar(&args.EmployeeID, "employee-id", 0, "Factorial employee ID (env FACTORIAL_EMPLOYEE_ID)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute and print the shifts without logging in")
	rootCmd.Flags().IntVar(&offset, "offset", -1, "Fix the morning clock-in delay in minutes (default: random)")

	rootCmd.AddCommand(configCmd())

	return rootCmd
}

func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML (password redacted)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := yaml.Marshal(cfg.Redacted())
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			_, err = stdout.Write(data)
			return err
		},
	}
}

// exitError carries a specific exit code out of a cobra command
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func initLogger(level string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,  // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	// Setup encoder
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	// Parse log level
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	// Create core with lumberjack writer
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
