package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/felixgeelhaar/taskflow/pkg/observability"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	logger  *slog.Logger

	bootstrap BootstrapFunc
	cleanup   func()
)

// BootstrapFunc builds the App once flags are parsed.
// The returned func releases its resources.
type BootstrapFunc func(ctx context.Context, configPath string, verbose bool) (*App, func(), error)

// skipBootstrapAnnotation marks commands that run without storage.
const skipBootstrapAnnotation = "taskflow/skip-bootstrap"

type commandContext struct {
	correlationID uuid.UUID
	startedAt     time.Time
}

type commandContextKey struct{}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "taskflow",
	Short: "TaskFlow - a small, durable task list",
	Long: `TaskFlow keeps a single list of tasks with a priority and a
completion flag. The list is saved after every change.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if app == nil && bootstrap != nil && cmd.Annotations[skipBootstrapAnnotation] == "" {
			a, closeFn, err := bootstrap(cmd.Context(), cfgFile, verbose)
			if err != nil {
				return err
			}
			SetApp(a)
			cleanup = closeFn
			if a.Logger != nil {
				logger = a.Logger
			}
		}
		if logger == nil {
			logger = slog.Default()
		}

		info := commandContext{
			correlationID: uuid.New(),
			startedAt:     time.Now(),
		}
		ctx := context.WithValue(cmd.Context(), commandContextKey{}, info)
		ctx = observability.WithCorrelationID(ctx, info.correlationID.String())
		ctx = observability.WithOperation(ctx, cmd.CommandPath())
		cmd.SetContext(ctx)
		logger.DebugContext(ctx, "command start", "command", cmd.CommandPath())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger == nil {
			logger = slog.Default()
		}
		info, ok := cmd.Context().Value(commandContextKey{}).(commandContext)
		if !ok {
			return
		}
		logger.DebugContext(cmd.Context(), "command end",
			"command", cmd.CommandPath(),
			observability.DurationKey, time.Since(info.startedAt).Milliseconds(),
		)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if cleanup != nil {
		cleanup()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) {
	rootCmd.SetContext(ctx)
	Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (TOML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// AddCommand adds a command to the root command.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

// SetLogger sets the CLI logger.
func SetLogger(l *slog.Logger) {
	logger = l
}

// SetBootstrap registers the function that builds the App before a command runs.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}
