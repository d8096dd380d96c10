package mcp

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/felixgeelhaar/taskflow/adapter/cli"
	mcpinternal "github.com/felixgeelhaar/taskflow/internal/mcp"
	"github.com/felixgeelhaar/taskflow/pkg/config"
	"github.com/felixgeelhaar/taskflow/pkg/observability"
	"github.com/spf13/cobra"
)

var addr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Serve the task tools over MCP (HTTP). Set MCP_AUTH_TOKEN to require
a bearer token.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		app := cli.GetApp()
		if app == nil || app.Manager == nil {
			return cli.ErrNotInitialized
		}

		cfg := serverConfig(app.Config, addr)
		logger := newServerLogger(cmd.OutOrStdout(), cfg)

		err := mcpinternal.Serve(ctx, cfg, app, logger)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

// serverConfig copies cfg and applies the --addr override.
func serverConfig(cfg *config.Config, addrOverride string) *config.Config {
	out := config.Config{}
	if cfg != nil {
		out = *cfg
	}
	if addrOverride != "" {
		out.MCPAddr = addrOverride
	}
	if out.MCPAddr == "" {
		out.MCPAddr = "127.0.0.1:8082"
	}
	return &out
}

func newServerLogger(out io.Writer, cfg *config.Config) *slog.Logger {
	return observability.LoggerFor(cfg.ServerLogLevel(), cfg.LogFormat, cfg.AppEnv, cli.Version, out)
}

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (default: MCP_ADDR)")
}
