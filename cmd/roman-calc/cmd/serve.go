package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/roman-calculator/pkg/server"
)

var serveAddr string

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculator over HTTP",
	Long: `Start an HTTP server exposing the calculator.

Routes:
  GET  /health
  POST /api/v1/add        {"left": "IV", "right": "II"}
  POST /api/v1/subtract   {"left": "X", "right": "I"}
  GET  /api/v1/expand/{numeral}

The server stops gracefully on SIGINT or SIGTERM.

Example:
  roman-calc serve --addr :8080`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default ROMAN_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) {
	a, err := openApp(true)
	exitOnError(err, "failed to initialize")
	defer a.Close()

	if err := a.cfg.Validate([]string{"server", "addr"}); err != nil && serveAddr == "" {
		exitOnError(err, "invalid configuration")
	}

	addr := a.cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(a.svc, server.WithAddr(addr), server.WithLogger(slog.Default()))
	if err := srv.ListenAndServe(ctx); err != nil {
		a.Close()
		exitOnError(err, "server error")
	}
}
