// Package cmd provides CLI commands for roman-calc.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	debug     bool
	logFormat string
	noHistory bool
	remoteURL string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "roman-calc",
	Short: "Add and subtract Roman numerals",
	Long: `roman-calc adds and subtracts Roman numerals without converting
them to integers. Numerals are rewritten into additive form, combined
symbol by symbol, and contracted back into the shortest form.

It supports:
- Adding and subtracting numerals of any size up to a length limit
- Evaluating YAML batch files of problems concurrently
- Recording calculation history in SQLite
- Serving the calculator over HTTP

Example:
  roman-calc add IV II
  roman-calc subtract MMXXVI MCMXCIX
  roman-calc batch problems.yaml
  roman-calc serve --addr :8080
  roman-calc add IV II --remote http://localhost:8080`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// DEBUG=true in the environment or .env also enables debug logging.
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return setupLogging(cmd.ErrOrStderr(), debug || cfg.Debug)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text or json)")
	rootCmd.PersistentFlags().BoolVar(&noHistory, "no-history", false, "do not record calculations")
	rootCmd.PersistentFlags().StringVar(&remoteURL, "remote", "", "calculate on a roman-calc server (e.g. http://localhost:8080)")

	// Add subcommands
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(subtractCmd)
	rootCmd.AddCommand(expandCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
}

func setupLogging(w io.Writer, enableDebug bool) error {
	logLevel := slog.LevelInfo
	if enableDebug {
		logLevel = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: logLevel}

	var handler slog.Handler
	switch logFormat {
	case "", "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return fmt.Errorf("unknown log format %q", logFormat)
	}

	slog.SetDefault(slog.New(handler))
	return nil
}

// Helper function to get config file path.
func getConfigFile() string {
	if cfgFile != "" {
		return cfgFile
	}
	return "" // Will use default .env loading
}

// Helper function to handle errors and exit.
func exitOnError(err error, msg string) {
	if err != nil {
		slog.Error(msg, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		os.Exit(1)
	}
}
