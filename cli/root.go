// Package cli provides the attemptguard command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "attemptguard",
	Short: "Attempt throttle for sensitive actions",
	Long: `attemptguard limits how often a sensitive action such as sign-in may be
attempted per action key. Five attempts inside a minute lock the key out
for five minutes by default.

Configuration:
  Config is loaded from attemptguard.yaml in the current directory,
  $HOME/.attemptguard/, or /etc/attemptguard/.

  Environment variables override config values with the ATTEMPTGUARD_ prefix.
  Example: ATTEMPTGUARD_STORE_BACKEND=redis

Commands:
  serve    Serve the throttle over HTTP
  check    Show whether a key may attempt its action
  record   Record one attempt for a key
  clear    Forget all attempts for a key
  prune    Drop expired ledger entries`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./attemptguard.yaml)")
}
