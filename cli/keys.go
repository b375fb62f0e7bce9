package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/codetesla51/attemptguard/limiter"
	"github.com/codetesla51/attemptguard/store"
)

var checkCmd = &cobra.Command{
	Use:   "check <key>",
	Short: "Show whether a key may attempt its action",
	Long: `Show whether a key may attempt its action.

The memory backend lives only as long as this process, so check always sees
a fresh key. Use the redis or postgres backend to inspect a shared ledger.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		a.warnEphemeral(cmd.Name())
		res, err := a.limiter.Check(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printResult(cmd.OutOrStdout(), args[0], res)
		return nil
	},
}

var recordCmd = &cobra.Command{
	Use:   "record <key>",
	Short: "Record one attempt for a key",
	Long: `Record one attempt for a key.

Attempts only add up across runs with the redis or postgres backend. With
the memory backend every run starts from an empty ledger.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		a.warnEphemeral(cmd.Name())
		res, err := a.limiter.Record(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printResult(cmd.OutOrStdout(), args[0], res)
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear <key>",
	Short: "Forget all attempts for a key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.limiter.Clear(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: cleared\n", args[0])
		return nil
	},
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Drop expired ledger entries",
	Long: `Drop expired ledger entries from backends that keep them after expiry.
Expired entries never affect throttling; this only reclaims space.
Redis expires keys on its own and needs no pruning.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		p, ok := a.store.(store.Pruner)
		if !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "%s backend expires entries itself, nothing to prune\n", a.cfg.Store.Backend)
			return nil
		}
		n, err := p.Prune(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "pruned %d expired entries\n", n)
		return nil
	},
}

func printResult(w io.Writer, key string, res limiter.Result) {
	if res.Limited {
		fmt.Fprintf(w, "%s: locked out, try again in %s\n", key, limiter.FormatWaitTime(res.WaitSeconds))
		return
	}
	fmt.Fprintf(w, "%s: allowed, %d attempts remaining\n", key, res.Remaining)
}

func init() {
	rootCmd.AddCommand(checkCmd, recordCmd, clearCmd, pruneCmd)
}
