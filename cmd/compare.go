package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare <scenario-id>...",
	Short: "Rank previously simulated scenarios",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := newService()
	if err != nil {
		return err
	}
	defer closeService(svc)

	cmp, err := svc.Compare(ctx, args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for i, r := range cmp.Ranking {
		fmt.Fprintf(out, "%d. %s (%s) composite %.2f\n", i+1, r.ScenarioID, r.ScenarioName, r.Composite)
	}
	fmt.Fprintf(out, "best overall: %s\n", cmp.BestOverall)
	for metric, id := range cmp.BestPerMetric {
		fmt.Fprintf(out, "best %s: %s\n", metric, id)
	}
	return nil
}
