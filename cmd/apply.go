package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply <scenario-id>",
	Short: "Promote a simulated scenario through the confidence gate",
	Args:  cobra.ExactArgs(1),
	RunE:  runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := newService()
	if err != nil {
		return err
	}
	defer closeService(svc)

	rec, err := svc.Apply(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "scenario %s applied as %s (confidence %.2f)\n",
		rec.ScenarioID, rec.ID, rec.Confidence)
	return nil
}
