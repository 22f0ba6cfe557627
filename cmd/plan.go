package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Run one induction planning pass and print the decision list",
	RunE:  runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := newService()
	if err != nil {
		return err
	}
	defer closeService(svc)

	res, err := svc.Plan(ctx)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run %s (%s)\n", res.RunID, res.Algorithm)
	for _, d := range res.Decisions {
		fmt.Fprintf(out, "%-8s %-12s score %6.2f  %s\n", d.TrainsetID, d.Category, d.Score, d.Target)
		for _, c := range d.Conflicts {
			fmt.Fprintf(out, "         conflict: %s\n", c)
		}
	}
	fmt.Fprintf(out, "in service %d, maintenance %d, cleaning %d, inspection %d, standby %d\n",
		res.Summary.InService, res.Summary.Maintenance, res.Summary.Cleaning,
		res.Summary.Inspection, res.Summary.Standby)
	fmt.Fprintf(out, "shunting moves %d, compliance %.1f%%\n", res.ShuntingMoves, res.CompliancePct)
	for _, a := range res.Alerts {
		fmt.Fprintf(out, "alert [%s] %s\n", a.Level, a.Message)
	}
	return nil
}
