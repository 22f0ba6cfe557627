package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/transitflow/depotplan/core/model"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <scenario.yaml>",
	Short: "Run a what-if scenario against the current fleet snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)
}

func loadScenario(path string) (model.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Scenario{}, fmt.Errorf("read scenario: %w", err)
	}
	var sc model.Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return model.Scenario{}, fmt.Errorf("parse scenario: %w", err)
	}
	if sc.ID == "" {
		return model.Scenario{}, fmt.Errorf("scenario id must not be empty")
	}
	return sc, nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sc, err := loadScenario(args[0])
	if err != nil {
		return err
	}
	svc, err := newService()
	if err != nil {
		return err
	}
	defer closeService(svc)

	res, err := svc.Simulate(ctx, sc)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "scenario %s (%s): confidence %.2f\n", sc.ID, sc.Name, res.Confidence)
	for _, d := range res.Differences {
		fmt.Fprintf(out, "%-24s %10.2f -> %10.2f  (%+.2f, %+.2f%%) %s\n",
			d.Metric, d.Baseline, d.Simulated, d.Difference, d.PercentChange, d.Impact)
	}
	for _, r := range res.Recommendations {
		fmt.Fprintf(out, "recommendation: %s\n", r)
	}
	return nil
}
