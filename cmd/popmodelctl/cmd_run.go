package main

import (
	"github.com/spf13/cobra"

	"github.com/mbsabath/popmodel/internal/report"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate a number of generations and print the trajectory",
		Long: `Simulate the population for --generations steps and print one row per
generation, starting at generation 0.

If an update fails, the generations computed before the failure are still
printed and the command exits with the error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatName, _ := cmd.Flags().GetString("format")
			format, err := report.ParseFormat(formatName)
			if err != nil {
				return err
			}
			withSummary, _ := cmd.Flags().GetBool("summary")

			sc, err := resolveScenario(cmd)
			if err != nil {
				return err
			}

			points, runErr := sc.Run()
			out := cmd.OutOrStdout()
			if len(points) > 0 {
				if err := report.Write(out, format, points); err != nil {
					return err
				}
			}
			if runErr != nil {
				return runErr
			}
			if withSummary {
				summary, err := report.Summarize(points)
				if err != nil {
					return err
				}
				return report.WriteSummary(cmd.ErrOrStderr(), summary)
			}
			return nil
		},
	}
	addModelFlags(cmd)
	cmd.Flags().IntP("generations", "n", 10, "Number of generations to simulate")
	cmd.Flags().String("format", string(report.FormatTable), "Output format: table|csv|json")
	cmd.Flags().Bool("summary", false, "Print a one-line trajectory summary to stderr")
	return cmd
}
