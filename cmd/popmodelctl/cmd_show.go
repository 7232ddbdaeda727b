package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the population model, optionally after some generations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, _ := cmd.Flags().GetInt("steps")
			if steps < 0 {
				return fmt.Errorf("--steps must be non-negative, got %d", steps)
			}

			sc, err := resolveScenario(cmd)
			if err != nil {
				return err
			}
			model, err := sc.Model()
			if err != nil {
				return err
			}
			for i := 0; i < steps; i++ {
				if err := model.NextGen(); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), model)
			return err
		},
	}
	addModelFlags(cmd)
	cmd.Flags().Int("steps", 0, "Generations to advance before printing")
	return cmd
}
