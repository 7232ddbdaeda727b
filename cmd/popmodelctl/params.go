package main

import (
	"github.com/spf13/cobra"

	"github.com/mbsabath/popmodel/internal/scenario"
)

const defaultShare = 0.5

func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().String("scenario", "", "Scenario file (.yaml, .yml or .json)")
	cmd.Flags().Float64("share", defaultShare, "Initial share of strategy x, within [0, 1]")
	cmd.Flags().Float64("xx", 1, "Payoff to x meeting x")
	cmd.Flags().Float64("xy", 1, "Payoff to x meeting y")
	cmd.Flags().Float64("yx", 1, "Payoff to y meeting x")
	cmd.Flags().Float64("yy", 1, "Payoff to y meeting y")
}

// resolveScenario builds the scenario from flags. With --scenario, the file
// supplies the values and only flags set explicitly override it; the result
// is validated after the overrides.
func resolveScenario(cmd *cobra.Command) (scenario.Scenario, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("scenario")

	var sc scenario.Scenario
	if path != "" {
		loaded, err := scenario.Read(path)
		if err != nil {
			return scenario.Scenario{}, err
		}
		sc = loaded
	}
	use := func(name string) bool {
		return flags.Lookup(name) != nil && (path == "" || flags.Changed(name))
	}

	if use("share") {
		v, _ := flags.GetFloat64("share")
		sc.Share = scenario.Float(v)
	}
	if use("generations") {
		sc.Generations, _ = flags.GetInt("generations")
	}
	for name, slot := range map[string]**float64{
		"xx": &sc.Matrix.XX,
		"xy": &sc.Matrix.XY,
		"yx": &sc.Matrix.YX,
		"yy": &sc.Matrix.YY,
	} {
		if use(name) {
			v, _ := flags.GetFloat64(name)
			*slot = scenario.Float(v)
		}
	}

	if err := sc.Validate(); err != nil {
		return scenario.Scenario{}, err
	}
	return sc, nil
}
