package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"depsolver/internal/adapters"
	"depsolver/internal/core"
	"depsolver/internal/ports"
)

type solveOptions struct {
	Table string
}

func newSolveCommand() *cobra.Command {
	opts := solveOptions{}
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve a candidate table and print the selected packages or a failure report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSolve(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Table, "table", "", "Candidate table YAML file")
	_ = viper.BindPFlag("table", cmd.Flags().Lookup("table"))
	return cmd
}

func runSolve(ctx context.Context, cmd *cobra.Command, opts solveOptions) error {
	table := resolveString(cmd, opts.Table, "table", "table")
	var loader ports.CandidateTablePort = adapters.NewCandidateTableFileAdapter()
	candidates, policy, base, err := loader.Load(table)
	if err != nil {
		return err
	}

	solver := core.NewSolver(core.NewGophersatOracle(), adapters.BasePackagePredicate(base))
	result, err := solver.Solve(ctx, candidates, policy)
	if err != nil {
		return err
	}

	switch {
	case result.Failures != nil:
		for _, f := range result.Failures.Failures {
			fmt.Fprintf(cmd.OutOrStdout(), "FAILED %s (%s)\n", f.Ref, f.FailureType)
			for _, msg := range f.FailureMessage {
				fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", msg)
			}
		}
		log.Ctx(ctx).Warn().Int("failures", len(result.Failures.Failures)).Msg("resolution infeasible")
	default:
		indices := make([]int, 0, len(result.SelectedIndices))
		for idx := range result.SelectedIndices {
			indices = append(indices, idx)
		}
		sort.Ints(indices)
		for _, idx := range indices {
			fmt.Fprintln(cmd.OutOrStdout(), candidates[idx-1].Ref)
		}
	}
	return nil
}

func resolveString(cmd *cobra.Command, value, key, flagName string) string {
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}
