package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"depsolver/internal/adapters"
	"depsolver/internal/core"
	"depsolver/internal/ports"
)

type renderOptions struct {
	Table string
}

func newRenderCommand() *cobra.Command {
	opts := renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the Problem built from a candidate table without solving it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Table, "table", "", "Candidate table YAML file")
	_ = viper.BindPFlag("table", cmd.Flags().Lookup("table"))
	return cmd
}

func runRender(cmd *cobra.Command, opts renderOptions) error {
	table := resolveString(cmd, opts.Table, "table", "table")
	var loader ports.CandidateTablePort = adapters.NewCandidateTableFileAdapter()
	candidates, policy, base, err := loader.Load(table)
	if err != nil {
		return err
	}

	problem, err := core.BuildProblem(cmd.Context(), candidates, core.BuildOptions{
		Policy:       policy,
		BasePackages: adapters.BasePackagePredicate(base),
	})
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), core.RenderProblem(problem, candidates))
	return nil
}
