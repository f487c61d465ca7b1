/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package app

import (
	"io"

	"github.com/spf13/cobra"
	"k8s.io/component-base/logs"
)

// NewMOEACommand creates the root command with the run and weights
// subcommands. Reports are written to out.
func NewMOEACommand(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "moea",
		Short: "moea runs multi-objective evolutionary algorithms on benchmark problems",
		Long: `moea evolves a population toward the Pareto front of a benchmark problem
with NSGA-II, WASF-GA or MOEA/D and writes the final population as VAR.csv
(decision variables) and FUN.csv (objectives).`,
		SilenceUsage: true,
	}
	cmd.SetOut(out)
	logs.AddFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewRunCommand(out))
	cmd.AddCommand(NewWeightsCommand(out))
	return cmd
}
