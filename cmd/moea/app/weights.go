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
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mihai-snyk/moea/pkg/weights"
)

// NewWeightsCommand creates the weights subcommand, which prints a simplex
// lattice in the weight file format.
func NewWeightsCommand(out io.Writer) *cobra.Command {
	var objectives, divisions int
	cmd := &cobra.Command{
		Use:   "weights",
		Short: "Print the simplex-lattice weight vectors for M objectives and H divisions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeLattice(out, objectives, divisions)
		},
	}
	cmd.Flags().IntVar(&objectives, "objectives", 2, "Number of objectives M.")
	cmd.Flags().IntVar(&divisions, "divisions", 99, "Number of divisions H.")
	return cmd
}

func writeLattice(out io.Writer, m, h int) error {
	if h < 1 {
		return fmt.Errorf("divisions must be positive, got %d", h)
	}
	w, err := weights.Lattice{Divisions: h}.Weights(m, weights.LatticeSize(m, h))
	if err != nil {
		return err
	}
	for _, v := range w {
		row := make([]string, len(v))
		for i, x := range v {
			row[i] = strconv.FormatFloat(x, 'g', -1, 64)
		}
		if _, err := fmt.Fprintln(out, strings.Join(row, " ")); err != nil {
			return err
		}
	}
	return nil
}
