package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/hupe1980/sptensor/coord"
	"github.com/hupe1980/sptensor/testutil"
	"github.com/spf13/cobra"
)

func newGenCmd(a *app) *cobra.Command {
	var (
		out     string
		density float64
		seed    int64
	)

	cmd := &cobra.Command{
		Use:   "gen <extent>...",
		Short: "Generate a random sparse tensor",
		Long: `Generate a random sparse tensor of the given shape.

About extent0 * extent1 * ... * density coordinates are drawn uniformly;
each receives a whole value in [1, 50]. Repeated draws overwrite, so the
tensor may hold fewer entries.

Example: a 10x10 tensor with around 5 entries

  sptensor gen --density 0.05 10 10`,
		Args: cobra.RangeArgs(0, coord.MaxOrder),
		RunE: func(cmd *cobra.Command, args []string) error {
			shape := make(coord.Coords, len(args))
			for i, s := range args {
				extent, err := strconv.ParseUint(s, 10, 32)
				if err != nil {
					return fmt.Errorf("invalid extent %q", s)
				}
				shape[i] = coord.Mode(extent)
			}

			if !cmd.Flags().Changed("seed") {
				seed = time.Now().UnixNano()
			}
			rng := testutil.NewRNG(seed)

			t, err := rng.Tensor(shape, density, a.tensorOptions()...)
			if err != nil {
				return err
			}
			a.logger.Debug("tensor generated", "seed", seed, "draws", testutil.Draws(shape, density), "nnz", t.NNZ())

			return a.emit(cmd, out, t)
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "write the tensor here instead of printing it")
	cmd.Flags().Float64VarP(&density, "density", "d", 0.05, "fraction of positions to draw, in [0, 1]")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (default: current time)")
	return cmd
}
