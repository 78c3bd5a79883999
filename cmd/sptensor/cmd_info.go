package main

import (
	"fmt"

	"github.com/hupe1980/sptensor/kv"
	"github.com/spf13/cobra"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <tensor>",
		Short: "Print order, shape and entry count of a tensor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "order:   %d\n", t.Order())
			fmt.Fprintf(w, "shape:   %s\n", t.Shape())
			fmt.Fprintf(w, "nnz:     %d\n", t.NNZ())
			fmt.Fprintf(w, "support: %d\n", t.Support().GetCardinality())
			fmt.Fprintf(w, "store:   %s\n", t.Store().Kind())

			if bt, ok := t.Store().(*kv.BPTree); ok {
				st := bt.Stats()
				fmt.Fprintf(w, "btree:   height=%d internal=%d leaves=%d branching=%d\n",
					st.Height, st.InternalNodes, st.Leaves, bt.BranchingFactor())
			}
			return nil
		},
	}
}
