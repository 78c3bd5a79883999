package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/hupe1980/sptensor"
	"github.com/hupe1980/sptensor/kv"
	"github.com/spf13/cobra"
)

func newCompareCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <a> <modeA> <b> <modeB>",
		Short: "Run the same contraction on every store kind and report the cost",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			modeA, err := parseMode(args[1])
			if err != nil {
				return err
			}
			modeB, err := parseMode(args[3])
			if err != nil {
				return err
			}

			ta, tb, err := a.loadPair(cmd.Context(), args[0], args[2])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "store\tnnz\tgets\tinserts\tadds\tmuls\tnodes\tduration")

			var first *sptensor.Tensor
			for _, kind := range kv.Kinds {
				mc := &sptensor.BasicMetricsCollector{}

				// Rebuild the operands on this store so lookups hit it too.
				ra, err := restore(ta, kind, a.branchingFactor)
				if err != nil {
					return err
				}
				rb, err := restore(tb, kind, a.branchingFactor)
				if err != nil {
					return err
				}

				start := time.Now()
				res, err := sptensor.Contract(ra, modeA, rb, modeB,
					sptensor.WithMetricsCollector(mc),
					sptensor.WithLogger(a.logger.WithStore(kind.String())),
				)
				if err != nil {
					return err
				}
				elapsed := time.Since(start)
				a.collector.RecordContract(mc.Totals(), elapsed, nil)

				nodes := "-"
				if bt, ok := res.Store().(*kv.BPTree); ok {
					nodes = fmt.Sprint(bt.Stats().Nodes())
				}

				st := mc.Totals()
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%s\t%s\n",
					kind, res.NNZ(), st.Gets, st.Inserts, st.Adds, st.Muls, nodes, elapsed.Round(time.Microsecond))

				if first == nil {
					first = res
				} else if !first.Equal(res) {
					return fmt.Errorf("store %s produced a different result", kind)
				}
			}
			return w.Flush()
		},
	}
}

// restore copies t onto a fresh store of the given kind.
func restore(t *sptensor.Tensor, kind kv.Kind, branching int) (*sptensor.Tensor, error) {
	out, err := sptensor.New(t.Shape(), sptensor.WithStore(kind), sptensor.WithBranchingFactor(branching))
	if err != nil {
		return nil, err
	}
	for c, v := range t.Entries() {
		if err := out.Insert(c, v); err != nil {
			return nil, err
		}
	}
	return out, nil
}
