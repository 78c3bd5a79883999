package main

import (
	"context"

	"github.com/hupe1980/sptensor"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newContractCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "contract <a> <modeA> <b> <modeB>",
		Short: "Contract axis modeA of a with axis modeB of b",
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

			res, err := sptensor.Contract(ta, modeA, tb, modeB)
			if err != nil {
				return err
			}
			return a.emit(cmd, out, res)
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "write the result here instead of printing it")
	return cmd
}

// loadPair loads two independent tensors concurrently.
func (a *app) loadPair(ctx context.Context, nameA, nameB string) (*sptensor.Tensor, *sptensor.Tensor, error) {
	var ta, tb *sptensor.Tensor

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ta, err = a.load(ctx, nameA)
		return err
	})
	g.Go(func() error {
		var err error
		tb, err = a.load(ctx, nameB)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return ta, tb, nil
}
