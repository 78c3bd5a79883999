package main

import (
	"github.com/hupe1980/sptensor"
	"github.com/spf13/cobra"
)

func newTraceCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "trace <tensor> <modeA> <modeB>",
		Short: "Sum a tensor over a pair of axes",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			modeA, err := parseMode(args[1])
			if err != nil {
				return err
			}
			modeB, err := parseMode(args[2])
			if err != nil {
				return err
			}

			t, err := a.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			res, err := sptensor.Trace(t, modeA, modeB)
			if err != nil {
				return err
			}
			return a.emit(cmd, out, res)
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "write the result here instead of printing it")
	return cmd
}
