package main

import (
	"github.com/hupe1980/sptensor/codec"
	"github.com/hupe1980/sptensor/tensorio"
	"github.com/spf13/cobra"
)

func newConvertCmd(a *app) *cobra.Command {
	var format, compression, codecName string

	cmd := &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Rewrite a tensor in another format or compression",
		Long: `Rewrite a tensor. The input format is detected from its content;
the output format and compression default to the output name, for example
"out.json.zst" writes a zstd-compressed JSON snapshot.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := tensorio.ParseFormat(format)
			if err != nil {
				return err
			}
			c, err := tensorio.ParseCompression(compression)
			if err != nil {
				return err
			}
			cdc, err := codec.ByName(codecName)
			if err != nil {
				return err
			}

			t, err := a.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.save(cmd.Context(), args[1], t,
				tensorio.WithFormat(f),
				tensorio.WithCompression(c),
				tensorio.WithCodec(cdc),
			)
		},
	}

	cmd.Flags().StringVar(&format, "format", "auto", "output format: auto, coo or json")
	cmd.Flags().StringVar(&compression, "compression", "auto", "output compression: auto, none, zstd or lz4")
	cmd.Flags().StringVar(&codecName, "codec", codec.Default.Name(), "JSON codec: json or go-json")
	return cmd
}
