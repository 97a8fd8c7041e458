package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"irmodel/internal/replay"
)

func newEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode <stream.toml> <stream.irs>",
		Short: "Convert a TOML stream to the msgpack stream format",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := replay.Load(args[0])
			if err != nil {
				return err
			}
			if err := replay.Save(args[1], st); err != nil {
				return fmt.Errorf("encode %s: %w", args[1], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d types, %d ops\n", args[1], len(st.Types), len(st.Ops))
			return nil
		},
	}
}
