package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"irmodel/internal/irdump"
	"irmodel/internal/replay"
)

func newDumpCmd() *cobra.Command {
	var (
		opts   irdump.DumpOptions
		output string
	)
	cmd := &cobra.Command{
		Use:   "dump <stream>",
		Short: "Replay one stream and print the module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			s, cleanup, err := prepare(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			defer s.finish(cmd)

			st, err := replay.Load(args[0])
			if err != nil {
				return err
			}
			buildOpts, err := s.cfg.BuildOptions()
			if err != nil {
				return err
			}
			idx := s.timer.Begin("replay")
			m, err := replay.Run(cmd.Context(), st, buildOpts)
			s.timer.End(idx, st.Name)
			if err != nil {
				dumpRing(cmd)
				return err
			}

			out := cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer func() {
					if cerr := f.Close(); err == nil {
						err = cerr
					}
				}()
				out = f
			}
			return s.timer.Time("dump", func() error {
				if err := irdump.DumpModule(out, m, opts); err != nil {
					return fmt.Errorf("dump %s: %w", st.Name, err)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&opts.Metadata, "metadata", false, "print metadata blocks")
	cmd.Flags().BoolVar(&opts.Locations, "locations", false, "print debug location indices")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the dump to a file instead of stdout")
	return cmd
}
