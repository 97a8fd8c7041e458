package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"irmodel/internal/ir"
	"irmodel/internal/replay"
	"irmodel/internal/trace"
	"irmodel/internal/ui"
)

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
)

func newReplayCmd() *cobra.Command {
	var (
		jobs   int
		uiFlag string
	)
	cmd := &cobra.Command{
		Use:   "replay <stream>...",
		Short: "Replay recorded streams in parallel and validate the modules",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := prepare(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			defer s.finish(cmd)

			if !cmd.Flags().Changed("jobs") {
				jobs = s.cfg.Replay.Jobs
			}
			mode, err := ui.ParseMode(uiFlag)
			if err != nil {
				return err
			}
			err = runReplay(cmd, s, args, jobs, mode.Enabled(isTerminal(os.Stdout)))
			if err != nil {
				dumpRing(cmd)
			}
			return err
		},
	}
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "parallel builds (0 = GOMAXPROCS)")
	cmd.Flags().StringVar(&uiFlag, "ui", "auto", "progress view (auto|on|off)")
	return cmd
}

func runReplay(cmd *cobra.Command, s *session, paths []string, jobs int, useTUI bool) error {
	ctx := cmd.Context()
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "replay", trace.CurrentSpan(ctx))
	defer span.End(fmt.Sprintf("%d streams", len(paths)))
	ctx = trace.WithSpan(ctx, span)

	streams := make([]*replay.Stream, 0, len(paths))
	err := s.timer.Time("load", func() error {
		for _, p := range paths {
			st, err := replay.Load(p)
			if err != nil {
				return err
			}
			streams = append(streams, st)
		}
		return nil
	})
	if err != nil {
		return err
	}

	opts, err := s.cfg.BuildOptions()
	if err != nil {
		return err
	}

	var modules []*ir.Module
	buildErr := s.timer.Time("replay", func() error {
		var err error
		if useTUI {
			modules, err = buildAllWithUI(ctx, "replaying streams", streams, opts, jobs)
		} else {
			modules, err = replay.BuildAll(ctx, streams, opts, jobs)
		}
		return err
	})

	var invalid []error
	_ = s.timer.Time("validate", func() error {
		for i, m := range modules {
			if m == nil {
				continue
			}
			if err := ir.Validate(m); err != nil {
				invalid = append(invalid, fmt.Errorf("%s: %w", streams[i].Name, err))
				modules[i] = nil
			}
		}
		return errors.Join(invalid...)
	})

	printSummary(cmd.OutOrStdout(), streams, modules)
	return errors.Join(buildErr, errors.Join(invalid...))
}

func printSummary(out io.Writer, streams []*replay.Stream, modules []*ir.Module) {
	for i, st := range streams {
		m := modules[i]
		if m == nil {
			fmt.Fprintf(out, "%s %s\n", failColor.Sprint("FAIL"), st.Name)
			continue
		}
		fmt.Fprintf(out, "%s   %s: %d globals, %d functions, %d declarations\n",
			okColor.Sprint("ok"), st.Name, len(m.Globals), len(m.Definitions), len(m.Declarations))
	}
}
