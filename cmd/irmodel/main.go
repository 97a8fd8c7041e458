package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"irmodel/internal/observ"
	"irmodel/internal/project"
	"irmodel/internal/version"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "irmodel",
		Short:         "Incremental IR model builder",
		Long:          `irmodel replays recorded builder streams into IR modules, validates and dumps them`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().Bool("timings", false, "show timing information")
	root.PersistentFlags().String("config", "", "path to irmodel.toml (default: search upward from the working directory)")
	root.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	root.PersistentFlags().String("trace-level", "", "trace level (off|error|phase|detail|debug)")
	root.PersistentFlags().String("trace-mode", "", "trace storage mode (stream|ring|both)")
	root.PersistentFlags().Int("trace-ring-size", 4096, "ring buffer size for ring trace mode")
	root.PersistentFlags().String("cpu-profile", "", "write a CPU profile to the given file")
	root.PersistentFlags().String("mem-profile", "", "write a heap profile to the given file")
	root.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to the given file")

	root.AddCommand(newReplayCmd())
	root.AddCommand(newDumpCmd())
	root.AddCommand(newEncodeCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// main builds the command tree and exits with status 1 when the command fails.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// session is the per-invocation state shared by the subcommands.
type session struct {
	cfg     project.Config
	timer   *observ.Timer
	timings bool
}

// prepare loads the config, applies --color, starts the profilers and
// installs the tracer on cmd's context. The returned cleanup undoes all of it.
func prepare(cmd *cobra.Command) (*session, func(), error) {
	flags := cmd.Root().PersistentFlags()

	cfgPath, err := flags.GetString("config")
	if err != nil {
		return nil, nil, err
	}
	var cfg project.Config
	if cfgPath != "" {
		cfg, err = project.Load(cfgPath)
	} else {
		cfg, err = project.Discover(".")
	}
	if err != nil {
		return nil, nil, err
	}

	colorFlag, err := flags.GetString("color")
	if err != nil {
		return nil, nil, err
	}
	color.NoColor = !(colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout)))

	timings, err := flags.GetBool("timings")
	if err != nil {
		return nil, nil, err
	}

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return nil, nil, err
	}
	stopTracing, err := setupTracing(cmd, cfg.Trace)
	if err != nil {
		stopProfiling()
		return nil, nil, err
	}
	cleanup := func() {
		stopTracing()
		stopProfiling()
	}
	return &session{cfg: cfg, timer: observ.NewTimer(), timings: timings}, cleanup, nil
}

func (s *session) finish(cmd *cobra.Command) {
	if s.timings {
		cmd.PrintErr(s.timer.Summary())
	}
}

// isTerminal reports whether f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
