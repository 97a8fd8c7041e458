package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"irmodel/internal/ir"
	"irmodel/internal/irbuild"
	"irmodel/internal/replay"
	"irmodel/internal/ui"
)

type batchOutcome struct {
	modules []*ir.Module
	err     error
}

// startBatch runs the batch in the background. events is closed after the
// outcome has been sent.
func startBatch(ctx context.Context, streams []*replay.Stream, opts irbuild.Options, jobs, buffer int) (<-chan replay.Event, <-chan batchOutcome) {
	events := make(chan replay.Event, buffer)
	outcomeCh := make(chan batchOutcome, 1)
	go func() {
		modules, err := replay.BuildAllWithProgress(ctx, streams, opts, jobs, replay.ChannelSink{Ch: events})
		outcomeCh <- batchOutcome{modules: modules, err: err}
		close(events)
	}()
	return events, outcomeCh
}

// awaitBatch discards events nobody reads any more so the producer can
// finish, then returns its outcome.
func awaitBatch(events <-chan replay.Event, outcomeCh <-chan batchOutcome) batchOutcome {
	for range events {
	}
	return <-outcomeCh
}

// buildAllWithUI runs the batch in the background while a progress view
// consumes its events. Quitting the view early cancels the batch.
func buildAllWithUI(ctx context.Context, title string, streams []*replay.Stream, opts irbuild.Options, jobs int) ([]*ir.Module, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events, outcomeCh := startBatch(ctx, streams, opts, jobs, 256)

	names := make([]string, len(streams))
	for i, s := range streams {
		names[i] = s.Name
	}
	program := tea.NewProgram(ui.NewProgressModel(title, names, events), tea.WithOutput(os.Stdout))
	final, uiErr := program.Run()
	if uiErr != nil || ui.Interrupted(final) {
		cancel()
	}
	outcome := awaitBatch(events, outcomeCh)
	if uiErr != nil {
		return outcome.modules, uiErr
	}
	return outcome.modules, outcome.err
}
