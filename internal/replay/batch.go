package replay

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"irmodel/internal/ir"
	"irmodel/internal/irbuild"
)

// BuildAll replays streams concurrently, one builder per stream, with at
// most jobs builds in flight (GOMAXPROCS when jobs <= 0). modules[i] is
// nil when streams[i] failed; the returned error lists every failure in
// stream order.
func BuildAll(ctx context.Context, streams []*Stream, opts irbuild.Options, jobs int) ([]*ir.Module, error) {
	return BuildAllWithProgress(ctx, streams, opts, jobs, nil)
}

// BuildAllWithProgress is BuildAll reporting each stream's progress to sink.
func BuildAllWithProgress(ctx context.Context, streams []*Stream, opts irbuild.Options, jobs int, sink ProgressSink) ([]*ir.Module, error) {
	modules := make([]*ir.Module, len(streams))
	if len(streams) == 0 {
		return modules, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	for i, s := range streams {
		emit(sink, Event{Index: i, Stream: s.Name, Status: StatusQueued})
	}

	// Indices are unique per goroutine, no mutex needed.
	errs := make([]error, len(streams))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(streams)))
	for i, s := range streams {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			emit(sink, Event{Index: i, Stream: s.Name, Status: StatusWorking})
			start := time.Now()

			o := opts
			o.Name = s.Name
			m, err := Run(gctx, s, o)
			if err != nil {
				errs[i] = err
				emit(sink, Event{Index: i, Stream: s.Name, Status: StatusError, Err: err, Elapsed: time.Since(start)})
				return nil
			}
			modules[i] = m
			emit(sink, Event{Index: i, Stream: s.Name, Status: StatusDone, Elapsed: time.Since(start)})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return modules, fmt.Errorf("replay: %w", err)
	}

	var result *multierror.Error
	for _, err := range errs {
		if err != nil {
			result = multierror.Append(result, err)
		}
	}
	return modules, result.ErrorOrNil()
}
