package replay

import "time"

// Status is the state of one stream in a batch.
type Status string

const (
	// StatusQueued means the stream waits for a free worker.
	StatusQueued Status = "queued"
	// StatusWorking means the stream is being replayed.
	StatusWorking Status = "working"
	// StatusDone means the module was built.
	StatusDone Status = "done"
	// StatusError means the replay failed; Err holds the reason.
	StatusError Status = "error"
)

// Event reports progress of the stream at Index.
type Event struct {
	Index   int
	Stream  string
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes batch events. Events of one stream arrive in
// order; events of different streams interleave.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
