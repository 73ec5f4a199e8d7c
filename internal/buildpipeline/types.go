package buildpipeline

import "time"

// Status captures progress of one phase on one file.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for a file. Phase is the phase identifier; it is
// empty for whole-file events.
type Event struct {
	File    string
	Phase   string
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be
// goroutine-safe: parallel runs report concurrently.
type ProgressSink interface {
	OnEvent(Event)
}
