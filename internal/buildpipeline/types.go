package buildpipeline

import "time"

// Stage describes a phase of compiling one contract file.
type Stage string

const (
	// StageDiscover covers locating source files; events carry no File.
	StageDiscover Stage = "discover"
	// StageParse is lexing and parsing.
	StageParse Stage = "parse"
	// StageBuild is semantic model construction.
	StageBuild Stage = "build"
	// StageRender is template rendering.
	StageRender Stage = "render"
	// StageWrite is writing the generated file.
	StageWrite Stage = "write"
)

// Stages lists the per-file stages in execution order.
var Stages = []Stage{StageParse, StageBuild, StageRender, StageWrite}

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the stage is running.
	StatusWorking Status = "working"
	// StatusDone indicates the stage finished.
	StatusDone Status = "done"
	// StatusSkipped indicates the output was already up to date.
	StatusSkipped Status = "skipped"
	// StatusError indicates the stage failed.
	StatusError Status = "error"
)

// Terminal reports whether no further events follow for the file.
func (s Status) Terminal() bool {
	return s == StatusSkipped || s == StatusError
}

// Event reports progress for a file (or for the overall pipeline when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use; the driver emits from several workers.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings holds stage durations.
type Timings struct {
	stages map[Stage]time.Duration
}

// Set stores a duration for the given stage.
func (t *Timings) Set(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration)
	}
	t.stages[stage] = dur
}

// Duration returns the recorded duration for stage.
func (t Timings) Duration(stage Stage) time.Duration {
	return t.stages[stage]
}

// Sum returns the sum of durations across the provided stages.
func (t Timings) Sum(stages ...Stage) time.Duration {
	var total time.Duration
	for _, stage := range stages {
		total += t.stages[stage]
	}
	return total
}
