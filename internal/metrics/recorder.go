package metrics

import "time"

// Stage names one step of a generation run.
type Stage string

const (
	StageScan     Stage = "scan"
	StageParse    Stage = "parse"
	StageRender   Stage = "render"
	StageAssets   Stage = "assets"
	StageReport   Stage = "report"
	StagePrepare  Stage = "prepare"
	StageClassify Stage = "classify"
)

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultWarning ResultLabel = "warning"
	ResultFatal   ResultLabel = "fatal"
)

// BuildOutcomeLabel is the final status of a generation run.
type BuildOutcomeLabel string

const (
	BuildOutcomeSuccess BuildOutcomeLabel = "success"
	BuildOutcomeWarning BuildOutcomeLabel = "warning"
	BuildOutcomeFailed  BuildOutcomeLabel = "failed"
)

// Recorder defines observability hooks for generation metrics. Implementations
// may forward to Prometheus or be a no-op.
type Recorder interface {
	ObserveStageDuration(stage Stage, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncStageResult(stage Stage, result ResultLabel)
	IncBuildOutcome(outcome BuildOutcomeLabel)
	AddPages(template string, n int)
	IncWarning(kind string)
	SetSourceFiles(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(Stage, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)        {}
func (NoopRecorder) IncStageResult(Stage, ResultLabel)         {}
func (NoopRecorder) IncBuildOutcome(BuildOutcomeLabel)         {}
func (NoopRecorder) AddPages(string, int)                      {}
func (NoopRecorder) IncWarning(string)                         {}
func (NoopRecorder) SetSourceFiles(int)                        {}

// Timer measures one stage and reports it when stopped.
type Timer struct {
	rec   Recorder
	stage Stage
	start time.Time
}

// StartStage begins timing stage on rec.
func StartStage(rec Recorder, stage Stage) *Timer {
	return &Timer{rec: rec, stage: stage, start: time.Now()}
}

// Stop records the stage duration and result, returning the elapsed time.
func (t *Timer) Stop(result ResultLabel) time.Duration {
	d := time.Since(t.start)
	t.rec.ObserveStageDuration(t.stage, d)
	t.rec.IncStageResult(t.stage, result)
	return d
}
