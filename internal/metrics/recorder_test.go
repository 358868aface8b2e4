package metrics

import (
	"testing"
	"time"
)

type testRecorder struct {
	NoopRecorder
	stageDurations map[Stage]int
	stageResults   map[Stage]map[ResultLabel]int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{stageDurations: map[Stage]int{}, stageResults: map[Stage]map[ResultLabel]int{}}
}

func (t *testRecorder) ObserveStageDuration(stage Stage, _ time.Duration) {
	t.stageDurations[stage]++
}

func (t *testRecorder) IncStageResult(stage Stage, result ResultLabel) {
	m, ok := t.stageResults[stage]
	if !ok {
		m = map[ResultLabel]int{}
		t.stageResults[stage] = m
	}
	m[result]++
}

func TestTimerReportsDurationAndResult(t *testing.T) {
	rec := newTestRecorder()
	timer := StartStage(rec, StageParse)
	if d := timer.Stop(ResultWarning); d < 0 {
		t.Fatalf("negative duration %v", d)
	}
	if rec.stageDurations[StageParse] != 1 {
		t.Errorf("expected one duration observation, got %d", rec.stageDurations[StageParse])
	}
	if rec.stageResults[StageParse][ResultWarning] != 1 {
		t.Errorf("expected one warning result, got %v", rec.stageResults[StageParse])
	}
}

func TestNoopRecorderSatisfiesInterface(t *testing.T) {
	var r Recorder = NoopRecorder{}
	StartStage(r, StageScan).Stop(ResultSuccess)
	r.AddPages("page", 1)
}
