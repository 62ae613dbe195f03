package storage

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/ropesim/internal/runner"
)

func sampleResult() *runner.Result {
	return &runner.Result{
		Frames: []runner.Frame{
			{{0, 0}, {1, 0}, {2, 0}},
			{{0, 0}, {1, -0.1}, {2, 0}},
		},
		Times:   []float64{0, 0.01},
		Metrics: map[string]float64{"stretch_error": 0.005},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	cfg := runner.Config{Dt: 0.01, Iterations: 8, Duration: 0.02}
	runID, err := st.Save("hanging", "xpbd", cfg, sampleResult())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(runID, "hanging_") {
		t.Errorf("run id %q missing scenario prefix", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if meta.Scenario != "hanging" || meta.BendingModel != "xpbd" {
		t.Errorf("metadata mismatch: %+v", meta)
	}
	if meta.Particles != 3 {
		t.Errorf("particles = %d, want 3", meta.Particles)
	}
	if meta.Metrics["stretch_error"] != 0.005 {
		t.Errorf("metrics not persisted: %v", meta.Metrics)
	}

	frames, times, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("LoadFrames: %v", err)
	}
	if len(frames) != 2 || len(times) != 2 {
		t.Fatalf("got %d frames, %d times", len(frames), len(times))
	}
	if math.Abs(frames[1][1].Y()+0.1) > 1e-6 {
		t.Errorf("frame 1 particle 1 = %v, want y -0.1", frames[1][1])
	}
	if times[1] != 0.01 {
		t.Errorf("times[1] = %v, want 0.01", times[1])
	}
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("List on empty store: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	cfg := runner.Config{Dt: 0.01, Iterations: 8, Duration: 0.02}
	if _, err := st.Save("a", "pbd", cfg, sampleResult()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := st.Save("b", "none", cfg, sampleResult()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestListMissingBaseDir(t *testing.T) {
	st := New(t.TempDir() + "/never-created")

	runs, err := st.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestExportJSON(t *testing.T) {
	meta := &RunMetadata{
		ID: "hanging_1", Scenario: "hanging", BendingModel: "xpbd",
		Dt: 0.01, Iterations: 8, Duration: 0.02,
		Metrics: map[string]float64{"stretch_error": 0.005},
	}
	frames := []runner.Frame{{mgl64.Vec2{0, 0}, mgl64.Vec2{1, 0}, mgl64.Vec2{2, 0}}}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, frames, []float64{0}); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if data.Steps != 1 || len(data.Frames) != 1 || len(data.Frames[0]) != 3 {
		t.Errorf("unexpected export shape: %+v", data)
	}
}
