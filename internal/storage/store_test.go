package storage

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rainsdm/atmotraj/internal/predict"
)

func testResult() *predict.Result {
	return &predict.Result{
		States: []predict.State{
			{680000, 0, 0, 0, 2200, 0},
			{680000, 44, 0, -0.2, 2199, 0},
		},
		Times:      []float64{0, 0.02},
		StepsTaken: 1,
		Impacted:   false,
		Metrics:    map[string]float64{"max_speed": 2200},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := s.Save("newtonian", "kerbin", "rk4", 0.02, 600, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := s.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Model != "newtonian" || meta.Body != "kerbin" || meta.Steps != 1 {
		t.Errorf("metadata round trip lost fields: %+v", meta)
	}
	if meta.Metrics["max_speed"] != 2200 {
		t.Errorf("metrics not persisted: %+v", meta.Metrics)
	}

	states, times, err := s.LoadStates(runID)
	if err != nil {
		t.Fatalf("load states failed: %v", err)
	}
	if len(states) != 2 || len(times) != 2 {
		t.Fatalf("expected 2 rows, got %d states %d times", len(states), len(times))
	}
	if states[1][4] != 2199 {
		t.Errorf("state value lost: %f", states[1][4])
	}
}

func TestList(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Save("newtonian", "kerbin", "rk4", 0.02, 600, testResult()); err != nil {
		t.Fatal(err)
	}

	runs, err := s.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
}

func TestListEmptyDir(t *testing.T) {
	s := New(t.TempDir() + "/never-created")
	runs, err := s.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportJSON(&buf, "newtonian", "kerbin", "rk4", 0.02, 600, testResult()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if data.Model != "newtonian" || len(data.States) != 2 {
		t.Errorf("export lost fields: %+v", data)
	}
	if !strings.Contains(buf.String(), "max_speed") {
		t.Error("metrics missing from export")
	}
}
