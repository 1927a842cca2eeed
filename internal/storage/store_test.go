package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/ropesim/internal/config"
	"github.com/san-kum/ropesim/internal/sim"
)

func sampleResult() *sim.Result {
	return &sim.Result{
		States: [][]float64{
			{0, 0, 10, 0, 20, 0},
			{0, 0, 10, 1.5, 20, 0},
		},
		Times:       []float64{0.0, 0.01},
		Metrics:     map[string]float64{"stretch": 0.25},
		Nodes:       3,
		StepsTaken:  1,
		SampleEvery: 1,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Run.Seed = 42
	cfg.Rope.Iterations = 77

	runID, err := st.Save("hanging", cfg, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Name != "hanging" {
		t.Errorf("expected name 'hanging', got '%s'", meta.Name)
	}
	if meta.Seed != 42 {
		t.Errorf("expected seed 42, got %d", meta.Seed)
	}
	if meta.Rope.Iterations != 77 {
		t.Errorf("expected rope config to round trip, got %+v", meta.Rope)
	}
	if meta.Drive != config.DriveHold {
		t.Errorf("expected drive hold, got %s", meta.Drive)
	}
	if meta.Metrics["stretch"] != 0.25 {
		t.Errorf("expected stretch 0.25, got %f", meta.Metrics["stretch"])
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		t.Fatalf("load states failed: %v", err)
	}
	if len(states) != 2 || len(times) != 2 {
		t.Fatalf("expected 2 samples, got %d states %d times", len(states), len(times))
	}
	if len(states[1]) != 6 || states[1][3] != 1.5 {
		t.Errorf("unexpected state row %v", states[1])
	}
}

func TestStoreLoadResult(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save("rope", config.DefaultConfig(), sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, res, err := st.LoadResult(runID)
	if err != nil {
		t.Fatalf("load result failed: %v", err)
	}
	if meta.ID != runID || res.Nodes != 3 || res.StepsTaken != 1 {
		t.Errorf("unexpected result: %+v", res)
	}
	if track := res.Track(1, 1); len(track) != 2 || track[1] != 1.5 {
		t.Errorf("unexpected track %v", track)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	for i := 0; i < 2; i++ {
		if _, err := st.Save("rope", config.DefaultConfig(), sampleResult()); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "absent"))
	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected empty list, got %v, %v", runs, err)
	}
}

func TestStoreNotFound(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
	if _, _, err := st.LoadStates("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestStoreCorrupt(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	runID, err := st.Save("rope", config.DefaultConfig(), sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	bad := "time,x0,y0\n0.0,abc,1\n"
	if err := os.WriteFile(filepath.Join(dir, runID, statesFile), []byte(bad), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := st.LoadStates(runID); !errors.Is(err, ErrCorruptRun) {
		t.Errorf("expected ErrCorruptRun, got %v", err)
	}
}

func TestStoreFileStructure(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	runID, err := st.Save("rope", config.DefaultConfig(), sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{metadataFile, statesFile} {
		if _, err := os.Stat(filepath.Join(dir, runID, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	runID, err := st.Save("rope", config.DefaultConfig(), sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	meta, res, err := st.LoadResult(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, meta, res); err != nil {
		t.Fatalf("write json: %v", err)
	}
	var decoded ExportData
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Run.ID != runID || len(decoded.States) != 2 {
		t.Errorf("unexpected export %+v", decoded)
	}

	csvPath := filepath.Join(dir, "out.csv")
	if err := st.ExportCSV(runID, csvPath); err != nil {
		t.Fatalf("export csv: %v", err)
	}
	want, _ := os.ReadFile(filepath.Join(dir, runID, statesFile))
	got, _ := os.ReadFile(csvPath)
	if !bytes.Equal(want, got) {
		t.Error("exported csv differs from stored states")
	}
}
