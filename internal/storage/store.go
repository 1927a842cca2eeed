package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/ropesim/internal/config"
	"github.com/san-kum/ropesim/internal/rope"
	"github.com/san-kum/ropesim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	statesFile   = "states.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Timestamp   time.Time          `json:"timestamp"`
	Rope        rope.Config        `json:"rope"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Seed        int64              `json:"seed"`
	Jitter      float64            `json:"jitter"`
	Drive       string             `json:"drive"`
	Nodes       int                `json:"nodes"`
	Steps       int                `json:"steps"`
	SampleEvery int                `json:"sample_every"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes result under a new run directory and returns its id.
func (s *Store) Save(name string, cfg *config.Config, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	drive := cfg.Drive.Mode
	if drive == "" {
		drive = config.DriveHold
	}
	meta := RunMetadata{
		ID:          runID,
		Name:        name,
		Timestamp:   now,
		Rope:        cfg.Rope,
		Dt:          cfg.Run.Dt,
		Duration:    cfg.Run.Duration,
		Seed:        cfg.Run.Seed,
		Jitter:      cfg.Run.Jitter,
		Drive:       drive,
		Nodes:       result.Nodes,
		Steps:       result.StepsTaken,
		SampleEvery: result.SampleEvery,
		Metrics:     result.Metrics,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeStates(filepath.Join(runDir, statesFile), result); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeStates lays out one row per sample: time, x0, y0, x1, y1, ...
func writeStates(path string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if len(result.States) > 0 {
		header := []string{"time"}
		for i := 0; i < len(result.States[0])/2; i++ {
			header = append(header, fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i))
		}
		if err := w.Write(header); err != nil {
			return err
		}

		for i := range result.States {
			row := make([]string, 0, len(result.States[i])+1)
			row = append(row, strconv.FormatFloat(result.Times[i], 'f', 6, 64))
			for _, val := range result.States[i] {
				row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) statesPath(runID string) string {
	return filepath.Join(s.baseDir, runID, statesFile)
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", runID, ErrRunNotFound)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%s: %v: %w", runID, err, ErrCorruptRun)
	}
	return &meta, nil
}

func (s *Store) LoadStates(runID string) ([][]float64, []float64, error) {
	file, err := os.Open(s.statesPath(runID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("%s: %w", runID, ErrRunNotFound)
		}
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %v: %w", runID, err, ErrCorruptRun)
	}

	if len(records) < 2 {
		return [][]float64{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	states := make([][]float64, 0, len(records)-1)

	for i, record := range records[1:] {
		if len(record) == 0 {
			continue
		}
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("%s row %d: %v: %w", runID, i+1, err, ErrCorruptRun)
			}
			vals[j] = v
		}
		times = append(times, vals[0])
		states = append(states, vals[1:])
	}

	return states, times, nil
}

// LoadResult rebuilds a sim.Result from a stored run.
func (s *Store) LoadResult(runID string) (*RunMetadata, *sim.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	states, times, err := s.LoadStates(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, &sim.Result{
		States:      states,
		Times:       times,
		Metrics:     meta.Metrics,
		Nodes:       meta.Nodes,
		StepsTaken:  meta.Steps,
		SampleEvery: meta.SampleEvery,
	}, nil
}
