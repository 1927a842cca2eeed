package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/ropesim/internal/sim"
)

type ExportData struct {
	Run    *RunMetadata `json:"run"`
	Times  []float64    `json:"times"`
	States [][]float64  `json:"states"`
}

func ExportJSON(path string, meta *RunMetadata, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, meta, result)
}

// WriteJSON encodes a run to w, the form used for stdout exports.
func WriteJSON(w io.Writer, meta *RunMetadata, result *sim.Result) error {
	data := ExportData{
		Run:    meta,
		Times:  result.Times,
		States: result.States,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportCSV copies a run's raw states file to path.
func (s *Store) ExportCSV(runID, path string) error {
	if _, err := s.Load(runID); err != nil {
		return err
	}
	src, err := os.Open(s.statesPath(runID))
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}
