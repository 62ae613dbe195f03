package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/ropesim/internal/runner"
)

type ExportData struct {
	ID           string             `json:"id"`
	Scenario     string             `json:"scenario"`
	BendingModel string             `json:"bending_model"`
	Dt           float64            `json:"dt"`
	Iterations   int                `json:"iterations"`
	Duration     float64            `json:"duration"`
	Steps        int                `json:"steps"`
	Times        []float64          `json:"times"`
	Frames       [][][2]float64     `json:"frames"`
	Metrics      map[string]float64 `json:"metrics"`
}

func exportData(meta *RunMetadata, frames []runner.Frame, times []float64) ExportData {
	data := ExportData{
		ID:           meta.ID,
		Scenario:     meta.Scenario,
		BendingModel: meta.BendingModel,
		Dt:           meta.Dt,
		Iterations:   meta.Iterations,
		Duration:     meta.Duration,
		Steps:        len(times),
		Times:        times,
		Frames:       make([][][2]float64, len(frames)),
		Metrics:      meta.Metrics,
	}
	for i, frame := range frames {
		data.Frames[i] = make([][2]float64, len(frame))
		for j, p := range frame {
			data.Frames[i][j] = [2]float64{p.X(), p.Y()}
		}
	}
	return data
}

// ExportJSON writes a full run (metadata plus frames) as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, frames []runner.Frame, times []float64) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exportData(meta, frames, times))
}

// ExportJSONStdout is ExportJSON to standard output.
func ExportJSONStdout(meta *RunMetadata, frames []runner.Frame, times []float64) error {
	return ExportJSON(os.Stdout, meta, frames, times)
}
