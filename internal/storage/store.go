// Package storage persists simulation runs under a data directory: one
// subdirectory per run holding metadata.json and frames.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/ropesim/internal/runner"
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
	ID           string             `json:"id"`
	Scenario     string             `json:"scenario"`
	Timestamp    time.Time          `json:"timestamp"`
	Particles    int                `json:"particles"`
	Dt           float64            `json:"dt"`
	Iterations   int                `json:"iterations"`
	Duration     float64            `json:"duration"`
	BendingModel string             `json:"bending_model"`
	Metrics      map[string]float64 `json:"metrics"`
}

// Save writes a run's metadata and frames; it returns the generated run ID.
func (s *Store) Save(scenario, bendingModel string, cfg runner.Config, result *runner.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	particles := 0
	if len(result.Frames) > 0 {
		particles = len(result.Frames[0])
	}

	meta := RunMetadata{
		ID:           runID,
		Scenario:     scenario,
		Timestamp:    time.Now(),
		Particles:    particles,
		Dt:           cfg.Dt,
		Iterations:   cfg.Iterations,
		Duration:     cfg.Duration,
		BendingModel: bendingModel,
		Metrics:      result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(result.Frames) == 0 {
		return runID, nil
	}

	if err := w.Write(frameHeader(particles)); err != nil {
		return "", err
	}

	for i, frame := range result.Frames {
		if err := w.Write(frameRow(result.Times[i], frame)); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func frameHeader(particles int) []string {
	header := []string{"time"}
	for i := 0; i < particles; i++ {
		header = append(header, fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i))
	}
	return header
}

func frameRow(t float64, frame runner.Frame) []string {
	row := []string{strconv.FormatFloat(t, 'f', 6, 64)}
	for _, p := range frame {
		row = append(row,
			strconv.FormatFloat(p.X(), 'f', 6, 64),
			strconv.FormatFloat(p.Y(), 'f', 6, 64))
	}
	return row
}

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

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadFrames reads a run's recorded frames back into particle positions.
func (s *Store) LoadFrames(runID string) ([]runner.Frame, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []runner.Frame{}, []float64{}, nil
	}

	frames := make([]runner.Frame, 0, len(records)-1)
	times := make([]float64, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) < 3 || len(record)%2 == 0 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}

		frame := make(runner.Frame, 0, (len(record)-1)/2)
		for i := 1; i < len(record); i += 2 {
			x, errX := strconv.ParseFloat(record[i], 64)
			y, errY := strconv.ParseFloat(record[i+1], 64)
			if errX != nil || errY != nil {
				break
			}
			frame = append(frame, mgl64.Vec2{x, y})
		}

		frames = append(frames, frame)
		times = append(times, t)
	}

	return frames, times, nil
}
