package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/ossian-f/springlab/internal/motion"
	"github.com/ossian-f/springlab/internal/spring"
)

// Store persists animation runs under a base directory, one subdirectory
// per run holding metadata.json and frames.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Vec is a 2-D value in persisted metadata.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SpringParams records the model a run was fitted with, in both raw and
// design form.
type SpringParams struct {
	Mass         float64 `json:"mass"`
	Stiffness    float64 `json:"stiffness"`
	Damping      float64 `json:"damping"`
	DampingRatio float64 `json:"damping_ratio"`
	Period       float64 `json:"period"`
}

// Release records one fitted drag-release. From is the authoritative start
// point, after any nudge.
type Release struct {
	Velocity Vec `json:"velocity"`
	From     Vec `json:"from"`
	To       Vec `json:"to"`
}

type RunMetadata struct {
	ID               string         `json:"id"`
	Timestamp        time.Time      `json:"timestamp"`
	Spring           SpringParams   `json:"spring"`
	Release          Release        `json:"release"`
	RelativeVelocity Vec            `json:"relative_velocity"`
	FPS              int            `json:"fps"`
	Summary          motion.Summary `json:"summary"`
}

func springParams(m spring.Model) SpringParams {
	return SpringParams{
		Mass:         m.Mass,
		Stiffness:    m.Stiffness,
		Damping:      m.Damping,
		DampingRatio: m.DampingRatio(),
		Period:       m.FrequencyResponse(),
	}
}

// Save writes one run to disk and returns its id.
func (s *Store) Save(model spring.Model, release Release, timing spring.Timing, fps int, frames []motion.Frame, summary motion.Summary) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:               runID,
		Timestamp:        time.Now(),
		Spring:           springParams(model),
		Release:          release,
		RelativeVelocity: Vec{X: timing.InitialVelocity.X, Y: timing.InitialVelocity.Y},
		FPS:              fps,
		Summary:          summary,
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
	if err := writeFrames(w, frames); err != nil {
		return "", err
	}

	return runID, nil
}

func writeFrames(w *csv.Writer, frames []motion.Frame) error {
	if err := w.Write([]string{"time", "x", "y", "vx", "vy"}); err != nil {
		return err
	}
	for _, f := range frames {
		row := []string{
			strconv.FormatFloat(f.T, 'f', 6, 64),
			strconv.FormatFloat(f.Value.X, 'f', 6, 64),
			strconv.FormatFloat(f.Value.Y, 'f', 6, 64),
			strconv.FormatFloat(f.Velocity.X, 'f', 6, 64),
			strconv.FormatFloat(f.Velocity.Y, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// List returns metadata for every readable run, oldest first. Directories
// without parseable metadata are skipped.
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

	sort.Slice(runs, func(i, j int) bool {
		if runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})

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

// LoadFrames reads back the sampled frames of a run. Malformed rows are
// skipped.
func (s *Store) LoadFrames(runID string) ([]motion.Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	frames := make([]motion.Frame, 0, len(records))
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 5 {
			continue
		}

		vals := make([]float64, 5)
		ok := true
		for j := 0; j < 5; j++ {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}

		frames = append(frames, motion.Frame{
			T:        vals[0],
			Value:    spring.Point{X: vals[1], Y: vals[2]},
			Velocity: spring.Vec2{X: vals[3], Y: vals[4]},
		})
	}

	return frames, nil
}
