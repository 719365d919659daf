package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"

	"github.com/ossian-f/springlab/internal/motion"
)

// ExportData is the JSON dump of one run: its metadata plus every frame.
type ExportData struct {
	RunMetadata
	Frames []FrameRecord `json:"frames"`
}

type FrameRecord struct {
	T  float64 `json:"t"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	VX float64 `json:"vx"`
	VY float64 `json:"vy"`
}

func frameRecords(frames []motion.Frame) []FrameRecord {
	records := make([]FrameRecord, len(frames))
	for i, f := range frames {
		records[i] = FrameRecord{
			T:  f.T,
			X:  f.Value.X,
			Y:  f.Value.Y,
			VX: f.Velocity.X,
			VY: f.Velocity.Y,
		}
	}
	return records
}

// ExportJSON writes a run as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, frames []motion.Frame) error {
	data := ExportData{
		RunMetadata: *meta,
		Frames:      frameRecords(frames),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportCSV writes a run's frames in the same layout as frames.csv.
func ExportCSV(w io.Writer, frames []motion.Frame) error {
	cw := csv.NewWriter(w)
	if err := writeFrames(cw, frames); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
