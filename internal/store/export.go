package store

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/sebastiengilbert73/auto-pde/internal/dataset"
)

// ExportFrameCSV writes one frame in long form: x, y, u per row.
func ExportFrameCSV(w io.Writer, ds *dataset.Dataset, frame int) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"x", "y", "u"}); err != nil {
		return err
	}
	grid := ds.Frame(frame)
	for r, row := range grid {
		for c, v := range row {
			record := []string{
				strconv.FormatFloat(ds.X[c], 'f', 6, 64),
				strconv.FormatFloat(ds.Y[r], 'f', 6, 64),
				strconv.FormatFloat(v, 'f', 6, 64),
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}
	return nil
}

// ExportData is the standalone JSON export shape: run metadata plus the full
// dataset in the solver wire format.
type ExportData struct {
	ID       string        `json:"id"`
	Equation string        `json:"equation"`
	IC       string        `json:"ic"`
	X        []float64     `json:"x"`
	Y        []float64     `json:"y"`
	T        []float64     `json:"t"`
	Frames   [][][]float64 `json:"frames"`
}

// ExportJSON writes one run with its dataset as a single document.
func ExportJSON(w io.Writer, meta *RunMetadata, ds *dataset.Dataset) error {
	data := ExportData{
		ID:       meta.ID,
		Equation: meta.Equation,
		IC:       meta.IC,
		X:        ds.X,
		Y:        ds.Y,
		T:        ds.T,
		Frames:   ds.Frames,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
