package dataset

import (
	"encoding/json"
	"fmt"
	"io"
)

type payload struct {
	X      []float64     `json:"x"`
	Y      []float64     `json:"y"`
	T      []float64     `json:"t"`
	Frames [][][]float64 `json:"frames"`
}

// Decode reads the solver wire format {x, y, t, frames} from r and validates
// it through New.
func Decode(r io.Reader) (*Dataset, error) {
	var p payload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("dataset: decode: %w", err)
	}
	return New(p.X, p.Y, p.T, p.Frames)
}
