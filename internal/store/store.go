// Package store keeps completed solves on disk, one directory per run with
// metadata.json and dataset.json, so results can be replayed without
// re-solving.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sebastiengilbert73/auto-pde/internal/dataset"
	"github.com/sebastiengilbert73/auto-pde/internal/solver"
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
	ID        string        `json:"id"`
	Equation  string        `json:"equation"`
	IC        string        `json:"ic"`
	Domain    solver.Domain `json:"domain"`
	Timestamp time.Time     `json:"timestamp"`
	Frames    int           `json:"frames"`
	NX        int           `json:"nx"`
	NY        int           `json:"ny"`
}

// Save writes one completed solve and returns its run id.
func (s *Store) Save(req solver.Request, ds *dataset.Dataset) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Equation:  req.Equation,
		IC:        req.IC,
		Domain:    req.Domain,
		Timestamp: time.Now(),
		Frames:    ds.NumFrames(),
		NX:        len(ds.X),
		NY:        len(ds.Y),
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, "dataset.json"), ds); err != nil {
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

// List returns metadata for every saved run, skipping unreadable entries.
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

// Load reads one run's metadata.
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

// LoadDataset reads one run's dataset, re-validating it on the way in: a
// file someone edited by hand must not reach the viewer malformed.
func (s *Store) LoadDataset(runID string) (*dataset.Dataset, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "dataset.json"))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return dataset.Decode(f)
}

// Latest returns the id of the most recently saved run, or "" when the store
// is empty.
func (s *Store) Latest() (string, error) {
	runs, err := s.List()
	if err != nil {
		return "", err
	}
	latest := ""
	var latestTime time.Time
	for _, run := range runs {
		if run.Timestamp.After(latestTime) {
			latest, latestTime = run.ID, run.Timestamp
		}
	}
	return latest, nil
}
