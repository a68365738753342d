package solver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sebastiengilbert73/auto-pde/internal/dataset"
)

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" || r.Method != http.MethodGet {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy", "message": "ok"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if err := c.Health(context.Background()); err != nil {
		t.Errorf("expected healthy, got %v", err)
	}
}

func TestHealth_Unhealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"status": "down"})
	}))
	defer srv.Close()

	if err := NewClient(srv.URL).Health(context.Background()); err == nil {
		t.Error("expected error for unhealthy service")
	}
}

func TestSolve(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/solve" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req.Equation != "ut - uxx - uyy" {
			t.Errorf("equation not passed through: %q", req.Equation)
		}
		if req.Domain.NX != 2 {
			t.Errorf("domain not passed through: %+v", req.Domain)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"data": map[string]any{
				"x": []float64{0, 1}, "y": []float64{0, 1}, "t": []float64{0, 1},
				"frames": [][][]float64{
					{{0, 1}, {1, 0}},
					{{2, 3}, {3, 2}},
				},
			},
		})
	}))
	defer srv.Close()

	ds, err := NewClient(srv.URL).Solve(context.Background(), Request{
		Equation: "ut - uxx - uyy",
		IC:       "sin(x)*sin(y)",
		Domain:   Domain{XMax: 1, YMax: 1, TMax: 1, NX: 2, NY: 2, Dt: 0.5},
	})
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if ds.NumFrames() != 2 {
		t.Errorf("expected 2 frames, got %d", ds.NumFrames())
	}
}

func TestSolve_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"status": "error", "message": "invalid equation string"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Solve(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); got != "solver: solve failed: invalid equation string" {
		t.Errorf("unexpected error text: %q", got)
	}
}

func TestSolve_MalformedDataset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// two frames but only one time sample
		json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"data": map[string]any{
				"x": []float64{0, 1}, "y": []float64{0, 1}, "t": []float64{0},
				"frames": [][][]float64{
					{{0, 1}, {1, 0}},
					{{2, 3}, {3, 2}},
				},
			},
		})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Solve(context.Background(), Request{})
	var me *dataset.MalformedDatasetError
	if !errors.As(err, &me) {
		t.Fatalf("expected MalformedDatasetError, got %v", err)
	}
}
