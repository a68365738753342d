package dataset

import "fmt"

// MalformedDatasetError reports a solver payload whose shape or values make
// it unusable for animation. A malformed dataset is fatal for rendering:
// callers must refuse to animate instead of showing a partially valid frame.
type MalformedDatasetError struct {
	Reason string
}

func (e *MalformedDatasetError) Error() string {
	return "dataset: malformed: " + e.Reason
}

func malformed(format string, args ...any) *MalformedDatasetError {
	return &MalformedDatasetError{Reason: fmt.Sprintf(format, args...)}
}
