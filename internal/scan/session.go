package scan

import (
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/agriscan/internal/diagnosis"
	"github.com/abhisek/agriscan/internal/imaging"
)

// Method is the input method selected for the next scan.
type Method string

const (
	MethodCamera Method = "camera"
	MethodUpload Method = "upload"
	MethodSample Method = "sample"
)

// Methods returns the input methods in display order.
func Methods() []Method {
	return []Method{MethodCamera, MethodUpload, MethodSample}
}

// DisplayName returns the menu label for m.
func (m Method) DisplayName() string {
	switch m {
	case MethodCamera:
		return "Use Camera"
	case MethodUpload:
		return "Upload Image"
	case MethodSample:
		return "Use Sample"
	default:
		return string(m)
	}
}

// Status is the scanner status shown next to the input controls.
type Status int

const (
	StatusReady        Status = iota // Waiting for input
	StatusCameraActive               // Camera selected, waiting for capture
	StatusProcessing                 // Scan in progress
)

func (s Status) String() string {
	switch s {
	case StatusCameraActive:
		return "Camera active - ready to scan"
	case StatusProcessing:
		return "Analyzing leaf..."
	default:
		return "Ready to scan"
	}
}

// Color returns the status dot colour.
func (s Status) Color() string {
	switch s {
	case StatusCameraActive:
		return "#4CAF50"
	case StatusProcessing:
		return "#FFC107"
	default:
		return "#ff9800"
	}
}

// Session is the per-user scan record. It is a value: every operation
// returns an updated copy and the caller keeps whichever it wants.
type Session struct {
	ID     string
	Method Method
	Status Status

	// Result is the most recent completed scan, nil before the first scan
	// and after NewScan. It is replaced wholesale, never edited.
	Result *diagnosis.ScanResult

	// Image is the handle the current Result was computed from, if any.
	Image *imaging.Image

	// LastError is the message of the most recent failed action.
	LastError string

	UpdatedAt time.Time
}

// New creates an empty session for method.
func New(method Method) Session {
	return Session{
		ID:        uuid.NewString(),
		Method:    method,
		Status:    initialStatus(method),
		UpdatedAt: time.Now(),
	}
}

// HasResult reports whether a completed scan is held.
func (s Session) HasResult() bool {
	return s.Result != nil && s.Result.Len() > 0
}

// NewScan clears the stored result and returns to the ready state.
func NewScan(s Session) Session {
	s.Result = nil
	s.Image = nil
	s.LastError = ""
	s.Status = StatusReady
	s.UpdatedAt = time.Now()
	return s
}

func initialStatus(m Method) Status {
	if m == MethodCamera {
		return StatusCameraActive
	}
	return StatusReady
}
