package apicheck

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Result is one test entry in the report.
type Result struct {
	Test      string      `json:"test"`
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Timestamp string      `json:"timestamp"`
	Extra     interface{} `json:"extra,omitempty"`
}

// Report is the machine-readable summary written for CI.
type Report struct {
	BaseURL     string   `json:"base_url"`
	Destructive bool     `json:"destructive"`
	Timestamp   string   `json:"timestamp"`
	Results     []Result `json:"results"`
}

// Add records a test outcome and returns ok so callers can chain it.
func (r *Report) Add(test string, ok bool, msg string, extra interface{}) bool {
	r.Results = append(r.Results, Result{
		Test:      test,
		Success:   ok,
		Message:   msg,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Extra:     extra,
	})
	return ok
}

// AllPassed reports whether every recorded test succeeded. An empty report
// has passed nothing and counts as failure.
func (r *Report) AllPassed() bool {
	if len(r.Results) == 0 {
		return false
	}
	for _, res := range r.Results {
		if !res.Success {
			return false
		}
	}
	return true
}

// Passed returns how many of the recorded tests succeeded.
func (r *Report) Passed() int {
	n := 0
	for _, res := range r.Results {
		if res.Success {
			n++
		}
	}
	return n
}

// WriteFile writes the JSON summary to path.
func (r *Report) WriteFile(path string) error {
	r.Timestamp = time.Now().UTC().Format(time.RFC3339)
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
