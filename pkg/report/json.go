package report

import (
	"encoding/json"
	"fmt"
	"os"
)

// Result is the JSON document written by WriteJSON.
type Result struct {
	Files   []ResultFile  `json:"files"`
	Errors  []ErrorFile   `json:"errors"`
	Summary ResultSummary `json:"summary"`
}

type ResultFile struct {
	Action string `json:"action"` // "skipped", "downloaded"
	Source string `json:"source"`
	Target string `json:"target"`
	Bytes  int64  `json:"bytes,omitempty"`
}

type ErrorFile struct {
	Line   string `json:"line"`
	Source string `json:"source,omitempty"`
	Target string `json:"target,omitempty"`
	Error  string `json:"error"`
}

type ResultSummary struct {
	Total      int   `json:"total"`
	Skipped    int   `json:"skipped"`
	Downloaded int   `json:"downloaded"`
	Failed     int   `json:"failed"`
	Bytes      int64 `json:"bytes"`
}

// Result converts the report into its JSON shape, in manifest order.
func (r *Report) Result() Result {
	result := Result{
		Files:  []ResultFile{},
		Errors: []ErrorFile{},
	}

	for _, o := range r.Ordered() {
		switch o.Status {
		case StatusFailed:
			result.Errors = append(result.Errors, ErrorFile{
				Line:   o.Line,
				Source: o.RemoteFile,
				Target: o.LocalFile,
				Error:  o.Reason(),
			})
		case StatusSkipped:
			result.Files = append(result.Files, ResultFile{
				Action: "skipped",
				Source: o.RemoteFile,
				Target: o.LocalFile,
			})
		case StatusSuccess:
			result.Files = append(result.Files, ResultFile{
				Action: "downloaded",
				Source: o.RemoteFile,
				Target: o.LocalFile,
				Bytes:  o.Bytes,
			})
		}
	}

	s := r.Summary()
	result.Summary = ResultSummary{
		Total:      s.Total,
		Skipped:    s.Skipped,
		Downloaded: s.Success,
		Failed:     s.Failed,
		Bytes:      s.Bytes,
	}

	return result
}

func (r *Report) WriteJSON(path string) error {
	data, err := json.MarshalIndent(r.Result(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}
