package report

import (
	"sort"

	"github.com/yuya-takeyama/symsync/pkg/manifest"
)

// Status is the terminal state of one manifest entry.
type Status string

const (
	StatusSkipped Status = "skipped"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Outcome is the result of processing one manifest line.
type Outcome struct {
	Index      int // position in the submitted manifest
	Line       string
	Target     manifest.Target
	RemoteFile string
	LocalFile  string
	Status     Status
	Err        error
	Bytes      int64
}

// Reason returns the failure message, or "" for non-failed outcomes.
func (o Outcome) Reason() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// Summary counts outcomes by status.
type Summary struct {
	Total   int
	Skipped int
	Success int
	Failed  int
	Bytes   int64
}

// Report holds every outcome of a run in arrival order.
type Report struct {
	outcomes []Outcome
	summary  Summary
}

// Collect drains outcomes until the channel is closed.
func Collect(outcomes <-chan Outcome) *Report {
	r := &Report{}
	for outcome := range outcomes {
		r.add(outcome)
	}
	return r
}

func (r *Report) add(o Outcome) {
	r.outcomes = append(r.outcomes, o)
	r.summary.Total++
	switch o.Status {
	case StatusSkipped:
		r.summary.Skipped++
	case StatusSuccess:
		r.summary.Success++
		r.summary.Bytes += o.Bytes
	case StatusFailed:
		r.summary.Failed++
	}
}

// Summary returns the per-status counts.
func (r *Report) Summary() Summary {
	return r.summary
}

// Len returns the number of outcomes collected.
func (r *Report) Len() int {
	return len(r.outcomes)
}

// Outcomes returns outcomes in the order they completed.
func (r *Report) Outcomes() []Outcome {
	out := make([]Outcome, len(r.outcomes))
	copy(out, r.outcomes)
	return out
}

// Ordered returns outcomes sorted by manifest position.
func (r *Report) Ordered() []Outcome {
	out := r.Outcomes()
	sort.Slice(out, func(i, j int) bool {
		return out[i].Index < out[j].Index
	})
	return out
}

// Failures returns the failed outcomes in manifest order.
func (r *Report) Failures() []Outcome {
	var failed []Outcome
	for _, o := range r.Ordered() {
		if o.Status == StatusFailed {
			failed = append(failed, o)
		}
	}
	return failed
}
