// Package executor is the boundary to the external workflow engine that runs
// playbooks. A playbook that runs and fails is a Result; only transport-level
// problems surface as errors.
package executor

import (
	"context"
	"errors"
)

// ErrUnavailable indicates the executor could not be reached or refused the
// request. Runs treat this as a collaborator failure, not a playbook failure.
var ErrUnavailable = errors.New("workflow executor unavailable")

// Request asks the executor to run one playbook.
type Request struct {
	Playbook    string            `json:"playbook"`
	Path        string            `json:"path"`
	ControlID   string            `json:"control_id,omitempty"`
	TargetHosts []string          `json:"target_hosts,omitempty"`
	ExtraVars   map[string]string `json:"extra_vars,omitempty"`
}

// Finding is a per-control observation reported by a playbook run.
type Finding struct {
	Control  string `json:"control"`
	Status   string `json:"status"`
	Message  string `json:"message"`
	Evidence string `json:"evidence,omitempty"`
}

// Result is the outcome of one playbook run.
type Result struct {
	Status   string    `json:"status"`
	Output   string    `json:"output,omitempty"`
	Findings []Finding `json:"findings,omitempty"`
}

// Executor runs playbooks.
type Executor interface {
	Execute(ctx context.Context, req Request) (Result, error)
}
