package models

import "time"

// Assessment run states. Transitions are strictly forward; failed is terminal
// and carries the error that stopped the run.
const (
	StateIdle              = "idle"
	StateClassifying       = "classifying"
	StateResolving         = "resolving"
	StateScoring           = "scoring"
	StateRoadmapBuilding   = "roadmap_building"
	StateAwaitingExecution = "awaiting_execution"
	StateDocumentBuilding  = "document_building"
	StateComplete          = "complete"
	StateFailed            = "failed"
)

// Playbook execution statuses as reported by the executor.
const (
	StatusPass = "PASS"
	StatusFail = "FAIL"
	StatusWarn = "WARN"
)

// ExecutionFinding is a per-control observation reported by a playbook run.
type ExecutionFinding struct {
	Control  string `json:"control"`
	Status   string `json:"status"`
	Message  string `json:"message"`
	Evidence string `json:"evidence,omitempty"`
}

// ExecutionOutcome records one playbook execution against one control.
// A failed execution is an outcome, not an engine error.
type ExecutionOutcome struct {
	Playbook   string             `json:"playbook"`
	ControlID  string             `json:"control_id"`
	Status     string             `json:"status"`
	Output     string             `json:"output,omitempty"`
	Error      string             `json:"error,omitempty"`
	Findings   []ExecutionFinding `json:"findings,omitempty"`
	StartedAt  time.Time          `json:"started_at"`
	FinishedAt time.Time          `json:"finished_at"`
}

// Failed reports whether the outcome is a failure.
func (o ExecutionOutcome) Failed() bool {
	return o.Status == StatusFail
}

// AssessmentRun is the full record of one pipeline invocation. State is local
// to the run; concurrent runs never share mutable data.
type AssessmentRun struct {
	ID             string                     `json:"id"`
	Scenario       string                     `json:"scenario"`
	State          string                     `json:"state"`
	Classification Classification             `json:"classification"`
	Controls       ResolvedControls           `json:"controls"`
	Assets         []Asset                    `json:"assets,omitempty"`
	Risk           *RiskAssessment            `json:"risk,omitempty"`
	Roadmap        *MigrationRoadmap          `json:"roadmap,omitempty"`
	Plan           *AssessmentPlanDocument    `json:"plan,omitempty"`
	Executions     []ExecutionOutcome         `json:"executions,omitempty"`
	Results        *AssessmentResultsDocument `json:"results,omitempty"`
	Report         *AuditorReport             `json:"report,omitempty"`
	Error          string                     `json:"error,omitempty"`
	CreatedAt      time.Time                  `json:"created_at"`
	CompletedAt    *time.Time                 `json:"completed_at,omitempty"`
}

// Terminal reports whether the run has reached a terminal state.
func (r AssessmentRun) Terminal() bool {
	return r.State == StateComplete || r.State == StateFailed
}
