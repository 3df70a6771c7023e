package models

import "time"

// OSCALVersion is the OSCAL schema version emitted in document metadata.
const OSCALVersion = "1.0.0"

// Prop is an OSCAL name/value property.
type Prop struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// DocumentMetadata is the OSCAL metadata block shared by all documents.
type DocumentMetadata struct {
	Title        string    `json:"title"`
	LastModified time.Time `json:"last-modified"`
	Version      string    `json:"version"`
	OSCALVersion string    `json:"oscal-version"`
	Props        []Prop    `json:"props,omitempty"`
}

// ImportProfile references the control baseline the plan assesses against.
type ImportProfile struct {
	Href string `json:"href"`
}

// ImportAP references the assessment plan a results document answers.
type ImportAP struct {
	Href string `json:"href"`
}

// IncludeControl selects a single control for review.
type IncludeControl struct {
	ControlID string `json:"control-id"`
}

// ControlSelection groups included controls.
type ControlSelection struct {
	IncludeControls []IncludeControl `json:"include-controls"`
}

// ReviewedControls is the set of controls a plan or result covers.
type ReviewedControls struct {
	ControlSelections []ControlSelection `json:"control-selections"`
}

// AssessmentSubject describes what is being assessed.
type AssessmentSubject struct {
	Type        string `json:"type"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// ActivityStep is one step within an assessment activity.
type ActivityStep struct {
	UUID        string `json:"uuid"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Props       []Prop `json:"props,omitempty"`
}

// AssessmentActivity is a planned activity, one per resolved control.
type AssessmentActivity struct {
	UUID        string         `json:"uuid"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Props       []Prop         `json:"props,omitempty"`
	Steps       []ActivityStep `json:"steps,omitempty"`
}

// AssessmentPlan is the OSCAL assessment-plan body.
type AssessmentPlan struct {
	UUID                 string               `json:"uuid"`
	Metadata             DocumentMetadata     `json:"metadata"`
	ImportProfile        ImportProfile        `json:"import-profile"`
	ReviewedControls     ReviewedControls     `json:"reviewed-controls"`
	AssessmentSubjects   []AssessmentSubject  `json:"assessment-subjects,omitempty"`
	AssessmentActivities []AssessmentActivity `json:"assessment-activities,omitempty"`
}

// AssessmentPlanDocument is the top-level plan envelope.
type AssessmentPlanDocument struct {
	AssessmentPlan AssessmentPlan `json:"assessment-plan"`
}

// FindingTarget points a finding at the objective it concerns.
type FindingTarget struct {
	Type     string `json:"type"`
	TargetID string `json:"target-id"`
	Status   string `json:"status,omitempty"`
}

// Finding is a per-control result entry.
type Finding struct {
	UUID        string         `json:"uuid"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Props       []Prop         `json:"props,omitempty"`
	Target      *FindingTarget `json:"target,omitempty"`
}

// Observation records evidence collected during execution.
type Observation struct {
	UUID        string    `json:"uuid"`
	Description string    `json:"description"`
	Methods     []string  `json:"methods,omitempty"`
	Collected   time.Time `json:"collected"`
}

// Result is one assessment result window.
type Result struct {
	UUID             string           `json:"uuid"`
	Title            string           `json:"title"`
	Description      string           `json:"description,omitempty"`
	Start            time.Time        `json:"start"`
	End              time.Time        `json:"end,omitempty"`
	ReviewedControls ReviewedControls `json:"reviewed-controls"`
	Findings         []Finding        `json:"findings,omitempty"`
	Observations     []Observation    `json:"observations,omitempty"`
}

// AssessmentResults is the OSCAL assessment-results body.
type AssessmentResults struct {
	UUID     string           `json:"uuid"`
	Metadata DocumentMetadata `json:"metadata"`
	ImportAP ImportAP         `json:"import-ap"`
	Results  []Result         `json:"results"`
}

// AssessmentResultsDocument is the top-level results envelope.
type AssessmentResultsDocument struct {
	AssessmentResults AssessmentResults `json:"assessment-results"`
}
