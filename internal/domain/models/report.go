package models

import "time"

// Finding severity buckets used by the auditor report
const (
	SeverityCritical      = "critical"
	SeverityHigh          = "high"
	SeverityMedium        = "medium"
	SeverityLow           = "low"
	SeverityInformational = "informational"
)

// Report-level risk ratings derived from the compliance percentage.
const (
	ReportRiskLow      = "Low"
	ReportRiskMedium   = "Medium"
	ReportRiskHigh     = "High"
	ReportRiskCritical = "Critical"
)

// ReportMetadata identifies an auditor report.
type ReportMetadata struct {
	ReportID       string    `json:"report_id"`
	Title          string    `json:"title"`
	Framework      string    `json:"framework"`
	Organization   string    `json:"organization"`
	Assessor       string    `json:"assessor"`
	Scope          string    `json:"scope"`
	Methodology    string    `json:"methodology"`
	Classification string    `json:"classification"`
	Version        string    `json:"version"`
	AssessmentDate time.Time `json:"assessment_date"`
}

// ExecutiveSummary is the leading section of the auditor report.
type ExecutiveSummary struct {
	Overview        string   `json:"overview"`
	KeyFindings     []string `json:"key_findings"`
	ComplianceScore int      `json:"compliance_percentage"`
	RiskLevel       string   `json:"risk_level"`
	Recommendations []string `json:"recommendations"`
}

// ControlStatus is the per-control entry in the compliance status section.
type ControlStatus struct {
	Status         string    `json:"status"`
	LastAssessed   time.Time `json:"last_assessed"`
	Findings       int       `json:"findings"`
	CriticalIssues int       `json:"critical_issues"`
}

// ComplianceStatus is the pass/fail breakdown across assessed controls.
type ComplianceStatus struct {
	Overall       string                   `json:"overall"`
	Controls      map[string]ControlStatus `json:"controls"`
	RiskScore     int                      `json:"risk_score"`
	RiskLevel     string                   `json:"risk_level"`
	CompliancePct int                      `json:"compliance_percentage"`
}

// ControlAssessmentEntry is the per-control section of the report.
type ControlAssessmentEntry struct {
	ControlID           string             `json:"control_id"`
	Title               string             `json:"title"`
	Description         string             `json:"description,omitempty"`
	AssessmentStatus    string             `json:"assessment_status"`
	Evidence            []ExecutionFinding `json:"evidence,omitempty"`
	RemediationRequired bool               `json:"remediation_required"`
	Priority            string             `json:"priority"`
	NextAssessment      time.Time          `json:"next_assessment"`
}

// ReportFinding is a single bucketed finding.
type ReportFinding struct {
	ControlID string    `json:"control_id"`
	Finding   string    `json:"finding"`
	Evidence  string    `json:"evidence,omitempty"`
	Severity  string    `json:"severity"`
	Timestamp time.Time `json:"timestamp"`
}

// FindingsBySeverity buckets findings for the report body.
type FindingsBySeverity struct {
	Critical      []ReportFinding `json:"critical"`
	High          []ReportFinding `json:"high"`
	Medium        []ReportFinding `json:"medium"`
	Low           []ReportFinding `json:"low"`
	Informational []ReportFinding `json:"informational"`
}

// Total returns the number of findings across all buckets.
func (f FindingsBySeverity) Total() int {
	return len(f.Critical) + len(f.High) + len(f.Medium) + len(f.Low) + len(f.Informational)
}

// Recommendation is a prioritized remediation recommendation.
type Recommendation struct {
	Priority    string   `json:"priority"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Timeline    string   `json:"timeline"`
	Controls    []string `json:"controls"`
}

// AutomatedTest records one playbook execution as evidence.
type AutomatedTest struct {
	Playbook   string    `json:"playbook"`
	Status     string    `json:"status"`
	Output     string    `json:"output,omitempty"`
	ExecutedAt time.Time `json:"execution_time"`
}

// Evidence collects supporting artifacts per control id.
type Evidence struct {
	AutomatedTests []AutomatedTest     `json:"automated_tests"`
	ConfigFiles    map[string][]string `json:"configuration_files,omitempty"`
	LogFiles       map[string][]string `json:"log_files,omitempty"`
}

// Appendix is a lettered report appendix.
type Appendix struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content any    `json:"content"`
}

// AuditorReport is the complete report bundle handed to auditors.
type AuditorReport struct {
	Metadata           ReportMetadata             `json:"metadata"`
	ExecutiveSummary   ExecutiveSummary           `json:"executive_summary"`
	ComplianceStatus   ComplianceStatus           `json:"compliance_status"`
	ControlAssessments []ControlAssessmentEntry   `json:"control_assessments"`
	Findings           FindingsBySeverity         `json:"findings"`
	Recommendations    []Recommendation           `json:"recommendations"`
	Evidence           Evidence                   `json:"evidence"`
	Appendices         []Appendix                 `json:"appendices"`
	AssessmentResults  *AssessmentResultsDocument `json:"assessment_results,omitempty"`
}
