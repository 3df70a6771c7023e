package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pqcguard/internal/domain/models"
	"pqcguard/pkg/logger"
)

// Reassessment intervals: passing controls are re-checked quarterly, failing
// controls monthly.
const (
	reassessAfterPass = 90
	reassessAfterFail = 30
)

// evidenceConfigFiles maps control ids to the configuration artifacts an
// auditor would inspect for them.
var evidenceConfigFiles = map[string][]string{
	"AC-3": {"/etc/pam.d/system-auth", "/etc/ssh/sshd_config"},
	"AC-6": {"/etc/sudoers", "/etc/passwd"},
	"AU-2": {"/etc/audit/auditd.conf", "/etc/audit/rules.d/audit.rules"},
	"SC-7": {"/etc/iptables/rules.v4", "/etc/ufw/ufw.conf"},
}

// evidenceLogFiles maps control ids to the log artifacts an auditor would
// inspect for them.
var evidenceLogFiles = map[string][]string{
	"AC-3": {"/var/log/auth.log", "/var/log/secure"},
	"AC-6": {"/var/log/sudo.log"},
	"AU-2": {"/var/log/audit/audit.log"},
	"SC-7": {"/var/log/iptables.log", "/var/log/ufw.log"},
}

// ReportOptions carry caller-supplied metadata for a report.
type ReportOptions struct {
	Title          string
	Organization   string
	Framework      string
	Assessor       string
	Scope          string
	Classification string
}

// Reporter assembles the auditor report bundle from execution outcomes.
type Reporter struct {
	logger *logger.Logger
}

// NewReporter creates a reporter.
func NewReporter(log *logger.Logger) *Reporter {
	return &Reporter{logger: log.WithComponent("reporter")}
}

// Generate builds the full auditor report from the run's resolved controls,
// execution outcomes, and OSCAL results.
func (r *Reporter) Generate(controls models.ResolvedControls, outcomes []models.ExecutionOutcome, results *models.AssessmentResultsDocument, opts ReportOptions, at time.Time) models.AuditorReport {
	report := models.AuditorReport{
		Metadata:           r.buildMetadata(opts, at),
		ExecutiveSummary:   r.buildExecutiveSummary(outcomes),
		ComplianceStatus:   r.buildComplianceStatus(outcomes),
		ControlAssessments: r.buildControlAssessments(controls, outcomes, at),
		Findings:           r.categorizeFindings(outcomes),
		Evidence:           r.collectEvidence(outcomes),
		AssessmentResults:  results,
	}
	report.Recommendations = r.buildRecommendations(report.Findings)
	report.Appendices = r.buildAppendices(outcomes, results)

	r.logger.Info().
		Str("report_id", report.Metadata.ReportID).
		Int("controls", len(report.ControlAssessments)).
		Int("findings", report.Findings.Total()).
		Msg("generated auditor report")

	return report
}

func (r *Reporter) buildMetadata(opts ReportOptions, at time.Time) models.ReportMetadata {
	meta := models.ReportMetadata{
		ReportID:       fmt.Sprintf("GRC-%d-%s", at.Unix(), uuid.NewString()[:8]),
		Title:          opts.Title,
		Framework:      opts.Framework,
		Organization:   opts.Organization,
		Assessor:       opts.Assessor,
		Scope:          opts.Scope,
		Classification: opts.Classification,
		Methodology:    "Automated Assessment using Ansible Playbooks and OSCAL",
		Version:        "1.0.0",
		AssessmentDate: at,
	}
	if meta.Title == "" {
		meta.Title = "GRC Compliance Assessment Report"
	}
	if meta.Framework == "" {
		meta.Framework = "NIST SP 800-53 Rev. 5"
	}
	if meta.Organization == "" {
		meta.Organization = "Target Organization"
	}
	if meta.Assessor == "" {
		meta.Assessor = "PQCGuard Assessment Engine"
	}
	if meta.Scope == "" {
		meta.Scope = "Information System Security Controls"
	}
	if meta.Classification == "" {
		meta.Classification = "Internal Use"
	}
	return meta
}

func (r *Reporter) buildExecutiveSummary(outcomes []models.ExecutionOutcome) models.ExecutiveSummary {
	total := len(outcomes)
	passed := 0
	for _, o := range outcomes {
		if !o.Failed() {
			passed++
		}
	}
	failed := total - passed
	pct := compliancePercentage(passed, total)

	return models.ExecutiveSummary{
		Overview: fmt.Sprintf(
			"This report presents the results of an automated compliance assessment. The assessment evaluated %d security controls across the organization's information systems.",
			total),
		KeyFindings: []string{
			fmt.Sprintf("Overall compliance rate: %d%%", pct),
			fmt.Sprintf("Controls assessed: %d", total),
			fmt.Sprintf("Controls passed: %d", passed),
			fmt.Sprintf("Controls failed: %d", failed),
			"Assessment methodology: Automated validation using Ansible playbooks",
		},
		ComplianceScore: pct,
		RiskLevel:       ReportRiskLevel(pct),
		Recommendations: []string{
			"Address failed controls within 30 days",
			"Implement continuous monitoring for critical controls",
			"Establish regular compliance assessment schedule",
			"Document remediation actions for audit trail",
		},
	}
}

func (r *Reporter) buildComplianceStatus(outcomes []models.ExecutionOutcome) models.ComplianceStatus {
	status := models.ComplianceStatus{
		Overall:  OverallStatus(outcomes),
		Controls: make(map[string]models.ControlStatus, len(outcomes)),
	}

	total := len(outcomes)
	failed := 0
	for _, o := range outcomes {
		critical := 0
		for _, f := range o.Findings {
			if f.Status == models.StatusFail {
				critical++
			}
		}
		status.Controls[o.Playbook] = models.ControlStatus{
			Status:         o.Status,
			LastAssessed:   o.FinishedAt,
			Findings:       len(o.Findings),
			CriticalIssues: critical,
		}
		if o.Failed() {
			failed++
		}
	}

	if total > 0 {
		status.RiskScore = int(float64(failed)/float64(total)*100 + 0.5)
	}
	status.CompliancePct = compliancePercentage(total-failed, total)
	status.RiskLevel = ReportRiskLevel(status.CompliancePct)
	return status
}

func (r *Reporter) buildControlAssessments(controls models.ResolvedControls, outcomes []models.ExecutionOutcome, at time.Time) []models.ControlAssessmentEntry {
	titles := make(map[string]models.ResolvedControl, len(controls.Controls))
	for _, c := range controls.Controls {
		titles[c.ID] = c
	}

	entries := make([]models.ControlAssessmentEntry, 0, len(outcomes))
	for _, o := range outcomes {
		entry := models.ControlAssessmentEntry{
			ControlID:        o.ControlID,
			Title:            fmt.Sprintf("%s Control", o.ControlID),
			AssessmentStatus: o.Status,
			Evidence:         o.Findings,
			Priority:         models.PriorityMedium,
			NextAssessment:   nextAssessment(o, at),
		}
		if c, ok := titles[o.ControlID]; ok {
			entry.Title = c.Title
			entry.Description = c.Description
			entry.Priority = c.Priority
		}
		for _, f := range o.Findings {
			if f.Status == models.StatusFail {
				entry.RemediationRequired = true
				break
			}
		}
		entries = append(entries, entry)
	}
	return entries
}

// categorizeFindings buckets findings by severity. The severity rule keys on
// the literal substring "critical" in the finding message; messages that
// describe critical failures in other words land in the high bucket.
func (r *Reporter) categorizeFindings(outcomes []models.ExecutionOutcome) models.FindingsBySeverity {
	var buckets models.FindingsBySeverity
	for _, o := range outcomes {
		for _, f := range o.Findings {
			rf := models.ReportFinding{
				ControlID: f.Control,
				Finding:   f.Message,
				Evidence:  f.Evidence,
				Severity:  FindingSeverity(f),
				Timestamp: o.FinishedAt,
			}
			switch rf.Severity {
			case models.SeverityCritical:
				buckets.Critical = append(buckets.Critical, rf)
			case models.SeverityHigh:
				buckets.High = append(buckets.High, rf)
			case models.SeverityMedium:
				buckets.Medium = append(buckets.Medium, rf)
			default:
				buckets.Low = append(buckets.Low, rf)
			}
		}
	}
	return buckets
}

func (r *Reporter) buildRecommendations(findings models.FindingsBySeverity) []models.Recommendation {
	var recs []models.Recommendation

	if len(findings.Critical) > 0 {
		controls := make([]string, 0, len(findings.Critical))
		for _, f := range findings.Critical {
			controls = append(controls, f.ControlID)
		}
		recs = append(recs, models.Recommendation{
			Priority:    "Critical",
			Title:       "Address Critical Security Issues",
			Description: "Immediate action required to address critical security findings",
			Timeline:    "Within 24 hours",
			Controls:    controls,
		})
	}

	recs = append(recs,
		models.Recommendation{
			Priority:    "High",
			Title:       "Implement Continuous Monitoring",
			Description: "Establish automated monitoring for all critical controls",
			Timeline:    "Within 30 days",
			Controls:    []string{"All critical controls"},
		},
		models.Recommendation{
			Priority:    "Medium",
			Title:       "Enhance Documentation",
			Description: "Improve control documentation and evidence collection",
			Timeline:    "Within 60 days",
			Controls:    []string{"All controls"},
		},
	)
	return recs
}

func (r *Reporter) collectEvidence(outcomes []models.ExecutionOutcome) models.Evidence {
	evidence := models.Evidence{
		AutomatedTests: make([]models.AutomatedTest, 0, len(outcomes)),
		ConfigFiles:    make(map[string][]string),
		LogFiles:       make(map[string][]string),
	}

	for _, o := range outcomes {
		evidence.AutomatedTests = append(evidence.AutomatedTests, models.AutomatedTest{
			Playbook:   o.Playbook,
			Status:     o.Status,
			Output:     o.Output,
			ExecutedAt: o.FinishedAt,
		})
		if files, ok := evidenceConfigFiles[o.ControlID]; ok {
			evidence.ConfigFiles[o.ControlID] = files
		}
		if files, ok := evidenceLogFiles[o.ControlID]; ok {
			evidence.LogFiles[o.ControlID] = files
		}
	}
	return evidence
}

func (r *Reporter) buildAppendices(outcomes []models.ExecutionOutcome, results *models.AssessmentResultsDocument) []models.Appendix {
	type mappingEntry struct {
		ControlID string `json:"control_id"`
		Playbook  string `json:"playbook"`
		Status    string `json:"status"`
		Findings  int    `json:"findings"`
	}
	mapping := make([]mappingEntry, 0, len(outcomes))
	for _, o := range outcomes {
		mapping = append(mapping, mappingEntry{
			ControlID: o.ControlID,
			Playbook:  o.Playbook,
			Status:    o.Status,
			Findings:  len(o.Findings),
		})
	}

	type playbookEntry struct {
		Name       string    `json:"name"`
		Status     string    `json:"status"`
		Output     string    `json:"output,omitempty"`
		ExecutedAt time.Time `json:"execution_time"`
	}
	details := make([]playbookEntry, 0, len(outcomes))
	for _, o := range outcomes {
		details = append(details, playbookEntry{
			Name:       o.Playbook,
			Status:     o.Status,
			Output:     o.Output,
			ExecutedAt: o.FinishedAt,
		})
	}

	type evidenceEntry struct {
		ControlID   string   `json:"control_id"`
		ConfigFiles []string `json:"configuration_files,omitempty"`
		LogFiles    []string `json:"log_files,omitempty"`
		Tests       []string `json:"automated_tests"`
	}
	evidence := make([]evidenceEntry, 0, len(outcomes))
	for _, o := range outcomes {
		evidence = append(evidence, evidenceEntry{
			ControlID:   o.ControlID,
			ConfigFiles: evidenceConfigFiles[o.ControlID],
			LogFiles:    evidenceLogFiles[o.ControlID],
			Tests:       []string{o.Playbook},
		})
	}

	return []models.Appendix{
		{ID: "A", Title: "Control Mapping", Content: mapping},
		{ID: "B", Title: "Ansible Playbook Details", Content: details},
		{ID: "C", Title: "Evidence Collection", Content: evidence},
		{ID: "D", Title: "OSCAL Assessment Results", Content: results},
	}
}

// ReportRiskLevel maps a compliance percentage to the report risk rating.
func ReportRiskLevel(pct int) string {
	switch {
	case pct >= 90:
		return models.ReportRiskLow
	case pct >= 70:
		return models.ReportRiskMedium
	case pct >= 50:
		return models.ReportRiskHigh
	default:
		return models.ReportRiskCritical
	}
}

// FindingSeverity buckets an execution finding.
func FindingSeverity(f models.ExecutionFinding) string {
	switch {
	case f.Status == models.StatusFail && strings.Contains(f.Message, "critical"):
		return models.SeverityCritical
	case f.Status == models.StatusFail:
		return models.SeverityHigh
	case f.Status == models.StatusWarn:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}

func nextAssessment(o models.ExecutionOutcome, at time.Time) time.Time {
	if o.Failed() {
		return at.AddDate(0, 0, reassessAfterFail)
	}
	return at.AddDate(0, 0, reassessAfterPass)
}

func compliancePercentage(passed, total int) int {
	if total == 0 {
		return 0
	}
	return int(float64(passed)/float64(total)*100 + 0.5)
}
