package services

import (
	"strings"
	"testing"
	"time"

	"pqcguard/internal/domain/models"
)

func reportOutcomes(at time.Time) []models.ExecutionOutcome {
	return []models.ExecutionOutcome{
		{
			Playbook:   "ac-3-access-enforcement",
			ControlID:  "AC-3",
			Status:     models.StatusPass,
			Output:     "all checks passed",
			FinishedAt: at,
			Findings: []models.ExecutionFinding{
				{Control: "AC-3", Status: models.StatusPass, Message: "access enforcement verified"},
			},
		},
		{
			Playbook:   "sc-7-boundary-protection",
			ControlID:  "SC-7",
			Status:     models.StatusFail,
			Output:     "firewall rules missing",
			FinishedAt: at,
			Findings: []models.ExecutionFinding{
				{Control: "SC-7", Status: models.StatusFail, Message: "critical firewall misconfiguration", Evidence: "rule table empty"},
			},
		},
	}
}

func reportControls() models.ResolvedControls {
	return models.ResolvedControls{
		Controls: []models.ResolvedControl{
			{ID: "AC-3", Title: "Access Enforcement", Description: "Enforce approved authorizations.", Priority: models.PriorityHigh},
			{ID: "SC-7", Title: "Boundary Protection", Description: "Monitor and control communications.", Priority: models.PriorityHigh},
		},
	}
}

func TestReporter_Generate(t *testing.T) {
	r := NewReporter(testLogger())
	at := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	outcomes := reportOutcomes(at)

	report := r.Generate(reportControls(), outcomes, nil, ReportOptions{}, at)

	// Metadata defaults.
	meta := report.Metadata
	if !strings.HasPrefix(meta.ReportID, "GRC-") {
		t.Errorf("ReportID = %q, want GRC- prefix", meta.ReportID)
	}
	if meta.Title != "GRC Compliance Assessment Report" {
		t.Errorf("default Title = %q", meta.Title)
	}
	if meta.Framework != "NIST SP 800-53 Rev. 5" {
		t.Errorf("default Framework = %q", meta.Framework)
	}
	if meta.Assessor != "PQCGuard Assessment Engine" {
		t.Errorf("default Assessor = %q", meta.Assessor)
	}

	// One of two playbooks passed.
	if report.ExecutiveSummary.ComplianceScore != 50 {
		t.Errorf("ComplianceScore = %d, want 50", report.ExecutiveSummary.ComplianceScore)
	}
	if report.ExecutiveSummary.RiskLevel != models.ReportRiskHigh {
		t.Errorf("summary RiskLevel = %q, want High", report.ExecutiveSummary.RiskLevel)
	}

	if report.ComplianceStatus.Overall != OverallFailed {
		t.Errorf("Overall = %q, want failed", report.ComplianceStatus.Overall)
	}
	if report.ComplianceStatus.RiskScore != 50 {
		t.Errorf("RiskScore = %d, want 50", report.ComplianceStatus.RiskScore)
	}
	if len(report.ComplianceStatus.Controls) != 2 {
		t.Errorf("per-control status len = %d, want 2", len(report.ComplianceStatus.Controls))
	}

	// The failed finding message contains "critical", so it lands in the
	// critical bucket.
	if len(report.Findings.Critical) != 1 {
		t.Errorf("critical findings = %d, want 1", len(report.Findings.Critical))
	}
	if len(report.Findings.Low) != 1 {
		t.Errorf("low findings = %d, want 1", len(report.Findings.Low))
	}
	if report.Findings.Total() != 2 {
		t.Errorf("Total() = %d, want 2", report.Findings.Total())
	}

	// Critical findings prepend an immediate-action recommendation to the two
	// standing ones.
	if len(report.Recommendations) != 3 {
		t.Fatalf("recommendations = %d, want 3", len(report.Recommendations))
	}
	if report.Recommendations[0].Priority != "Critical" {
		t.Errorf("first recommendation priority = %q, want Critical", report.Recommendations[0].Priority)
	}

	if len(report.Appendices) != 4 {
		t.Fatalf("appendices = %d, want 4", len(report.Appendices))
	}
	wantAppendices := []string{"A", "B", "C", "D"}
	for i, a := range report.Appendices {
		if a.ID != wantAppendices[i] {
			t.Errorf("appendix[%d].ID = %q, want %q", i, a.ID, wantAppendices[i])
		}
	}
}

func TestReporter_Generate_ControlAssessments(t *testing.T) {
	r := NewReporter(testLogger())
	at := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	report := r.Generate(reportControls(), reportOutcomes(at), nil, ReportOptions{}, at)

	if len(report.ControlAssessments) != 2 {
		t.Fatalf("entries = %d, want 2", len(report.ControlAssessments))
	}

	passed := report.ControlAssessments[0]
	if passed.Title != "Access Enforcement" {
		t.Errorf("title = %q, want resolved catalog title", passed.Title)
	}
	if passed.RemediationRequired {
		t.Error("RemediationRequired = true for passing control")
	}
	if want := at.AddDate(0, 0, reassessAfterPass); !passed.NextAssessment.Equal(want) {
		t.Errorf("passing NextAssessment = %v, want %v", passed.NextAssessment, want)
	}

	failed := report.ControlAssessments[1]
	if !failed.RemediationRequired {
		t.Error("RemediationRequired = false for failing control")
	}
	if want := at.AddDate(0, 0, reassessAfterFail); !failed.NextAssessment.Equal(want) {
		t.Errorf("failing NextAssessment = %v, want %v", failed.NextAssessment, want)
	}
}

func TestReporter_Generate_Evidence(t *testing.T) {
	r := NewReporter(testLogger())
	at := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	report := r.Generate(reportControls(), reportOutcomes(at), nil, ReportOptions{}, at)

	if len(report.Evidence.AutomatedTests) != 2 {
		t.Errorf("automated tests = %d, want 2", len(report.Evidence.AutomatedTests))
	}
	if files := report.Evidence.ConfigFiles["AC-3"]; len(files) != 2 {
		t.Errorf("AC-3 config files = %v, want pam and sshd configs", files)
	}
	if files := report.Evidence.LogFiles["SC-7"]; len(files) != 2 {
		t.Errorf("SC-7 log files = %v", files)
	}
}

func TestReporter_Generate_HonorsOptions(t *testing.T) {
	r := NewReporter(testLogger())

	report := r.Generate(models.ResolvedControls{}, nil, nil, ReportOptions{
		Title:        "Q1 PQC Readiness Review",
		Organization: "Acme Corp",
	}, time.Now())

	if report.Metadata.Title != "Q1 PQC Readiness Review" {
		t.Errorf("Title = %q", report.Metadata.Title)
	}
	if report.Metadata.Organization != "Acme Corp" {
		t.Errorf("Organization = %q", report.Metadata.Organization)
	}
}

func TestReportRiskLevel(t *testing.T) {
	tests := []struct {
		pct  int
		want string
	}{
		{100, models.ReportRiskLow},
		{90, models.ReportRiskLow},
		{89, models.ReportRiskMedium},
		{70, models.ReportRiskMedium},
		{69, models.ReportRiskHigh},
		{50, models.ReportRiskHigh},
		{49, models.ReportRiskCritical},
		{0, models.ReportRiskCritical},
	}

	for _, tt := range tests {
		if got := ReportRiskLevel(tt.pct); got != tt.want {
			t.Errorf("ReportRiskLevel(%d) = %s, want %s", tt.pct, got, tt.want)
		}
	}
}

func TestFindingSeverity(t *testing.T) {
	tests := []struct {
		name    string
		finding models.ExecutionFinding
		want    string
	}{
		{
			"fail with critical keyword",
			models.ExecutionFinding{Status: models.StatusFail, Message: "critical firewall gap"},
			models.SeverityCritical,
		},
		{
			"plain fail",
			models.ExecutionFinding{Status: models.StatusFail, Message: "rule missing"},
			models.SeverityHigh,
		},
		{
			// Known limitation: severity keys on the literal substring, so a
			// failure described in other words stays high.
			"severe fail without keyword",
			models.ExecutionFinding{Status: models.StatusFail, Message: "catastrophic breach detected"},
			models.SeverityHigh,
		},
		{
			"warn",
			models.ExecutionFinding{Status: models.StatusWarn, Message: "weak cipher"},
			models.SeverityMedium,
		},
		{
			"pass",
			models.ExecutionFinding{Status: models.StatusPass, Message: "ok"},
			models.SeverityLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindingSeverity(tt.finding); got != tt.want {
				t.Errorf("FindingSeverity() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestReporter_Generate_EmptyOutcomes(t *testing.T) {
	r := NewReporter(testLogger())

	report := r.Generate(models.ResolvedControls{}, nil, nil, ReportOptions{}, time.Now())

	if report.ExecutiveSummary.ComplianceScore != 0 {
		t.Errorf("ComplianceScore = %d, want 0", report.ExecutiveSummary.ComplianceScore)
	}
	if report.ComplianceStatus.Overall != OverallPassed {
		t.Errorf("Overall = %q, want passed for empty outcome set", report.ComplianceStatus.Overall)
	}
	// No critical findings means only the two standing recommendations.
	if len(report.Recommendations) != 2 {
		t.Errorf("recommendations = %d, want 2", len(report.Recommendations))
	}
}
