package services

import (
	"strings"
	"testing"
	"time"

	"pqcguard/internal/domain/models"
)

func testControls() models.ResolvedControls {
	return models.ResolvedControls{
		Controls: []models.ResolvedControl{
			{
				ID:          "SC-12",
				Title:       "Cryptographic Key Establishment and Management",
				Description: "Establish and manage cryptographic keys.",
				Priority:    models.PriorityHigh,
				Playbook:    "pqc/inventory",
			},
			{
				ID:          "SC-29",
				Title:       "Heterogeneity",
				Description: "Employ a diverse set of information technologies.",
				Priority:    models.PriorityLow,
			},
		},
		Playbooks: []string{"pqc/inventory"},
	}
}

func TestDocumentBuilder_BuildAssessmentPlan(t *testing.T) {
	b := NewDocumentBuilder("", testLogger())
	at := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	doc := b.BuildAssessmentPlan(testControls(), false, at)
	plan := doc.AssessmentPlan

	if plan.Metadata.Title != "GRC Compliance Assessment Plan" {
		t.Errorf("Title = %q", plan.Metadata.Title)
	}
	if plan.Metadata.OSCALVersion != models.OSCALVersion {
		t.Errorf("OSCALVersion = %q", plan.Metadata.OSCALVersion)
	}
	if plan.ImportProfile.Href == "" {
		t.Error("ImportProfile.Href empty, want default catalog href")
	}
	if len(plan.AssessmentSubjects) != 1 || plan.AssessmentSubjects[0].Type != "system" {
		t.Errorf("AssessmentSubjects = %+v", plan.AssessmentSubjects)
	}
	if len(plan.Metadata.Props) != 0 {
		t.Errorf("non-quantum plan carries metadata props: %+v", plan.Metadata.Props)
	}

	if len(plan.AssessmentActivities) != 2 {
		t.Fatalf("activities len = %d, want 2", len(plan.AssessmentActivities))
	}
	// reviewed-controls is derived from the same list as the activities.
	if len(plan.ReviewedControls.ControlSelections) != 2 {
		t.Fatalf("control selections len = %d, want 2", len(plan.ReviewedControls.ControlSelections))
	}
	for i, sel := range plan.ReviewedControls.ControlSelections {
		if len(sel.IncludeControls) != 1 {
			t.Fatalf("selection %d includes %d controls, want 1", i, len(sel.IncludeControls))
		}
	}
	if plan.ReviewedControls.ControlSelections[0].IncludeControls[0].ControlID != "SC-12" {
		t.Error("first reviewed control is not SC-12")
	}

	activity := plan.AssessmentActivities[0]
	if activity.Title != "Validate SC-12: Cryptographic Key Establishment and Management" {
		t.Errorf("activity title = %q", activity.Title)
	}
	if len(activity.Steps) != 1 {
		t.Fatalf("activity steps = %d, want 1", len(activity.Steps))
	}
	if activity.Steps[0].Title != "Execute Ansible Playbook" {
		t.Errorf("step title = %q", activity.Steps[0].Title)
	}

	// Controls without a bound playbook get no execution step.
	if len(plan.AssessmentActivities[1].Steps) != 0 {
		t.Errorf("unbound control has %d steps, want 0", len(plan.AssessmentActivities[1].Steps))
	}
}

func TestDocumentBuilder_BuildAssessmentPlan_QuantumProps(t *testing.T) {
	b := NewDocumentBuilder("", testLogger())

	doc := b.BuildAssessmentPlan(testControls(), true, time.Now())

	props := map[string]string{}
	for _, p := range doc.AssessmentPlan.Metadata.Props {
		props[p.Name] = p.Value
	}
	if props["pqc-migration"] != "true" {
		t.Errorf("pqc-migration prop = %q, want true", props["pqc-migration"])
	}
	if props["deprecated-date"] != DeprecatedDate {
		t.Errorf("deprecated-date = %q, want %s", props["deprecated-date"], DeprecatedDate)
	}
	if props["disallowed-date"] != DisallowedDate {
		t.Errorf("disallowed-date = %q, want %s", props["disallowed-date"], DisallowedDate)
	}
}

func TestDocumentBuilder_UniqueUUIDs(t *testing.T) {
	b := NewDocumentBuilder("", testLogger())
	now := time.Now()

	outcomes := []models.ExecutionOutcome{
		{
			Playbook:  "pqc/inventory",
			ControlID: "SC-12",
			Status:    models.StatusPass,
			Findings: []models.ExecutionFinding{
				{Control: "SC-12", Status: models.StatusPass, Message: "inventory complete"},
				{Control: "SC-13", Status: models.StatusWarn, Message: "legacy cipher found"},
			},
		},
		{Playbook: "sc-7-boundary-protection", ControlID: "SC-7", Status: models.StatusPass},
	}

	seen := map[string]bool{}
	record := func(id string) {
		if !strings.HasPrefix(id, "urn:uuid:") {
			t.Fatalf("uuid %q lacks urn:uuid: prefix", id)
		}
		if seen[id] {
			t.Fatalf("uuid %q reused after %d ids", id, len(seen))
		}
		seen[id] = true
	}

	// Identifiers must not collide within a document or across separate
	// builds. 10,000 ids from interleaved plan and results builds.
	for len(seen) < 10000 {
		plan := b.BuildAssessmentPlan(testControls(), true, now).AssessmentPlan
		record(plan.UUID)
		for _, a := range plan.AssessmentActivities {
			record(a.UUID)
			for _, s := range a.Steps {
				record(s.UUID)
			}
		}

		results := b.BuildAssessmentResults(outcomes, now, now).AssessmentResults
		record(results.UUID)
		for _, res := range results.Results {
			record(res.UUID)
			for _, o := range res.Observations {
				record(o.UUID)
			}
			for _, f := range res.Findings {
				record(f.UUID)
			}
		}
	}
}

func TestDocumentBuilder_BuildAssessmentResults(t *testing.T) {
	b := NewDocumentBuilder("", testLogger())
	start := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	end := start.Add(10 * time.Minute)

	outcomes := []models.ExecutionOutcome{
		{
			Playbook:   "pqc/inventory",
			ControlID:  "SC-12",
			Status:     models.StatusPass,
			FinishedAt: end,
			Findings: []models.ExecutionFinding{
				{Control: "SC-12", Status: models.StatusPass, Message: "inventory complete"},
				{Control: "SC-13", Status: models.StatusWarn, Message: "legacy cipher found"},
			},
		},
		{
			Playbook:   "sc-7-boundary-protection",
			ControlID:  "SC-7",
			Status:     models.StatusPass,
			FinishedAt: end,
		},
	}

	doc := b.BuildAssessmentResults(outcomes, start, end)
	results := doc.AssessmentResults

	if results.Metadata.Title != "GRC Compliance Assessment Results" {
		t.Errorf("Title = %q", results.Metadata.Title)
	}
	if results.ImportAP.Href == "" {
		t.Error("ImportAP.Href empty, want default plan href")
	}
	if len(results.Results) != 1 {
		t.Fatalf("Results len = %d, want 1", len(results.Results))
	}

	result := results.Results[0]
	if !result.Start.Equal(start) || !result.End.Equal(end) {
		t.Errorf("window = %v..%v, want %v..%v", result.Start, result.End, start, end)
	}

	// Every outcome appears in reviewed-controls, even with zero findings.
	if len(result.ReviewedControls.ControlSelections) != 2 {
		t.Errorf("control selections = %d, want 2", len(result.ReviewedControls.ControlSelections))
	}
	if len(result.Observations) != 2 {
		t.Fatalf("observations = %d, want 2", len(result.Observations))
	}
	if result.Observations[0].Description != "Executed playbook pqc/inventory for SC-12: PASS" {
		t.Errorf("observation description = %q", result.Observations[0].Description)
	}
	if len(result.Observations[0].Methods) != 1 || result.Observations[0].Methods[0] != "TEST" {
		t.Errorf("observation methods = %v, want [TEST]", result.Observations[0].Methods)
	}

	if len(result.Findings) != 2 {
		t.Fatalf("findings = %d, want 2", len(result.Findings))
	}
	props := map[string]string{}
	for _, p := range result.Findings[1].Props {
		props[p.Name] = p.Value
	}
	if props["status"] != models.StatusWarn || props["control-id"] != "SC-13" {
		t.Errorf("finding props = %v", props)
	}
}

func TestDocumentBuilder_CustomProfileHref(t *testing.T) {
	b := NewDocumentBuilder("/oscal/custom-profile.json", testLogger())

	doc := b.BuildAssessmentPlan(testControls(), false, time.Now())
	if doc.AssessmentPlan.ImportProfile.Href != "/oscal/custom-profile.json" {
		t.Errorf("ImportProfile.Href = %q", doc.AssessmentPlan.ImportProfile.Href)
	}
}

func TestOverallStatus(t *testing.T) {
	pass := models.ExecutionOutcome{Status: models.StatusPass}
	warn := models.ExecutionOutcome{Status: models.StatusWarn}
	fail := models.ExecutionOutcome{Status: models.StatusFail}

	tests := []struct {
		name     string
		outcomes []models.ExecutionOutcome
		want     string
	}{
		{"all pass", []models.ExecutionOutcome{pass, pass}, OverallPassed},
		{"warn only", []models.ExecutionOutcome{pass, warn}, OverallPassed},
		{"one fail", []models.ExecutionOutcome{pass, fail, pass}, OverallFailed},
		{"empty", nil, OverallPassed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OverallStatus(tt.outcomes); got != tt.want {
				t.Errorf("OverallStatus() = %s, want %s", got, tt.want)
			}
		})
	}
}
