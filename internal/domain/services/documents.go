package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"pqcguard/internal/domain/models"
	"pqcguard/pkg/logger"
)

// Default document references used when no catalog/plan href is configured.
const (
	defaultProfileHref = "/oscal/catalog/nist-800-53-r5-catalog.json"
	defaultPlanHref    = "/oscal/assessment-plans/compliance-assessment-plan.json"
)

// Overall assessment statuses.
const (
	OverallPassed = "passed"
	OverallFailed = "failed"
)

// oscalUUID mints a fresh urn:uuid identifier. Every document node gets its
// own; ids are never reused across nodes or documents.
func oscalUUID() string {
	return "urn:uuid:" + uuid.NewString()
}

// DocumentBuilder renders assessment plans and results as OSCAL documents.
// reviewed-controls is always derived from the same control list that feeds
// the activities and findings, so dangling control references cannot occur.
type DocumentBuilder struct {
	profileHref string
	planHref    string
	logger      *logger.Logger
}

// NewDocumentBuilder creates a document builder.
func NewDocumentBuilder(profileHref string, log *logger.Logger) *DocumentBuilder {
	if profileHref == "" {
		profileHref = defaultProfileHref
	}
	return &DocumentBuilder{
		profileHref: profileHref,
		planHref:    defaultPlanHref,
		logger:      log.WithComponent("documents"),
	}
}

// BuildAssessmentPlan renders the resolved controls as an OSCAL
// assessment-plan. When quantum is set, the plan carries the PQC migration
// props including the algorithm transition dates.
func (b *DocumentBuilder) BuildAssessmentPlan(controls models.ResolvedControls, quantum bool, at time.Time) models.AssessmentPlanDocument {
	plan := models.AssessmentPlan{
		UUID: oscalUUID(),
		Metadata: models.DocumentMetadata{
			Title:        "GRC Compliance Assessment Plan",
			LastModified: at,
			Version:      "1.0.0",
			OSCALVersion: models.OSCALVersion,
		},
		ImportProfile: models.ImportProfile{Href: b.profileHref},
		AssessmentSubjects: []models.AssessmentSubject{
			{
				Type:        "system",
				Title:       "Target System for Compliance Assessment",
				Description: "System under assessment for compliance validation",
			},
		},
	}

	if quantum {
		plan.Metadata.Props = []models.Prop{
			{Name: "pqc-migration", Value: "true"},
			{Name: "deprecated-date", Value: DeprecatedDate},
			{Name: "disallowed-date", Value: DisallowedDate},
		}
	}

	for _, control := range controls.Controls {
		activity := models.AssessmentActivity{
			UUID:        oscalUUID(),
			Title:       fmt.Sprintf("Validate %s: %s", control.ID, control.Title),
			Description: control.Description,
			Props: []models.Prop{
				{Name: "control-id", Value: control.ID},
				{Name: "priority", Value: control.Priority},
				{Name: "ansible-playbook", Value: control.Playbook},
			},
		}
		if control.Playbook != "" {
			activity.Steps = []models.ActivityStep{
				{
					UUID:        oscalUUID(),
					Title:       "Execute Ansible Playbook",
					Description: fmt.Sprintf("Run %s to validate %s implementation", control.Playbook, control.ID),
					Props:       []models.Prop{{Name: "playbook-path", Value: control.Playbook}},
				},
			}
		}
		plan.AssessmentActivities = append(plan.AssessmentActivities, activity)

		plan.ReviewedControls.ControlSelections = append(plan.ReviewedControls.ControlSelections,
			models.ControlSelection{
				IncludeControls: []models.IncludeControl{{ControlID: control.ID}},
			})
	}

	b.logger.Debug().Int("activities", len(plan.AssessmentActivities)).Msg("built assessment plan")
	return models.AssessmentPlanDocument{AssessmentPlan: plan}
}

// BuildAssessmentResults renders execution outcomes as an OSCAL
// assessment-results document. Every outcome appears in reviewed-controls,
// including those with zero findings.
func (b *DocumentBuilder) BuildAssessmentResults(outcomes []models.ExecutionOutcome, start, end time.Time) models.AssessmentResultsDocument {
	result := models.Result{
		UUID:        oscalUUID(),
		Title:       "GRC Compliance Assessment",
		Description: "Automated compliance assessment using playbook execution",
		Start:       start,
		End:         end,
	}

	for _, outcome := range outcomes {
		result.ReviewedControls.ControlSelections = append(result.ReviewedControls.ControlSelections,
			models.ControlSelection{
				IncludeControls: []models.IncludeControl{{ControlID: outcome.ControlID}},
			})

		for _, finding := range outcome.Findings {
			result.Findings = append(result.Findings, models.Finding{
				UUID:        oscalUUID(),
				Title:       finding.Message,
				Description: finding.Evidence,
				Props: []models.Prop{
					{Name: "status", Value: finding.Status},
					{Name: "control-id", Value: finding.Control},
				},
			})
		}

		result.Observations = append(result.Observations, models.Observation{
			UUID:        oscalUUID(),
			Description: fmt.Sprintf("Executed playbook %s for %s: %s", outcome.Playbook, outcome.ControlID, outcome.Status),
			Methods:     []string{"TEST"},
			Collected:   outcome.FinishedAt,
		})
	}

	doc := models.AssessmentResults{
		UUID: oscalUUID(),
		Metadata: models.DocumentMetadata{
			Title:        "GRC Compliance Assessment Results",
			LastModified: end,
			Version:      "1.0.0",
			OSCALVersion: models.OSCALVersion,
		},
		ImportAP: models.ImportAP{Href: b.planHref},
		Results:  []models.Result{result},
	}

	b.logger.Debug().
		Int("findings", len(result.Findings)).
		Int("observations", len(result.Observations)).
		Msg("built assessment results")

	return models.AssessmentResultsDocument{AssessmentResults: doc}
}

// OverallStatus reduces execution outcomes to a single pass/fail status:
// failed iff any playbook failed.
func OverallStatus(outcomes []models.ExecutionOutcome) string {
	for _, o := range outcomes {
		if o.Failed() {
			return OverallFailed
		}
	}
	return OverallPassed
}
