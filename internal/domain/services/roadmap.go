package services

import (
	"time"

	"pqcguard/internal/domain/models"
	"pqcguard/pkg/logger"
)

// RoadmapBuilder synthesizes the four-phase migration roadmap from a risk
// assessment. The builder only creates pending milestones; status tracking
// belongs to whoever executes the roadmap.
type RoadmapBuilder struct {
	logger *logger.Logger
}

// NewRoadmapBuilder creates a roadmap builder.
func NewRoadmapBuilder(log *logger.Logger) *RoadmapBuilder {
	return &RoadmapBuilder{logger: log.WithComponent("roadmap")}
}

// Build produces the migration roadmap anchored at the assessment time.
func (b *RoadmapBuilder) Build(assessment models.RiskAssessment, at time.Time) models.MigrationRoadmap {
	milestone := func(name string, days int) models.Milestone {
		return models.Milestone{
			Name:       name,
			TargetDate: at.AddDate(0, 0, days),
			Status:     models.MilestoneStatusPending,
		}
	}

	inventoryMilestone := milestone("Complete Asset Inventory", 90)
	inventoryMilestone.AssetsCount = len(assessment.Assets)

	roadmap := models.MigrationRoadmap{
		CreatedAt: at,
		Phases: []models.RoadmapPhase{
			{
				Name:        "Preparation",
				Description: "Stakeholder alignment, team formation, budget planning",
				Status:      models.MilestoneStatusPending,
				Milestones: []models.Milestone{
					milestone("Stakeholder Alignment", 30),
					milestone("Team Formation", 45),
				},
			},
			{
				Name:        "Baseline Understanding",
				Description: "Inventory, prioritization, gap analysis",
				Status:      models.MilestoneStatusPending,
				Milestones: []models.Milestone{
					inventoryMilestone,
					milestone("Risk Assessment Complete", 120),
				},
			},
			{
				Name:        "Planning and Execution",
				Description: "Solution selection, implementation, testing",
				Status:      models.MilestoneStatusPending,
				Milestones: []models.Milestone{
					milestone("PQC Solution Selection", 180),
					milestone("Begin Migration", 240),
				},
			},
			{
				Name:        "Monitoring and Evaluation",
				Description: "Validation, continuous monitoring, performance metrics",
				Status:      models.MilestoneStatusPending,
				Milestones: []models.Milestone{
					milestone("Validation Complete", 365),
					milestone("Continuous Monitoring Established", 400),
				},
			},
		},
	}

	b.logger.Debug().Int("phases", len(roadmap.Phases)).Msg("built migration roadmap")
	return roadmap
}
