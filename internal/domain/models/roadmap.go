package models

import "time"

// Milestone status values. The synthesizer emits every milestone as pending;
// status transitions belong to whoever tracks execution, never the builder.
const (
	MilestoneStatusPending    = "pending"
	MilestoneStatusInProgress = "in_progress"
	MilestoneStatusComplete   = "complete"
)

// Milestone is a dated checkpoint on the migration roadmap.
type Milestone struct {
	Name        string    `json:"name"`
	TargetDate  time.Time `json:"target_date"`
	Status      string    `json:"status"`
	AssetsCount int       `json:"assets_count,omitempty"`
}

// RoadmapPhase is one of the four fixed migration phases.
type RoadmapPhase struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Milestones  []Milestone `json:"milestones"`
	Status      string      `json:"status"`
}

// MigrationRoadmap is the phased post-quantum migration plan synthesized from
// a risk assessment.
type MigrationRoadmap struct {
	CreatedAt time.Time      `json:"created_at"`
	Phases    []RoadmapPhase `json:"phases"`
}

// Milestones returns every milestone across all phases in phase order.
func (r MigrationRoadmap) Milestones() []Milestone {
	var out []Milestone
	for _, p := range r.Phases {
		out = append(out, p.Milestones...)
	}
	return out
}
