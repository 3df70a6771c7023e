package models

import "time"

// Risk levels on the 0-10 composite scale
const (
	RiskLevelCritical = "critical"
	RiskLevelHigh     = "high"
	RiskLevelMedium   = "medium"
	RiskLevelLow      = "low"
)

// RiskComponents are the weighted sub-scores behind a composite risk score.
type RiskComponents struct {
	AlgorithmRisk     float64 `json:"algorithm_risk"`
	DataSensitivity   float64 `json:"data_sensitivity"`
	SystemCriticality float64 `json:"system_criticality"`
}

// AssetRisk is the scored view of a single asset.
type AssetRisk struct {
	Asset             Asset          `json:"asset"`
	Score             float64        `json:"score"`
	Level             string         `json:"level"`
	MigrationPriority string         `json:"migration_priority"`
	HarvestNowRisk    bool           `json:"harvest_now_decrypt_later"`
	Timeline          string         `json:"timeline"`
	Components        RiskComponents `json:"components"`
}

// DeprecationTimeline carries the NIST transition dates for quantum-vulnerable
// algorithms and how far away they are at assessment time.
type DeprecationTimeline struct {
	DeprecatedDate      string `json:"deprecated_date"`
	DisallowedDate      string `json:"disallowed_date"`
	DaysUntilDeprecated int    `json:"days_until_deprecated"`
	DaysUntilDisallowed int    `json:"days_until_disallowed"`
}

// RiskAssessment aggregates per-asset scores into an overall posture.
type RiskAssessment struct {
	Assets              []AssetRisk          `json:"assets"`
	OverallScore        float64              `json:"overall_score"`
	OverallLevel        string               `json:"overall_level"`
	CriticalAssets      []string             `json:"critical_assets,omitempty"`
	HighPriorityAssets  []string             `json:"high_priority_assets,omitempty"`
	DataShelfLifeYears  int                  `json:"data_shelf_life_years,omitempty"`
	DeprecationTimeline *DeprecationTimeline `json:"deprecation_timeline,omitempty"`
	AssessedAt          time.Time            `json:"assessed_at"`
}

// HasElevatedRisk reports whether the aggregate level warrants the
// data-at-rest protection control set.
func (r RiskAssessment) HasElevatedRisk() bool {
	return r.OverallLevel == RiskLevelHigh || r.OverallLevel == RiskLevelCritical
}
