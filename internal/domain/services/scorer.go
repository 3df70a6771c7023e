package services

import (
	"math"
	"strings"
	"time"

	"pqcguard/internal/config"
	"pqcguard/internal/domain/models"
	"pqcguard/pkg/logger"
)

// NIST transition dates for quantum-vulnerable algorithms.
const (
	DeprecatedDate = "2030-12-31"
	DisallowedDate = "2035-12-31"
)

// Scorer computes quantum risk scores from the configured scoring policy.
// Scoring is pure: same asset, same tables, same score.
type Scorer struct {
	cfg    config.ScoringConfig
	logger *logger.Logger
}

// NewScorer creates a scorer from the scoring policy.
func NewScorer(cfg config.ScoringConfig, log *logger.Logger) *Scorer {
	return &Scorer{
		cfg:    cfg.WithDefaults(),
		logger: log.WithComponent("scorer"),
	}
}

// subScore looks a key up in a scoring table, falling back to the midpoint
// for unknown keys. Matching is case-insensitive: viper lowercases map keys
// read from config files, while detected algorithm names are upper case.
func (s *Scorer) subScore(table map[string]float64, key string) float64 {
	if v, ok := table[key]; ok {
		return v
	}
	for k, v := range table {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return s.cfg.DefaultSubScore
}

// Score assesses a single asset.
func (s *Scorer) Score(asset models.Asset) models.AssetRisk {
	components := models.RiskComponents{
		AlgorithmRisk:     s.subScore(s.cfg.AlgorithmRisk, asset.Algorithm),
		DataSensitivity:   s.subScore(s.cfg.DataSensitivity, asset.DataSensitivity),
		SystemCriticality: s.subScore(s.cfg.SystemCriticality, asset.SystemCriticality),
	}

	score := components.AlgorithmRisk*s.cfg.Weights.AlgorithmRisk +
		components.DataSensitivity*s.cfg.Weights.DataSensitivity +
		components.SystemCriticality*s.cfg.Weights.SystemCriticality
	score = clampScore(math.Round(score*10) / 10)

	return models.AssetRisk{
		Asset:             asset,
		Score:             score,
		Level:             RiskLevel(score),
		MigrationPriority: MigrationPriority(score),
		HarvestNowRisk:    components.AlgorithmRisk >= 8,
		Timeline:          TimelineToThreat(score),
		Components:        components,
	}
}

// Assess scores every asset and aggregates the results. An empty asset set
// yields a zero score at the low level.
func (s *Scorer) Assess(assets []models.Asset, at time.Time) models.RiskAssessment {
	assessment := models.RiskAssessment{
		Assets:     make([]models.AssetRisk, 0, len(assets)),
		AssessedAt: at,
	}

	var sum float64
	vulnerable := false
	for _, asset := range assets {
		risk := s.Score(asset)
		assessment.Assets = append(assessment.Assets, risk)
		sum += risk.Score

		if risk.Level == models.RiskLevelCritical {
			assessment.CriticalAssets = append(assessment.CriticalAssets, asset.Name)
		}
		if risk.MigrationPriority == models.PriorityHigh {
			assessment.HighPriorityAssets = append(assessment.HighPriorityAssets, asset.Name)
		}
		if risk.HarvestNowRisk {
			vulnerable = true
		}
		if asset.DataShelfLife > assessment.DataShelfLifeYears {
			assessment.DataShelfLifeYears = asset.DataShelfLife
		}
	}

	if len(assessment.Assets) > 0 {
		assessment.OverallScore = math.Round(sum/float64(len(assessment.Assets))*10) / 10
	}
	assessment.OverallLevel = RiskLevel(assessment.OverallScore)

	if vulnerable {
		assessment.DeprecationTimeline = deprecationTimeline(at)
	}

	s.logger.Debug().
		Int("assets", len(assets)).
		Float64("overall_score", assessment.OverallScore).
		Str("overall_level", assessment.OverallLevel).
		Msg("completed risk assessment")

	return assessment
}

// RiskLevel maps a composite score to a risk level.
func RiskLevel(score float64) string {
	switch {
	case score >= 8:
		return models.RiskLevelCritical
	case score >= 6:
		return models.RiskLevelHigh
	case score >= 4:
		return models.RiskLevelMedium
	default:
		return models.RiskLevelLow
	}
}

// MigrationPriority maps a composite score to a migration priority. It is
// deliberately a separate function from RiskLevel: the two scales answer
// different questions and drift independently.
func MigrationPriority(score float64) string {
	switch {
	case score >= 8:
		return models.PriorityHigh
	case score >= 6:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

// TimelineToThreat estimates when a capable quantum adversary becomes a
// practical concern for this score band. Display heuristic only.
func TimelineToThreat(score float64) string {
	switch {
	case score >= 8:
		return "5-10 years"
	case score >= 6:
		return "10-15 years"
	default:
		return "15+ years"
	}
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}

func deprecationTimeline(at time.Time) *models.DeprecationTimeline {
	return &models.DeprecationTimeline{
		DeprecatedDate:      DeprecatedDate,
		DisallowedDate:      DisallowedDate,
		DaysUntilDeprecated: daysUntil(DeprecatedDate, at),
		DaysUntilDisallowed: daysUntil(DisallowedDate, at),
	}
}

func daysUntil(date string, at time.Time) int {
	target, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0
	}
	return int(math.Ceil(target.Sub(at).Hours() / 24))
}
