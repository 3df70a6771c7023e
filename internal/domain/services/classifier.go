package services

import (
	"strings"

	"pqcguard/internal/domain/models"
	"pqcguard/pkg/logger"
)

// Domain profile names
const (
	ProfileGeneric = "generic-grc"
	ProfileQuantum = "quantum-pqc"
)

// DomainProfile groups the scenario categories for one compliance domain
// together with the predicate that selects it.
type DomainProfile struct {
	Name       string
	Detect     func(text string) bool
	Categories []models.ScenarioCategory
}

// genericCategories are the baseline GRC scenario categories.
func genericCategories() []models.ScenarioCategory {
	return []models.ScenarioCategory{
		{
			Name:      "access_control",
			Keywords:  []string{"access", "authentication", "authorization", "login", "user", "permission"},
			Controls:  []string{"AC-3", "AC-6", "AC-7", "AC-8"},
			Playbooks: []string{"ac-3-access-enforcement", "ac-6-least-privilege"},
		},
		{
			Name:      "audit_logging",
			Keywords:  []string{"audit", "log", "monitoring", "tracking", "compliance"},
			Controls:  []string{"AU-2", "AU-3", "AU-4", "AU-5"},
			Playbooks: []string{"au-2-audit-events"},
		},
		{
			Name:      "network_security",
			Keywords:  []string{"network", "firewall", "boundary", "traffic", "connection"},
			Controls:  []string{"SC-7", "SC-8", "SC-9", "SC-10"},
			Playbooks: []string{"sc-7-boundary-protection"},
		},
		{
			Name:      "data_protection",
			Keywords:  []string{"data", "encryption", "privacy", "sensitive", "confidential"},
			Controls:  []string{"SC-28", "SC-29", "SC-30", "SC-31"},
			Playbooks: []string{"sc-28-data-protection"},
		},
	}
}

// quantumCategories are the PQC-specific scenario categories.
func quantumCategories() []models.ScenarioCategory {
	return []models.ScenarioCategory{
		{
			Name: "pqc_migration",
			Keywords: []string{
				"post-quantum", "quantum", "pqc", "cryptography", "cryptographic",
				"migration", "fips 203", "fips 204", "fips 205", "ml-kem", "ml-dsa",
				"slh-dsa", "rsa", "ecc", "elliptic curve", "harvest now decrypt later",
			},
			Controls:  []string{"SC-12", "SC-13", "SC-17", "SC-28"},
			Playbooks: []string{"pqc/inventory", "pqc/assess", "pqc/deploy-mlkem", "pqc/deploy-mldsa", "pqc/deploy-slhdsa"},
		},
		{
			Name: "quantum_risk",
			Keywords: []string{
				"quantum risk", "quantum threat", "quantum computing",
				"quantum vulnerability", "quantum resistant", "quantum safe",
			},
			Controls:  []string{"SC-12", "SC-13", "SC-17"},
			Playbooks: []string{"pqc/assess", "pqc/validate"},
		},
	}
}

// quantumSignals are the terms that route a scenario to the quantum profile.
var quantumSignals = []string{
	"post-quantum", "quantum", "pqc",
	"fips 203", "fips 204", "fips 205",
	"ml-kem", "ml-dsa", "slh-dsa",
	"harvest now decrypt later",
}

// GenericProfile is the default GRC compliance domain.
func GenericProfile() DomainProfile {
	return DomainProfile{
		Name:       ProfileGeneric,
		Detect:     func(string) bool { return true },
		Categories: genericCategories(),
	}
}

// QuantumProfile extends the generic domain with PQC categories. It is
// selected when the scenario carries explicit quantum signals.
func QuantumProfile() DomainProfile {
	return DomainProfile{
		Name: ProfileQuantum,
		Detect: func(text string) bool {
			for _, signal := range quantumSignals {
				if strings.Contains(text, signal) {
					return true
				}
			}
			return false
		},
		Categories: append(genericCategories(), quantumCategories()...),
	}
}

// Classifier matches scenario text against the categories of the selected
// domain profile. Classification is deterministic and side-effect free;
// profiles are fixed after construction.
type Classifier struct {
	profiles []DomainProfile
	logger   *logger.Logger
}

// NewClassifier creates a classifier with the given profiles. Profiles are
// tried in order; the first whose predicate matches wins, so the most
// specific profile goes first.
func NewClassifier(log *logger.Logger, profiles ...DomainProfile) *Classifier {
	if len(profiles) == 0 {
		profiles = []DomainProfile{QuantumProfile(), GenericProfile()}
	}
	return &Classifier{
		profiles: profiles,
		logger:   log.WithComponent("classifier"),
	}
}

// SelectProfile picks the domain profile for the scenario.
func (c *Classifier) SelectProfile(scenario string) DomainProfile {
	text := strings.ToLower(scenario)
	for _, p := range c.profiles {
		if p.Detect(text) {
			return p
		}
	}
	return c.profiles[len(c.profiles)-1]
}

// Classify finds every keyword of the selected profile present in the
// scenario. Duplicate keywords across categories are preserved; an empty
// match set is a valid classification, not an error.
func (c *Classifier) Classify(scenario string) models.Classification {
	profile := c.SelectProfile(scenario)
	text := strings.ToLower(scenario)

	var matches []models.MatchedKeyword
	for _, category := range profile.Categories {
		for _, keyword := range category.Keywords {
			if strings.Contains(text, keyword) {
				matches = append(matches, models.MatchedKeyword{
					Category:  category.Name,
					Keyword:   keyword,
					Controls:  category.Controls,
					Playbooks: category.Playbooks,
				})
			}
		}
	}

	c.logger.Debug().
		Str("profile", profile.Name).
		Int("matches", len(matches)).
		Msg("classified scenario")

	return models.Classification{Profile: profile.Name, Matches: matches}
}
