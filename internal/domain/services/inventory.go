package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pqcguard/internal/domain/models"
	"pqcguard/pkg/logger"
)

// assetTypeKeywords are the asset families the extractor recognizes in
// scenario text, in detection order.
var assetTypeKeywords = []string{
	models.AssetTypeDatabase,
	models.AssetTypeAPI,
	models.AssetTypeApplication,
	models.AssetTypeNetwork,
	models.AssetTypeStorage,
	models.AssetTypeKeyManagement,
}

// Inventory extracts cryptographic assets from scenario text and serves
// algorithm reference data.
type Inventory struct {
	profiles []models.AlgorithmProfile
	logger   *logger.Logger
}

// NewInventory creates the asset inventory service.
func NewInventory(log *logger.Logger) *Inventory {
	return &Inventory{
		profiles: algorithmProfiles(),
		logger:   log.WithComponent("inventory"),
	}
}

// ExtractAssets derives cryptographic assets from the scenario text. Each
// recognized asset family present in the text yields one asset carrying the
// detected algorithm and inferred sensitivity/criticality.
func (inv *Inventory) ExtractAssets(scenario string, at time.Time) []models.Asset {
	text := strings.ToLower(scenario)

	var assets []models.Asset
	for _, assetType := range assetTypeKeywords {
		if !strings.Contains(text, assetType) {
			continue
		}
		assets = append(assets, models.Asset{
			ID:                uuid.NewString(),
			Name:              fmt.Sprintf("%s asset", assetType),
			Type:              assetType,
			Algorithm:         DetectAlgorithm(scenario),
			DataSensitivity:   InferDataSensitivity(scenario),
			SystemCriticality: InferCriticality(scenario),
			DataShelfLife:     EstimateDataShelfLife(scenario),
			CatalogedAt:       at,
		})
	}

	inv.logger.Debug().Int("assets", len(assets)).Msg("extracted assets from scenario")
	return assets
}

// AlgorithmProfiles returns the algorithm reference data.
func (inv *Inventory) AlgorithmProfiles() []models.AlgorithmProfile {
	out := make([]models.AlgorithmProfile, len(inv.profiles))
	copy(out, inv.profiles)
	return out
}

// Profile returns the reference profile for an algorithm name.
func (inv *Inventory) Profile(algorithm string) (models.AlgorithmProfile, bool) {
	for _, p := range inv.profiles {
		if p.Name == algorithm {
			return p, true
		}
	}
	return models.AlgorithmProfile{}, false
}

// FilterByVulnerability returns the assets whose algorithm has the given
// vulnerability level.
func (inv *Inventory) FilterByVulnerability(assets []models.Asset, level string) []models.Asset {
	var out []models.Asset
	for _, asset := range assets {
		if p, ok := inv.Profile(asset.Algorithm); ok && p.VulnerabilityLevel == level {
			out = append(out, asset)
		}
	}
	return out
}

// BuildComponentInventory renders assets as an OSCAL component inventory.
func (inv *Inventory) BuildComponentInventory(assets []models.Asset, at time.Time) models.ComponentInventory {
	doc := models.ComponentInventory{
		UUID: oscalUUID(),
		Metadata: models.DocumentMetadata{
			Title:        "Cryptographic Asset Inventory",
			LastModified: at,
			Version:      "1.0.0",
			OSCALVersion: models.OSCALVersion,
		},
		Components: make([]models.InventoryComponent, 0, len(assets)),
	}

	for _, asset := range assets {
		props := []models.Prop{
			{Name: "algorithm", Value: asset.Algorithm},
			{Name: "asset-type", Value: asset.Type},
		}
		if p, ok := inv.Profile(asset.Algorithm); ok {
			props = append(props, models.Prop{Name: "quantum-vulnerability", Value: p.VulnerabilityLevel})
			if p.Standard != "" {
				props = append(props, models.Prop{Name: "standard", Value: p.Standard})
			}
		}
		doc.Components = append(doc.Components, models.InventoryComponent{
			UUID:        oscalUUID(),
			Type:        "software",
			Title:       asset.Name,
			Description: fmt.Sprintf("%s using %s", asset.Type, asset.Algorithm),
			Props:       props,
		})
	}

	return doc
}

// DetectAlgorithm finds the dominant cryptographic algorithm referenced in
// the scenario text.
func DetectAlgorithm(scenario string) string {
	text := strings.ToLower(scenario)
	switch {
	case strings.Contains(text, "rsa"):
		return "RSA"
	case strings.Contains(text, "ecc"), strings.Contains(text, "elliptic"):
		return "ECC"
	case strings.Contains(text, "dsa"):
		return "DSA"
	case strings.Contains(text, "aes"):
		return "AES-256"
	default:
		return "Unknown"
	}
}

// InferDataSensitivity infers the data sensitivity class from scenario text.
func InferDataSensitivity(scenario string) string {
	text := strings.ToLower(scenario)
	switch {
	case strings.Contains(text, "classified"):
		return "classified"
	case strings.Contains(text, "confidential"):
		return "confidential"
	case strings.Contains(text, "public"):
		return "public"
	default:
		return "internal"
	}
}

// InferCriticality infers business criticality from scenario text.
func InferCriticality(scenario string) string {
	text := strings.ToLower(scenario)
	switch {
	case strings.Contains(text, "critical"), strings.Contains(text, "classified"):
		return "critical"
	case strings.Contains(text, "high"), strings.Contains(text, "confidential"):
		return "high"
	case strings.Contains(text, "medium"):
		return "medium"
	default:
		return "low"
	}
}

// EstimateDataShelfLife estimates how long, in years, the protected data
// must stay confidential.
func EstimateDataShelfLife(scenario string) int {
	text := strings.ToLower(scenario)
	switch {
	case strings.Contains(text, "20 year"), strings.Contains(text, "long-term"):
		return 20
	case strings.Contains(text, "10 year"):
		return 10
	case strings.Contains(text, "5 year"):
		return 5
	default:
		return 1
	}
}

// algorithmProfiles is the built-in algorithm reference table.
func algorithmProfiles() []models.AlgorithmProfile {
	return []models.AlgorithmProfile{
		{Name: "RSA", Type: "Public Key", KeySizes: []int{1024, 2048, 4096},
			QuantumVulnerable: true, VulnerabilityLevel: "critical", Replacement: "ML-KEM"},
		{Name: "ECC", Type: "Public Key", Curves: []string{"P-256", "P-384", "P-521"},
			QuantumVulnerable: true, VulnerabilityLevel: "critical", Replacement: "ML-KEM"},
		{Name: "DSA", Type: "Digital Signature", KeySizes: []int{1024, 2048, 3072},
			QuantumVulnerable: true, VulnerabilityLevel: "critical", Replacement: "ML-DSA"},
		{Name: "AES-256", Type: "Symmetric", KeySizes: []int{256},
			QuantumVulnerable: false, VulnerabilityLevel: "low"},
		{Name: "ML-KEM", Type: "Public Key (PQC)", Standard: "FIPS-203",
			QuantumVulnerable: false, VulnerabilityLevel: "none"},
		{Name: "ML-DSA", Type: "Digital Signature (PQC)", Standard: "FIPS-204",
			QuantumVulnerable: false, VulnerabilityLevel: "none"},
		{Name: "SLH-DSA", Type: "Digital Signature (PQC)", Standard: "FIPS-205",
			QuantumVulnerable: false, VulnerabilityLevel: "none"},
	}
}
