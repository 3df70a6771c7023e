package models

import "time"

// Asset types recognized by the inventory extractor
const (
	AssetTypeDatabase      = "database"
	AssetTypeAPI           = "api"
	AssetTypeApplication   = "application"
	AssetTypeNetwork       = "network"
	AssetTypeStorage       = "storage"
	AssetTypeKeyManagement = "key management"
	AssetTypeGeneral       = "general"
)

// Asset is a cryptographic asset subject to quantum risk assessment.
type Asset struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Type              string    `json:"type"`
	Algorithm         string    `json:"algorithm"`
	KeySize           int       `json:"key_size,omitempty"`
	DataSensitivity   string    `json:"data_sensitivity"`
	SystemCriticality string    `json:"system_criticality"`
	DataShelfLife     int       `json:"data_shelf_life_years,omitempty"`
	Location          string    `json:"location,omitempty"`
	Description       string    `json:"description,omitempty"`
	CatalogedAt       time.Time `json:"cataloged_at"`
}

// AlgorithmProfile is reference data about a cryptographic algorithm's
// quantum posture.
type AlgorithmProfile struct {
	Name               string   `json:"name"`
	Type               string   `json:"type"`
	KeySizes           []int    `json:"key_sizes,omitempty"`
	Curves             []string `json:"curves,omitempty"`
	QuantumVulnerable  bool     `json:"quantum_vulnerable"`
	VulnerabilityLevel string   `json:"vulnerability_level"`
	Standard           string   `json:"standard,omitempty"`
	Replacement        string   `json:"replacement,omitempty"`
}

// ComponentInventory is the OSCAL-shaped component inventory document built
// from cataloged assets.
type ComponentInventory struct {
	UUID       string               `json:"uuid"`
	Metadata   DocumentMetadata     `json:"metadata"`
	Components []InventoryComponent `json:"components"`
}

// InventoryComponent is a single asset rendered as an OSCAL component.
type InventoryComponent struct {
	UUID        string `json:"uuid"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Props       []Prop `json:"props,omitempty"`
}
