package services

import (
	"strings"
	"testing"
	"time"

	"pqcguard/internal/domain/models"
)

func TestDetectAlgorithm(t *testing.T) {
	tests := []struct {
		scenario string
		want     string
	}{
		{"Legacy RSA 2048 key exchange", "RSA"},
		{"ECC P-256 certificates", "ECC"},
		{"elliptic curve signatures", "ECC"},
		{"DSA signing keys", "DSA"},
		{"AES encryption at rest", "AES-256"},
		{"no crypto mentioned", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := DetectAlgorithm(tt.scenario); got != tt.want {
				t.Errorf("DetectAlgorithm(%q) = %s, want %s", tt.scenario, got, tt.want)
			}
		})
	}
}

func TestInferDataSensitivity(t *testing.T) {
	tests := []struct {
		scenario string
		want     string
	}{
		{"classified defense records", "classified"},
		{"confidential customer data", "confidential"},
		{"public marketing site", "public"},
		{"routine operational data", "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := InferDataSensitivity(tt.scenario); got != tt.want {
				t.Errorf("InferDataSensitivity(%q) = %s, want %s", tt.scenario, got, tt.want)
			}
		})
	}
}

func TestInferCriticality(t *testing.T) {
	tests := []struct {
		scenario string
		want     string
	}{
		{"mission critical payment system", "critical"},
		{"classified records archive", "critical"},
		{"high value trading platform", "high"},
		{"confidential hr records", "high"},
		{"medium priority tooling", "medium"},
		{"test sandbox", "low"},
	}

	for _, tt := range tests {
		t.Run(tt.scenario, func(t *testing.T) {
			if got := InferCriticality(tt.scenario); got != tt.want {
				t.Errorf("InferCriticality(%q) = %s, want %s", tt.scenario, got, tt.want)
			}
		})
	}
}

func TestEstimateDataShelfLife(t *testing.T) {
	tests := []struct {
		scenario string
		want     int
	}{
		{"retain for 20 years", 20},
		{"long-term archival records", 20},
		{"keep for 10 years", 10},
		{"5 year retention", 5},
		{"ephemeral session data", 1},
	}

	for _, tt := range tests {
		t.Run(tt.scenario, func(t *testing.T) {
			if got := EstimateDataShelfLife(tt.scenario); got != tt.want {
				t.Errorf("EstimateDataShelfLife(%q) = %d, want %d", tt.scenario, got, tt.want)
			}
		})
	}
}

func TestInventory_ExtractAssets(t *testing.T) {
	inv := NewInventory(testLogger())
	at := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	assets := inv.ExtractAssets("Our database and api use RSA for confidential long-term records", at)

	if len(assets) != 2 {
		t.Fatalf("assets len = %d, want 2 (database, api)", len(assets))
	}

	types := map[string]bool{}
	for _, a := range assets {
		types[a.Type] = true
		if a.Algorithm != "RSA" {
			t.Errorf("Algorithm = %s, want RSA", a.Algorithm)
		}
		if a.DataSensitivity != "confidential" {
			t.Errorf("DataSensitivity = %s, want confidential", a.DataSensitivity)
		}
		if a.SystemCriticality != "high" {
			t.Errorf("SystemCriticality = %s, want high", a.SystemCriticality)
		}
		if a.DataShelfLife != 20 {
			t.Errorf("DataShelfLife = %d, want 20", a.DataShelfLife)
		}
		if a.ID == "" {
			t.Error("asset ID empty")
		}
		if !a.CatalogedAt.Equal(at) {
			t.Errorf("CatalogedAt = %v, want %v", a.CatalogedAt, at)
		}
	}
	if !types[models.AssetTypeDatabase] || !types[models.AssetTypeAPI] {
		t.Errorf("asset types = %v, want database and api", types)
	}
}

func TestInventory_ExtractAssets_NoneRecognized(t *testing.T) {
	inv := NewInventory(testLogger())

	assets := inv.ExtractAssets("general compliance review", time.Now())
	if len(assets) != 0 {
		t.Errorf("assets len = %d, want 0", len(assets))
	}
}

func TestInventory_Profile(t *testing.T) {
	inv := NewInventory(testLogger())

	p, ok := inv.Profile("ML-KEM")
	if !ok {
		t.Fatal("Profile(ML-KEM) = not found")
	}
	if p.Standard != "FIPS-203" {
		t.Errorf("Standard = %s, want FIPS-203", p.Standard)
	}
	if p.QuantumVulnerable {
		t.Error("ML-KEM marked quantum vulnerable")
	}

	p, ok = inv.Profile("RSA")
	if !ok {
		t.Fatal("Profile(RSA) = not found")
	}
	if !p.QuantumVulnerable || p.VulnerabilityLevel != "critical" {
		t.Errorf("RSA profile = %+v, want critical quantum vulnerable", p)
	}
	if p.Replacement != "ML-KEM" {
		t.Errorf("RSA replacement = %s, want ML-KEM", p.Replacement)
	}

	if _, ok := inv.Profile("ROT13"); ok {
		t.Error("Profile(ROT13) = found, want not found")
	}
}

func TestInventory_FilterByVulnerability(t *testing.T) {
	inv := NewInventory(testLogger())

	assets := []models.Asset{
		{Name: "a", Algorithm: "RSA"},
		{Name: "b", Algorithm: "AES-256"},
		{Name: "c", Algorithm: "ECC"},
	}

	critical := inv.FilterByVulnerability(assets, "critical")
	if len(critical) != 2 {
		t.Fatalf("critical len = %d, want 2", len(critical))
	}
	low := inv.FilterByVulnerability(assets, "low")
	if len(low) != 1 || low[0].Name != "b" {
		t.Errorf("low = %v, want [b]", low)
	}
}

func TestInventory_BuildComponentInventory(t *testing.T) {
	inv := NewInventory(testLogger())
	at := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	assets := []models.Asset{
		{Name: "database asset", Type: models.AssetTypeDatabase, Algorithm: "RSA"},
		{Name: "storage asset", Type: models.AssetTypeStorage, Algorithm: "ML-KEM"},
	}

	doc := inv.BuildComponentInventory(assets, at)

	if !strings.HasPrefix(doc.UUID, "urn:uuid:") {
		t.Errorf("UUID = %q, want urn:uuid: prefix", doc.UUID)
	}
	if len(doc.Components) != 2 {
		t.Fatalf("Components len = %d, want 2", len(doc.Components))
	}

	props := func(c models.InventoryComponent) map[string]string {
		out := map[string]string{}
		for _, p := range c.Props {
			out[p.Name] = p.Value
		}
		return out
	}

	rsa := props(doc.Components[0])
	if rsa["algorithm"] != "RSA" || rsa["quantum-vulnerability"] != "critical" {
		t.Errorf("RSA component props = %v", rsa)
	}
	mlkem := props(doc.Components[1])
	if mlkem["quantum-vulnerability"] != "none" || mlkem["standard"] != "FIPS-203" {
		t.Errorf("ML-KEM component props = %v", mlkem)
	}
}
