package playbooks

import (
	"os"
	"path/filepath"
	"testing"

	"pqcguard/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "fatal", Format: "json"})
}

func TestRegistry_Register_Defaults(t *testing.T) {
	r := NewRegistry(testLogger())

	if err := r.Register(Playbook{Slug: "sc-28-data-protection", Controls: []string{"SC-28"}}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	p, ok := r.Get("sc-28-data-protection")
	if !ok {
		t.Fatal("Get() after Register() = not found")
	}
	if p.Path != "/ansible/playbooks/sc-28-data-protection.yml" {
		t.Errorf("default path = %q", p.Path)
	}
	if p.EstimatedMinutes != DefaultEstimatedMinutes {
		t.Errorf("default estimate = %d, want %d", p.EstimatedMinutes, DefaultEstimatedMinutes)
	}
}

func TestRegistry_Register_RejectsDuplicates(t *testing.T) {
	r := NewRegistry(testLogger())

	if err := r.Register(Playbook{Slug: "pqc/assess"}); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}
	if err := r.Register(Playbook{Slug: "pqc/assess"}); err == nil {
		t.Error("duplicate Register() error = nil, want error")
	}
}

func TestRegistry_Register_RequiresSlug(t *testing.T) {
	r := NewRegistry(testLogger())
	if err := r.Register(Playbook{}); err == nil {
		t.Error("Register(empty slug) error = nil, want error")
	}
}

func TestRegistry_List_PreservesRegistrationOrder(t *testing.T) {
	r := NewRegistry(testLogger())
	slugs := []string{"sc-7-boundary-protection", "ac-3-access-enforcement", "pqc/inventory"}
	for _, slug := range slugs {
		if err := r.Register(Playbook{Slug: slug}); err != nil {
			t.Fatalf("Register(%s) error = %v", slug, err)
		}
	}

	list := r.List()
	if len(list) != len(slugs) {
		t.Fatalf("List() len = %d, want %d", len(list), len(slugs))
	}
	for i, p := range list {
		if p.Slug != slugs[i] {
			t.Errorf("List()[%d] = %s, want %s", i, p.Slug, slugs[i])
		}
	}
}

func TestRegistry_ForControl(t *testing.T) {
	r := NewDefault(testLogger())

	p, ok := r.ForControl("SC-12")
	if !ok {
		t.Fatal("ForControl(SC-12) = not found")
	}
	// First registered playbook validating SC-12 wins.
	if p.Slug != "pqc/inventory" {
		t.Errorf("ForControl(SC-12) = %s, want pqc/inventory", p.Slug)
	}

	if _, ok := r.ForControl("ZZ-99"); ok {
		t.Error("ForControl(ZZ-99) = found, want not found")
	}
}

func TestRegistry_ByConvention(t *testing.T) {
	r := NewRegistry(testLogger())
	if err := r.Register(Playbook{Slug: "au-2-audit-events"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	p, ok := r.ByConvention("AU-2")
	if !ok {
		t.Fatal("ByConvention(AU-2) = not found")
	}
	if p.Slug != "au-2-audit-events" {
		t.Errorf("ByConvention(AU-2) = %s", p.Slug)
	}

	if _, ok := r.ByConvention("SC-12"); ok {
		t.Error("ByConvention(SC-12) = found, want not found")
	}
}

func TestRegistry_EstimatedDuration(t *testing.T) {
	r := NewDefault(testLogger())

	// pqc/inventory (5) + pqc/assess (3) + pqc/deploy-mlkem (10)
	got := r.EstimatedDuration([]string{"pqc/inventory", "pqc/assess", "pqc/deploy-mlkem"})
	if got != 18 {
		t.Errorf("EstimatedDuration() = %d, want 18", got)
	}

	// Unknown slugs contribute the default estimate.
	got = r.EstimatedDuration([]string{"does-not-exist"})
	if got != DefaultEstimatedMinutes {
		t.Errorf("EstimatedDuration(unknown) = %d, want %d", got, DefaultEstimatedMinutes)
	}
}

func TestRegistry_NewDefault_CoversKnownControls(t *testing.T) {
	r := NewDefault(testLogger())

	if r.Len() != 12 {
		t.Fatalf("NewDefault() Len = %d, want 12", r.Len())
	}
	for _, id := range []string{"AC-3", "AC-6", "AU-2", "SC-7", "SC-12", "SC-13", "SC-17", "SC-28", "CA-7", "SI-7"} {
		if _, ok := r.ForControl(id); !ok {
			t.Errorf("ForControl(%s) = not found in default set", id)
		}
	}
}

func TestRegistry_LoadManifest(t *testing.T) {
	manifest := `playbooks:
  - slug: sc-8-transmission-protection
    controls: [SC-8]
    estimated_minutes: 7
    description: Validate TLS configuration
  - slug: pqc/rotate-keys
    path: /ansible/playbooks/pqc/rotate-keys.yml
    controls: [SC-12]
`
	path := filepath.Join(t.TempDir(), "playbooks.yaml")
	if err := os.WriteFile(path, []byte(manifest), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	r := NewRegistry(testLogger())
	if err := r.LoadManifest(path); err != nil {
		t.Fatalf("LoadManifest() error = %v", err)
	}

	if r.Len() != 2 {
		t.Fatalf("Len() after LoadManifest = %d, want 2", r.Len())
	}
	p, ok := r.Get("sc-8-transmission-protection")
	if !ok {
		t.Fatal("Get(sc-8-transmission-protection) = not found")
	}
	if p.EstimatedMinutes != 7 {
		t.Errorf("EstimatedMinutes = %d, want 7", p.EstimatedMinutes)
	}
	if !p.Validates("SC-8") {
		t.Error("Validates(SC-8) = false after manifest load")
	}
}

func TestRegistry_LoadManifest_MissingFile(t *testing.T) {
	r := NewRegistry(testLogger())
	if err := r.LoadManifest(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadManifest(missing) error = nil, want error")
	}
}
