package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"pqcguard/internal/domain/models"
)

func TestStaticCatalog_Lookup(t *testing.T) {
	cat := NewStatic()

	control, err := cat.Lookup(context.Background(), "SC-13")
	if err != nil {
		t.Fatalf("Lookup(SC-13) error = %v", err)
	}
	if control.Title != "Cryptographic Protection" {
		t.Errorf("Title = %q", control.Title)
	}
	if control.Family != "System and Communications Protection" {
		t.Errorf("Family = %q", control.Family)
	}
	if len(control.Standards) != 3 {
		t.Errorf("Standards len = %d, want 3 (FIPS 203/204/205)", len(control.Standards))
	}
}

func TestStaticCatalog_Lookup_NotFound(t *testing.T) {
	cat := NewStatic()

	_, err := cat.Lookup(context.Background(), "XX-1")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Lookup(XX-1) error = %v, want ErrNotFound", err)
	}
}

func TestStaticCatalog_List_Sorted(t *testing.T) {
	cat := NewStatic()

	controls, err := cat.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(controls) != 21 {
		t.Fatalf("List() len = %d, want 21", len(controls))
	}
	for i := 1; i < len(controls); i++ {
		if controls[i-1].ID >= controls[i].ID {
			t.Fatalf("List() not sorted: %s before %s", controls[i-1].ID, controls[i].ID)
		}
	}
}

func TestFamilyName(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"AC-3", "Access Control"},
		{"AU-2", "Audit and Accountability"},
		{"CA-7", "Assessment, Authorization, and Monitoring"},
		{"SC-12", "System and Communications Protection"},
		{"SI-7", "System and Information Integrity"},
		{"XX-1", "XX"},
		{"nodash", ""},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := FamilyName(tt.id); got != tt.want {
				t.Errorf("FamilyName(%s) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestFileCatalog_ParsesOSCALCatalog(t *testing.T) {
	doc := `{
  "catalog": {
    "groups": [
      {
        "id": "sc",
        "title": "System and Communications Protection",
        "controls": [
          {
            "id": "sc-12",
            "title": "Cryptographic Key Establishment and Management",
            "props": [{"name": "priority", "value": "high"}],
            "parts": [{"name": "statement", "prose": "Establish and manage cryptographic keys."}]
          },
          {
            "id": "sc-13",
            "title": "Cryptographic Protection",
            "parts": []
          }
        ]
      }
    ]
  }
}`
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cat, err := NewFromFile(path)
	if err != nil {
		t.Fatalf("NewFromFile() error = %v", err)
	}

	control, err := cat.Lookup(context.Background(), "sc-12")
	if err != nil {
		t.Fatalf("Lookup(sc-12) error = %v", err)
	}
	if control.ID != "SC-12" {
		t.Errorf("ID = %q, want SC-12 (uppercased)", control.ID)
	}
	if control.Priority != models.PriorityHigh {
		t.Errorf("Priority = %q, want high", control.Priority)
	}
	if control.Description != "Establish and manage cryptographic keys." {
		t.Errorf("Description = %q", control.Description)
	}

	// Controls without a priority prop default to medium.
	control, err = cat.Lookup(context.Background(), "SC-13")
	if err != nil {
		t.Fatalf("Lookup(SC-13) error = %v", err)
	}
	if control.Priority != models.PriorityMedium {
		t.Errorf("default Priority = %q, want medium", control.Priority)
	}
}

func TestFileCatalog_EmptyCatalogRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(path, []byte(`{"catalog":{"groups":[]}}`), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := NewFromFile(path); err == nil {
		t.Error("NewFromFile(empty catalog) error = nil, want error")
	}
}
