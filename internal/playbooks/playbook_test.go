package playbooks

import "testing"

func TestConventionControlID(t *testing.T) {
	tests := []struct {
		slug string
		want string
	}{
		{"ac-3-access-enforcement", "AC-3"},
		{"ac-6-least-privilege", "AC-6"},
		{"au-2-audit-events", "AU-2"},
		{"sc-7-boundary-protection", "SC-7"},
		{"sc-28-data-protection", "SC-28"},
		{"pqc/inventory", ""},
		{"pqc/deploy-mlkem", ""},
		{"", ""},
		{"noseparator", ""},
		{"ac-", ""},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			got := ConventionControlID(tt.slug)
			if got != tt.want {
				t.Errorf("ConventionControlID(%q) = %q, want %q", tt.slug, got, tt.want)
			}
		})
	}
}

func TestPlaybook_Validates(t *testing.T) {
	p := Playbook{Slug: "pqc/assess", Controls: []string{"SC-12", "SC-13", "SC-17"}}

	if !p.Validates("SC-13") {
		t.Error("Validates(SC-13) = false, want true")
	}
	if !p.Validates("sc-13") {
		t.Error("Validates(sc-13) = false, want true (case-insensitive)")
	}
	if p.Validates("AC-3") {
		t.Error("Validates(AC-3) = true, want false")
	}
}
