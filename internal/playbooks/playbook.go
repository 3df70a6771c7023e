// Package playbooks holds the registry of remediation/validation playbooks
// an assessment run can execute against its resolved controls.
package playbooks

import (
	"fmt"
	"strings"
)

// DefaultEstimatedMinutes is used when a manifest entry carries no estimate.
const DefaultEstimatedMinutes = 5

// Playbook is one executable playbook and the controls it validates.
type Playbook struct {
	Slug             string   `yaml:"slug" json:"slug"`
	Path             string   `yaml:"path" json:"path"`
	Description      string   `yaml:"description,omitempty" json:"description,omitempty"`
	Controls         []string `yaml:"controls" json:"controls"`
	EstimatedMinutes int      `yaml:"estimated_minutes" json:"estimated_minutes"`
}

// Validates reports whether the playbook's manifest lists the control.
func (p Playbook) Validates(controlID string) bool {
	for _, c := range p.Controls {
		if strings.EqualFold(c, controlID) {
			return true
		}
	}
	return false
}

// ConventionControlID derives a control id from a playbook slug named after
// its control, e.g. "ac-3-access-enforcement" -> "AC-3". Slugs that do not
// follow the convention (like the pqc/ namespace) yield "".
func ConventionControlID(slug string) string {
	if strings.Contains(slug, "/") {
		return ""
	}
	parts := strings.SplitN(slug, "-", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return ""
	}
	return fmt.Sprintf("%s-%s", strings.ToUpper(parts[0]), parts[1])
}
