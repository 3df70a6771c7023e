package models

// Control priority levels
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Playbook binding confidence. A manifest binding comes from the playbook
// registry's explicit control mapping; a convention binding was derived from
// the slug naming convention and should be treated as degraded.
const (
	BindingManifest   = "manifest"
	BindingConvention = "naming-convention"
)

// ResolvedControl is a control after catalog lookup and playbook binding.
type ResolvedControl struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Priority           string   `json:"priority"`
	Playbook           string   `json:"playbook,omitempty"`
	PlaybookConfidence string   `json:"playbook_confidence,omitempty"`
	CatalogMiss        bool     `json:"catalog_miss,omitempty"`
	Flags              []string `json:"flags,omitempty"`
}

// ResolvedControls is the deduplicated union of controls and playbooks
// produced by the mapping resolver.
type ResolvedControls struct {
	Controls  []ResolvedControl `json:"controls"`
	Playbooks []string          `json:"playbooks"`
}

// ControlIDs returns the resolved control ids in resolution order.
func (r ResolvedControls) ControlIDs() []string {
	ids := make([]string, 0, len(r.Controls))
	for _, c := range r.Controls {
		ids = append(ids, c.ID)
	}
	return ids
}

// Degraded reports whether any control in the set carries a degradation flag.
func (r ResolvedControls) Degraded() bool {
	for _, c := range r.Controls {
		if c.CatalogMiss || c.PlaybookConfidence == BindingConvention {
			return true
		}
	}
	return false
}

// CatalogControl is the catalog's view of a control, independent of any
// assessment run.
type CatalogControl struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Family      string   `json:"family,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	Standards   []string `json:"standards,omitempty"`
}
