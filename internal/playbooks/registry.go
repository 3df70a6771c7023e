package playbooks

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"pqcguard/pkg/logger"
)

// Registry holds all registered playbooks. Registration happens at startup;
// afterwards the registry is read-only, so readers never contend. Order is
// preserved so execution is deterministic.
type Registry struct {
	mu        sync.RWMutex
	playbooks map[string]Playbook
	order     []string
	logger    *logger.Logger
}

// NewRegistry creates an empty playbook registry.
func NewRegistry(log *logger.Logger) *Registry {
	return &Registry{
		playbooks: make(map[string]Playbook),
		logger:    log.WithComponent("playbook-registry"),
	}
}

// Register adds a playbook to the registry.
func (r *Registry) Register(p Playbook) error {
	if p.Slug == "" {
		return fmt.Errorf("playbook slug is required")
	}
	if p.Path == "" {
		p.Path = fmt.Sprintf("/ansible/playbooks/%s.yml", p.Slug)
	}
	if p.EstimatedMinutes <= 0 {
		p.EstimatedMinutes = DefaultEstimatedMinutes
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.playbooks[p.Slug]; exists {
		return fmt.Errorf("playbook %s already registered", p.Slug)
	}
	r.playbooks[p.Slug] = p
	r.order = append(r.order, p.Slug)

	r.logger.Debug().Str("slug", p.Slug).Strs("controls", p.Controls).Msg("registered playbook")
	return nil
}

// Get returns a playbook by slug.
func (r *Registry) Get(slug string) (Playbook, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.playbooks[slug]
	return p, ok
}

// List returns all playbooks in registration order.
func (r *Registry) List() []Playbook {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Playbook, 0, len(r.order))
	for _, slug := range r.order {
		out = append(out, r.playbooks[slug])
	}
	return out
}

// Len returns the number of registered playbooks.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// ForControl returns the first playbook whose manifest lists the control,
// in registration order.
func (r *Registry) ForControl(controlID string) (Playbook, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, slug := range r.order {
		if r.playbooks[slug].Validates(controlID) {
			return r.playbooks[slug], true
		}
	}
	return Playbook{}, false
}

// ByConvention returns the playbook whose slug names the control per the
// naming convention. Bindings found this way are degraded-confidence.
func (r *Registry) ByConvention(controlID string) (Playbook, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, slug := range r.order {
		if ConventionControlID(slug) == controlID {
			return r.playbooks[slug], true
		}
	}
	return Playbook{}, false
}

// EstimatedDuration sums the runtime estimates for the given slugs, in
// minutes. Unknown slugs contribute the default estimate.
func (r *Registry) EstimatedDuration(slugs []string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := 0
	for _, slug := range slugs {
		if p, ok := r.playbooks[slug]; ok {
			total += p.EstimatedMinutes
		} else {
			total += DefaultEstimatedMinutes
		}
	}
	return total
}

// manifest mirrors the YAML manifest file layout.
type manifest struct {
	Playbooks []Playbook `yaml:"playbooks"`
}

// LoadManifest registers every playbook from a YAML manifest file.
func (r *Registry) LoadManifest(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read playbook manifest: %w", err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("failed to parse playbook manifest: %w", err)
	}

	for _, p := range m.Playbooks {
		if err := r.Register(p); err != nil {
			return err
		}
	}

	r.logger.Info().Int("count", len(m.Playbooks)).Str("path", path).Msg("loaded playbook manifest")
	return nil
}

// NewDefault returns a registry populated with the built-in playbook set.
func NewDefault(log *logger.Logger) *Registry {
	r := NewRegistry(log)
	for _, p := range defaultPlaybooks() {
		// Slugs in the built-in set are unique; Register cannot fail here.
		_ = r.Register(p)
	}
	return r
}

// defaultPlaybooks is the built-in playbook set: the standard GRC playbooks
// named after their control, plus the pqc/ namespace bound via explicit
// control mappings.
func defaultPlaybooks() []Playbook {
	return []Playbook{
		{Slug: "ac-3-access-enforcement", Controls: []string{"AC-3"}, EstimatedMinutes: 3,
			Description: "Validate access enforcement configuration"},
		{Slug: "ac-6-least-privilege", Controls: []string{"AC-6"}, EstimatedMinutes: 5,
			Description: "Validate least-privilege assignments"},
		{Slug: "au-2-audit-events", Controls: []string{"AU-2"}, EstimatedMinutes: 2,
			Description: "Validate audit event logging configuration"},
		{Slug: "sc-7-boundary-protection", Controls: []string{"SC-7"}, EstimatedMinutes: 4,
			Description: "Validate boundary protection devices"},
		{Slug: "sc-28-data-protection", Controls: []string{"SC-28"}, EstimatedMinutes: 4,
			Description: "Validate encryption of data at rest"},
		{Slug: "pqc/inventory", Controls: []string{"SC-12", "SC-13"}, EstimatedMinutes: 5,
			Description: "Inventory cryptographic assets and algorithms"},
		{Slug: "pqc/assess", Controls: []string{"SC-12", "SC-13", "SC-17"}, EstimatedMinutes: 3,
			Description: "Assess quantum vulnerability of deployed cryptography"},
		{Slug: "pqc/deploy-mlkem", Controls: []string{"SC-12", "SC-13"}, EstimatedMinutes: 10,
			Description: "Deploy ML-KEM key encapsulation"},
		{Slug: "pqc/deploy-mldsa", Controls: []string{"SC-17", "SI-7"}, EstimatedMinutes: 10,
			Description: "Deploy ML-DSA digital signatures"},
		{Slug: "pqc/deploy-slhdsa", Controls: []string{"SC-17", "SI-7"}, EstimatedMinutes: 10,
			Description: "Deploy SLH-DSA hash-based signatures"},
		{Slug: "pqc/hybrid-crypto", Controls: []string{"SC-12", "SC-13"}, EstimatedMinutes: 8,
			Description: "Configure hybrid classical/post-quantum key exchange"},
		{Slug: "pqc/validate", Controls: []string{"SC-13", "CA-7"}, EstimatedMinutes: 5,
			Description: "Validate post-quantum deployments"},
	}
}
