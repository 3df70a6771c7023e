package catalog

import (
	"context"
	"fmt"
	"sort"

	"pqcguard/internal/domain/models"
)

// StaticCatalog serves the built-in NIST 800-53 control subset. It is the
// fallback when no catalog file is configured and covers every control the
// default domain profiles can emit.
type StaticCatalog struct {
	controls map[string]models.CatalogControl
}

// NewStatic builds the built-in catalog.
func NewStatic() *StaticCatalog {
	entries := []models.CatalogControl{
		{ID: "AC-3", Title: "Access Enforcement", Description: "Enforce approved authorizations for logical access to information and system resources.", Priority: models.PriorityHigh},
		{ID: "AC-6", Title: "Least Privilege", Description: "Employ the principle of least privilege, allowing only authorized accesses necessary to accomplish assigned tasks.", Priority: models.PriorityHigh},
		{ID: "AC-7", Title: "Unsuccessful Logon Attempts", Description: "Enforce a limit of consecutive invalid logon attempts during a defined time period.", Priority: models.PriorityMedium},
		{ID: "AC-8", Title: "System Use Notification", Description: "Display a system use notification message before granting access to the system.", Priority: models.PriorityLow},
		{ID: "AU-2", Title: "Event Logging", Description: "Identify the types of events that the system is capable of logging in support of the audit function.", Priority: models.PriorityHigh},
		{ID: "AU-3", Title: "Content of Audit Records", Description: "Ensure audit records contain information establishing what event occurred, when, where, its source and outcome.", Priority: models.PriorityMedium},
		{ID: "AU-4", Title: "Audit Log Storage Capacity", Description: "Allocate audit log storage capacity to accommodate audit log retention requirements.", Priority: models.PriorityMedium},
		{ID: "AU-5", Title: "Response to Audit Logging Process Failures", Description: "Alert designated personnel in the event of an audit logging process failure.", Priority: models.PriorityMedium},
		{ID: "CA-7", Title: "Continuous Monitoring", Description: "Develop a system-level continuous monitoring strategy and implement continuous monitoring.", Priority: models.PriorityMedium},
		{ID: "SC-7", Title: "Boundary Protection", Description: "Monitor and control communications at the external managed interfaces to the system.", Priority: models.PriorityHigh},
		{ID: "SC-8", Title: "Transmission Confidentiality and Integrity", Description: "Protect the confidentiality and integrity of transmitted information.", Priority: models.PriorityHigh},
		{ID: "SC-9", Title: "Transmission Confidentiality", Description: "Protect the confidentiality of transmitted information.", Priority: models.PriorityMedium},
		{ID: "SC-10", Title: "Network Disconnect", Description: "Terminate the network connection associated with a communications session at the end of the session or after a period of inactivity.", Priority: models.PriorityLow},
		{ID: "SC-12", Title: "Cryptographic Key Establishment and Management", Description: "Establish and manage cryptographic keys using quantum-resistant algorithms.", Priority: models.PriorityHigh, Standards: []string{"FIPS-203", "FIPS-204", "FIPS-205"}},
		{ID: "SC-13", Title: "Cryptographic Protection", Description: "Use quantum-resistant cryptographic mechanisms for data protection.", Priority: models.PriorityHigh, Standards: []string{"FIPS-203", "FIPS-204", "FIPS-205"}},
		{ID: "SC-17", Title: "Public Key Infrastructure Certificates", Description: "Use post-quantum algorithms for digital signatures in PKI certificates.", Priority: models.PriorityHigh, Standards: []string{"FIPS-204", "FIPS-205"}},
		{ID: "SC-28", Title: "Protection of Information at Rest", Description: "Protect the confidentiality and integrity of information at rest using quantum-resistant encryption.", Priority: models.PriorityHigh},
		{ID: "SC-29", Title: "Heterogeneity", Description: "Employ a diverse set of information technologies in the implementation of the system.", Priority: models.PriorityLow},
		{ID: "SC-30", Title: "Concealment and Misdirection", Description: "Employ concealment and misdirection techniques to confuse and mislead adversaries.", Priority: models.PriorityLow},
		{ID: "SC-31", Title: "Covert Channel Analysis", Description: "Perform covert channel analysis to identify aspects of communications that could allow unauthorized information flows.", Priority: models.PriorityLow},
		{ID: "SI-7", Title: "Software, Firmware, and Information Integrity", Description: "Employ integrity verification tools to detect unauthorized changes to software, firmware, and information.", Priority: models.PriorityHigh},
	}

	controls := make(map[string]models.CatalogControl, len(entries))
	for _, e := range entries {
		e.Family = FamilyName(e.ID)
		controls[e.ID] = e
	}
	return &StaticCatalog{controls: controls}
}

// Lookup returns the control with the given id.
func (c *StaticCatalog) Lookup(_ context.Context, controlID string) (models.CatalogControl, error) {
	control, ok := c.controls[controlID]
	if !ok {
		return models.CatalogControl{}, fmt.Errorf("lookup %s: %w", controlID, ErrNotFound)
	}
	return control, nil
}

// List returns all controls sorted by id.
func (c *StaticCatalog) List(_ context.Context) ([]models.CatalogControl, error) {
	out := make([]models.CatalogControl, 0, len(c.controls))
	for _, control := range c.controls {
		out = append(out, control)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
