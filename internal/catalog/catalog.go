// Package catalog provides control catalog lookups backed by an OSCAL
// catalog file, with an optional redis-backed caching layer.
package catalog

import (
	"context"
	"errors"

	"pqcguard/internal/domain/models"
)

// ErrNotFound is returned when a control id has no catalog entry. Callers
// degrade on this error; only transport-level failures are fatal to a run.
var ErrNotFound = errors.New("control not found in catalog")

// Catalog looks up control metadata by id.
type Catalog interface {
	Lookup(ctx context.Context, controlID string) (models.CatalogControl, error)
	List(ctx context.Context) ([]models.CatalogControl, error)
}

// familyNames maps NIST 800-53 family prefixes to their names.
var familyNames = map[string]string{
	"AC": "Access Control",
	"AU": "Audit and Accountability",
	"CA": "Assessment, Authorization, and Monitoring",
	"SC": "System and Communications Protection",
	"SI": "System and Information Integrity",
}

// FamilyName returns the family name for a control id like "SC-13".
func FamilyName(controlID string) string {
	for i := 0; i < len(controlID); i++ {
		if controlID[i] == '-' {
			if name, ok := familyNames[controlID[:i]]; ok {
				return name
			}
			return controlID[:i]
		}
	}
	return ""
}
