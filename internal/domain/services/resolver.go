package services

import (
	"context"
	"errors"
	"fmt"

	"pqcguard/internal/catalog"
	"pqcguard/internal/domain/models"
	"pqcguard/internal/playbooks"
	"pqcguard/pkg/logger"
)

// FlagCatalogMiss marks a control whose catalog metadata could not be found.
const FlagCatalogMiss = "catalog metadata unavailable"

// FlagConventionBinding marks a playbook binding derived from the slug naming
// convention rather than an explicit manifest entry.
const FlagConventionBinding = "playbook bound by naming convention"

// Resolver maps classified keywords to resolved controls: the deduplicated
// union of control ids enriched with catalog metadata and playbook bindings.
type Resolver struct {
	catalog  catalog.Catalog
	registry *playbooks.Registry
	logger   *logger.Logger
}

// NewResolver creates a control mapping resolver.
func NewResolver(cat catalog.Catalog, registry *playbooks.Registry, log *logger.Logger) *Resolver {
	return &Resolver{
		catalog:  cat,
		registry: registry,
		logger:   log.WithComponent("resolver"),
	}
}

// Resolve unions the controls and playbooks referenced by the matches, then
// looks each control up in the catalog. A catalog miss degrades to a
// placeholder entry flagged for downstream visibility; a transport failure
// aborts resolution.
func (r *Resolver) Resolve(ctx context.Context, classification models.Classification) (models.ResolvedControls, error) {
	controlIDs := make([]string, 0)
	playbookSlugs := make([]string, 0)
	seenControls := make(map[string]bool)
	seenPlaybooks := make(map[string]bool)

	for _, m := range classification.Matches {
		for _, id := range m.Controls {
			if !seenControls[id] {
				seenControls[id] = true
				controlIDs = append(controlIDs, id)
			}
		}
		for _, slug := range m.Playbooks {
			if !seenPlaybooks[slug] {
				seenPlaybooks[slug] = true
				playbookSlugs = append(playbookSlugs, slug)
			}
		}
	}

	resolved := models.ResolvedControls{
		Controls:  make([]models.ResolvedControl, 0, len(controlIDs)),
		Playbooks: playbookSlugs,
	}

	for _, id := range controlIDs {
		control, err := r.resolveControl(ctx, id)
		if err != nil {
			return models.ResolvedControls{}, err
		}
		resolved.Controls = append(resolved.Controls, control)
	}

	r.logger.Debug().
		Int("controls", len(resolved.Controls)).
		Int("playbooks", len(resolved.Playbooks)).
		Bool("degraded", resolved.Degraded()).
		Msg("resolved controls")

	return resolved, nil
}

func (r *Resolver) resolveControl(ctx context.Context, controlID string) (models.ResolvedControl, error) {
	resolved := models.ResolvedControl{ID: controlID}

	meta, err := r.catalog.Lookup(ctx, controlID)
	switch {
	case err == nil:
		resolved.Title = meta.Title
		resolved.Description = meta.Description
		resolved.Priority = meta.Priority
		if resolved.Priority == "" {
			resolved.Priority = models.PriorityMedium
		}
	case errors.Is(err, catalog.ErrNotFound):
		// Degrade, don't fail: the control is still assessed, just without
		// catalog metadata.
		resolved.Title = controlID
		resolved.Description = "control metadata unavailable"
		resolved.Priority = models.PriorityMedium
		resolved.CatalogMiss = true
		resolved.Flags = append(resolved.Flags, FlagCatalogMiss)
		r.logger.Warn().Str("control_id", controlID).Msg("catalog miss, using placeholder metadata")
	default:
		return models.ResolvedControl{}, fmt.Errorf("catalog lookup for %s failed: %w", controlID, err)
	}

	r.bindPlaybook(&resolved)
	return resolved, nil
}

// EnsureControl adds the control to the set if it is not already resolved,
// together with its bound playbook. Used for the always-on quantum baseline
// and the risk-driven data-at-rest addition.
func (r *Resolver) EnsureControl(ctx context.Context, set *models.ResolvedControls, controlID string) error {
	for _, c := range set.Controls {
		if c.ID == controlID {
			return nil
		}
	}

	control, err := r.resolveControl(ctx, controlID)
	if err != nil {
		return err
	}
	set.Controls = append(set.Controls, control)

	if control.Playbook == "" {
		return nil
	}
	for _, slug := range set.Playbooks {
		if slug == control.Playbook {
			return nil
		}
	}
	set.Playbooks = append(set.Playbooks, control.Playbook)
	return nil
}

// bindPlaybook attaches the playbook that validates the control. Manifest
// bindings are authoritative; the naming convention is a degraded fallback.
func (r *Resolver) bindPlaybook(control *models.ResolvedControl) {
	if p, ok := r.registry.ForControl(control.ID); ok {
		control.Playbook = p.Slug
		control.PlaybookConfidence = models.BindingManifest
		return
	}
	if p, ok := r.registry.ByConvention(control.ID); ok {
		control.Playbook = p.Slug
		control.PlaybookConfidence = models.BindingConvention
		control.Flags = append(control.Flags, FlagConventionBinding)
	}
}
