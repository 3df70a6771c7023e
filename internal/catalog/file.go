package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"pqcguard/internal/domain/models"
)

// oscalCatalogFile mirrors the subset of the OSCAL catalog schema we read.
type oscalCatalogFile struct {
	Catalog struct {
		Groups []struct {
			ID       string `json:"id"`
			Title    string `json:"title"`
			Controls []struct {
				ID    string `json:"id"`
				Title string `json:"title"`
				Props []struct {
					Name  string `json:"name"`
					Value string `json:"value"`
				} `json:"props"`
				Parts []struct {
					Name  string `json:"name"`
					Prose string `json:"prose"`
				} `json:"parts"`
			} `json:"controls"`
		} `json:"groups"`
	} `json:"catalog"`
}

// FileCatalog serves controls parsed from an OSCAL catalog JSON file.
// The file is read once at construction; lookups afterwards are in-memory.
type FileCatalog struct {
	controls map[string]models.CatalogControl
}

// NewFromFile loads an OSCAL catalog from path.
func NewFromFile(path string) (*FileCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var doc oscalCatalogFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	controls := make(map[string]models.CatalogControl)
	for _, group := range doc.Catalog.Groups {
		for _, raw := range group.Controls {
			id := strings.ToUpper(raw.ID)
			control := models.CatalogControl{
				ID:       id,
				Title:    raw.Title,
				Family:   group.Title,
				Priority: models.PriorityMedium,
			}
			for _, prop := range raw.Props {
				if prop.Name == "priority" {
					control.Priority = prop.Value
				}
			}
			for _, part := range raw.Parts {
				if part.Name == "statement" && part.Prose != "" {
					control.Description = part.Prose
					break
				}
			}
			controls[id] = control
		}
	}

	if len(controls) == 0 {
		return nil, fmt.Errorf("catalog file %s contains no controls", path)
	}

	return &FileCatalog{controls: controls}, nil
}

// Lookup returns the control with the given id.
func (c *FileCatalog) Lookup(_ context.Context, controlID string) (models.CatalogControl, error) {
	control, ok := c.controls[strings.ToUpper(controlID)]
	if !ok {
		return models.CatalogControl{}, fmt.Errorf("lookup %s: %w", controlID, ErrNotFound)
	}
	return control, nil
}

// List returns all controls sorted by id.
func (c *FileCatalog) List(_ context.Context) ([]models.CatalogControl, error) {
	out := make([]models.CatalogControl, 0, len(c.controls))
	for _, control := range c.controls {
		out = append(out, control)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
