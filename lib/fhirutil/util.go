package fhirutil

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nuts-foundation/cds-hooks-ice/lib/to"
	"github.com/zorgbijjou/golang-fhir-models/fhir-models/fhir"
)

// ResourceInfo contains common FHIR resource fields extracted from JSON
type ResourceInfo struct {
	ID           string `json:"id"`
	ResourceType string `json:"resourceType"`
}

// ExtractResourceInfo extracts the resource type and ID from the JSON of any FHIR resource,
// without requiring knowledge of the specific resource type.
func ExtractResourceInfo(resourceJSON []byte) (*ResourceInfo, error) {
	var info ResourceInfo
	if err := json.Unmarshal(resourceJSON, &info); err != nil {
		return nil, fmt.Errorf("failed to unmarshal resource: %w", err)
	}
	return &info, nil
}

// FormatHumanName renders a HumanName as a single string: prefixes, given names, family name and suffixes,
// separated by spaces. If the name has none of those parts, its text is returned.
func FormatHumanName(name fhir.HumanName) string {
	var parts []string
	parts = append(parts, to.NonEmpty(name.Prefix...)...)
	parts = append(parts, to.NonEmpty(name.Given...)...)
	parts = append(parts, to.NonEmpty(to.EmptyString(name.Family))...)
	parts = append(parts, to.NonEmpty(name.Suffix...)...)
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	return strings.TrimSpace(to.EmptyString(name.Text))
}
