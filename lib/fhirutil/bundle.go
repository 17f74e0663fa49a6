package fhirutil

import (
	"encoding/json"
	"fmt"

	"github.com/zorgbijjou/golang-fhir-models/fhir-models/fhir"
)

// VisitBundleResources iterates over the entries in the bundle of the given resource type, in bundle order,
// unmarshals the entry's resource to the specified ResType and calls the visitor function.
// Entries without resource or of another resource type (e.g. an OperationOutcome in a search set) are skipped.
func VisitBundleResources[ResType any](bundle *fhir.Bundle, resourceType string, visitor func(resource *ResType) error) error {
	for i, entry := range bundle.Entry {
		if entry.Resource == nil {
			continue
		}
		info, err := ExtractResourceInfo(entry.Resource)
		if err != nil {
			return fmt.Errorf("bundle entry %d: %w", i, err)
		}
		if info.ResourceType != resourceType {
			continue
		}
		var res ResType
		if err := json.Unmarshal(entry.Resource, &res); err != nil {
			return fmt.Errorf("unmarshal bundle entry resource into %T: %w", res, err)
		}
		if err := visitor(&res); err != nil {
			return fmt.Errorf("visit bundle entry resource %T: %w", res, err)
		}
	}
	return nil
}
