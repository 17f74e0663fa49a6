package cdshooks

import (
	"context"
	"net/url"
	"strings"

	fhirclient "github.com/SanteonNL/go-fhir-client"
	"github.com/nuts-foundation/cds-hooks-ice/lib/fhirutil"
	"github.com/nuts-foundation/cds-hooks-ice/lib/to"
	"github.com/pkg/errors"
	"github.com/zorgbijjou/golang-fhir-models/fhir-models/fhir"
)

const (
	statusOverdue = "overdue"
	statusUnknown = "unknown"
)

// ImmunizationRecord is the projection of an Immunization resource the cards are built from.
type ImmunizationRecord struct {
	OccurrenceDate     string
	VaccineDisplayName string
	Status             string
}

func (r ImmunizationRecord) Overdue() bool {
	return strings.EqualFold(r.Status, statusOverdue)
}

// immunizationResource holds the Immunization fields the records are built from.
// Status is a plain string: the FHIR model's status type rejects codes outside R4, such as "overdue".
type immunizationResource struct {
	Status             *string              `json:"status,omitempty"`
	OccurrenceDateTime *string              `json:"occurrenceDateTime,omitempty"`
	VaccineCode        fhir.CodeableConcept `json:"vaccineCode"`
}

func (r immunizationResource) record() ImmunizationRecord {
	result := ImmunizationRecord{
		OccurrenceDate: to.EmptyString(r.OccurrenceDateTime),
		Status:         statusUnknown,
	}
	if len(r.VaccineCode.Coding) > 0 {
		result.VaccineDisplayName = to.EmptyString(r.VaccineCode.Coding[0].Display)
	}
	if status := to.EmptyString(r.Status); status != "" {
		result.Status = status
	}
	return result
}

// fetchOverdueImmunizations searches the patient's immunizations and returns the overdue ones, in search result order.
// Only the first page of the search result is considered.
func fetchOverdueImmunizations(ctx context.Context, client fhirclient.Client, patientID string) ([]ImmunizationRecord, error) {
	var searchSet fhir.Bundle
	query := url.Values{
		"patient": []string{patientID},
	}
	if err := client.SearchWithContext(ctx, "Immunization", query, &searchSet); err != nil {
		return nil, errors.Wrapf(err, "search Immunization?patient=%s", patientID)
	}
	results := make([]ImmunizationRecord, 0)
	err := fhirutil.VisitBundleResources[immunizationResource](&searchSet, "Immunization", func(resource *immunizationResource) error {
		if record := resource.record(); record.Overdue() {
			results = append(results, record)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "invalid Immunization search result")
	}
	return results, nil
}
