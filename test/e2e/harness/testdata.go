package harness

import (
	"context"
	"net/http"
	"net/url"

	fhirclient "github.com/SanteonNL/go-fhir-client"
	"github.com/pkg/errors"
	"github.com/zorgbijjou/golang-fhir-models/fhir-models/fhir"
)

func ptr[T any](v T) *T {
	return &v
}

// loadTestData creates a patient with an immunization history in the FHIR server, returning the patient's ID.
func loadTestData(ctx context.Context, fhirBaseURL *url.URL) (string, error) {
	client := fhirclient.New(fhirBaseURL, http.DefaultClient, nil)
	patient := fhir.Patient{
		Name: []fhir.HumanName{
			{
				Use:    ptr(fhir.NameUseOfficial),
				Family: ptr("Doe"),
				Given:  []string{"Jane"},
			},
		},
		BirthDate: ptr("2019-03-02"),
	}
	var createdPatient fhir.Patient
	if err := client.CreateWithContext(ctx, patient, &createdPatient); err != nil {
		return "", errors.Wrap(err, "create Patient")
	}
	immunizations := []fhir.Immunization{
		{
			Status: fhir.ImmunizationStatusCodesCompleted,
			VaccineCode: fhir.CodeableConcept{
				Coding: []fhir.Coding{{System: ptr("http://hl7.org/fhir/sid/cvx"), Code: ptr("03"), Display: ptr("MMR")}},
			},
			Patient:            fhir.Reference{Reference: ptr("Patient/" + *createdPatient.Id)},
			OccurrenceDateTime: ptr("2020-03-02"),
		},
		{
			Status: fhir.ImmunizationStatusCodesNotDone,
			VaccineCode: fhir.CodeableConcept{
				Coding: []fhir.Coding{{System: ptr("http://hl7.org/fhir/sid/cvx"), Code: ptr("10"), Display: ptr("IPV")}},
			},
			Patient:            fhir.Reference{Reference: ptr("Patient/" + *createdPatient.Id)},
			OccurrenceDateTime: ptr("2020-05-02"),
		},
	}
	for _, immunization := range immunizations {
		var created fhir.Immunization
		if err := client.CreateWithContext(ctx, immunization, &created); err != nil {
			return "", errors.Wrap(err, "create Immunization")
		}
	}
	return *createdPatient.Id, nil
}
