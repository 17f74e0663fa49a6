package cdshooks

import (
	"context"
	"net/url"

	fhirclient "github.com/SanteonNL/go-fhir-client"
	"github.com/nuts-foundation/cds-hooks-ice/lib/fhirutil"
	"github.com/pkg/errors"
	"github.com/zorgbijjou/golang-fhir-models/fhir-models/fhir"
)

// PatientInfo is what the cards need to know about the patient.
type PatientInfo struct {
	// DisplayName is the first name of the patient as single string, empty if the patient has no name.
	DisplayName string
}

// fetchPatient reads the Patient resource from the FHIR server.
// Any failure (unreachable, not found, invalid resource) is returned as error, the caller decides how to degrade.
func fetchPatient(ctx context.Context, client fhirclient.Client, patientID string) (*PatientInfo, error) {
	var patient fhir.Patient
	if err := client.ReadWithContext(ctx, "Patient/"+url.PathEscape(patientID), &patient); err != nil {
		return nil, errors.Wrapf(err, "read Patient/%s", patientID)
	}
	result := &PatientInfo{}
	if len(patient.Name) > 0 {
		result.DisplayName = fhirutil.FormatHumanName(patient.Name[0])
	}
	return result, nil
}
