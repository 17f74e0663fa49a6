package cdshooks

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/nuts-foundation/cds-hooks-ice/lib/cdshooks"
)

const cardSourceLabel = "FHIR Server"

// BuildCards creates one warning card per overdue immunization, in the order of the given records.
// Each card carries a single suggestion to order the vaccine, without actions.
func BuildCards(patientName string, engineVersion string, records []ImmunizationRecord) []cdshooks.Card {
	cards := make([]cdshooks.Card, 0, len(records))
	for _, record := range records {
		cards = append(cards, cdshooks.Card{
			Summary:   fmt.Sprintf("Patient: %s is overdue for %s vaccine", patientName, record.VaccineDisplayName),
			Detail:    fmt.Sprintf("The patient missed the scheduled immunization on %s. ICE version: %s", record.OccurrenceDate, engineVersion),
			Indicator: cdshooks.IndicatorWarning,
			Source: cdshooks.Source{
				Label: cardSourceLabel,
			},
			Suggestions: []cdshooks.Suggestion{
				{
					Label:   fmt.Sprintf("Order %s Vaccine", record.VaccineDisplayName),
					UUID:    uuid.NewString(),
					Actions: []cdshooks.Action{},
				},
			},
		})
	}
	return cards
}
