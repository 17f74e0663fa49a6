package cdshooks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCards(t *testing.T) {
	t.Run("one card per record", func(t *testing.T) {
		records := []ImmunizationRecord{
			{OccurrenceDate: "2023-01-01", VaccineDisplayName: "MMR", Status: "overdue"},
			{OccurrenceDate: "2022-06-15", VaccineDisplayName: "IPV", Status: "overdue"},
			{OccurrenceDate: "2021-11-30", VaccineDisplayName: "DTaP", Status: "overdue"},
		}

		cards := BuildCards("Jane Doe", "1.2.3", records)

		require.Len(t, cards, 3)
		assert.Equal(t, "Patient: Jane Doe is overdue for MMR vaccine", cards[0].Summary)
		assert.Equal(t, "Patient: Jane Doe is overdue for IPV vaccine", cards[1].Summary)
		assert.Equal(t, "Patient: Jane Doe is overdue for DTaP vaccine", cards[2].Summary)
		assert.Equal(t, "The patient missed the scheduled immunization on 2021-11-30. ICE version: 1.2.3", cards[2].Detail)
		for _, card := range cards {
			assert.Equal(t, "warning", card.Indicator)
			assert.Equal(t, "FHIR Server", card.Source.Label)
			assert.Empty(t, card.Source.URL)
			require.Len(t, card.Suggestions, 1)
			assert.NotNil(t, card.Suggestions[0].Actions)
			assert.Empty(t, card.Suggestions[0].Actions)
		}
		assert.Equal(t, "Order MMR Vaccine", cards[0].Suggestions[0].Label)
	})
	t.Run("suggestion UUIDs are unique", func(t *testing.T) {
		records := make([]ImmunizationRecord, 50)
		for i := range records {
			records[i] = ImmunizationRecord{VaccineDisplayName: "MMR", Status: "overdue"}
		}

		cards := BuildCards("Jane Doe", "1.2.3", records)

		seen := make(map[string]bool)
		for _, card := range cards {
			id := card.Suggestions[0].UUID
			assert.Len(t, id, 36)
			assert.False(t, seen[id], "duplicate UUID %s", id)
			seen[id] = true
		}
	})
	t.Run("uses values verbatim", func(t *testing.T) {
		cards := BuildCards("", "Unknown", []ImmunizationRecord{{Status: "overdue"}})

		require.Len(t, cards, 1)
		assert.Equal(t, "Patient:  is overdue for  vaccine", cards[0].Summary)
		assert.Equal(t, "The patient missed the scheduled immunization on . ICE version: Unknown", cards[0].Detail)
		assert.Equal(t, "Order  Vaccine", cards[0].Suggestions[0].Label)
	})
	t.Run("no records", func(t *testing.T) {
		cards := BuildCards("Jane Doe", "1.2.3", nil)

		assert.NotNil(t, cards)
		assert.Empty(t, cards)
	})
}
