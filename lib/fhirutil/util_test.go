package fhirutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zorgbijjou/golang-fhir-models/fhir-models/caramel/to"
	"github.com/zorgbijjou/golang-fhir-models/fhir-models/fhir"
)

func TestExtractResourceInfo(t *testing.T) {
	tests := []struct {
		name         string
		resourceJSON []byte
		expectedID   string
		expectedType string
		expectError  bool
	}{
		{
			name:         "resource with ID",
			resourceJSON: []byte(`{"id":"123","resourceType":"Immunization"}`),
			expectedID:   "123",
			expectedType: "Immunization",
		},
		{
			name:         "resource without ID",
			resourceJSON: []byte(`{"resourceType":"OperationOutcome"}`),
			expectedType: "OperationOutcome",
		},
		{
			name:         "invalid JSON",
			resourceJSON: []byte(`{invalid json}`),
			expectError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := ExtractResourceInfo(tt.resourceJSON)
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expectedID, info.ID)
			require.Equal(t, tt.expectedType, info.ResourceType)
		})
	}
}

func TestFormatHumanName(t *testing.T) {
	tests := []struct {
		name     string
		input    fhir.HumanName
		expected string
	}{
		{
			name:     "given and family",
			input:    fhir.HumanName{Given: []string{"Jane"}, Family: to.Ptr("Doe")},
			expected: "Jane Doe",
		},
		{
			name: "all parts",
			input: fhir.HumanName{
				Prefix: []string{"Dr."},
				Given:  []string{"Jane", "Mary"},
				Family: to.Ptr("Doe"),
				Suffix: []string{"PhD"},
			},
			expected: "Dr. Jane Mary Doe PhD",
		},
		{
			name:     "family only",
			input:    fhir.HumanName{Family: to.Ptr("Doe")},
			expected: "Doe",
		},
		{
			name:     "text is used when there are no parts",
			input:    fhir.HumanName{Text: to.Ptr("Jane Doe")},
			expected: "Jane Doe",
		},
		{
			name:     "parts take precedence over text",
			input:    fhir.HumanName{Text: to.Ptr("J. Doe"), Given: []string{"Jane"}, Family: to.Ptr("Doe")},
			expected: "Jane Doe",
		},
		{
			name:     "empty name",
			input:    fhir.HumanName{},
			expected: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, FormatHumanName(tt.input))
		})
	}
}
