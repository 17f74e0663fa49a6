package cdshooks

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponse_MarshalJSON(t *testing.T) {
	t.Run("no cards", func(t *testing.T) {
		data, err := json.Marshal(Response{})

		require.NoError(t, err)
		assert.JSONEq(t, `{"cards":[]}`, string(data))
	})
	t.Run("suggestion without actions", func(t *testing.T) {
		data, err := json.Marshal(Response{
			Cards: []Card{
				{
					Summary:   "summary",
					Indicator: IndicatorWarning,
					Source:    Source{Label: "FHIR Server"},
					Suggestions: []Suggestion{
						{Label: "Order MMR Vaccine", UUID: "1"},
					},
				},
			},
		})

		require.NoError(t, err)
		assert.JSONEq(t, `{"cards":[{"summary":"summary","indicator":"warning","source":{"label":"FHIR Server"},"suggestions":[{"label":"Order MMR Vaccine","uuid":"1","actions":[]}]}]}`, string(data))
	})
}

func TestRequest(t *testing.T) {
	t.Run("full request", func(t *testing.T) {
		var request Request
		err := json.Unmarshal([]byte(`{
			"hook": "patient-view",
			"hookInstance": "d1577c69-dfbe-44ad-ba6d-3e05e953b2ea",
			"fhirServer": "https://ehr.example.com/fhir",
			"fhirAuthorization": {"access_token": "secret", "token_type": "Bearer", "expires_in": 300},
			"context": {"userId": "Practitioner/1", "patientId": "123"}
		}`), &request)

		require.NoError(t, err)
		assert.Equal(t, "123", request.PatientID())
		assert.Equal(t, "secret", request.AccessToken())
		server, fromRequest := request.ResolveFHIRServer("http://default/fhir")
		assert.Equal(t, "https://ehr.example.com/fhir", server)
		assert.True(t, fromRequest)
	})
	t.Run("empty request", func(t *testing.T) {
		var request Request
		require.NoError(t, json.Unmarshal([]byte(`{}`), &request))

		assert.Empty(t, request.PatientID())
		assert.Empty(t, request.AccessToken())
		server, fromRequest := request.ResolveFHIRServer("http://default/fhir")
		assert.Equal(t, "http://default/fhir", server)
		assert.False(t, fromRequest)
	})
	t.Run("blank values are treated as absent", func(t *testing.T) {
		var request Request
		require.NoError(t, json.Unmarshal([]byte(`{"fhirServer":" ","context":{"patientId":""}}`), &request))

		assert.Empty(t, request.PatientID())
		server, fromRequest := request.ResolveFHIRServer("")
		assert.Empty(t, server)
		assert.False(t, fromRequest)
	})
}
