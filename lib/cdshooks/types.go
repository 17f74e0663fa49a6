// Package cdshooks contains the CDS Hooks wire format: service discovery, hook requests and card responses.
package cdshooks

import "encoding/json"

const HookPatientView = "patient-view"

// Card indicators, in order of urgency.
const (
	IndicatorInfo     = "info"
	IndicatorWarning  = "warning"
	IndicatorCritical = "critical"
)

// Service describes a single CDS service in the discovery response.
type Service struct {
	ID          string `json:"id"`
	Hook        string `json:"hook"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description"`
}

// Discovery is the response of GET /cds-services.
type Discovery struct {
	Services []Service `json:"services"`
}

// Request is the payload POSTed by the EHR to invoke a hook.
type Request struct {
	Hook              string             `json:"hook,omitempty"`
	HookInstance      string             `json:"hookInstance,omitempty"`
	FHIRServer        *string            `json:"fhirServer,omitempty"`
	FHIRAuthorization *FHIRAuthorization `json:"fhirAuthorization,omitempty"`
	Context           Context            `json:"context"`
}

// FHIRAuthorization carries the access token the EHR grants for calling back into its FHIR server.
type FHIRAuthorization struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in,omitempty"`
	Scope       string `json:"scope,omitempty"`
	Subject     string `json:"subject,omitempty"`
}

// Context is the hook context. For patient-view, patientId identifies the patient whose chart is opened.
type Context struct {
	UserID      string  `json:"userId,omitempty"`
	PatientID   *string `json:"patientId,omitempty"`
	EncounterID string  `json:"encounterId,omitempty"`
}

// Response is returned from a hook invocation. Cards is always serialized as an array, never null.
type Response struct {
	Cards []Card `json:"cards"`
}

func (r Response) MarshalJSON() ([]byte, error) {
	type response Response
	if r.Cards == nil {
		r.Cards = []Card{}
	}
	return json.Marshal(response(r))
}

// Card is a single advisory message shown to the clinician.
type Card struct {
	Summary     string       `json:"summary"`
	Detail      string       `json:"detail,omitempty"`
	Indicator   string       `json:"indicator"`
	Source      Source       `json:"source"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
}

// Source identifies where the information on a card comes from.
type Source struct {
	Label string `json:"label"`
	URL   string `json:"url,omitempty"`
}

// Suggestion is a proposed action on a card. Actions is always serialized as an array, never null.
type Suggestion struct {
	Label   string   `json:"label"`
	UUID    string   `json:"uuid"`
	Actions []Action `json:"actions"`
}

func (s Suggestion) MarshalJSON() ([]byte, error) {
	type suggestion Suggestion
	if s.Actions == nil {
		s.Actions = []Action{}
	}
	return json.Marshal(suggestion(s))
}

// Action is a single change a suggestion proposes to the EHR.
type Action struct {
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Resource    json.RawMessage `json:"resource,omitempty"`
}
