package cdshooks

import "strings"

// PatientID returns the patient from the hook context, or an empty string if the context doesn't specify one.
func (r Request) PatientID() string {
	if r.Context.PatientID == nil {
		return ""
	}
	return strings.TrimSpace(*r.Context.PatientID)
}

// ResolveFHIRServer returns the FHIR server the EHR specified, or the fallback if it didn't specify one.
// The boolean indicates whether the EHR specified the server itself.
func (r Request) ResolveFHIRServer(fallback string) (string, bool) {
	if r.FHIRServer != nil && strings.TrimSpace(*r.FHIRServer) != "" {
		return strings.TrimSpace(*r.FHIRServer), true
	}
	return fallback, false
}

// AccessToken returns the bearer token for the EHR's FHIR server, if one was granted.
func (r Request) AccessToken() string {
	if r.FHIRAuthorization == nil {
		return ""
	}
	return r.FHIRAuthorization.AccessToken
}
