package cdshooks

import (
	"context"
	"net/http"
	"net/url"

	fhirclient "github.com/SanteonNL/go-fhir-client"
	"github.com/nuts-foundation/cds-hooks-ice/cmd/core"
	"github.com/nuts-foundation/cds-hooks-ice/component"
	"github.com/nuts-foundation/cds-hooks-ice/lib/cdsapi"
	"github.com/nuts-foundation/cds-hooks-ice/lib/cdshooks"
	"github.com/nuts-foundation/cds-hooks-ice/lib/fhirutil"
	"github.com/nuts-foundation/cds-hooks-ice/lib/httpauth"
	"github.com/nuts-foundation/cds-hooks-ice/lib/ice"
	"github.com/nuts-foundation/cds-hooks-ice/lib/logging"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var _ component.Lifecycle = (*Component)(nil)

// engineInfoFetcher retrieves the version of the forecasting engine.
type engineInfoFetcher interface {
	EngineInfo(ctx context.Context) (ice.EngineInfo, error)
	Endpoint() string
}

// Component serves the CDS Hooks discovery endpoint and the ICE immunization forecast patient-view hook.
type Component struct {
	defaultFHIRServer string
	strictMode        bool
	httpClient        *http.Client
	fhirClientFn      func(baseURL *url.URL, httpClient *http.Client) fhirclient.Client
	engine            engineInfoFetcher
}

func New(config Config, iceConfig ice.Config, coreConfig core.Config) (*Component, error) {
	if iceConfig.Endpoint == "" {
		return nil, errors.New("ice.endpoint must be configured")
	}
	if config.FHIRServer == "" {
		log.Info().Msg("No default FHIR server configured, hook requests must specify fhirServer")
	}
	transport, err := newUpstreamTransport(config)
	if err != nil {
		return nil, err
	}
	httpClient := &http.Client{
		Transport: transport,
		Timeout:   config.Timeout,
	}
	iceHTTPClient := httpClient
	if iceConfig.OAuth2.IsConfigured() {
		iceHTTPClient, err = httpauth.NewOAuth2HTTPClient(iceConfig.OAuth2, transport, config.Timeout)
		if err != nil {
			return nil, errors.Wrap(err, "ICE OAuth2 client")
		}
	}
	return &Component{
		defaultFHIRServer: config.FHIRServer,
		strictMode:        coreConfig.StrictMode,
		httpClient:        httpClient,
		fhirClientFn: func(baseURL *url.URL, httpClient *http.Client) fhirclient.Client {
			return fhirclient.New(baseURL, httpClient, fhirutil.ClientConfig())
		},
		engine: ice.New(iceConfig.Endpoint, iceHTTPClient),
	}, nil
}

func (c *Component) Start() error {
	return nil
}

func (c *Component) Stop(_ context.Context) error {
	return nil
}

func (c *Component) RegisterHttpHandlers(publicMux *http.ServeMux, _ *http.ServeMux) {
	publicMux.HandleFunc("GET /cds-services", c.handleDiscovery)
	publicMux.HandleFunc("POST /cds-services/"+ServiceID, c.handleHook)
}

func (c *Component) handleHook(httpResponse http.ResponseWriter, httpRequest *http.Request) {
	ctx := httpRequest.Context()
	request, err := cdsapi.ReadRequest[cdshooks.Request](httpRequest)
	if err != nil {
		cdsapi.SendErrorResponse(ctx, httpResponse, err)
		return
	}
	if request.Hook != "" && request.Hook != service.Hook {
		cdsapi.SendErrorResponse(ctx, httpResponse, cdsapi.BadRequestError("hook "+request.Hook+" is not supported by "+ServiceID+", expected "+service.Hook, nil))
		return
	}
	// The logger carries the request context, so events get the trace and span id of the inbound request.
	ctx = log.Ctx(ctx).With().
		Ctx(ctx).
		Str(logging.FieldHookInstance, request.HookInstance).
		Str(logging.FieldPatientID, request.PatientID()).
		Logger().WithContext(ctx)
	cdsapi.SendResponse(ctx, httpResponse, http.StatusOK, c.handlePatientView(ctx, *request))
}

// handlePatientView builds the cards for a patient-view invocation. It never fails:
// missing context yields no cards, and upstream failures are logged and replaced by defaults.
func (c *Component) handlePatientView(ctx context.Context, request cdshooks.Request) cdshooks.Response {
	fhirServer, fhirServerFromRequest := request.ResolveFHIRServer(c.defaultFHIRServer)
	patientID := request.PatientID()

	var fhirClient fhirclient.Client
	if fhirServer != "" && patientID != "" {
		var err error
		fhirClient, err = c.createFHIRClient(ctx, fhirServer, fhirServerFromRequest, request.AccessToken())
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Str(logging.FieldFHIRServer, fhirServer).Msg("Invalid FHIR server, not fetching patient data")
		}
	} else {
		log.Ctx(ctx).Debug().Msg("Hook context lacks FHIR server or patient, not fetching patient data")
	}

	var patient *PatientInfo
	immunizations := make([]ImmunizationRecord, 0)
	engineInfo := ice.UnknownEngineInfo()

	var group errgroup.Group
	if fhirClient != nil {
		group.Go(func() error {
			result, err := fetchPatient(ctx, fhirClient, patientID)
			if err != nil {
				log.Ctx(ctx).Warn().Err(err).Str(logging.FieldFHIRServer, fhirServer).Msg("Failed to fetch patient from FHIR server")
				return nil
			}
			patient = result
			return nil
		})
		group.Go(func() error {
			result, err := fetchOverdueImmunizations(ctx, fhirClient, patientID)
			if err != nil {
				log.Ctx(ctx).Warn().Err(err).Str(logging.FieldFHIRServer, fhirServer).Msg("Failed to fetch immunizations from FHIR server")
				return nil
			}
			immunizations = result
			return nil
		})
	}
	group.Go(func() error {
		result, err := c.engine.EngineInfo(ctx)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Str(logging.FieldICEEndpoint, c.engine.Endpoint()).Msg("Failed to fetch ICE version")
		}
		engineInfo = result
		return nil
	})
	_ = group.Wait()

	patientName := ""
	if patient != nil {
		patientName = patient.DisplayName
	}
	cards := BuildCards(patientName, engineInfo.Version, immunizations)
	log.Ctx(ctx).Debug().Msgf("Returning %d card(s) (ICE version: %s)", len(cards), engineInfo.Version)
	return cdshooks.Response{Cards: cards}
}

// createFHIRClient creates a client for the given FHIR server. The EHR's access token is only sent to the FHIR server the EHR specified,
// and in strict mode only over HTTPS.
func (c *Component) createFHIRClient(ctx context.Context, fhirServer string, fhirServerFromRequest bool, accessToken string) (fhirclient.Client, error) {
	baseURL, err := url.Parse(fhirServer)
	if err != nil {
		return nil, err
	}
	if (baseURL.Scheme != "http" && baseURL.Scheme != "https") || baseURL.Host == "" {
		return nil, errors.Errorf("invalid FHIR base URL (url=%s)", fhirServer)
	}
	httpClient := c.httpClient
	if fhirServerFromRequest && accessToken != "" {
		if c.strictMode && baseURL.Scheme != "https" {
			log.Ctx(ctx).Warn().Str(logging.FieldFHIRServer, fhirServer).Msg("Not forwarding fhirAuthorization access token over plain HTTP (strict mode)")
		} else {
			httpClient = httpauth.WithBearerToken(httpClient, accessToken)
		}
	}
	return c.fhirClientFn(baseURL, httpClient), nil
}
