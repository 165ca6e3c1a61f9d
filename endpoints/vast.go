package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/golang/glog"
	"github.com/julienschmidt/httprouter"

	"github.com/adsmood/ctv-vast-engine/config"
	"github.com/adsmood/ctv-vast-engine/creative"
	"github.com/adsmood/ctv-vast-engine/errortypes"
	"github.com/adsmood/ctv-vast-engine/interactive"
	"github.com/adsmood/ctv-vast-engine/metrics"
	"github.com/adsmood/ctv-vast-engine/platforms"
	"github.com/adsmood/ctv-vast-engine/tracking"
	"github.com/adsmood/ctv-vast-engine/vast"
)

// Query parameters of the VAST ad-request endpoints.
const (
	platformParameter     = "platform"
	campaignIDParameter   = "dv360CampaignId"
	creativeIDParameter   = "dv360CreativeId"
	samIDParameter        = "samId"
	verificationParameter = "enableThirdPartyVerification"
)

// VastEndpoint serves GET /vast/:id and its preview/validate companions. Each
// request runs the full stateless export pipeline: registry lookup, tracking
// assembly, interactive resolution, document build.
type VastEndpoint struct {
	cfg      *config.Configuration
	fetcher  creative.Fetcher
	registry *platforms.Registry
	builder  *vast.Builder
	metrics  metrics.Engine
}

func NewVastEndpoint(cfg *config.Configuration, fetcher creative.Fetcher, registry *platforms.Registry, builder *vast.Builder, metricsEngine metrics.Engine) *VastEndpoint {
	return &VastEndpoint{
		cfg:      cfg,
		fetcher:  fetcher,
		registry: registry,
		builder:  builder,
		metrics:  metricsEngine,
	}
}

// Handle serves the VAST document for one creative on one platform.
func (e *VastEndpoint) Handle(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	e.serveDocument(w, r, ps, false)
}

// HandlePreview reuses the identical builder with the same inputs; the only
// difference is the content disposition hinting players not to track.
func (e *VastEndpoint) HandlePreview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	e.serveDocument(w, r, ps, true)
}

// HandleValidate builds the document and returns the validator's report
// instead of the XML.
func (e *VastEndpoint) HandleValidate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	platformID := r.URL.Query().Get(platformParameter)

	document, status, err := e.export(r, ps)
	if err != nil {
		e.metrics.RecordVastRequest(platformID, status)
		http.Error(w, err.Error(), status)
		return
	}

	result := vast.Validate(document)
	if !result.Valid {
		e.metrics.RecordValidationFailure(platformID)
	}

	e.metrics.RecordVastRequest(platformID, http.StatusOK)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		glog.Errorf("/vast/:id/validate: failed to write response: %v", err)
	}
}

func (e *VastEndpoint) serveDocument(w http.ResponseWriter, r *http.Request, ps httprouter.Params, preview bool) {
	platformID := r.URL.Query().Get(platformParameter)

	document, status, err := e.export(r, ps)
	if err != nil {
		e.metrics.RecordVastRequest(platformID, status)
		http.Error(w, err.Error(), status)
		return
	}

	if e.cfg.Vast.ValidateOnExport {
		if result := vast.Validate(document); !result.Valid {
			e.metrics.RecordValidationFailure(platformID)
			glog.Errorf("built document for creative %s failed validation: %v", ps.ByName("id"), result.Errors)
		}
	}

	e.metrics.RecordVastRequest(platformID, http.StatusOK)
	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("Cache-Control", "no-cache")
	if preview {
		w.Header().Set("Content-Disposition", "inline")
	}
	w.Write([]byte(document))
}

// export runs the pipeline and maps failures to HTTP statuses: unknown
// platform or creative are 404s, everything else fatal is a 500. The builder
// never degrades a failed export into a partial document.
func (e *VastEndpoint) export(r *http.Request, ps httprouter.Params) (string, int, error) {
	query := r.URL.Query()

	platformID := query.Get(platformParameter)
	if platformID == "" {
		return "", http.StatusBadRequest, &errortypes.BadInput{Message: "the platform query parameter is required"}
	}

	spec, err := e.registry.Lookup(platformID)
	if err != nil {
		return "", http.StatusNotFound, err
	}

	creativeID := ps.ByName("id")
	descriptor, err := e.fetcher.Fetch(r.Context(), creativeID)
	if err != nil {
		var notFound creative.NotFoundError
		if errors.As(err, &notFound) {
			return "", http.StatusNotFound, err
		}
		glog.Errorf("failed to fetch creative %s: %v", creativeID, err)
		return "", http.StatusInternalServerError, err
	}

	endpointSet, err := tracking.Assemble(e.cfg.TrackingOrigin(), descriptor.ID)
	if err != nil {
		glog.Errorf("failed to assemble tracking endpoints for %s: %v", creativeID, err)
		return "", http.StatusInternalServerError, err
	}

	interactiveCfg := interactive.Resolve(descriptor, spec)

	opts := vast.BuildOptions{
		EnableVerification: isAffirmative(query.Get(verificationParameter)),
		CampaignID:         query.Get(campaignIDParameter),
		CreativeID:         query.Get(creativeIDParameter),
		SamID:              query.Get(samIDParameter),
	}

	start := time.Now()
	document, err := e.builder.Build(descriptor, spec, endpointSet, interactiveCfg, opts)
	if err != nil {
		glog.Errorf("failed to build VAST for creative %s on %s: %v", creativeID, platformID, err)
		return "", http.StatusInternalServerError, err
	}
	e.metrics.RecordBuildTime(time.Since(start))

	return document, http.StatusOK, nil
}

func isAffirmative(value string) bool {
	return value == "true" || value == "1"
}
