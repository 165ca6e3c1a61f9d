package router

import (
	"net/http"

	"github.com/golang/glog"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"

	"github.com/adsmood/ctv-vast-engine/config"
	"github.com/adsmood/ctv-vast-engine/creative"
	"github.com/adsmood/ctv-vast-engine/endpoints"
	"github.com/adsmood/ctv-vast-engine/metrics"
	"github.com/adsmood/ctv-vast-engine/platforms"
	"github.com/adsmood/ctv-vast-engine/util/randomutil"
	"github.com/adsmood/ctv-vast-engine/util/timeutil"
	"github.com/adsmood/ctv-vast-engine/vast"
)

// Router is the main request router of the ad server.
type Router struct {
	*httprouter.Router
}

// New wires the export pipeline and registers the HTTP surface. The platform
// registry and creative store are loaded once here; exports themselves are
// stateless, so the router carries no per-request state.
func New(cfg *config.Configuration, revision string, metricsEngine metrics.Engine) (*Router, error) {
	fetcher, err := creative.NewFileFetcher(cfg.Creatives.Directory)
	if err != nil {
		glog.Errorf("Failed to load creatives from %s: %v", cfg.Creatives.Directory, err)
		return nil, err
	}

	registry := platforms.NewRegistry()
	if cfg.Platforms.SpecDirectory != "" {
		registry, err = platforms.NewRegistryFromDir(cfg.Platforms.SpecDirectory)
		if err != nil {
			glog.Errorf("Failed to load platform specs from %s: %v", cfg.Platforms.SpecDirectory, err)
			return nil, err
		}
	}
	glog.Infof("Serving %d platforms: %v", len(registry.IDs()), registry.IDs())

	builder := vast.NewBuilder(timeutil.RealTime{}, randomutil.RandomNumberGenerator{})
	vastEndpoint := endpoints.NewVastEndpoint(cfg, fetcher, registry, builder, metricsEngine)

	r := &Router{Router: httprouter.New()}
	r.GET("/vast/:id", vastEndpoint.Handle)
	r.GET("/vast/:id/preview", vastEndpoint.HandlePreview)
	r.GET("/vast/:id/validate", vastEndpoint.HandleValidate)
	r.HandlerFunc(http.MethodGet, "/status", endpoints.NewStatusEndpoint())
	r.HandlerFunc(http.MethodGet, "/version", endpoints.NewVersionEndpoint(revision))

	return r, nil
}

// Admin returns the handler served on the admin port.
func Admin(revision string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/version", endpoints.NewVersionEndpoint(revision))
	mux.HandleFunc("/status", endpoints.NewStatusEndpoint())
	return mux
}

// SupportCORS wraps handler with the CORS policy the editor UI needs to fetch
// previews from another origin.
func SupportCORS(handler http.Handler, cfg config.CORS) http.Handler {
	if !cfg.Enabled {
		return handler
	}

	options := cors.Options{
		AllowCredentials: true,
		AllowedHeaders:   []string{"Origin", "X-Requested-With", "Content-Type", "Accept"},
	}
	if len(cfg.AllowedOrigins) == 0 || cfg.AllowedOrigins[0] == "*" {
		// A literal "*" cannot be combined with credentials, so reflect the
		// request origin instead.
		options.AllowOriginFunc = func(string) bool { return true }
	} else {
		options.AllowedOrigins = cfg.AllowedOrigins
	}
	return cors.New(options).Handler(handler)
}
