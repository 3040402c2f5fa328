package server

import (
	"net/http"
	"time"

	"github.com/forgo/skirmish/api/internal/handler"
	"github.com/forgo/skirmish/api/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config holds everything the route table needs
type Config struct {
	FieldMaps handler.FieldMapService
	Players   handler.PlayerService
	Games     handler.GameService
	DB        handler.Pinger

	// AllowedOrigins may call the console routes. Device routes accept any origin.
	AllowedOrigins []string

	// Metrics enables request instrumentation and GET /metrics when non-nil.
	Metrics *middleware.Metrics

	// Now is the clock used for derived fields. Defaults to time.Now.
	Now func() time.Time
}

// New builds the API handler: console routes behind the configured CORS
// policy, device routes behind the open policy, and the global middleware
// chain around both.
func New(cfg Config) http.Handler {
	games := handler.NewGameHandler(cfg.Games)

	console := http.NewServeMux()
	handler.NewHealthHandler(cfg.DB).RegisterRoutes(console)
	handler.NewFieldMapHandler(cfg.FieldMaps).RegisterRoutes(console)
	handler.NewPlayerHandler(handler.PlayerHandlerConfig{
		Service: cfg.Players,
		Now:     cfg.Now,
	}).RegisterRoutes(console)
	games.RegisterRoutes(console)

	devices := http.NewServeMux()
	games.RegisterDeviceRoutes(devices)

	root := http.NewServeMux()
	root.Handle("/games/search", middleware.OpenCORS()(devices))
	root.Handle("/", middleware.CORS(cfg.AllowedOrigins)(console))

	chain := []middleware.Middleware{
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
	}
	if cfg.Metrics != nil {
		root.Handle("GET /metrics", promhttp.HandlerFor(cfg.Metrics.Registry(), promhttp.HandlerOpts{}))
		chain = append(chain, cfg.Metrics.Instrument)
	}
	chain = append(chain, middleware.Compress)

	return middleware.Chain(root, chain...)
}

// NewHTTPServer wraps h in an http.Server with the given timeouts
func NewHTTPServer(addr string, h http.Handler, readTimeout, writeTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       120 * time.Second,
	}
}
