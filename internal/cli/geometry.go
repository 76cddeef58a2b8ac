package cli

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/piwi3910/SeatPlan/internal/config"
	"github.com/piwi3910/SeatPlan/internal/flatten"
	"github.com/piwi3910/SeatPlan/internal/geomcache"
	"github.com/piwi3910/SeatPlan/internal/source"
)

// pushJob is the Pushgateway job name for seatplan runs.
const pushJob = "seatplan"

// geometry bundles the drawing cache of one command run with the registry
// its metrics are recorded in.
type geometry struct {
	cache    *geomcache.Cache
	registry *prometheus.Registry
	cfg      *config.Config
}

// newGeometry wires the source router, the flatten pipeline and cache
// metrics from cfg. opts may adjust the flatten options before use.
func newGeometry(ctx context.Context, cfg *config.Config, opts ...func(*flatten.Options)) (*geometry, error) {
	logger := loggerFromContext(ctx)

	router := source.NewRouter(cfg.DrawingRoot, source.NewHTTPFetcher(cfg.HTTPTimeout, cfg.HTTPRetries))
	if cfg.HasObjectStore() {
		store, err := source.NewObjectStoreFetcher(cfg.ObjectStore())
		if err != nil {
			return nil, err
		}
		router.Register("s3", store)
	}

	fo := cfg.FlattenOptions(logger)
	for _, o := range opts {
		o(&fo)
	}

	reg := prometheus.NewRegistry()
	metrics := geomcache.NewMetrics()
	if err := metrics.Register(reg); err != nil {
		return nil, fmt.Errorf("register cache metrics: %w", err)
	}

	cache := geomcache.New(geomcache.Pipeline(router, fo),
		geomcache.WithMetrics(metrics),
		geomcache.WithLogger(logger),
	)
	return &geometry{cache: cache, registry: reg, cfg: cfg}, nil
}

// push sends the run's metrics to the configured Pushgateway. Failures
// are logged, never returned.
func (g *geometry) push(ctx context.Context) {
	if g.cfg.PushgatewayURL == "" {
		return
	}
	logger := loggerFromContext(ctx)
	if err := push.New(g.cfg.PushgatewayURL, pushJob).Gatherer(g.registry).PushContext(ctx); err != nil {
		logger.Warn("could not push metrics", "url", g.cfg.PushgatewayURL, "err", err)
		return
	}
	logger.Debug("metrics pushed", "url", g.cfg.PushgatewayURL)
}
