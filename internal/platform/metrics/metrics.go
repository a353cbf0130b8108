package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Maron09/Product-Store/internal/platform/logger"
)

// Manager holds the custom Prometheus metrics for the store.
type Manager struct {
	Registry *prometheus.Registry

	RegistrationsTotal   prometheus.Counter
	VerificationsTotal   prometheus.Counter
	LoginsTotal          prometheus.Counter
	ProductsCreatedTotal prometheus.Counter
	HTTPErrorsTotal      *prometheus.CounterVec
	HTTPRequestLatency   *prometheus.HistogramVec
}

func NewManager(namespace string) *Manager {
	registry := prometheus.NewRegistry()

	registrationsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered.",
	})
	verificationsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "verifications_total",
		Help:      "Total number of accounts verified by OTP.",
	})
	loginsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of successful logins.",
	})
	productsCreatedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_created_total",
		Help:      "Total number of products created.",
	})
	httpErrorsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_errors_total",
		Help:      "Total number of HTTP error responses by route and status.",
	}, []string{"route", "status"})
	httpRequestLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_latency_seconds",
		Help:      "Latency of HTTP requests by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	registry.MustRegister(
		registrationsTotal,
		verificationsTotal,
		loginsTotal,
		productsCreatedTotal,
		httpErrorsTotal,
		httpRequestLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Manager{
		Registry:             registry,
		RegistrationsTotal:   registrationsTotal,
		VerificationsTotal:   verificationsTotal,
		LoginsTotal:          loginsTotal,
		ProductsCreatedTotal: productsCreatedTotal,
		HTTPErrorsTotal:      httpErrorsTotal,
		HTTPRequestLatency:   httpRequestLatency,
	}
}

// StartServer exposes the registry on :port/metrics. Blocks until the
// server stops.
func StartServer(port string, log logger.Logger, registry *prometheus.Registry) error {
	if port == "" {
		log.Info("metrics server port not configured, skipping")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	log.Infof("metrics server listening on :%s", port)
	server := &http.Server{Addr: ":" + port, Handler: mux}
	return server.ListenAndServe()
}
