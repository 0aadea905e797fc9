package metrics

import (
	"net/http"

	"github.com/Dexuser/property-service/internal/platform/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MetricsManager holds the service's Prometheus metrics.
type MetricsManager struct {
	Registry               *prometheus.Registry
	PropertiesCreatedTotal prometheus.Counter
	PropertyEditsTotal     prometheus.Counter
	PropertyDeletesTotal   prometheus.Counter
	PropertySearchesTotal  prometheus.Counter
	CatalogCascadesTotal   prometheus.Counter
	APIErrorsTotal         *prometheus.CounterVec
	APIRequestLatency      *prometheus.HistogramVec
}

// NewMetricsManager initializes and registers the service metrics on a
// dedicated registry.
func NewMetricsManager(serviceName string) *MetricsManager {
	registry := prometheus.NewRegistry()

	propertiesCreatedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "properties_created_total",
		Help:      "Total number of properties created.",
	})
	propertyEditsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "property_edits_total",
		Help:      "Total number of properties edited.",
	})
	propertyDeletesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "property_deletes_total",
		Help:      "Total number of properties deleted.",
	})
	propertySearchesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "property_searches_total",
		Help:      "Total number of filtered search requests served.",
	})
	catalogCascadesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "catalog_cascade_deletes_total",
		Help:      "Total number of catalog deletions that cascaded to dependent properties.",
	})
	apiErrorsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "api_errors_total",
		Help:      "Total number of API errors by operation.",
	}, []string{"operation", "error_type"})
	apiRequestLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: serviceName,
		Name:      "api_request_latency_seconds",
		Help:      "Latency of API requests by operation.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	registry.MustRegister(
		propertiesCreatedTotal,
		propertyEditsTotal,
		propertyDeletesTotal,
		propertySearchesTotal,
		catalogCascadesTotal,
		apiErrorsTotal,
		apiRequestLatency,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	return &MetricsManager{
		Registry:               registry,
		PropertiesCreatedTotal: propertiesCreatedTotal,
		PropertyEditsTotal:     propertyEditsTotal,
		PropertyDeletesTotal:   propertyDeletesTotal,
		PropertySearchesTotal:  propertySearchesTotal,
		CatalogCascadesTotal:   catalogCascadesTotal,
		APIErrorsTotal:         apiErrorsTotal,
		APIRequestLatency:      apiRequestLatency,
	}
}

// StartMetricsServer starts an HTTP server exposing /metrics. A blank port
// disables the server.
func StartMetricsServer(port string, appLogger *logger.Logger, registry *prometheus.Registry) error {
	if port == "" {
		appLogger.Info("Prometheus metrics server port not configured, server will not start.")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	appLogger.Info("Prometheus metrics server starting", zap.String("port", port), zap.String("path", "/metrics"))

	server := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}
	return server.ListenAndServe()
}
