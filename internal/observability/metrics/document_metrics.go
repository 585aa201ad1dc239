package metrics

import (
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DocumentMetrics counts template saves and document renders across the
// billing, operations and planner print surfaces.
type DocumentMetrics struct {
	templateSaves     *prometheus.CounterVec
	documentsRendered *prometheus.CounterVec
	renderDuration    *prometheus.HistogramVec
}

var (
	documentMetricsOnce sync.Once
	documentMetrics     *DocumentMetrics
)

func Document() *DocumentMetrics {
	return DocumentWithConfig(Config{})
}

func DocumentWithConfig(cfg Config) *DocumentMetrics {
	documentMetricsOnce.Do(func() {
		documentMetrics = newDocumentMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return documentMetrics
}

func ResetDocumentMetricsForTest() {
	documentMetricsOnce = sync.Once{}
	documentMetrics = nil
}

func newDocumentMetrics(registerer prometheus.Registerer, cfg Config) *DocumentMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "driveflow"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "development"
	}
	constLabels := prometheus.Labels{
		"service":     serviceName,
		"environment": environment,
	}

	m := &DocumentMetrics{
		templateSaves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "driveflow_template_saves_total",
			Help:        "Template upserts, by category.",
			ConstLabels: constLabels,
		}, []string{"category"}),
		documentsRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "driveflow_documents_rendered_total",
			Help:        "Documents rendered for print, by category and call site.",
			ConstLabels: constLabels,
		}, []string{"category", "surface"}),
		renderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "driveflow_document_render_duration_seconds",
			Help:        "Time spent producing a printable document.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"category"}),
	}

	for _, collector := range []prometheus.Collector{m.templateSaves, m.documentsRendered, m.renderDuration} {
		if err := registerer.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				panic(err)
			}
		}
	}
	return m
}

func (m *DocumentMetrics) ObserveTemplateSave(category string) {
	if m == nil {
		return
	}
	m.templateSaves.WithLabelValues(category).Inc()
}

func (m *DocumentMetrics) ObserveRender(category, surface string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.documentsRendered.WithLabelValues(category, surface).Inc()
	m.renderDuration.WithLabelValues(category).Observe(elapsed.Seconds())
}
