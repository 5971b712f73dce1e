package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	PositionFixesTotal       metric.Int64Counter
	StaleFixesDroppedTotal   metric.Int64Counter
	ProximityAlertsTotal     metric.Int64Counter
	CatalogFallbacksTotal    metric.Int64Counter
	CatalogRecordsDropped    metric.Int64Counter
	ModelInvocationSeconds   metric.Float64Histogram
	ModelInvocationErrors    metric.Int64Counter
	ToolDispatchesTotal      metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metric instruments exactly once,
// using the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("tourguide")
		var err error
		m := &AppMetrics{}

		m.PositionFixesTotal, err = meter.Int64Counter(
			"position_fixes_total",
			metric.WithDescription("Total number of accepted position fixes"),
			metric.WithUnit("{fix}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create position_fixes_total: %v", err)
		}

		m.StaleFixesDroppedTotal, err = meter.Int64Counter(
			"stale_fixes_dropped_total",
			metric.WithDescription("Position fixes discarded for arriving out of order"),
			metric.WithUnit("{fix}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create stale_fixes_dropped_total: %v", err)
		}

		m.ProximityAlertsTotal, err = meter.Int64Counter(
			"proximity_alerts_total",
			metric.WithDescription("Total number of proximity alerts fired"),
			metric.WithUnit("{alert}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create proximity_alerts_total: %v", err)
		}

		m.CatalogFallbacksTotal, err = meter.Int64Counter(
			"catalog_fallbacks_total",
			metric.WithDescription("Catalog refreshes served from the static fallback dataset"),
			metric.WithUnit("{refresh}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create catalog_fallbacks_total: %v", err)
		}

		m.CatalogRecordsDropped, err = meter.Int64Counter(
			"catalog_records_dropped_total",
			metric.WithDescription("Raw attraction records rejected at ingestion"),
			metric.WithUnit("{record}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create catalog_records_dropped_total: %v", err)
		}

		m.ModelInvocationSeconds, err = meter.Float64Histogram(
			"model_invocation_duration_seconds",
			metric.WithDescription("Duration of language model invocations in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create model_invocation_duration_seconds: %v", err)
		}

		m.ModelInvocationErrors, err = meter.Int64Counter(
			"model_invocation_errors_total",
			metric.WithDescription("Total number of failed language model invocations"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create model_invocation_errors_total: %v", err)
		}

		m.ToolDispatchesTotal, err = meter.Int64Counter(
			"tool_dispatches_total",
			metric.WithDescription("Total number of model tool invocations dispatched"),
			metric.WithUnit("{dispatch}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create tool_dispatches_total: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}
