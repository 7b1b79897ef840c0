package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	tradeline = "tradeline"

	calculationsTotal = "calculations_total"
	sharesTotal       = "shares_total"
	exportsTotal      = "exports_total"
	rateLimitedTotal  = "rate_limited_total"

	// Labels
	outcomeLabel = "outcome"
	channelLabel = "channel"
	formatLabel  = "format"
)

/**
* Metrics definition
**/
var calculationsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: tradeline,
		Name:      calculationsTotal,
		Help:      "number of calculation requests by outcome (computed or awaiting_input)",
	},
	[]string{outcomeLabel},
)

var sharesTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: tradeline,
		Name:      sharesTotal,
		Help:      "number of shared results by delivery channel",
	},
	[]string{channelLabel},
)

var exportsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: tradeline,
		Name:      exportsTotal,
		Help:      "number of exported results by file format",
	},
	[]string{formatLabel},
)

var rateLimitedTotalMetric = prometheus.NewCounter(
	prometheus.CounterOpts{
		Subsystem: tradeline,
		Name:      rateLimitedTotal,
		Help:      "number of requests rejected by the rate limiter",
	},
)

func IncreaseCalculationsTotalMetric(outcome string) {
	calculationsTotalMetric.With(prometheus.Labels{outcomeLabel: outcome}).Inc()
}

func IncreaseSharesTotalMetric(channel string) {
	sharesTotalMetric.With(prometheus.Labels{channelLabel: channel}).Inc()
}

func IncreaseExportsTotalMetric(format string) {
	exportsTotalMetric.With(prometheus.Labels{formatLabel: format}).Inc()
}

func IncreaseRateLimitedTotalMetric() {
	rateLimitedTotalMetric.Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(calculationsTotalMetric)
	prometheus.MustRegister(sharesTotalMetric)
	prometheus.MustRegister(exportsTotalMetric)
	prometheus.MustRegister(rateLimitedTotalMetric)
}
