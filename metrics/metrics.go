package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "congestion"

// Recorder owns a private prometheus registry. A nil *Recorder records nothing.
type Recorder struct {
	registry        *prometheus.Registry
	httpRequests    *prometheus.CounterVec
	httpLatency     *prometheus.HistogramVec
	upstreamCalls   *prometheus.CounterVec
	upstreamLatency *prometheus.HistogramVec
	eventFactsCache *prometheus.CounterVec
	timelineGroups  prometheus.Histogram
	surveyRefreshes *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		upstreamCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_calls_total",
			Help:      "Calls to upstream services by outcome.",
		}, []string{"upstream", "outcome"}),
		upstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_call_duration_seconds",
			Help:      "Upstream call latency.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"upstream"}),
		eventFactsCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_facts_cache_total",
			Help:      "Event fact cache lookups by result.",
		}, []string{"result"}),
		timelineGroups: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "timeline_groups",
			Help:      "Number of timeline groups per computed timeline.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13},
		}),
		surveyRefreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "survey_refreshes_total",
			Help:      "Ridership survey reloads by outcome.",
		}, []string{"outcome"}),
	}
	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.httpRequests,
		r.httpLatency,
		r.upstreamCalls,
		r.upstreamLatency,
		r.eventFactsCache,
		r.timelineGroups,
		r.surveyRefreshes,
	)
	return r
}

// Handler exposes the registry in the prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Recorder) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	r.httpLatency.WithLabelValues(route).Observe(duration.Seconds())
}

func (r *Recorder) RecordUpstreamCall(upstream string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.upstreamCalls.WithLabelValues(upstream, outcome(err)).Inc()
	r.upstreamLatency.WithLabelValues(upstream).Observe(duration.Seconds())
}

func (r *Recorder) RecordEventFactsCache(hit bool) {
	if r == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	r.eventFactsCache.WithLabelValues(result).Inc()
}

func (r *Recorder) RecordTimeline(groups int) {
	if r == nil {
		return
	}
	r.timelineGroups.Observe(float64(groups))
}

func (r *Recorder) RecordSurveyRefresh(err error) {
	if r == nil {
		return
	}
	r.surveyRefreshes.WithLabelValues(outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
