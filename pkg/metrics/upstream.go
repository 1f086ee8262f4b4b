package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Upstream names used as metric labels.
const (
	UpstreamNews = "news"
	UpstreamLLM  = "llm"
)

// Digest outcomes used as metric labels.
const (
	DigestSummarized = "summarized"
	DigestEmpty      = "empty"
	DigestFailed     = "failed"
)

var (
	upstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsdigest_upstream_requests_total",
			Help: "Outbound calls to the news provider and the LLM, by outcome.",
		},
		[]string{"upstream", "outcome"},
	)

	upstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "newsdigest_upstream_request_duration_seconds",
			Help:    "Latency of outbound calls in seconds.",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"upstream"},
	)

	promptTokens = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "newsdigest_prompt_tokens",
			Help:    "Token count of composed summarization prompts.",
			Buckets: prometheus.ExponentialBuckets(64, 2, 10),
		},
	)

	digestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsdigest_digests_total",
			Help: "Summarize operations by result.",
		},
		[]string{"result"},
	)
)

// ObserveUpstream records one outbound call.
func ObserveUpstream(upstream string, err error, elapsed time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	upstreamRequestsTotal.WithLabelValues(upstream, outcome).Inc()
	upstreamRequestDuration.WithLabelValues(upstream).Observe(elapsed.Seconds())
}

// ObservePromptTokens records the size of a composed prompt.
func ObservePromptTokens(n int) {
	promptTokens.Observe(float64(n))
}

// RecordDigest counts a finished summarize operation.
func RecordDigest(result string) {
	digestsTotal.WithLabelValues(result).Inc()
}
