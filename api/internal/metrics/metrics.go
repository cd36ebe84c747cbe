package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// APICallCounter counts calls to the inference service.
	APICallCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "aqua_api_calls_total",
		Help: "Inference service calls",
	}, []string{"api", "status"})

	APIResponseTime = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "aqua_api_response_time_seconds",
		Help:    "Inference service response time in seconds",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
	}, []string{"api"})

	// FlowOutcomes counts finished orchestrator runs by flow and phase.
	FlowOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "aqua_flow_outcomes_total",
		Help: "Finished requests per flow and outcome",
	}, []string{"flow", "outcome"})

	VoiceOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "aqua_voice_outcomes_total",
		Help: "Read-aloud attempts by outcome",
	}, []string{"outcome"})

	UpdatesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "aqua_telegram_updates_total",
		Help: "Telegram updates handled by kind",
	}, []string{"kind"})
)

var once sync.Once

// Init registers all collectors with the default registry. Safe to call
// more than once.
func Init() {
	once.Do(func() {
		prometheus.MustRegister(APICallCounter)
		prometheus.MustRegister(APIResponseTime)
		prometheus.MustRegister(FlowOutcomes)
		prometheus.MustRegister(VoiceOutcomes)
		prometheus.MustRegister(UpdatesTotal)
	})
}

// RecordAPICall records one outbound call. Status 0 means the request never
// got a response.
func RecordAPICall(api string, statusCode int, seconds float64) {
	status := "success"
	if statusCode < 200 || statusCode >= 400 {
		status = "error"
	}
	APICallCounter.WithLabelValues(api, status).Inc()
	APIResponseTime.WithLabelValues(api).Observe(seconds)
}

func RecordFlow(flow, outcome string) {
	FlowOutcomes.WithLabelValues(flow, outcome).Inc()
}

func RecordVoice(outcome string) {
	VoiceOutcomes.WithLabelValues(outcome).Inc()
}

func RecordUpdate(kind string) {
	UpdatesTotal.WithLabelValues(kind).Inc()
}
