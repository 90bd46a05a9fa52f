package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Speech ingest metrics
var (
	// SpeechEventsTotal tracks recognizer events by kind (final/interim)
	SpeechEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "speech_events_total",
			Help: "Total recognizer events by kind",
		},
		[]string{"kind"},
	)

	// RecognizerReconnectsTotal tracks recognizer stream reconnect attempts
	RecognizerReconnectsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recognizer_reconnects_total",
			Help: "Total recognizer stream reconnect attempts",
		},
	)
)

// Translation metrics
var (
	// TranslationRequestsTotal tracks translation requests by target language and status
	TranslationRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "translation_requests_total",
			Help: "Total translation requests by target language and status",
		},
		[]string{"target", "status"},
	)

	// TranslationRequestDuration tracks translation request latency in seconds
	TranslationRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "translation_request_duration_seconds",
			Help:    "Translation request duration in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"target"},
	)

	// TranslationBatchesTotal tracks dispatched translation batches
	TranslationBatchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "translation_batches_total",
			Help: "Total translation batches dispatched after debounce",
		},
	)

	// DebounceRestartsTotal tracks debounce windows restarted by a newer text update
	DebounceRestartsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "translation_debounce_restarts_total",
			Help: "Total debounce windows restarted before firing",
		},
	)
)

// Particle metrics
var (
	// ParticlesActive tracks the current number of live overlay particles
	ParticlesActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "particles_active",
			Help: "Current number of live overlay particles",
		},
	)

	// ParticlesSpawnedTotal tracks spawned particles by kind
	ParticlesSpawnedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "particles_spawned_total",
			Help: "Total particles spawned by kind",
		},
		[]string{"kind"},
	)

	// ParticlesEvictedTotal tracks particles removed early because the pool was full
	ParticlesEvictedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "particles_evicted_total",
			Help: "Total particles evicted because the pool cap was reached",
		},
	)
)

// Overlay metrics
var (
	// OverlayClients tracks currently connected overlay websocket clients
	OverlayClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "overlay_clients",
			Help: "Currently connected overlay websocket clients",
		},
	)

	// OverlayMessagesTotal tracks render commands broadcast to the overlay
	OverlayMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "overlay_messages_total",
			Help: "Total render commands broadcast to the overlay by type",
		},
		[]string{"type"},
	)
)
