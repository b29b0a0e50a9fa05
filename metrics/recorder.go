package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"relay/logging"
)

var log *logrus.Logger

func init() {
	log = logging.GetLogger()
}

// Outcome labels a finished generation call.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeEmpty   Outcome = "empty"
	OutcomeError   Outcome = "error"
)

// ModelMetrics holds the running counts for a model.
type ModelMetrics struct {
	Model       string
	Processing  int
	Served      int
	Failed      int
	LastLogTime time.Time
	changed     bool
	mu          sync.Mutex
}

// Recorder tracks generation calls for one model in prometheus and logs the
// counts whenever they change.
type Recorder struct {
	model    string
	requests *prometheus.CounterVec
	inFlight *prometheus.GaugeVec
	duration *prometheus.HistogramVec

	metrics      *ModelMetrics
	logRateLimit time.Duration
	closed       chan struct{}
	closeOnce    sync.Once
}

// NewRecorder registers the relay collectors on reg and starts the log monitor.
func NewRecorder(reg prometheus.Registerer, model string) *Recorder {
	r := newRecorder(reg, model)
	go r.monitor()
	return r
}

func newRecorder(reg prometheus.Registerer, model string) *Recorder {
	r := &Recorder{
		model: model,
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relay_generate_requests_total",
				Help: "Number of generation calls by outcome",
			},
			[]string{"model", "outcome"},
		),
		inFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "relay_generate_in_flight",
				Help: "Generation calls currently waiting on the model",
			},
			[]string{"model"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "relay_generate_duration_seconds",
				Help:    "Generation call duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"model"},
		),
		metrics:      &ModelMetrics{Model: model},
		logRateLimit: time.Second,
		closed:       make(chan struct{}),
	}
	reg.MustRegister(r.requests, r.inFlight, r.duration)
	return r
}

// Start marks a generation call as in flight. The returned func must be called
// exactly once with the call's outcome.
func (r *Recorder) Start() func(Outcome) {
	start := time.Now()
	r.inFlight.WithLabelValues(r.model).Inc()
	r.metrics.incrementProcessing()

	return func(outcome Outcome) {
		r.inFlight.WithLabelValues(r.model).Dec()
		r.duration.WithLabelValues(r.model).Observe(time.Since(start).Seconds())
		r.requests.WithLabelValues(r.model, string(outcome)).Inc()
		r.metrics.finish(outcome)
	}
}

// Snapshot returns the current processing, served and failed counts.
func (r *Recorder) Snapshot() (processing, served, failed int) {
	r.metrics.mu.Lock()
	defer r.metrics.mu.Unlock()
	return r.metrics.Processing, r.metrics.Served, r.metrics.Failed
}

// Shutdown stops the log monitor.
func (r *Recorder) Shutdown() {
	r.closeOnce.Do(func() { close(r.closed) })
}

// monitor checks twice a second whether the counts need logging.
func (r *Recorder) monitor() {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-r.closed:
			return
		case now := <-ticker.C:
			r.logIfChanged(now)
		}
	}
}

// logIfChanged logs the counts if they changed and the rate limit allows it.
func (r *Recorder) logIfChanged(now time.Time) bool {
	m := r.metrics
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.changed || now.Sub(m.LastLogTime) < r.logRateLimit {
		return false
	}
	log.Infof("Model: %s | Processing: %d | Served: %d | Failed: %d",
		m.Model, m.Processing, m.Served, m.Failed)
	m.LastLogTime = now
	m.changed = false
	return true
}

func (m *ModelMetrics) incrementProcessing() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Processing++
	m.changed = true
}

func (m *ModelMetrics) finish(outcome Outcome) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Processing > 0 {
		m.Processing--
	}
	if outcome == OutcomeError {
		m.Failed++
	} else {
		m.Served++
	}
	m.changed = true
}
