package app

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics tracks how often the stores churn during a session.
type Metrics struct {
	configReloads  atomic.Uint64
	profileReloads atomic.Uint64
	labelReloads   atomic.Uint64
	watchEvents    atomic.Uint64
	modelUpdates   atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{
		startTime: time.Now(),
	}
}

// RecordConfigReload records a settings file reload.
func (m *Metrics) RecordConfigReload() {
	m.configReloads.Add(1)
}

// RecordProfileReload records a profiles directory reload.
func (m *Metrics) RecordProfileReload() {
	m.profileReloads.Add(1)
}

// RecordLabelReload records a label override reload.
func (m *Metrics) RecordLabelReload() {
	m.labelReloads.Add(1)
}

// RecordWatchEvent records a file watcher delivery.
func (m *Metrics) RecordWatchEvent() {
	m.watchEvents.Add(1)
}

// RecordModelUpdate records a presentation model change.
func (m *Metrics) RecordModelUpdate() {
	m.modelUpdates.Add(1)
}

// Snapshot returns a point-in-time view of the metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Uptime:         time.Since(m.startTime),
		ConfigReloads:  m.configReloads.Load(),
		ProfileReloads: m.profileReloads.Load(),
		LabelReloads:   m.labelReloads.Load(),
		WatchEvents:    m.watchEvents.Load(),
		ModelUpdates:   m.modelUpdates.Load(),
	}
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.configReloads.Store(0)
	m.profileReloads.Store(0)
	m.labelReloads.Store(0)
	m.watchEvents.Store(0)
	m.modelUpdates.Store(0)
	m.startTime = time.Now()
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime         time.Duration
	ConfigReloads  uint64
	ProfileReloads uint64
	LabelReloads   uint64
	WatchEvents    uint64
	ModelUpdates   uint64
}

// appMetrics is the application-wide metrics instance.
var (
	appMetrics     *Metrics
	appMetricsOnce sync.Once
)

// GetMetrics returns the application metrics.
func GetMetrics() *Metrics {
	appMetricsOnce.Do(func() {
		if appMetrics == nil {
			appMetrics = NewMetrics()
		}
	})
	return appMetrics
}

// SetMetrics sets the application-wide metrics.
func SetMetrics(m *Metrics) {
	appMetrics = m
}
