// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package distribution

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Averager tracks a running average of an observed quantity,
// mirroring the teacher corpus's metrics.Averager. Adapted down to
// this package's single use (circulation fan-out): registration
// failures are swallowed the same way NewMetrics treats them, rather
// than threaded through a wrappers.Errs collector.
type Averager interface {
	Observe(value float64)
	Read() float64
}

type averager struct {
	mu    sync.RWMutex
	sum   float64
	count float64

	promCount prometheus.Counter
	promSum   prometheus.Gauge
}

// newAverager returns an Averager. If reg is nil or registration
// fails, it still tracks the average locally; only the prometheus
// export is best-effort.
func newAverager(name, help string, reg prometheus.Registerer) Averager {
	a := &averager{
		promCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: name + "_count",
			Help: "Total number of observations of " + help,
		}),
		promSum: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: name + "_sum",
			Help: "Sum of " + help,
		}),
	}
	if reg != nil {
		_ = reg.Register(a.promCount)
		_ = reg.Register(a.promSum)
	}
	return a
}

func (a *averager) Observe(value float64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.sum += value
	a.count++
	a.promCount.Inc()
	a.promSum.Add(value)
}

func (a *averager) Read() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.count == 0 {
		return 0
	}
	return a.sum / a.count
}
