// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package distribution

import "github.com/prometheus/client_golang/prometheus"

// Metrics are a no-op-by-default placeholder in the source system,
// which only specifies that implementers "should provide hooks" with
// unspecified behavior (SPEC_FULL.md, Ambient Stack). We follow the
// teacher corpus's metrics.go convention: a small set of
// prometheus.Registerer-backed counters that are safe to use
// unregistered.
type Metrics struct {
	assignmentsCirculated prometheus.Counter
	approvalsCirculated   prometheus.Counter
	reputationChanges     prometheus.Counter
	blocksPruned          prometheus.Counter

	// circulationFanout observes, for every circulation send issued by
	// the assignment and approval import paths, how many peers it
	// reached. Sends made during unification are not observed.
	circulationFanout Averager
}

// NewMetrics builds a Metrics recorder. If reg is nil, or a collector
// fails to register (e.g. a duplicate name in a shared registry), the
// metric silently falls back to an unregistered counter rather than
// returning an error — metrics are a hook here, never a requirement.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		assignmentsCirculated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "approval_distribution_assignments_circulated_total",
			Help: "Number of (peer, assignment) circulations sent.",
		}),
		approvalsCirculated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "approval_distribution_approvals_circulated_total",
			Help: "Number of (peer, approval) circulations sent.",
		}),
		reputationChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "approval_distribution_reputation_changes_total",
			Help: "Number of ReportPeer calls emitted.",
		}),
		blocksPruned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "approval_distribution_blocks_pruned_total",
			Help: "Number of BlockEntrys removed by finalization.",
		}),
		circulationFanout: newAverager("approval_distribution_circulation_fanout", "peers reached per circulation send", reg),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{m.assignmentsCirculated, m.approvalsCirculated, m.reputationChanges, m.blocksPruned} {
			_ = reg.Register(c) // best-effort; see doc comment above
		}
	}
	return m
}
