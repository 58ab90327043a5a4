// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package distribution

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAveragerReadsZeroBeforeAnyObservation(t *testing.T) {
	a := newAverager("test_metric", "test values", nil)
	require.Equal(t, float64(0), a.Read())
}

func TestAveragerTracksRunningMean(t *testing.T) {
	require := require.New(t)

	a := newAverager("test_metric_2", "test values", nil)
	a.Observe(2)
	a.Observe(4)
	a.Observe(9)

	require.InDelta(5.0, a.Read(), 1e-9)
}
