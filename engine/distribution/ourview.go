// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package distribution

import "github.com/luxfi/log"

// handleOurViewChange implements SPEC_FULL.md §4.3. No per-peer
// cleanup is needed here — pruned BlockEntrys take their KnownBy maps
// with them.
func (e *Engine) handleOurViewChange(view PeerView) {
	removed := e.state.pruneFinalized(view.FinalizedNumber)
	if len(removed) > 0 {
		e.log.Debug("pruned finalized blocks", log.Uint64("finalizedNumber", uint64(view.FinalizedNumber)), log.Int("count", len(removed)))
		e.metrics.blocksPruned.Add(float64(len(removed)))
	}
}
