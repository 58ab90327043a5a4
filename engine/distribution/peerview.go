// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package distribution

import "context"

// handlePeerViewChange implements SPEC_FULL.md §4.4: unify the peer
// with its new view, record the view, then drop the peer from every
// block it has now finalized past.
func (e *Engine) handlePeerViewChange(ctx context.Context, peer PeerID, view PeerView) {
	e.unifyWithPeer(ctx, peer, view)

	e.state.peerViews[peer] = view

	for _, h := range e.state.hashesUpTo(view.FinalizedNumber) {
		if entry, ok := e.state.blocks[h]; ok {
			delete(entry.KnownBy, peer)
		}
	}
}
