// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package distribution

import (
	"context"

	"github.com/luxfi/log"
	"github.com/luxfi/math/set"
)

// handleNewBlocks implements SPEC_FULL.md §4.2. Only Hash and Number
// are read from each meta; candidates are never pre-filled (see
// SPEC_FULL.md, Supplemented Behavior #1).
func (e *Engine) handleNewBlocks(ctx context.Context, metas []BlockMeta) {
	added := set.Set[BlockHash]{}

	for _, meta := range metas {
		if _, tracked := e.state.blocks[meta.Hash]; tracked {
			continue
		}

		header, ok := e.chainAPI.BlockHeader(ctx, meta.Hash)
		if !ok {
			e.log.Debug("chain API unresponsive or header missing, skipping block meta", log.Stringer("hash", meta.Hash))
			continue
		}

		e.state.trackBlock(meta.Hash, meta.Number, header.ParentHash)
		added.Add(meta.Hash)
	}

	if added.Len() == 0 {
		return
	}

	for peer, view := range e.state.peerViews {
		intersection := set.Set[BlockHash]{}
		for h := range view.Heads {
			if added.Contains(h) {
				intersection.Add(h)
			}
		}
		if intersection.Len() == 0 {
			continue
		}
		e.unifyWithPeer(ctx, peer, PeerView{Heads: intersection, FinalizedNumber: view.FinalizedNumber})
	}
}
