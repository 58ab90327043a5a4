// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package distribution

import (
	"context"
	"testing"

	"github.com/luxfi/ids"
	"github.com/luxfi/math/set"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/approval-distribution/engine/distribution/distributiontest"
)

// TestHandlePeerViewChangeClearsKnownByBelowFinalized covers
// SPEC_FULL.md's resolution of Open Question 3: known_by is only
// cleared for blocks at or below the peer's newly reported finalized
// number, never beyond it.
func TestHandlePeerViewChangeClearsKnownByBelowFinalized(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	e := New(Config{
		ApprovalVoting: &distributiontest.ApprovalVoting{},
		ChainAPI:       &distributiontest.ChainAPI{},
		NetworkBridge:  &distributiontest.NetworkBridge{},
	})

	p1 := ids.GenerateTestNodeID()
	low, high := ids.GenerateTestID(), ids.GenerateTestID()
	e.state.trackBlock(low, 1, ids.ID{})
	e.state.trackBlock(high, 2, ids.ID{})
	e.state.blocks[low].KnownBy[p1] = set.Set[Fingerprint]{}
	e.state.blocks[high].KnownBy[p1] = set.Set[Fingerprint]{}

	e.handlePeerViewChange(ctx, p1, PeerView{FinalizedNumber: 1})

	_, lowKnown := e.state.blocks[low].KnownBy[p1]
	_, highKnown := e.state.blocks[high].KnownBy[p1]
	require.False(lowKnown, "block at or below the new finalized number must be cleared")
	require.True(highKnown, "block above the new finalized number must be left alone")

	require.Equal(PeerView{FinalizedNumber: 1}, e.state.peerViews[p1])
}
