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

func TestHandleNewBlocksSkipsAlreadyTracked(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	chain := &distributiontest.ChainAPI{T: t}
	network := &distributiontest.NetworkBridge{}
	e := New(Config{ApprovalVoting: &distributiontest.ApprovalVoting{}, ChainAPI: chain, NetworkBridge: network})

	existing := ids.GenerateTestID()
	e.state.trackBlock(existing, 1, ids.ID{})

	// BlockHeaderF fails the test if called for a hash already tracked,
	// which catches a regression that re-resolves a known block's
	// header.
	chain.BlockHeaderF = func(context.Context, BlockHash) (Header, bool) {
		t.Fatal("handleNewBlocks must skip hashes already tracked")
		return Header{}, false
	}

	e.handleNewBlocks(ctx, []BlockMeta{{Hash: existing, Number: 1}})

	require.Len(e.state.blocks, 1)
}

func TestHandleNewBlocksSkipsWhenChainAPIUnresponsive(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	chain := &distributiontest.ChainAPI{} // no Parents entry: BlockHeader returns ok=false
	network := &distributiontest.NetworkBridge{}
	e := New(Config{ApprovalVoting: &distributiontest.ApprovalVoting{}, ChainAPI: chain, NetworkBridge: network})

	hash := ids.GenerateTestID()
	e.handleNewBlocks(ctx, []BlockMeta{{Hash: hash, Number: 1}})

	_, tracked := e.state.blocks[hash]
	require.False(tracked)
}

func TestHandleNewBlocksUnifiesOnlyPeersWithAddedHeadsInView(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	newHash := ids.GenerateTestID()
	chain := &distributiontest.ChainAPI{T: t, Parents: map[BlockHash]BlockHash{newHash: ids.ID{}}}
	network := &distributiontest.NetworkBridge{}
	e := New(Config{ApprovalVoting: &distributiontest.ApprovalVoting{}, ChainAPI: chain, NetworkBridge: network})

	inView := ids.GenerateTestNodeID()
	notInView := ids.GenerateTestNodeID()
	e.state.peerViews[inView] = PeerView{Heads: set.Of(newHash)}
	e.state.peerViews[notInView] = PeerView{Heads: set.Of(ids.GenerateTestID())}

	e.handleNewBlocks(ctx, []BlockMeta{{Hash: newHash, Number: 3}})

	_, tracked := e.state.blocks[newHash]
	require.True(tracked)

	_, known := e.state.blocks[newHash].KnownBy[inView]
	require.True(known)
	_, known = e.state.blocks[newHash].KnownBy[notInView]
	require.False(known, "a peer whose view doesn't contain the new head must not be unified")
}
