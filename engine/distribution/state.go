// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package distribution

import (
	"github.com/luxfi/math/set"
)

// Knowledge is a set of message fingerprints. Used in two roles: the
// engine's own knowledge of a block, and a peer's known-by record for
// that block.
type Knowledge = set.Set[Fingerprint]

// ApprovalStateKind tags the lifecycle stage of a candidate's
// per-validator approval state.
type ApprovalStateKind uint8

const (
	// ApprovalStateAssigned means an assignment has been seen but no
	// approval yet.
	ApprovalStateAssigned ApprovalStateKind = iota
	// ApprovalStateApproved is terminal: an approval was recorded.
	ApprovalStateApproved
)

// ApprovalState is the tagged variant tracking, for one validator on
// one candidate, whether we've only seen an assignment or also an
// approval. Approved never downgrades back to Assigned.
type ApprovalState struct {
	Kind      ApprovalStateKind
	Cert      AssignmentCert
	Signature ValidatorSignature // only meaningful when Kind == ApprovalStateApproved
}

// CandidateEntry maps validators to their approval state for one
// candidate within one block. Multiple CandidateEntry values may exist
// for the "same" candidate across forks.
type CandidateEntry struct {
	Approvals map[ValidatorIndex]ApprovalState
}

func newCandidateEntry() *CandidateEntry {
	return &CandidateEntry{Approvals: make(map[ValidatorIndex]ApprovalState)}
}

// BlockEntry tracks everything the engine knows about one unfinalized
// block: its place in the chain, the messages it has accepted, and
// which peers are deemed to have it in view.
type BlockEntry struct {
	Number     BlockNumber
	ParentHash BlockHash

	// Knowledge is the set of fingerprints this engine has accepted
	// for this block.
	Knowledge Knowledge

	// Candidates maps candidate index to per-validator approval state.
	Candidates map[CandidateIndex]*CandidateEntry

	// KnownBy maps peer to that peer's known-by record for this block.
	// Presence of a key means the peer is deemed to have this block in
	// view; absence means out of view for that peer.
	KnownBy map[PeerID]Knowledge
}

func newBlockEntry(number BlockNumber, parent BlockHash) *BlockEntry {
	return &BlockEntry{
		Number:     number,
		ParentHash: parent,
		Knowledge:  set.Set[Fingerprint]{},
		Candidates: make(map[CandidateIndex]*CandidateEntry),
		KnownBy:    make(map[PeerID]Knowledge),
	}
}

// State is the engine's singleton mutable state: a view over the
// unfinalized chain, accepted message knowledge, and per-peer views.
// It is owned exclusively by the event loop goroutine; see the
// concurrency notes on Engine in engine.go.
type State struct {
	// blocksByNumber is ordered so a finalized prefix can be split off
	// in one operation (see handleOurViewChange).
	blocksByNumber map[BlockNumber][]BlockHash
	orderedNumbers []BlockNumber // kept sorted; see insertNumber/pruneFinalized

	blocks map[BlockHash]*BlockEntry

	peerViews map[PeerID]PeerView
}

// NewState returns an empty engine state.
func NewState() *State {
	return &State{
		blocksByNumber: make(map[BlockNumber][]BlockHash),
		blocks:         make(map[BlockHash]*BlockEntry),
		peerViews:      make(map[PeerID]PeerView),
	}
}
