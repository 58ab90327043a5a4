// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package distribution implements the approval gossip distribution
// engine: it floods assignment and approval messages across a dynamic
// peer set, exactly once per peer per message, for blocks that are in
// both the local unfinalized view and the peer's view.
package distribution

import (
	"github.com/luxfi/ids"
	"github.com/luxfi/math/set"
)

// BlockHash identifies a block in the unfinalized chain.
type BlockHash = ids.ID

// BlockNumber is the height of a block.
type BlockNumber uint64

// ValidatorIndex identifies a validator within a session.
type ValidatorIndex uint32

// CandidateIndex identifies a candidate within a block.
type CandidateIndex uint32

// PeerID identifies a connected network peer. Opaque to this engine.
type PeerID = ids.NodeID

// ValidatorSignature is an opaque signature blob. Verification is
// delegated to the Approval Voting collaborator; this engine never
// inspects its contents.
type ValidatorSignature []byte

// AssignmentCert is an opaque assignment certificate. Verification is
// delegated to the Approval Voting collaborator.
type AssignmentCert []byte

// PeerRole describes how a peer participates in the network. Carried
// through PeerConnected events but not retained in engine state —
// nothing in the knowledge ledger keys off it.
type PeerRole uint8

const (
	// RoleUnknown is the zero value for an unspecified role.
	RoleUnknown PeerRole = iota
	// RoleValidator marks a peer as a validator on this network.
	RoleValidator
	// RoleFullNode marks a peer as a non-validating full node.
	RoleFullNode
)

// IndirectAssignmentCert is a validator's claim to check a candidate,
// addressed indirectly by block hash rather than embedding the block.
type IndirectAssignmentCert struct {
	BlockHash BlockHash
	Validator ValidatorIndex
	Cert      AssignmentCert
}

// IndirectSignedApprovalVote is a validator's signed approval of a
// candidate, addressed indirectly by block hash and candidate index.
type IndirectSignedApprovalVote struct {
	BlockHash      BlockHash
	CandidateIndex CandidateIndex
	Validator      ValidatorIndex
	Signature      ValidatorSignature
}

// BlockMeta is the minimal block metadata carried by a NewBlocks
// notification. Only Hash and Number are read by this engine —
// candidates are never filled from meta, and the import paths only
// update candidate entries that already exist; they never create one
// (see SPEC_FULL.md, Supplemented Behavior #1).
type BlockMeta struct {
	Hash   BlockHash
	Number BlockNumber
}

// PeerView is a peer's last-known set of unfinalized head blocks plus
// its finalized height.
type PeerView struct {
	Heads           set.Set[BlockHash]
	FinalizedNumber BlockNumber
}
