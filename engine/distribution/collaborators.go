// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package distribution

import "context"

// AssignmentCheckResult is the Approval Voting collaborator's verdict
// on an assignment certificate.
type AssignmentCheckResult uint8

const (
	// AssignmentAccepted means the assignment is valid and novel.
	AssignmentAccepted AssignmentCheckResult = iota
	// AssignmentAcceptedDuplicate means the assignment is valid but
	// the collaborator had already imported an equivalent one.
	AssignmentAcceptedDuplicate
	// AssignmentTooFarInFuture means the assignment is valid but
	// concerns a block too far ahead to act on yet.
	AssignmentTooFarInFuture
	// AssignmentBad means the assignment failed cryptographic or
	// semantic validation.
	AssignmentBad
)

// ApprovalCheckResult is the Approval Voting collaborator's verdict on
// a signed approval vote.
type ApprovalCheckResult uint8

const (
	// ApprovalAccepted means the approval is valid.
	ApprovalAccepted ApprovalCheckResult = iota
	// ApprovalBad means the approval failed validation.
	ApprovalBad
)

// ApprovalVoting is the cross-subsystem collaborator that owns
// cryptographic verification of assignments and approvals. A call
// blocks the event loop until it replies, so an implementation that
// waits on the engine before replying deadlocks it.
type ApprovalVoting interface {
	// CheckAndImportAssignment validates and, on success, records an
	// assignment cert. ok is false if the collaborator is unreachable
	// (its reply channel was dropped); the caller must not change peer
	// reputation in that case.
	CheckAndImportAssignment(ctx context.Context, cert IndirectAssignmentCert) (result AssignmentCheckResult, ok bool)

	// CheckAndImportApproval validates and, on success, records a
	// signed approval vote. ok is false if the collaborator is
	// unreachable.
	CheckAndImportApproval(ctx context.Context, vote IndirectSignedApprovalVote) (result ApprovalCheckResult, ok bool)
}

// Header is the subset of block header fields this engine reads.
type Header struct {
	ParentHash BlockHash
}

// ChainAPI resolves block headers. Only ParentHash is read.
type ChainAPI interface {
	// BlockHeader returns the header for hash, or ok=false if the
	// collaborator is unreachable or the header is unknown.
	BlockHeader(ctx context.Context, hash BlockHash) (header Header, ok bool)
}

// WireMessage is the version-1 approval-distribution wire payload:
// exactly one of Assignments or Approvals is populated.
type WireMessage struct {
	Assignments []AssignmentAndCandidate
	Approvals   []IndirectSignedApprovalVote
}

// AssignmentAndCandidate pairs a certificate with the candidate index
// it claims to cover, as carried on the wire.
type AssignmentAndCandidate struct {
	Cert           IndirectAssignmentCert
	CandidateIndex CandidateIndex
}

// NetworkBridge is the collaborator that owns wire framing, peer
// connection management, and reputation enforcement. Sends are
// fire-and-forget from this engine's perspective: there is no
// acknowledgement and no ordering guarantee between a validation
// message send and a subsequent reputation report.
type NetworkBridge interface {
	// SendValidationMessage delivers msg to every peer in peers.
	SendValidationMessage(ctx context.Context, peers []PeerID, msg WireMessage)

	// ReportPeer applies a reputation delta to a peer.
	ReportPeer(ctx context.Context, peer PeerID, change ReputationChange)
}
