// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package distribution

// ReputationChange is a signed reputation delta with a human-readable
// reason, reported to the Network Bridge collaborator. modify_reputation
// in the source system is a stateless pass-through; this engine mirrors
// that by never tracking cumulative reputation itself.
type ReputationChange struct {
	Value  int32
	Reason string
}

// String implements fmt.Stringer.
func (r ReputationChange) String() string {
	return r.Reason
}

var (
	// CostUnexpectedMessage penalizes a message for a block not in our
	// view, or not known to the sending peer.
	CostUnexpectedMessage = ReputationChange{Value: -100, Reason: "Message for a block not in our view or not known to peer"}
	// CostDuplicateMessage penalizes a peer re-sending a message we
	// already recorded from it.
	CostDuplicateMessage = ReputationChange{Value: -100, Reason: "Peer re-sent a message we already recorded from it"}
	// CostAssignmentTooFarInTheFuture penalizes an otherwise-valid
	// assignment for a far-future block.
	CostAssignmentTooFarInTheFuture = ReputationChange{Value: -10, Reason: "Valid assignment but far-future block"}
	// CostInvalidMessage penalizes a cryptographic or semantic
	// rejection.
	CostInvalidMessage = ReputationChange{Value: -500, Reason: "Cryptographic/semantic rejection"}
	// BenefitValidMessage rewards a valid message whose content was
	// already known.
	BenefitValidMessage = ReputationChange{Value: 10, Reason: "Valid message, but content already known"}
	// BenefitValidMessageFirst rewards a valid message carrying novel
	// content.
	BenefitValidMessageFirst = ReputationChange{Value: 15, Reason: "Valid message carrying novel content"}
)
