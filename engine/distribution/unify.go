// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package distribution

import (
	"context"

	"github.com/luxfi/math/set"
)

// unifyWithPeer implements SPEC_FULL.md §4.6: back-fill a peer with
// everything in its view it doesn't yet know about, without
// retransmitting anything it already has. The "stop on first known
// block" rule relies on knowledge flowing strictly along ancestor
// chains: if a peer already has any block on a chain, it was unified
// with its ancestors previously.
func (e *Engine) unifyWithPeer(ctx context.Context, peer PeerID, view PeerView) {
	toSend := set.Set[BlockHash]{}

	for head := range view.Heads {
		block := head
		for {
			entry, ok := e.state.blocks[block]
			if !ok || entry.Number < view.FinalizedNumber {
				break
			}
			if _, known := entry.KnownBy[peer]; known {
				break
			}

			entry.KnownBy[peer] = cloneKnowledge(entry.Knowledge)
			toSend.Add(block)

			block = entry.ParentHash
		}
	}

	e.sendGossipMessagesToPeer(ctx, peer, toSend)
}

// cloneKnowledge returns an independent snapshot of a knowledge set;
// subsequent mutation of the source must not retroactively appear in
// the snapshot, and vice versa, except through the normal import
// paths (SPEC_FULL.md §9).
func cloneKnowledge(k Knowledge) Knowledge {
	return set.Of(k.List()...)
}

// sendGossipMessagesToPeer builds one batched assignments message and
// one batched approvals message covering every candidate in blocks,
// and sends each to peer if non-empty.
func (e *Engine) sendGossipMessagesToPeer(ctx context.Context, peer PeerID, blocks set.Set[BlockHash]) {
	var assignments []AssignmentAndCandidate
	var approvals []IndirectSignedApprovalVote

	for block := range blocks {
		entry, ok := e.state.blocks[block]
		if !ok {
			continue // unreachable in practice; entry existed moments ago
		}
		for candidateIndex, candidate := range entry.Candidates {
			for validator, approval := range candidate.Approvals {
				switch approval.Kind {
				case ApprovalStateAssigned:
					assignments = append(assignments, AssignmentAndCandidate{
						Cert: IndirectAssignmentCert{
							BlockHash: block,
							Validator: validator,
							Cert:      approval.Cert,
						},
						CandidateIndex: candidateIndex,
					})
				case ApprovalStateApproved:
					approvals = append(approvals, IndirectSignedApprovalVote{
						BlockHash:      block,
						CandidateIndex: candidateIndex,
						Validator:      validator,
						Signature:      approval.Signature,
					})
					// Approved states contribute their certificate to
					// the assignments batch too (§4.6).
					assignments = append(assignments, AssignmentAndCandidate{
						Cert: IndirectAssignmentCert{
							BlockHash: block,
							Validator: validator,
							Cert:      approval.Cert,
						},
						CandidateIndex: candidateIndex,
					})
				}
			}
		}
	}

	if len(assignments) > 0 {
		e.network.SendValidationMessage(ctx, []PeerID{peer}, WireMessage{Assignments: assignments})
	}
	if len(approvals) > 0 {
		e.network.SendValidationMessage(ctx, []PeerID{peer}, WireMessage{Approvals: approvals})
	}
}
