// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package distribution

import (
	"context"

	"github.com/luxfi/log"
	"github.com/luxfi/math/set"
)

// importAndCirculateAssignment implements SPEC_FULL.md §4.5 for
// assignments: fingerprint, dedup, validate via the Approval Voting
// collaborator, record, and circulate to every other connected peer.
func (e *Engine) importAndCirculateAssignment(ctx context.Context, source MessageSource, cert IndirectAssignmentCert, candidateIndex CandidateIndex) {
	blockHash := cert.BlockHash
	validator := cert.Validator

	entry, ok := e.state.blocks[blockHash]
	if !ok {
		if peer, isPeer := source.PeerID(); isPeer {
			e.reportPeer(ctx, peer, CostUnexpectedMessage)
		} else {
			e.log.Warn("block absent for locally sourced assignment", log.Stringer("hash", blockHash))
		}
		return
	}

	fp := AssignmentFingerprint(blockHash, candidateIndex, validator)

	if peer, isPeer := source.PeerID(); isPeer {
		if known, exists := entry.KnownBy[peer]; exists {
			if known.Contains(fp) {
				e.reportPeer(ctx, peer, CostDuplicateMessage)
				return
			}
		} else {
			e.reportPeer(ctx, peer, CostUnexpectedMessage)
			// continue: the message may still be valid.
		}

		if entry.Knowledge.Contains(fp) {
			e.reportPeer(ctx, peer, BenefitValidMessage)
			e.recordKnownBy(entry, peer, fp)
			return
		}

		result, ok := e.approvalVoting.CheckAndImportAssignment(ctx, cert)
		if !ok {
			e.log.Debug("approval voting collaborator is down, discarding assignment")
			return
		}

		switch result {
		case AssignmentAccepted, AssignmentAcceptedDuplicate:
			if result == AssignmentAccepted {
				e.reportPeer(ctx, peer, BenefitValidMessageFirst)
			}
			entry.Knowledge.Add(fp)
			e.recordKnownBy(entry, peer, fp)
		case AssignmentTooFarInFuture:
			e.reportPeer(ctx, peer, CostAssignmentTooFarInTheFuture)
			return
		case AssignmentBad:
			e.reportPeer(ctx, peer, CostInvalidMessage)
			return
		}
	} else {
		entry.Knowledge.Add(fp)
	}

	if candidate, ok := entry.Candidates[candidateIndex]; ok {
		if _, assigned := candidate.Approvals[validator]; !assigned {
			candidate.Approvals[validator] = ApprovalState{Kind: ApprovalStateAssigned, Cert: cert.Cert}
		}
	} else {
		e.log.Warn("expected a candidate entry on import_and_circulate_assignment", log.Stringer("hash", blockHash), log.Uint32("candidateIndex", uint32(candidateIndex)))
	}

	peers := e.recipientsExcluding(source)
	e.network.SendValidationMessage(ctx, peers, WireMessage{
		Assignments: []AssignmentAndCandidate{{Cert: cert, CandidateIndex: candidateIndex}},
	})
	e.metrics.assignmentsCirculated.Add(float64(len(peers)))
	e.metrics.circulationFanout.Observe(float64(len(peers)))
	for _, p := range peers {
		e.recordKnownBy(entry, p, fp)
	}
}

// importAndCirculateApproval implements SPEC_FULL.md §4.5 for
// approvals: it additionally enforces assignment precedence (an
// approval must never be accepted before its matching assignment) and
// transitions CandidateEntry from Assigned to Approved.
func (e *Engine) importAndCirculateApproval(ctx context.Context, source MessageSource, vote IndirectSignedApprovalVote) {
	blockHash := vote.BlockHash
	validator := vote.Validator
	candidateIndex := vote.CandidateIndex

	entry, ok := e.state.blocks[blockHash]
	if ok {
		if _, hasCandidate := entry.Candidates[candidateIndex]; !hasCandidate {
			ok = false
		}
	}
	if !ok {
		if peer, isPeer := source.PeerID(); isPeer {
			e.reportPeer(ctx, peer, CostUnexpectedMessage)
		} else {
			e.log.Warn("block or candidate absent for locally sourced approval", log.Stringer("hash", blockHash))
		}
		return
	}

	fp := ApprovalFingerprint(blockHash, candidateIndex, validator)

	if peer, isPeer := source.PeerID(); isPeer {
		assignmentFp := AssignmentFingerprint(blockHash, candidateIndex, validator)
		if !entry.Knowledge.Contains(assignmentFp) {
			e.reportPeer(ctx, peer, CostUnexpectedMessage)
			return
		}

		if known, exists := entry.KnownBy[peer]; exists {
			if known.Contains(fp) {
				e.reportPeer(ctx, peer, CostDuplicateMessage)
				return
			}
		} else {
			e.reportPeer(ctx, peer, CostUnexpectedMessage)
		}

		if entry.Knowledge.Contains(fp) {
			e.reportPeer(ctx, peer, BenefitValidMessage)
			e.recordKnownBy(entry, peer, fp)
			return
		}

		result, ok := e.approvalVoting.CheckAndImportApproval(ctx, vote)
		if !ok {
			e.log.Debug("approval voting collaborator is down, discarding approval")
			return
		}

		switch result {
		case ApprovalAccepted:
			e.reportPeer(ctx, peer, BenefitValidMessageFirst)
			entry.Knowledge.Add(fp)
			e.recordKnownBy(entry, peer, fp)
		case ApprovalBad:
			e.reportPeer(ctx, peer, CostInvalidMessage)
			return
		}
	} else {
		entry.Knowledge.Add(fp)
	}

	if candidate, ok := entry.Candidates[candidateIndex]; ok {
		if existing, assigned := candidate.Approvals[validator]; assigned && existing.Kind == ApprovalStateAssigned {
			candidate.Approvals[validator] = ApprovalState{
				Kind:      ApprovalStateApproved,
				Cert:      existing.Cert,
				Signature: vote.Signature,
			}
		} else {
			e.log.Warn("expected a candidate entry with Assigned state on import_and_circulate_approval", log.Stringer("hash", blockHash), log.Uint32("candidateIndex", uint32(candidateIndex)))
		}
	} else {
		e.log.Warn("expected a candidate entry on import_and_circulate_approval", log.Stringer("hash", blockHash), log.Uint32("candidateIndex", uint32(candidateIndex)))
	}

	peers := e.recipientsExcluding(source)
	e.network.SendValidationMessage(ctx, peers, WireMessage{
		Approvals: []IndirectSignedApprovalVote{vote},
	})
	e.metrics.approvalsCirculated.Add(float64(len(peers)))
	e.metrics.circulationFanout.Observe(float64(len(peers)))
	for _, p := range peers {
		e.recordKnownBy(entry, p, fp)
	}
}

// recordKnownBy inserts fp into peer's known-by record for entry,
// creating the record if this is the peer's first message about this
// block.
func (e *Engine) recordKnownBy(entry *BlockEntry, peer PeerID, fp Fingerprint) {
	k, ok := entry.KnownBy[peer]
	if !ok {
		k = set.Set[Fingerprint]{}
	}
	k.Add(fp)
	entry.KnownBy[peer] = k
}

// recipientsExcluding returns every currently connected peer except
// the message source (Local messages exclude no one).
func (e *Engine) recipientsExcluding(source MessageSource) []PeerID {
	excl, isPeer := source.PeerID()
	peers := make([]PeerID, 0, len(e.state.peerViews))
	for p := range e.state.peerViews {
		if isPeer && p == excl {
			continue
		}
		peers = append(peers, p)
	}
	return peers
}

// reportPeer forwards a reputation change to the Network Bridge.
// Stateless pass-through, mirrors modify_reputation in the source
// system.
func (e *Engine) reportPeer(ctx context.Context, peer PeerID, change ReputationChange) {
	e.log.Trace("reputation change for peer", log.Stringer("peer", peer), log.Int("delta", int(change.Value)), log.Stringer("reason", change))
	e.network.ReportPeer(ctx, peer, change)
	e.metrics.reputationChanges.Add(1)
}
