// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package distributiontest provides test fakes for the collaborators
// the distribution engine depends on, following the teacher corpus's
// engine/enginetest convention: a struct with one optional XxxF field
// per interface method. Without an override, ApprovalVoting fails the
// test (when T is set) and otherwise answers Bad, and ChainAPI answers
// from its Parents map. NetworkBridge records every call, with or
// without an override.
package distributiontest

import (
	"context"
	"testing"

	"github.com/luxfi/approval-distribution/engine/distribution"
)

// ApprovalVoting is a test fake for distribution.ApprovalVoting.
type ApprovalVoting struct {
	T *testing.T

	CheckAndImportAssignmentF func(context.Context, distribution.IndirectAssignmentCert) (distribution.AssignmentCheckResult, bool)
	CheckAndImportApprovalF   func(context.Context, distribution.IndirectSignedApprovalVote) (distribution.ApprovalCheckResult, bool)
}

func (a *ApprovalVoting) CheckAndImportAssignment(ctx context.Context, cert distribution.IndirectAssignmentCert) (distribution.AssignmentCheckResult, bool) {
	if a.CheckAndImportAssignmentF != nil {
		return a.CheckAndImportAssignmentF(ctx, cert)
	}
	if a.T != nil {
		a.T.Fatal("unexpected CheckAndImportAssignment")
	}
	return distribution.AssignmentBad, true
}

func (a *ApprovalVoting) CheckAndImportApproval(ctx context.Context, vote distribution.IndirectSignedApprovalVote) (distribution.ApprovalCheckResult, bool) {
	if a.CheckAndImportApprovalF != nil {
		return a.CheckAndImportApprovalF(ctx, vote)
	}
	if a.T != nil {
		a.T.Fatal("unexpected CheckAndImportApproval")
	}
	return distribution.ApprovalBad, true
}

// ChainAPI is a test fake for distribution.ChainAPI.
type ChainAPI struct {
	T *testing.T

	// Parents maps a block hash to its parent hash. BlockHeader looks
	// the hash up here and reports ok=false if absent.
	Parents map[distribution.BlockHash]distribution.BlockHash

	BlockHeaderF func(context.Context, distribution.BlockHash) (distribution.Header, bool)
}

func (c *ChainAPI) BlockHeader(ctx context.Context, hash distribution.BlockHash) (distribution.Header, bool) {
	if c.BlockHeaderF != nil {
		return c.BlockHeaderF(ctx, hash)
	}
	parent, ok := c.Parents[hash]
	if !ok {
		return distribution.Header{}, false
	}
	return distribution.Header{ParentHash: parent}, true
}

// ReportedChange records one ReportPeer call.
type ReportedChange struct {
	Peer   distribution.PeerID
	Change distribution.ReputationChange
}

// SentMessage records one SendValidationMessage call.
type SentMessage struct {
	Peers   []distribution.PeerID
	Message distribution.WireMessage
}

// NetworkBridge is a test fake for distribution.NetworkBridge. It
// records every call it receives so tests can assert on the exact
// sequence of sends and reputation reports (the scenario tests in
// scenarios_test.go assert on this surface).
type NetworkBridge struct {
	Sent     []SentMessage
	Reported []ReportedChange

	SendValidationMessageF func(context.Context, []distribution.PeerID, distribution.WireMessage)
	ReportPeerF            func(context.Context, distribution.PeerID, distribution.ReputationChange)
}

func (n *NetworkBridge) SendValidationMessage(ctx context.Context, peers []distribution.PeerID, msg distribution.WireMessage) {
	n.Sent = append(n.Sent, SentMessage{Peers: peers, Message: msg})
	if n.SendValidationMessageF != nil {
		n.SendValidationMessageF(ctx, peers, msg)
	}
}

func (n *NetworkBridge) ReportPeer(ctx context.Context, peer distribution.PeerID, change distribution.ReputationChange) {
	n.Reported = append(n.Reported, ReportedChange{Peer: peer, Change: change})
	if n.ReportPeerF != nil {
		n.ReportPeerF(ctx, peer, change)
	}
}
