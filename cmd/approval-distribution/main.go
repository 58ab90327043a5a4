// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Command approval-distribution demonstrates wiring the distribution
// engine the way a host node would: construct the collaborators, call
// distribution.New once, and run the event loop until the context is
// cancelled. There is no configuration file or CLI surface of its own
// (SPEC_FULL.md's Ambient Stack: this subsystem is wired
// programmatically by its supervisor), matching the teacher corpus's
// engine/chain.NewRuntime single-constructor convention rather than
// its cobra-based cmd/consensus tool, which manages a different,
// user-facing parameter-tuning surface this engine doesn't have.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/math/set"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/luxfi/approval-distribution/engine/distribution"
	"github.com/luxfi/approval-distribution/engine/distribution/netbridge"
)

// noopApprovalVoting and noopChainAPI below are placeholders standing in for
// a real node's approval-voting subsystem and chain-state API. A host
// process wires its own implementations of distribution.ApprovalVoting
// and distribution.ChainAPI at this point; this command only proves
// out the Engine/Router wiring end to end.
type noopApprovalVoting struct{}

func (noopApprovalVoting) CheckAndImportAssignment(context.Context, distribution.IndirectAssignmentCert) (distribution.AssignmentCheckResult, bool) {
	return distribution.AssignmentAccepted, true
}

func (noopApprovalVoting) CheckAndImportApproval(context.Context, distribution.IndirectSignedApprovalVote) (distribution.ApprovalCheckResult, bool) {
	return distribution.ApprovalAccepted, true
}

type noopChainAPI struct{}

func (noopChainAPI) BlockHeader(context.Context, distribution.BlockHash) (distribution.Header, bool) {
	return distribution.Header{}, false
}

func main() {
	logger := log.NewNoOpLogger()
	registry := prometheus.NewRegistry()

	events := make(chan distribution.Event, 256)
	router := netbridge.NewRouter(noopSender{}, events, logger)

	engine := distribution.New(distribution.Config{
		ApprovalVoting: noopApprovalVoting{},
		ChainAPI:       noopChainAPI{},
		NetworkBridge:  router,
		Logger:         logger,
		Metrics:        distribution.NewMetrics(registry),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func() {
		<-ctx.Done()
		events <- distribution.Event{Signal: distribution.SignalConclude}
	}()

	engine.Run(ctx, events)
}

// noopSender stands in for the real gossip transport (luxfi/p2p or
// luxfi/node), out of scope per SPEC_FULL.md's Domain Stack section.
type noopSender struct{}

func (noopSender) SendAppGossipSpecific(context.Context, set.Set[ids.NodeID], []byte) error {
	return nil
}
