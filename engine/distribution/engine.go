// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package distribution

import (
	"context"

	"github.com/luxfi/log"
)

// MessageSource tags whether an assignment/approval being imported
// came from a peer or from the local approval voter. Local messages
// skip peer-reputation effects entirely (§4.5, "Locally sourced
// messages").
type MessageSource struct {
	peer    PeerID
	isPeer  bool
}

// FromPeer wraps a peer as a message source.
func FromPeer(peer PeerID) MessageSource { return MessageSource{peer: peer, isPeer: true} }

// Local is the message source used for DistributeAssignment and
// DistributeApproval, i.e. the engine's own approval voter.
var Local = MessageSource{}

// PeerID returns the source peer and true, or the zero value and
// false if the source is Local.
func (s MessageSource) PeerID() (PeerID, bool) { return s.peer, s.isPeer }

// Config wires the engine's collaborators and ambient dependencies.
// There is no persisted or file-based configuration: this subsystem is
// wired programmatically by its supervisor, exactly as
// engine/chain.NewRuntime wires a consensus runtime in the teacher
// corpus.
type Config struct {
	ApprovalVoting ApprovalVoting
	ChainAPI       ChainAPI
	NetworkBridge  NetworkBridge

	// Logger receives structured diagnostics. Defaults to a no-op
	// logger when nil.
	Logger log.Logger

	// Metrics receives counters for circulated assignments and
	// approvals, reputation changes and pruned blocks, plus the
	// circulation fan-out average. Defaults to a no-op recorder
	// when nil — metrics are a hook, not a required behavior.
	Metrics *Metrics
}

// Engine is the single-threaded cooperative event loop described in
// SPEC_FULL.md: it owns one State value exclusively between
// suspension points (awaiting the next event, or a collaborator
// reply) and must never be accessed concurrently from outside Run.
type Engine struct {
	state *State

	approvalVoting ApprovalVoting
	chainAPI       ChainAPI
	network        NetworkBridge

	log     log.Logger
	metrics *Metrics
}

// New constructs an Engine ready to Run. It does not start the event
// loop.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNoOpLogger()
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &Engine{
		state:          NewState(),
		approvalVoting: cfg.ApprovalVoting,
		chainAPI:       cfg.ChainAPI,
		network:        cfg.NetworkBridge,
		log:            logger,
		metrics:        metrics,
	}
}

// State exposes the engine's internal state for inspection in tests
// and for property checks. Callers must not mutate the returned value
// concurrently with Run.
func (e *Engine) State() *State { return e.state }

// Event is the sum type drawn from the single inbound channel: a
// Communication message, a lifecycle Signal, or channel closure
// (represented by the channel itself closing, see Run).
type Event struct {
	// Exactly one of the following is expected to be set. Run checks
	// Signal first, then NetworkUpdate, NewBlocks, DistributeAssign and
	// DistributeApprove, and handles only the first one that is set.
	NetworkUpdate     *NetworkBridgeUpdate
	NewBlocks         []BlockMeta
	DistributeAssign  *DistributeAssignment
	DistributeApprove *DistributeApproval
	Signal            Signal
}

// Signal is a lifecycle notification from the Overseer collaborator.
type Signal uint8

const (
	// SignalNone marks an Event that carries no signal (it's a
	// Communication event instead).
	SignalNone Signal = iota
	// SignalActiveLeaves is ignored: new blocks arrive via NewBlocks.
	SignalActiveLeaves
	// SignalBlockFinalized is ignored: finalization is handled by
	// OurViewChange.
	SignalBlockFinalized
	// SignalConclude terminates the event loop cleanly.
	SignalConclude
)

// DistributeAssignment is emitted when the local approval voter wants
// this assignment flooded to peers.
type DistributeAssignment struct {
	Cert           IndirectAssignmentCert
	CandidateIndex CandidateIndex
}

// DistributeApproval is emitted when the local approval voter wants
// this approval flooded to peers.
type DistributeApproval struct {
	Vote IndirectSignedApprovalVote
}

// NetworkBridgeUpdate is one of the five Network Bridge sub-events.
type NetworkBridgeUpdate struct {
	PeerConnected    *PeerConnected
	PeerDisconnected *PeerDisconnected
	PeerViewChange   *PeerViewChange
	OurViewChange    *OurViewChange
	PeerMessage      *PeerMessage
}

// PeerConnected notifies that a peer connection was established.
type PeerConnected struct {
	Peer PeerID
	Role PeerRole
}

// PeerDisconnected notifies that a peer connection was torn down.
type PeerDisconnected struct {
	Peer PeerID
}

// PeerViewChange notifies that a peer advertised a new view.
type PeerViewChange struct {
	Peer PeerID
	View PeerView
}

// OurViewChange notifies that the local node's view changed. Only
// FinalizedNumber is read by this engine.
type OurViewChange struct {
	View PeerView
}

// PeerMessage carries an inbound wire message from a peer.
type PeerMessage struct {
	Peer    PeerID
	Message WireMessage
}

// Run drains events until the channel closes or a Conclude signal
// arrives, processing each one serially. No event is dropped except
// on shutdown. It never panics on remotely-attributable input.
func (e *Engine) Run(ctx context.Context, events <-chan Event) {
	for {
		ev, ok := <-events
		if !ok {
			e.log.Debug("inbound channel closed, exiting")
			return
		}

		switch {
		case ev.Signal == SignalConclude:
			e.log.Debug("conclude signal received, exiting")
			return
		case ev.Signal == SignalActiveLeaves:
			e.log.Trace("active leaves signal (ignored)")
		case ev.Signal == SignalBlockFinalized:
			e.log.Trace("block finalized signal (ignored)")
		case ev.NetworkUpdate != nil:
			e.handleNetworkBridgeUpdate(ctx, *ev.NetworkUpdate)
		case ev.NewBlocks != nil:
			e.handleNewBlocks(ctx, ev.NewBlocks)
		case ev.DistributeAssign != nil:
			e.importAndCirculateAssignment(ctx, Local, ev.DistributeAssign.Cert, ev.DistributeAssign.CandidateIndex)
		case ev.DistributeApprove != nil:
			e.importAndCirculateApproval(ctx, Local, ev.DistributeApprove.Vote)
		}
	}
}

func (e *Engine) handleNetworkBridgeUpdate(ctx context.Context, update NetworkBridgeUpdate) {
	switch {
	case update.PeerConnected != nil:
		e.handlePeerConnected(update.PeerConnected.Peer)
	case update.PeerDisconnected != nil:
		e.handlePeerDisconnected(update.PeerDisconnected.Peer)
	case update.PeerViewChange != nil:
		e.handlePeerViewChange(ctx, update.PeerViewChange.Peer, update.PeerViewChange.View)
	case update.OurViewChange != nil:
		e.handleOurViewChange(update.OurViewChange.View)
	case update.PeerMessage != nil:
		e.handlePeerMessage(ctx, update.PeerMessage.Peer, update.PeerMessage.Message)
	}
}

func (e *Engine) handlePeerConnected(peer PeerID) {
	if _, ok := e.state.peerViews[peer]; !ok {
		e.state.peerViews[peer] = PeerView{Heads: nil}
	}
}

func (e *Engine) handlePeerDisconnected(peer PeerID) {
	delete(e.state.peerViews, peer)
	for _, entry := range e.state.blocks {
		delete(entry.KnownBy, peer)
	}
}

func (e *Engine) handlePeerMessage(ctx context.Context, peer PeerID, msg WireMessage) {
	e.log.Trace("processing message from peer", log.Stringer("peer", peer), log.Int("assignments", len(msg.Assignments)), log.Int("approvals", len(msg.Approvals)))
	for _, a := range msg.Assignments {
		e.importAndCirculateAssignment(ctx, FromPeer(peer), a.Cert, a.CandidateIndex)
	}
	for _, v := range msg.Approvals {
		e.importAndCirculateApproval(ctx, FromPeer(peer), v)
	}
}
