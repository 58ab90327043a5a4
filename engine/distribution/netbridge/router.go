// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package netbridge

import (
	"context"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/math/set"

	"github.com/luxfi/approval-distribution/engine/distribution"
)

// Sender delivers application-level gossip payloads to specific
// peers. Its shape is the one real method of the teacher corpus's
// enginetest.Sender fake that this adapter needs:
// SendAppGossipSpecific(ctx, peers, payload) — everything else on that
// fake (request/response, cross-chain) has no analogue in a
// gossip-only protocol and is deliberately not part of this
// interface.
type Sender interface {
	SendAppGossipSpecific(ctx context.Context, nodeIDs set.Set[ids.NodeID], appGossipBytes []byte) error
}

// Router adapts a Sender and an inbound Engine event channel into the
// shape a transport layer actually calls: Connected/Disconnected
// lifecycle hooks and an AppGossip entrypoint for inbound bytes. It
// replaces the teacher corpus's ChainRouter, whose Connected/
// Disconnected/AppGossip methods were unimplemented stubs ("//
// Implementation would go here") — here they do the real work of
// translating transport events into distribution.Event values.
type Router struct {
	log    log.Logger
	sender Sender
	events chan<- distribution.Event
}

// NewRouter builds a Router. If logger is nil, a no-op logger is used.
func NewRouter(sender Sender, events chan<- distribution.Event, logger log.Logger) *Router {
	if logger == nil {
		logger = log.NewNoOpLogger()
	}
	return &Router{log: logger, sender: sender, events: events}
}

// Connected notifies the engine that a peer connection was
// established.
func (r *Router) Connected(nodeID ids.NodeID, role distribution.PeerRole) {
	r.events <- distribution.Event{NetworkUpdate: &distribution.NetworkBridgeUpdate{
		PeerConnected: &distribution.PeerConnected{Peer: nodeID, Role: role},
	}}
}

// Disconnected notifies the engine that a peer connection was torn
// down.
func (r *Router) Disconnected(nodeID ids.NodeID) {
	r.events <- distribution.Event{NetworkUpdate: &distribution.NetworkBridgeUpdate{
		PeerDisconnected: &distribution.PeerDisconnected{Peer: nodeID},
	}}
}

// ViewChanged notifies the engine that nodeID advertised a new view.
func (r *Router) ViewChanged(nodeID ids.NodeID, view distribution.PeerView) {
	r.events <- distribution.Event{NetworkUpdate: &distribution.NetworkBridgeUpdate{
		PeerViewChange: &distribution.PeerViewChange{Peer: nodeID, View: view},
	}}
}

// AppGossip decodes an inbound gossip payload and forwards it to the
// engine as a PeerMessage event. A malformed payload is logged and
// dropped rather than surfaced as an error — the transport layer has
// no reputation mechanism of its own to penalize the sender through,
// and a future iteration may route decode failures through ReportPeer
// once a concrete reputation manager exists.
func (r *Router) AppGossip(ctx context.Context, nodeID ids.NodeID, payload []byte) error {
	msg, err := decodeWireMessage(payload)
	if err != nil {
		r.log.Debug("dropping malformed gossip payload", log.Stringer("peer", nodeID), log.Err(err))
		return nil
	}
	r.events <- distribution.Event{NetworkUpdate: &distribution.NetworkBridgeUpdate{
		PeerMessage: &distribution.PeerMessage{Peer: nodeID, Message: msg},
	}}
	return nil
}

// SendValidationMessage implements distribution.NetworkBridge.
func (r *Router) SendValidationMessage(ctx context.Context, peers []distribution.PeerID, msg distribution.WireMessage) {
	payload, err := encodeWireMessage(msg)
	if err != nil {
		r.log.Warn("failed to encode validation message", log.Err(err))
		return
	}
	if err := r.sender.SendAppGossipSpecific(ctx, set.Of(peers...), payload); err != nil {
		r.log.Debug("gossip send failed", log.Int("peers", len(peers)), log.Err(err))
	}
}

// ReportPeer implements distribution.NetworkBridge. This adapter has
// no concrete reputation manager to forward to, so it logs the delta.
func (r *Router) ReportPeer(ctx context.Context, peer distribution.PeerID, change distribution.ReputationChange) {
	r.log.Info("peer reputation change", log.Stringer("peer", peer), log.Int("delta", int(change.Value)), log.Stringer("reason", change))
}
