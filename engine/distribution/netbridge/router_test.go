// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package netbridge

import (
	"context"
	"testing"

	"github.com/luxfi/ids"
	"github.com/luxfi/math/set"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/approval-distribution/engine/distribution"
)

type fakeSender struct {
	T *testing.T

	SendAppGossipSpecificF func(context.Context, set.Set[ids.NodeID], []byte) error
}

func (f *fakeSender) SendAppGossipSpecific(ctx context.Context, nodeIDs set.Set[ids.NodeID], payload []byte) error {
	if f.SendAppGossipSpecificF != nil {
		return f.SendAppGossipSpecificF(ctx, nodeIDs, payload)
	}
	if f.T != nil {
		f.T.Fatal("unexpected SendAppGossipSpecific")
	}
	return nil
}

func TestRouterConnectedEmitsPeerConnectedEvent(t *testing.T) {
	require := require.New(t)
	events := make(chan distribution.Event, 1)
	r := NewRouter(&fakeSender{T: t}, events, nil)

	peer := ids.GenerateTestNodeID()
	r.Connected(peer, distribution.RoleValidator)

	ev := <-events
	require.NotNil(ev.NetworkUpdate)
	require.NotNil(ev.NetworkUpdate.PeerConnected)
	require.Equal(peer, ev.NetworkUpdate.PeerConnected.Peer)
	require.Equal(distribution.RoleValidator, ev.NetworkUpdate.PeerConnected.Role)
}

func TestRouterAppGossipRoundTripsWireMessage(t *testing.T) {
	require := require.New(t)
	events := make(chan distribution.Event, 1)
	r := NewRouter(&fakeSender{T: t}, events, nil)

	peer := ids.GenerateTestNodeID()
	cert := distribution.IndirectAssignmentCert{BlockHash: ids.GenerateTestID(), Validator: 3, Cert: []byte("cert")}
	original := distribution.WireMessage{Assignments: []distribution.AssignmentAndCandidate{{Cert: cert, CandidateIndex: 1}}}

	payload, err := encodeWireMessage(original)
	require.NoError(err)

	err = r.AppGossip(context.Background(), peer, payload)
	require.NoError(err)

	ev := <-events
	require.NotNil(ev.NetworkUpdate.PeerMessage)
	require.Equal(peer, ev.NetworkUpdate.PeerMessage.Peer)
	require.Equal(original, ev.NetworkUpdate.PeerMessage.Message)
}

func TestRouterAppGossipDropsMalformedPayload(t *testing.T) {
	require := require.New(t)
	events := make(chan distribution.Event, 1)
	r := NewRouter(&fakeSender{T: t}, events, nil)

	err := r.AppGossip(context.Background(), ids.GenerateTestNodeID(), []byte("not a gob stream"))
	require.NoError(err)
	require.Empty(events)
}

func TestRouterSendValidationMessageEncodesAndSends(t *testing.T) {
	require := require.New(t)
	events := make(chan distribution.Event, 1)

	var gotPayload []byte
	var gotPeers set.Set[ids.NodeID]
	sender := &fakeSender{
		SendAppGossipSpecificF: func(ctx context.Context, nodeIDs set.Set[ids.NodeID], payload []byte) error {
			gotPeers = nodeIDs
			gotPayload = payload
			return nil
		},
	}
	r := NewRouter(sender, events, nil)

	p1, p2 := ids.GenerateTestNodeID(), ids.GenerateTestNodeID()
	vote := distribution.IndirectSignedApprovalVote{BlockHash: ids.GenerateTestID(), Validator: 2}
	msg := distribution.WireMessage{Approvals: []distribution.IndirectSignedApprovalVote{vote}}

	r.SendValidationMessage(context.Background(), []distribution.PeerID{p1, p2}, msg)

	require.True(gotPeers.Contains(p1))
	require.True(gotPeers.Contains(p2))

	decoded, err := decodeWireMessage(gotPayload)
	require.NoError(err)
	require.Equal(msg, decoded)
}
