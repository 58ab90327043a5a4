// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package netbridge adapts a generic gossip transport (an app-level
// send/receive primitive keyed by node ID, in the shape of the
// teacher corpus's chain router and AppSender) into the Network
// Bridge collaborator the distribution engine depends on.
package netbridge

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/luxfi/approval-distribution/engine/distribution"
)

// encodeWireMessage serializes a WireMessage for transport. No codec
// library in the retrieved corpus serves this: the corpus's own
// wire-framing lives in sibling modules (luxfi/p2p, luxfi/node) that
// SPEC_FULL.md's Domain Stack section already excludes as out of
// scope, and nothing else in the pack ships a length-prefixed or
// schema'd encoder for an application-defined struct. encoding/gob is
// the one stdlib-only boundary in this repo; see DESIGN.md.
func encodeWireMessage(msg distribution.WireMessage) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(msg); err != nil {
		return nil, fmt.Errorf("encode wire message: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeWireMessage(payload []byte) (distribution.WireMessage, error) {
	var msg distribution.WireMessage
	if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(&msg); err != nil {
		return distribution.WireMessage{}, fmt.Errorf("decode wire message: %w", err)
	}
	return msg, nil
}
