// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package distribution

import "sort"

// trackBlock registers a new block in the index. It is a no-op if the
// hash is already tracked. Returns the entry (new or existing) and
// whether it was newly created.
func (s *State) trackBlock(hash BlockHash, number BlockNumber, parent BlockHash) (*BlockEntry, bool) {
	if existing, ok := s.blocks[hash]; ok {
		return existing, false
	}

	entry := newBlockEntry(number, parent)
	s.blocks[hash] = entry

	hashes, hadNumber := s.blocksByNumber[number]
	s.blocksByNumber[number] = append(hashes, hash)
	if !hadNumber {
		s.insertNumber(number)
	}
	return entry, true
}

// insertNumber keeps orderedNumbers sorted ascending without a full
// re-sort on every insert.
func (s *State) insertNumber(n BlockNumber) {
	idx := sort.Search(len(s.orderedNumbers), func(i int) bool { return s.orderedNumbers[i] >= n })
	s.orderedNumbers = append(s.orderedNumbers, 0)
	copy(s.orderedNumbers[idx+1:], s.orderedNumbers[idx:])
	s.orderedNumbers[idx] = n
}

// pruneFinalized drops every tracked block with number <=
// finalizedNumber, atomically splitting blocksByNumber at
// finalizedNumber+1. Returns the removed hashes.
func (s *State) pruneFinalized(finalizedNumber BlockNumber) []BlockHash {
	splitPoint := finalizedNumber + 1

	cut := sort.Search(len(s.orderedNumbers), func(i int) bool { return s.orderedNumbers[i] >= splitPoint })

	var removed []BlockHash
	for _, n := range s.orderedNumbers[:cut] {
		for _, h := range s.blocksByNumber[n] {
			removed = append(removed, h)
			delete(s.blocks, h)
		}
		delete(s.blocksByNumber, n)
	}

	remaining := make([]BlockNumber, len(s.orderedNumbers)-cut)
	copy(remaining, s.orderedNumbers[cut:])
	s.orderedNumbers = remaining

	return removed
}

// hashesUpTo returns every tracked hash with number <= n, across all
// tracked blocks (used for the peer-view-change cleanup sweep).
func (s *State) hashesUpTo(n BlockNumber) []BlockHash {
	cut := sort.Search(len(s.orderedNumbers), func(i int) bool { return s.orderedNumbers[i] > n })
	var out []BlockHash
	for _, num := range s.orderedNumbers[:cut] {
		out = append(out, s.blocksByNumber[num]...)
	}
	return out
}
