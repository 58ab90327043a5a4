// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package distribution

import "fmt"

// FingerprintKind tags which wire message a Fingerprint identifies.
type FingerprintKind uint8

const (
	// FingerprintAssignment tags an assignment fingerprint.
	FingerprintAssignment FingerprintKind = iota
	// FingerprintApproval tags an approval fingerprint.
	FingerprintApproval
)

// Fingerprint is the deduplication key for a gossiped message: the
// sole identity used for dedup, reputation, and precedence checks.
// Two fingerprints are equal iff all fields are equal.
type Fingerprint struct {
	Kind           FingerprintKind
	BlockHash      BlockHash
	CandidateIndex CandidateIndex
	Validator      ValidatorIndex
}

// AssignmentFingerprint builds the fingerprint for an assignment
// message.
func AssignmentFingerprint(block BlockHash, candidate CandidateIndex, validator ValidatorIndex) Fingerprint {
	return Fingerprint{
		Kind:           FingerprintAssignment,
		BlockHash:      block,
		CandidateIndex: candidate,
		Validator:      validator,
	}
}

// ApprovalFingerprint builds the fingerprint for an approval message.
func ApprovalFingerprint(block BlockHash, candidate CandidateIndex, validator ValidatorIndex) Fingerprint {
	return Fingerprint{
		Kind:           FingerprintApproval,
		BlockHash:      block,
		CandidateIndex: candidate,
		Validator:      validator,
	}
}

// String implements fmt.Stringer for logging.
func (f Fingerprint) String() string {
	kind := "assignment"
	if f.Kind == FingerprintApproval {
		kind = "approval"
	}
	return fmt.Sprintf("%s(block=%s, candidate=%d, validator=%d)", kind, f.BlockHash, f.CandidateIndex, f.Validator)
}
