package hashchain

import (
	"fmt"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// Verifier checks a chain one entry at a time, in sequence order.
// It stops accepting entries after the first break.
type Verifier struct {
	sealer   *Sealer
	previous string
	sequence int64
	verified int64
	broken   *domain.ChainBreak
}

// NewVerifier starts a verification from the genesis seed.
func (s *Sealer) NewVerifier() *Verifier {
	return &Verifier{sealer: s, previous: s.seed}
}

// Next checks e against the chain so far. It returns the break, if any.
func (v *Verifier) Next(e domain.LedgerEntry) *domain.ChainBreak {
	if v.broken != nil {
		return v.broken
	}
	switch {
	case e.Sequence != v.sequence+1:
		v.broken = v.breakAt(e, fmt.Sprintf("sequence gap: expected %d", v.sequence+1), "")
	case e.PreviousHash != v.previous:
		v.broken = v.breakAt(e, "previous hash does not link to the prior entry", "")
	default:
		expected := v.sealer.Digest(e, v.previous)
		if expected != e.Hash {
			v.broken = v.breakAt(e, "stored hash does not match entry fields", expected)
		}
	}
	if v.broken != nil {
		return v.broken
	}
	v.previous = e.Hash
	v.sequence = e.Sequence
	v.verified++
	return nil
}

func (v *Verifier) breakAt(e domain.LedgerEntry, reason, expected string) *domain.ChainBreak {
	return &domain.ChainBreak{
		Sequence:     e.Sequence,
		LedgerID:     e.LedgerID,
		Reason:       reason,
		StoredHash:   e.Hash,
		ExpectedHash: expected,
	}
}

// Result summarises the scan so far.
func (v *Verifier) Result(entityID string) domain.ChainVerification {
	return domain.ChainVerification{
		EntityID:        entityID,
		EntriesVerified: v.verified,
		Valid:           v.broken == nil,
		Break:           v.broken,
	}
}

// LastSequence is the sequence of the last verified entry.
func (v *Verifier) LastSequence() int64 {
	return v.sequence
}

// Broken reports whether a break has been found.
func (v *Verifier) Broken() bool {
	return v.broken != nil
}
