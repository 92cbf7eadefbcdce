// Package hashchain seals ledger entries into a per-entity tamper-evident chain
// and verifies stored chains.
package hashchain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Algorithm names a digest function.
type Algorithm string

const (
	SHA256     Algorithm = "sha256"
	SHA3_256   Algorithm = "sha3-256"
	BLAKE2b256 Algorithm = "blake2b-256"
)

const fieldSeparator = "|"

// Sealer computes entry digests. It is safe for concurrent use.
type Sealer struct {
	algorithm Algorithm
	seed      string
	newHash   func() hash.Hash
}

// NewSealer builds a Sealer for algorithm, using seed as the genesis link.
func NewSealer(algorithm Algorithm, seed string) (*Sealer, error) {
	if seed == "" {
		return nil, fmt.Errorf("hash chain genesis seed cannot be empty")
	}
	var fn func() hash.Hash
	switch algorithm {
	case SHA256, "":
		algorithm = SHA256
		fn = sha256.New
	case SHA3_256:
		fn = sha3.New256
	case BLAKE2b256:
		fn = func() hash.Hash {
			h, _ := blake2b.New256(nil) // only fails for oversized keys
			return h
		}
	default:
		return nil, fmt.Errorf("unsupported hashing algorithm %q", algorithm)
	}
	return &Sealer{algorithm: algorithm, seed: seed, newHash: fn}, nil
}

// Algorithm returns the digest in use.
func (s *Sealer) Algorithm() Algorithm {
	return s.algorithm
}

// Canonical is the byte string digested for an entry given the previous link.
// The superseded marker is excluded so re-posting does not disturb the chain.
func Canonical(e domain.LedgerEntry, previous string) string {
	vatID := ""
	if e.VatID != nil {
		vatID = *e.VatID
	}
	fields := []string{
		e.EntityID,
		e.TransactionID,
		vatID,
		e.PostAccount,
		e.FolioAccount,
		e.LineItemID,
		NormalizeTime(e.PostingDate).Format(time.RFC3339Nano),
		string(e.EntryType),
		e.Amount.StringFixed(4),
		NormalizeTime(e.CreatedAt).Format(time.RFC3339Nano),
		previous,
	}
	return strings.Join(fields, fieldSeparator)
}

// NormalizeTime truncates to the microsecond precision the database keeps.
func NormalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// Link returns the previous hash to chain from, or the genesis seed.
func (s *Sealer) Link(previous *domain.LedgerEntry) string {
	if previous == nil {
		return s.seed
	}
	return previous.Hash
}

// Digest hashes an entry chained to previous.
func (s *Sealer) Digest(e domain.LedgerEntry, previous string) string {
	h := s.newHash()
	h.Write([]byte(Canonical(e, previous)))
	return hex.EncodeToString(h.Sum(nil))
}

// Seal sets the sequence, previous link and hash of entries in order, chaining
// from tail (nil for an empty chain). It returns the new tail.
func (s *Sealer) Seal(tail *domain.LedgerEntry, entries []domain.LedgerEntry) *domain.LedgerEntry {
	var seq int64
	previous := s.Link(tail)
	if tail != nil {
		seq = tail.Sequence
	}
	for i := range entries {
		seq++
		entries[i].Sequence = seq
		entries[i].CreatedAt = NormalizeTime(entries[i].CreatedAt)
		entries[i].PostingDate = NormalizeTime(entries[i].PostingDate)
		entries[i].PreviousHash = previous
		entries[i].Hash = s.Digest(entries[i], previous)
		previous = entries[i].Hash
	}
	if len(entries) == 0 {
		return tail
	}
	last := entries[len(entries)-1]
	return &last
}
