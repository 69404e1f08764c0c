package kmer

import (
	"fmt"

	"github.com/LepistaBioinformatics/classeq2/seq"
	"github.com/spaolacci/murmur3"
)

/*
Canonical k-mer enumeration. A k-mer and its reverse complement describe the
same double-stranded word, so both strands are collapsed onto the
lexicographically smaller of the two base strings before hashing. Hashes are
the low 64 bits of murmur3 x64-128 with seed zero, computed identically at
build and query time.
*/

////////////////////////////////////////////////////////////////////////////////

// DefaultK is the default k-mer size.
const DefaultK = 35

// DefaultM is the default minimizer size.
const DefaultM = 4

// Kmer is a canonical k-mer hash together with its minimizer bucket key.
type Kmer struct {
	Hash      uint64
	Minimizer uint64
}

// ValidateSizes checks the k/m parameter pair.
func ValidateSizes(k, m int) error {
	if k <= 0 {
		return fmt.Errorf("kmer: k must be positive, got %d", k)
	}
	if m < 1 || m >= k {
		return fmt.Errorf("kmer: m must satisfy 1 <= m < k, got m=%d k=%d", m, k)
	}
	return nil
}

// Hash returns the canonical hash of a single k-mer word. The word must
// contain only A/C/G/T.
func Hash(word string) uint64 {
	h, _ := murmur3.Sum128([]byte(Canonical(word)))
	return h
}

// Canonical returns the lexicographically smaller of word and its reverse
// complement.
func Canonical(word string) string {
	rc := seq.ReverseComplement(word)
	if rc < word {
		return rc
	}
	return word
}

// Scanner lazily emits the canonical k-mer hashes of a canonicalized
// sequence, one per window of length k that contains no sentinel. It is a
// forward-only, non-restartable iterator.
type Scanner struct {
	sequence string
	k        int
	m        int
	pos      int
	valid    int // count of consecutive canonical bases ending before pos
}

// NewScanner returns a scanner over a canonicalized sequence. Sizes are
// assumed to have passed ValidateSizes.
func NewScanner(sequence string, k, m int) *Scanner {
	return &Scanner{sequence: sequence, k: k, m: m}
}

// Next returns the next canonical k-mer, or ok=false when the sequence is
// exhausted.
func (s *Scanner) Next() (Kmer, bool) {
	for s.pos < len(s.sequence) {
		if !seq.IsBase(s.sequence[s.pos]) {
			s.valid = 0
			s.pos++
			continue
		}
		s.valid++
		s.pos++
		if s.valid < s.k {
			continue
		}
		word := Canonical(s.sequence[s.pos-s.k : s.pos])
		h, _ := murmur3.Sum128([]byte(word))
		return Kmer{Hash: h, Minimizer: Minimizer(word, s.m)}, true
	}
	return Kmer{}, false
}

// UniqueKmers collects the distinct canonical k-mers of a canonicalized
// sequence, keyed by hash.
func UniqueKmers(sequence string, k, m int) map[uint64]Kmer {
	result := make(map[uint64]Kmer)
	scanner := NewScanner(sequence, k, m)
	for {
		km, ok := scanner.Next()
		if !ok {
			return result
		}
		result[km.Hash] = km
	}
}
