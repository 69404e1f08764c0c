package kmer

import "github.com/spaolacci/murmur3"

/*
Minimizer selection. Every k-mer is reduced to a coarse bucket key: the
minimum murmur3 hash among its m-mer substrings. Equal hashes resolve to the
lowest window offset, which falls out of the strict less-than comparison.
Bucketing keeps the inner k-mer maps small and cache-friendly, and lets
placement skip whole buckets that share no minimizer with the query.
*/

////////////////////////////////////////////////////////////////////////////////

// Minimizer returns the bucket key of a k-mer word: the minimum hash among
// its length-m substrings. The word must contain only A/C/G/T and satisfy
// len(word) >= m.
func Minimizer(word string, m int) uint64 {
	best := uint64(0)
	for i := 0; i+m <= len(word); i++ {
		h, _ := murmur3.Sum128([]byte(word[i : i+m]))
		if i == 0 || h < best {
			best = h
		}
	}
	return best
}
