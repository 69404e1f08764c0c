package seq_test

import (
	"testing"

	"github.com/LepistaBioinformatics/classeq2/seq"
	"github.com/stretchr/testify/assert"
)

func TestCanonicalize(t *testing.T) {
	cases := []struct {
		assertion string
		input     string
		output    string
	}{
		{"uppercases", "acgt", "ACGT"},
		{"passes canonical bases", "ACGT", "ACGT"},
		{"masks ambiguity codes", "ACRYGT", "ACNNGT"},
		{"strips whitespace", "AC GT\nAC\r\nGT", "ACGTACGT"},
		{"masks gaps", "AC-GT", "ACNGT"},
		{"empty input", "", ""},
		{"fully invalid input", "xyz123", "NNNNNN"},
	}
	for _, c := range cases {
		t.Run(c.assertion, func(t *testing.T) {
			assert.Equal(t, c.output, seq.Canonicalize(c.input))
		})
	}
}

func TestReverseComplement(t *testing.T) {
	cases := []struct {
		assertion string
		input     string
		output    string
	}{
		{"palindrome", "ACGT", "ACGT"},
		{"simple", "AAAC", "GTTT"},
		{"sentinel maps to itself", "ANT", "ANT"},
	}
	for _, c := range cases {
		t.Run(c.assertion, func(t *testing.T) {
			assert.Equal(t, c.output, seq.ReverseComplement(c.input))
		})
	}
}

func TestHasValidWindow(t *testing.T) {
	assert.True(t, seq.HasValidWindow("ACGTACGT", 4))
	assert.False(t, seq.HasValidWindow("ACNTACNT", 4))
	assert.False(t, seq.HasValidWindow("ACG", 4))
	assert.False(t, seq.HasValidWindow("", 1))
}
