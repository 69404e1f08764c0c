package index

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/LepistaBioinformatics/classeq2/kmer"
	"github.com/LepistaBioinformatics/classeq2/util"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

/*
KmersMap is the searchable core of a database: a two-level map keyed by
minimizer then canonical k-mer hash, whose values are ascending occurrence
lists of clade ids. Occurrence lists include the leaf where a k-mer appears
and every ancestor up to the root, which turns subtree-containment queries
during placement into plain membership tests.

Serialization is canonical: minimizer keys, k-mer keys, and occurrence lists
are always emitted in ascending numeric order, so identical builds are
byte-identical regardless of thread interleaving.
*/

////////////////////////////////////////////////////////////////////////////////

// KmersMap maps minimizer -> k-mer hash -> ascending clade id list.
type KmersMap struct {
	KSize   int
	MSize   int
	Buckets map[uint64]map[uint64][]int32
}

// NewKmersMap returns an empty map for the given sizes.
func NewKmersMap(k, m int) *KmersMap {
	return &KmersMap{
		KSize:   k,
		MSize:   m,
		Buckets: make(map[uint64]map[uint64][]int32),
	}
}

// Insert appends the given clade ids to the occurrence list of km. Lists are
// not kept sorted during construction; Normalize must run before the map is
// queried or serialized.
func (m *KmersMap) Insert(km kmer.Kmer, nodes []int32) {
	bucket, ok := m.Buckets[km.Minimizer]
	if !ok {
		bucket = make(map[uint64][]int32)
		m.Buckets[km.Minimizer] = bucket
	}
	bucket[km.Hash] = append(bucket[km.Hash], nodes...)
}

// Merge folds other into m. Both maps must share k and m sizes.
func (m *KmersMap) Merge(other *KmersMap) {
	for minimizer, bucket := range other.Buckets {
		dest, ok := m.Buckets[minimizer]
		if !ok {
			m.Buckets[minimizer] = bucket
			continue
		}
		for hash, nodes := range bucket {
			dest[hash] = append(dest[hash], nodes...)
		}
	}
}

// Normalize sorts and deduplicates every occurrence list.
func (m *KmersMap) Normalize() {
	for _, bucket := range m.Buckets {
		for hash, nodes := range bucket {
			bucket[hash] = util.Dedup(nodes)
		}
	}
}

// Lookup returns the occurrence list for km, or nil when absent.
func (m *KmersMap) Lookup(km kmer.Kmer) []int32 {
	bucket, ok := m.Buckets[km.Minimizer]
	if !ok {
		return nil
	}
	return bucket[km.Hash]
}

// NumMinimizers returns the number of minimizer buckets.
func (m *KmersMap) NumMinimizers() int {
	return len(m.Buckets)
}

// NumKmers returns the number of distinct k-mers across all buckets.
func (m *KmersMap) NumKmers() int {
	count := 0
	for _, bucket := range m.Buckets {
		count += len(bucket)
	}
	return count
}

// BucketSizes returns the smallest, largest, and average bucket size in
// k-mers. The average is zero for an empty map.
func (m *KmersMap) BucketSizes() (smallest int, largest int, average float64) {
	if len(m.Buckets) == 0 {
		return 0, 0, 0
	}
	total := 0
	first := true
	for _, bucket := range m.Buckets {
		n := len(bucket)
		total += n
		if first || n < smallest {
			smallest = n
		}
		if n > largest {
			largest = n
		}
		first = false
	}
	return smallest, largest, float64(total) / float64(len(m.Buckets))
}

// MemorySize estimates the in-memory footprint of the map in bytes.
func (m *KmersMap) MemorySize() uint64 {
	size := uint64(0)
	for _, bucket := range m.Buckets {
		size += 8
		for _, nodes := range bucket {
			size += 8 + 4*uint64(len(nodes))
		}
	}
	return size
}

////////////////////////////////////////////////////////////////////////////////

type kmersMapShadow struct {
	KSize int                           `json:"kSize" yaml:"kSize"`
	MSize int                           `json:"mSize" yaml:"mSize"`
	Map   map[string]map[string][]int32 `json:"map" yaml:"map"`
}

// MarshalJSON emits the canonical form: kSize, mSize, then the two-level map
// with keys in ascending numeric order.
func (m *KmersMap) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteString(`{"kSize":`)
	buf.WriteString(strconv.Itoa(m.KSize))
	buf.WriteString(`,"mSize":`)
	buf.WriteString(strconv.Itoa(m.MSize))
	buf.WriteString(`,"map":{`)
	for i, minimizer := range util.Okeys(m.Buckets) {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strconv.FormatUint(minimizer, 10))
		buf.WriteString(`":{`)
		bucket := m.Buckets[minimizer]
		for j, hash := range util.Okeys(bucket) {
			if j > 0 {
				buf.WriteByte(',')
			}
			buf.WriteByte('"')
			buf.WriteString(strconv.FormatUint(hash, 10))
			buf.WriteString(`":[`)
			for n, node := range bucket[hash] {
				if n > 0 {
					buf.WriteByte(',')
				}
				buf.WriteString(strconv.FormatInt(int64(node), 10))
			}
			buf.WriteByte(']')
		}
		buf.WriteByte('}')
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes the canonical form.
func (m *KmersMap) UnmarshalJSON(data []byte) error {
	var shadow kmersMapShadow
	if err := json.Unmarshal(data, &shadow); err != nil {
		return fmt.Errorf("failed to unmarshal kmers map: %w", err)
	}
	return m.fromShadow(shadow)
}

// MarshalYAML emits the same canonical structure as MarshalJSON.
func (m *KmersMap) MarshalYAML() (interface{}, error) {
	mapping := &yaml.Node{Kind: yaml.MappingNode}
	for _, minimizer := range util.Okeys(m.Buckets) {
		inner := &yaml.Node{Kind: yaml.MappingNode}
		bucket := m.Buckets[minimizer]
		for _, hash := range util.Okeys(bucket) {
			list := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
			for _, node := range bucket[hash] {
				list.Content = append(list.Content, yamlScalar("!!int", strconv.FormatInt(int64(node), 10)))
			}
			inner.Content = append(inner.Content,
				yamlScalar("!!str", strconv.FormatUint(hash, 10)), list)
		}
		mapping.Content = append(mapping.Content,
			yamlScalar("!!str", strconv.FormatUint(minimizer, 10)), inner)
	}
	root := &yaml.Node{Kind: yaml.MappingNode}
	root.Content = append(root.Content,
		yamlScalar("!!str", "kSize"), yamlScalar("!!int", strconv.Itoa(m.KSize)),
		yamlScalar("!!str", "mSize"), yamlScalar("!!int", strconv.Itoa(m.MSize)),
		yamlScalar("!!str", "map"), mapping,
	)
	return root, nil
}

// UnmarshalYAML decodes the canonical form.
func (m *KmersMap) UnmarshalYAML(value *yaml.Node) error {
	var shadow kmersMapShadow
	if err := value.Decode(&shadow); err != nil {
		return fmt.Errorf("failed to unmarshal kmers map: %w", err)
	}
	return m.fromShadow(shadow)
}

func (m *KmersMap) fromShadow(shadow kmersMapShadow) error {
	m.KSize = shadow.KSize
	m.MSize = shadow.MSize
	m.Buckets = make(map[uint64]map[uint64][]int32, len(shadow.Map))
	for minimizerKey, inner := range shadow.Map {
		minimizer, err := strconv.ParseUint(minimizerKey, 10, 64)
		if err != nil {
			return fmt.Errorf("malformed minimizer key %q: %w", minimizerKey, err)
		}
		bucket := make(map[uint64][]int32, len(inner))
		for hashKey, nodes := range inner {
			hash, err := strconv.ParseUint(hashKey, 10, 64)
			if err != nil {
				return fmt.Errorf("malformed kmer key %q: %w", hashKey, err)
			}
			bucket[hash] = nodes
		}
		m.Buckets[minimizer] = bucket
	}
	return nil
}

func yamlScalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}
