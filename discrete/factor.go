package discrete

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/junctree/inference"
)

var (
	// ErrTableShape indicates a table whose length is not the product of cardinalities.
	ErrTableShape = errors.New("discrete: table size does not match cardinalities")

	// ErrNegative indicates a negative or non-finite table entry.
	ErrNegative = errors.New("discrete: table entries must be finite and >= 0")

	// ErrCardinality indicates a cardinality < 1 or conflicting cardinalities.
	ErrCardinality = errors.New("discrete: invalid cardinality")

	// ErrZeroPartition indicates a clique whose combined factors are zero everywhere.
	ErrZeroPartition = errors.New("discrete: zero partition function")

	// ErrTableTooLarge guards joint tables beyond MaxTableSize entries.
	ErrTableTooLarge = errors.New("discrete: joint table too large")

	// ErrAssignment indicates a missing or out-of-range value in an Assignment.
	ErrAssignment = errors.New("discrete: invalid assignment")
)

// MaxTableSize bounds the number of entries of a clique joint.
const MaxTableSize = 1 << 24

// Assignment maps keys to values in [0, cardinality).
type Assignment map[inference.Key]int

// Factor is a non-negative table over keys.
type Factor struct {
	keys  []inference.Key
	cards []int
	table []float64
}

// NewFactor builds a factor. table is row-major, last key fastest.
// A factor over no keys holds a single scalar.
func NewFactor(keys []inference.Key, cards []int, table []float64) (*Factor, error) {
	if len(keys) != len(cards) {
		return nil, fmt.Errorf("%w: %d keys, %d cardinalities", ErrCardinality, len(keys), len(cards))
	}
	seen := make(map[inference.Key]struct{}, len(keys))
	size := 1
	for i, c := range cards {
		if c < 1 {
			return nil, fmt.Errorf("%w: %q has %d", ErrCardinality, keys[i], c)
		}
		if _, dup := seen[keys[i]]; dup {
			return nil, fmt.Errorf("%w: duplicate key %q", ErrCardinality, keys[i])
		}
		seen[keys[i]] = struct{}{}
		size *= c
		if size > MaxTableSize {
			return nil, ErrTableTooLarge
		}
	}
	if len(table) != size {
		return nil, fmt.Errorf("%w: got %d entries, want %d", ErrTableShape, len(table), size)
	}
	for _, v := range table {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, ErrNegative
		}
	}

	return &Factor{
		keys:  append([]inference.Key(nil), keys...),
		cards: append([]int(nil), cards...),
		table: append([]float64(nil), table...),
	}, nil
}

// Keys implements inference.Factor.
func (f *Factor) Keys() []inference.Key { return f.keys }

// Cards returns the cardinality of each key, aligned with Keys.
func (f *Factor) Cards() []int { return f.cards }

// Value returns the table entry at a (which may hold extra keys).
func (f *Factor) Value(a Assignment) (float64, error) {
	idx, err := index(f.keys, f.cards, a)
	if err != nil {
		return 0, err
	}

	return f.table[idx], nil
}

// String renders the factor as "T(a,b)".
func (f *Factor) String() string {
	return fmt.Sprintf("T(%s)", inference.FormatKeys(f.keys))
}

// index computes the row-major offset of a restricted to keys.
func index(keys []inference.Key, cards []int, a Assignment) (int, error) {
	idx := 0
	for i, k := range keys {
		v, ok := a[k]
		if !ok || v < 0 || v >= cards[i] {
			return 0, fmt.Errorf("%w: %q", ErrAssignment, k)
		}
		idx = idx*cards[i] + v
	}

	return idx, nil
}
