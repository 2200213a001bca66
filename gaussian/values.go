package gaussian

import (
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/junctree/inference"
)

// VectorValues maps keys to vector values.
type VectorValues map[inference.Key][]float64

// Keys returns the keys sorted lexicographically.
func (v VectorValues) Keys() []inference.Key {
	out := make([]inference.Key, 0, len(v))
	for k := range v {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// String renders one "key: [x y]" line per key, sorted.
func (v VectorValues) String() string {
	var sb strings.Builder
	for _, k := range v.Keys() {
		fmt.Fprintf(&sb, "%s: %.6g\n", k, v[k])
	}

	return sb.String()
}
