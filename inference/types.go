package inference

import (
	"fmt"
	"sort"
	"strings"
)

// Key identifies one unknown of the model.
type Key string

// Ordering is a total elimination order: Ordering[0] is eliminated first.
type Ordering []Key

// Index maps every key of the ordering to its position.
// Duplicates keep their last position; call Validate first.
// Complexity: O(n).
func (o Ordering) Index() map[Key]int {
	idx := make(map[Key]int, len(o))
	var i int
	for i = range o {
		idx[o[i]] = i
	}

	return idx
}

// Validate rejects empty keys and duplicates.
// Returns a *UsageError naming the first offending key.
func (o Ordering) Validate() error {
	seen := make(map[Key]struct{}, len(o))
	for _, k := range o {
		if k == "" {
			return &UsageError{Reason: "ordering contains an empty key"}
		}
		if _, dup := seen[k]; dup {
			return &UsageError{Key: k, Reason: "key appears twice in ordering"}
		}
		seen[k] = struct{}{}
	}

	return nil
}

// String renders the ordering as "[a b c]".
func (o Ordering) String() string {
	parts := make([]string, len(o))
	for i, k := range o {
		parts[i] = string(k)
	}

	return "[" + strings.Join(parts, " ") + "]"
}

// SortByOrder sorts keys in place by their elimination position in idx.
// Keys missing from idx sort last, lexicographically among themselves.
func SortByOrder(keys []Key, idx map[Key]int) {
	sort.SliceStable(keys, func(i, j int) bool {
		pi, okI := idx[keys[i]]
		pj, okJ := idx[keys[j]]
		switch {
		case okI && okJ:
			return pi < pj
		case okI:
			return true
		case okJ:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
}

// SortedKeys returns a lexicographically sorted copy of keys without duplicates.
func SortedKeys(keys []Key) []Key {
	set := make(map[Key]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	out := make([]Key, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// FormatKeys renders keys as "a,b,c"; used by String methods across packages.
func FormatKeys(keys []Key) string {
	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(string(k))
	}

	return sb.String()
}

// formatKeyList is FormatKeys wrapped in braces, for error messages.
func formatKeyList(keys []Key) string {
	return fmt.Sprintf("{%s}", FormatKeys(keys))
}
