// Package fix represents and applies textual edits to source files.
package fix

import (
	"fmt"
	"sort"
)

// Edit replaces the byte range [Start, End) with Text. A removal has
// empty Text.
type Edit struct {
	Start int
	End   int
	Text  string
}

// Overlaps reports whether two edits touch intersecting ranges.
func (e Edit) Overlaps(other Edit) bool {
	return e.Start < other.End && other.Start < e.End
}

// Apply applies a set of non-overlapping edits to text and returns
// the result. Edits may be given in any order. Overlapping or
// out-of-range edits are an error: the caller is expected to have
// filtered conflicting fixes before applying.
func Apply(text string, edits []Edit) (string, error) {
	if len(edits) == 0 {
		return text, nil
	}
	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	for i, e := range sorted {
		if e.Start < 0 || e.End > len(text) || e.Start > e.End {
			return "", fmt.Errorf("edit range [%d,%d) out of bounds for %d-byte text", e.Start, e.End, len(text))
		}
		if i > 0 && sorted[i-1].End > e.Start {
			return "", fmt.Errorf("overlapping edits at offsets %d and %d", sorted[i-1].Start, e.Start)
		}
	}

	var out []byte
	last := 0
	for _, e := range sorted {
		out = append(out, text[last:e.Start]...)
		out = append(out, e.Text...)
		last = e.End
	}
	out = append(out, text[last:]...)
	return string(out), nil
}

// Disjoint returns the subset of edits that do not overlap an
// earlier-starting accepted edit. The dropped edits are expected to
// be re-discovered on the next analysis pass over the fixed text.
func Disjoint(edits []Edit) []Edit {
	if len(edits) < 2 {
		return edits
	}
	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	out := sorted[:1]
	for _, e := range sorted[1:] {
		if !out[len(out)-1].Overlaps(e) {
			out = append(out, e)
		}
	}
	return out
}
