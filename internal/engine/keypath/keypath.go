// Package keypath encodes the logical route from an observation root to a nested value.
//
// A Path uses one of two representations, chosen when the root path is created
// and inherited by every path derived from it: a dotted string, or a list of
// key segments. Paths are immutable values.
package keypath

import (
	"iter"
	"slices"
	"strings"

	"github.com/Viskhan-95/golden-chicken/internal/engine/value"
)

// Separator joins segments in the dotted representation.
const Separator = "."

// Path is a logical path. The zero value is the dotted root path.
type Path struct {
	segmented bool
	symbolic  bool
	dotted    string
	segs      []value.Key
}

// Root returns the empty path in the requested representation.
func Root(segmented bool) Path {
	return Path{segmented: segmented}
}

// Parse builds a dotted path from its text form.
func Parse(s string) Path {
	return Path{dotted: s}
}

// Of builds a segmented path from keys.
func Of(keys ...any) Path {
	p := Root(true)
	for _, k := range keys {
		p = p.Concat(value.KeyOf(k))
	}
	return p
}

// Segmented reports whether the path uses the segment representation.
func (p Path) Segmented() bool { return p.segmented }

// IsRoot reports whether the path is empty.
func (p Path) IsRoot() bool {
	if p.segmented {
		return len(p.segs) == 0
	}
	return p.dotted == ""
}

// Len returns the number of segments.
func (p Path) Len() int {
	if p.segmented {
		return len(p.segs)
	}
	if p.dotted == "" {
		return 0
	}
	return strings.Count(p.dotted, Separator) + 1
}

// Concat appends a key. The empty key leaves the path unchanged.
func (p Path) Concat(k value.Key) Path {
	if k.IsEmpty() {
		return p
	}
	out := Path{segmented: p.segmented, symbolic: p.symbolic || k.IsSymbol()}
	if p.segmented {
		out.segs = append(slices.Clip(p.segs), k)
		return out
	}
	if p.dotted == "" {
		out.dotted = k.String()
	} else {
		out.dotted = p.dotted + Separator + k.String()
	}
	return out
}

// Initial drops the last segment. The root is its own initial.
func (p Path) Initial() Path {
	if p.segmented {
		if len(p.segs) == 0 {
			return p
		}
		return p.withSegs(p.segs[:len(p.segs)-1])
	}
	i := strings.LastIndex(p.dotted, Separator)
	if i < 0 {
		return Path{symbolic: false}
	}
	return Path{dotted: p.dotted[:i], symbolic: p.symbolic}
}

// Last returns the final segment, or the empty key at the root.
func (p Path) Last() value.Key {
	if p.segmented {
		if len(p.segs) == 0 {
			return value.Key{}
		}
		return p.segs[len(p.segs)-1]
	}
	if p.dotted == "" {
		return value.Key{}
	}
	return value.NewKey(p.dotted[strings.LastIndex(p.dotted, Separator)+1:])
}

// After returns the part of p that remains once prefix is consumed.
// When prefix is not a prefix of p, p is returned unchanged.
func (p Path) After(prefix Path) Path {
	if prefix.IsRoot() || !p.IsSubPath(prefix) {
		return p
	}
	if p.segmented {
		return p.withSegs(p.segs[len(prefix.segs):])
	}
	if len(p.dotted) == len(prefix.dotted) {
		return Path{}
	}
	return Path{dotted: p.dotted[len(prefix.dotted)+len(Separator):], symbolic: p.symbolic}
}

// Walk visits the segments in order until visit returns false. The dotted form is
// scanned in place without building a segment slice.
func (p Path) Walk(visit func(value.Key) bool) {
	if p.segmented {
		for _, k := range p.segs {
			if !visit(k) {
				return
			}
		}
		return
	}
	if p.dotted == "" {
		return
	}
	start := 0
	for i := 0; i <= len(p.dotted); i++ {
		if i < len(p.dotted) && !strings.HasPrefix(p.dotted[i:], Separator) {
			continue
		}
		if !visit(value.NewKey(p.dotted[start:i])) {
			return
		}
		start = i + len(Separator)
	}
}

// All returns the segments as a range-over-func sequence.
func (p Path) All() iter.Seq[value.Key] {
	return p.Walk
}

// Keys returns the segments as a fresh slice.
func (p Path) Keys() []value.Key {
	return slices.Collect(p.All())
}

// IsSubPath reports whether prefix is a segment-wise prefix of p. A path is a sub-path of itself.
func (p Path) IsSubPath(prefix Path) bool {
	if prefix.IsRoot() {
		return true
	}
	if p.segmented != prefix.segmented {
		return false
	}
	if p.segmented {
		if len(prefix.segs) > len(p.segs) {
			return false
		}
		for i, k := range prefix.segs {
			if !k.Equal(p.segs[i]) {
				return false
			}
		}
		return true
	}
	return p.dotted == prefix.dotted || strings.HasPrefix(p.dotted, prefix.dotted+Separator)
}

// IsStrictSubPath reports whether p lies strictly below ancestor. Paths that
// went through a symbol key are never strict sub-paths of anything.
func (p Path) IsStrictSubPath(ancestor Path) bool {
	if p.symbolic || p.IsRoot() {
		return false
	}
	return !p.Equal(ancestor) && p.IsSubPath(ancestor)
}

// Equal compares two paths segment by segment.
func (p Path) Equal(o Path) bool {
	if p.segmented != o.segmented {
		return false
	}
	if p.segmented {
		return slices.EqualFunc(p.segs, o.segs, value.Key.Equal)
	}
	return p.dotted == o.dotted
}

// String renders the path in dotted form.
func (p Path) String() string {
	if !p.segmented {
		return p.dotted
	}
	parts := make([]string, len(p.segs))
	for i, k := range p.segs {
		parts[i] = k.String()
	}
	return strings.Join(parts, Separator)
}

// Resolve follows the path from root and returns the value it reaches.
func (p Path) Resolve(root any) (any, bool) {
	cur, found := root, true
	p.Walk(func(k value.Key) bool {
		cur, found = value.Lookup(cur, k)
		return found
	})
	return cur, found
}

func (p Path) withSegs(segs []value.Key) Path {
	out := Path{segmented: true, segs: segs}
	for _, k := range segs {
		if k.IsSymbol() {
			out.symbolic = true
			break
		}
	}
	return out
}
