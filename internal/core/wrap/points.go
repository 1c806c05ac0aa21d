// Package wrap computes stable line breaks over a translated cell
// buffer and answers panning queries against a fixed display width.
package wrap

import "sort"

// Kind tags a break point as removable (may be elided at a line edge,
// e.g. a word-boundary blank) or unremovable (must be preserved, e.g.
// the cell after a hyphen).
type Kind int

const (
	Removable Kind = iota + 1
	Unremovable
)

// pointSet is a sorted set of cell offsets with an optional kind per
// entry. It backs the split-point, break-point, and line-break tables.
type pointSet struct {
	keys  []int
	kinds map[int]Kind
}

func newPointSet() *pointSet {
	return &pointSet{kinds: make(map[int]Kind)}
}

func (p *pointSet) clear() {
	p.keys = p.keys[:0]
	p.kinds = make(map[int]Kind)
}

func (p *pointSet) len() int {
	return len(p.keys)
}

func (p *pointSet) add(k int, kind Kind) {
	i := sort.SearchInts(p.keys, k)
	if i < len(p.keys) && p.keys[i] == k {
		p.kinds[k] = kind
		return
	}
	p.keys = append(p.keys, 0)
	copy(p.keys[i+1:], p.keys[i:])
	p.keys[i] = k
	p.kinds[k] = kind
}

func (p *pointSet) contains(k int) bool {
	_, ok := p.kinds[k]
	return ok
}

func (p *pointSet) kindAt(k int) (Kind, bool) {
	kind, ok := p.kinds[k]
	return kind, ok
}

// floor returns the largest key <= k.
func (p *pointSet) floor(k int) (int, bool) {
	i := sort.SearchInts(p.keys, k+1)
	if i == 0 {
		return 0, false
	}
	return p.keys[i-1], true
}

// ceil returns the smallest key >= k.
func (p *pointSet) ceil(k int) (int, bool) {
	i := sort.SearchInts(p.keys, k)
	if i == len(p.keys) {
		return 0, false
	}
	return p.keys[i], true
}

// prev returns the largest key strictly below k.
func (p *pointSet) prev(k int) (int, bool) {
	return p.floor(k - 1)
}

// next returns the smallest key strictly above k.
func (p *pointSet) next(k int) (int, bool) {
	return p.ceil(k + 1)
}
