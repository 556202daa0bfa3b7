package beat

import (
	"sort"
	"strconv"
	"strings"
)

// Pattern is a set of 1-based beat indices that produce a hit. The zero
// value is an empty pattern ready to use.
type Pattern struct {
	idx map[int]struct{}
}

func NewPattern(indices ...int) Pattern {
	p := Pattern{idx: make(map[int]struct{}, len(indices))}
	for _, i := range indices {
		p.Add(i)
	}
	return p
}

func (p Pattern) Contains(i int) bool {
	_, ok := p.idx[i]
	return ok
}

// Add ignores indices below 1; indices above a track's length are kept and
// simply never match.
func (p *Pattern) Add(i int) {
	if i < 1 {
		return
	}
	if p.idx == nil {
		p.idx = map[int]struct{}{}
	}
	p.idx[i] = struct{}{}
}

func (p *Pattern) Remove(i int) { delete(p.idx, i) }

// Toggle flips membership of i and returns the new state.
func (p *Pattern) Toggle(i int) bool {
	if p.Contains(i) {
		p.Remove(i)
		return false
	}
	p.Add(i)
	return p.Contains(i)
}

func (p Pattern) Len() int { return len(p.idx) }

// Indices returns the members in ascending order.
func (p Pattern) Indices() []int {
	out := make([]int, 0, len(p.idx))
	for i := range p.idx {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

func (p Pattern) Clone() Pattern { return NewPattern(p.Indices()...) }

func (p Pattern) String() string {
	parts := make([]string, 0, len(p.idx))
	for _, i := range p.Indices() {
		parts = append(parts, strconv.Itoa(i))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// ParsePattern reads a comma separated index list such as "1,3,4", with or
// without the braces String adds. Entries that are not positive integers are
// skipped.
func ParsePattern(s string) Pattern {
	p := NewPattern()
	for _, f := range strings.Split(strings.Trim(strings.TrimSpace(s), "{}"), ",") {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			continue
		}
		p.Add(n)
	}
	return p
}
