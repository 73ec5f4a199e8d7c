package diag

import (
	"math"
	"sort"

	"fortio.org/safecast"
)

// Bag collects diagnostics produced by independent runs, up to a limit.
type Bag struct {
	items []*Diagnostic
	max   uint16
}

// NewBag creates a Bag. Limits beyond uint16 are clamped; non-positive
// limits fall back to 100.
func NewBag(limit int) *Bag {
	if limit <= 0 {
		limit = 100
	}
	max, err := safecast.Conv[uint16](limit)
	if err != nil {
		max = math.MaxUint16
	}
	return &Bag{
		items: make([]*Diagnostic, 0, min(int(max), 64)),
		max:   max,
	}
}

// Add appends d. Returns false when the limit is reached or d is nil.
func (b *Bag) Add(d *Diagnostic) bool {
	if d == nil || len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Len() int { return len(b.items) }

func (b *Bag) Cap() uint16 { return b.max }

// Items returns the backing slice. Do not modify it.
func (b *Bag) Items() []*Diagnostic { return b.items }

// HasFatal reports whether any collected diagnostic is fatal.
func (b *Bag) HasFatal() bool {
	for _, d := range b.items {
		if d.kind.IsFatal() {
			return true
		}
	}
	return false
}

// Sort orders by path, then kind (fatal first), then code.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.path != dj.path {
			return di.path < dj.path
		}
		if di.kind != dj.kind {
			return di.kind > dj.kind
		}
		return di.code < dj.code
	})
}
