package ast

import "slices"

// NodeData is metadata attached to a node by an earlier phase. Membership in
// a DataSet is decided by DataID alone, never by content.
type NodeData interface {
	DataID() DataID
}

// Tag gives a struct its own data identity. Embed it:
//
//	type TypeTag struct {
//		ast.Tag
//		Name string
//	}
type Tag struct {
	id DataID
}

func NewTag() Tag { return Tag{id: NewDataID()} }

func (t Tag) DataID() DataID { return t.id }

// DataSet is an insertion-ordered identity set of NodeData.
type DataSet struct {
	items []NodeData
	index map[DataID]int
}

// Add inserts d. It returns false when an item with the same identity is
// already present or d has no identity.
func (s *DataSet) Add(d NodeData) bool {
	if d == nil || !d.DataID().IsValid() {
		return false
	}
	if s.index == nil {
		s.index = make(map[DataID]int)
	}
	if _, ok := s.index[d.DataID()]; ok {
		return false
	}
	s.index[d.DataID()] = len(s.items)
	s.items = append(s.items, d)
	return true
}

func (s *DataSet) Has(d NodeData) bool {
	if d == nil {
		return false
	}
	_, ok := s.index[d.DataID()]
	return ok
}

// Remove drops d, keeping the order of the rest.
func (s *DataSet) Remove(d NodeData) bool {
	if d == nil {
		return false
	}
	i, ok := s.index[d.DataID()]
	if !ok {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	delete(s.index, d.DataID())
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j].DataID()] = j
	}
	return true
}

func (s *DataSet) Len() int { return len(s.items) }

// All returns the items in insertion order.
func (s *DataSet) All() []NodeData { return slices.Clone(s.items) }

// Find returns the first item of type T.
func Find[T NodeData](s *DataSet) (T, bool) {
	for _, d := range s.items {
		if v, ok := d.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}
