package ast

import "github.com/google/uuid"

type (
	// NodeID is the opaque identity of a node, fixed for its lifetime.
	NodeID struct{ u uuid.UUID }
	// DataID is the opaque identity of a piece of attached node data.
	DataID struct{ u uuid.UUID }
)

var (
	NoNodeID NodeID
	NoDataID DataID
)

func NewNodeID() NodeID { return NodeID{u: uuid.New()} }
func NewDataID() DataID { return DataID{u: uuid.New()} }

func (id NodeID) IsValid() bool { return id != NoNodeID }
func (id DataID) IsValid() bool { return id != NoDataID }

func (id NodeID) String() string { return id.u.String() }
func (id DataID) String() string { return id.u.String() }
