// Package arith is a small integer-expression node family: literals and
// binary operators. It is the reference user of package ast.
package arith

import (
	"orbit/internal/ast"
)

// Visitor handles every arith node variant.
type Visitor interface {
	VisitInt(*Int) error
	VisitOp(*Op) error
}

// Node is any arith node.
type Node = ast.Node[Visitor]

const (
	KindInt ast.Kind = "int"
	KindOp  ast.Kind = "op"
)

// Int is an integer literal.
type Int struct {
	ast.Base[Visitor]
	Value int
}

func NewInt(v int) *Int {
	return &Int{Base: ast.NewBase[Visitor](KindInt), Value: v}
}

func (n *Int) Accept(v Visitor) error { return v.VisitInt(n) }

// Op applies Operator to its two children, left then right.
type Op struct {
	ast.Base[Visitor]
	Operator Operator
}

func NewOp(op Operator, lhs, rhs Node) *Op {
	return &Op{Base: ast.NewBase(KindOp, lhs, rhs), Operator: op}
}

func (n *Op) Accept(v Visitor) error { return v.VisitOp(n) }

func Add(lhs, rhs Node) *Op { return NewOp(OpAdd, lhs, rhs) }
func Sub(lhs, rhs Node) *Op { return NewOp(OpSub, lhs, rhs) }
func Mul(lhs, rhs Node) *Op { return NewOp(OpMul, lhs, rhs) }
func Div(lhs, rhs Node) *Op { return NewOp(OpDiv, lhs, rhs) }
