package arith_test

import (
	"testing"

	"orbit/internal/ast"
	"orbit/internal/ast/arith"
	"orbit/internal/diag"
)

func TestEvalNested(t *testing.T) {
	tree := arith.Mul(arith.NewInt(2), arith.Add(arith.NewInt(3), arith.NewInt(5)))

	var first, second arith.Evaluator
	if err := first.Visit(tree); err != nil {
		t.Fatalf("first: %v", err)
	}
	if err := second.Visit(tree); err != nil {
		t.Fatalf("second: %v", err)
	}
	if first.Value() != 16 || second.Value() != 16 {
		t.Fatalf("got %d and %d, want 16", first.Value(), second.Value())
	}
}

func TestEvalTable(t *testing.T) {
	tests := []struct {
		name string
		tree arith.Node
		want int
	}{
		{"literal", arith.NewInt(7), 7},
		{"sub", arith.Sub(arith.NewInt(10), arith.NewInt(4)), 6},
		{"div", arith.Div(arith.NewInt(9), arith.NewInt(2)), 4},
		{"left nested", arith.Sub(arith.Sub(arith.NewInt(10), arith.NewInt(3)), arith.NewInt(2)), 5},
		{"right nested", arith.Sub(arith.NewInt(10), arith.Sub(arith.NewInt(3), arith.NewInt(2))), 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := arith.Eval(tt.tree)
			if err != nil {
				t.Fatalf("Eval: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDivByZero(t *testing.T) {
	_, err := arith.Eval(arith.Div(arith.NewInt(1), arith.Sub(arith.NewInt(2), arith.NewInt(2))))
	d, ok := diag.As(err)
	if !ok || d.Kind() != diag.KindProblem || d.Code() != diag.ASTDivByZero {
		t.Fatalf("want div-by-zero problem, got %v", err)
	}
	if len(d.Solutions()) == 0 {
		t.Fatalf("problem should carry solutions")
	}
}

func TestBadArity(t *testing.T) {
	op := arith.Add(arith.NewInt(1), arith.NewInt(2))
	op.AppendChild(arith.NewInt(3))
	_, err := arith.Eval(op)
	d, ok := diag.As(err)
	if !ok || d.Code() != diag.ASTBadArity || !d.Kind().IsFatal() {
		t.Fatalf("want bad arity, got %v", err)
	}
}

func TestPrinter(t *testing.T) {
	tree := arith.Mul(arith.NewInt(2), arith.Add(arith.NewInt(3), arith.NewInt(5)))
	got, err := arith.Sprint(tree)
	if err != nil {
		t.Fatal(err)
	}
	if got != "(* 2 (+ 3 5))" {
		t.Fatalf("got %q", got)
	}
}

func TestLiteralIdentity(t *testing.T) {
	a, b := arith.NewInt(1), arith.NewInt(1)
	if ast.Same[arith.Visitor](a, b) {
		t.Fatalf("two literals with equal values must be distinct nodes")
	}
	tree := arith.Add(a, b)
	if err := ast.CheckTree[arith.Visitor](tree); err != nil {
		t.Fatalf("CheckTree: %v", err)
	}
	if err := ast.CheckTree[arith.Visitor](arith.Add(a, a)); err == nil {
		t.Fatalf("reusing a node as both operands must be rejected")
	}
}

func TestParseOperator(t *testing.T) {
	for _, op := range []arith.Operator{arith.OpAdd, arith.OpSub, arith.OpMul, arith.OpDiv} {
		got, ok := arith.ParseOperator(op.Symbol())
		if !ok || got != op {
			t.Fatalf("round trip of %s failed", op)
		}
	}
	if _, ok := arith.ParseOperator("%"); ok {
		t.Fatalf("unknown symbol accepted")
	}
}
