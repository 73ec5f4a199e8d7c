package arith

import (
	"orbit/internal/diag"
)

// Evaluator computes the integer value of a tree. Each operator visit
// evaluates its children with fresh evaluators, so one instance only holds
// the result of the last node it visited.
type Evaluator struct {
	value int
}

func (e *Evaluator) Value() int { return e.value }

// Visit dispatches n to the evaluator.
func (e *Evaluator) Visit(n Node) error { return n.Accept(e) }

func (e *Evaluator) VisitInt(n *Int) error {
	e.value = n.Value
	return nil
}

func (e *Evaluator) VisitOp(n *Op) error {
	if n.NumChildren() != 2 {
		return diag.Fatalf(diag.ASTBadArity, "operator %s expects 2 operands, got %d", n.Operator, n.NumChildren())
	}
	var lhs, rhs Evaluator
	if err := lhs.Visit(n.Child(0)); err != nil {
		return err
	}
	if err := rhs.Visit(n.Child(1)); err != nil {
		return err
	}
	switch n.Operator {
	case OpAdd:
		e.value = lhs.value + rhs.value
	case OpSub:
		e.value = lhs.value - rhs.value
	case OpMul:
		e.value = lhs.value * rhs.value
	case OpDiv:
		if rhs.value == 0 {
			return diag.Problem(diag.ASTDivByZero, "division by zero",
				"check the right-hand operand of the division",
				"guard the division with a non-zero test")
		}
		e.value = lhs.value / rhs.value
	default:
		return diag.Fatalf(diag.ASTUnhandledNode, "unknown operator %s", n.Operator)
	}
	return nil
}

// Eval is a convenience wrapper around a fresh Evaluator.
func Eval(n Node) (int, error) {
	var e Evaluator
	if err := e.Visit(n); err != nil {
		return 0, err
	}
	return e.value, nil
}
