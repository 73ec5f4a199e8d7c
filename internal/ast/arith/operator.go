package arith

import "fmt"

type Operator uint8

const (
	OpAdd Operator = iota
	OpSub
	OpMul
	OpDiv
)

func (o Operator) Symbol() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return fmt.Sprintf("op(%d)", uint8(o))
	}
}

func (o Operator) String() string { return o.Symbol() }

// ParseOperator maps a symbol back to its operator.
func ParseOperator(s string) (Operator, bool) {
	switch s {
	case "+":
		return OpAdd, true
	case "-":
		return OpSub, true
	case "*":
		return OpMul, true
	case "/":
		return OpDiv, true
	}
	return 0, false
}
