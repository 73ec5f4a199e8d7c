package arith

import (
	"strconv"
	"strings"
)

// Printer renders a tree as an s-expression, e.g. "(* 2 (+ 3 5))".
type Printer struct {
	sb strings.Builder
}

func (p *Printer) String() string { return p.sb.String() }

func (p *Printer) VisitInt(n *Int) error {
	p.sb.WriteString(strconv.Itoa(n.Value))
	return nil
}

func (p *Printer) VisitOp(n *Op) error {
	p.sb.WriteByte('(')
	p.sb.WriteString(n.Operator.Symbol())
	for _, c := range n.Children() {
		p.sb.WriteByte(' ')
		if err := c.Accept(p); err != nil {
			return err
		}
	}
	p.sb.WriteByte(')')
	return nil
}

// Sprint renders n.
func Sprint(n Node) (string, error) {
	var p Printer
	if err := n.Accept(&p); err != nil {
		return "", err
	}
	return p.String(), nil
}
