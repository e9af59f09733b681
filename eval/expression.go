package eval

import (
	"strconv"
	"strings"
)

// String renders the expression in canonical form: labels quoted, '!'
// tightest, then '&', then '|', with the minimal parentheses needed to
// preserve the tree.
func (expr *Expression) String() string {
	var b strings.Builder
	expr.write(&b)
	return b.String()
}

func (expr *Expression) write(b *strings.Builder) {
	if expr.Type == Operand {
		if expr.Label != "" {
			b.WriteString(`"` + expr.Label + `"`)
			return
		}

		if v, ok := expr.GoValue.(bool); ok {
			b.WriteString(strconv.FormatBool(v))
			return
		}

		b.WriteString("<invalid>")
		return
	}

	switch expr.Operator {
	case Not:
		b.WriteString("!")
		expr.Left.writeOperand(b, expr.precedence())
	case And:
		expr.Left.writeOperand(b, expr.precedence())
		b.WriteString(" & ")
		expr.Right.writeRightOperand(b, expr.precedence())
	case Or:
		expr.Left.writeOperand(b, expr.precedence())
		b.WriteString(" | ")
		expr.Right.writeRightOperand(b, expr.precedence())
	default:
		b.WriteString("<invalid>")
	}
}

func (expr *Expression) writeOperand(b *strings.Builder, parent int) {
	if expr.precedence() > parent {
		b.WriteString("(")
		expr.write(b)
		b.WriteString(")")
		return
	}

	expr.write(b)
}

// A binary operator parses left-associatively, so a right child of the same
// precedence needs parentheses to come back with the same shape.
func (expr *Expression) writeRightOperand(b *strings.Builder, parent int) {
	if expr.precedence() >= parent {
		b.WriteString("(")
		expr.write(b)
		b.WriteString(")")
		return
	}

	expr.write(b)
}

// Smaller binds tighter; operands never need wrapping.
func (expr *Expression) precedence() int {
	if expr.Type == Operand {
		return 0
	}

	switch expr.Operator {
	case Not:
		return 1
	case And:
		return 2
	case Or:
		return 3
	}

	return 0
}
