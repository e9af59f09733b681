package eval

import (
	"errors"
	"slices"
)

type OperatorType string
type ExpressionType string

const (
	And OperatorType = "and"
	Or  OperatorType = "or"
	Not OperatorType = "not"
)

var operators = []OperatorType{And, Or, Not}

func IsOperator(operator string) bool {
	return slices.Contains(operators, OperatorType(operator))
}

const (
	Operator ExpressionType = "operator"
	Operand  ExpressionType = "operand"
)

// Expression is a propositional state formula over atomic labels. An operand
// is either an atomic label (Label is set) or a boolean literal (GoValue
// holds a bool). 'not' is unary and keeps its operand in Left.
type Expression struct {
	Type     ExpressionType
	Operator OperatorType

	Label   string
	GoValue any

	Left  *Expression
	Right *Expression
}

func (expr *Expression) Evaluate(labels map[string]bool) (bool, error) {
	return Evaluate(expr, labels)
}

// Evaluate computes the truth value of expr under the given label valuation.
// A label absent from the map is false.
func Evaluate(expr *Expression, labels map[string]bool) (bool, error) {
	if expr.Type == Operand {
		if expr.Label != "" {
			return labels[expr.Label], nil
		}

		v, ok := expr.GoValue.(bool)
		if !ok {
			return false, errors.New("operand must be a label or a boolean literal")
		}

		return v, nil
	}

	if expr.Type == Operator {
		switch expr.Operator {
		case Not:
			return expr.evaluateNot(labels)
		case And:
			return expr.evaluateAnd(labels)
		case Or:
			return expr.evaluateOr(labels)
		}
	}

	return false, errors.New("unknown expression type")
}
