package eval

import "errors"

func (expr *Expression) evaluateNot(labels map[string]bool) (bool, error) {
	if expr.Left == nil {
		return false, errors.New("negation is missing its operand")
	}

	v, err := Evaluate(expr.Left, labels)
	if err != nil {
		return false, err
	}

	return !v, nil
}

func (expr *Expression) evaluateAnd(labels map[string]bool) (bool, error) {
	l, err := Evaluate(expr.Left, labels)
	if err != nil {
		return false, err
	}

	if !l {
		return false, nil
	}

	return Evaluate(expr.Right, labels)
}

func (expr *Expression) evaluateOr(labels map[string]bool) (bool, error) {
	l, err := Evaluate(expr.Left, labels)
	if err != nil {
		return false, err
	}

	if l {
		return true, nil
	}

	return Evaluate(expr.Right, labels)
}
