package logic

import (
	"fmt"
	"strconv"
	"strings"

	"pctl/eval"
)

type parser struct {
	t         *tokenizer
	lookahead token
}

func NewParser(text string) *parser {
	p := &parser{t: newTokenizer(text)}

	return p
}

// ParseFormulas parses one or more operator formulas from text. Formulas may
// be separated by semicolons or whitespace (including newlines); one Formula
// is returned per formula in input order. Each call uses a fresh parser, so
// successive calls are fully independent.
func ParseFormulas(text string) ([]Formula, error) {
	return NewParser(text).Parse()
}

func (p *parser) Parse() ([]Formula, error) {
	err := p.moveToNextToken()
	if err != nil {
		return nil, err
	}

	formulas := []Formula{}

	for {
		for p.lookahead._type == endOfFormula {
			if err := p.moveToNextToken(); err != nil {
				return nil, err
			}
		}

		if p.lookahead == tokenNoop {
			break
		}

		f, err := p.formula()
		if err != nil {
			return nil, err
		}

		formulas = append(formulas, f)
	}

	if len(formulas) == 0 {
		return nil, p.errorf("expected a formula, but got nothing")
	}

	return formulas, nil
}

func (p *parser) formula() (Formula, error) {
	switch p.lookahead._type {
	case probabilityKeyword:
		if _, err := p.consume(); err != nil {
			return nil, err
		}

		bound, err := p.bound()
		if err != nil {
			return nil, err
		}

		path, err := p.bracketedPathFormula()
		if err != nil {
			return nil, err
		}

		return &ProbabilityOperator{operatorFormula: operatorFormula{path: path, bound: bound}}, nil
	case rewardKeyword:
		if _, err := p.consume(); err != nil {
			return nil, err
		}

		// After 'R' a '[' can only start a reward qualifier; the path
		// bracket comes after the bound.
		model := ""
		if p.lookahead._type == leftBracket {
			var err error
			model, err = p.rewardQualifier()
			if err != nil {
				return nil, err
			}
		}

		bound, err := p.bound()
		if err != nil {
			return nil, err
		}

		path, err := p.bracketedPathFormula()
		if err != nil {
			return nil, err
		}

		return &RewardOperator{operatorFormula: operatorFormula{path: path, bound: bound}, Model: model}, nil
	}

	return nil, p.errorf("expected operator keyword 'P' or 'R', but got '%s'", p.lookahead.strValue)
}

func (p *parser) rewardQualifier() (string, error) {
	if _, err := p.consume(); err != nil {
		return "", err
	}

	if p.lookahead._type != identifier {
		return "", p.errorf("expected reward model name, but got '%s'", p.lookahead.strValue)
	}

	tk, err := p.consume()
	if err != nil {
		return "", err
	}

	if p.lookahead._type != rightBracket {
		return "", p.errorf("expected ']' after reward model name, but got '%s'", p.lookahead.strValue)
	}

	if _, err := p.consume(); err != nil {
		return "", err
	}

	return tk.strValue, nil
}

func (p *parser) bound() (*Bound, error) {
	if p.lookahead._type == unboundedQuery {
		if _, err := p.consume(); err != nil {
			return nil, err
		}

		return nil, nil
	}

	if !p.lookahead.isComparisonOperator() {
		return nil, p.errorf("expected bound ('=?' or a comparison), but got '%s'", p.lookahead.strValue)
	}

	op, err := p.consume()
	if err != nil {
		return nil, err
	}

	if p.lookahead._type != numberLiteral {
		return nil, p.errorf("expected threshold after '%s', but got '%s'", op.strValue, p.lookahead.strValue)
	}

	num, err := p.consume()
	if err != nil {
		return nil, err
	}

	return &Bound{Comparison: comparisonFromToken(op._type), Threshold: num.goValue.(float64)}, nil
}

func (p *parser) bracketedPathFormula() (*PathFormula, error) {
	if p.lookahead._type != leftBracket {
		return nil, p.errorf("expected '[' before path formula, but got '%s'", p.lookahead.strValue)
	}

	if _, err := p.consume(); err != nil {
		return nil, err
	}

	pf, err := p.pathFormula()
	if err != nil {
		return nil, err
	}

	if p.lookahead._type != rightBracket {
		return nil, p.errorf("expected ']' after path formula, but got '%s'", p.lookahead.strValue)
	}

	if _, err := p.consume(); err != nil {
		return nil, err
	}

	return pf, nil
}

func (p *parser) pathFormula() (*PathFormula, error) {
	switch p.lookahead._type {
	case eventuallyKeyword, globallyKeyword, nextKeyword:
		tk, err := p.consume()
		if err != nil {
			return nil, err
		}

		var op PathOperator
		switch tk._type {
		case eventuallyKeyword:
			op = Eventually
		case globallyKeyword:
			op = Globally
		case nextKeyword:
			op = Next
		}

		steps := noSteps
		if op != Next && p.lookahead._type == lessEqual {
			steps, err = p.stepBound()
			if err != nil {
				return nil, err
			}
		}

		state, err := p.stateFormula()
		if err != nil {
			return nil, err
		}

		return &PathFormula{Operator: op, Steps: steps, Right: state}, nil
	}

	left, err := p.stateFormula()
	if err != nil {
		return nil, err
	}

	if p.lookahead._type != untilKeyword {
		return &PathFormula{Operator: State, Steps: noSteps, Right: left}, nil
	}

	if _, err := p.consume(); err != nil {
		return nil, err
	}

	steps := noSteps
	if p.lookahead._type == lessEqual {
		steps, err = p.stepBound()
		if err != nil {
			return nil, err
		}
	}

	right, err := p.stateFormula()
	if err != nil {
		return nil, err
	}

	return &PathFormula{Operator: Until, Steps: steps, Left: left, Right: right}, nil
}

func (p *parser) stepBound() (int, error) {
	if _, err := p.consume(); err != nil {
		return 0, err
	}

	if p.lookahead._type != numberLiteral {
		return 0, p.errorf("expected step bound after '<=', but got '%s'", p.lookahead.strValue)
	}

	tk, err := p.consume()
	if err != nil {
		return 0, err
	}

	if strings.Contains(tk.strValue, ".") {
		return 0, &ParseError{
			Line:    tk.line,
			Column:  tk.column,
			Message: fmt.Sprintf("step bound must be an integer, but got '%s'", tk.strValue),
		}
	}

	return strconv.Atoi(tk.strValue)
}

func (p *parser) stateFormula() (*eval.Expression, error) {
	body := make([]token, 0)
	for {
		if !p.lookahead.isStateToken() {
			break
		}

		tk, err := p.consume()
		if err != nil {
			return nil, err
		}

		body = append(body, tk)
	}

	if len(body) == 0 {
		return nil, p.errorf("expected state formula, but got '%s'", p.lookahead.strValue)
	}

	if err := checkParenthesesBalance(body); err != nil {
		return nil, err
	}

	if err := checkStateFormulaSyntax(body); err != nil {
		return nil, err
	}

	return infixToExpressionTree(body)
}

func infixToExpressionTree(tokens []token) (*eval.Expression, error) {
	t, err := infixToPostfix(tokens)
	if err != nil {
		return nil, err
	}

	return postfixToExpressionTree(t)
}

func infixToPostfix(tokens []token) ([]token, error) {
	if len(tokens) == 0 {
		return nil, &ParseError{Line: 1, Column: 1, Message: "no tokens given"}
	}

	s := stack[token]{}
	postfix := make([]token, 0, len(tokens))

	for _, tk := range tokens {
		if tk.isLeftParenthesis() {
			s.push(tk)
		} else if tk.isRightParenthesis() {
			for tki := s.pop(); tki != tokenNoop; tki = s.pop() {
				if tki.isLeftParenthesis() {
					break
				}
				postfix = append(postfix, tki)
			}
		} else if tk.isStateOperand() {
			postfix = append(postfix, tk)
		} else if tk.isStateOperator() {
			for tki := s.pop(); tki != tokenNoop; tki = s.pop() {
				if tk.hasLowerOrSamePrecedenceThan(tki) && !tki.isLeftParenthesis() {
					postfix = append(postfix, tki)
					continue
				}
				s.push(tki)
				break
			}
			s.push(tk)
		} else {
			return nil, &ParseError{
				Line:    tk.line,
				Column:  tk.column,
				Message: fmt.Sprintf("token '%s' is invalid as part of a state formula", tk.strValue),
			}
		}
	}

	for tki := s.pop(); tki != tokenNoop; tki = s.pop() {
		if !tki.isParenthesis() {
			postfix = append(postfix, tki)
		}
	}

	return postfix, nil
}

func postfixToExpressionTree(tokens []token) (*eval.Expression, error) {
	if len(tokens) == 0 {
		return nil, &ParseError{Line: 1, Column: 1, Message: "no tokens given"}
	}

	s := stack[*eval.Expression]{}

	for _, tk := range tokens {
		if tk.isStateOperand() {
			expr := &eval.Expression{Type: eval.Operand}
			if tk._type == labelLiteral {
				expr.Label = tk.strValue
			} else {
				expr.GoValue = tk.goValue
			}
			s.push(expr)
		} else if tk.isStateOperator() {
			if !eval.IsOperator(string(tk._type)) {
				return nil, &ParseError{
					Line:    tk.line,
					Column:  tk.column,
					Message: fmt.Sprintf("token '%s' is not a valid operator", tk.strValue),
				}
			}

			if tk._type == not {
				operand := s.pop()
				if operand == nil {
					return nil, &ParseError{
						Line:    tk.line,
						Column:  tk.column,
						Message: "negation is missing its operand",
					}
				}

				s.push(&eval.Expression{
					Type:     eval.Operator,
					Operator: eval.Not,
					Left:     operand,
				})
				continue
			}

			right := s.pop()
			left := s.pop()
			if left == nil || right == nil {
				return nil, &ParseError{
					Line:    tk.line,
					Column:  tk.column,
					Message: fmt.Sprintf("operator '%s' is missing an operand", tk.strValue),
				}
			}

			s.push(&eval.Expression{
				Type:     eval.Operator,
				Operator: eval.OperatorType(tk._type),
				Left:     left,
				Right:    right,
			})
		}
	}

	return s.pop(), nil
}

func checkParenthesesBalance(tokens []token) error {
	unclosedParentheses := stack[token]{}
	for _, t := range tokens {
		if t.isLeftParenthesis() {
			unclosedParentheses.push(t)
		} else if t.isRightParenthesis() {
			tk := unclosedParentheses.pop()
			if tk == tokenNoop {
				return &ParseError{Line: t.line, Column: t.column, Message: "unexpected closing parenthesis"}
			}
		}
	}

	if len(unclosedParentheses) > 0 {
		tk := unclosedParentheses.pop()
		return &ParseError{
			Line:    tk.line,
			Column:  tk.column,
			Message: "opening parenthesis is missing its closing parenthesis",
		}
	}

	return nil
}

func checkStateFormulaSyntax(tokens []token) error {
	if len(tokens) == 0 {
		return &ParseError{Line: 1, Column: 1, Message: "empty state formula"}
	}

	if err := checkParenthesesSyntax(tokens); err != nil {
		return err
	}

	var previousToken token
	isPreviousOperand := false
	isPreviousOperator := false

	for i, t := range tokens {
		if t.isParenthesis() {
			// Adjacency around parentheses is handled by checkParenthesesSyntax;
			// a parenthesized group behaves like the operand/operator on its edge.
			previousToken = t
			isPreviousOperand = t.isRightParenthesis()
			isPreviousOperator = false
			continue
		}

		if !t.isStateToken() {
			return &ParseError{
				Line:    t.line,
				Column:  t.column,
				Message: fmt.Sprintf("'%s' is not valid as part of a state formula", t.strValue),
			}
		}

		if i == 0 && t.isBinaryStateOperator() {
			return &ParseError{
				Line:    t.line,
				Column:  t.column,
				Message: fmt.Sprintf("can't start state formula with operator '%s'", t.strValue),
			}
		}

		if i == len(tokens)-1 && t.isStateOperator() {
			return &ParseError{
				Line:    t.line,
				Column:  t.column,
				Message: fmt.Sprintf("can't end state formula with operator '%s'", t.strValue),
			}
		}

		if isPreviousOperand && (t.isStateOperand() || t._type == not) {
			return &ParseError{
				Line:    t.line,
				Column:  t.column,
				Message: fmt.Sprintf("expected operator after '%s'", previousToken.strValue),
			}
		}

		if isPreviousOperator && t.isBinaryStateOperator() {
			return &ParseError{
				Line:    t.line,
				Column:  t.column,
				Message: fmt.Sprintf("expected operand after '%s'", previousToken.strValue),
			}
		}

		previousToken = t
		isPreviousOperand = t.isStateOperand()
		isPreviousOperator = t.isStateOperator()
	}

	return nil
}

func checkParenthesesSyntax(tokens []token) error {
	isPreviousOperand := false
	isPreviousLeftParenthesis := false
	isPreviousRightParenthesis := false

	for i, t := range tokens {
		isOperand := t.isStateOperand()
		isLeftParenthesis := t.isLeftParenthesis()
		isRightParenthesis := t.isRightParenthesis()

		if i > 0 {
			if isPreviousLeftParenthesis && t.isBinaryStateOperator() {
				return &ParseError{
					Line:    t.line,
					Column:  t.column,
					Message: "an operator is not allowed right after an opening parenthesis",
				}
			}

			if isPreviousRightParenthesis && (isOperand || t._type == not) {
				return &ParseError{
					Line:    t.line,
					Column:  t.column,
					Message: "an operand is not allowed right after a closing parenthesis",
				}
			}

			if isPreviousOperand && isLeftParenthesis {
				return &ParseError{
					Line:    t.line,
					Column:  t.column,
					Message: "an opening parenthesis is not allowed right after an operand",
				}
			}

			if isPreviousLeftParenthesis && isRightParenthesis {
				return &ParseError{Line: t.line, Column: t.column, Message: "empty parentheses"}
			}
		}

		isPreviousOperand = isOperand
		isPreviousLeftParenthesis = isLeftParenthesis
		isPreviousRightParenthesis = isRightParenthesis
	}

	return nil
}

func (p *parser) moveToNextToken() error {
	tk, err := p.t.getNextToken()
	if err != nil {
		return err
	}

	p.lookahead = *tk
	return nil
}

func (p *parser) consume() (token, error) {
	t := p.lookahead

	err := p.moveToNextToken()
	if err != nil {
		return tokenNoop, err
	}

	return t, nil
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{
		Line:    p.validLine(),
		Column:  p.validColumn(),
		Message: fmt.Sprintf(format, args...),
	}
}

func (p *parser) validLine() int {
	if p.lookahead.line > 0 {
		return p.lookahead.line
	}

	return p.t.line
}

func (p *parser) validColumn() int {
	if p.lookahead.column > 0 {
		return p.lookahead.column
	}

	return p.t.column
}
