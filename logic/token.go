package logic

import (
	"slices"
	"strconv"
)

type tokenType string

const (
	probabilityKeyword tokenType = "probability_keyword"
	rewardKeyword      tokenType = "reward_keyword"
	eventuallyKeyword  tokenType = "eventually_keyword"
	globallyKeyword    tokenType = "globally_keyword"
	nextKeyword        tokenType = "next_keyword"
	untilKeyword       tokenType = "until_keyword"
	unboundedQuery     tokenType = "unbounded_query"
	lessEqual          tokenType = "less_equal"
	less               tokenType = "less"
	greaterEqual       tokenType = "greater_equal"
	greater            tokenType = "greater"
	numberLiteral      tokenType = "number_literal"
	booleanLiteral     tokenType = "boolean_literal"
	labelLiteral       tokenType = "label_literal"
	identifier         tokenType = "identifier"
	leftBracket        tokenType = "left_bracket"
	rightBracket       tokenType = "right_bracket"
	leftParenthesis    tokenType = "left_parenthesis"
	rightParenthesis   tokenType = "right_parenthesis"
	not                tokenType = "not"
	and                tokenType = "and"
	or                 tokenType = "or"
	endOfFormula       tokenType = "end_of_formula"
	whitespace         tokenType = "whitespace"
	invalid            tokenType = "invalid"
)

type token struct {
	_type    tokenType
	strValue string
	goValue  any

	line   int
	column int
}

var tokenNoop token

func (tk *token) isParenthesis() bool {
	return tk.isLeftParenthesis() || tk.isRightParenthesis()
}

func (tk *token) isLeftParenthesis() bool {
	return tk._type == leftParenthesis
}

func (tk *token) isRightParenthesis() bool {
	return tk._type == rightParenthesis
}

var (
	stateOperators      = []tokenType{not, and, or}
	stateOperands       = []tokenType{labelLiteral, booleanLiteral}
	comparisonOperators = []tokenType{less, lessEqual, greater, greaterEqual}
)

// Lower number binds tighter. '!' is unary and pops exactly one operand when
// the postfix sequence is turned back into a tree.
var precedence = map[tokenType]int{
	not: 1,
	and: 2,
	or:  3,
}

func (tk *token) hasLowerOrSamePrecedenceThan(tk1 token) bool {
	l, lok := precedence[tk._type]
	r, rok := precedence[tk1._type]

	if !lok || !rok {
		return false
	}

	// '!' is right-associative: a stacked '!' stays put until its operand
	// arrives, so stacked negation nests instead of popping early.
	if tk._type == not {
		return l > r
	}

	return l >= r
}

// isStateToken reports whether the token may appear inside the propositional
// state-formula fragment of a path formula.
func (tk *token) isStateToken() bool {
	return tk.isStateOperator() || tk.isStateOperand() || tk.isParenthesis()
}

func (tk *token) isStateOperator() bool {
	return slices.Contains(stateOperators, tk._type)
}

func (tk *token) isBinaryStateOperator() bool {
	return tk._type == and || tk._type == or
}

func (tk *token) isStateOperand() bool {
	return slices.Contains(stateOperands, tk._type)
}

func (tk *token) isComparisonOperator() bool {
	return slices.Contains(comparisonOperators, tk._type)
}

func (tk *token) convertToGoType() (v any, err error) {
	switch tk._type {
	case numberLiteral:
		v, err = strconv.ParseFloat(tk.strValue, 64)
	case booleanLiteral:
		v, err = strconv.ParseBool(tk.strValue)
	}

	return
}
