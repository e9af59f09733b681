package logic

import (
	"fmt"
	"regexp"
	"strings"
)

type tokenRegexps struct {
	name    tokenType
	regexps []*regexp.Regexp
}

// Order matters: multi-character comparisons before their one-character
// prefixes, keywords before the generic identifier.
var (
	regexps = []*tokenRegexps{
		{
			name:    unboundedQuery,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^=\?`)},
		},
		{
			name:    lessEqual,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^<=`)},
		},
		{
			name:    greaterEqual,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^>=`)},
		},
		{
			name:    less,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^<`)},
		},
		{
			name:    greater,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^>`)},
		},
		{
			name:    probabilityKeyword,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^P\b`)},
		},
		{
			name:    rewardKeyword,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^R\b`)},
		},
		{
			name:    eventuallyKeyword,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^F\b`)},
		},
		{
			name:    globallyKeyword,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^G\b`)},
		},
		{
			name:    nextKeyword,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^X\b`)},
		},
		{
			name:    untilKeyword,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^U\b`)},
		},
		{
			name:    booleanLiteral,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^(true|false)\b`)},
		},
		{
			name:    identifier,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*`)},
		},
		{
			name:    labelLiteral,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^"([^"]*)"`)},
		},
		{
			name:    numberLiteral,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^\d+(\.\d+)?`)},
		},
		{
			name:    leftBracket,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^\[`)},
		},
		{
			name:    rightBracket,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^\]`)},
		},
		{
			name:    leftParenthesis,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^\(`)},
		},
		{
			name:    rightParenthesis,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^\)`)},
		},
		{
			name:    not,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^!`)},
		},
		{
			name:    and,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^&`)},
		},
		{
			name:    or,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^\|`)},
		},
		{
			name:    endOfFormula,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^;`)},
		},
		{
			name:    whitespace,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^\s+`)},
		},
		{
			name:    invalid,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^.`)},
		},
	}
)

type tokenizer struct {
	formula string
	cursor  int
	line    int
	column  int
}

func newTokenizer(formula string) *tokenizer {
	return &tokenizer{formula: formula, line: 1, column: 1}
}

func (t *tokenizer) getNextToken() (*token, error) {
	if t.cursor >= len(t.formula) {
		return &tokenNoop, nil
	}

	s := t.formula[t.cursor:]
	match := ""
	var tk *token

	line, column := t.getLineColumn(0)

	for _, tr := range regexps {
		for _, r := range tr.regexps {
			match = r.FindString(s)
			if match != "" {
				tk = &token{
					_type:    tr.name,
					strValue: match,

					line:   line,
					column: column,
				}
				break
			}
		}
		if match != "" {
			break
		}
	}

	t.cursor += len(match)
	t.line, t.column = t.getLineColumn(len(match))

	if tk == nil {
		return nil, &LexError{Line: line, Column: column, Message: "couldn't decipher token"}
	}

	if tk._type == whitespace {
		return t.getNextToken()
	}

	if tk._type == invalid {
		if strings.HasPrefix(s, `"`) {
			return nil, &LexError{Line: line, Column: column, Message: "unterminated label"}
		}

		return nil, &LexError{Line: line, Column: column, Message: fmt.Sprintf("unrecognized character %q", match)}
	}

	if tk._type == labelLiteral {
		tk.strValue = tk.strValue[1 : len(tk.strValue)-1]

		// An empty label could not be told apart from a boolean-literal
		// operand downstream.
		if tk.strValue == "" {
			return nil, &LexError{Line: line, Column: column, Message: "empty label"}
		}
	}

	v, err := tk.convertToGoType()
	if err != nil {
		return nil, &LexError{
			Line:    tk.line,
			Column:  tk.column,
			Message: fmt.Sprintf("invalid literal '%s' of type '%s'", tk.strValue, tk._type),
		}
	}

	tk.goValue = v

	return tk, nil
}

func (t *tokenizer) getLineColumn(skip int) (int, int) {
	skipTotal := t.cursor + skip

	if skipTotal > len(t.formula) {
		skipTotal = len(t.formula)
	}

	firstHalf := t.formula[:skipTotal]

	column := strings.LastIndex(firstHalf, "\n") - len(firstHalf)
	if column > 0 {
		column = 1
	} else {
		column = column * -1
	}

	line := strings.Count(firstHalf, "\n") + 1

	return line, column
}
