package logic

import (
	"fmt"
	"math"
	"strconv"

	"pctl/eval"
)

type Kind string

const (
	Probability Kind = "probability_operator"
	Reward      Kind = "reward_operator"
)

type ComparisonType string

const (
	Less         ComparisonType = "less"
	LessEqual    ComparisonType = "less_equal"
	Greater      ComparisonType = "greater"
	GreaterEqual ComparisonType = "greater_equal"
)

var comparisonSymbols = map[ComparisonType]string{
	Less:         "<",
	LessEqual:    "<=",
	Greater:      ">",
	GreaterEqual: ">=",
}

// Symbol returns the textual operator for the comparison, e.g. "<=" for
// LessEqual. Unknown comparisons return the empty string.
func (c ComparisonType) Symbol() string {
	return comparisonSymbols[c]
}

func comparisonFromToken(t tokenType) ComparisonType {
	switch t {
	case less:
		return Less
	case lessEqual:
		return LessEqual
	case greater:
		return Greater
	case greaterEqual:
		return GreaterEqual
	}

	return ""
}

// Bound is the optional comparison+threshold suffix of an operator formula,
// e.g. "<0.4". A formula without a bound renders as "=?".
type Bound struct {
	Comparison ComparisonType
	Threshold  float64
}

type PathOperator string

const (
	// State marks a path formula that is just a propositional state formula.
	State      PathOperator = "state"
	Eventually PathOperator = "eventually"
	Globally   PathOperator = "globally"
	Next       PathOperator = "next"
	Until      PathOperator = "until"
)

// noSteps marks an absent step bound on F/G/U.
const noSteps = -1

// PathFormula is the bracketed temporal expression of an operator formula,
// e.g. F "one" or "a" U<=5 "b". Unary operators keep their operand in Right;
// Left is set only for Until.
type PathFormula struct {
	Operator PathOperator
	Steps    int

	Left  *eval.Expression
	Right *eval.Expression
}

func (pf *PathFormula) String() string {
	switch pf.Operator {
	case State:
		return pf.Right.String()
	case Eventually:
		return "F" + pf.stepSuffix() + " " + pf.Right.String()
	case Globally:
		return "G" + pf.stepSuffix() + " " + pf.Right.String()
	case Next:
		return "X " + pf.Right.String()
	case Until:
		return pf.Left.String() + " U" + pf.stepSuffix() + " " + pf.Right.String()
	}

	return "<invalid>"
}

func (pf *PathFormula) stepSuffix() string {
	if pf.Steps == noSteps {
		return ""
	}

	return "<=" + strconv.Itoa(pf.Steps)
}

// Formula is an operator formula over a path formula: a probability operator
// or a reward operator, with an optional mutable bound. Formulas are built by
// ParseFormulas and are not safe for concurrent mutation.
type Formula interface {
	Kind() Kind
	String() string

	HasBound() bool
	Threshold() (float64, error)
	SetThreshold(v float64) error
	Comparison() (ComparisonType, error)
	SetComparison(c ComparisonType) error
	SetBound(c ComparisonType, v float64) error
	ClearBound()

	Path() *PathFormula
}

// operatorFormula carries the parts shared by every operator kind. Rendering
// always reads the live bound, so mutations show up in the next String call.
type operatorFormula struct {
	path  *PathFormula
	bound *Bound
}

func (f *operatorFormula) Path() *PathFormula {
	return f.path
}

func (f *operatorFormula) HasBound() bool {
	return f.bound != nil
}

func (f *operatorFormula) Threshold() (float64, error) {
	if f.bound == nil {
		return 0, &InvalidStateError{Message: "formula has no bound"}
	}

	return f.bound.Threshold, nil
}

// SetThreshold updates the threshold of an existing bound. It refuses to
// install a bound on its own: without one there is no comparison type to pair
// the threshold with, and guessing a default would be ambiguous. Use SetBound
// to install one.
func (f *operatorFormula) SetThreshold(v float64) error {
	if f.bound == nil {
		return &InvalidStateError{Message: "formula has no bound; use SetBound to install one"}
	}

	if err := checkThreshold(v); err != nil {
		return err
	}

	f.bound.Threshold = v
	return nil
}

func (f *operatorFormula) Comparison() (ComparisonType, error) {
	if f.bound == nil {
		return "", &InvalidStateError{Message: "formula has no bound"}
	}

	return f.bound.Comparison, nil
}

func (f *operatorFormula) SetComparison(c ComparisonType) error {
	if f.bound == nil {
		return &InvalidStateError{Message: "formula has no bound; use SetBound to install one"}
	}

	if err := checkComparison(c); err != nil {
		return err
	}

	f.bound.Comparison = c
	return nil
}

func (f *operatorFormula) SetBound(c ComparisonType, v float64) error {
	if err := checkComparison(c); err != nil {
		return err
	}

	if err := checkThreshold(v); err != nil {
		return err
	}

	f.bound = &Bound{Comparison: c, Threshold: v}
	return nil
}

func (f *operatorFormula) ClearBound() {
	f.bound = nil
}

func (f *operatorFormula) boundString() string {
	if f.bound == nil {
		return "=?"
	}

	return f.bound.Comparison.Symbol() + formatThreshold(f.bound.Threshold)
}

func checkComparison(c ComparisonType) error {
	if _, ok := comparisonSymbols[c]; !ok {
		return fmt.Errorf("unknown comparison type '%s'", c)
	}

	return nil
}

func checkThreshold(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("threshold must be a finite number, got %v", v)
	}

	return nil
}

// formatThreshold renders the shortest exact decimal form, e.g. "0.4" rather
// than "0.40" or "4e-01".
func formatThreshold(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type ProbabilityOperator struct {
	operatorFormula
}

func (f *ProbabilityOperator) Kind() Kind {
	return Probability
}

func (f *ProbabilityOperator) String() string {
	return "P" + f.boundString() + " [" + f.path.String() + "]"
}

// expectationMarker is what a reward formula renders when no reward model was
// named: "R=? [...]" parses fine but always prints as "R[exp]=? [...]".
const expectationMarker = "exp"

type RewardOperator struct {
	operatorFormula

	// Model names the reward structure the operator refers to; empty means
	// the default expectation model.
	Model string
}

func (f *RewardOperator) Kind() Kind {
	return Reward
}

func (f *RewardOperator) String() string {
	model := f.Model
	if model == "" {
		model = expectationMarker
	}

	return "R[" + model + "]" + f.boundString() + " [" + f.path.String() + "]"
}
