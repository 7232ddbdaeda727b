package popmodel

import (
	"strconv"
	"strings"
)

// Strategy indexes a row or column of an OutcomeMatrix.
type Strategy int

const (
	X Strategy = iota
	Y
)

func (s Strategy) String() string {
	switch s {
	case X:
		return "x"
	case Y:
		return "y"
	default:
		return "Strategy(" + strconv.Itoa(int(s)) + ")"
	}
}

// OutcomeMatrix holds the payoff of each pairing: row is the strategy being
// scored, column is the strategy it meets.
type OutcomeMatrix struct {
	outcomes [2][2]float64
}

// NewOutcomeMatrix takes payoffs row strategy first: xy is what x earns
// against y, yx is what y earns against x.
func NewOutcomeMatrix(xx, xy, yx, yy float64) *OutcomeMatrix {
	return &OutcomeMatrix{outcomes: [2][2]float64{{xx, xy}, {yx, yy}}}
}

// NeutralMatrix returns a new all-ones matrix, under which selection has no
// effect.
func NeutralMatrix() *OutcomeMatrix {
	return NewOutcomeMatrix(1, 1, 1, 1)
}

// At returns the payoff to row when it meets col.
func (m *OutcomeMatrix) At(row, col Strategy) float64 {
	return m.outcomes[row][col]
}

// Values returns the payoffs in constructor order.
func (m *OutcomeMatrix) Values() (xx, xy, yx, yy float64) {
	return m.outcomes[0][0], m.outcomes[0][1], m.outcomes[1][0], m.outcomes[1][1]
}

// Clone returns a copy that shares no storage with m.
func (m *OutcomeMatrix) Clone() *OutcomeMatrix {
	out := *m
	return &out
}

func (m *OutcomeMatrix) String() string {
	const sep = "   -------\n"
	var b strings.Builder
	b.WriteString("    x | y \n")
	b.WriteString(sep)
	b.WriteString("x | " + formatPayoff(m.outcomes[0][0]) + " | " + formatPayoff(m.outcomes[0][1]) + " \n")
	b.WriteString(sep)
	b.WriteString("y | " + formatPayoff(m.outcomes[1][0]) + " | " + formatPayoff(m.outcomes[1][1]) + " \n")
	return b.String()
}

func formatPayoff(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
