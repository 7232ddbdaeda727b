package popmodel

import (
	"errors"
	"fmt"
	"strconv"
)

const shareDecimals = 5

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrDomain          = errors.New("domain error")

	ErrInvalidShare       = fmt.Errorf("%w: share must be within [0, 1]", ErrInvalidArgument)
	ErrInvalidGenerations = fmt.Errorf("%w: generation count must be non-negative", ErrInvalidArgument)
	ErrZeroFitness        = fmt.Errorf("%w: total population fitness is zero", ErrDomain)
)

// Point is one sample of a simulated trajectory.
type Point struct {
	Generation int
	Share      float64
}

// PopModel tracks the share of an infinite, randomly mixing population that
// plays strategy x. The matrix is held by reference and never written.
//
// A PopModel is not safe for concurrent use; callers sharing one instance
// must serialize NextGen against every other call.
type PopModel struct {
	share       float64
	matrix      *OutcomeMatrix
	generations int
}

// New builds a model at generation 0. A nil matrix selects a fresh
// NeutralMatrix.
func New(share float64, matrix *OutcomeMatrix) (*PopModel, error) {
	if !(share >= 0 && share <= 1) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidShare, share)
	}
	if matrix == nil {
		matrix = NeutralMatrix()
	}
	return &PopModel{
		share:  Round5(share),
		matrix: matrix,
	}, nil
}

func (p *PopModel) Share() float64 {
	return p.share
}

// ShareY is the fraction playing y, rounded independently of Share.
func (p *PopModel) ShareY() float64 {
	return Round5(1 - p.share)
}

func (p *PopModel) Matrix() *OutcomeMatrix {
	return p.matrix
}

func (p *PopModel) Generations() int {
	return p.generations
}

// NextGen advances one generation. Each strategy reproduces in proportion to
// its frequency times its expected payoff against the current mix. When the
// total fitness is zero the share is undefined; NextGen then returns
// ErrZeroFitness and leaves the model untouched.
func (p *PopModel) NextGen() error {
	s := p.share
	t := 1 - s
	m := p.matrix

	newX := s * (s*m.At(X, X) + t*m.At(X, Y))
	newY := t * (s*m.At(Y, X) + t*m.At(Y, Y))
	total := newX + newY
	if total == 0 {
		return fmt.Errorf("%w: generation %d share=%v", ErrZeroFitness, p.generations+1, s)
	}

	p.share = Round5(newX / total)
	p.generations++
	return nil
}

// Clone copies the share and the matrix. The copy starts its own lineage at
// generation 0.
func (p *PopModel) Clone() *PopModel {
	return &PopModel{
		share:  p.share,
		matrix: p.matrix.Clone(),
	}
}

// RunSim advances a clone of p by n generations and returns the n+1 recorded
// points, starting at generation 0. p itself is not modified. If a step
// fails, the points recorded so far are returned with the error.
func (p *PopModel) RunSim(n int) ([]Point, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidGenerations, n)
	}

	model := p.Clone()
	points := make([]Point, 0, n+1)
	points = append(points, Point{Generation: model.generations, Share: model.share})
	for i := 0; i < n; i++ {
		if err := model.NextGen(); err != nil {
			return points, err
		}
		points = append(points, Point{Generation: model.generations, Share: model.share})
	}
	return points, nil
}

func (p *PopModel) String() string {
	return "share x: " + formatShare(p.share) + "\n" +
		"share y: " + formatShare(p.ShareY()) + "\n" +
		"Reproduction Matrix: \n" + p.matrix.String() +
		"Number of generations: " + strconv.Itoa(p.generations)
}

func (p *PopModel) GoString() string {
	return p.String()
}

// Round5 rounds the exact binary value of v to five decimals, ties to even.
// Every stored share goes through it. Negative zero comes back as 0.
func Round5(v float64) float64 {
	out, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', shareDecimals, 64), 64)
	if out == 0 {
		return 0
	}
	return out
}

func formatShare(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
