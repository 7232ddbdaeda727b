package scenario

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mbsabath/popmodel/pkg/popmodel"
)

const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported scenario format")
	ErrMissingShare      = fmt.Errorf("%w: scenario has no share", popmodel.ErrInvalidArgument)
)

// Matrix mirrors popmodel.OutcomeMatrix. Unset entries are neutral.
type Matrix struct {
	XX *float64 `json:"xx,omitempty" yaml:"xx,omitempty"`
	XY *float64 `json:"xy,omitempty" yaml:"xy,omitempty"`
	YX *float64 `json:"yx,omitempty" yaml:"yx,omitempty"`
	YY *float64 `json:"yy,omitempty" yaml:"yy,omitempty"`
}

// Scenario holds the numeric parameters of one simulation run.
type Scenario struct {
	Share       *float64 `json:"share" yaml:"share"`
	Generations int      `json:"generations" yaml:"generations"`
	Matrix      Matrix   `json:"matrix" yaml:"matrix"`
}

// Load reads and validates a scenario from a .yaml, .yml or .json file.
func Load(path string) (Scenario, error) {
	sc, err := Read(path)
	if err != nil {
		return Scenario{}, err
	}
	if err := sc.Validate(); err != nil {
		return Scenario{}, fmt.Errorf("scenario %s: %w", path, err)
	}
	return sc, nil
}

// Read decodes a scenario file without validating it, so callers can fill in
// missing values first.
func Read(path string) (Scenario, error) {
	format, err := formatForPath(path)
	if err != nil {
		return Scenario{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, err
	}
	sc, err := Decode(data, format)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario %s: %w", path, err)
	}
	return sc, nil
}

// Parse decodes and validates a scenario document.
func Parse(data []byte, format string) (Scenario, error) {
	sc, err := Decode(data, format)
	if err != nil {
		return Scenario{}, err
	}
	if err := sc.Validate(); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

func Decode(data []byte, format string) (Scenario, error) {
	var sc Scenario
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&sc); err != nil && !errors.Is(err, io.EOF) {
			return Scenario{}, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&sc); err != nil {
			return Scenario{}, fmt.Errorf("decode json: %w", err)
		}
	default:
		return Scenario{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	return sc, nil
}

func (s Scenario) Validate() error {
	if s.Share == nil {
		return ErrMissingShare
	}
	if share := *s.Share; !(share >= 0 && share <= 1) {
		return fmt.Errorf("%w: got %v", popmodel.ErrInvalidShare, share)
	}
	if s.Generations < 0 {
		return fmt.Errorf("%w: got %d", popmodel.ErrInvalidGenerations, s.Generations)
	}
	return nil
}

func (m Matrix) OutcomeMatrix() *popmodel.OutcomeMatrix {
	return popmodel.NewOutcomeMatrix(valueOrOne(m.XX), valueOrOne(m.XY), valueOrOne(m.YX), valueOrOne(m.YY))
}

// Model builds the population described by the scenario at generation 0.
func (s Scenario) Model() (*popmodel.PopModel, error) {
	if s.Share == nil {
		return nil, ErrMissingShare
	}
	return popmodel.New(*s.Share, s.Matrix.OutcomeMatrix())
}

// Run simulates the scenario's configured number of generations.
func (s Scenario) Run() ([]popmodel.Point, error) {
	model, err := s.Model()
	if err != nil {
		return nil, err
	}
	return model.RunSim(s.Generations)
}

func formatForPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

func valueOrOne(v *float64) float64 {
	if v == nil {
		return 1
	}
	return *v
}

// Float returns a pointer to v, for building Scenario literals.
func Float(v float64) *float64 {
	return &v
}
