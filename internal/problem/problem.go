// Package problem loads factor graph problems from YAML files for the
// junctree command.
//
// Example:
//
//	family: gaussian
//	ordering: [x1, x2, x3]
//	factors:
//	  - {type: prior,   keys: [x1],     mean: [0],  sigma: 1}
//	  - {type: between, keys: [x1, x2], delta: [1], sigma: 0.5}
//
//	family: discrete
//	ordering: [rain, sprinkler, wet]
//	variables: {rain: 2, sprinkler: 2, wet: 2}
//	factors:
//	  - {type: table, keys: [rain], table: [0.8, 0.2]}
package problem

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/junctree/discrete"
	"github.com/katalvlaran/junctree/gaussian"
	"github.com/katalvlaran/junctree/inference"
)

// Supported families.
const (
	FamilyGaussian = "gaussian"
	FamilyDiscrete = "discrete"
)

var (
	// ErrFamily indicates an unknown or mismatched family.
	ErrFamily = errors.New("problem: unsupported family")

	// ErrFactorType indicates an unknown factor type for the family.
	ErrFactorType = errors.New("problem: unsupported factor type")

	// ErrFactorSpec indicates a factor entry with missing or malformed fields.
	ErrFactorSpec = errors.New("problem: malformed factor")
)

// Problem is the decoded YAML document.
type Problem struct {
	Family    string         `yaml:"family"`
	Ordering  []string       `yaml:"ordering"`
	Variables map[string]int `yaml:"variables,omitempty"`
	Factors   []FactorSpec   `yaml:"factors"`
}

// FactorSpec is one factor entry. Which fields apply depends on Type.
type FactorSpec struct {
	Type  string        `yaml:"type"`
	Keys  []string      `yaml:"keys"`
	Mean  []float64     `yaml:"mean,omitempty"`
	Delta []float64     `yaml:"delta,omitempty"`
	Sigma float64       `yaml:"sigma,omitempty"`
	A     [][][]float64 `yaml:"a,omitempty"` // one block per key
	B     []float64     `yaml:"b,omitempty"`
	Table []float64     `yaml:"table,omitempty"`
}

// Load reads and decodes path.
func Load(path string) (*Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

// Parse decodes a YAML document, rejecting unknown fields.
func Parse(data []byte) (*Problem, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var p Problem
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("problem: decode: %w", err)
	}
	if p.Family != FamilyGaussian && p.Family != FamilyDiscrete {
		return nil, fmt.Errorf("%w: %q", ErrFamily, p.Family)
	}

	return &p, nil
}

// Keys converts the ordering to inference keys.
func (p *Problem) Keys() inference.Ordering {
	out := make(inference.Ordering, len(p.Ordering))
	for i, k := range p.Ordering {
		out[i] = inference.Key(k)
	}

	return out
}

// Gaussian builds the Gaussian factor graph.
func (p *Problem) Gaussian() (*inference.FactorGraph[*gaussian.Factor], error) {
	if p.Family != FamilyGaussian {
		return nil, fmt.Errorf("%w: want %s, have %s", ErrFamily, FamilyGaussian, p.Family)
	}
	fg := inference.NewFactorGraph[*gaussian.Factor]()
	for i, spec := range p.Factors {
		f, err := spec.gaussian()
		if err != nil {
			return nil, fmt.Errorf("factor #%d: %w", i, err)
		}
		fg.Add(f)
	}

	return fg, nil
}

func (s FactorSpec) gaussian() (*gaussian.Factor, error) {
	keys := toKeys(s.Keys)
	switch s.Type {
	case "prior":
		if len(keys) != 1 {
			return nil, fmt.Errorf("%w: prior needs one key", ErrFactorSpec)
		}
		return gaussian.Prior(keys[0], s.Mean, s.Sigma)
	case "between":
		if len(keys) != 2 {
			return nil, fmt.Errorf("%w: between needs two keys", ErrFactorSpec)
		}
		return gaussian.Between(keys[0], keys[1], s.Delta, s.Sigma)
	case "jacobian":
		if len(s.A) != len(keys) {
			return nil, fmt.Errorf("%w: jacobian has %d keys and %d blocks", ErrFactorSpec, len(keys), len(s.A))
		}
		blocks := make([]gaussian.Block, len(keys))
		for i := range keys {
			blocks[i] = gaussian.Block{Key: keys[i], A: s.A[i]}
		}
		return gaussian.NewFactor(s.B, blocks...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrFactorType, s.Type)
	}
}

// Discrete builds the discrete factor graph using Variables for cardinalities.
func (p *Problem) Discrete() (*inference.FactorGraph[*discrete.Factor], error) {
	if p.Family != FamilyDiscrete {
		return nil, fmt.Errorf("%w: want %s, have %s", ErrFamily, FamilyDiscrete, p.Family)
	}
	fg := inference.NewFactorGraph[*discrete.Factor]()
	for i, spec := range p.Factors {
		if spec.Type != "table" {
			return nil, fmt.Errorf("factor #%d: %w: %q", i, ErrFactorType, spec.Type)
		}
		cards := make([]int, len(spec.Keys))
		for j, k := range spec.Keys {
			c, ok := p.Variables[k]
			if !ok {
				return nil, fmt.Errorf("factor #%d: %w: no cardinality for %q", i, ErrFactorSpec, k)
			}
			cards[j] = c
		}
		f, err := discrete.NewFactor(toKeys(spec.Keys), cards, spec.Table)
		if err != nil {
			return nil, fmt.Errorf("factor #%d: %w", i, err)
		}
		fg.Add(f)
	}

	return fg, nil
}

func toKeys(in []string) []inference.Key {
	out := make([]inference.Key, len(in))
	for i, k := range in {
		out[i] = inference.Key(k)
	}

	return out
}
