package problem_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/junctree/inference"
	"github.com/katalvlaran/junctree/internal/problem"
)

const gaussianDoc = `
family: gaussian
ordering: [x1, x2, x3]
factors:
  - {type: prior,    keys: [x1],     mean: [0],  sigma: 1}
  - {type: between,  keys: [x1, x2], delta: [1], sigma: 0.5}
  - {type: jacobian, keys: [x2, x3], a: [[[1]], [[-1]]], b: [2]}
`

const discreteDoc = `
family: discrete
ordering: [rain, wet]
variables: {rain: 2, wet: 2}
factors:
  - {type: table, keys: [rain], table: [0.8, 0.2]}
  - {type: table, keys: [rain, wet], table: [0.9, 0.1, 0.2, 0.8]}
`

func TestParse_Gaussian(t *testing.T) {
	p, err := problem.Parse([]byte(gaussianDoc))
	require.NoError(t, err)
	assert.Equal(t, problem.FamilyGaussian, p.Family)
	assert.Equal(t, inference.Ordering{"x1", "x2", "x3"}, p.Keys())

	fg, err := p.Gaussian()
	require.NoError(t, err)
	assert.Equal(t, 3, fg.Len())
	assert.Equal(t, []inference.Key{"x2", "x3"}, fg.At(2).Keys())

	_, err = p.Discrete()
	assert.ErrorIs(t, err, problem.ErrFamily)
}

func TestParse_Discrete(t *testing.T) {
	p, err := problem.Parse([]byte(discreteDoc))
	require.NoError(t, err)
	fg, err := p.Discrete()
	require.NoError(t, err)
	assert.Equal(t, 2, fg.Len())
	assert.Equal(t, []int{2, 2}, fg.At(1).Cards())
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]struct {
		doc  string
		want error
		gaus bool
	}{
		"unknown family": {doc: "family: poisson\n", want: problem.ErrFamily},
		"unknown factor type": {
			doc:  "family: gaussian\nordering: [a]\nfactors:\n  - {type: odometry, keys: [a]}\n",
			want: problem.ErrFactorType, gaus: true,
		},
		"between arity": {
			doc:  "family: gaussian\nordering: [a]\nfactors:\n  - {type: between, keys: [a], delta: [1], sigma: 1}\n",
			want: problem.ErrFactorSpec, gaus: true,
		},
		"jacobian blocks": {
			doc:  "family: gaussian\nordering: [a]\nfactors:\n  - {type: jacobian, keys: [a], b: [1]}\n",
			want: problem.ErrFactorSpec, gaus: true,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			p, err := problem.Parse([]byte(tc.doc))
			if !tc.gaus {
				assert.ErrorIs(t, err, tc.want)
				return
			}
			require.NoError(t, err)
			_, err = p.Gaussian()
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := problem.Parse([]byte("family: gaussian\nunknown: 1\n"))
	assert.Error(t, err)

	p, err := problem.Parse([]byte("family: discrete\nordering: [a]\nfactors:\n  - {type: table, keys: [a], table: [1, 1]}\n"))
	require.NoError(t, err)
	_, err = p.Discrete()
	assert.ErrorIs(t, err, problem.ErrFactorSpec)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.yaml")
	require.NoError(t, os.WriteFile(path, []byte(discreteDoc), 0o600))
	p, err := problem.Load(path)
	require.NoError(t, err)
	assert.Equal(t, problem.FamilyDiscrete, p.Family)

	_, err = problem.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
