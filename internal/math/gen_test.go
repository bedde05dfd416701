package math

import (
	"errors"
	"math"
	"testing"

	"github.com/drakos74/noisy-clusters/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestGenerator_Cluster(t *testing.T) {

	type test struct {
		spec  model.ClusterSpec
		noise float64
		err   error
	}

	tests := map[string]test{
		"empty": {
			spec:  model.ClusterSpec{Center: model.Point{X: 2, Y: 2}, StdDev: 0.3},
			noise: DefaultNoise,
		},
		"single": {
			spec:  model.ClusterSpec{Center: model.Point{X: 2, Y: 7}, StdDev: 0.3, Count: 1},
			noise: DefaultNoise,
		},
		"reference": {
			spec:  model.ClusterSpec{Center: model.Point{X: 7, Y: 7}, StdDev: 0.3, Count: 50},
			noise: DefaultNoise,
		},
		"zero-std-dev": {
			spec:  model.ClusterSpec{Center: model.Point{X: 7, Y: 7}, StdDev: 0, Count: 50},
			noise: DefaultNoise,
			err:   GenerationErr,
		},
		"negative-std-dev": {
			spec:  model.ClusterSpec{Center: model.Point{X: 7, Y: 7}, StdDev: -1, Count: 50},
			noise: DefaultNoise,
			err:   GenerationErr,
		},
		"nan-std-dev": {
			spec:  model.ClusterSpec{StdDev: math.NaN(), Count: 5},
			noise: DefaultNoise,
			err:   GenerationErr,
		},
		"zero-noise": {
			spec: model.ClusterSpec{StdDev: 1, Count: 5},
			err:  GenerationErr,
		},
		"negative-count": {
			spec:  model.ClusterSpec{StdDev: 1, Count: -1},
			noise: DefaultNoise,
			err:   GenerationErr,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			g := NewGenerator(NewSource(42), tt.noise)
			samples, err := g.Cluster(tt.spec)
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err))
				return
			}
			require.NoError(t, err)
			require.NotNil(t, samples)
			assert.Equal(t, tt.spec.Count, len(samples))
			for _, s := range samples {
				// 6 sigma bound on the noise
				assert.Less(t, math.Abs(s.Noisy.X-s.True.X), 6*tt.noise)
				assert.Less(t, math.Abs(s.Noisy.Y-s.True.Y), 6*tt.noise)
			}
		})
	}
}

func TestGenerator_Statistics(t *testing.T) {

	spec := model.ClusterSpec{Center: model.Point{X: 2, Y: 7}, StdDev: 0.3, Count: 5000}
	g := NewGenerator(NewSource(7), DefaultNoise)

	samples, err := g.Cluster(spec)
	require.NoError(t, err)

	xx := make([]float64, len(samples))
	yy := make([]float64, len(samples))
	dx := make([]float64, len(samples))
	for i, s := range samples {
		xx[i] = s.True.X
		yy[i] = s.True.Y
		dx[i] = s.Noisy.X - s.True.X
	}

	assert.InDelta(t, 2, stat.Mean(xx, nil), 0.05)
	assert.InDelta(t, 7, stat.Mean(yy, nil), 0.05)
	assert.InDelta(t, 0.3, stat.StdDev(xx, nil), 0.03)
	assert.InDelta(t, 0.3, stat.StdDev(yy, nil), 0.03)
	assert.InDelta(t, 0, stat.Mean(dx, nil), 0.01)
	assert.InDelta(t, DefaultNoise, stat.StdDev(dx, nil), 0.005)
}

func TestGenerator_Seeded(t *testing.T) {

	spec := model.ClusterSpec{Center: model.Point{X: 2, Y: 2}, StdDev: 0.3, Count: 10}

	s1, err := NewGenerator(NewSource(11), DefaultNoise).Cluster(spec)
	require.NoError(t, err)
	s2, err := NewGenerator(NewSource(11), DefaultNoise).Cluster(spec)
	require.NoError(t, err)

	assert.Equal(t, s1, s2)
}
