package dataset

import (
	"errors"
	"math"
	"testing"

	coinmath "github.com/drakos74/noisy-clusters/internal/math"
	"github.com/drakos74/noisy-clusters/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble(t *testing.T) {

	type test struct {
		specs []model.ClusterSpec
		rows  int
		err   error
	}

	tests := map[string]test{
		"reference": {
			specs: []model.ClusterSpec{
				{Center: model.Point{X: 2, Y: 2}, StdDev: 0.3, Count: 50},
				{Center: model.Point{X: 7, Y: 7}, StdDev: 0.3, Count: 50},
				{Center: model.Point{X: 2, Y: 7}, StdDev: 0.3, Count: 50},
			},
			rows: 150,
		},
		"uneven": {
			specs: []model.ClusterSpec{
				{Center: model.Point{X: 2, Y: 2}, StdDev: 0.3, Count: 3},
				{Center: model.Point{X: 7, Y: 7}, StdDev: 0.3, Count: 0},
				{Center: model.Point{X: 2, Y: 7}, StdDev: 0.3, Count: 11},
			},
			rows: 14,
		},
		"overlapping": {
			specs: []model.ClusterSpec{
				{Center: model.Point{X: 5, Y: 5}, StdDev: 1, Count: 20},
				{Center: model.Point{X: 5, Y: 5}, StdDev: 1, Count: 20},
			},
			rows: 40,
		},
		"none": {
			rows: 0,
		},
		"invalid": {
			specs: []model.ClusterSpec{
				{Center: model.Point{X: 2, Y: 2}, StdDev: 0.3, Count: 3},
				{Center: model.Point{X: 7, Y: 7}, StdDev: -0.3, Count: 3},
			},
			err: coinmath.GenerationErr,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			gen := coinmath.NewGenerator(coinmath.NewSource(1), coinmath.DefaultNoise)
			ds, err := Assemble(gen, tt.specs)
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.rows, len(ds))
			assert.Equal(t, tt.rows, len(Origins(tt.specs)))
		})
	}
}

func TestAssemble_Order(t *testing.T) {
	specs := []model.ClusterSpec{
		{Center: model.Point{X: 1, Y: 1}, StdDev: 0.001, Count: 5},
		{Center: model.Point{X: 100, Y: 100}, StdDev: 0.001, Count: 7},
		{Center: model.Point{X: -100, Y: 50}, StdDev: 0.001, Count: 2},
	}
	gen := coinmath.NewGenerator(coinmath.NewSource(3), coinmath.DefaultNoise)
	ds, err := Assemble(gen, specs)
	require.NoError(t, err)

	origins := Origins(specs)
	require.Equal(t, len(ds), len(origins))
	for i, s := range ds {
		center := specs[origins[i]].Center
		assert.Less(t, math.Abs(s.True.X-center.X), 0.01)
		assert.Less(t, math.Abs(s.True.Y-center.Y), 0.01)
	}
}

func TestAssemble_GenerationOrder(t *testing.T) {
	specs := []model.ClusterSpec{
		{Center: model.Point{X: 2, Y: 2}, StdDev: 0.3, Count: 4},
		{Center: model.Point{X: 7, Y: 7}, StdDev: 0.3, Count: 4},
	}
	ds, err := Assemble(coinmath.NewGenerator(coinmath.NewSource(8), coinmath.DefaultNoise), specs)
	require.NoError(t, err)

	// the same source consumed spec by spec yields the same sequence
	gen := coinmath.NewGenerator(coinmath.NewSource(8), coinmath.DefaultNoise)
	var expected model.Dataset
	for _, spec := range specs {
		samples, err := gen.Cluster(spec)
		require.NoError(t, err)
		expected = append(expected, samples...)
	}
	assert.Equal(t, expected, ds)
}

func TestLabel(t *testing.T) {
	ds := model.Dataset{
		{True: model.Point{X: 1, Y: 1}, Noisy: model.Point{X: 1.01, Y: 0.99}},
		{True: model.Point{X: 2, Y: 2}, Noisy: model.Point{X: 2.01, Y: 1.99}},
	}

	rows, err := Label(ds, []int{1, 0})
	require.NoError(t, err)
	require.Equal(t, 2, len(rows))
	assert.Equal(t, ds[0], rows[0].Sample)
	assert.Equal(t, 1, rows[0].Label)
	assert.Equal(t, 0, rows[1].Label)

	_, err = Label(ds, []int{1})
	assert.True(t, errors.Is(err, TableConstructionErr))
}
