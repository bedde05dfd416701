package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataset_Noisy(t *testing.T) {
	ds := Dataset{
		{True: Point{X: 1, Y: 2}, Noisy: Point{X: 1.1, Y: 2.1}},
		{True: Point{X: 3, Y: 4}, Noisy: Point{X: 2.9, Y: 3.9}},
	}
	assert.Equal(t, [][]float64{{1.1, 2.1}, {2.9, 3.9}}, ds.Noisy())
	assert.Empty(t, Dataset{}.Noisy())
}

func TestLabeled(t *testing.T) {
	rows := Labeled{
		{Sample: Sample{Noisy: Point{X: 1, Y: 1}}, Label: 2},
		{Sample: Sample{Noisy: Point{X: 5, Y: 6}}, Label: 0},
	}
	assert.Equal(t, []int{2, 0}, rows.Labels())
	assert.Equal(t, [][]float64{{1, 1}, {5, 6}}, rows.Noisy())
}
