package ml

import (
	"fmt"

	"github.com/cdipaolo/goml/cluster"
	"github.com/rs/zerolog/log"
)

// Goml is a k-means model backed by goml.
// It draws from the global random source, so fits are not reproducible.
type Goml struct {
	k          int
	iterations int
	model      *cluster.KMeans
}

// NewGomlKMeans creates a new goml backed k-means model.
func NewGomlKMeans(k int, iterations int) *Goml {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return &Goml{
		k:          k,
		iterations: iterations,
	}
}

// Fit partitions the points into k clusters.
func (g *Goml) Fit(points [][]float64) ([]int, error) {
	if err := validate(g.k, points); err != nil {
		return nil, err
	}
	g.model = cluster.NewKMeans(g.k, g.iterations, points)
	g.model.Output = log.With().Str("engine", "goml").Logger()
	if err := g.model.Learn(); err != nil {
		log.Error().
			Err(err).
			Int("k", g.k).
			Int("rows", len(points)).
			Msg("error during training on k-means")
		return nil, fmt.Errorf("could not train: %v: %w", err, FitErr)
	}
	guesses := g.model.Guesses()
	if len(guesses) != len(points) {
		return nil, fmt.Errorf("could not align guesses with data [ %d | %d ]: %w", len(guesses), len(points), FitErr)
	}
	labels := make([]int, len(guesses))
	copy(labels, guesses)
	return labels, nil
}

// Centroids returns the fitted centroids.
func (g *Goml) Centroids() [][]float64 {
	if g.model == nil {
		return nil
	}
	return g.model.Centroids
}
