package ml

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
)

const (
	// Dim is the dimensionality of the points the engines operate on.
	Dim = 2

	DefaultRuns       = 10
	DefaultIterations = 300
	DefaultTolerance  = 1e-4
)

// FitErr signals that the clustering model could not be fitted to the input.
var FitErr = errors.New("could not fit clusters")

// Clusterer partitions points into clusters and returns one label per point in input order.
type Clusterer interface {
	Fit(points [][]float64) ([]int, error)
}

// Option configures a KMeans model.
type Option func(km *KMeans)

// WithSource sets the random source used for centroid initialisation.
func WithSource(src rand.Source) Option {
	return func(km *KMeans) {
		if src != nil {
			km.rng = rand.New(src)
		}
	}
}

// WithRuns sets the number of restarts. The run with the lowest inertia is kept.
func WithRuns(runs int) Option {
	return func(km *KMeans) {
		if runs > 0 {
			km.runs = runs
		}
	}
}

// WithIterations caps the iterations of a single run.
func WithIterations(iterations int) Option {
	return func(km *KMeans) {
		if iterations > 0 {
			km.iterations = iterations
		}
	}
}

// WithTolerance sets the centroid shift below which a run is considered converged.
func WithTolerance(tolerance float64) Option {
	return func(km *KMeans) {
		if tolerance >= 0 {
			km.tolerance = tolerance
		}
	}
}

// KMeans is a Lloyd k-means model with k-means++ initialisation.
type KMeans struct {
	k          int
	runs       int
	iterations int
	tolerance  float64
	rng        *rand.Rand

	centroids [][]float64
	inertia   float64
	iters     int
}

// NewKMeans creates a new k-means model for k clusters.
func NewKMeans(k int, opts ...Option) *KMeans {
	km := &KMeans{
		k:          k,
		runs:       DefaultRuns,
		iterations: DefaultIterations,
		tolerance:  DefaultTolerance,
	}
	for _, opt := range opts {
		opt(km)
	}
	if km.rng == nil {
		km.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return km
}

type run struct {
	labels     []int
	centroids  [][]float64
	inertia    float64
	iterations int
}

// Fit partitions the points into k clusters.
func (km *KMeans) Fit(points [][]float64) ([]int, error) {
	if err := validate(km.k, points); err != nil {
		return nil, err
	}

	best := run{inertia: math.Inf(1)}
	for r := 0; r < km.runs; r++ {
		res := km.lloyd(points)
		log.Debug().
			Int("run", r).
			Int("iterations", res.iterations).
			Float64("inertia", res.inertia).
			Msg("k-means run")
		if res.inertia < best.inertia {
			best = res
		}
	}

	km.centroids = best.centroids
	km.inertia = best.inertia
	km.iters = best.iterations

	return best.labels, nil
}

// Centroids returns the centroids of the retained run.
func (km *KMeans) Centroids() [][]float64 {
	return km.centroids
}

// Inertia returns the within-cluster sum of squares of the retained run.
func (km *KMeans) Inertia() float64 {
	return km.inertia
}

// Iterations returns the number of iterations of the retained run.
func (km *KMeans) Iterations() int {
	return km.iters
}

func (km *KMeans) lloyd(points [][]float64) run {
	centroids := km.seed(points)
	labels := make([]int, len(points))
	for i := range labels {
		labels[i] = -1
	}

	iterations := 0
	for iterations < km.iterations {
		iterations++
		changed := assign(points, centroids, labels)
		next := relocate(points, labels, centroids)
		shift := 0.0
		for c := range centroids {
			shift = math.Max(shift, floats.Distance(centroids[c], next[c], 2))
		}
		centroids = next
		if !changed || shift <= km.tolerance {
			break
		}
	}
	// labels must reflect the final centroids
	assign(points, centroids, labels)

	return run{
		labels:     labels,
		centroids:  centroids,
		inertia:    inertia(points, centroids, labels),
		iterations: iterations,
	}
}

// seed picks the initial centroids with the k-means++ strategy.
func (km *KMeans) seed(points [][]float64) [][]float64 {
	n := len(points)
	centroids := make([][]float64, 0, km.k)
	centroids = append(centroids, clone(points[km.rng.Intn(n)]))

	weights := make([]float64, n)
	for len(centroids) < km.k {
		sum := 0.0
		for i, p := range points {
			_, d := nearest(p, centroids)
			weights[i] = d * d
			sum += weights[i]
		}
		if sum == 0 {
			// every point coincides with a centroid already
			centroids = append(centroids, clone(points[km.rng.Intn(n)]))
			continue
		}
		target := km.rng.Float64() * sum
		idx := n - 1
		cum := 0.0
		for i, w := range weights {
			cum += w
			if cum > target {
				idx = i
				break
			}
		}
		centroids = append(centroids, clone(points[idx]))
	}
	return centroids
}

// assign moves every point to its nearest centroid and reports if any label changed.
func assign(points [][]float64, centroids [][]float64, labels []int) bool {
	changed := false
	for i, p := range points {
		c, _ := nearest(p, centroids)
		if labels[i] != c {
			labels[i] = c
			changed = true
		}
	}
	return changed
}

// relocate computes the mean of every cluster.
// An empty cluster is re-seeded with the point farthest from its own centroid.
func relocate(points [][]float64, labels []int, centroids [][]float64) [][]float64 {
	k := len(centroids)
	next := make([][]float64, k)
	counts := make([]int, k)
	for c := range next {
		next[c] = make([]float64, len(centroids[c]))
	}
	for i, p := range points {
		floats.Add(next[labels[i]], p)
		counts[labels[i]]++
	}

	used := make(map[int]bool)
	for c := range next {
		if counts[c] > 0 {
			floats.Scale(1/float64(counts[c]), next[c])
			continue
		}
		far, dist := -1, -1.0
		for i, p := range points {
			if used[i] {
				continue
			}
			if d := floats.Distance(p, centroids[labels[i]], 2); d > dist {
				far, dist = i, d
			}
		}
		if far < 0 {
			copy(next[c], centroids[c])
			continue
		}
		used[far] = true
		copy(next[c], points[far])
	}
	return next
}

func inertia(points [][]float64, centroids [][]float64, labels []int) float64 {
	sum := 0.0
	for i, p := range points {
		d := floats.Distance(p, centroids[labels[i]], 2)
		sum += d * d
	}
	return sum
}

func nearest(p []float64, centroids [][]float64) (int, float64) {
	idx, min := 0, math.Inf(1)
	for c, centroid := range centroids {
		if d := floats.Distance(p, centroid, 2); d < min {
			idx, min = c, d
		}
	}
	return idx, min
}

func clone(p []float64) []float64 {
	c := make([]float64, len(p))
	copy(c, p)
	return c
}

func validate(k int, points [][]float64) error {
	if len(points) == 0 {
		return fmt.Errorf("empty input: %w", FitErr)
	}
	if k < 1 {
		return fmt.Errorf("invalid cluster count '%d': %w", k, FitErr)
	}
	if k > len(points) {
		return fmt.Errorf("cluster count '%d' exceeds rows '%d': %w", k, len(points), FitErr)
	}
	for i, p := range points {
		if len(p) != Dim {
			return fmt.Errorf("row '%d' has dimension '%d' instead of '%d': %w", i, len(p), Dim, FitErr)
		}
	}
	return nil
}
