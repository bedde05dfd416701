package math

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/drakos74/noisy-clusters/internal/model"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultNoise is the standard deviation of the perturbation applied to every generated point.
const DefaultNoise = 0.05

// GenerationErr signals invalid distribution parameters.
var GenerationErr = errors.New("invalid generation parameters")

// NewSource creates a random source for the given seed.
// A zero seed creates a time seeded source.
func NewSource(seed uint64) rand.Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.NewSource(seed)
}

// Generator produces noisy samples around cluster centers.
type Generator struct {
	src   rand.Source
	noise float64
}

// NewGenerator creates a new generator drawing from the given source.
// if src is nil, a time seeded one is used.
func NewGenerator(src rand.Source, noise float64) *Generator {
	if src == nil {
		src = NewSource(0)
	}
	return &Generator{
		src:   src,
		noise: noise,
	}
}

// Cluster generates spec.Count samples around the spec center.
func (g *Generator) Cluster(spec model.ClusterSpec) ([]model.Sample, error) {
	if !positive(spec.StdDev) {
		return nil, fmt.Errorf("std-dev '%v' for %v: %w", spec.StdDev, spec.Center, GenerationErr)
	}
	if !positive(g.noise) {
		return nil, fmt.Errorf("noise '%v': %w", g.noise, GenerationErr)
	}
	if spec.Count < 0 {
		return nil, fmt.Errorf("count '%d' for %v: %w", spec.Count, spec.Center, GenerationErr)
	}

	x := distuv.Normal{Mu: spec.Center.X, Sigma: spec.StdDev, Src: g.src}
	y := distuv.Normal{Mu: spec.Center.Y, Sigma: spec.StdDev, Src: g.src}
	noise := distuv.Normal{Mu: 0, Sigma: g.noise, Src: g.src}

	samples := make([]model.Sample, 0, spec.Count)
	for i := 0; i < spec.Count; i++ {
		p := model.Point{X: x.Rand(), Y: y.Rand()}
		samples = append(samples, model.Sample{
			True: p,
			Noisy: model.Point{
				X: p.X + noise.Rand(),
				Y: p.Y + noise.Rand(),
			},
		})
	}
	return samples, nil
}

func positive(f float64) bool {
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}
