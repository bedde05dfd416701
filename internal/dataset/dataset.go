package dataset

import (
	"errors"
	"fmt"

	"github.com/drakos74/noisy-clusters/internal/model"
	"github.com/rs/zerolog/log"
)

// TableConstructionErr signals a shape mismatch while assembling the labeled table.
var TableConstructionErr = errors.New("could not construct table")

// Generator produces the samples for one cluster spec.
type Generator interface {
	Cluster(spec model.ClusterSpec) ([]model.Sample, error)
}

// Assemble generates every spec in order and concatenates the samples.
func Assemble(gen Generator, specs []model.ClusterSpec) (model.Dataset, error) {
	ds := make(model.Dataset, 0, size(specs))
	for i, spec := range specs {
		samples, err := gen.Cluster(spec)
		if err != nil {
			return nil, fmt.Errorf("could not generate cluster '%d' %v: %w", i, spec, err)
		}
		ds = append(ds, samples...)
		log.Debug().
			Int("index", i).
			Str("spec", spec.String()).
			Int("samples", len(samples)).
			Msg("generated cluster")
	}
	return ds, nil
}

// Origins returns the index of the originating spec for every row Assemble produces.
func Origins(specs []model.ClusterSpec) []int {
	origins := make([]int, 0, size(specs))
	for i, spec := range specs {
		for j := 0; j < spec.Count; j++ {
			origins = append(origins, i)
		}
	}
	return origins
}

// Label appends the label column to the dataset.
func Label(ds model.Dataset, labels []int) (model.Labeled, error) {
	if len(ds) != len(labels) {
		return nil, fmt.Errorf("rows '%d' vs labels '%d': %w", len(ds), len(labels), TableConstructionErr)
	}
	rows := make(model.Labeled, len(ds))
	for i, s := range ds {
		rows[i] = model.Row{
			Sample: s,
			Label:  labels[i],
		}
	}
	return rows, nil
}

func size(specs []model.ClusterSpec) int {
	n := 0
	for _, spec := range specs {
		if spec.Count > 0 {
			n += spec.Count
		}
	}
	return n
}
