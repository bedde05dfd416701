package ml

import (
	"fmt"

	"github.com/drakos74/noisy-clusters/internal/buffer"
	"github.com/drakos74/noisy-clusters/internal/model"
)

// Metadata summarises a fitted partition.
type Metadata struct {
	Samples    int             `json:"samples"`
	K          int             `json:"k"`
	Clusters   map[int]Cluster `json:"clusters"`
	Inertia    float64         `json:"inertia"`
	Iterations int             `json:"iterations"`
	Purity     float64         `json:"purity"`
}

// Cluster describes the points assigned to one label.
type Cluster struct {
	Size  int         `json:"size"`
	Mean  model.Point `json:"mean"`
	StDev model.Point `json:"std_dev"`
	Min   model.Point `json:"min"`
	Max   model.Point `json:"max"`
}

// NewMetadata creates an empty summary for k clusters.
func NewMetadata(k int) Metadata {
	return Metadata{
		K:        k,
		Clusters: make(map[int]Cluster, k),
	}
}

// Summarize computes the per label statistics of the given partition.
func Summarize(points [][]float64, labels []int, k int) (Metadata, error) {
	if len(points) != len(labels) {
		return Metadata{}, fmt.Errorf("could not align labels with data [ %d | %d ]", len(labels), len(points))
	}
	stats := make(map[int]*buffer.StatsCollector, k)
	for i, p := range points {
		l := labels[i]
		if _, ok := stats[l]; !ok {
			stats[l] = buffer.NewStatsCollector(Dim)
		}
		stats[l].Push(p...)
	}

	meta := NewMetadata(k)
	meta.Samples = len(points)
	for l, sc := range stats {
		st := sc.Stats()
		meta.Clusters[l] = Cluster{
			Size:  sc.Size(),
			Mean:  model.Point{X: st[0].Avg(), Y: st[1].Avg()},
			StDev: model.Point{X: st[0].StDev(), Y: st[1].StDev()},
			Min:   model.Point{X: st[0].Min(), Y: st[1].Min()},
			Max:   model.Point{X: st[0].Max(), Y: st[1].Max()},
		}
	}
	return meta, nil
}

// Purity is the share of points whose label agrees with the majority origin of that label.
// It is 1 when every label maps onto exactly one origin.
func Purity(origins, labels []int) float64 {
	if len(origins) == 0 || len(origins) != len(labels) {
		return 0
	}
	counts := make(map[int]map[int]int)
	for i, l := range labels {
		if _, ok := counts[l]; !ok {
			counts[l] = make(map[int]int)
		}
		counts[l][origins[i]]++
	}
	agree := 0
	for _, byOrigin := range counts {
		max := 0
		for _, c := range byOrigin {
			if c > max {
				max = c
			}
		}
		agree += max
	}
	return float64(agree) / float64(len(labels))
}
