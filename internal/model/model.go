package model

import "fmt"

// Point is a position on the 2-D plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vector returns the point as a feature vector.
func (p Point) Vector() []float64 {
	return []float64{p.X, p.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%.2f,%.2f)", p.X, p.Y)
}

// Sample is a generated point together with its noise-perturbed counterpart.
type Sample struct {
	True  Point `json:"true"`
	Noisy Point `json:"noisy"`
}

// ClusterSpec holds the generation parameters for one blob.
type ClusterSpec struct {
	Center Point   `json:"center"`
	StdDev float64 `json:"std_dev"`
	Count  int     `json:"count"`
}

func (s ClusterSpec) String() string {
	return fmt.Sprintf("%v|σ=%.2f|n=%d", s.Center, s.StdDev, s.Count)
}

// Row is a sample with its assigned cluster label.
type Row struct {
	Sample
	Label int `json:"label"`
}

// Dataset is the ordered sequence of generated samples.
// Row order is generation order and all downstream consumers index into it positionally.
type Dataset []Sample

// Noisy returns the noisy coordinates as an n x 2 matrix in row order.
func (ds Dataset) Noisy() [][]float64 {
	points := make([][]float64, len(ds))
	for i, s := range ds {
		points[i] = s.Noisy.Vector()
	}
	return points
}

// Labeled is the dataset after the label column has been appended.
type Labeled []Row

// Noisy returns the noisy coordinates as an n x 2 matrix in row order.
func (l Labeled) Noisy() [][]float64 {
	points := make([][]float64, len(l))
	for i, r := range l {
		points[i] = r.Noisy.Vector()
	}
	return points
}

// Labels returns the label column.
func (l Labeled) Labels() []int {
	labels := make([]int, len(l))
	for i, r := range l {
		labels[i] = r.Label
	}
	return labels
}
