package feature

import (
	"fmt"
	"math"
	"sort"
)

// Metric scores the dissimilarity of two descriptors. Implementations must be
// symmetric and return finite, non-negative values for valid descriptors; they
// need not satisfy the triangle inequality.
type Metric interface {
	Distance(a, b Descriptor) float64
}

// MetricFunc adapts a plain function into a Metric.
type MetricFunc func(a, b Descriptor) float64

// Distance implements Metric.
func (f MetricFunc) Distance(a, b Descriptor) float64 { return f(a, b) }

// Metric names accepted by Lookup.
const (
	MetricBhattacharyya = "bhattacharyya"
	MetricIntersection  = "intersection"
	MetricCorrelation   = "correlation"
)

// DefaultMetric is the metric used when none is configured.
const DefaultMetric = MetricBhattacharyya

// Bhattacharyya returns the Bhattacharyya distance between two histograms:
// sqrt(1 − BC) where BC is the Bhattacharyya coefficient Σ√(aᵢ·bᵢ) scaled by
// the histogram masses. Zero for identical distributions, 1 for disjoint ones.
func Bhattacharyya(a, b Descriptor) float64 {
	var coeff, sumA, sumB float64
	for i := range a {
		coeff += math.Sqrt(a[i] * b[i])
		sumA += a[i]
		sumB += b[i]
	}
	norm := math.Sqrt(sumA * sumB)
	if norm == 0 {
		return 0
	}
	d := 1 - coeff/norm
	if d < 0 {
		d = 0 // guard against rounding pushing the sqrt argument negative
	}
	return math.Sqrt(d)
}

// Intersection returns one minus the histogram intersection Σ min(aᵢ, bᵢ).
// For unit-mass histograms this is 0 for identical inputs and 1 for disjoint
// ones.
func Intersection(a, b Descriptor) float64 {
	var overlap float64
	for i := range a {
		overlap += math.Min(a[i], b[i])
	}
	d := 1 - overlap
	if d < 0 {
		d = 0
	}
	return d
}

// Correlation returns (1 − r) / 2 where r is the Pearson correlation of the
// two histograms, mapping perfect correlation to 0 and perfect
// anti-correlation to 1. Degenerate (constant) histograms compare as
// maximally distant to everything except an identical constant histogram.
func Correlation(a, b Descriptor) float64 {
	n := float64(len(a))
	if n == 0 {
		return 0
	}
	var sumA, sumB float64
	for i := range a {
		sumA += a[i]
		sumB += b[i]
	}
	meanA, meanB := sumA/n, sumB/n

	var cov, varA, varB float64
	for i := range a {
		da, db := a[i]-meanA, b[i]-meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}
	if varA == 0 && varB == 0 {
		return 0
	}
	if varA == 0 || varB == 0 {
		return 1
	}
	r := cov / math.Sqrt(varA*varB)
	d := (1 - r) / 2
	if d < 0 {
		d = 0
	}
	return d
}

var metrics = map[string]Metric{
	MetricBhattacharyya: MetricFunc(Bhattacharyya),
	MetricIntersection:  MetricFunc(Intersection),
	MetricCorrelation:   MetricFunc(Correlation),
}

// Lookup returns the named metric, or an error listing the valid names.
func Lookup(name string) (Metric, error) {
	if m, ok := metrics[name]; ok {
		return m, nil
	}
	return nil, fmt.Errorf("unknown metric %q (valid: %v)", name, MetricNames())
}

// MetricNames returns the registered metric names in sorted order.
func MetricNames() []string {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
