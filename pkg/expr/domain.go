// Copyright 2025-2026 The fnplot Authors. SPDX-License-Identifier: Apache-2.0

package expr

const (
	// DomainMin is the first x value of the StandardDomain.
	DomainMin = -10

	// DomainMax is the last x value of the StandardDomain.
	DomainMax = 10
)

// Domain is the ordered sequence of x values an expression is sampled at.
type Domain []float64

// StandardDomain returns the fixed plotting domain: the 21 integers from DomainMin to DomainMax, inclusive.
//
// A new slice is returned on every call, so callers can't mutate the domain seen by others.
func StandardDomain() Domain {
	return IntegerDomain(DomainMin, DomainMax)
}

// IntegerDomain returns the integers from `from` to `to`, inclusive. It returns an empty domain if to < from.
func IntegerDomain(from, to int) Domain {
	if to < from {
		return Domain{}
	}
	d := make(Domain, 0, to-from+1)
	for x := from; x <= to; x++ {
		d = append(d, float64(x))
	}
	return d
}

// Sample is one (x, y) pair of a SampleSeries.
type Sample struct {
	X, Y float64
}

// SampleSeries is the ordered list of samples produced by evaluating an expression over a Domain.
// Index i always corresponds to the i-th element of the Domain.
//
// It implements gonum's `plotter.XYer` interface.
type SampleSeries []Sample

// Len returns the number of samples.
func (s SampleSeries) Len() int { return len(s) }

// XY returns the i-th sample.
func (s SampleSeries) XY(i int) (x, y float64) { return s[i].X, s[i].Y }

// Xs returns the x values, in order.
func (s SampleSeries) Xs() []float64 {
	xs := make([]float64, len(s))
	for ii, sample := range s {
		xs[ii] = sample.X
	}
	return xs
}

// Ys returns the y values, in order.
func (s SampleSeries) Ys() []float64 {
	ys := make([]float64, len(s))
	for ii, sample := range s {
		ys[ii] = sample.Y
	}
	return ys
}

// Clone returns a copy of the series that doesn't share storage with s.
func (s SampleSeries) Clone() SampleSeries {
	if s == nil {
		return nil
	}
	return append(SampleSeries(nil), s...)
}
