package bloom

import "math"

// FalsePositiveRate estimates the false positive rate after n insertions:
//
//	(1 - e^(-k*n/m))^k
//
// This is the closed form estimate assuming uniformly distributed hashes, not
// a measured rate.
func (f *Filter) FalsePositiveRate(n float64) float64 {
	k := float64(f.k)
	return math.Pow(1-math.Exp(-k*(n/float64(f.mBits))), k)
}

// ExpectedFalsePositiveRate is the estimate at the element count the filter
// was sized for.
func (f *Filter) ExpectedFalsePositiveRate() float64 {
	return f.FalsePositiveRate(float64(f.expected))
}

// CurrentFalsePositiveRate is the estimate at the current insert count.
func (f *Filter) CurrentFalsePositiveRate() float64 {
	return f.FalsePositiveRate(float64(f.inserted))
}
