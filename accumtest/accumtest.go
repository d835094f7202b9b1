// Copyright 2026 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package accumtest provides reference implementations and input
// generators for testing indexed accumulation.
package accumtest

import (
	"math"
	"math/rand"

	fuzz "github.com/google/gofuzz"
	"github.com/grailbio/scatteradd"
)

// Reference computes indexed accumulation by filtering and summing
// the inputs separately for every bucket. It shares no code with the
// kernels under test, and takes time proportional to
// len(indices)*buckets, so it is suitable only for small inputs.
// Its sums are added in input order, and so are bit-identical to
// those of a correct sequential kernel.
func Reference[I scatteradd.Index, V scatteradd.Number](indices []I, values []V, buckets int, initial []V) []V {
	out := make([]V, buckets)
	for k := range out {
		var sum V
		if initial != nil {
			sum = initial[k]
		}
		for i, ix := range indices {
			if uint64(ix) == uint64(k) {
				sum += values[i]
			}
		}
		out[k] = sum
	}
	return out
}

// Sum returns the sum of xs, accumulated in float64.
func Sum[V scatteradd.Number](xs []V) float64 {
	var sum float64
	for _, x := range xs {
		sum += float64(x)
	}
	return sum
}

// AbsSum returns the sum of the magnitudes of xs.
func AbsSum(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += math.Abs(x)
	}
	return sum
}

// Tolerance returns an error bound for the floating point
// summation of n terms whose magnitudes sum to abs.
func Tolerance(n int, abs float64) float64 {
	const eps = 1.0 / (1 << 52)
	return float64(n+1) * eps * abs
}

// AlmostEqual tells whether x and y have the same length and differ
// element-wise by at most tol.
func AlmostEqual(x, y []float64, tol float64) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if math.Abs(x[i]-y[i]) > tol {
			return false
		}
	}
	return true
}

// Uniform returns n indices drawn uniformly from [0, buckets).
func Uniform(r *rand.Rand, n, buckets int) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = r.Intn(buckets)
	}
	return indices
}

// Skewed returns n indices in [0, buckets), exponentially
// concentrated in the first few buckets.
func Skewed(r *rand.Rand, n, buckets int) []int {
	indices := make([]int, n)
	for i := range indices {
		k := int(r.ExpFloat64() * 2)
		if k >= buckets {
			k = buckets - 1
		}
		indices[i] = k
	}
	return indices
}

// Normal returns n values drawn from the standard normal
// distribution.
func Normal(r *rand.Rand, n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = r.NormFloat64()
	}
	return values
}

// Fuzz returns fuzzed index and value sequences of equal length,
// with indices in [0, buckets).
func Fuzz(fz *fuzz.Fuzzer, buckets int) ([]int, []float64) {
	var raw []uint32
	fz.Fuzz(&raw)
	var (
		indices = make([]int, len(raw))
		values  = make([]float64, len(raw))
	)
	for i := range raw {
		indices[i] = int(raw[i] % uint32(buckets))
		fz.Fuzz(&values[i])
	}
	return indices, values
}
