// Copyright 2026 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package scatteradd

// Accumulate returns a new buffer of buckets accumulators in which
// output[k] = initial[k] + sum(values[i] for i where indices[i] == k).
// If initial is nil, the buffer starts out zeroed; otherwise it must
// have length buckets, and is not modified.
//
// Accumulate fails without side effects if buckets is not positive,
// if the index and value sequences differ in length, or if any index
// lies outside of [0, buckets).
func Accumulate[I Index, V Number](indices []I, values []V, buckets int, initial []V) ([]V, error) {
	if buckets <= 0 {
		return nil, invalidArgument("bucket count", "%d is not positive", buckets)
	}
	if initial != nil && len(initial) != buckets {
		return nil, invalidArgument("initial buffer", "length %d, want %d buckets", len(initial), buckets)
	}
	if err := check(indices, values, buckets); err != nil {
		return nil, err
	}
	out := make([]V, buckets)
	copy(out, initial)
	scatter(out, indices, values)
	return out, nil
}

// AccumulateInto adds values[i] to dst[indices[i]] for every i. The
// number of buckets is len(dst), and dst holds their initial state.
// AccumulateInto writes nothing to dst if it returns an error.
func AccumulateInto[I Index, V Number](dst []V, indices []I, values []V) error {
	if len(dst) == 0 {
		return invalidArgument("bucket count", "0 is not positive")
	}
	if err := check(indices, values, len(dst)); err != nil {
		return err
	}
	scatter(dst, indices, values)
	return nil
}

// Check validates that indices and values have the same length and
// that every index lies in [0, buckets).
func check[I Index, V Number](indices []I, values []V, buckets int) error {
	if len(indices) != len(values) {
		return lengthMismatch(len(indices), len(values))
	}
	if pos := firstOutOfRange(indices, buckets); pos >= 0 {
		return indexOutOfRange(pos, indices[pos], buckets)
	}
	return nil
}

// FirstOutOfRange returns the position of the first index outside of
// [0, buckets), or -1 if there is none.
func firstOutOfRange[I Index](indices []I, buckets int) int {
	limit := uint64(buckets)
	for i, k := range indices {
		if k < 0 || uint64(k) >= limit {
			return i
		}
	}
	return -1
}

// Scatter is the unchecked kernel.
func scatter[I Index, V Number](dst []V, indices []I, values []V) {
	values = values[:len(indices)]
	for i, k := range indices {
		dst[int(k)] += values[i]
	}
}
