// Copyright 2026 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

/*
	Package scatteradd implements indexed accumulation: given a
	sequence of (index, value) pairs and a fixed-size buffer of
	accumulators, each value is added to the accumulator ("bucket")
	selected by its index. This is the kernel underneath weighted
	histograms, per-pixel group-by sums and sparse scatter-adds.

	Accumulate and AccumulateInto are the main entry points. They are
	specialized at compile time over the index and value element types,
	and they perform a single left-to-right pass, so that results are
	bit-reproducible from run to run. Unlike the unchecked loops this
	pattern is usually written as, every entry point validates its
	inputs in full before it writes to the output: a failed call leaves
	the output untouched.

	Other entry points serve the same reduction under different input
	shapes and execution strategies:

	AccumulateStrided accepts non-contiguous views (Strided), for
	example a column of interleaved records.

	AccumulateDynamic accepts untyped slices and dispatches on every
	element through reflection. It is the slow baseline against which
	the specialized kernels are compared.

	AccumulateParallel partitions the bucket range among a set of
	workers. Since every bucket is owned by exactly one worker, which
	visits its contributions in input order, its results are identical
	to those of the sequential kernel.

	All errors are of kind errors.Invalid (github.com/grailbio/base/errors);
	IsLengthMismatch, IsIndexOutOfRange and IsInvalidArgument
	distinguish among them.

	Package github.com/grailbio/scatteradd/groupby provides the
	variant in which the set of buckets is inferred from arbitrary
	keys rather than supplied by the caller.
*/
package scatteradd
