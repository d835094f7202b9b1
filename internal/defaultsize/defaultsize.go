// Copyright 2026 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package defaultsize holds flag-configurable defaults for the sizes
// at which scatteradd switches strategies.
package defaultsize

import "flag"

var (
	// MinParallel is the smallest number of (index, value) pairs for
	// which parallel accumulation fans out to multiple workers.
	MinParallel int
	// Chunk is the number of indices validated by each task during
	// parallel validation.
	Chunk int
)

func init() {
	flag.IntVar(&MinParallel, "scatteradd-min-parallel-pairs", 1<<16,
		"smallest number of pairs accumulated in parallel")
	flag.IntVar(&Chunk, "scatteradd-validate-chunk-pairs", 1<<18,
		"number of indices validated per task in parallel accumulation")
}
