// Copyright 2026 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package scatteradd

// Index is the set of element types that may be used to select
// buckets. Signed indices are rejected if negative.
type Index interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Number is the set of element types that may be accumulated.
// Integer accumulation wraps on overflow, as Go's integer arithmetic
// does; floating point accumulation follows IEEE 754, so that NaNs
// and infinities propagate into their buckets.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}
