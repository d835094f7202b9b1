// Copyright 2026 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package scatteradd

import (
	"reflect"
)

// AccumulateDynamic is an untyped version of Accumulate. Indices must
// be a slice of any integer type, and values and initial (if not nil)
// slices of the same numeric type; a nil initial slice is treated as
// zeros, as in Accumulate. The returned value is a new slice of that
// type.
//
// AccumulateDynamic dispatches on each element through reflection.
// It computes exactly what Accumulate does, at a fraction of its
// speed; it serves as a baseline for the specialized kernels.
func AccumulateDynamic(indices, values interface{}, buckets int, initial interface{}) (interface{}, error) {
	if buckets <= 0 {
		return nil, invalidArgument("bucket count", "%d is not positive", buckets)
	}
	ix, vx := reflect.ValueOf(indices), reflect.ValueOf(values)
	if ix.Kind() != reflect.Slice || !isInteger(ix.Type().Elem().Kind()) {
		return nil, invalidArgument("indices", "%T is not a slice of integers", indices)
	}
	if vx.Kind() != reflect.Slice || !isNumber(vx.Type().Elem().Kind()) {
		return nil, invalidArgument("values", "%T is not a slice of numbers", values)
	}
	out := reflect.MakeSlice(vx.Type(), buckets, buckets)
	if seed := reflect.ValueOf(initial); initial != nil && !(seed.Kind() == reflect.Slice && seed.IsNil()) {
		if seed.Type() != vx.Type() {
			return nil, invalidArgument("initial buffer", "%T does not match values of type %T", initial, values)
		}
		if seed.Len() != buckets {
			return nil, invalidArgument("initial buffer", "length %d, want %d buckets", seed.Len(), buckets)
		}
		reflect.Copy(out, seed)
	}
	if ix.Len() != vx.Len() {
		return nil, lengthMismatch(ix.Len(), vx.Len())
	}
	pos := make([]int, ix.Len())
	for i := range pos {
		k, ok := bucketOf(ix.Index(i), buckets)
		if !ok {
			return nil, indexOutOfRange(i, ix.Index(i).Interface(), buckets)
		}
		pos[i] = k
	}
	for i, k := range pos {
		addValue(out.Index(k), vx.Index(i))
	}
	return out.Interface(), nil
}

// BucketOf returns the bucket selected by the integer value v, and
// whether it lies in [0, buckets).
func bucketOf(v reflect.Value, buckets int) (int, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		k := v.Int()
		return int(k), k >= 0 && k < int64(buckets)
	default:
		k := v.Uint()
		return int(k), k < uint64(buckets)
	}
}

// AddValue adds e to the accumulator a, which must be settable and of
// the same type. Narrow integers wrap and float32 sums are rounded to
// float32, matching typed arithmetic.
func addValue(a, e reflect.Value) {
	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		a.SetInt(a.Int() + e.Int())
	case reflect.Float32, reflect.Float64:
		a.SetFloat(a.Float() + e.Float())
	default:
		a.SetUint(a.Uint() + e.Uint())
	}
}

func isInteger(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isNumber(k reflect.Kind) bool {
	return isInteger(k) || k == reflect.Float32 || k == reflect.Float64
}
