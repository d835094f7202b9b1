// Copyright 2026 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package scatteradd

// Strided is a view of Len elements of Data, beginning at Offset and
// spaced Stride elements apart: element i of the view is
// Data[Offset+i*Stride]. A Strided with Stride 1 is contiguous.
type Strided[T any] struct {
	Data   []T
	Offset int
	Stride int
	Len    int
}

// Contiguous returns a view of the whole slice s.
func Contiguous[T any](s []T) Strided[T] {
	return Strided[T]{Data: s, Stride: 1, Len: len(s)}
}

// Column returns a view of column col of the row-major table data,
// which has width columns per row. Trailing elements that do not form
// a complete row are not part of the view.
func Column[T any](data []T, width, col int) Strided[T] {
	s := Strided[T]{Data: data, Offset: col, Stride: width}
	if width > 0 {
		s.Len = len(data) / width
	}
	return s
}

// At returns element i of the view.
func (s Strided[T]) At(i int) T {
	return s.Data[s.Offset+i*s.Stride]
}

// IsContiguous tells whether the view's elements are adjacent in
// memory.
func (s Strided[T]) IsContiguous() bool {
	return s.Stride == 1 || s.Len <= 1
}

// Slice returns the view as a slice, sharing storage with Data, if
// the view is contiguous.
func (s Strided[T]) Slice() ([]T, bool) {
	if !s.IsContiguous() {
		return nil, false
	}
	if s.Len == 0 {
		return s.Data[:0], true
	}
	return s.Data[s.Offset : s.Offset+s.Len], true
}

// valid returns an error if the view addresses elements outside of
// Data.
func (s Strided[T]) valid(name string) error {
	switch {
	case s.Len < 0:
		return invalidArgument(name, "negative length %d", s.Len)
	case s.Len == 0:
		return nil
	case s.Stride < 1:
		return invalidArgument(name, "stride %d is not positive", s.Stride)
	case s.Offset < 0:
		return invalidArgument(name, "negative offset %d", s.Offset)
	case s.Offset >= len(s.Data) || (len(s.Data)-1-s.Offset)/s.Stride < s.Len-1:
		return invalidArgument(name, "view of %d elements with offset %d and stride %d exceeds data of length %d",
			s.Len, s.Offset, s.Stride, len(s.Data))
	}
	return nil
}

// AccumulateStrided adds values.At(i) to dst[indices.At(i)] for every
// element i of the views. It has the same semantics as
// AccumulateInto; if both views are contiguous, it is equivalent to
// calling AccumulateInto on their slices. Malformed views are
// reported as invalid arguments.
func AccumulateStrided[I Index, V Number](dst []V, indices Strided[I], values Strided[V]) error {
	if len(dst) == 0 {
		return invalidArgument("bucket count", "0 is not positive")
	}
	if err := indices.valid("index view"); err != nil {
		return err
	}
	if err := values.valid("value view"); err != nil {
		return err
	}
	if indices.Len != values.Len {
		return lengthMismatch(indices.Len, values.Len)
	}
	ix, ok1 := indices.Slice()
	vx, ok2 := values.Slice()
	if ok1 && ok2 {
		if pos := firstOutOfRange(ix, len(dst)); pos >= 0 {
			return indexOutOfRange(pos, ix[pos], len(dst))
		}
		scatter(dst, ix, vx)
		return nil
	}
	limit := uint64(len(dst))
	for i := 0; i < indices.Len; i++ {
		if k := indices.At(i); k < 0 || uint64(k) >= limit {
			return indexOutOfRange(i, k, len(dst))
		}
	}
	scatterStrided(dst, indices, values)
	return nil
}

func scatterStrided[I Index, V Number](dst []V, indices Strided[I], values Strided[V]) {
	var (
		ip, is = indices.Offset, indices.Stride
		vp, vs = values.Offset, values.Stride
	)
	for i := 0; i < indices.Len; i++ {
		dst[int(indices.Data[ip])] += values.Data[vp]
		ip += is
		vp += vs
	}
}
