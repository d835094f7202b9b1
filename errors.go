// Copyright 2026 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package scatteradd

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

// A LengthMismatchError is the cause of errors returned when the
// index and value sequences have different lengths.
type LengthMismatchError struct {
	Indices, Values int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("length mismatch: %d indices, %d values", e.Indices, e.Values)
}

// An IndexOutOfRangeError is the cause of errors returned when an
// index does not lie in [0, Buckets). Pos is the position of the
// first such index in the index sequence.
type IndexOutOfRangeError struct {
	Pos     int
	Index   interface{}
	Buckets int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("index %v at position %d out of range [0, %d)", e.Index, e.Pos, e.Buckets)
}

// An InvalidArgumentError is the cause of errors returned for
// malformed arguments other than the above, for example a
// non-positive bucket count.
type InvalidArgumentError struct {
	Arg    string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Arg, e.Reason)
}

func lengthMismatch(indices, values int) error {
	return errors.E(errors.Invalid, "scatteradd", &LengthMismatchError{indices, values})
}

func indexOutOfRange(pos int, index interface{}, buckets int) error {
	return errors.E(errors.Invalid, "scatteradd", &IndexOutOfRangeError{pos, index, buckets})
}

func invalidArgument(arg, format string, args ...interface{}) error {
	return errors.E(errors.Invalid, "scatteradd", &InvalidArgumentError{arg, fmt.Sprintf(format, args...)})
}

// Cause returns the typed cause underlying an error returned by this
// package, or err itself if it carries none.
func Cause(err error) error {
	for {
		e, ok := err.(*errors.Error)
		if !ok || e.Err == nil {
			return err
		}
		err = e.Err
	}
}

// IsLengthMismatch tells whether err was caused by index and value
// sequences of different lengths.
func IsLengthMismatch(err error) bool {
	_, ok := Cause(err).(*LengthMismatchError)
	return ok
}

// IsIndexOutOfRange tells whether err was caused by an index outside
// of the bucket range.
func IsIndexOutOfRange(err error) bool {
	_, ok := AsIndexOutOfRange(err)
	return ok
}

// AsIndexOutOfRange returns the IndexOutOfRangeError underlying err,
// if any.
func AsIndexOutOfRange(err error) (*IndexOutOfRangeError, bool) {
	e, ok := Cause(err).(*IndexOutOfRangeError)
	return e, ok
}

// IsInvalidArgument tells whether err was caused by a malformed
// argument, such as a non-positive bucket count.
func IsInvalidArgument(err error) bool {
	_, ok := Cause(err).(*InvalidArgumentError)
	return ok
}

// LengthMismatch returns the error reported when n indices (or keys)
// are paired with m values. It is provided for packages that layer
// other accumulations over this one.
func LengthMismatch(n, m int) error {
	return lengthMismatch(n, m)
}
