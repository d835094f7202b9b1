// Copyright 2026 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package scatteradd_test

import (
	"math/rand"
	"reflect"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/grailbio/scatteradd"
	"github.com/grailbio/scatteradd/accumtest"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func TestAccumulateDynamic(t *testing.T) {
	out, err := scatteradd.AccumulateDynamic(
		[]int{0, 2, 0, 1},
		[]float64{1.0, 5.0, 3.0, 2.0},
		3, []float64{0, 0, 0})
	assert.NoError(t, err)
	expect.EQ(t, out, []float64{4.0, 2.0, 5.0})
}

func TestDynamicMatchesTyped(t *testing.T) {
	fz := fuzz.NewWithSeed(31415).NilChance(0).NumElements(0, 500)
	r := rand.New(rand.NewSource(5))
	for _, m := range []int{1, 10, 100} {
		for i := 0; i < 20; i++ {
			indices, values := accumtest.Fuzz(fz, m)
			initial := accumtest.Normal(r, m)
			typed, err := scatteradd.Accumulate(indices, values, m, initial)
			assert.NoError(t, err)
			dynamic, err := scatteradd.AccumulateDynamic(indices, values, m, initial)
			assert.NoError(t, err)
			if !reflect.DeepEqual(dynamic, typed) {
				t.Fatalf("got %v, want %v", dynamic, typed)
			}
		}
	}
}

func TestDynamicTypes(t *testing.T) {
	var (
		i8  = []int8{1, 1}
		u64 = []uint64{1, 1}
	)
	out, err := scatteradd.AccumulateDynamic(i8, []int8{100, 100}, 2, nil)
	assert.NoError(t, err)
	typed, err := scatteradd.Accumulate(i8, []int8{100, 100}, 2, nil)
	assert.NoError(t, err)
	expect.EQ(t, out, typed)

	out, err = scatteradd.AccumulateDynamic(u64, []float32{0.1, 0.2}, 2, nil)
	assert.NoError(t, err)
	f32, err := scatteradd.Accumulate(u64, []float32{0.1, 0.2}, 2, nil)
	assert.NoError(t, err)
	expect.EQ(t, out, f32)

	out, err = scatteradd.AccumulateDynamic([]uint16{0}, []uint{7}, 1, []uint{1})
	assert.NoError(t, err)
	expect.EQ(t, out, []uint{8})
}

func TestDynamicErrors(t *testing.T) {
	for _, c := range []struct {
		name            string
		indices, values interface{}
		buckets         int
		initial         interface{}
		is              func(error) bool
	}{
		{"float indices", []float64{0}, []float64{1}, 1, nil, scatteradd.IsInvalidArgument},
		{"string values", []int{0}, []string{"x"}, 1, nil, scatteradd.IsInvalidArgument},
		{"not a slice", 0, []float64{1}, 1, nil, scatteradd.IsInvalidArgument},
		{"buckets", []int{0}, []float64{1}, 0, nil, scatteradd.IsInvalidArgument},
		{"initial type", []int{0}, []float64{1}, 1, []float32{0}, scatteradd.IsInvalidArgument},
		{"initial length", []int{0}, []float64{1}, 1, []float64{0, 0}, scatteradd.IsInvalidArgument},
		{"length", []int{0, 1}, []float64{1}, 5, nil, scatteradd.IsLengthMismatch},
		{"boundary", []int{5}, []float64{1}, 5, nil, scatteradd.IsIndexOutOfRange},
		{"negative", []int32{-1}, []float64{1}, 5, nil, scatteradd.IsIndexOutOfRange},
		{"unsigned", []uint8{200}, []float64{1}, 5, nil, scatteradd.IsIndexOutOfRange},
	} {
		t.Run(c.name, func(t *testing.T) {
			out, err := scatteradd.AccumulateDynamic(c.indices, c.values, c.buckets, c.initial)
			if out != nil {
				t.Errorf("got %v, want nil", out)
			}
			if !c.is(err) {
				t.Errorf("wrong error %v", err)
			}
		})
	}
}

func TestDynamicBucketsCheckedFirst(t *testing.T) {
	for _, buckets := range []int{0, -3} {
		_, err := scatteradd.AccumulateDynamic([]float64{0}, []string{"x"}, buckets, nil)
		cause, ok := scatteradd.Cause(err).(*scatteradd.InvalidArgumentError)
		if !ok {
			t.Fatalf("buckets=%d: wrong error %v", buckets, err)
		}
		if got, want := cause.Arg, "bucket count"; got != want {
			t.Errorf("buckets=%d: got %v, want %v", buckets, got, want)
		}
	}
}
