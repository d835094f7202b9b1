// Copyright 2026 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package scatteradd_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/grailbio/scatteradd"
	"github.com/grailbio/scatteradd/accumtest"
	"github.com/grailbio/scatteradd/stats"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

var strategies = []scatteradd.Strategy{scatteradd.Shuffle, scatteradd.ScanAll}

func bitsEqual(t *testing.T, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d buckets, want %d", len(got), len(want))
	}
	for k := range got {
		if math.Float64bits(got[k]) != math.Float64bits(want[k]) {
			t.Errorf("bucket %d: got %v, want %v", k, got[k], want[k])
		}
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	r := rand.New(rand.NewSource(6))
	for _, gen := range []struct {
		name string
		gen  func(r *rand.Rand, n, m int) []int
	}{
		{"uniform", accumtest.Uniform},
		{"skewed", accumtest.Skewed},
	} {
		for _, n := range []int{1, 100, 20000} {
			for _, m := range []int{1, 3, 1000} {
				var (
					indices = gen.gen(r, n, m)
					values  = accumtest.Normal(r, n)
					initial = accumtest.Normal(r, m)
				)
				want, err := scatteradd.Accumulate(indices, values, m, initial)
				assert.NoError(t, err)
				for _, strategy := range strategies {
					for _, p := range []int{1, 2, 7, 64} {
						dst := append([]float64(nil), initial...)
						err := scatteradd.AccumulateParallel(dst, indices, values,
							scatteradd.Parallelism(p),
							scatteradd.MinParallel(1),
							scatteradd.WithStrategy(strategy))
						assert.NoError(t, err)
						bitsEqual(t, dst, want)
					}
				}
			}
		}
	}
}

func TestParallelErrors(t *testing.T) {
	const n = 10000
	for _, strategy := range strategies {
		indices := make([]int, n)
		values := make([]float64, n)
		for i := range indices {
			indices[i] = i % 10
			values[i] = 1
		}
		indices[7001] = 10
		indices[9999] = -1
		indices[3002] = 11
		dst := make([]float64, 10)
		err := scatteradd.AccumulateParallel(dst, indices, values,
			scatteradd.Parallelism(4),
			scatteradd.MinParallel(1),
			scatteradd.WithStrategy(strategy),
			scatteradd.WithConfig(&scatteradd.Config{Chunk: 100}))
		e, ok := scatteradd.AsIndexOutOfRange(err)
		if !ok {
			t.Fatalf("unexpected error %v", err)
		}
		if got, want := e.Pos, 3002; got != want {
			t.Errorf("got %v, want %v", got, want)
		}
		expect.EQ(t, dst, make([]float64, 10))

		err = scatteradd.AccumulateParallel(dst, indices[:5], values, scatteradd.MinParallel(1))
		if !scatteradd.IsLengthMismatch(err) {
			t.Errorf("wrong error %v", err)
		}
		err = scatteradd.AccumulateParallel(nil, indices, values)
		if !scatteradd.IsInvalidArgument(err) {
			t.Errorf("wrong error %v", err)
		}
	}
}

func TestParallelStats(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	var (
		indices = accumtest.Uniform(r, 5000, 100)
		values  = accumtest.Normal(r, 5000)
		coll    = stats.NewMap()
	)
	dst := make([]float64, 100)
	assert.NoError(t, scatteradd.AccumulateParallel(dst, indices, values,
		scatteradd.Parallelism(8), scatteradd.MinParallel(1000), scatteradd.WithStats(coll)))
	assert.NoError(t, scatteradd.AccumulateParallel(dst, indices[:10], values[:10],
		scatteradd.Parallelism(8), scatteradd.MinParallel(1000), scatteradd.WithStats(coll)))
	vals := coll.Snapshot()
	expect.EQ(t, vals["pairs"], int64(5010))
	expect.EQ(t, vals["parallel"], int64(1))
	expect.EQ(t, vals["sequential"], int64(1))
	expect.EQ(t, vals["workers"], int64(8))
	expect.EQ(t, vals["chunks"], int64(8))
}

func TestParallelFewBuckets(t *testing.T) {
	// More workers than buckets: each bucket gets its own worker.
	coll := stats.NewMap()
	dst := make([]int64, 2)
	indices := []int{0, 1, 1, 0, 1}
	assert.NoError(t, scatteradd.AccumulateParallel(dst, indices, []int64{1, 2, 3, 4, 5},
		scatteradd.Parallelism(16), scatteradd.MinParallel(1), scatteradd.WithStats(coll)))
	expect.EQ(t, dst, []int64{5, 10})
	expect.EQ(t, coll.Snapshot()["workers"], int64(2))
}

func TestParseStrategy(t *testing.T) {
	for _, s := range strategies {
		got, err := scatteradd.ParseStrategy(s.String())
		assert.NoError(t, err)
		expect.EQ(t, got, s)
	}
	_, err := scatteradd.ParseStrategy("atomic")
	if !scatteradd.IsInvalidArgument(err) {
		t.Errorf("wrong error %v", err)
	}
}
