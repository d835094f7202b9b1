// Copyright 2026 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package main

import (
	"github.com/grailbio/scatteradd"
	"github.com/grailbio/scatteradd/groupby"
)

type input struct {
	indices []int
	values  []float64
	buckets int
	config  *scatteradd.Config
}

// A strategy accumulates the input's values into a new buffer of
// the input's bucket count.
type strategy func(in input) ([]float64, error)

var strategyNames = []string{"dynamic", "groupby", "typed", "strided", "parallel"}

var strategies = map[string]strategy{
	"dynamic": func(in input) ([]float64, error) {
		out, err := scatteradd.AccumulateDynamic(in.indices, in.values, in.buckets, nil)
		if err != nil {
			return nil, err
		}
		return out.([]float64), nil
	},
	"groupby": func(in input) ([]float64, error) {
		keys, sums, err := groupby.Sum(in.indices, in.values)
		if err != nil {
			return nil, err
		}
		out := make([]float64, in.buckets)
		for i, k := range keys {
			out[k] = sums[i]
		}
		return out, nil
	},
	"typed": func(in input) ([]float64, error) {
		return scatteradd.Accumulate(in.indices, in.values, in.buckets, nil)
	},
	"strided": func(in input) ([]float64, error) {
		// Two-channel pixels (v, v*v), stored interleaved; the first
		// channel is accumulated.
		pixels := make([]float64, 2*len(in.values))
		for i, v := range in.values {
			pixels[2*i] = v
			pixels[2*i+1] = v * v
		}
		out := make([]float64, in.buckets)
		err := scatteradd.AccumulateStrided(out,
			scatteradd.Contiguous(in.indices),
			scatteradd.Column(pixels, 2, 0))
		return out, err
	},
	"parallel": func(in input) ([]float64, error) {
		out := make([]float64, in.buckets)
		err := scatteradd.AccumulateParallel(out, in.indices, in.values, scatteradd.WithConfig(in.config))
		return out, err
	},
}
