// Copyright 2026 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package scatteradd

import (
	"math"

	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"golang.org/x/sync/errgroup"
)

// AccumulateParallel is a parallel version of AccumulateInto, with
// identical results: the bucket range is partitioned among workers
// so that each bucket is accumulated by a single worker, in input
// order. The sum in each bucket is thus bit-for-bit the same as the
// one computed sequentially. See Strategy for the available work
// distribution strategies.
//
// Inputs are fully validated before dst is written; when several
// indices are out of range, the first is reported.
func AccumulateParallel[I Index, V Number](dst []V, indices []I, values []V, opts ...Option) error {
	cfg := makeConfig(opts)
	m, n := len(dst), len(indices)
	if m == 0 {
		return invalidArgument("bucket count", "0 is not positive")
	}
	if n != len(values) {
		return lengthMismatch(n, len(values))
	}
	p := cfg.Parallelism
	if p > m {
		p = m
	}
	if p <= 1 || n < cfg.MinParallel {
		if err := check(indices, values, m); err != nil {
			return err
		}
		scatter(dst, indices, values)
		cfg.Stats.Int("pairs").Add(int64(n))
		cfg.Stats.Int("sequential").Add(1)
		return nil
	}
	if err := checkParallel(indices, m, p, cfg.Chunk); err != nil {
		return err
	}
	var (
		part   = partitionBuckets(m, p)
		chunks int
	)
	switch cfg.Strategy {
	case ScanAll:
		scanAll(dst, indices, values, part)
		chunks = 1
	default:
		chunks = shuffle(dst, indices, values, part, p)
	}
	log.Debug.Printf("scatteradd: accumulated %d pairs into %d buckets: %s, %d workers, %d chunks",
		n, m, cfg.Strategy, part.n, chunks)
	cfg.Stats.Int("pairs").Add(int64(n))
	cfg.Stats.Int("parallel").Add(1)
	cfg.Stats.Int("workers").Max(int64(part.n))
	cfg.Stats.Int("chunks").Add(int64(chunks))
	return nil
}

// CheckParallel validates indices in chunks, in parallel. The lowest
// offending position is reported regardless of the order in which
// chunks are validated.
func checkParallel[I Index](indices []I, buckets, p, chunk int) error {
	n := len(indices)
	nchunk := (n + chunk - 1) / chunk
	first := make([]int, nchunk)
	err := traverse.Limit(p).Each(nchunk, func(c int) error {
		lo := c * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		first[c] = -1
		if pos := firstOutOfRange(indices[lo:hi], buckets); pos >= 0 {
			first[c] = lo + pos
		}
		return nil
	})
	if err != nil {
		return err
	}
	for _, pos := range first {
		if pos >= 0 {
			return indexOutOfRange(pos, indices[pos], buckets)
		}
	}
	return nil
}

// A bucketPartition splits [0, m) into n ranges of width w; range r
// is [r*w, min((r+1)*w, m)).
type bucketPartition struct {
	m, w, n int
}

func partitionBuckets(m, p int) bucketPartition {
	w := (m + p - 1) / p
	return bucketPartition{m: m, w: w, n: (m + w - 1) / w}
}

func (b bucketPartition) bounds(r int) (lo, hi int) {
	lo = r * b.w
	hi = lo + b.w
	if hi > b.m {
		hi = b.m
	}
	return
}

func scanAll[I Index, V Number](dst []V, indices []I, values []V, part bucketPartition) {
	var g errgroup.Group
	for r := 0; r < part.n; r++ {
		lo, hi := part.bounds(r)
		g.Go(func() error {
			for i, k := range indices {
				if j := int(k); j >= lo && j < hi {
					dst[j] += values[i]
				}
			}
			return nil
		})
	}
	_ = g.Wait()
}

// maxChunk bounds input chunks so that chunk-relative positions fit
// in a uint32.
const maxChunk = math.MaxUint32

// Shuffle accumulates in two phases and returns the number of input
// chunks used. In the first, the input is split into disjoint chunks
// and, for each, the chunk-relative positions of pairs are grouped by
// the bucket range they fall in. In the second, each range owner
// replays its positions from every chunk, in chunk order.
func shuffle[I Index, V Number](dst []V, indices []I, values []V, part bucketPartition, p int) int {
	n := len(indices)
	nchunk := p
	if int64((n+nchunk-1)/nchunk) > maxChunk {
		nchunk = int((int64(n) + maxChunk - 1) / maxChunk)
	}
	var (
		offsets   = make([]int, nchunk+1)
		positions = make([][][]uint32, nchunk)
	)
	for c := range offsets {
		offsets[c] = int(int64(c) * int64(n) / int64(nchunk))
	}
	var split errgroup.Group
	for c := 0; c < nchunk; c++ {
		c := c
		split.Go(func() error {
			lo, hi := offsets[c], offsets[c+1]
			counts := make([]int, part.n)
			for _, k := range indices[lo:hi] {
				counts[int(k)/part.w]++
			}
			ranges := make([][]uint32, part.n)
			for r, count := range counts {
				ranges[r] = make([]uint32, 0, count)
			}
			for i, k := range indices[lo:hi] {
				r := int(k) / part.w
				ranges[r] = append(ranges[r], uint32(i))
			}
			positions[c] = ranges
			return nil
		})
	}
	_ = split.Wait()
	var merge errgroup.Group
	for r := 0; r < part.n; r++ {
		r := r
		merge.Go(func() error {
			for c := 0; c < nchunk; c++ {
				var (
					base = offsets[c]
					ix   = indices[base:offsets[c+1]]
					vx   = values[base:offsets[c+1]]
				)
				for _, pos := range positions[c][r] {
					dst[int(ix[pos])] += vx[pos]
				}
			}
			return nil
		})
	}
	_ = merge.Wait()
	return nchunk
}
