// Copyright 2026 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package groupby

import (
	"github.com/grailbio/scatteradd"
	"golang.org/x/sync/errgroup"
)

// shardSeed seeds the hash used to assign keys to shards.
const shardSeed = 0x9747b28c

// SumParallel computes the same result as Sum, using the provided
// number of shards. Keys are hash-partitioned among shards, so that
// each distinct key is summed by exactly one shard, in input order;
// the result is thus identical to that of Sum.
func SumParallel[K Key, V scatteradd.Number](keys []K, values []V, shards int) ([]K, []V, error) {
	if len(keys) != len(values) {
		return nil, nil, scatteradd.LengthMismatch(len(keys), len(values))
	}
	if shards <= 1 || len(keys) < shards {
		return Sum(keys, values)
	}
	n := len(keys)
	owners := make([]int32, n)
	var hashing errgroup.Group
	for s := 0; s < shards; s++ {
		lo, hi := s*n/shards, (s+1)*n/shards
		hashing.Go(func() error {
			h := newHasher(shardSeed)
			for i := lo; i < hi; i++ {
				owners[i] = int32(hashKey(h, keys[i]) % uint32(shards))
			}
			return nil
		})
	}
	_ = hashing.Wait()

	var (
		g         errgroup.Group
		shardKeys = make([][]K, shards)
		shardSums = make([][]V, shards)
	)
	for s := 0; s < shards; s++ {
		s := s
		g.Go(func() error {
			var (
				x         = NewIndex[K]()
				positions []int
				vals      []V
				one       [1]int
			)
			for i, owner := range owners {
				if int(owner) != s {
					continue
				}
				x.Index(keys[i:i+1], one[:])
				positions = append(positions, one[0])
				vals = append(vals, values[i])
			}
			if x.Len() == 0 {
				return nil
			}
			sums := make([]V, x.Len())
			if err := scatteradd.AccumulateInto(sums, positions, vals); err != nil {
				return err
			}
			shardKeys[s], shardSums[s] = x.Keys(), sums
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	var (
		distinct []K
		sums     []V
	)
	for s := range shardKeys {
		distinct = append(distinct, shardKeys[s]...)
		sums = append(sums, shardSums[s]...)
	}
	sortByKey(distinct, sums)
	return distinct, sums, nil
}
