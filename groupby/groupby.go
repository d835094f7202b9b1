// Copyright 2026 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package groupby sums values by arbitrary keys. Unlike the
// accumulators in package scatteradd, which require the caller to
// supply dense bucket indices and a bucket count, groupby infers the
// set of buckets from the keys themselves. This requires an
// additional pass over the keys to assign each distinct key a dense
// bucket position.
package groupby

import (
	"sort"

	"github.com/grailbio/scatteradd"
)

// Key is the set of key types that may be grouped by.
type Key interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~string
}

// An Index assigns dense positions to keys, in the order in which
// they are first seen. An Index may be updated with more keys; keys
// retain their positions.
type Index[K Key] struct {
	positions map[K]int
	keys      []K
}

// NewIndex returns an empty index.
func NewIndex[K Key]() *Index[K] {
	return &Index[K]{positions: make(map[K]int)}
}

// Index indexes the provided keys, depositing the position of each
// key in the corresponding element of positions, which must be at
// least as long as keys.
func (x *Index[K]) Index(keys []K, positions []int) {
	positions = positions[:len(keys)]
	for i, key := range keys {
		pos, ok := x.positions[key]
		if !ok {
			pos = len(x.keys)
			x.positions[key] = pos
			x.keys = append(x.keys, key)
		}
		positions[i] = pos
	}
}

// Lookup returns the position of a key, if it has been indexed.
func (x *Index[K]) Lookup(key K) (int, bool) {
	pos, ok := x.positions[key]
	return pos, ok
}

// Len returns the number of distinct keys indexed.
func (x *Index[K]) Len() int { return len(x.keys) }

// Keys returns the distinct keys indexed, ordered by position. The
// returned slice must not be modified.
func (x *Index[K]) Keys() []K { return x.keys }

// Sum returns the distinct keys, in ascending order, each with the
// sum of the values paired with it. Values are summed in input
// order. Sum returns a length mismatch error (see
// scatteradd.IsLengthMismatch) if keys and values differ in length.
func Sum[K Key, V scatteradd.Number](keys []K, values []V) ([]K, []V, error) {
	if len(keys) != len(values) {
		return nil, nil, scatteradd.LengthMismatch(len(keys), len(values))
	}
	if len(keys) == 0 {
		return nil, nil, nil
	}
	x := NewIndex[K]()
	positions := make([]int, len(keys))
	x.Index(keys, positions)
	sums := make([]V, x.Len())
	if err := scatteradd.AccumulateInto(sums, positions, values); err != nil {
		return nil, nil, err
	}
	distinct := append([]K(nil), x.Keys()...)
	sortByKey(distinct, sums)
	return distinct, sums, nil
}

type byKey[K Key, V scatteradd.Number] struct {
	keys []K
	sums []V
}

func (b byKey[K, V]) Len() int           { return len(b.keys) }
func (b byKey[K, V]) Less(i, j int) bool { return b.keys[i] < b.keys[j] }
func (b byKey[K, V]) Swap(i, j int) {
	b.keys[i], b.keys[j] = b.keys[j], b.keys[i]
	b.sums[i], b.sums[j] = b.sums[j], b.sums[i]
}

// SortByKey sorts keys in ascending order, permuting sums along with
// them.
func sortByKey[K Key, V scatteradd.Number](keys []K, sums []V) {
	sort.Sort(byKey[K, V]{keys, sums})
}
