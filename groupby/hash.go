// Copyright 2026 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package groupby

import (
	"encoding/binary"
	"hash"
	"reflect"

	"github.com/spaolacci/murmur3"
)

// NewHasher returns a murmur3 hasher with the provided seed, to be
// reused across calls to hashKey by a single goroutine.
func newHasher(seed uint32) hash.Hash32 {
	return murmur3.New32WithSeed(seed)
}

// HashKey computes a 32-bit hash of a key with h, which is reset
// first. Integer keys are hashed by their 64-bit little-endian
// representation, so that equal values of different integer types
// hash alike.
//
// Keys are hashed through the streaming digest rather than
// murmur3.Sum32WithSeed, whose pointer arithmetic fails checkptr
// validation under the race detector.
func hashKey[K Key](h hash.Hash32, key K) uint32 {
	switch k := any(key).(type) {
	case string:
		return hashBytes(h, []byte(k))
	case int:
		return hashUint64(h, uint64(k))
	case int32:
		return hashUint64(h, uint64(k))
	case int64:
		return hashUint64(h, uint64(k))
	case uint32:
		return hashUint64(h, uint64(k))
	case uint64:
		return hashUint64(h, k)
	}
	// Slow path for named and less common types.
	v := reflect.ValueOf(key)
	switch v.Kind() {
	case reflect.String:
		return hashBytes(h, []byte(v.String()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return hashUint64(h, uint64(v.Int()))
	default:
		return hashUint64(h, v.Uint())
	}
}

func hashBytes(h hash.Hash32, p []byte) uint32 {
	h.Reset()
	h.Write(p)
	return h.Sum32()
}

func hashUint64(h hash.Hash32, x uint64) uint32 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], x)
	return hashBytes(h, b[:])
}
