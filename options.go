// Copyright 2026 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package scatteradd

import (
	"fmt"
	"runtime"

	"github.com/grailbio/scatteradd/internal/defaultsize"
	"github.com/grailbio/scatteradd/stats"
)

// A Strategy determines how AccumulateParallel distributes work.
// Both strategies partition the bucket range into disjoint,
// contiguous ranges, one per worker, so that no bucket is ever
// written by two workers and every bucket receives its contributions
// in input order.
type Strategy int

const (
	// DefaultStrategy leaves the choice of strategy to
	// AccumulateParallel, which uses Shuffle.
	DefaultStrategy Strategy = iota
	// Shuffle first has each worker sort the positions in a disjoint
	// chunk of the input by the bucket range they fall in; each range
	// owner then replays its positions, chunk by chunk. It requires
	// memory proportional to the input length.
	Shuffle
	// ScanAll has every range owner scan the full input, skipping
	// pairs outside of its range. It requires no extra memory, but
	// reads the input once per worker.
	ScanAll
)

var strategyNames = map[Strategy]string{
	Shuffle: "shuffle",
	ScanAll: "scanall",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy returns the strategy with the provided name.
func ParseStrategy(name string) (Strategy, error) {
	for s, sname := range strategyNames {
		if sname == name {
			return s, nil
		}
	}
	return DefaultStrategy, invalidArgument("strategy", "unknown strategy %q", name)
}

// Config parameterizes parallel accumulation. Zero-valued fields
// take their defaults.
type Config struct {
	// Parallelism is the number of workers; it defaults to
	// GOMAXPROCS.
	Parallelism int
	// MinParallel is the smallest input length that is accumulated
	// in parallel; shorter inputs use the sequential kernel.
	MinParallel int
	// Chunk is the number of indices validated by each validation
	// task.
	Chunk int
	// Strategy is the work distribution strategy; DefaultStrategy
	// selects Shuffle.
	Strategy Strategy
	// Stats, if not nil, receives counters describing each call.
	Stats *stats.Map
}

// An Option customizes a parallel accumulation.
type Option func(c *Config)

// Parallelism sets the number of workers.
func Parallelism(p int) Option {
	return func(c *Config) { c.Parallelism = p }
}

// MinParallel sets the smallest input length accumulated in
// parallel.
func MinParallel(n int) Option {
	return func(c *Config) { c.MinParallel = n }
}

// WithStrategy sets the work distribution strategy.
func WithStrategy(s Strategy) Option {
	return func(c *Config) { c.Strategy = s }
}

// WithStats sets the map to which counters are reported.
func WithStats(m *stats.Map) Option {
	return func(c *Config) { c.Stats = m }
}

// WithConfig applies the non-zero fields of cfg. A strategy set
// explicitly in cfg, including Shuffle, overrides earlier options.
func WithConfig(cfg *Config) Option {
	return func(c *Config) {
		if cfg == nil {
			return
		}
		if cfg.Parallelism != 0 {
			c.Parallelism = cfg.Parallelism
		}
		if cfg.MinParallel != 0 {
			c.MinParallel = cfg.MinParallel
		}
		if cfg.Chunk != 0 {
			c.Chunk = cfg.Chunk
		}
		if cfg.Strategy != DefaultStrategy {
			c.Strategy = cfg.Strategy
		}
		if cfg.Stats != nil {
			c.Stats = cfg.Stats
		}
	}
}

func makeConfig(opts []Option) Config {
	var c Config
	for _, opt := range opts {
		opt(&c)
	}
	if c.Parallelism <= 0 {
		c.Parallelism = runtime.GOMAXPROCS(0)
	}
	if c.MinParallel <= 0 {
		c.MinParallel = defaultsize.MinParallel
	}
	if c.Chunk <= 0 {
		c.Chunk = defaultsize.Chunk
	}
	if c.Strategy == DefaultStrategy {
		c.Strategy = Shuffle
	}
	return c
}
