// Copyright 2026 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package scatteradd

import (
	"github.com/grailbio/base/config"
)

func init() {
	config.Register("scatteradd", func(inst *config.Constructor) {
		var (
			cfg      = new(Config)
			strategy string
		)
		inst.IntVar(&cfg.Parallelism, "parallelism", 0, "number of accumulation workers; 0 uses GOMAXPROCS")
		inst.IntVar(&cfg.MinParallel, "min-parallel", 0, "smallest number of pairs accumulated in parallel; 0 uses the flag default")
		inst.StringVar(&strategy, "strategy", Shuffle.String(), "work distribution strategy: shuffle or scanall")
		inst.Doc = "scatteradd configures parallel indexed accumulation"
		inst.New = func() (interface{}, error) {
			s, err := ParseStrategy(strategy)
			if err != nil {
				return nil, err
			}
			cfg.Strategy = s
			return cfg, nil
		}
	})
}
