// Copyright 2026 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package scatteradd_test

import (
	"strings"
	"testing"

	"github.com/grailbio/base/config"
	"github.com/grailbio/scatteradd"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func TestConfig(t *testing.T) {
	profile := config.New()
	err := profile.Parse(strings.NewReader(`
param scatteradd (
	parallelism = 4
	min-parallel = 128
	strategy = "scanall"
)
`))
	assert.NoError(t, err)
	var cfg *scatteradd.Config
	assert.NoError(t, profile.Instance("scatteradd", &cfg))
	expect.EQ(t, cfg.Parallelism, 4)
	expect.EQ(t, cfg.MinParallel, 128)
	expect.EQ(t, cfg.Strategy, scatteradd.ScanAll)
}

func TestConfigDefaults(t *testing.T) {
	var cfg *scatteradd.Config
	assert.NoError(t, config.New().Instance("scatteradd", &cfg))
	expect.EQ(t, cfg.Parallelism, 0)
	expect.EQ(t, cfg.Strategy, scatteradd.Shuffle)
}

func TestConfigBadStrategy(t *testing.T) {
	profile := config.New()
	assert.NoError(t, profile.Parse(strings.NewReader(`param scatteradd ( strategy = "atomic" )`)))
	var cfg *scatteradd.Config
	if err := profile.Instance("scatteradd", &cfg); err == nil {
		t.Error("expected error")
	}
}
