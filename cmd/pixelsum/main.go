// Copyright 2026 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Pixelsum accumulates randomly generated per-pixel values into
// buckets with each of the accumulation strategies provided by
// scatteradd, timing each and checking that they agree.
package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/grailbio/base/config"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/must"
	"github.com/grailbio/scatteradd"
	"github.com/grailbio/scatteradd/accumtest"
)

// profilePath is the default location of the configuration profile.
var profilePath = os.ExpandEnv("$HOME/.scatteradd/config")

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `usage: pixelsum [-n N] [-buckets M] [-seed S] [strategy...]

Command pixelsum generates N bucket indices drawn uniformly from
[0, M) and N values drawn from the standard normal distribution, and
then accumulates the values into their buckets with each of the named
strategies, reporting the time taken by each. Results are checked
against those of the typed strategy, and for conservation of the
total sum.

Available strategies are:

	dynamic
		Reflection-based loop, dispatching on every element.
	groupby
		Group-by-key, inferring the set of buckets from the indices.
	typed
		Type-specialized loop.
	strided
		Type-specialized loop over interleaved (index, value) records.
	parallel
		Bucket-partitioned parallel loop, configured by the
		scatteradd configuration instance.
	all
		All of the above.

Flags:
`)
		flag.PrintDefaults()
		os.Exit(2)
	}
	var (
		n       = flag.Int("n", 50000000, "number of (index, value) pairs")
		buckets = flag.Int("buckets", 50000, "number of buckets")
		seed    = flag.Int64("seed", 0, "random seed; 0 uses the current time")
	)
	config.RegisterFlags("", profilePath)
	flag.Parse()
	must.Nil(config.ProcessFlags())
	var cfg *scatteradd.Config
	config.Must("scatteradd", &cfg)

	names := flag.Args()
	if len(names) == 0 || len(names) == 1 && names[0] == "all" {
		names = strategyNames
	}
	for _, name := range names {
		if strategies[name] == nil {
			fmt.Fprintf(os.Stderr, "unknown strategy %s\n", name)
			flag.Usage()
		}
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	log.Printf("generating %d pairs over %d buckets (seed %d)", *n, *buckets, *seed)
	r := rand.New(rand.NewSource(*seed))
	in := input{
		indices: accumtest.Uniform(r, *n, *buckets),
		values:  accumtest.Normal(r, *n),
		buckets: *buckets,
		config:  cfg,
	}
	must.Nil(run(in, names))
	fmt.Println("ok")
}

func run(in input, names []string) error {
	reference, err := scatteradd.Accumulate(in.indices, in.values, in.buckets, nil)
	if err != nil {
		return err
	}
	var (
		total = accumtest.Sum(in.values)
		tol   = accumtest.Tolerance(len(in.values)+in.buckets, 2*accumtest.AbsSum(in.values))
		ok    = true
	)
	errorf := func(format string, v ...interface{}) {
		log.Error.Printf(format, v...)
		ok = false
	}
	for _, name := range names {
		start := time.Now()
		out, err := strategies[name](in)
		elapsed := time.Since(start)
		if err != nil {
			return fmt.Errorf("%s: %v", name, err)
		}
		log.Printf("%s: %s (%.1f Mpairs/s)", name, elapsed,
			float64(len(in.indices))/elapsed.Seconds()/1e6)
		if !accumtest.AlmostEqual(out, reference, tol) {
			errorf("%s: results differ from typed accumulation", name)
		}
		if sum := accumtest.Sum(out); math.Abs(sum-total) > tol {
			errorf("%s: sum of buckets %v differs from sum of values %v", name, sum, total)
		}
	}
	if !ok {
		return fmt.Errorf("check errors")
	}
	return nil
}
