package main

/* Tim Henderson (tadh@case.edu)
*
* Copyright (c) 2015, Tim Henderson, Case Western Reserve University
* Cleveland, Ohio 44106. All Rights Reserved.
*
* This library is free software; you can redistribute it and/or modify
* it under the terms of the GNU General Public License as published by
* the Free Software Foundation; either version 3 of the License, or (at
* your option) any later version.
*
* This library is distributed in the hope that it will be useful, but
* WITHOUT ANY WARRANTY; without even the implied warranty of
* MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
* General Public License for more details.
*
* You should have received a copy of the GNU General Public License
* along with this library; if not, write to the Free Software
* Foundation, Inc.,
*   51 Franklin Street, Fifth Floor,
*   Boston, MA  02110-1301
*   USA
 */

import (
	"fmt"
	"log"
	"os"
	"runtime/pprof"
)

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/getopt"
)

import (
	"github.com/timtadh/sapriori/cmd"
	"github.com/timtadh/sapriori/config"
)

func init() {
	cmd.UsageMessage = "sapriori --help"
	cmd.ExtendedMessage = `
sapriori - sampled apriori frequent itemset mining

$ sapriori -o <path> --support=<float> [Global Options] \
    <loader> [Loader Options] <input-path> \
    [<reporter> [Reporter Options]]

$ sapriori [Global Options] generate [Generate Options] <output-path>

Note: You must supply [Global Options] then <loader> then <input-path> and
      finally the reporters. Changes in ordering are not supported.

Note: You may either supply the <input-path> as a regular file, a gzipped
      file or a directory of files. If supplying a gzip file the file
      extension must be '.gz'.

Note: If you don't supply a reporter by default it will use 'chain log file'.

Global Options
    -h, --help                view this message
    --loaders                 show the available loaders
    --reporters               show the available reporters
    --config=<path>           yaml configuration. Options given on the command
                              line override it (regardless of order).
    -o, --output=<path>       path to output directory (required for mining)
                              NB: will overwrite contents of dir
    -c, --cache=<path>        path to cache directory (optional)
                              NB: will overwrite contents of dir
    --support=<float>         minimum support, a fraction of all transactions
                              in (0, 1] (required)
    --samples=<int>           transactions sampled per candidate estimate
                              (default 1000)
    --confidence=<float>      confidence level of the estimate, one of .80,
                              .85, .90, .95, .98, .99, .995, .999
                              (default .95)
    --z=<float>               use this z-score instead of --confidence
    --verify                  never prune by estimate. The result is exact.
    --max-level=<int>         stop after itemsets of this size (default 0,
                              unlimited)
    --parallelism=<int>       number of workers (default 1, -1 is one per cpu)
    --seed=<int>              seed for the sampler (default random)
    --metrics=<path>          write prometheus metrics of the run here
    --skip-log=<level>        don't output the given log level.

Developer Options
    --cpu-profile=<path>      write a cpu-profile to this location

    heap-profile Reporter

        $ sapriori ... <loader> ... chain ... heap-profile [options]

        -p, profile=<path>    where you want the heap-profile written
        -e, every=<int>       collect every n itemsets reported (default 1)
        -a, after=<int>       collect after n itemsets reported (default 0)

Loaders
    int                       each line is a transaction, the items are
                              space separated integers
    names                     each line is a transaction, the items are space
                              separated names
    json                      a json array of transactions, each an array of
                              item names

    int Example file:
        10 1 5 7
        213 2 5 1
        23 1 4 5 7

    names Example file:
        bread milk
        bread diapers beer eggs

    json Example file:
        [["bread", "milk"], ["bread", "diapers", "beer", "eggs"]]

Generate
    writes a synthetic json market basket dataset. The file is gzipped when
    <output-path> ends in '.gz'. Uses --seed.

    Generate Options
        -n, transactions=<int>  number of transactions (default 10000)
        -d, definition=<path>   yaml definition of the categories and
                                associations (default groceries)
        --analyze               log the item frequencies of the dataset

Reporters
    chain                     chain several reporters together (end the chain
                              with endchain)
    log                       log the frequent itemsets
    file                      write the frequent itemsets to a file in the
                              output dir
    dir                       write each level to its own file in a dir
    count                     write the number of frequent itemsets
    store                     store the itemsets and their counts in a B+tree
    unique                    takes an "inner reporter" but only passes the
                              unique itemsets to inner reporter.
    max                       takes an "inner reporter" and passes it only the
                              maximal itemsets, once mining is done.
    skip                      takes an "inner reporter" but only passes every
                              nth itemset to inner reporter.

    log Options
        -l, level=<string>    log level the logger should use
        -p, prefix=<string>   a prefix to put before the log line

    file Options
        -p, patterns=<name>   the prefix of the name of the file in the output
                              directory to write the itemsets

    dir Options
        -d, dir-name=<name>   name of the directory.

    count Options
        -f, filename=<name>   name of the file in the output directory

    store Options
        -p, path=<path>       where to put the B+tree (default: in the cache
                              dir when there is one, else the output dir)

    skip Options
        -s, skip=<int>        pass every nth itemset (default 1)

    Examples

        $ sapriori -o /tmp/sapriori --support=.01 \
            int ./data/transactions.dat.gz

        $ sapriori -o /tmp/sapriori --support=.05 --samples=500 \
            --parallelism=-1 --seed=7 \
            names ./data/baskets.txt \
            chain log dir store endchain

        $ sapriori --seed=7 generate -n 50000 --analyze /tmp/baskets.json.gz
`
}

func main() {
	os.Exit(run())
}

func run() int {
	args, optargs, err := getopt.GetOpt(
		os.Args[1:],
		"ho:c:",
		[]string{
			"help",
			"output=", "cache=",
			"loaders", "reporters",
			"config=",
			"support=",
			"samples=",
			"confidence=",
			"z=",
			"verify",
			"max-level=",
			"parallelism=",
			"seed=",
			"metrics=",
			"skip-log=",
			"cpu-profile=",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, "could not process your arguments (perhaps you forgot a loader?)")
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	conf := config.Default()
	for _, oa := range optargs {
		if oa.Opt() == "--config" {
			conf, err = config.Load(cmd.AssertFileOrDirExists(oa.Arg()))
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				cmd.Usage(cmd.ErrorCodes["badfile"])
			}
		}
	}

	output := conf.Output
	cache := conf.Cache
	metricsPath := ""
	cpuProfile := ""
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			cmd.Usage(0)
		case "--config":
		case "-o", "--output":
			output = oa.Arg()
		case "-c", "--cache":
			cache = oa.Arg()
		case "--support":
			conf.MinSupport = cmd.ParseFloat(oa.Arg())
		case "--samples":
			conf.SampleSize = cmd.ParseInt(oa.Arg())
		case "--confidence":
			conf.ConfidenceLevel = cmd.ParseFloat(oa.Arg())
		case "--z":
			conf.Z = cmd.ParseFloat(oa.Arg())
		case "--verify":
			conf.Verify = true
		case "--max-level":
			conf.MaxLevel = cmd.ParseInt(oa.Arg())
		case "--parallelism":
			conf.Parallelism = cmd.ParseInt(oa.Arg())
		case "--seed":
			conf.Seed = cmd.ParseInt64(oa.Arg())
		case "--metrics":
			metricsPath = cmd.AssertFile(oa.Arg())
		case "--loaders":
			fmt.Fprintln(os.Stderr, "Loaders:")
			for k := range cmd.Loaders {
				fmt.Fprintln(os.Stderr, "  ", k)
			}
			os.Exit(0)
		case "--reporters":
			fmt.Fprintln(os.Stderr, "Reporters:")
			for k := range cmd.Reporters {
				fmt.Fprintln(os.Stderr, "  ", k)
			}
			os.Exit(0)
		case "--skip-log":
			level := oa.Arg()
			errors.Logf("INFO", "not logging level %v", level)
			errors.SkipLogging[level] = true
		case "--cpu-profile":
			cpuProfile = cmd.AssertFile(oa.Arg())
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			cmd.Usage(cmd.ErrorCodes["opts"])
		}
	}

	if len(args) >= 1 && args[0] == "generate" {
		return cmd.Generate(args[1:], conf)
	}

	if output == "" {
		fmt.Fprintf(os.Stderr, "You must supply an output dir (-o)\n")
		cmd.Usage(cmd.ErrorCodes["opts"])
	}
	conf.Output = cmd.EmptyDir(output)
	if cache != "" {
		conf.Cache = cmd.EmptyDir(cache)
	}

	if err := conf.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	if cpuProfile != "" {
		errors.Logf("DEBUG", "starting cpu profile: %v", cpuProfile)
		f, err := os.Create(cpuProfile)
		if err != nil {
			log.Fatal(err)
		}
		err = pprof.StartCPUProfile(f)
		if err != nil {
			log.Fatal(err)
		}
		defer func() {
			errors.Logf("DEBUG", "closing cpu profile")
			pprof.StopCPUProfile()
			err := f.Close()
			errors.Logf("DEBUG", "closed cpu profile, err: %v", err)
		}()
	}

	return cmd.Main(args, conf, metricsPath)
}
