package cmd

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
	"compress/gzip"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path"
	"strconv"
	"strings"
)

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/getopt"
)

import (
	"github.com/timtadh/sapriori/config"
	"github.com/timtadh/sapriori/gen"
	"github.com/timtadh/sapriori/lattice"
	"github.com/timtadh/sapriori/metrics"
	"github.com/timtadh/sapriori/miners"
	"github.com/timtadh/sapriori/miners/apriori"
	"github.com/timtadh/sapriori/miners/reporters"
	"github.com/timtadh/sapriori/types/itemset"
)

var ErrorCodes map[string]int = map[string]int{
	"usage":    0,
	"version":  2,
	"opts":     3,
	"badfloat": 6,
	"badint":   5,
	"baddir":   6,
	"badfile":  7,
}

var UsageMessage string
var ExtendedMessage string

func Usage(code int) {
	fmt.Fprintln(os.Stderr, UsageMessage)
	if code == 0 {
		fmt.Fprintln(os.Stdout, ExtendedMessage)
		code = ErrorCodes["usage"]
	} else {
		fmt.Fprintln(os.Stderr, "Try -h or --help for help")
	}
	os.Exit(code)
}

func Input(input_path string) (reader io.Reader, closeall func()) {
	stat, err := os.Stat(input_path)
	if err != nil {
		panic(err)
	}
	if stat.IsDir() {
		return InputDir(input_path)
	} else {
		return InputFile(input_path)
	}
}

func InputFile(input_path string) (reader io.Reader, closeall func()) {
	freader, err := os.Open(input_path)
	if err != nil {
		panic(err)
	}
	if strings.HasSuffix(input_path, ".gz") {
		greader, err := gzip.NewReader(freader)
		if err != nil {
			panic(err)
		}
		return greader, func() {
			greader.Close()
			freader.Close()
		}
	}
	return freader, func() {
		freader.Close()
	}
}

// InputDir concatenates every regular file in the directory, in name order.
func InputDir(input_dir string) (reader io.Reader, closeall func()) {
	var readers []io.Reader
	var closers []func()
	dir, err := os.ReadDir(input_dir)
	if err != nil {
		panic(err)
	}
	for _, info := range dir {
		if info.IsDir() {
			continue
		}
		creader, closer := InputFile(path.Join(input_dir, info.Name()))
		readers = append(readers, creader)
		closers = append(closers, closer)
	}
	reader = io.MultiReader(readers...)
	return reader, func() {
		for _, closer := range closers {
			closer()
		}
	}
}

// Output creates the file, gzipping when the name ends in .gz.
func Output(output_path string) (writer io.Writer, closeall func() error) {
	fwriter, err := os.Create(output_path)
	if err != nil {
		panic(err)
	}
	if strings.HasSuffix(output_path, ".gz") {
		gwriter := gzip.NewWriter(fwriter)
		return gwriter, func() error {
			if err := gwriter.Close(); err != nil {
				fwriter.Close()
				return err
			}
			return fwriter.Close()
		}
	}
	return fwriter, fwriter.Close
}

func ParseInt(str string) int {
	i, err := strconv.Atoi(str)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing '%v' expected an int\n", str)
		Usage(ErrorCodes["badint"])
	}
	return i
}

func ParseInt64(str string) int64 {
	i, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing '%v' expected an int\n", str)
		Usage(ErrorCodes["badint"])
	}
	return i
}

func ParseFloat(str string) float64 {
	f, err := strconv.ParseFloat(str, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing '%v' expected a float\n", str)
		Usage(ErrorCodes["badfloat"])
	}
	return f
}

func AssertDir(dir string) string {
	dir = path.Clean(dir)
	fi, err := os.Stat(dir)
	if err != nil && os.IsNotExist(err) {
		err := os.MkdirAll(dir, 0775)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			Usage(ErrorCodes["baddir"])
		}
		return dir
	} else if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		Usage(ErrorCodes["baddir"])
	}
	if !fi.IsDir() {
		fmt.Fprintf(os.Stderr, "Passed in file was not a directory, %s\n", dir)
		Usage(ErrorCodes["baddir"])
	}
	return dir
}

func EmptyDir(dir string) string {
	dir = path.Clean(dir)
	_, err := os.Stat(dir)
	if err != nil && os.IsNotExist(err) {
		err := os.MkdirAll(dir, 0775)
		if err != nil {
			log.Fatal(err)
		}
	} else if err != nil {
		log.Fatal(err)
	} else {
		// something already exists lets delete it
		err := os.RemoveAll(dir)
		if err != nil {
			log.Fatal(err)
		}
		err = os.MkdirAll(dir, 0775)
		if err != nil {
			log.Fatal(err)
		}
	}
	return dir
}

func AssertFileOrDirExists(fname string) string {
	fname = path.Clean(fname)
	_, err := os.Stat(fname)
	if err != nil && os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "File '%s' does not exist!\n", fname)
		Usage(ErrorCodes["badfile"])
	} else if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		Usage(ErrorCodes["badfile"])
	}
	return fname
}

func AssertFile(fname string) string {
	fname = path.Clean(fname)
	fi, err := os.Stat(fname)
	if err != nil && os.IsNotExist(err) {
		return fname
	} else if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		Usage(ErrorCodes["badfile"])
	} else if fi.IsDir() {
		fmt.Fprintf(os.Stderr, "Passed in file was a directory, %s\n", fname)
		Usage(ErrorCodes["badfile"])
	}
	return fname
}

// noOpts parses argv for a command with no options besides -h.
func noOpts(argv []string) []string {
	args, optargs, err := getopt.GetOpt(argv, "h", []string{"help"})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		Usage(ErrorCodes["opts"])
	}
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			Usage(ErrorCodes["opts"])
		}
	}
	return args
}

type Loader func([]string, *config.Config) (itemset.Loader, []string)

func intLoader(argv []string, conf *config.Config) (itemset.Loader, []string) {
	return itemset.NewIntLoader(), noOpts(argv)
}

func namesLoader(argv []string, conf *config.Config) (itemset.Loader, []string) {
	return itemset.NewNameLoader(), noOpts(argv)
}

func jsonLoader(argv []string, conf *config.Config) (itemset.Loader, []string) {
	return itemset.NewJSONLoader(), noOpts(argv)
}

type Reporter func(map[string]Reporter, []string, lattice.Formatter, *config.Config) (miners.Reporter, []string)

func logReporter(rptrs map[string]Reporter, argv []string, fmtr lattice.Formatter, conf *config.Config) (miners.Reporter, []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"hl:p:",
		[]string{
			"help",
			"level=",
			"prefix=",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		Usage(ErrorCodes["opts"])
	}
	level := "INFO"
	prefix := ""
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		case "-l", "--level":
			level = oa.Arg()
		case "-p", "--prefix":
			prefix = oa.Arg()
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			Usage(ErrorCodes["opts"])
		}
	}
	return reporters.NewLog(fmtr, level, prefix), args
}

func fileReporter(rptrs map[string]Reporter, argv []string, fmtr lattice.Formatter, conf *config.Config) (miners.Reporter, []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"hp:",
		[]string{
			"help",
			"patterns=",
		},
	)
	if err != nil {
		errors.Logf("ERROR", "%v", err)
		Usage(ErrorCodes["opts"])
	}
	patterns := "frequent"
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		case "-p", "--patterns":
			patterns = oa.Arg()
		default:
			errors.Logf("ERROR", "Unknown flag '%v'\n", oa.Opt())
			Usage(ErrorCodes["opts"])
		}
	}
	fr, err := reporters.NewFile(conf, fmtr, patterns)
	if err != nil {
		errors.Logf("ERROR", "There was error creating output files\n")
		errors.Logf("ERROR", "%v\n", err)
		os.Exit(1)
	}
	return fr, args
}

func dirReporter(rptrs map[string]Reporter, argv []string, fmtr lattice.Formatter, conf *config.Config) (miners.Reporter, []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"hd:",
		[]string{
			"help",
			"dir-name=",
		},
	)
	if err != nil {
		errors.Logf("ERROR", "%v", err)
		Usage(ErrorCodes["opts"])
	}
	dir := "levels"
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		case "-d", "--dir-name":
			dir = oa.Arg()
		default:
			errors.Logf("ERROR", "Unknown flag '%v'\n", oa.Opt())
			Usage(ErrorCodes["opts"])
		}
	}
	fr, err := reporters.NewDir(conf, fmtr, dir)
	if err != nil {
		errors.Logf("ERROR", "There was error creating output files\n")
		errors.Logf("ERROR", "%v", err)
		os.Exit(1)
	}
	return fr, args
}

func countReporter(rptrs map[string]Reporter, argv []string, fmtr lattice.Formatter, conf *config.Config) (miners.Reporter, []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"hf:",
		[]string{
			"help",
			"filename=",
		},
	)
	if err != nil {
		errors.Logf("ERROR", "%v", err)
		Usage(ErrorCodes["opts"])
	}
	filename := "count"
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		case "-f", "--filename":
			filename = oa.Arg()
		default:
			errors.Logf("ERROR", "Unknown flag '%v'\n", oa.Opt())
			Usage(ErrorCodes["opts"])
		}
	}
	r, err := reporters.NewCount(conf, filename)
	if err != nil {
		errors.Logf("ERROR", "%v", err)
		os.Exit(1)
	}
	return r, args
}

// storeReporter defaults to a run specific B+tree in the cache directory
// when there is one and to frequent.bptree in the output directory when
// there is not.
func storeReporter(rptrs map[string]Reporter, argv []string, fmtr lattice.Formatter, conf *config.Config) (miners.Reporter, []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"hp:",
		[]string{
			"help",
			"path=",
		},
	)
	if err != nil {
		errors.Logf("ERROR", "%v", err)
		Usage(ErrorCodes["opts"])
	}
	storePath := ""
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		case "-p", "--path":
			storePath = AssertFile(oa.Arg())
		default:
			errors.Logf("ERROR", "Unknown flag '%v'\n", oa.Opt())
			Usage(ErrorCodes["opts"])
		}
	}
	if storePath == "" && conf.Cache != "" {
		storePath = conf.CacheFile(conf.RunID() + ".bptree")
	} else if storePath == "" {
		storePath = conf.OutputFile("frequent.bptree")
	}
	errors.Logf("INFO", "storing frequent itemsets in %v", storePath)
	r, err := reporters.NewStore(storePath)
	if err != nil {
		errors.Logf("ERROR", "There was error creating the store\n")
		errors.Logf("ERROR", "%v", err)
		os.Exit(1)
	}
	return r, args
}

func chainReporter(reports map[string]Reporter, argv []string, fmtr lattice.Formatter, conf *config.Config) (miners.Reporter, []string) {
	args := noOpts(argv)
	rptrs := make([]miners.Reporter, 0, 10)
	for len(args) >= 1 {
		if args[0] == "endchain" {
			args = args[1:]
			break
		}
		if _, has := reports[args[0]]; !has {
			errors.Logf("ERROR", "Unknown reporter '%v'\n", args[0])
			fmt.Fprintln(os.Stderr, "Reporters:")
			for k := range reports {
				fmt.Fprintln(os.Stderr, "  ", k)
			}
			Usage(ErrorCodes["opts"])
		}
		var rptr miners.Reporter
		rptr, args = reports[args[0]](reports, args[1:], fmtr, conf)
		rptrs = append(rptrs, rptr)
	}
	if len(rptrs) == 0 {
		errors.Logf("ERROR", "Empty chain")
		fmt.Fprintln(os.Stderr, "try: chain log file")
		Usage(ErrorCodes["opts"])
	}
	return &reporters.Chain{Reporters: rptrs}, args
}

// inner parses the reporter wrapped by unique, max and skip.
func inner(name string, reports map[string]Reporter, args []string, fmtr lattice.Formatter, conf *config.Config) (miners.Reporter, []string) {
	if len(args) == 0 {
		errors.Logf("ERROR", "You must supply an inner reporter to %v", name)
		fmt.Fprintf(os.Stderr, "try: %v file\n", name)
		Usage(ErrorCodes["opts"])
	} else if _, has := reports[args[0]]; !has {
		errors.Logf("ERROR", "Unknown reporter '%v'", args[0])
		fmt.Fprintln(os.Stderr, "Reporters:")
		for k := range reports {
			fmt.Fprintln(os.Stderr, "  ", k)
		}
		Usage(ErrorCodes["opts"])
	}
	return reports[args[0]](reports, args[1:], fmtr, conf)
}

func uniqueReporter(reports map[string]Reporter, argv []string, fmtr lattice.Formatter, conf *config.Config) (miners.Reporter, []string) {
	rptr, args := inner("unique", reports, noOpts(argv), fmtr, conf)
	return reporters.NewUnique(rptr), args
}

func maxReporter(reports map[string]Reporter, argv []string, fmtr lattice.Formatter, conf *config.Config) (miners.Reporter, []string) {
	rptr, args := inner("max", reports, noOpts(argv), fmtr, conf)
	return reporters.NewMax(rptr), args
}

func skipReporter(reports map[string]Reporter, argv []string, fmtr lattice.Formatter, conf *config.Config) (miners.Reporter, []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"hs:",
		[]string{
			"help",
			"skip=",
		},
	)
	if err != nil {
		errors.Logf("ERROR", "%v", err)
		Usage(ErrorCodes["opts"])
	}
	skip := 1
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		case "-s", "--skip":
			skip = ParseInt(oa.Arg())
		default:
			errors.Logf("ERROR", "Unknown flag '%v'", oa.Opt())
			Usage(ErrorCodes["opts"])
		}
	}
	rptr, args := inner("skip", reports, args, fmtr, conf)
	return reporters.NewSkip(skip, rptr), args
}

func heapProfileReporter(rptrs map[string]Reporter, argv []string, fmtr lattice.Formatter, conf *config.Config) (miners.Reporter, []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"hp:a:e:",
		[]string{
			"help",
			"profile=",
			"after=",
			"every=",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		Usage(ErrorCodes["opts"])
	}
	after := 0
	every := 1
	profile := ""
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		case "-p", "--profile":
			profile = AssertFile(oa.Arg())
		case "-a", "--after":
			after = ParseInt(oa.Arg())
		case "-e", "--every":
			every = ParseInt(oa.Arg())
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			Usage(ErrorCodes["opts"])
		}
	}
	if profile == "" {
		fmt.Fprintf(os.Stderr, "You must supply a location to write the profile (-p) in heap-profile.\n")
		os.Exit(1)
	}
	r, err := reporters.NewHeapProfile(profile, after, every)
	if err != nil {
		fmt.Fprintf(os.Stderr, "There was error creating output files\n")
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	return r, args
}

var Loaders map[string]Loader = map[string]Loader{
	"int":   intLoader,
	"names": namesLoader,
	"json":  jsonLoader,
}

var Reporters map[string]Reporter = map[string]Reporter{
	"log":          logReporter,
	"file":         fileReporter,
	"dir":          dirReporter,
	"count":        countReporter,
	"store":        storeReporter,
	"chain":        chainReporter,
	"unique":       uniqueReporter,
	"max":          maxReporter,
	"skip":         skipReporter,
	"heap-profile": heapProfileReporter,
}

// Main loads the dataset named by args, mines it and reports the frequent
// itemsets. When metricsPath is set the run's metrics are written there.
func Main(args []string, conf *config.Config, metricsPath string) int {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "You must supply a loader\n")
		Usage(ErrorCodes["opts"])
	} else if _, has := Loaders[args[0]]; !has {
		fmt.Fprintf(os.Stderr, "Unknown loader '%v'\n", args[0])
		fmt.Fprintln(os.Stderr, "Loaders:")
		for k := range Loaders {
			fmt.Fprintln(os.Stderr, "  ", k)
		}
		Usage(ErrorCodes["opts"])
	}
	loader, args := Loaders[args[0]](args[1:], conf)

	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "You must supply exactly an input path\n")
		fmt.Fprintf(os.Stderr, "You gave: %v\n", args)
		Usage(ErrorCodes["opts"])
	}
	inputPath := AssertFileOrDirExists(args[0])
	args = args[1:]

	getInput := func() (io.Reader, func()) {
		return Input(inputPath)
	}

	errors.Logf("INFO", "Got configuration about to load dataset")
	dt, err := loader.Load(getInput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "There was error during the loading process\n")
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmtr := &itemset.Formatter{Dataset: dt}

	var rptr miners.Reporter
	if len(args) == 0 {
		rptr, _ = Reporters["chain"](Reporters, []string{"log", "file"}, fmtr, conf)
	} else if _, has := Reporters[args[0]]; !has {
		fmt.Fprintf(os.Stderr, "Unknown reporter '%v'\n", args[0])
		fmt.Fprintln(os.Stderr, "Reporters:")
		for k := range Reporters {
			fmt.Fprintln(os.Stderr, "  ", k)
		}
		Usage(ErrorCodes["opts"])
	} else {
		rptr, args = Reporters[args[0]](Reporters, args[1:], fmtr, conf)
	}

	if len(args) != 0 {
		fmt.Fprintf(os.Stderr, "unconsumed commandline options: '%v'\n", strings.Join(args, " "))
		Usage(ErrorCodes["opts"])
	}

	miner, err := apriori.NewMiner(conf, dt.Transactions, rptr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		rptr.Close()
		Usage(ErrorCodes["opts"])
	}
	var reg *prometheus.Registry
	if metricsPath != "" {
		reg = prometheus.NewRegistry()
		miner.Metrics = metrics.New()
		if err := miner.Metrics.Register(reg); err != nil {
			log.Panic(err)
		}
	}

	errors.Logf("INFO", "loaded data, about to start mining")
	table, mineErr := miner.Mine()

	code := 0
	if e := miner.Close(); e != nil {
		errors.Logf("ERROR", "error closing %v", e)
		code++
	}
	if reg != nil {
		if e := metrics.WriteFile(metricsPath, reg); e != nil {
			errors.Logf("ERROR", "error writing metrics %v", e)
			code++
		}
	}
	if mineErr != nil {
		fmt.Fprintf(os.Stderr, "There was error during the mining process\n")
		fmt.Fprintf(os.Stderr, "%v\n", mineErr)
		code++
	} else {
		errors.Logf("INFO", "Done! %d frequent itemsets, largest of size %d", table.Size(), table.MaxK())
	}
	return code
}

// Generate writes a synthetic market basket dataset as json.
func Generate(argv []string, conf *config.Config) int {
	args, optargs, err := getopt.GetOpt(
		argv,
		"hn:d:",
		[]string{
			"help",
			"transactions=",
			"definition=",
			"analyze",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		Usage(ErrorCodes["opts"])
	}
	n := 10000
	def := gen.Groceries()
	analyze := false
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		case "-n", "--transactions":
			n = ParseInt(oa.Arg())
		case "-d", "--definition":
			def, err = gen.LoadDefinition(AssertFileOrDirExists(oa.Arg()))
			if err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
				Usage(ErrorCodes["badfile"])
			}
		case "--analyze":
			analyze = true
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			Usage(ErrorCodes["opts"])
		}
	}
	if n <= 0 {
		fmt.Fprintf(os.Stderr, "transactions <= 0, must be > 0\n")
		Usage(ErrorCodes["opts"])
	}
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "You must supply exactly an output path\n")
		fmt.Fprintf(os.Stderr, "You gave: %v\n", args)
		Usage(ErrorCodes["opts"])
	}
	outputPath := AssertFile(args[0])

	seed := conf.RandomSeed()
	errors.Logf("INFO", "generating %d transactions with seed %d", n, seed)
	g, err := gen.NewGenerator(def, rand.New(rand.NewSource(seed)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		Usage(ErrorCodes["opts"])
	}
	txs := g.Generate(n)
	if analyze {
		g.Analyze(txs).Log()
	}
	out, closer := Output(outputPath)
	err = gen.WriteJSON(out, txs)
	if e := closer(); err == nil {
		err = e
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "There was error writing the dataset\n")
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	errors.Logf("INFO", "Done! wrote %v", outputPath)
	return 0
}
