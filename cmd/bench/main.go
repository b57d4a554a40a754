// Command bench builds the suffix array and the three LCP arrays for a
// byte input and reports construction times and the peak working set on
// one RESULT line.
//
// Usage: bench [flags] [file [exponent]]
//
// Without a file the built-in "mississippi" text is indexed. With an
// exponent p the input is cut down to 2^p bytes before indexing. The
// input is made sentinel-safe first: interior NUL bytes are remapped to
// the end-of-text control byte and a single NUL sentinel is appended.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"strconv"
	"time"
	"unicode/utf8"

	humanize "github.com/dustin/go-humanize"
	"github.com/itchio/headway/state"
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
	"golang.org/x/text/unicode/norm"

	"github.com/lexindex/suffixindex"
)

const (
	sentinel  = 0x00
	endOfText = 0x03
)

var builtinText = []byte("mississippi\x00")

type timings struct {
	sa       time.Duration
	lcpNaive time.Duration
	lcpKasai time.Duration
	lcpPhi   time.Duration
	peak     int64
}

func timed(f func()) time.Duration {
	start := time.Now()
	f()
	return time.Since(start)
}

func run[I constraints.Signed](text []byte, consumer *state.Consumer) timings {
	var (
		t   timings
		mem suffixindex.MemTracker
		sa  []I
	)
	runtime.GC()
	var before runtime.MemStats
	runtime.ReadMemStats(&before)

	consumer.ProgressLabel(fmt.Sprintf("Sorting %s...", humanize.IBytes(uint64(len(text)))))
	t.sa = timed(func() {
		sa = suffixindex.SuffixArray[I](text, &mem)
	})
	t.peak = mem.Peak()

	var after runtime.MemStats
	runtime.ReadMemStats(&after)
	consumer.Infof("suffix array built in %s, working set %s (%.2fx input, heap delta %s)",
		t.sa, humanize.IBytes(uint64(t.peak)),
		float64(t.peak)/float64(len(text)),
		humanize.IBytes(after.TotalAlloc-before.TotalAlloc))

	consumer.ProgressLabel("Building LCP arrays...")
	t.lcpNaive = timed(func() { suffixindex.LCPNaive(text, sa) })
	t.lcpKasai = timed(func() { suffixindex.LCPKasai(text, sa) })
	t.lcpPhi = timed(func() { suffixindex.LCPPhi(text, sa) })
	return t
}

// loadText slurps the input file and makes it sentinel-safe: interior
// NUL bytes become the end-of-text control byte and a single NUL
// sentinel is appended.
func loadText(path string, normalize bool) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading input")
	}
	if normalize && utf8.Valid(data) {
		data = norm.NFC.Bytes(data)
	}
	for i, b := range data {
		if b == sentinel {
			data[i] = endOfText
		}
	}
	return append(data, sentinel), nil
}

// truncate cuts text down to 2^p bytes, forcing the final byte to be
// the sentinel. Requested sizes at or above the input length are
// refused.
func truncate(text []byte, arg string) ([]byte, error) {
	p, err := strconv.Atoi(arg)
	if err != nil || p < 0 {
		return nil, errors.Errorf("truncation exponent must be a non-negative integer, got %q", arg)
	}
	if p >= strconv.IntSize-1 || 1<<p >= len(text) {
		return nil, errors.Errorf("cannot truncate to 2^%d bytes, input is only %d bytes", p, len(text))
	}
	text = text[:1<<p]
	text[len(text)-1] = sentinel
	return text, nil
}

func main() {
	name := flag.String("name", "suffixindex", "tag reported in the RESULT line")
	normalize := flag.Bool("norm", false, "NFC-normalize UTF-8 input before indexing")
	verbose := flag.Bool("v", false, "log progress to stderr")
	cpuprofile := flag.String("cpuprofile", "", "write CPU profile to file")
	flag.Parse()

	if flag.NArg() > 2 {
		fmt.Fprintln(os.Stderr, "too many arguments, only input file and truncation exponent expected")
		os.Exit(1)
	}

	text := builtinText
	if flag.NArg() >= 1 {
		var err error
		text, err = loadText(flag.Arg(0), *normalize)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if flag.NArg() == 2 {
		var err error
		text, err = truncate(text, flag.Arg(1))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	consumer := &state.Consumer{}
	if *verbose {
		consumer.OnMessage = func(level string, message string) {
			fmt.Fprintf(os.Stderr, "[%s] %s\n", level, message)
		}
		consumer.OnProgressLabel = func(label string) {
			fmt.Fprintln(os.Stderr, label)
		}
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not create CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "could not start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	var t timings
	switch suffixindex.WidthFor(len(text)) {
	case 16:
		t = run[int16](text, consumer)
	case 32:
		t = run[int32](text, consumer)
	default:
		t = run[int64](text, consumer)
	}

	const mib = 1 << 20
	peakMiB := (t.peak + mib/2) / mib
	fmt.Printf("RESULT name=%s sa_construction_time=%s sa_construction_memory=%d lcp_naive_construction_time=%s lcp_kasai_construction_time=%s lcp_phi_construction_time=%s\n",
		*name, millis(t.sa), peakMiB, millis(t.lcpNaive), millis(t.lcpKasai), millis(t.lcpPhi))
}
