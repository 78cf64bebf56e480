// Command coreflex runs the coreflex matchers over files or stdin.
//
// Usage:
//
//	coreflex [flags] [file ...]
//
// By default every non-empty line is printed (find mode). -N and -X select
// empty lines, -A keeps terminators, -mode picks scan, split or match, and
// -literals switches to a literal token matcher. -count prints newline
// counts instead of matches and -features shows the selected kernels.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/coregx/coreflex/matcher"
	"github.com/coregx/coreflex/simd"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run is main without the process: it returns the exit status.
// 0 means at least one match, 1 no match, 2 an error.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("coreflex", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		dashA, dashN, dashX bool
		modeName            string
		opts                string
		literals            string
		configPath          string
		verbose             bool
		s                   = settings{buffer: matcher.DefaultConfig()}
	)
	fs.BoolVar(&dashA, "A", false, "include line terminators in reported lines")
	fs.BoolVar(&dashN, "N", false, "also report empty lines")
	fs.BoolVar(&dashX, "X", false, "report only empty lines")
	fs.StringVar(&modeName, "mode", "find", "matching mode: scan, find, split or match")
	fs.StringVar(&opts, "opts", "", "matcher option string, e.g. \"A;N\"")
	fs.StringVar(&literals, "literals", "", "comma separated literal tokens (literal matcher)")
	fs.BoolVar(&s.lineNumbers, "n", false, "prefix output with line numbers")
	fs.BoolVar(&s.count, "count", false, "print newline counts instead of matches")
	fs.BoolVar(&s.features, "features", false, "print detected CPU features and kernels")
	fs.IntVar(&s.buffer.BufferSize, "buffer", s.buffer.BufferSize, "initial buffer size in bytes")
	fs.IntVar(&s.buffer.MaxBufferSize, "max-buffer", 0, "buffer growth limit in bytes (0 = unlimited)")
	fs.StringVar(&configPath, "config", "", "YAML configuration file")
	fs.BoolVar(&verbose, "v", false, "verbose output on stderr")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	log := NewLogger(verbose, stderr)

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	mode, ok := matcher.ParseMode(modeName)
	if !ok {
		fmt.Fprintf(stderr, "coreflex: unknown mode %q\n", modeName)
		return 2
	}
	s.mode = mode
	s.options = opts + flagOptions(dashA, dashN, dashX)
	s.literals = splitLiterals(literals)

	if configPath != "" {
		fc, err := loadConfig(configPath)
		if err != nil {
			fmt.Fprintf(stderr, "coreflex: %v\n", err)
			return 2
		}
		if err := fc.apply(&s, set); err != nil {
			fmt.Fprintf(stderr, "coreflex: %v\n", err)
			return 2
		}
		log.Log("loaded %s", configPath)
	}

	if ignored := matcher.IgnoredFlags(s.options); ignored != "" {
		fmt.Fprintf(stderr, "coreflex: warning: option letters %q have no effect\n", ignored)
	}

	if s.features {
		fmt.Fprintf(stdout, "features: %s\nkernels: %s\nselected: %s\n",
			simd.Detected(), strings.Join(simd.Kernels(), " "), simd.Selected())
		return 0
	}

	files := fs.Args()
	if len(files) == 0 {
		files = []string{"-"}
	}
	log.Log("mode=%s options=%q literals=%d kernel=%s", s.mode, s.options, len(s.literals), simd.Selected())

	w := bufio.NewWriter(stdout)
	defer w.Flush()

	status := 1
	for _, name := range files {
		found, err := runFile(name, stdin, w, s, log, len(files) > 1)
		if err != nil {
			w.Flush()
			fmt.Fprintf(stderr, "coreflex: %s: %v\n", name, err)
			return 2
		}
		if found {
			status = 0
		}
	}
	return status
}

func flagOptions(a, n, x bool) string {
	var b strings.Builder
	for _, f := range []struct {
		on bool
		c  string
	}{{a, ";A"}, {n, ";N"}, {x, ";X"}} {
		if f.on {
			b.WriteString(f.c)
		}
	}
	return b.String()
}

// runFile matches one input and reports whether anything matched.
func runFile(name string, stdin io.Reader, w *bufio.Writer, s settings, log *Logger, prefix bool) (bool, error) {
	in, err := openInput(name, stdin)
	if err != nil {
		return false, err
	}
	defer in.Close()

	if s.count {
		n, err := countNewlines(in)
		if err != nil {
			return false, err
		}
		if prefix {
			fmt.Fprintf(w, "%s:", name)
		}
		fmt.Fprintf(w, "%d\n", n)
		return n > 0, nil
	}

	m, err := newMatcher(in, s)
	if err != nil {
		return false, err
	}
	matches := 0
	err = matcher.Each(m, s.mode, func(m matcher.Matcher) bool {
		matches++
		if prefix {
			fmt.Fprintf(w, "%s:", name)
		}
		if s.lineNumbers {
			fmt.Fprintf(w, "%d:", m.LineNo())
		}
		text := m.Bytes()
		if s.mode == matcher.ModeSplit {
			text = m.Record()
		}
		w.Write(text)
		if len(text) == 0 || text[len(text)-1] != '\n' {
			w.WriteByte('\n')
		}
		return true
	})
	log.Log("%s: %d matches", name, matches)
	return matches > 0, err
}

func newMatcher(in io.Reader, s settings) (matcher.Matcher, error) {
	if len(s.literals) > 0 {
		return matcher.NewLiteralMatcherWithConfig(in, s.literals, s.options, s.buffer)
	}
	return matcher.NewLineMatcherWithConfig(in, s.options, s.buffer)
}

// countNewlines counts '\n' in r block by block.
func countNewlines(r io.Reader) (int, error) {
	buf := make([]byte, 256*1024)
	total := 0
	for {
		n, err := io.ReadFull(r, buf)
		total += simd.Count(buf[:n])
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}
