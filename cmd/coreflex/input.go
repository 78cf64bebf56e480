package main

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// openInput opens a named input. "-" is stdin. Files ending in .zst or
// .gz are decompressed on the fly.
func openInput(name string, stdin io.Reader) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(stdin), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	switch {
	case strings.HasSuffix(name, ".zst"):
		dec, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &stackCloser{Reader: dec, close: []func() error{
			func() error { dec.Close(); return nil },
			f.Close,
		}}, nil
	case strings.HasSuffix(name, ".gz"):
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &stackCloser{Reader: zr, close: []func() error{zr.Close, f.Close}}, nil
	}
	return f, nil
}

// stackCloser closes a decoder and the file under it.
type stackCloser struct {
	io.Reader
	close []func() error
}

func (s *stackCloser) Close() error {
	var first error
	for _, c := range s.close {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
