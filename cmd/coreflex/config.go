package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/coregx/coreflex/matcher"
)

// fileConfig is the YAML form of the command line flags. Flags given on
// the command line override it.
//
//	mode: find
//	options: "N"
//	literals: ["if", "then", "else"]
//	lineNumbers: true
//	bufferSize: 65536
//
// String fields must be YAML strings. YAML 1.1 reads unquoted N, Y, no, on
// and off as booleans, so options: N is rejected; write options: "N".
type fileConfig struct {
	Mode          yamlString   `json:"mode,omitempty"`
	Options       yamlString   `json:"options,omitempty"`
	Literals      []yamlString `json:"literals,omitempty"`
	LineNumbers   bool         `json:"lineNumbers,omitempty"`
	BufferSize    int          `json:"bufferSize,omitempty"`
	MaxBufferSize int          `json:"maxBufferSize,omitempty"`
}

// yamlString is a string field that refuses YAML scalars of other types.
// Implementing json.Unmarshaler keeps sigs.k8s.io/yaml from converting a
// boolean or number to its string form.
type yamlString string

func (s *yamlString) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || data[0] != '"' {
		return fmt.Errorf("expected a string, got %s (quote the value)", data)
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = yamlString(v)
	return nil
}

// settings is the resolved configuration of one run.
type settings struct {
	mode        matcher.Mode
	options     string
	literals    []string
	lineNumbers bool
	count       bool
	features    bool
	buffer      matcher.Config
}

func loadConfig(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := yaml.UnmarshalStrict(data, &fc); err != nil {
		return fc, fmt.Errorf("%s: %w", path, err)
	}
	return fc, nil
}

// apply fills unset fields of s from fc. set reports which flags were
// given explicitly.
func (fc fileConfig) apply(s *settings, set map[string]bool) error {
	if fc.Mode != "" && !set["mode"] {
		m, ok := matcher.ParseMode(string(fc.Mode))
		if !ok {
			return fmt.Errorf("config: unknown mode %q", fc.Mode)
		}
		s.mode = m
	}
	if fc.Options != "" && !set["opts"] {
		// -A, -N and -X add to the configured options.
		s.options = string(fc.Options) + s.options
	}
	if len(fc.Literals) > 0 && !set["literals"] {
		s.literals = make([]string, len(fc.Literals))
		for i, lit := range fc.Literals {
			s.literals[i] = string(lit)
		}
	}
	if fc.LineNumbers && !set["n"] {
		s.lineNumbers = true
	}
	if fc.BufferSize != 0 && !set["buffer"] {
		s.buffer.BufferSize = fc.BufferSize
	}
	if fc.MaxBufferSize != 0 && !set["max-buffer"] {
		s.buffer.MaxBufferSize = fc.MaxBufferSize
	}
	return nil
}

// splitLiterals parses the -literals flag: comma separated, with "\n" and
// "\t" escapes.
func splitLiterals(s string) []string {
	if s == "" {
		return nil
	}
	r := strings.NewReplacer(`\n`, "\n", `\t`, "\t", `\,`, "\x00")
	var lits []string
	for _, lit := range strings.Split(r.Replace(s), ",") {
		lits = append(lits, strings.ReplaceAll(lit, "\x00", ","))
	}
	return lits
}
