// Package simd provides vectorized newline counting and byte search for the
// buffered matchers in github.com/coregx/coreflex/matcher.
//
// Newline counting is served by a small set of kernels, one per instruction
// set family, that all honour the same contract: count the terminator bytes
// in a prefix of the input and report how far they got. The dispatcher picks
// the most capable kernel the running CPU supports and the caller finishes
// whatever tail is left with a portable loop. Every kernel returns exactly
// the same count as the scalar loop for the same input.
//
// Which kernels are compiled in depends on the build:
//   - amd64 with GOEXPERIMENT=simd (Go 1.26+): AVX-512, AVX2 and 128-bit
//     kernels written with simd/archsimd intrinsics
//   - arm64: a NEON kernel in Go assembly (disabled by the noasm tag)
//   - everywhere: a SWAR kernel comparing eight bytes per 64-bit word
//
// A kernel that is not compiled in is a no-op. Count and Newlines stay
// correct in every build because the scalar loop always finishes the rest.
//
// CPU features are probed once per process. The probe result can be capped
// with the COREFLEX_SIMD environment variable, which is useful to compare
// kernels or to rule out a kernel when diagnosing a problem:
//
//	COREFLEX_SIMD=sse2 ./mytool   # never use AVX2 or AVX-512 kernels
//	COREFLEX_SIMD=swar ./mytool   # portable word-parallel kernel only
//	COREFLEX_SIMD=none ./mytool   # scalar counting only
package simd

import (
	"os"
	"strings"
	"sync"
)

// Features is a bitmask of the vector instruction sets available to the
// newline counting kernels.
type Features uint32

const (
	// FeatureSWAR indicates 64-bit word arithmetic usable as eight byte
	// lanes. Every target has it; it exists so that COREFLEX_SIMD=none can
	// turn the word-parallel kernel off.
	FeatureSWAR Features = 1 << iota

	// FeatureSSE2 indicates 128-bit x86 vectors.
	FeatureSSE2

	// FeatureAVX2 indicates 256-bit x86 vectors.
	FeatureAVX2

	// FeatureAVX512BW indicates 512-bit x86 vectors with byte granularity
	// (AVX-512 F and BW).
	FeatureAVX512BW

	// FeatureNEON indicates 128-bit ARM Advanced SIMD.
	FeatureNEON
)

// FeaturesNone is the empty feature set.
const FeaturesNone Features = 0

const levelEnvVar = "COREFLEX_SIMD"

var featureNames = []struct {
	f    Features
	name string
}{
	{FeatureSWAR, "swar"},
	{FeatureSSE2, "sse2"},
	{FeatureAVX2, "avx2"},
	{FeatureAVX512BW, "avx512"},
	{FeatureNEON, "neon"},
}

// Has reports whether all features in want are present in f.
func (f Features) Has(want Features) bool {
	return f&want == want
}

// String returns the feature names joined by '|', or "none".
func (f Features) String() string {
	if f == FeaturesNone {
		return "none"
	}
	var parts []string
	for _, fn := range featureNames {
		if f.Has(fn.f) {
			parts = append(parts, fn.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseLevel parses a COREFLEX_SIMD value into the mask of features that
// may be used. The second result is false when s is not a known level, in
// which case the mask permits everything.
//
// Levels are cumulative: every level permits SWAR, "avx2" permits SSE2
// and AVX2, "avx512" permits all three x86 sets. "auto" and the empty
// string permit everything, "none" only the scalar loop.
func ParseLevel(s string) (Features, bool) {
	all := FeatureSWAR | FeatureSSE2 | FeatureAVX2 | FeatureAVX512BW | FeatureNEON
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return all, true
	case "none", "scalar", "off":
		return FeaturesNone, true
	case "swar":
		return FeatureSWAR, true
	case "sse2":
		return FeatureSWAR | FeatureSSE2, true
	case "avx2":
		return FeatureSWAR | FeatureSSE2 | FeatureAVX2, true
	case "avx512":
		return FeatureSWAR | FeatureSSE2 | FeatureAVX2 | FeatureAVX512BW, true
	case "neon":
		return FeatureSWAR | FeatureNEON, true
	}
	return all, false
}

var (
	detectOnce sync.Once
	detected   Features
)

// Detected returns the features usable on this process: what the CPU
// supports, masked by COREFLEX_SIMD. The probe runs once; the result never
// changes afterwards.
func Detected() Features {
	detectOnce.Do(func() {
		mask, _ := ParseLevel(os.Getenv(levelEnvVar))
		detected = probe() & mask
	})
	return detected
}
