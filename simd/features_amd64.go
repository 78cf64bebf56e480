//go:build amd64

package simd

import "golang.org/x/sys/cpu"

// probe reads the CPUID-derived flags collected by x/sys/cpu.
func probe() Features {
	f := FeatureSWAR
	if cpu.X86.HasSSE2 {
		f |= FeatureSSE2
	}
	if cpu.X86.HasAVX2 {
		f |= FeatureAVX2
	}
	// Byte-granular compares need BW on top of the foundation set.
	if cpu.X86.HasAVX512F && cpu.X86.HasAVX512BW {
		f |= FeatureAVX512BW
	}
	return f
}
