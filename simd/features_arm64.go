//go:build arm64

package simd

// probe reports NEON unconditionally: Advanced SIMD is mandatory on arm64.
func probe() Features {
	return FeatureSWAR | FeatureNEON
}
