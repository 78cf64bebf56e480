//go:build !amd64 && !arm64

package simd

func probe() Features {
	return FeatureSWAR
}
