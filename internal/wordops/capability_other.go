//go:build !amd64 && !arm64

package wordops

func init() {
	initCapabilities()
}
