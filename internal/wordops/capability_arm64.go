//go:build arm64

package wordops

import "golang.org/x/sys/cpu"

func init() {
	// CNT lives in the ASIMD unit.
	hasPOPCNT = cpu.ARM64.HasASIMD
	hasTZCNT = true
	initCapabilities()
}
