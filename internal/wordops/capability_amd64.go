//go:build amd64

package wordops

import "golang.org/x/sys/cpu"

func init() {
	hasPOPCNT = cpu.X86.HasPOPCNT
	hasTZCNT = cpu.X86.HasBMI1
	initCapabilities()
}
