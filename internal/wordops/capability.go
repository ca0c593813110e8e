package wordops

import (
	"os"
	"runtime"
	"strings"
)

// Kernel identifies a popcount implementation.
type Kernel uint8

const (
	// Generic is the portable SWAR kernel.
	Generic Kernel = iota
	// Native uses the math/bits intrinsic backed by a hardware instruction.
	Native
)

// String returns the string representation of a Kernel.
func (k Kernel) String() string {
	switch k {
	case Generic:
		return "generic"
	case Native:
		return "native"
	default:
		return "unknown"
	}
}

// ParseKernel parses a string into a Kernel value.
func ParseKernel(s string) (Kernel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "generic":
		return Generic, true
	case "native":
		return Native, true
	default:
		return Generic, false
	}
}

// Features describes the CPU features relevant to word scanning.
type Features struct {
	Arch string
	// POPCNT is hardware population count (x86-64 POPCNT, arm64 CNT).
	POPCNT bool
	// TZCNT is hardware trailing-zero count (x86-64 BMI1; arm64 always has RBIT+CLZ).
	TZCNT bool
}

// Package-level state, set once by the platform init.
var (
	activeKernel Kernel
	hasOverride  bool

	hasPOPCNT bool
	hasTZCNT  bool
)

// initCapabilities is called from the platform-specific init functions
// after CPU features are detected.
func initCapabilities() {
	if override := os.Getenv("SKIPFIELD_WORDOPS"); override != "" {
		if k, ok := ParseKernel(override); ok {
			hasOverride = true
			setKernel(k)
			return
		}
	}

	if hasPOPCNT {
		setKernel(Native)
		return
	}
	setKernel(Generic)
}

func setKernel(k Kernel) {
	activeKernel = k
	switch k {
	case Native:
		kernelPopcountWords = popcountWordsNative
	default:
		kernelPopcountWords = popcountWordsGeneric
	}
}

// ActiveKernel returns the popcount kernel in use.
func ActiveKernel() Kernel {
	return activeKernel
}

// IsOverridden returns true if SKIPFIELD_WORDOPS selected the kernel.
func IsOverridden() bool {
	return hasOverride
}

// Detected returns the features found at startup.
func Detected() Features {
	return Features{
		Arch:   runtime.GOARCH,
		POPCNT: hasPOPCNT,
		TZCNT:  hasTZCNT,
	}
}
