package target

import "github.com/SnowyMouse/riat/pkg/hsc/diag"

// CompileTarget selects the engine release to compile for. Each target has
// its own function/global availability, function indices and limits.
type CompileTarget int

// Compile targets
const (
	// HaloCEA is Halo: Combat Evolved Anniversary (MCC).
	HaloCEA CompileTarget = iota

	// HaloCEXboxNTSC is the original Xbox NTSC release.
	HaloCEXboxNTSC

	// HaloCEGBX is the Gearbox PC retail release.
	HaloCEGBX

	// HaloCEGBXDemo is the Gearbox PC demo.
	HaloCEGBXDemo

	// HaloCustomEdition is the Gearbox PC Custom Edition release.
	HaloCustomEdition
)

// compileTargetNames maps CompileTarget to the key used on the command line
// and in the definitions table.
var compileTargetNames = map[CompileTarget]string{
	HaloCEA:           "mcc-cea",
	HaloCEXboxNTSC:    "xbox",
	HaloCEGBX:         "gbx-retail",
	HaloCEGBXDemo:     "gbx-demo",
	HaloCustomEdition: "gbx-custom",
}

// Targets lists every supported compile target.
func Targets() []CompileTarget {
	return []CompileTarget{HaloCEA, HaloCEXboxNTSC, HaloCEGBX, HaloCEGBXDemo, HaloCustomEdition}
}

// String returns the target's key ("gbx-custom").
func (t CompileTarget) String() string {
	if name, ok := compileTargetNames[t]; ok {
		return name
	}
	return "unknown"
}

// CompileTargetFromString parses a target key as written on the command
// line. It returns an error naming the valid keys for unknown input.
func CompileTargetFromString(name string) (CompileTarget, error) {
	for t, n := range compileTargetNames {
		if n == name {
			return t, nil
		}
	}
	return 0, diag.Errorf(diag.Construction, "", 0, 0,
		"unknown compile target %q (valid targets: mcc-cea, xbox, gbx-retail, gbx-demo, gbx-custom)", name)
}

// Limits holds the per-target scenario limits enforced during compilation.
type Limits struct {
	// MaximumScripts is a hard limit; exceeding it is an error.
	MaximumScripts int

	// MaximumGlobals is a hard limit; exceeding it is an error.
	MaximumGlobals int

	// MaximumNodes is the stock tag-space limit. Exceeding it is only a
	// warning since modified engines can raise it.
	MaximumNodes int

	// MaximumScriptParameters bounds `(script static long (name (short x)))`
	// style parameter lists. Zero means parameters are not supported.
	MaximumScriptParameters int

	// MaximumNameLength bounds script and global names, excluding the
	// terminator the engine stores after them.
	MaximumNameLength int
}

// LimitsForTarget returns the limits the given target enforces.
func LimitsForTarget(t CompileTarget) Limits {
	l := Limits{
		MaximumScripts:    32767,
		MaximumGlobals:    128,
		MaximumNodes:      19001,
		MaximumNameLength: 31,
	}
	if t == HaloCEA {
		l.MaximumScriptParameters = 16
	}
	return l
}
