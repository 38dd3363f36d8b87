package target

// ScriptType describes how the engine schedules a script. The numeric
// values match the script node table in compiled scenario data.
type ScriptType uint16

// Script types
const (
	// Startup scripts run once when the scenario loads.
	Startup ScriptType = iota

	// Dormant scripts do not run until woken with `wake`.
	Dormant

	// Continuous scripts run every tick.
	Continuous

	// Static scripts run only when called and may return a value.
	Static

	// Stub scripts are weak static scripts: a static script with the same
	// name replaces the stub instead of colliding with it.
	Stub
)

// scriptTypeNames maps ScriptType to its source spelling.
var scriptTypeNames = map[ScriptType]string{
	Startup:    "startup",
	Dormant:    "dormant",
	Continuous: "continuous",
	Static:     "static",
	Stub:       "stub",
}

// String returns the source spelling of the script type.
func (t ScriptType) String() string {
	if name, ok := scriptTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// ScriptTypeFromString parses a script type as written in a `(script ...)`
// declaration. It returns false for unknown names.
func ScriptTypeFromString(name string) (ScriptType, bool) {
	for t, n := range scriptTypeNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

// AlwaysReturnsVoid reports whether the script type discards its body's
// value. Only static and stub scripts carry a declared return type.
func (t ScriptType) AlwaysReturnsVoid() bool {
	return t != Static && t != Stub
}
