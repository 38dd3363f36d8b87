// Package target holds everything that varies per compile target: the
// engine function and global catalog, the value-type system, script types,
// and engine limits. A Catalog is immutable once constructed and may be
// shared across compiler instances and goroutines.
package target

import "strings"

// ValueType is the closed set of types a node, parameter, global or script
// can have. The numeric values and their order are part of the binary
// interface with the host runtime and must not change.
type ValueType uint16

// Value types
const (
	// Structural types, only seen during compilation.
	Unparsed ValueType = iota
	SpecialForm
	FunctionName
	Passthrough

	// Basic types the compiler fully understands.
	Void
	Boolean
	Real
	Short
	Long
	String
	Script

	// Engine-domain types. The compiler validates shape (a name or
	// enumerant) but does not interpret their meaning.
	TriggerVolume
	CutsceneFlag
	CutsceneCameraPoint
	CutsceneTitle
	CutsceneRecording
	DeviceGroup
	Ai
	AiCommandList
	StartingProfile
	Conversation
	Navpoint
	HudMessage
	ObjectList
	Sound
	Effect
	Damage
	LoopingSound
	AnimationGraph
	ActorVariant
	DamageEffect
	ObjectDefinition
	GameDifficulty
	Team
	AiDefaultState
	ActorType
	HudCorner
	Object
	Unit
	Vehicle
	Weapon
	Device
	Scenery
	ObjectName
	UnitName
	VehicleName
	WeaponName
	DeviceName
	SceneryName
)

// valueTypeNames maps ValueType to its display name (spaces, as used in
// diagnostics and by the original toolset).
var valueTypeNames = map[ValueType]string{
	Unparsed:            "unparsed",
	SpecialForm:         "special form",
	FunctionName:        "function name",
	Passthrough:         "passthrough",
	Void:                "void",
	Boolean:             "boolean",
	Real:                "real",
	Short:               "short",
	Long:                "long",
	String:              "string",
	Script:              "script",
	TriggerVolume:       "trigger volume",
	CutsceneFlag:        "cutscene flag",
	CutsceneCameraPoint: "cutscene camera point",
	CutsceneTitle:       "cutscene title",
	CutsceneRecording:   "cutscene recording",
	DeviceGroup:         "device group",
	Ai:                  "ai",
	AiCommandList:       "ai command list",
	StartingProfile:     "starting profile",
	Conversation:        "conversation",
	Navpoint:            "navpoint",
	HudMessage:          "hud message",
	ObjectList:          "object list",
	Sound:               "sound",
	Effect:              "effect",
	Damage:              "damage",
	LoopingSound:        "looping sound",
	AnimationGraph:      "animation graph",
	ActorVariant:        "actor variant",
	DamageEffect:        "damage effect",
	ObjectDefinition:    "object definition",
	GameDifficulty:      "game difficulty",
	Team:                "team",
	AiDefaultState:      "ai default state",
	ActorType:           "actor type",
	HudCorner:           "hud corner",
	Object:              "object",
	Unit:                "unit",
	Vehicle:             "vehicle",
	Weapon:              "weapon",
	Device:              "device",
	Scenery:             "scenery",
	ObjectName:          "object name",
	UnitName:            "unit name",
	VehicleName:         "vehicle name",
	WeaponName:          "weapon name",
	DeviceName:          "device name",
	SceneryName:         "scenery name",
}

// valueTypesByName maps the underscore spelling (as written in scripts and
// in the definitions table) back to the ValueType.
var valueTypesByName = func() map[string]ValueType {
	m := make(map[string]ValueType, len(valueTypeNames))
	for t, name := range valueTypeNames {
		m[strings.ReplaceAll(name, " ", "_")] = t
	}
	return m
}()

// String returns the display name of the value type.
func (t ValueType) String() string {
	if name, ok := valueTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// ValueTypeFromString parses the underscore spelling of a value type
// ("cutscene_camera_point"). It returns false for unknown names.
func ValueTypeFromString(name string) (ValueType, bool) {
	t, ok := valueTypesByName[name]
	return t, ok
}

// IsNumeric reports whether the type participates in numeric coercion.
func (t ValueType) IsNumeric() bool {
	return t == Short || t == Long || t == Real
}

// CanConvertTo reports whether a value of type t is acceptable where type
// to is expected. Exact matches always convert. Any value converts to void
// (the value is discarded) and to passthrough (the wildcard). Numeric types
// widen short→long→real and narrow long→short. The object and object-name
// hierarchies upcast toward object/object name and object list, mirroring
// the engine's own conversion rules.
func (t ValueType) CanConvertTo(to ValueType) bool {
	if t == to || to == Void || to == Passthrough {
		return true
	}
	switch t {
	case Short:
		return to == Long || to == Real
	case Long:
		return to == Real || to == Short
	case Unit:
		return to == Object || to == ObjectList
	case Vehicle:
		return to == Unit || to == Object || to == ObjectList
	case Weapon, Device, Scenery:
		return to == Object || to == ObjectList
	case Object:
		return to == ObjectList
	case UnitName:
		return to == ObjectName
	case VehicleName:
		return to == UnitName || to == ObjectName
	case WeaponName, DeviceName, SceneryName:
		return to == ObjectName
	}
	return false
}

// ConversionWarns reports whether an implicit conversion from t to to is
// worth a warning. Only conversions between distinct numeric types warn;
// hierarchy upcasts and void discards are exact in the engine.
func (t ValueType) ConversionWarns(to ValueType) bool {
	return t != to && t.IsNumeric() && to.IsNumeric()
}
