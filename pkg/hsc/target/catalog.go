package target

import (
	_ "embed"
	"encoding/json"
	"sync"

	"github.com/SnowyMouse/riat/pkg/hsc/diag"
)

//go:embed definitions.json
var definitionsJSON []byte

// definitions.json schema. "index" is the default function-table slot for
// every target; an "engines" map restricts availability to the listed
// target keys, each mapping to that target's slot or null for NullIndex.
type functionDefinition struct {
	Name              string                `json:"name"`
	Type              string                `json:"type"`
	Parameters        []parameterDefinition `json:"parameters"`
	NumberPassthrough bool                  `json:"number_passthrough"`
	PassthroughLast   bool                  `json:"passthrough_last"`
	Inequality        bool                  `json:"inequality"`
	Index             uint16                `json:"index"`
	Engines           map[string]*uint16    `json:"engines"`
}

type parameterDefinition struct {
	Type           string `json:"type"`
	Many           bool   `json:"many"`
	Optional       bool   `json:"optional"`
	AllowUppercase bool   `json:"allow_uppercase"`
}

// globalDefinition describes an engine global. A missing "engines" list
// means the global exists on every target.
type globalDefinition struct {
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Engines []string `json:"engines"`
}

type definitionSet struct {
	Functions []functionDefinition `json:"functions"`
	Globals   []globalDefinition   `json:"globals"`
}

var (
	definitionsOnce sync.Once
	definitions     definitionSet
	definitionsErr  error
)

func loadDefinitions() (definitionSet, error) {
	definitionsOnce.Do(func() {
		definitionsErr = json.Unmarshal(definitionsJSON, &definitions)
	})
	return definitions, definitionsErr
}

// Catalog is the set of engine functions and globals one compile target
// exposes, plus its limits. Catalogs are immutable after construction and
// safe for concurrent use.
type Catalog struct {
	target    CompileTarget
	limits    Limits
	functions map[string]*Function
	globals   map[string]*Global
}

// NewCatalog builds the catalog for one compile target from the embedded
// definitions table.
func NewCatalog(t CompileTarget) (*Catalog, error) {
	defs, err := loadDefinitions()
	if err != nil {
		return nil, diag.Errorf(diag.Construction, "", 0, 0, "load engine definitions: %v", err)
	}

	key := t.String()
	c := &Catalog{
		target:    t,
		limits:    LimitsForTarget(t),
		functions: make(map[string]*Function, len(defs.Functions)),
		globals:   make(map[string]*Global, len(defs.Globals)),
	}

	for _, def := range defs.Functions {
		index := def.Index
		if def.Engines != nil {
			slot, ok := def.Engines[key]
			if !ok {
				continue
			}
			if slot == nil {
				index = NullIndex
			} else {
				index = *slot
			}
		}

		returnType, ok := ValueTypeFromString(def.Type)
		if !ok {
			return nil, diag.Errorf(diag.Construction, "", 0, 0,
				"function %q: unknown return type %q", def.Name, def.Type)
		}
		fn := &Function{
			Name:              def.Name,
			ReturnType:        returnType,
			NumberPassthrough: def.NumberPassthrough,
			PassthroughLast:   def.PassthroughLast,
			Inequality:        def.Inequality,
			Index:             index,
		}
		for _, p := range def.Parameters {
			paramType, ok := ValueTypeFromString(p.Type)
			if !ok {
				return nil, diag.Errorf(diag.Construction, "", 0, 0,
					"function %q: unknown parameter type %q", def.Name, p.Type)
			}
			fn.Parameters = append(fn.Parameters, Parameter{
				Type:           paramType,
				Many:           p.Many,
				Optional:       p.Optional,
				AllowUppercase: p.AllowUppercase,
			})
		}
		c.functions[fn.Name] = fn
	}

	for _, def := range defs.Globals {
		if def.Engines != nil {
			found := false
			for _, e := range def.Engines {
				if e == key {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		globalType, ok := ValueTypeFromString(def.Type)
		if !ok {
			return nil, diag.Errorf(diag.Construction, "", 0, 0,
				"global %q: unknown type %q", def.Name, def.Type)
		}
		c.globals[def.Name] = &Global{Name: def.Name, Type: globalType}
	}

	return c, nil
}

// Target returns the compile target this catalog was built for.
func (c *Catalog) Target() CompileTarget {
	return c.target
}

// Limits returns the target's scenario limits.
func (c *Catalog) Limits() Limits {
	return c.limits
}

// Function looks up an engine function by lowercase name.
func (c *Catalog) Function(name string) (*Function, bool) {
	fn, ok := c.functions[name]
	return fn, ok
}

// Global looks up an engine global by lowercase name.
func (c *Catalog) Global(name string) (*Global, bool) {
	g, ok := c.globals[name]
	return g, ok
}
