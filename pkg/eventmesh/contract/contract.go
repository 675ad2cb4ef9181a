package contract

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/Masterminds/semver/v3"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Sentinel version names accepted by Contract.Version.
const (
	// Latest pins the contract to its highest declared version.
	Latest = "latest"

	// Any is a versionless view: validation is skipped in both
	// directions. Used for system-error event construction.
	Any = "any"
)

// Sentinel errors for contract construction and lookup.
var (
	// ErrTypeRequired indicates a definition with no accepted type.
	ErrTypeRequired = errors.New("contract type is required")

	// ErrNoVersions indicates a definition declaring no versions.
	ErrNoVersions = errors.New("contract declares no versions")

	// ErrUnknownVersion indicates a version lookup for an undeclared version.
	ErrUnknownVersion = errors.New("unknown contract version")

	// ErrUnknownEmitType indicates an emit validation for an undeclared type.
	ErrUnknownEmitType = errors.New("event type not declared for emission")
)

// VersionDefinition declares one contract version: the JSON schema the
// accepted payload must satisfy, and the schema for each event type
// this version may emit.
type VersionDefinition struct {
	Accepts string
	Emits   map[string]string
}

// Definition is the plain input to New.
type Definition struct {
	// Type is the single event type this contract accepts.
	Type string

	// Domain is an optional default routing domain for emitted events.
	Domain string

	// Versions maps a semantic version string to its definition.
	Versions map[string]VersionDefinition
}

type version struct {
	name    string
	accepts *jsonschema.Schema
	emits   map[string]*jsonschema.Schema
}

// Contract is an immutable accept/emit declaration for one event type.
type Contract struct {
	eventType string
	domain    *string
	versions  map[string]*version
	ordered   []string // ascending semver order
}

// New compiles a definition into a Contract. Schema compilation or
// version parsing failures are construction errors; a Contract that
// exists is fully usable.
func New(def Definition) (*Contract, error) {
	if def.Type == "" {
		return nil, ErrTypeRequired
	}
	if len(def.Versions) == 0 {
		return nil, fmt.Errorf("contract %s: %w", def.Type, ErrNoVersions)
	}

	c := &Contract{
		eventType: def.Type,
		versions:  make(map[string]*version, len(def.Versions)),
	}
	if def.Domain != "" {
		d := def.Domain
		c.domain = &d
	}

	parsed := make(semver.Collection, 0, len(def.Versions))
	for name, vdef := range def.Versions {
		sv, err := semver.NewVersion(name)
		if err != nil {
			return nil, fmt.Errorf("contract %s: parse version %q: %w", def.Type, name, err)
		}
		normalized := sv.String()
		if _, dup := c.versions[normalized]; dup {
			return nil, fmt.Errorf("contract %s: duplicate version %s", def.Type, normalized)
		}

		accepts, err := compileSchema(def.Type, normalized, "accepts", vdef.Accepts)
		if err != nil {
			return nil, err
		}

		emits := make(map[string]*jsonschema.Schema, len(vdef.Emits))
		for emitType, src := range vdef.Emits {
			sch, err := compileSchema(def.Type, normalized, emitType, src)
			if err != nil {
				return nil, err
			}
			emits[emitType] = sch
		}

		c.versions[normalized] = &version{name: normalized, accepts: accepts, emits: emits}
		parsed = append(parsed, sv)
	}

	sort.Sort(parsed)
	c.ordered = make([]string, len(parsed))
	for i, sv := range parsed {
		c.ordered[i] = sv.String()
	}

	return c, nil
}

func compileSchema(contractType, versionName, schemaName, src string) (*jsonschema.Schema, error) {
	url := fmt.Sprintf("mem://contracts/%s/%s/%s.json", contractType, versionName, schemaName)
	sch, err := jsonschema.CompileString(url, src)
	if err != nil {
		return nil, fmt.Errorf("contract %s: compile %s schema for %s: %w", contractType, schemaName, versionName, err)
	}
	return sch, nil
}

// Type returns the accepted event type.
func (c *Contract) Type() string {
	return c.eventType
}

// Domain returns the contract's default routing domain, nil when unset.
func (c *Contract) Domain() *string {
	return c.domain
}

// Versions returns the declared versions in ascending order.
func (c *Contract) Versions() []string {
	out := make([]string, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Latest returns the highest declared version.
func (c *Contract) Latest() string {
	return c.ordered[len(c.ordered)-1]
}

// Version returns a view of the contract pinned to the given version.
// It accepts a declared semantic version, Latest, or Any.
func (c *Contract) Version(name string) (*Versioned, error) {
	switch name {
	case Any:
		return &Versioned{contract: c, name: Any}, nil
	case Latest:
		name = c.Latest()
	default:
		if sv, err := semver.NewVersion(name); err == nil {
			name = sv.String()
		}
	}

	v, ok := c.versions[name]
	if !ok {
		return nil, fmt.Errorf("contract %s: version %q: %w", c.eventType, name, ErrUnknownVersion)
	}
	return &Versioned{contract: c, name: v.name, version: v}, nil
}

// SystemError describes the system-error event emitted when an
// execution against this contract fails.
func (c *Contract) SystemError() Descriptor {
	return Descriptor{
		Type:   "sys." + c.eventType + ".error",
		Schema: SystemErrorSchema,
	}
}

// Descriptor names an event type and the schema its payload satisfies.
type Descriptor struct {
	Type   string
	Schema *jsonschema.Schema
}

// Versioned is a contract pinned to one version (or the Any sentinel).
type Versioned struct {
	contract *Contract
	version  *version // nil for Any
	name     string
}

// Version returns the pinned version name, or "any".
func (v *Versioned) Version() string {
	return v.name
}

// Contract returns the underlying contract.
func (v *Versioned) Contract() *Contract {
	return v.contract
}

// Emits returns the event types this version may emit, sorted.
func (v *Versioned) Emits() []string {
	if v.version == nil {
		return nil
	}
	out := make([]string, 0, len(v.version.emits))
	for t := range v.version.emits {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// ValidateAccept checks an inbound payload against this version's
// accept schema. The Any view accepts everything.
func (v *Versioned) ValidateAccept(data any) error {
	if v.version == nil {
		return nil
	}
	val, err := jsonValue(data)
	if err != nil {
		return fmt.Errorf("contract %s/%s: %w", v.contract.eventType, v.name, err)
	}
	if err := v.version.accepts.Validate(val); err != nil {
		return fmt.Errorf("contract %s/%s: accept: %w", v.contract.eventType, v.name, err)
	}
	return nil
}

// ValidateEmit checks an outbound type and payload against this
// version's emit declarations. The Any view accepts everything.
func (v *Versioned) ValidateEmit(eventType string, data any) error {
	if v.version == nil {
		return nil
	}
	sch, ok := v.version.emits[eventType]
	if !ok {
		return fmt.Errorf("contract %s/%s: %q: %w", v.contract.eventType, v.name, eventType, ErrUnknownEmitType)
	}
	val, err := jsonValue(data)
	if err != nil {
		return fmt.Errorf("contract %s/%s: %w", v.contract.eventType, v.name, err)
	}
	if err := sch.Validate(val); err != nil {
		return fmt.Errorf("contract %s/%s: emit %s: %w", v.contract.eventType, v.name, eventType, err)
	}
	return nil
}

// jsonValue normalizes a payload into the decoded-JSON representation
// the schema validator expects.
func jsonValue(data any) (any, error) {
	switch data.(type) {
	case nil, bool, string, float64, map[string]any, []any:
		return data, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("serialize payload for validation: %w", err)
	}
	var val any
	if err := json.Unmarshal(raw, &val); err != nil {
		return nil, fmt.Errorf("deserialize payload for validation: %w", err)
	}
	return val, nil
}
