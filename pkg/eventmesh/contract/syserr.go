package contract

import "github.com/santhosh-tekuri/jsonschema/v5"

// SystemErrorSchema is the fixed payload schema for system-error
// events. Every sys.<type>.error event carries this shape regardless of
// the contract that produced it.
var SystemErrorSchema = jsonschema.MustCompileString(
	"mem://contracts/sys/error.json", `{
	"type": "object",
	"properties": {
		"errorName":    {"type": "string"},
		"errorMessage": {"type": "string"},
		"errorStack":   {"type": "string"}
	},
	"required": ["errorName", "errorMessage"],
	"additionalProperties": false
}`)

// StandardError describes the system-error event for a component that
// has no contract of its own (open handlers, routers): the type is
// derived from the component's source identifier.
func StandardError(source string) Descriptor {
	return Descriptor{
		Type:   "sys." + source + ".error",
		Schema: SystemErrorSchema,
	}
}
