package contract

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Resolve maps an inbound event's dataschema URI to the declared
// version it addresses. The version is the final path segment of the
// URI (an optional "v" prefix is tolerated). The second return is false
// when the URI is empty, the segment does not parse as a semantic
// version, or the version is not declared - callers fall back to the
// latest version in that case.
func (c *Contract) Resolve(dataschema string) (*Versioned, bool) {
	if dataschema == "" {
		return nil, false
	}

	trimmed := strings.TrimRight(dataschema, "/")
	segment := trimmed
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		segment = trimmed[i+1:]
	}
	segment = strings.TrimPrefix(segment, "v")

	sv, err := semver.NewVersion(segment)
	if err != nil {
		return nil, false
	}

	v, ok := c.versions[sv.String()]
	if !ok {
		return nil, false
	}
	return &Versioned{contract: c, name: v.name, version: v}, true
}
