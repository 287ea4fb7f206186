// Package userid generates the human-readable business identifiers used for
// user accounts (a configurable prefix followed by six uppercase hex chars).
package userid

import (
	"strings"

	"github.com/google/uuid"
)

// Generator produces user IDs with a fixed prefix.
type Generator struct {
	prefix string
}

// New creates a Generator with the given prefix.
func New(prefix string) *Generator {
	return &Generator{prefix: prefix}
}

// Generate returns a new user ID, e.g. "ZYL3F2A1B".
func (g *Generator) Generate() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return g.prefix + suffix
}
