// Package urn encodes and decodes the uniform identifiers used to address items and
// programs across publishers: urn:mediathek:<publisher>:<type>:<id>.
package urn

import (
	"strings"

	"github.com/mediathek-cli/mediathek/source"
)

// Prefix is the fixed leading part of every URN.
const Prefix = "urn:mediathek"

// URN addresses one item or program.
type URN struct {
	Publisher source.Publisher
	Kind      source.Kind
	ID        string
}

// New builds a URN.
func New(publisher source.Publisher, kind source.Kind, id string) URN {
	return URN{Publisher: publisher, Kind: kind, ID: id}
}

// String renders the canonical form. Parse(u.String()) == u for every valid u.
func (u URN) String() string {
	return strings.Join([]string{Prefix, string(u.Publisher), string(u.Kind), u.ID}, ":")
}

// MarshalText renders the canonical form.
func (u URN) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// Parse decodes s. Ids may themselves contain colons; everything after the fourth
// separator belongs to the id.
func Parse(s string) (URN, error) {
	parts := strings.SplitN(s, ":", 5)
	if len(parts) < 5 || parts[0] != "urn" || parts[1] != "mediathek" {
		return URN{}, source.Fail(source.SchemeError, s, "not a mediathek urn")
	}

	publisher, err := source.ParsePublisher(parts[2])
	if err != nil {
		return URN{}, source.Fail(source.SchemeError, s, "unknown publisher %q", parts[2])
	}

	kind, err := source.ParseKind(parts[3])
	if err != nil {
		return URN{}, source.Fail(source.SchemeError, s, "unknown type %q", parts[3])
	}

	if parts[4] == "" {
		return URN{}, source.Fail(source.SchemeError, s, "empty id")
	}

	return URN{Publisher: publisher, Kind: kind, ID: parts[4]}, nil
}

// ParseAs decodes s and checks that it addresses the wanted kind.
func ParseAs(s string, kind source.Kind) (URN, error) {
	u, err := Parse(s)
	if err != nil {
		return URN{}, err
	}
	if u.Kind != kind {
		return URN{}, source.Fail(source.SchemeError, s, "expected %s urn, got %s", kind, u.Kind)
	}
	return u, nil
}
