// Package naming converts JSON keys into exported Go identifiers.
package naming

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// initialisms are matched against a whole underscore-separated segment only.
// Mixed case initialisms such as "DDoS" are not recognised.
var initialisms = map[string]struct{}{
	"id":   {},
	"url":  {},
	"ip":   {},
	"json": {},
	"html": {},
	"xml":  {},
	"css":  {},
	"jwt":  {},
	"uuid": {},
	"uri":  {},
}

// Normalize converts a JSON key such as "user_id" into a Go identifier such
// as "UserID". The key is split on underscores, every non-empty segment gets
// an upper-cased first letter, known initialisms are upper-cased entirely, and
// the segments are joined without a separator.
func Normalize(jsonKey string) string {
	var b strings.Builder
	b.Grow(len(jsonKey))
	for _, segment := range strings.Split(jsonKey, "_") {
		if segment == "" {
			continue
		}
		b.WriteString(formatInitialism(upperFirst(segment)))
	}
	return b.String()
}

func upperFirst(s string) string {
	if c := s[0]; c >= 'a' && c <= 'z' {
		return string(c-'a'+'A') + s[1:]
	}
	return s
}

func formatInitialism(s string) string {
	if _, ok := initialisms[strings.ToLower(s)]; ok {
		return strings.ToUpper(s)
	}
	return s
}

// Style selects how a Normalizer turns keys into identifiers.
type Style string

const (
	// StyleInitialisms uses Normalize.
	StyleInitialisms Style = "initialisms"
	// StyleStrcase uses strcase.ToCamel, which also splits on spaces, dashes
	// and dots but has no initialism handling.
	StyleStrcase Style = "strcase"
)

// Valid reports whether s is a known style. The empty style is valid and
// means StyleInitialisms.
func (s Style) Valid() bool {
	switch s {
	case "", StyleInitialisms, StyleStrcase:
		return true
	}
	return false
}

// Normalizer maps JSON keys to Go field names using explicit overrides first
// and a Style otherwise.
type Normalizer struct {
	style    Style
	mappings map[string]string
}

// NewNormalizer creates a Normalizer. mappings may be nil.
func NewNormalizer(style Style, mappings map[string]string) *Normalizer {
	if style == "" {
		style = StyleInitialisms
	}
	return &Normalizer{style: style, mappings: mappings}
}

// FieldName returns the Go field name for a JSON key.
func (n *Normalizer) FieldName(jsonKey string) string {
	if mapped, ok := n.mappings[jsonKey]; ok {
		return mapped
	}
	if n.style == StyleStrcase {
		return strcase.ToCamel(jsonKey)
	}
	return Normalize(jsonKey)
}
