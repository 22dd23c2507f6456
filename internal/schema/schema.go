// Package schema converts JSON Schema documents into field trees, so a schema
// can stand in for an example document.
package schema

import (
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"

	"github.com/mcncl/jsonstruct/internal/analyzer"
	"github.com/mcncl/jsonstruct/internal/errors"
	"github.com/mcncl/jsonstruct/internal/models"
	"github.com/mcncl/jsonstruct/internal/parser"
)

const defsPrefix = "#/$defs/"

// ParseFile reads and parses a JSON Schema from a file
func ParseFile(path string) (*jsonschema.Schema, error) {
	data, err := parser.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseBytes(data)
}

// ParseBytes parses JSON Schema from bytes. Only draft 2019-09 and later
// layouts are understood: definitions live under "$defs" and "type" is a
// single string.
func ParseBytes(data []byte) (*jsonschema.Schema, error) {
	var s jsonschema.Schema
	if err := parser.Decode(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ParseString parses JSON Schema from a string
func ParseString(s string) (*jsonschema.Schema, error) {
	return ParseBytes([]byte(s))
}

// Converter converts a JSON Schema into a field tree.
type Converter struct {
	root *jsonschema.Schema
	// resolving holds the $refs currently being expanded; meeting one again
	// means the schema is recursive.
	resolving map[string]bool
}

// NewConverter creates a new schema converter
func NewConverter(root *jsonschema.Schema) *Converter {
	return &Converter{
		root:      root,
		resolving: make(map[string]bool),
	}
}

// Convert converts the whole schema. An empty rootName falls back to the
// schema title.
func (c *Converter) Convert(rootName string) (models.Field, error) {
	if rootName == "" {
		rootName = c.root.Title
	}
	return c.convert(rootName, c.root)
}

func (c *Converter) convert(name string, s *jsonschema.Schema) (models.Field, error) {
	if s == nil {
		return models.AnyField{Name: name}, nil
	}
	if s.Ref != "" {
		return c.resolveRef(name, s.Ref)
	}
	if len(s.AllOf) > 0 {
		return c.convertAllOf(name, s)
	}
	if branches := append(append([]*jsonschema.Schema{}, s.AnyOf...), s.OneOf...); len(branches) > 0 {
		nonNull := lo.Filter(branches, func(b *jsonschema.Schema, _ int) bool {
			return b == nil || b.Type != "null"
		})
		if len(nonNull) == 1 {
			return c.convert(name, nonNull[0])
		}
		return models.AnyField{Name: name}, nil
	}

	switch schemaType(s) {
	case "object":
		return c.convertObject(name, s)
	case "array":
		return c.convertArray(name, s)
	case "string":
		return models.StringField{Name: name}, nil
	case "integer":
		return models.IntField{Name: name}, nil
	case "number":
		return models.FloatField{Name: name}, nil
	case "boolean":
		return models.BoolField{Name: name}, nil
	default:
		// "null", or no type at all
		return models.AnyField{Name: name}, nil
	}
}

// schemaType returns the declared type, inferring object or array from the
// keywords present when no type is declared.
func schemaType(s *jsonschema.Schema) string {
	if s.Type != "" {
		return s.Type
	}
	if s.Properties != nil {
		return "object"
	}
	if s.Items != nil || len(s.PrefixItems) > 0 {
		return "array"
	}
	return ""
}

func (c *Converter) convertObject(name string, s *jsonschema.Schema) (models.Field, error) {
	obj := models.ObjectField{Name: name, Fields: []models.Field{}}
	if s.Properties == nil {
		return obj, nil
	}
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		field, err := c.convert(pair.Key, pair.Value)
		if err != nil {
			return nil, inProperty(pair.Key, err)
		}
		obj.Fields = append(obj.Fields, field)
	}
	return obj, nil
}

// inProperty prefixes the message of a conversion error with the property it
// came from, keeping its type and cause.
func inProperty(key string, err error) error {
	var appErr *errors.AppError
	if !errors.As(err, &appErr) {
		return errors.Wrapf(err, "property '%s'", key)
	}
	return &errors.AppError{
		Type:    appErr.Type,
		Message: fmt.Sprintf("property '%s': %s", key, appErr.Message),
		Err:     appErr.Err,
	}
}

// convertArray uses items when present. Tuple schemas (prefixItems) are
// unified the same way array elements of an example document are.
func (c *Converter) convertArray(name string, s *jsonschema.Schema) (models.Field, error) {
	if s.Items != nil {
		elem, err := c.convert("", s.Items)
		if err != nil {
			return nil, err
		}
		return models.ArrayField{Name: name, Elem: elem}, nil
	}
	if len(s.PrefixItems) > 0 {
		elems := make([]models.Field, 0, len(s.PrefixItems))
		for _, item := range s.PrefixItems {
			elem, err := c.convert("", item)
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
		}
		if elem, ok := analyzer.Unify(elems); ok {
			return models.ArrayField{Name: name, Elem: elem}, nil
		}
	}
	return models.ArrayField{Name: name, Elem: models.AnyField{}}, nil
}

// convertAllOf merges the properties of every member into one object. A
// single member is used as is; members that are not all objects give Any.
func (c *Converter) convertAllOf(name string, s *jsonschema.Schema) (models.Field, error) {
	members := s.AllOf
	if s.Properties != nil {
		own := *s
		own.AllOf = nil
		members = append([]*jsonschema.Schema{&own}, members...)
	}
	if len(members) == 1 {
		return c.convert(name, members[0])
	}

	merged := models.ObjectField{Name: name, Fields: []models.Field{}}
	for _, member := range members {
		field, err := c.convert(name, member)
		if err != nil {
			return nil, err
		}
		obj, ok := field.(models.ObjectField)
		if !ok {
			return models.AnyField{Name: name}, nil
		}
		merged.Fields = append(merged.Fields, obj.Fields...)
	}
	return merged, nil
}

func (c *Converter) resolveRef(name, ref string) (models.Field, error) {
	target, err := c.lookup(ref)
	if err != nil {
		return nil, err
	}
	if c.resolving[ref] {
		return models.AnyField{Name: name}, nil
	}
	c.resolving[ref] = true
	defer delete(c.resolving, ref)
	return c.convert(name, target)
}

func (c *Converter) lookup(ref string) (*jsonschema.Schema, error) {
	if ref == "#" {
		return c.root, nil
	}
	if !strings.HasPrefix(ref, defsPrefix) {
		return nil, errors.NewAnalysisError(fmt.Sprintf("unsupported $ref '%s'", ref), errors.ErrInvalidSchema)
	}
	def, ok := c.root.Definitions[strings.TrimPrefix(ref, defsPrefix)]
	if !ok {
		return nil, errors.NewAnalysisError(fmt.Sprintf("unresolvable $ref '%s'", ref), errors.ErrInvalidSchema)
	}
	return def, nil
}
