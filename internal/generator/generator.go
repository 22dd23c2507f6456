package generator

import (
	"fmt"
	"strings"

	"github.com/mcncl/jsonstruct/internal/config"
	"github.com/mcncl/jsonstruct/internal/models"
	"github.com/mcncl/jsonstruct/internal/naming"
)

// Generator renders field trees as Go struct declarations.
type Generator struct {
	namer   *naming.Normalizer
	intType string
}

// NewGenerator creates a Generator with default naming and type rules.
func NewGenerator() *Generator {
	return NewGeneratorWithConfig(config.NewConfig())
}

// NewGeneratorWithConfig creates a Generator that follows cfg's naming and
// type settings.
func NewGeneratorWithConfig(cfg *config.Config) *Generator {
	intType := "int"
	if cfg.Types.ForceInt64 {
		intType = "int64"
	}
	return &Generator{
		namer:   naming.NewNormalizer(cfg.Naming.Style, cfg.Naming.FieldMappings),
		intType: intType,
	}
}

// RenderStruct renders root as a declaration named rootName. Every field is
// one line of identifier, type and a json tag holding the original key;
// nested objects become inline anonymous structs indented one level deeper.
func (g *Generator) RenderStruct(rootName string, root models.ObjectField) string {
	var b strings.Builder
	fmt.Fprintf(&b, "type %s struct {\n", rootName)
	for _, field := range root.Fields {
		g.writeField(&b, 1, field)
	}
	b.WriteString("}\n")
	return b.String()
}

// GenerateFile renders root and, when packageName is set, prefixes the
// package clause so the result is a complete Go file.
func (g *Generator) GenerateFile(rootName string, root models.ObjectField, packageName string) string {
	code := g.RenderStruct(rootName, root)
	if packageName == "" {
		return code
	}
	return fmt.Sprintf("package %s\n\n%s", packageName, code)
}

func (g *Generator) writeField(b *strings.Builder, depth int, field models.Field) {
	b.WriteString(strings.Repeat("\t", depth))
	b.WriteString(g.namer.FieldName(field.FieldName()))
	b.WriteByte(' ')
	b.WriteString(g.typeString(depth, field))
	fmt.Fprintf(b, " `json:\"%s\"`\n", field.FieldName())
}

// typeString renders the Go type of field. depth is the indentation of the
// line the type starts on; it places the closing brace of inline structs.
func (g *Generator) typeString(depth int, field models.Field) string {
	switch f := field.(type) {
	case models.AnyField:
		return "any"
	case models.BoolField:
		return "bool"
	case models.StringField:
		return "string"
	case models.IntField:
		return g.intType
	case models.FloatField:
		return "float64"
	case models.ArrayField:
		return "[]" + g.typeString(depth, f.Elem)
	case models.ObjectField:
		var b strings.Builder
		b.WriteString("struct {\n")
		for _, child := range f.Fields {
			g.writeField(&b, depth+1, child)
		}
		b.WriteString(strings.Repeat("\t", depth))
		b.WriteString("}")
		return b.String()
	default:
		panic(fmt.Sprintf("generator: unknown field type %T", field))
	}
}
