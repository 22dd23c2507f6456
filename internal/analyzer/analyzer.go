package analyzer

import (
	"encoding/json"

	"github.com/samber/lo"

	"github.com/mcncl/jsonstruct/internal/errors"
	"github.com/mcncl/jsonstruct/internal/models"
)

// Analyzer turns parsed JSON documents into typed field trees.
type Analyzer struct{}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze infers the field tree of a document whose root must be a JSON
// object. Any other root is reported as ErrTopLevelNotObject.
func (a *Analyzer) Analyze(ir models.IntermediateRepresentation, rootName string) (models.ObjectField, error) {
	return AnalyzeField(Infer(rootName, ir.Root))
}

// AnalyzeField checks that an already inferred root is an object.
func AnalyzeField(root models.Field) (models.ObjectField, error) {
	obj, ok := root.(models.ObjectField)
	if !ok {
		return models.ObjectField{}, errors.NewAnalysisError(errors.ErrTopLevelNotObject.Error(), errors.ErrTopLevelNotObject)
	}
	return obj, nil
}

// Infer builds the field tree for value. It never fails: every JSON value has
// a field type.
func Infer(name string, value models.JSONValue) models.Field {
	switch v := value.(type) {
	case nil:
		return models.AnyField{Name: name}
	case bool:
		return models.BoolField{Name: name}
	case string:
		return models.StringField{Name: name}
	case json.Number:
		return inferNumber(name, v)
	case *models.JSONObject:
		return models.ObjectField{
			Name: name,
			Fields: lo.Map(v.Members, func(m models.Member, _ int) models.Field {
				return Infer(m.Key, m.Value)
			}),
		}
	case models.JSONArray:
		return inferArray(name, v)
	default:
		// Not produced by the parser.
		return models.AnyField{Name: name}
	}
}

// inferNumber reports Int for integer literals that fit in an int64. Literals
// with a fraction or an exponent are Float even when their value is whole.
func inferNumber(name string, num json.Number) models.Field {
	if _, err := num.Int64(); err == nil {
		return models.IntField{Name: name}
	}
	return models.FloatField{Name: name}
}

func inferArray(name string, arr models.JSONArray) models.Field {
	if len(arr) == 0 {
		return models.ArrayField{Name: name, Elem: models.AnyField{}}
	}

	elems := lo.Map(arr, func(e models.JSONValue, _ int) models.Field {
		return Infer("", e)
	})
	elem, ok := Unify(elems)
	if !ok {
		return models.ArrayField{Name: name, Elem: models.AnyField{}}
	}
	return models.ArrayField{Name: name, Elem: models.WithName(elem, "")}
}

// Unify folds fields left to right with SameType. It reports false as soon as
// two neighbours differ, or when fields is empty.
func Unify(fields []models.Field) (models.Field, bool) {
	if len(fields) == 0 {
		return nil, false
	}
	unified := fields[0]
	for _, f := range fields[1:] {
		if !SameType(unified, f) {
			return nil, false
		}
		unified = f
	}
	return unified, true
}

// SameType reports whether a and b describe the same type. Names must match
// at every level, objects are compared field by field in order (not by key),
// and arrays by their element types.
func SameType(a, b models.Field) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() || a.FieldName() != b.FieldName() {
		return false
	}
	switch a := a.(type) {
	case models.ObjectField:
		b := b.(models.ObjectField)
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			if !SameType(a.Fields[i], b.Fields[i]) {
				return false
			}
		}
		return true
	case models.ArrayField:
		return SameType(a.Elem, b.(models.ArrayField).Elem)
	default:
		return true
	}
}
