package models

// Kind identifies the variant of a Field.
type Kind int

const (
	Any Kind = iota
	Bool
	String
	Int
	Float
	Object
	Array
)

var kindNames = [...]string{
	Any:    "any",
	Bool:   "bool",
	String: "string",
	Int:    "int",
	Float:  "float",
	Object: "object",
	Array:  "array",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Field is one node of the typed field tree. The set of implementations is
// closed: AnyField, BoolField, StringField, IntField, FloatField, ObjectField
// and ArrayField.
type Field interface {
	// FieldName is the original JSON key, the root name, or "" for the
	// element type of an array.
	FieldName() string
	Kind() Kind
	field()
}

type AnyField struct{ Name string }

type BoolField struct{ Name string }

type StringField struct{ Name string }

type IntField struct{ Name string }

type FloatField struct{ Name string }

// ObjectField holds the fields of a JSON object in source key order.
type ObjectField struct {
	Name   string
	Fields []Field
}

// ArrayField holds the unified element type of a JSON array.
type ArrayField struct {
	Name string
	Elem Field
}

func (f AnyField) FieldName() string    { return f.Name }
func (f BoolField) FieldName() string   { return f.Name }
func (f StringField) FieldName() string { return f.Name }
func (f IntField) FieldName() string    { return f.Name }
func (f FloatField) FieldName() string  { return f.Name }
func (f ObjectField) FieldName() string { return f.Name }
func (f ArrayField) FieldName() string  { return f.Name }

func (AnyField) Kind() Kind    { return Any }
func (BoolField) Kind() Kind   { return Bool }
func (StringField) Kind() Kind { return String }
func (IntField) Kind() Kind    { return Int }
func (FloatField) Kind() Kind  { return Float }
func (ObjectField) Kind() Kind { return Object }
func (ArrayField) Kind() Kind  { return Array }

func (AnyField) field()    {}
func (BoolField) field()   {}
func (StringField) field() {}
func (IntField) field()    {}
func (FloatField) field()  {}
func (ObjectField) field() {}
func (ArrayField) field()  {}

// WithName returns a copy of f carrying name. Children are shared, which is
// safe because field trees are never mutated after construction.
func WithName(f Field, name string) Field {
	switch f := f.(type) {
	case AnyField:
		return AnyField{Name: name}
	case BoolField:
		return BoolField{Name: name}
	case StringField:
		return StringField{Name: name}
	case IntField:
		return IntField{Name: name}
	case FloatField:
		return FloatField{Name: name}
	case ObjectField:
		return ObjectField{Name: name, Fields: f.Fields}
	case ArrayField:
		return ArrayField{Name: name, Elem: f.Elem}
	default:
		panic("models: unknown field type")
	}
}
