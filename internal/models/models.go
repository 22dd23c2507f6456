package models

// JSONValue is a generic type to represent any JSON value.
// It holds one of: nil, bool, json.Number, string, JSONArray or *JSONObject.
type JSONValue interface{}

// JSONArray represents a JSON array, which is a slice of JSONValues.
type JSONArray []JSONValue

// Member is a single key/value pair of a JSON object.
type Member struct {
	Key   string
	Value JSONValue
}

// JSONObject represents a JSON object with its keys kept in document order.
type JSONObject struct {
	Members []Member

	index map[string]int
}

// NewJSONObject builds an object from members, applying the same duplicate key
// rule as Set.
func NewJSONObject(members ...Member) *JSONObject {
	obj := &JSONObject{}
	for _, m := range members {
		obj.Set(m.Key, m.Value)
	}
	return obj
}

// Set adds key to the object. A key that is already present keeps its
// original position and takes the new value.
func (o *JSONObject) Set(key string, value JSONValue) {
	if o.index == nil {
		o.index = make(map[string]int)
	}
	if i, ok := o.index[key]; ok {
		o.Members[i].Value = value
		return
	}
	o.index[key] = len(o.Members)
	o.Members = append(o.Members, Member{Key: key, Value: value})
}

// Get returns the value stored under key.
func (o *JSONObject) Get(key string) (JSONValue, bool) {
	if i, ok := o.index[key]; ok {
		return o.Members[i].Value, true
	}
	return nil, false
}

// Keys returns the object's keys in document order.
func (o *JSONObject) Keys() []string {
	keys := make([]string, len(o.Members))
	for i, m := range o.Members {
		keys[i] = m.Key
	}
	return keys
}

// IntermediateRepresentation holds a parsed JSON document together with the
// raw bytes it was decoded from, so sub-documents can be selected later.
type IntermediateRepresentation struct {
	Root JSONValue
	Raw  []byte
}

// RootObject returns the document root if it is a JSON object.
func (ir IntermediateRepresentation) RootObject() (*JSONObject, bool) {
	obj, ok := ir.Root.(*JSONObject)
	return obj, ok
}
