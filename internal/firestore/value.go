package firestore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Value is a Firestore typed value in its REST JSON form. Exactly one field
// is set; a Value with none set is null.
type Value struct {
	NullValue    json.RawMessage `json:"nullValue,omitempty"`
	BooleanValue *bool           `json:"booleanValue,omitempty"`
	IntegerValue *string         `json:"integerValue,omitempty"`
	DoubleValue  *float64        `json:"doubleValue,omitempty"`
	StringValue  *string         `json:"stringValue,omitempty"`
	ArrayValue   *ArrayValue     `json:"arrayValue,omitempty"`
	MapValue     *MapValue       `json:"mapValue,omitempty"`
}

// ArrayValue holds the elements of an array value.
type ArrayValue struct {
	Values []Value `json:"values,omitempty"`
}

// MapValue holds the fields of a map value.
type MapValue struct {
	Fields map[string]Value `json:"fields,omitempty"`
}

// Encode converts v, anything encoding/json can marshal, into a Value.
func Encode(v any) (Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Value{}, fmt.Errorf("marshalling value: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return Value{}, fmt.Errorf("decoding value: %w", err)
	}
	return fromGeneric(generic), nil
}

// Decode stores val into v, a pointer to anything encoding/json can
// unmarshal into.
func Decode(val Value, v any) error {
	data, err := json.Marshal(val.generic())
	if err != nil {
		return fmt.Errorf("marshalling value: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding value: %w", err)
	}
	return nil
}

func fromGeneric(g any) Value {
	switch x := g.(type) {
	case nil:
		return Value{NullValue: json.RawMessage("null")}
	case bool:
		return Value{BooleanValue: &x}
	case json.Number:
		if i, err := x.Int64(); err == nil {
			s := strconv.FormatInt(i, 10)
			return Value{IntegerValue: &s}
		}
		f, _ := x.Float64()
		return Value{DoubleValue: &f}
	case string:
		return Value{StringValue: &x}
	case []any:
		arr := &ArrayValue{Values: make([]Value, len(x))}
		for i, e := range x {
			arr.Values[i] = fromGeneric(e)
		}
		return Value{ArrayValue: arr}
	case map[string]any:
		m := &MapValue{Fields: make(map[string]Value, len(x))}
		for k, e := range x {
			m.Fields[k] = fromGeneric(e)
		}
		return Value{MapValue: m}
	}
	return Value{NullValue: json.RawMessage("null")}
}

func (v Value) generic() any {
	switch {
	case v.BooleanValue != nil:
		return *v.BooleanValue
	case v.IntegerValue != nil:
		if i, err := strconv.ParseInt(*v.IntegerValue, 10, 64); err == nil {
			return i
		}
		return nil
	case v.DoubleValue != nil:
		return *v.DoubleValue
	case v.StringValue != nil:
		return *v.StringValue
	case v.ArrayValue != nil:
		out := make([]any, len(v.ArrayValue.Values))
		for i, e := range v.ArrayValue.Values {
			out[i] = e.generic()
		}
		return out
	case v.MapValue != nil:
		out := make(map[string]any, len(v.MapValue.Fields))
		for k, e := range v.MapValue.Fields {
			out[k] = e.generic()
		}
		return out
	}
	return nil
}
