package record

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// Record is the untyped, JSON-like representation of a model object
type Record map[string]any

// Field declares a single key of a closed record
type Field struct {
	Name     string
	Required bool
}

// Fields is the closed field set of a concrete model type
type Fields []Field

func (f Fields) Has(name string) bool {
	for _, field := range f {
		if field.Name == name {
			return true
		}
	}
	return false
}

func (f Fields) Names() []string {
	names := make([]string, 0, len(f))
	for _, field := range f {
		names = append(names, field.Name)
	}
	return names
}

const DefaultMaxDepth int = 32

// Policy controls how a record graph is validated during construction
type Policy struct {
	// MaxDepth is the maximum number of nested objects, counting the root
	MaxDepth int
	// CollectAll accumulates the errors of sibling fields instead of stopping at the first one
	CollectAll bool
}

func DefaultPolicy() Policy {
	return Policy{MaxDepth: DefaultMaxDepth}
}

type Option func(*Policy)

func MaxDepth(depth int) Option {
	return func(p *Policy) {
		p.MaxDepth = depth
	}
}

func CollectAll(enabled bool) Option {
	return func(p *Policy) {
		p.CollectAll = enabled
	}
}

func NewPolicy(options ...Option) Policy {
	p := DefaultPolicy()
	for _, option := range options {
		option(&p)
	}
	if p.MaxDepth <= 0 {
		p.MaxDepth = DefaultMaxDepth
	}
	return p
}

// AsRecord returns v as a Record if it is an object
func AsRecord(v any) (Record, bool) {
	switch obj := v.(type) {
	case Record:
		return obj, true
	case map[string]any:
		return Record(obj), true
	}
	return nil, false
}

func AsList(v any) ([]any, bool) {
	switch list := v.(type) {
	case []any:
		return list, true
	case []Record:
		result := make([]any, 0, len(list))
		for _, r := range list {
			result = append(result, r)
		}
		return result, true
	case []string:
		result := make([]any, 0, len(list))
		for _, s := range list {
			result = append(result, s)
		}
		return result, true
	}
	return nil, false
}

// AsInt converts any integral numeric representation produced by the JSON and
// YAML decoders, or by Go code, into an int.
func AsInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int(n), true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return int(n), true
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	}
	return 0, false
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	// float64(math.MaxInt64) rounds up to 2^63
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int(f), true
}

// Describe names the shape of a raw value for error messages
func Describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case Record, map[string]any:
		return "object"
	case []any, []Record, []string:
		return "list"
	}
	if _, ok := AsInt(v); ok {
		return "integer"
	}
	switch v.(type) {
	case float32, float64, json.Number:
		return "number"
	}
	return fmt.Sprintf("%T", v)
}

// Clone returns a deep copy of a raw value so that callers cannot alter values
// owned by a constructed object.
func Clone(v any) any {
	switch val := v.(type) {
	case Record:
		c := make(Record, len(val))
		for k, e := range val {
			c[k] = Clone(e)
		}
		return c
	case map[string]any:
		c := make(map[string]any, len(val))
		for k, e := range val {
			c[k] = Clone(e)
		}
		return c
	case []any:
		c := make([]any, len(val))
		for i, e := range val {
			c[i] = Clone(e)
		}
		return c
	}
	return v
}

// PlainNumbers returns a deep copy of v with every json.Number replaced by an
// int64, or a float64 when it is not integral. Encoders other than encoding/json
// write json.Number as a string.
func PlainNumbers(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case Record:
		c := make(Record, len(val))
		for k, e := range val {
			c[k] = PlainNumbers(e)
		}
		return c
	case map[string]any:
		c := make(map[string]any, len(val))
		for k, e := range val {
			c[k] = PlainNumbers(e)
		}
		return c
	case []any:
		c := make([]any, len(val))
		for i, e := range val {
			c[i] = PlainNumbers(e)
		}
		return c
	}
	return v
}

func sortedKeys(r Record) []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
