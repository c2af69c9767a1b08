package record

import (
	"errors"

	vrserrors "github.com/diwise/vrs/pkg/vrs/errors"
)

// state is shared by every reader and value created from the same root
type state struct {
	policy Policy
	errs   []error
}

func (s *state) halted() bool {
	return len(s.errs) > 0 && !s.policy.CollectAll
}

func (s *state) add(err error) {
	for _, e := range vrserrors.Flatten(err) {
		if s.halted() {
			return
		}
		s.errs = append(s.errs, e)
	}
}

// Reader walks one object of a record graph. Errors are recorded on the reader
// instead of being returned by every accessor; once an error has been recorded
// under a fail-fast policy every further read reports the value as absent.
type Reader struct {
	rec   Record
	path  []string
	depth int
	mark  int
	s     *state
}

func NewReader(rec Record, policy Policy) *Reader {
	if policy.MaxDepth <= 0 {
		policy.MaxDepth = DefaultMaxDepth
	}

	r := &Reader{
		rec:   rec,
		depth: 1,
		s:     &state{policy: policy},
	}

	if r.depth > policy.MaxDepth {
		r.s.add(vrserrors.NewDepthLimitExceededError(policy.MaxDepth))
	}

	return r
}

func (r *Reader) Policy() Policy { return r.s.policy }
func (r *Reader) Depth() int     { return r.depth }
func (r *Reader) Record() Record { return r.rec }

func (r *Reader) Path() []string {
	return append([]string(nil), r.path...)
}

// Err returns the first recorded error, or all of them joined when the policy
// collects errors.
func (r *Reader) Err() error {
	switch len(r.s.errs) {
	case 0:
		return nil
	case 1:
		return r.s.errs[0]
	}
	return errors.Join(r.s.errs...)
}

// Failed reports whether any error was recorded since this reader was created,
// which includes every error raised by its children.
func (r *Reader) Failed() bool {
	return len(r.s.errs) > r.mark
}

func (r *Reader) Halted() bool {
	return r.s.halted()
}

// Fail records err at the position of this reader. Validation errors that carry
// a relative path are rebased onto the reader path.
func (r *Reader) Fail(err error) {
	if err == nil {
		return
	}
	r.s.add(vrserrors.Within(err, r.path...))
}

func (r *Reader) Report(kind error, field string, format string, args ...any) {
	path := r.Path()
	if field != "" {
		path = append(path, field)
	}
	r.s.add(vrserrors.New(kind, path, format, args...))
}

// Expect compares the keys of the record with a closed field set. Undeclared keys
// are reported before missing required ones; both in a stable order.
func (r *Reader) Expect(fields Fields) bool {
	mark := len(r.s.errs)

	for _, key := range sortedKeys(r.rec) {
		if !fields.Has(key) {
			r.Fail(vrserrors.NewUnexpectedFieldError(key))
		}
	}

	for _, field := range fields {
		if _, ok := r.rec[field.Name]; field.Required && !ok {
			r.Fail(vrserrors.NewMissingRequiredFieldError(field.Name))
		}
	}

	return len(r.s.errs) == mark
}

// Has reports whether the field is present, regardless of its value
func (r *Reader) Has(field string) bool {
	_, ok := r.rec[field]
	return ok
}

// Field returns the value of a present field, positioned at its path
func (r *Reader) Field(name string) (Value, bool) {
	if r.Halted() {
		return Value{}, false
	}

	raw, ok := r.rec[name]
	if !ok {
		return Value{}, false
	}

	path := make([]string, 0, len(r.path)+1)
	path = append(path, r.path...)
	path = append(path, name)

	return Value{raw: raw, path: path, depth: r.depth, s: r.s}, true
}

func (r *Reader) String(name string) (string, bool) {
	v, ok := r.Field(name)
	if !ok {
		return "", false
	}
	return v.AsString()
}

func (r *Reader) Int(name string) (int, bool) {
	v, ok := r.Field(name)
	if !ok {
		return 0, false
	}
	return v.AsInt()
}

func (r *Reader) Bool(name string) (bool, bool) {
	v, ok := r.Field(name)
	if !ok {
		return false, false
	}
	return v.AsBool()
}

func (r *Reader) Object(name string) (*Reader, bool) {
	v, ok := r.Field(name)
	if !ok {
		return nil, false
	}
	return v.AsObject()
}

func (r *Reader) List(name string) ([]Value, bool) {
	v, ok := r.Field(name)
	if !ok {
		return nil, false
	}
	return v.AsList()
}

// Value is a raw field or list element positioned in the record graph
type Value struct {
	raw   any
	path  []string
	depth int
	s     *state
}

func (v Value) Raw() any { return v.raw }

func (v Value) Path() []string {
	return append([]string(nil), v.path...)
}

func (v Value) IsString() bool {
	_, ok := v.raw.(string)
	return ok
}

func (v Value) IsObject() bool {
	_, ok := AsRecord(v.raw)
	return ok
}

func (v Value) Report(kind error, format string, args ...any) {
	v.s.add(vrserrors.New(kind, v.path, format, args...))
}

func (v Value) mismatch(expected string) {
	v.Report(vrserrors.ErrShapeMismatch, "expected %s, got %s", expected, Describe(v.raw))
}

func (v Value) AsString() (string, bool) {
	s, ok := v.raw.(string)
	if !ok {
		v.mismatch("string")
		return "", false
	}
	return s, true
}

func (v Value) AsInt() (int, bool) {
	n, ok := AsInt(v.raw)
	if !ok {
		v.mismatch("integer")
		return 0, false
	}
	return n, true
}

func (v Value) AsBool() (bool, bool) {
	b, ok := v.raw.(bool)
	if !ok {
		v.mismatch("boolean")
		return false, false
	}
	return b, true
}

// Object opens a nested object one level deeper than the value's owner
func (v Value) AsObject() (*Reader, bool) {
	rec, ok := AsRecord(v.raw)
	if !ok {
		v.mismatch("object")
		return nil, false
	}

	depth := v.depth + 1
	if depth > v.s.policy.MaxDepth {
		v.s.add(vrserrors.Within(vrserrors.NewDepthLimitExceededError(v.s.policy.MaxDepth), v.path...))
		return nil, false
	}

	return &Reader{
		rec:   rec,
		path:  v.Path(),
		depth: depth,
		mark:  len(v.s.errs),
		s:     v.s,
	}, true
}

func (v Value) AsList() ([]Value, bool) {
	list, ok := AsList(v.raw)
	if !ok {
		v.mismatch("list")
		return nil, false
	}

	values := make([]Value, 0, len(list))
	for i, item := range list {
		path := make([]string, 0, len(v.path)+1)
		path = append(path, v.path...)
		path = append(path, vrserrors.Index(i))
		values = append(values, Value{raw: item, path: path, depth: v.depth, s: v.s})
	}

	return values, true
}
