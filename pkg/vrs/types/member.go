package types

import (
	"reflect"

	vrserrors "github.com/diwise/vrs/pkg/vrs/errors"
)

type memberKind int

const (
	memberUnset memberKind = iota
	memberEmbedded
	memberReference
)

// Member is a slot that either embeds a value or references one by its CURIE.
// Referenced values are resolved outside of this package, if at all.
type Member[T Entity] struct {
	value T
	ref   string
	kind  memberKind
}

func Embed[T Entity](value T) Member[T] {
	return Member[T]{value: value, kind: memberEmbedded}
}

func Ref[T Entity](curie string) Member[T] {
	return Member[T]{ref: curie, kind: memberReference}
}

func (m Member[T]) Embedded() (T, bool) {
	return m.value, m.kind == memberEmbedded
}

func (m Member[T]) Reference() (string, bool) {
	return m.ref, m.kind == memberReference
}

func (m Member[T]) IsEmbedded() bool  { return m.kind == memberEmbedded }
func (m Member[T]) IsReference() bool { return m.kind == memberReference }
func (m Member[T]) IsZero() bool      { return m.kind == memberUnset }

// Raw returns the serialized form of the slot: a record or a CURIE string
func (m Member[T]) Raw() any {
	switch m.kind {
	case memberEmbedded:
		return m.value.Record()
	case memberReference:
		return m.ref
	}
	return nil
}

func (m Member[T]) check(c *checks, path ...string) {
	switch m.kind {
	case memberUnset:
		c.missing(path...)
	case memberEmbedded:
		if isNil(m.value) {
			c.missing(path...)
		}
	case memberReference:
		if !IsCURIE(m.ref) {
			c.add(vrserrors.New(vrserrors.ErrShapeMismatch, path, "reference %q is not a CURIE", m.ref))
		}
	}
}

func checkMembers[T Entity](c *checks, field string, members []Member[T]) {
	for i, m := range members {
		m.check(c, field, vrserrors.Index(i))
	}
}

func rawMembers[T Entity](members []Member[T]) []any {
	list := make([]any, 0, len(members))
	for _, m := range members {
		list = append(list, m.Raw())
	}
	return list
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	}
	return false
}
