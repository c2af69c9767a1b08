package types

import (
	"encoding/json"
	"regexp"

	vrserrors "github.com/diwise/vrs/pkg/vrs/errors"
	"github.com/diwise/vrs/pkg/vrs/record"
)

var curiePattern = regexp.MustCompile(`^\w[^:\s]*:\S+$`)

// IsCURIE reports whether s is formatted as a compact URI, prefix:local-id
func IsCURIE(s string) bool {
	return curiePattern.MatchString(s)
}

// Option sets an optional field of an entity under construction. Constructors
// reject options for fields that the constructed type does not declare.
type Option func(*optionals)

type optionals struct {
	id             *string
	label          *string
	extensions     Extensions
	hasExtensions  bool
	isVersionOf    *string
	version        *string
	recordMetadata *RecordMetadata
	value          any
	hasValue       bool
}

func (o optionals) set() []string {
	names := []string{}
	if o.id != nil {
		names = append(names, "id")
	}
	if o.label != nil {
		names = append(names, "label")
	}
	if o.hasExtensions {
		names = append(names, "extensions")
	}
	if o.isVersionOf != nil {
		names = append(names, "is_version_of")
	}
	if o.version != nil {
		names = append(names, "version")
	}
	if o.recordMetadata != nil {
		names = append(names, "record_metadata")
	}
	if o.hasValue {
		names = append(names, "value")
	}
	return names
}

func ID(id string) Option {
	return func(o *optionals) { o.id = &id }
}

func Label(label string) Option {
	return func(o *optionals) { o.label = &label }
}

// WithExtensions sets the extensions of an extensible entity. Calling it without
// arguments yields an explicitly empty list.
func WithExtensions(extensions ...*Extension) Option {
	return func(o *optionals) {
		o.extensions = append(Extensions{}, extensions...)
		o.hasExtensions = true
	}
}

func IsVersionOf(curie string) Option {
	return func(o *optionals) { o.isVersionOf = &curie }
}

func Version(version string) Option {
	return func(o *optionals) { o.version = &version }
}

func WithRecordMetadata(rm *RecordMetadata) Option {
	return func(o *optionals) { o.recordMetadata = rm }
}

// Value sets the opaque value of an Extension
func Value(v any) Option {
	return func(o *optionals) {
		o.value = record.Clone(v)
		o.hasValue = true
	}
}

func collect(c *checks, options []Option, allowed ...string) optionals {
	o := optionals{}
	for _, option := range options {
		option(&o)
	}

	for _, name := range o.set() {
		if !contains(allowed, name) {
			c.add(vrserrors.NewUnexpectedFieldError(name))
		}
	}

	return o
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// valueEntity holds the identity of a closed, non-extensible value object
type valueEntity struct {
	id    string
	hasID bool
}

func newValueEntity(c *checks, options []Option) valueEntity {
	o := collect(c, options, "id")

	v := valueEntity{}
	if o.id != nil {
		v.id, v.hasID = *o.id, true
		if !IsCURIE(v.id) {
			c.shape("id", "%q is not a CURIE", v.id)
		}
	}

	return v
}

func (v valueEntity) ID() string { return v.id }

func (v valueEntity) record(typ string) record.Record {
	r := record.Record{"type": typ}
	if v.hasID {
		r["id"] = v.id
	}
	return r
}

// domainEntity is a value entity whose id is a mandatory CURIE
type domainEntity struct {
	id string
}

func newDomainEntity(c *checks, id string, options []Option) domainEntity {
	collect(c, options)

	if !IsCURIE(id) {
		c.shape("id", "%q is not a CURIE", id)
	}

	return domainEntity{id: id}
}

func (d domainEntity) ID() string { return d.id }

func (d domainEntity) record(typ string) record.Record {
	return record.Record{"type": typ, "id": d.id}
}

// extensibleEntity carries the optional label and extensions of extensible objects
type extensibleEntity struct {
	id            string
	hasID         bool
	label         string
	hasLabel      bool
	extensions    Extensions
	hasExtensions bool
}

func newExtensibleEntity(o optionals) extensibleEntity {
	e := extensibleEntity{}
	if o.id != nil {
		e.id, e.hasID = *o.id, true
	}
	if o.label != nil {
		e.label, e.hasLabel = *o.label, true
	}
	if o.hasExtensions {
		e.extensions, e.hasExtensions = o.extensions, true
	}
	return e
}

func (e extensibleEntity) ID() string    { return e.id }
func (e extensibleEntity) Label() string { return e.label }

func (e extensibleEntity) Extensions() Extensions {
	if !e.hasExtensions {
		return nil
	}
	return append(Extensions{}, e.extensions...)
}

func (e extensibleEntity) check(c *checks) {
	for i, ext := range e.extensions {
		if ext == nil {
			c.missing("extensions", vrserrors.Index(i))
		}
	}
}

func (e extensibleEntity) record(typ string) record.Record {
	r := record.Record{"type": typ}
	if e.hasID {
		r["id"] = e.id
	}
	if e.hasLabel {
		r["label"] = e.label
	}
	if e.hasExtensions {
		list := make([]any, 0, len(e.extensions))
		for _, ext := range e.extensions {
			list = append(list, ext.Record())
		}
		r["extensions"] = list
	}
	return r
}

func marshal(e Entity) ([]byte, error) {
	return json.Marshal(e.Record())
}
