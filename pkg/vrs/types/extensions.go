package types

import (
	"github.com/diwise/vrs/pkg/vrs/record"
)

// Extension is a named, opaque value attached to an extensible entity. The
// value is never interpreted.
type Extension struct {
	name     string
	value    any
	hasValue bool
}

func NewExtension(name string, options ...Option) (*Extension, error) {
	c := &checks{}
	o := collect(c, options, "value")

	if name == "" {
		c.missing("name")
	}

	if c.failed() {
		return nil, c.err()
	}

	return &Extension{name: name, value: o.value, hasValue: o.hasValue}, nil
}

func (e *Extension) ID() string   { return "" }
func (e *Extension) Type() string { return TypeExtension }
func (e *Extension) Name() string { return e.name }

// Value returns a copy of the extension value and whether one was set
func (e *Extension) Value() (any, bool) {
	return record.Clone(e.value), e.hasValue
}

func (e *Extension) Record() record.Record {
	r := record.Record{"type": TypeExtension, "name": e.name}
	if e.hasValue {
		r["value"] = record.Clone(e.value)
	}
	return r
}

func (e *Extension) MarshalJSON() ([]byte, error) { return marshal(e) }

type Extensions []*Extension

// Find returns every extension with the given name, in order
func (x Extensions) Find(name string) []*Extension {
	found := []*Extension{}
	for _, e := range x {
		if e != nil && e.name == name {
			found = append(found, e)
		}
	}
	return found
}

// RecordMetadata describes the provenance of a record
type RecordMetadata struct {
	extensibleEntity
	isVersionOf    string
	hasIsVersionOf bool
	version        string
	hasVersion     bool
}

func NewRecordMetadata(options ...Option) (*RecordMetadata, error) {
	c := &checks{}
	o := collect(c, options, "id", "label", "extensions", "is_version_of", "version")

	rm := &RecordMetadata{extensibleEntity: newExtensibleEntity(o)}
	rm.check(c)

	if o.isVersionOf != nil {
		rm.isVersionOf, rm.hasIsVersionOf = *o.isVersionOf, true
		if !IsCURIE(rm.isVersionOf) {
			c.shape("is_version_of", "%q is not a CURIE", rm.isVersionOf)
		}
	}
	if o.version != nil {
		rm.version, rm.hasVersion = *o.version, true
	}

	if c.failed() {
		return nil, c.err()
	}
	return rm, nil
}

func (rm *RecordMetadata) Type() string { return TypeRecordMetadata }

func (rm *RecordMetadata) IsVersionOf() (string, bool) { return rm.isVersionOf, rm.hasIsVersionOf }
func (rm *RecordMetadata) Version() (string, bool)     { return rm.version, rm.hasVersion }

func (rm *RecordMetadata) Record() record.Record {
	r := rm.record(TypeRecordMetadata)
	if rm.hasIsVersionOf {
		r["is_version_of"] = rm.isVersionOf
	}
	if rm.hasVersion {
		r["version"] = rm.version
	}
	return r
}

func (rm *RecordMetadata) MarshalJSON() ([]byte, error) { return marshal(rm) }

// Coding is a code, identified by a CURIE, from a controlled vocabulary
type Coding struct {
	extensibleEntity
	recordMetadata *RecordMetadata
}

func NewCoding(options ...Option) (*Coding, error) {
	c := &checks{}
	o := collect(c, options, "id", "label", "extensions", "record_metadata")

	cd := &Coding{
		extensibleEntity: newExtensibleEntity(o),
		recordMetadata:   o.recordMetadata,
	}
	cd.check(c)

	if cd.hasID && !IsCURIE(cd.id) {
		c.shape("id", "%q is not a CURIE", cd.id)
	}

	if c.failed() {
		return nil, c.err()
	}
	return cd, nil
}

func (cd *Coding) Type() string                    { return TypeCoding }
func (cd *Coding) RecordMetadata() *RecordMetadata { return cd.recordMetadata }

func (cd *Coding) Record() record.Record {
	r := cd.record(TypeCoding)
	if cd.recordMetadata != nil {
		r["record_metadata"] = cd.recordMetadata.Record()
	}
	return r
}

func (cd *Coding) MarshalJSON() ([]byte, error) { return marshal(cd) }
