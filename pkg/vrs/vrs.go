// Package vrs constructs and validates variation representation objects from
// untyped, JSON-like records.
package vrs

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	vrserrors "github.com/diwise/vrs/pkg/vrs/errors"
	"github.com/diwise/vrs/pkg/vrs/record"
	"github.com/diwise/vrs/pkg/vrs/registry"
	"github.com/diwise/vrs/pkg/vrs/types"
)

var ErrBadInput = fmt.Errorf("malformed input")

// Construct builds a fully validated entity of the given family, or returns the
// validation errors. A partially constructed entity is never returned.
func Construct(family string, rec record.Record, options ...record.Option) (types.Entity, error) {
	return registry.Construct(family, rec, options...)
}

// ConstructAs constructs an entity and asserts its Go type, e.g.
//
//	allele, err := vrs.ConstructAs[*types.Allele](types.TypeAllele, rec)
func ConstructAs[T types.Entity](family string, rec record.Record, options ...record.Option) (T, error) {
	var zero T

	e, err := registry.Construct(family, rec, options...)
	if err != nil {
		return zero, err
	}

	t, ok := e.(T)
	if !ok {
		return zero, vrserrors.NewUnknownDiscriminatorError("%s can not be used as %T", e.Type(), zero)
	}

	return t, nil
}

// Serialize returns the record form of an entity. Only declared fields are
// emitted and the type discriminator is always included.
func Serialize(e types.Entity) record.Record {
	if e == nil {
		return nil
	}
	return e.Record()
}

// DecodeJSON decodes a JSON object into a record. Numbers are kept as
// json.Number so that integers are never rounded through float64.
func DecodeJSON(data []byte) (record.Record, error) {
	rec := record.Record{}

	d := json.NewDecoder(bytes.NewReader(data))
	d.UseNumber()

	if err := d.Decode(&rec); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadInput, err.Error())
	}

	return rec, nil
}

// DecodeYAML decodes a YAML mapping into a record
func DecodeYAML(data []byte) (record.Record, error) {
	rec := record.Record{}

	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadInput, err.Error())
	}

	return rec, nil
}

// ConstructJSON decodes a JSON object and constructs it
func ConstructJSON(family string, data []byte, options ...record.Option) (types.Entity, error) {
	rec, err := DecodeJSON(data)
	if err != nil {
		return nil, err
	}
	return Construct(family, rec, options...)
}

// ConstructYAML decodes a YAML mapping and constructs it
func ConstructYAML(family string, data []byte, options ...record.Option) (types.Entity, error) {
	rec, err := DecodeYAML(data)
	if err != nil {
		return nil, err
	}
	return Construct(family, rec, options...)
}
