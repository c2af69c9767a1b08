package types

import (
	"strconv"

	"github.com/diwise/vrs/pkg/vrs/record"
)

// Number is a simple integer value
type Number struct {
	valueEntity
	value int
}

func NewNumber(value int, options ...Option) (*Number, error) {
	c := &checks{}
	n := &Number{
		valueEntity: newValueEntity(c, options),
		value:       value,
	}
	if c.failed() {
		return nil, c.err()
	}
	return n, nil
}

func (n *Number) Type() string       { return TypeNumber }
func (n *Number) Value() int         { return n.value }
func (n *Number) Lower() (int, bool) { return n.value, true }
func (n *Number) Upper() (int, bool) { return n.value, true }
func (n *Number) isRange()           {}

func (n *Number) Record() record.Record {
	r := n.record(TypeNumber)
	r["value"] = n.value
	return r
}

func (n *Number) MarshalJSON() ([]byte, error) { return marshal(n) }

// DefiniteRange is a bounded, inclusive range of numbers
type DefiniteRange struct {
	valueEntity
	min int
	max int
}

func NewDefiniteRange(min, max int, options ...Option) (*DefiniteRange, error) {
	c := &checks{}
	dr := &DefiniteRange{
		valueEntity: newValueEntity(c, options),
		min:         min,
		max:         max,
	}

	if !c.failed() && min > max {
		c.invariant(nil, "min (%d) must not be greater than max (%d)", min, max)
	}

	if c.failed() {
		return nil, c.err()
	}
	return dr, nil
}

func (dr *DefiniteRange) Type() string       { return TypeDefiniteRange }
func (dr *DefiniteRange) Min() int           { return dr.min }
func (dr *DefiniteRange) Max() int           { return dr.max }
func (dr *DefiniteRange) Lower() (int, bool) { return dr.min, true }
func (dr *DefiniteRange) Upper() (int, bool) { return dr.max, true }
func (dr *DefiniteRange) isRange()           {}

func (dr *DefiniteRange) Record() record.Record {
	r := dr.record(TypeDefiniteRange)
	r["min"] = dr.min
	r["max"] = dr.max
	return r
}

func (dr *DefiniteRange) MarshalJSON() ([]byte, error) { return marshal(dr) }

type Comparator string

const (
	LessThanOrEqual    Comparator = "<="
	GreaterThanOrEqual Comparator = ">="
)

func (c Comparator) Valid() bool {
	return c == LessThanOrEqual || c == GreaterThanOrEqual
}

// IndefiniteRange is a half-bounded range: all numbers on one side of value, inclusive
type IndefiniteRange struct {
	valueEntity
	value      int
	comparator Comparator
}

func NewIndefiniteRange(value int, comparator Comparator, options ...Option) (*IndefiniteRange, error) {
	c := &checks{}
	ir := &IndefiniteRange{
		valueEntity: newValueEntity(c, options),
		value:       value,
		comparator:  comparator,
	}

	if !c.failed() && !comparator.Valid() {
		c.invariant([]string{"comparator"}, "comparator must be %q or %q, got %q", LessThanOrEqual, GreaterThanOrEqual, comparator)
	}

	if c.failed() {
		return nil, c.err()
	}
	return ir, nil
}

func (ir *IndefiniteRange) Type() string           { return TypeIndefiniteRange }
func (ir *IndefiniteRange) Value() int             { return ir.value }
func (ir *IndefiniteRange) Comparator() Comparator { return ir.comparator }
func (ir *IndefiniteRange) isRange()               {}

func (ir *IndefiniteRange) Lower() (int, bool) {
	if ir.comparator == GreaterThanOrEqual {
		return ir.value, true
	}
	return 0, false
}

func (ir *IndefiniteRange) Upper() (int, bool) {
	if ir.comparator == LessThanOrEqual {
		return ir.value, true
	}
	return 0, false
}

func (ir *IndefiniteRange) Record() record.Record {
	r := ir.record(TypeIndefiniteRange)
	r["value"] = ir.value
	r["comparator"] = string(ir.comparator)
	return r
}

func (ir *IndefiniteRange) MarshalJSON() ([]byte, error) { return marshal(ir) }

// nonNegative reports whether every bound of r is zero or greater
func nonNegative(r Range) bool {
	if lo, ok := r.Lower(); ok && lo < 0 {
		return false
	}
	if hi, ok := r.Upper(); ok && hi < 0 {
		return false
	}
	return true
}

// startPoint is the largest bounded value of a range used as a start coordinate
func startPoint(r Range) int {
	if hi, ok := r.Upper(); ok {
		return hi
	}
	lo, _ := r.Lower()
	return lo
}

// endPoint is the smallest bounded value of a range used as an end coordinate
func endPoint(r Range) int {
	if lo, ok := r.Lower(); ok {
		return lo
	}
	hi, _ := r.Upper()
	return hi
}

func describeRange(r Range) string {
	switch v := r.(type) {
	case *Number:
		return strconv.Itoa(v.value)
	case *DefiniteRange:
		return "[" + strconv.Itoa(v.min) + ", " + strconv.Itoa(v.max) + "]"
	case *IndefiniteRange:
		return string(v.comparator) + strconv.Itoa(v.value)
	}
	return "?"
}
