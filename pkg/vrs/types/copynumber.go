package types

import (
	"github.com/diwise/vrs/pkg/vrs/record"
)

type RelativeCopyClass string

const (
	CopyNumberLoss          RelativeCopyClass = "EFO:0030067"
	LowLevelCopyNumberLoss  RelativeCopyClass = "EFO:0030068"
	CompleteGenomicDeletion RelativeCopyClass = "EFO:0030069"
	CopyNumberGain          RelativeCopyClass = "EFO:0030070"
	LowLevelCopyNumberGain  RelativeCopyClass = "EFO:0030071"
	HighLevelCopyNumberGain RelativeCopyClass = "EFO:0030072"
)

var RelativeCopyClasses = []RelativeCopyClass{
	CopyNumberGain,
	HighLevelCopyNumberGain,
	LowLevelCopyNumberGain,
	CopyNumberLoss,
	CompleteGenomicDeletion,
	LowLevelCopyNumberLoss,
}

func (rcc RelativeCopyClass) Valid() bool {
	for _, known := range RelativeCopyClasses {
		if rcc == known {
			return true
		}
	}
	return false
}

// AbsoluteCopyNumber is the count of discrete copies of a location within a system
type AbsoluteCopyNumber struct {
	valueEntity
	location Member[Location]
	copies   Range
}

func NewAbsoluteCopyNumber(location Member[Location], copies Range, options ...Option) (*AbsoluteCopyNumber, error) {
	c := &checks{}
	acn := &AbsoluteCopyNumber{
		valueEntity: newValueEntity(c, options),
		location:    location,
		copies:      copies,
	}

	location.check(c, "location")
	if isNil(copies) {
		c.missing("copies")
	}

	if !c.failed() && !nonNegative(copies) {
		c.invariant([]string{"copies"}, "copies %s must not be negative", describeRange(copies))
	}

	if c.failed() {
		return nil, c.err()
	}
	return acn, nil
}

func (acn *AbsoluteCopyNumber) Type() string               { return TypeAbsoluteCopyNumber }
func (acn *AbsoluteCopyNumber) Location() Member[Location] { return acn.location }
func (acn *AbsoluteCopyNumber) Copies() Range              { return acn.copies }
func (acn *AbsoluteCopyNumber) isVariation()               {}
func (acn *AbsoluteCopyNumber) isSystemicVariation()       {}
func (acn *AbsoluteCopyNumber) isCopyNumber()              {}

func (acn *AbsoluteCopyNumber) Record() record.Record {
	r := acn.record(TypeAbsoluteCopyNumber)
	r["location"] = acn.location.Raw()
	r["copies"] = acn.copies.Record()
	return r
}

func (acn *AbsoluteCopyNumber) MarshalJSON() ([]byte, error) { return marshal(acn) }

// RelativeCopyNumber classifies the copies of a location against an unspecified baseline
type RelativeCopyNumber struct {
	valueEntity
	location          Member[Location]
	relativeCopyClass RelativeCopyClass
}

func NewRelativeCopyNumber(location Member[Location], relativeCopyClass RelativeCopyClass, options ...Option) (*RelativeCopyNumber, error) {
	c := &checks{}
	rcn := &RelativeCopyNumber{
		valueEntity:       newValueEntity(c, options),
		location:          location,
		relativeCopyClass: relativeCopyClass,
	}

	location.check(c, "location")
	if !relativeCopyClass.Valid() {
		c.shape("relative_copy_class", "%q is not a known relative copy class", relativeCopyClass)
	}

	if c.failed() {
		return nil, c.err()
	}
	return rcn, nil
}

func (rcn *RelativeCopyNumber) Type() string                         { return TypeRelativeCopyNumber }
func (rcn *RelativeCopyNumber) Location() Member[Location]           { return rcn.location }
func (rcn *RelativeCopyNumber) RelativeCopyClass() RelativeCopyClass { return rcn.relativeCopyClass }
func (rcn *RelativeCopyNumber) isVariation()                         {}
func (rcn *RelativeCopyNumber) isSystemicVariation()                 {}
func (rcn *RelativeCopyNumber) isCopyNumber()                        {}

func (rcn *RelativeCopyNumber) Record() record.Record {
	r := rcn.record(TypeRelativeCopyNumber)
	r["location"] = rcn.location.Raw()
	r["relative_copy_class"] = string(rcn.relativeCopyClass)
	return r
}

func (rcn *RelativeCopyNumber) MarshalJSON() ([]byte, error) { return marshal(rcn) }
