package types

import (
	"regexp"

	vrserrors "github.com/diwise/vrs/pkg/vrs/errors"
	"github.com/diwise/vrs/pkg/vrs/record"
)

var sequencePattern = regexp.MustCompile(`^[A-Z*\-]*$`)

// LiteralSequenceExpression is an explicit sequence of residues
type LiteralSequenceExpression struct {
	valueEntity
	sequence string
}

func NewLiteralSequenceExpression(sequence string, options ...Option) (*LiteralSequenceExpression, error) {
	c := &checks{}
	lse := &LiteralSequenceExpression{
		valueEntity: newValueEntity(c, options),
		sequence:    sequence,
	}

	if !sequencePattern.MatchString(sequence) {
		c.shape("sequence", "%q is not a sequence of residue codes", sequence)
	}

	if c.failed() {
		return nil, c.err()
	}
	return lse, nil
}

func (lse *LiteralSequenceExpression) Type() string          { return TypeLiteralSequenceExpression }
func (lse *LiteralSequenceExpression) Sequence() string      { return lse.sequence }
func (lse *LiteralSequenceExpression) isSequenceExpression() {}

func (lse *LiteralSequenceExpression) Record() record.Record {
	r := lse.record(TypeLiteralSequenceExpression)
	r["sequence"] = lse.sequence
	return r
}

func (lse *LiteralSequenceExpression) MarshalJSON() ([]byte, error) { return marshal(lse) }

// DerivedSequenceExpression approximates a sequence by the one found at a location
type DerivedSequenceExpression struct {
	valueEntity
	location          Member[*SequenceLocation]
	reverseComplement bool
}

func NewDerivedSequenceExpression(location Member[*SequenceLocation], reverseComplement bool, options ...Option) (*DerivedSequenceExpression, error) {
	c := &checks{}
	dse := &DerivedSequenceExpression{
		valueEntity:       newValueEntity(c, options),
		location:          location,
		reverseComplement: reverseComplement,
	}

	location.check(c, "location")

	if c.failed() {
		return nil, c.err()
	}
	return dse, nil
}

func (dse *DerivedSequenceExpression) Type() string                        { return TypeDerivedSequenceExpression }
func (dse *DerivedSequenceExpression) Location() Member[*SequenceLocation] { return dse.location }
func (dse *DerivedSequenceExpression) ReverseComplement() bool             { return dse.reverseComplement }
func (dse *DerivedSequenceExpression) isSequenceExpression()               {}

func (dse *DerivedSequenceExpression) Record() record.Record {
	r := dse.record(TypeDerivedSequenceExpression)
	r["location"] = dse.location.Raw()
	r["reverse_complement"] = dse.reverseComplement
	return r
}

func (dse *DerivedSequenceExpression) MarshalJSON() ([]byte, error) { return marshal(dse) }

// RepeatedSequenceExpression is a tandem repeat of a literal subsequence
type RepeatedSequenceExpression struct {
	valueEntity
	seqExpr *LiteralSequenceExpression
	count   Range
}

func NewRepeatedSequenceExpression(seqExpr *LiteralSequenceExpression, count Range, options ...Option) (*RepeatedSequenceExpression, error) {
	c := &checks{}
	rse := &RepeatedSequenceExpression{
		valueEntity: newValueEntity(c, options),
		seqExpr:     seqExpr,
		count:       count,
	}

	if seqExpr == nil {
		c.missing("seq_expr")
	}
	if isNil(count) {
		c.missing("count")
	}

	if !c.failed() && !nonNegative(count) {
		c.invariant([]string{"count"}, "count %s must not be negative", describeRange(count))
	}

	if c.failed() {
		return nil, c.err()
	}
	return rse, nil
}

func (rse *RepeatedSequenceExpression) Type() string                        { return TypeRepeatedSequenceExpression }
func (rse *RepeatedSequenceExpression) SeqExpr() *LiteralSequenceExpression { return rse.seqExpr }
func (rse *RepeatedSequenceExpression) Count() Range                        { return rse.count }
func (rse *RepeatedSequenceExpression) isSequenceExpression()               {}

func (rse *RepeatedSequenceExpression) Record() record.Record {
	r := rse.record(TypeRepeatedSequenceExpression)
	r["seq_expr"] = rse.seqExpr.Record()
	r["count"] = rse.count.Record()
	return r
}

func (rse *RepeatedSequenceExpression) MarshalJSON() ([]byte, error) { return marshal(rse) }

// ComposedSequenceExpression concatenates other sequence expressions. Literal
// components must be merged beforehand, so two literals are never adjacent, and
// at least one component must be something other than a literal.
type ComposedSequenceExpression struct {
	valueEntity
	components []SequenceExpression
}

func NewComposedSequenceExpression(components []SequenceExpression, options ...Option) (*ComposedSequenceExpression, error) {
	c := &checks{}
	cse := &ComposedSequenceExpression{
		valueEntity: newValueEntity(c, options),
		components:  append([]SequenceExpression{}, components...),
	}

	for i, component := range components {
		if isNil(component) {
			c.missing("components", vrserrors.Index(i))
		}
	}

	if !c.failed() {
		nonLiteral := false
		for i, component := range components {
			path := []string{"components", vrserrors.Index(i)}

			switch component.(type) {
			case *ComposedSequenceExpression:
				c.invariant(path, "composed sequence expressions cannot be nested")
				nonLiteral = true
			case *LiteralSequenceExpression:
				if i > 0 {
					if _, ok := components[i-1].(*LiteralSequenceExpression); ok {
						c.invariant(path, "adjacent literal sequence expressions must be merged")
					}
				}
			default:
				nonLiteral = true
			}
		}

		if !nonLiteral {
			c.invariant([]string{"components"}, "at least one component must not be a literal sequence expression")
		}
	}

	if c.failed() {
		return nil, c.err()
	}
	return cse, nil
}

func (cse *ComposedSequenceExpression) Type() string { return TypeComposedSequenceExpression }

func (cse *ComposedSequenceExpression) Components() []SequenceExpression {
	return append([]SequenceExpression{}, cse.components...)
}

func (cse *ComposedSequenceExpression) isSequenceExpression() {}

func (cse *ComposedSequenceExpression) Record() record.Record {
	r := cse.record(TypeComposedSequenceExpression)
	list := make([]any, 0, len(cse.components))
	for _, component := range cse.components {
		list = append(list, component.Record())
	}
	r["components"] = list
	return r
}

func (cse *ComposedSequenceExpression) MarshalJSON() ([]byte, error) { return marshal(cse) }
