package types

import (
	vrserrors "github.com/diwise/vrs/pkg/vrs/errors"
	"github.com/diwise/vrs/pkg/vrs/record"
)

// GenotypeMember is the count of one molecular variation present in-trans at a
// genotype locus.
type GenotypeMember struct {
	valueEntity
	count     Range
	variation Member[MolecularVariation]
}

func NewGenotypeMember(count Range, variation Member[MolecularVariation], options ...Option) (*GenotypeMember, error) {
	c := &checks{}
	gm := &GenotypeMember{
		valueEntity: newValueEntity(c, options),
		count:       count,
		variation:   variation,
	}

	if isNil(count) {
		c.missing("count")
	}
	variation.check(c, "variation")

	if !c.failed() && !nonNegative(count) {
		c.invariant([]string{"count"}, "count %s must not be negative", describeRange(count))
	}

	if c.failed() {
		return nil, c.err()
	}
	return gm, nil
}

func (gm *GenotypeMember) Type() string                          { return TypeGenotypeMember }
func (gm *GenotypeMember) Count() Range                          { return gm.count }
func (gm *GenotypeMember) Variation() Member[MolecularVariation] { return gm.variation }

func (gm *GenotypeMember) Record() record.Record {
	r := gm.record(TypeGenotypeMember)
	r["count"] = gm.count.Record()
	r["variation"] = gm.variation.Raw()
	return r
}

func (gm *GenotypeMember) MarshalJSON() ([]byte, error) { return marshal(gm) }

// Genotype is a quantified set of in-trans molecular variation at a locus. The
// total count must cover the counts of all members; a surplus implies variation
// that is present but not listed.
type Genotype struct {
	valueEntity
	members []*GenotypeMember
	count   Range
}

func NewGenotype(members []*GenotypeMember, count Range, options ...Option) (*Genotype, error) {
	c := &checks{}
	g := &Genotype{
		valueEntity: newValueEntity(c, options),
		members:     append([]*GenotypeMember{}, members...),
		count:       count,
	}

	for i, m := range members {
		if m == nil {
			c.missing("members", vrserrors.Index(i))
		}
	}
	if isNil(count) {
		c.missing("count")
	}

	if !c.failed() {
		if !nonNegative(count) {
			c.invariant([]string{"count"}, "count %s must not be negative", describeRange(count))
		} else if total, bounded := count.Upper(); bounded {
			// member counts are non-negative, so sum never exceeds total
			sum := 0
			for _, m := range members {
				lo, ok := m.count.Lower()
				if !ok {
					continue
				}
				if lo > total-sum {
					c.invariant([]string{"count"}, "count %s is less than the sum of member counts", describeRange(count))
					break
				}
				sum += lo
			}
		}
	}

	if c.failed() {
		return nil, c.err()
	}
	return g, nil
}

func (g *Genotype) Type() string { return TypeGenotype }

func (g *Genotype) Members() []*GenotypeMember {
	return append([]*GenotypeMember{}, g.members...)
}

func (g *Genotype) Count() Range         { return g.count }
func (g *Genotype) isVariation()         {}
func (g *Genotype) isSystemicVariation() {}

func (g *Genotype) Record() record.Record {
	r := g.record(TypeGenotype)
	list := make([]any, 0, len(g.members))
	for _, m := range g.members {
		list = append(list, m.Record())
	}
	r["members"] = list
	r["count"] = g.count.Record()
	return r
}

func (g *Genotype) MarshalJSON() ([]byte, error) { return marshal(g) }
