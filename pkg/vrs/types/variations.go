package types

import (
	vrserrors "github.com/diwise/vrs/pkg/vrs/errors"
	"github.com/diwise/vrs/pkg/vrs/record"
)

// Allele is the state of a molecule at a location
type Allele struct {
	valueEntity
	location Member[Location]
	state    SequenceExpression
}

func NewAllele(location Member[Location], state SequenceExpression, options ...Option) (*Allele, error) {
	c := &checks{}
	a := &Allele{
		valueEntity: newValueEntity(c, options),
		location:    location,
		state:       state,
	}

	location.check(c, "location")
	if isNil(state) {
		c.missing("state")
	}

	if c.failed() {
		return nil, c.err()
	}
	return a, nil
}

func (a *Allele) Type() string               { return TypeAllele }
func (a *Allele) Location() Member[Location] { return a.location }
func (a *Allele) State() SequenceExpression  { return a.state }
func (a *Allele) isVariation()               {}
func (a *Allele) isMolecularVariation()      {}

func (a *Allele) Record() record.Record {
	r := a.record(TypeAllele)
	r["location"] = a.location.Raw()
	r["state"] = a.state.Record()
	return r
}

func (a *Allele) MarshalJSON() ([]byte, error) { return marshal(a) }

// Haplotype is a set of non-overlapping alleles that co-occur on the same molecule.
//
// Overlap can only be detected between embedded alleles whose locations are
// embedded sequence locations on the same sequence. Referenced alleles and
// locations have to be checked by whoever resolves the references.
type Haplotype struct {
	valueEntity
	members []Member[*Allele]
}

func NewHaplotype(members []Member[*Allele], options ...Option) (*Haplotype, error) {
	c := &checks{}
	h := &Haplotype{
		valueEntity: newValueEntity(c, options),
		members:     append([]Member[*Allele]{}, members...),
	}

	checkMembers(c, "members", members)

	if !c.failed() {
		if len(members) == 0 {
			c.invariant([]string{"members"}, "a haplotype must have at least one member")
		}
		checkOverlaps(c, members)
	}

	if c.failed() {
		return nil, c.err()
	}
	return h, nil
}

type interval struct {
	index      int
	sequenceID string
	start, end int
}

func checkOverlaps(c *checks, members []Member[*Allele]) {
	seen := []interval{}

	for i, m := range members {
		allele, ok := m.Embedded()
		if !ok {
			continue
		}

		sl, ok := sequenceLocationOf(allele.location)
		if !ok {
			continue
		}

		start, end := sl.Interval()
		for _, other := range seen {
			if other.sequenceID == sl.sequenceID && start < other.end && other.start < end {
				c.invariant(
					[]string{"members", vrserrors.Index(i)},
					"allele overlaps member %d on %s", other.index, sl.sequenceID,
				)
			}
		}

		seen = append(seen, interval{index: i, sequenceID: sl.sequenceID, start: start, end: end})
	}
}

func sequenceLocationOf(m Member[Location]) (*SequenceLocation, bool) {
	loc, ok := m.Embedded()
	if !ok {
		return nil, false
	}
	sl, ok := loc.(*SequenceLocation)
	return sl, ok
}

func (h *Haplotype) Type() string { return TypeHaplotype }

func (h *Haplotype) Members() []Member[*Allele] {
	return append([]Member[*Allele]{}, h.members...)
}

func (h *Haplotype) isVariation()          {}
func (h *Haplotype) isMolecularVariation() {}

func (h *Haplotype) Record() record.Record {
	r := h.record(TypeHaplotype)
	r["members"] = rawMembers(h.members)
	return r
}

func (h *Haplotype) MarshalJSON() ([]byte, error) { return marshal(h) }

// Text is a free-text definition of variation
type Text struct {
	valueEntity
	definition string
}

func NewText(definition string, options ...Option) (*Text, error) {
	c := &checks{}
	t := &Text{
		valueEntity: newValueEntity(c, options),
		definition:  definition,
	}

	if c.failed() {
		return nil, c.err()
	}
	return t, nil
}

func (t *Text) Type() string        { return TypeText }
func (t *Text) Definition() string  { return t.definition }
func (t *Text) isVariation()        {}
func (t *Text) isUtilityVariation() {}

func (t *Text) Record() record.Record {
	r := t.record(TypeText)
	r["definition"] = t.definition
	return r
}

func (t *Text) MarshalJSON() ([]byte, error) { return marshal(t) }

// VariationSet is an unconstrained, possibly empty, set of variations
type VariationSet struct {
	valueEntity
	members []Member[Variation]
}

func NewVariationSet(members []Member[Variation], options ...Option) (*VariationSet, error) {
	c := &checks{}
	vs := &VariationSet{
		valueEntity: newValueEntity(c, options),
		members:     append([]Member[Variation]{}, members...),
	}

	checkMembers(c, "members", members)

	if c.failed() {
		return nil, c.err()
	}
	return vs, nil
}

func (vs *VariationSet) Type() string { return TypeVariationSet }

func (vs *VariationSet) Members() []Member[Variation] {
	return append([]Member[Variation]{}, vs.members...)
}

func (vs *VariationSet) isVariation()        {}
func (vs *VariationSet) isUtilityVariation() {}

func (vs *VariationSet) Record() record.Record {
	r := vs.record(TypeVariationSet)
	r["members"] = rawMembers(vs.members)
	return r
}

func (vs *VariationSet) MarshalJSON() ([]byte, error) { return marshal(vs) }
