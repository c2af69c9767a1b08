package types

import (
	"github.com/diwise/vrs/pkg/vrs/record"
)

type Disease struct {
	domainEntity
}

func NewDisease(id string, options ...Option) (*Disease, error) {
	c := &checks{}
	d := &Disease{domainEntity: newDomainEntity(c, id, options)}
	if c.failed() {
		return nil, c.err()
	}
	return d, nil
}

func (d *Disease) Type() string                 { return TypeDisease }
func (d *Disease) Record() record.Record        { return d.record(TypeDisease) }
func (d *Disease) MarshalJSON() ([]byte, error) { return marshal(d) }
func (d *Disease) isDomainEntity()              {}
func (d *Disease) isConditionMember()           {}

type Phenotype struct {
	domainEntity
}

func NewPhenotype(id string, options ...Option) (*Phenotype, error) {
	c := &checks{}
	p := &Phenotype{domainEntity: newDomainEntity(c, id, options)}
	if c.failed() {
		return nil, c.err()
	}
	return p, nil
}

func (p *Phenotype) Type() string                 { return TypePhenotype }
func (p *Phenotype) Record() record.Record        { return p.record(TypePhenotype) }
func (p *Phenotype) MarshalJSON() ([]byte, error) { return marshal(p) }
func (p *Phenotype) isDomainEntity()              {}
func (p *Phenotype) isConditionMember()           {}

type Gene struct {
	domainEntity
}

func NewGene(id string, options ...Option) (*Gene, error) {
	c := &checks{}
	g := &Gene{domainEntity: newDomainEntity(c, id, options)}
	if c.failed() {
		return nil, c.err()
	}
	return g, nil
}

func (g *Gene) Type() string                 { return TypeGene }
func (g *Gene) Record() record.Record        { return g.record(TypeGene) }
func (g *Gene) MarshalJSON() ([]byte, error) { return marshal(g) }
func (g *Gene) isDomainEntity()              {}

type Therapeutic struct {
	domainEntity
}

func NewTherapeutic(id string, options ...Option) (*Therapeutic, error) {
	c := &checks{}
	t := &Therapeutic{domainEntity: newDomainEntity(c, id, options)}
	if c.failed() {
		return nil, c.err()
	}
	return t, nil
}

func (t *Therapeutic) Type() string                 { return TypeTherapeutic }
func (t *Therapeutic) Record() record.Record        { return t.record(TypeTherapeutic) }
func (t *Therapeutic) MarshalJSON() ([]byte, error) { return marshal(t) }
func (t *Therapeutic) isDomainEntity()              {}

// Condition is a set of diseases and phenotypes that co-occur in a patient
type Condition struct {
	valueEntity
	members []Member[ConditionMember]
}

func NewCondition(members []Member[ConditionMember], options ...Option) (*Condition, error) {
	c := &checks{}
	cond := &Condition{
		valueEntity: newValueEntity(c, options),
		members:     append([]Member[ConditionMember]{}, members...),
	}

	checkMembers(c, "members", members)

	if c.failed() {
		return nil, c.err()
	}
	return cond, nil
}

func (cond *Condition) Type() string { return TypeCondition }

func (cond *Condition) Members() []Member[ConditionMember] {
	return append([]Member[ConditionMember]{}, cond.members...)
}

func (cond *Condition) Record() record.Record {
	r := cond.record(TypeCondition)
	r["members"] = rawMembers(cond.members)
	return r
}

func (cond *Condition) MarshalJSON() ([]byte, error) { return marshal(cond) }

type therapeuticCollection struct {
	valueEntity
	members []Member[*Therapeutic]
}

func newTherapeuticCollection(c *checks, members []Member[*Therapeutic], options []Option) therapeuticCollection {
	tc := therapeuticCollection{
		valueEntity: newValueEntity(c, options),
		members:     append([]Member[*Therapeutic]{}, members...),
	}
	checkMembers(c, "members", members)
	return tc
}

func (tc therapeuticCollection) Members() []Member[*Therapeutic] {
	return append([]Member[*Therapeutic]{}, tc.members...)
}

func (tc therapeuticCollection) record(typ string) record.Record {
	r := tc.valueEntity.record(typ)
	r["members"] = rawMembers(tc.members)
	return r
}

func (tc therapeuticCollection) isTherapeuticCollection() {}

// CombinationTherapeuticCollection is a set of therapeutics administered together
type CombinationTherapeuticCollection struct {
	therapeuticCollection
}

func NewCombinationTherapeuticCollection(members []Member[*Therapeutic], options ...Option) (*CombinationTherapeuticCollection, error) {
	c := &checks{}
	ctc := &CombinationTherapeuticCollection{newTherapeuticCollection(c, members, options)}
	if c.failed() {
		return nil, c.err()
	}
	return ctc, nil
}

func (ctc *CombinationTherapeuticCollection) Type() string {
	return TypeCombinationTherapeuticCollection
}

func (ctc *CombinationTherapeuticCollection) Record() record.Record {
	return ctc.record(TypeCombinationTherapeuticCollection)
}

func (ctc *CombinationTherapeuticCollection) MarshalJSON() ([]byte, error) { return marshal(ctc) }

// SubstituteTherapeuticCollection is a set of therapeutics that may be used
// interchangeably
type SubstituteTherapeuticCollection struct {
	therapeuticCollection
}

func NewSubstituteTherapeuticCollection(members []Member[*Therapeutic], options ...Option) (*SubstituteTherapeuticCollection, error) {
	c := &checks{}
	stc := &SubstituteTherapeuticCollection{newTherapeuticCollection(c, members, options)}
	if c.failed() {
		return nil, c.err()
	}
	return stc, nil
}

func (stc *SubstituteTherapeuticCollection) Type() string {
	return TypeSubstituteTherapeuticCollection
}

func (stc *SubstituteTherapeuticCollection) Record() record.Record {
	return stc.record(TypeSubstituteTherapeuticCollection)
}

func (stc *SubstituteTherapeuticCollection) MarshalJSON() ([]byte, error) { return marshal(stc) }
