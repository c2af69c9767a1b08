package registry

import (
	"fmt"
	"sort"

	vrserrors "github.com/diwise/vrs/pkg/vrs/errors"
	"github.com/diwise/vrs/pkg/vrs/record"
	"github.com/diwise/vrs/pkg/vrs/types"
)

// Abstract families. Every concrete type name is also accepted as a family that
// contains only that type.
const (
	FamilyVariation             string = "Variation"
	FamilyMolecularVariation    string = "MolecularVariation"
	FamilyUtilityVariation      string = "UtilityVariation"
	FamilySystemicVariation     string = "SystemicVariation"
	FamilyCopyNumber            string = "CopyNumber"
	FamilyLocation              string = "Location"
	FamilySequenceExpression    string = "SequenceExpression"
	FamilyTherapeuticCollection string = "TherapeuticCollection"
	FamilyDomainEntity          string = "DomainEntity"
	FamilyRange                 string = "Range"
	FamilyConditionMember       string = "ConditionMember"
)

type decodeFunc func(r *record.Reader) (types.Entity, bool)

type leaf struct {
	name     string
	families []string
	fields   record.Fields
	decode   decodeFunc
}

func (l leaf) memberOf(family string) bool {
	if family == l.name {
		return true
	}
	for _, f := range l.families {
		if f == family {
			return true
		}
	}
	return false
}

var (
	leaves   map[string]leaf
	families map[string][]string
)

func init() {
	leaves = map[string]leaf{}
	families = map[string][]string{}

	for _, l := range definitions() {
		l.fields = append(record.Fields{optional("type")}, l.fields...)
		leaves[l.name] = l
		for _, f := range l.families {
			families[f] = append(families[f], l.name)
		}
	}

	for f := range families {
		sort.Strings(families[f])
	}
}

func required(name string) record.Field { return record.Field{Name: name, Required: true} }
func optional(name string) record.Field { return record.Field{Name: name} }

// Families returns the names of all abstract families, sorted
func Families() []string {
	names := make([]string, 0, len(families))
	for f := range families {
		names = append(names, f)
	}
	sort.Strings(names)
	return names
}

// Types returns the names of all concrete types, sorted
func Types() []string {
	names := make([]string, 0, len(leaves))
	for name := range leaves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Leaves returns the concrete types that belong to a family, or nil if the
// family is unknown.
func Leaves(family string) []string {
	if names, ok := families[family]; ok {
		return append([]string{}, names...)
	}
	if _, ok := leaves[family]; ok {
		return []string{family}
	}
	return nil
}

// Fields returns the declared field set of a concrete type, including type
func Fields(typeName string) (record.Fields, bool) {
	l, ok := leaves[typeName]
	if !ok {
		return nil, false
	}
	return append(record.Fields{}, l.fields...), true
}

func Known(family string) bool {
	return Leaves(family) != nil
}

// Construct builds an entity of the given family from a record. The type
// discriminator selects the concrete type; it may only be omitted when family
// names a concrete type.
func Construct(family string, rec record.Record, options ...record.Option) (types.Entity, error) {
	return ConstructWithPolicy(family, rec, record.NewPolicy(options...))
}

func ConstructWithPolicy(family string, rec record.Record, policy record.Policy) (types.Entity, error) {
	if !Known(family) {
		return nil, vrserrors.NewUnknownDiscriminatorError("%q is not a known family", family)
	}

	r := record.NewReader(rec, policy)
	if r.Failed() {
		return nil, r.Err()
	}

	e, ok := construct(r, family)
	if err := r.Err(); err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("construction of %s failed without a reported error", family)
	}

	return e, nil
}

// construct resolves the discriminator of the object at r and decodes it
func construct(r *record.Reader, family string) (types.Entity, bool) {
	l, ok := resolve(r, family)
	if !ok {
		return nil, false
	}

	r.Expect(l.fields)
	if r.Halted() {
		return nil, false
	}

	return l.decode(r)
}

func resolve(r *record.Reader, family string) (leaf, bool) {
	v, present := r.Field("type")
	if !present {
		if r.Halted() {
			return leaf{}, false
		}
		if l, ok := leaves[family]; ok {
			return l, true
		}
		r.Report(vrserrors.ErrUnknownDiscriminator, "", "type is required to select one of %v", Leaves(family))
		return leaf{}, false
	}

	name, ok := v.AsString()
	if !ok {
		return leaf{}, false
	}

	l, ok := leaves[name]
	if !ok {
		r.Report(vrserrors.ErrUnknownDiscriminator, "", "%q is not a known type", name)
		return leaf{}, false
	}

	if !l.memberOf(family) {
		r.Report(vrserrors.ErrUnknownDiscriminator, "", "%q is not a %s", name, family)
		return leaf{}, false
	}

	return l, true
}
