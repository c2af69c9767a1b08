package types

import (
	"github.com/diwise/vrs/pkg/vrs/record"
)

// Canonical type names, used as the value of the type discriminator
const (
	TypeNumber          string = "Number"
	TypeDefiniteRange   string = "DefiniteRange"
	TypeIndefiniteRange string = "IndefiniteRange"

	TypeLiteralSequenceExpression  string = "LiteralSequenceExpression"
	TypeDerivedSequenceExpression  string = "DerivedSequenceExpression"
	TypeRepeatedSequenceExpression string = "RepeatedSequenceExpression"
	TypeComposedSequenceExpression string = "ComposedSequenceExpression"

	TypeChromosomeLocation string = "ChromosomeLocation"
	TypeSequenceLocation   string = "SequenceLocation"

	TypeAllele             string = "Allele"
	TypeHaplotype          string = "Haplotype"
	TypeText               string = "Text"
	TypeVariationSet       string = "VariationSet"
	TypeAbsoluteCopyNumber string = "AbsoluteCopyNumber"
	TypeRelativeCopyNumber string = "RelativeCopyNumber"
	TypeGenotypeMember     string = "GenotypeMember"
	TypeGenotype           string = "Genotype"

	TypeDisease     string = "Disease"
	TypePhenotype   string = "Phenotype"
	TypeGene        string = "Gene"
	TypeTherapeutic string = "Therapeutic"

	TypeCondition                        string = "Condition"
	TypeCombinationTherapeuticCollection string = "CombinationTherapeuticCollection"
	TypeSubstituteTherapeuticCollection  string = "SubstituteTherapeuticCollection"

	TypeExtension      string = "Extension"
	TypeRecordMetadata string = "RecordMetadata"
	TypeCoding         string = "Coding"
)

// Entity is implemented by every constructed model object. Entities are
// immutable; there is no way to change an entity after it has been constructed.
type Entity interface {
	ID() string
	Type() string
	Record() record.Record
	MarshalJSON() ([]byte, error)
}

// Range is a count or coordinate: a Number, a DefiniteRange or an IndefiniteRange
type Range interface {
	Entity
	// Lower returns the inclusive lower bound, if the range has one
	Lower() (int, bool)
	// Upper returns the inclusive upper bound, if the range has one
	Upper() (int, bool)

	isRange()
}

type SequenceExpression interface {
	Entity
	isSequenceExpression()
}

type Location interface {
	Entity
	isLocation()
}

type Variation interface {
	Entity
	isVariation()
}

// MolecularVariation is a variation on one contiguous molecule
type MolecularVariation interface {
	Variation
	isMolecularVariation()
}

// UtilityVariation is a variation that does not fit a biological class
type UtilityVariation interface {
	Variation
	isUtilityVariation()
}

// SystemicVariation is a variation across multiple molecules in a system
type SystemicVariation interface {
	Variation
	isSystemicVariation()
}

type CopyNumber interface {
	SystemicVariation
	Location() Member[Location]
	isCopyNumber()
}

// DomainEntity references a concept defined by an external authority
type DomainEntity interface {
	Entity
	isDomainEntity()
}

// ConditionMember is a Disease or a Phenotype
type ConditionMember interface {
	DomainEntity
	isConditionMember()
}

type TherapeuticCollection interface {
	Entity
	Members() []Member[*Therapeutic]
	isTherapeuticCollection()
}
