package registry

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/matryer/is"

	vrserrors "github.com/diwise/vrs/pkg/vrs/errors"
	"github.com/diwise/vrs/pkg/vrs/record"
	"github.com/diwise/vrs/pkg/vrs/types"
)

func TestEveryTypeRoundTrips(t *testing.T) {
	is := is.New(t)
	all := samples()

	for _, name := range Types() {
		sample, ok := all[name]
		is.True(ok) // every registered type needs a sample

		e, err := Construct(name, sample)
		is.NoErr(err)
		is.Equal(e.Type(), name)
		is.Equal(jsonOf(is, e.Record()), jsonOf(is, sample))
	}
}

func TestOmittedTypeIsFilledInForConcreteTypes(t *testing.T) {
	is := is.New(t)

	for name, sample := range samples() {
		expected := jsonOf(is, sample)
		delete(sample, "type")

		e, err := Construct(name, sample)
		is.NoErr(err)
		is.Equal(jsonOf(is, e.Record()), expected)
	}
}

func TestUnexpectedFieldIsRejectedForEveryType(t *testing.T) {
	is := is.New(t)

	for name, sample := range samples() {
		sample["unexpected_field"] = true

		_, err := Construct(name, sample)
		is.True(errors.Is(err, vrserrors.ErrUnexpectedField))
		is.Equal(pathOf(err), "unexpected_field")
	}
}

func TestMissingRequiredFieldIsRejectedForEveryType(t *testing.T) {
	is := is.New(t)

	for _, name := range Types() {
		fields, ok := Fields(name)
		is.True(ok)

		for _, field := range fields {
			if !field.Required {
				continue
			}

			sample := samples()[name]
			delete(sample, field.Name)

			_, err := Construct(name, sample)
			is.True(errors.Is(err, vrserrors.ErrMissingRequiredField))
			is.Equal(pathOf(err), field.Name)
		}
	}
}

func TestOmittedMembersDefaultToEmpty(t *testing.T) {
	is := is.New(t)

	for _, name := range []string{
		types.TypeVariationSet,
		types.TypeCondition,
		types.TypeCombinationTherapeuticCollection,
		types.TypeSubstituteTherapeuticCollection,
	} {
		e, err := Construct(name, record.Record{"type": name})
		is.NoErr(err)
		is.Equal(e.Record(), record.Record{"type": name, "members": []any{}})
	}

	_, err := Construct(types.TypeHaplotype, record.Record{"type": types.TypeHaplotype})
	is.True(errors.Is(err, vrserrors.ErrMissingRequiredField))
}

func TestAbstractFamilyRequiresADiscriminator(t *testing.T) {
	is := is.New(t)

	_, err := Construct(FamilyVariation, record.Record{"definition": "APOE e4"})
	is.True(errors.Is(err, vrserrors.ErrUnknownDiscriminator))

	e, err := Construct(FamilyVariation, record.Record{"type": "Text", "definition": "APOE e4"})
	is.NoErr(err)
	_, ok := e.(types.UtilityVariation)
	is.True(ok)
}

func TestDiscriminatorMustBelongToTheFamily(t *testing.T) {
	is := is.New(t)

	_, err := Construct(FamilyLocation, record.Record{"type": "Text", "definition": "x"})
	is.True(errors.Is(err, vrserrors.ErrUnknownDiscriminator))

	_, err = Construct(FamilyVariation, record.Record{"type": "Mutation"})
	is.True(errors.Is(err, vrserrors.ErrUnknownDiscriminator))

	_, err = Construct("Thing", record.Record{})
	is.True(errors.Is(err, vrserrors.ErrUnknownDiscriminator))
}

func TestNonStringDiscriminatorIsAShapeMismatch(t *testing.T) {
	is := is.New(t)

	_, err := Construct(FamilyRange, record.Record{"type": 7, "value": 1})
	is.True(errors.Is(err, vrserrors.ErrShapeMismatch))
	is.Equal(pathOf(err), "type")
}

func TestNestedErrorsCarryTheirPath(t *testing.T) {
	is := is.New(t)

	allele := samples()[types.TypeAllele]
	allele["location"].(record.Record)["start"] = record.Record{"type": "Number", "value": "ten"}

	_, err := Construct(types.TypeAllele, allele)
	is.True(errors.Is(err, vrserrors.ErrShapeMismatch))
	is.Equal(pathOf(err), "location.start.value")

	haplotype := samples()[types.TypeHaplotype]
	first := haplotype["members"].([]any)[0].(record.Record)
	first["location"].(record.Record)["extra"] = 1

	_, err = Construct(types.TypeHaplotype, haplotype)
	is.True(errors.Is(err, vrserrors.ErrUnexpectedField))
	is.Equal(pathOf(err), "members[0].location.extra")
}

func TestMemberSlotMustBeObjectOrCURIE(t *testing.T) {
	is := is.New(t)

	allele := samples()[types.TypeAllele]
	allele["location"] = 42

	_, err := Construct(types.TypeAllele, allele)
	is.True(errors.Is(err, vrserrors.ErrShapeMismatch))
	is.Equal(pathOf(err), "location")

	allele["location"] = "not a curie"
	_, err = Construct(types.TypeAllele, allele)
	is.True(errors.Is(err, vrserrors.ErrShapeMismatch))
	is.Equal(pathOf(err), "location")
}

func TestReferencedMemberIsKeptAsReference(t *testing.T) {
	is := is.New(t)

	vs, err := Construct(types.TypeVariationSet, samples()[types.TypeVariationSet])
	is.NoErr(err)

	members := vs.(*types.VariationSet).Members()
	is.Equal(len(members), 2)
	is.True(members[0].IsEmbedded())
	ref, ok := members[1].Reference()
	is.True(ok)
	is.Equal(ref, "ga4gh:VA.d6ru7RcuVO0-v3TtPFX5fZz-GLQDhMVb")
}

func TestFailFastReportsTheFirstErrorOnly(t *testing.T) {
	is := is.New(t)

	_, err := Construct(types.TypeAllele, twoBadFields())
	is.Equal(len(vrserrors.Flatten(err)), 1)
	is.Equal(pathOf(err), "location.sequence_id")
}

func TestCollectAllReportsSiblingErrors(t *testing.T) {
	is := is.New(t)

	_, err := Construct(types.TypeAllele, twoBadFields(), record.CollectAll(true))
	errs := vrserrors.Flatten(err)
	is.Equal(len(errs), 2)
	is.Equal(pathOf(errs[0]), "location.sequence_id")
	is.Equal(pathOf(errs[1]), "state.sequence")
}

func TestDepthLimitIsEnforced(t *testing.T) {
	is := is.New(t)

	_, err := Construct(types.TypeAllele, samples()[types.TypeAllele], record.MaxDepth(3))
	is.NoErr(err)

	_, err = Construct(types.TypeAllele, samples()[types.TypeAllele], record.MaxDepth(2))
	is.True(errors.Is(err, vrserrors.ErrDepthLimitExceeded))
	is.Equal(pathOf(err), "location.start")

	nested := record.Record{"type": "VariationSet", "members": []any{}}
	for i := 0; i < 40; i++ {
		nested = record.Record{"type": "VariationSet", "members": []any{nested}}
	}

	_, err = Construct(FamilyVariation, nested)
	is.True(errors.Is(err, vrserrors.ErrDepthLimitExceeded))
}

func TestDefiniteRangeBounds(t *testing.T) {
	is := is.New(t)

	_, err := Construct(FamilyRange, record.Record{"type": "DefiniteRange", "min": 5, "max": 3})
	is.True(errors.Is(err, vrserrors.ErrInvariantViolation))

	_, err = Construct(FamilyRange, record.Record{"type": "DefiniteRange", "min": 3, "max": 5})
	is.NoErr(err)
}

func TestIndefiniteRangeComparator(t *testing.T) {
	is := is.New(t)

	_, err := Construct(FamilyRange, record.Record{"type": "IndefiniteRange", "value": 10, "comparator": "<>"})
	is.True(errors.Is(err, vrserrors.ErrInvariantViolation))
	is.Equal(pathOf(err), "comparator")

	for _, comparator := range []string{"<=", ">="} {
		_, err = Construct(FamilyRange, record.Record{"type": "IndefiniteRange", "value": 10, "comparator": comparator})
		is.NoErr(err)
	}
}

func TestGenotypeMemberCountsMustNotExceedTotal(t *testing.T) {
	is := is.New(t)

	genotype := record.Record{
		"type": "Genotype",
		"members": []any{
			record.Record{"count": number(3), "variation": "ga4gh:VA.1"},
		},
		"count": number(2),
	}

	_, err := Construct(FamilyVariation, genotype)
	is.True(errors.Is(err, vrserrors.ErrInvariantViolation))
	is.Equal(pathOf(err), "count")

	genotype["count"] = number(3)
	_, err = Construct(FamilyVariation, genotype)
	is.NoErr(err)
}

func TestComposedSequenceExpressionLiterals(t *testing.T) {
	is := is.New(t)

	composed := record.Record{
		"type":       "ComposedSequenceExpression",
		"components": []any{literal("A"), literal("T")},
	}

	_, err := Construct(FamilySequenceExpression, composed)
	is.True(errors.Is(err, vrserrors.ErrInvariantViolation))

	composed["components"] = []any{literal("A"), samples()[types.TypeRepeatedSequenceExpression], literal("T")}
	_, err = Construct(FamilySequenceExpression, composed)
	is.NoErr(err)
}

func TestSequenceLocationOrder(t *testing.T) {
	is := is.New(t)

	location := record.Record{"type": "SequenceLocation", "sequence_id": "ga4gh:SQ.1", "start": number(10), "end": number(5)}
	_, err := Construct(FamilyLocation, location)
	is.True(errors.Is(err, vrserrors.ErrInvariantViolation))

	location["start"], location["end"] = number(5), number(10)
	_, err = Construct(FamilyLocation, location)
	is.NoErr(err)
}

func TestChromosomeLocationDefaultsToHuman(t *testing.T) {
	is := is.New(t)

	e, err := Construct(FamilyLocation, record.Record{"type": "ChromosomeLocation", "chr": "X", "start": "p22.2", "end": "p22.1"})
	is.NoErr(err)
	is.Equal(e.(*types.ChromosomeLocation).SpeciesID(), types.DefaultSpeciesID)
}

func TestExtensionValuesAreOpaque(t *testing.T) {
	is := is.New(t)

	coding := record.Record{
		"type": "Coding",
		"id":   "ncit:C3058",
		"extensions": []any{
			record.Record{"name": "anything", "value": record.Record{"type": "NotAType", "unexpected": []any{nil, 1.5}}},
			record.Record{"name": "anything", "value": "again"},
		},
	}

	e, err := Construct(types.TypeCoding, coding)
	is.NoErr(err)
	is.Equal(len(e.(*types.Coding).Extensions().Find("anything")), 2)
}

func TestLeavesOfFamilies(t *testing.T) {
	is := is.New(t)

	is.Equal(Leaves(FamilyCopyNumber), []string{"AbsoluteCopyNumber", "RelativeCopyNumber"})
	is.Equal(Leaves(FamilyConditionMember), []string{"Disease", "Phenotype"})
	is.Equal(Leaves(types.TypeGenotypeMember), []string{"GenotypeMember"})
	is.Equal(Leaves("Nothing"), nil)
	is.Equal(len(Families()), 11)
}

func TestConcurrentConstruction(t *testing.T) {
	is := is.New(t)

	var wg sync.WaitGroup
	errs := make(chan error, 50)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := Construct(types.TypeGenotype, samples()[types.TypeGenotype])
			errs <- err
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		is.NoErr(err)
	}
}

func twoBadFields() record.Record {
	return record.Record{
		"type": "Allele",
		"location": record.Record{
			"type":        "SequenceLocation",
			"sequence_id": 5,
			"start":       number(1),
			"end":         number(2),
		},
		"state": record.Record{"type": "LiteralSequenceExpression", "sequence": 7},
	}
}

func jsonOf(is *is.I, v any) string {
	b, err := json.Marshal(v)
	is.NoErr(err)
	return string(b)
}

func pathOf(err error) string {
	var ve *vrserrors.ValidationError
	if errors.As(err, &ve) {
		return ve.Path()
	}
	return ""
}

func number(value int) record.Record {
	return record.Record{"type": "Number", "value": value}
}

func literal(sequence string) record.Record {
	return record.Record{"type": "LiteralSequenceExpression", "sequence": sequence}
}

func sequenceLocation() record.Record {
	return record.Record{
		"type":        "SequenceLocation",
		"id":          "ga4gh:SL.4t6JnYWqHwYw9WzBT_lmWBb3tLQNalkT",
		"sequence_id": "ga4gh:SQ.IIB53T8CNeJJdUqzn9V_JnRtQadwWCbl",
		"start":       number(44908821),
		"end":         number(44908822),
	}
}

func chromosomeLocation() record.Record {
	return record.Record{
		"type":       "ChromosomeLocation",
		"species_id": "taxonomy:9606",
		"chr":        "19",
		"start":      "q13.32",
		"end":        "q13.33",
	}
}

func allele() record.Record {
	return record.Record{
		"type":     "Allele",
		"location": sequenceLocation(),
		"state":    literal("T"),
	}
}

func repeated() record.Record {
	return record.Record{
		"type":     "RepeatedSequenceExpression",
		"seq_expr": literal("CAG"),
		"count":    record.Record{"type": "IndefiniteRange", "value": 3, "comparator": ">="},
	}
}

func extension() record.Record {
	return record.Record{
		"type":  "Extension",
		"name":  "source",
		"value": record.Record{"nested": []any{1, "x"}},
	}
}

func recordMetadata() record.Record {
	return record.Record{
		"type":          "RecordMetadata",
		"id":            "rm-1",
		"label":         "ClinVar record",
		"extensions":    []any{extension()},
		"is_version_of": "clinvar:12345",
		"version":       "2",
	}
}

func therapeutic() record.Record {
	return record.Record{"type": "Therapeutic", "id": "rxcui:1430438"}
}

func genotypeMember() record.Record {
	return record.Record{
		"type":      "GenotypeMember",
		"count":     number(1),
		"variation": allele(),
	}
}

// samples returns a fresh, fully populated record for every concrete type
func samples() map[string]record.Record {
	return map[string]record.Record{
		"Number":          number(3),
		"DefiniteRange":   {"type": "DefiniteRange", "min": 1, "max": 5},
		"IndefiniteRange": {"type": "IndefiniteRange", "id": "ga4gh:IR.1", "value": 10, "comparator": ">="},

		"LiteralSequenceExpression":  literal("ACGT"),
		"DerivedSequenceExpression":  {"type": "DerivedSequenceExpression", "location": sequenceLocation(), "reverse_complement": false},
		"RepeatedSequenceExpression": repeated(),
		"ComposedSequenceExpression": {"type": "ComposedSequenceExpression", "components": []any{literal("A"), repeated(), literal("T")}},

		"ChromosomeLocation": chromosomeLocation(),
		"SequenceLocation":   sequenceLocation(),

		"Allele":             allele(),
		"Haplotype":          {"type": "Haplotype", "members": []any{allele(), "ga4gh:VA.ref"}},
		"Text":               {"type": "Text", "definition": "APOE e4"},
		"VariationSet":       {"type": "VariationSet", "members": []any{allele(), "ga4gh:VA.d6ru7RcuVO0-v3TtPFX5fZz-GLQDhMVb"}},
		"AbsoluteCopyNumber": {"type": "AbsoluteCopyNumber", "location": chromosomeLocation(), "copies": record.Record{"type": "DefiniteRange", "min": 3, "max": 5}},
		"RelativeCopyNumber": {"type": "RelativeCopyNumber", "location": "ga4gh:SL.01", "relative_copy_class": "EFO:0030070"},
		"GenotypeMember":     genotypeMember(),
		"Genotype":           {"type": "Genotype", "members": []any{genotypeMember()}, "count": number(2)},

		"Disease":     {"type": "Disease", "id": "mondo:0007254"},
		"Phenotype":   {"type": "Phenotype", "id": "hp:0001250"},
		"Gene":        {"type": "Gene", "id": "ncbigene:348"},
		"Therapeutic": therapeutic(),

		"Condition":                        {"type": "Condition", "members": []any{record.Record{"type": "Disease", "id": "mondo:0007254"}, "hp:0001250"}},
		"CombinationTherapeuticCollection": {"type": "CombinationTherapeuticCollection", "members": []any{therapeutic(), "rxcui:318341"}},
		"SubstituteTherapeuticCollection":  {"type": "SubstituteTherapeuticCollection", "members": []any{therapeutic()}},

		"Extension":      extension(),
		"RecordMetadata": recordMetadata(),
		"Coding":         {"type": "Coding", "id": "ncit:C3058", "label": "Glioblastoma", "extensions": []any{}, "record_metadata": recordMetadata()},
	}
}
