package registry

import (
	vrserrors "github.com/diwise/vrs/pkg/vrs/errors"
	"github.com/diwise/vrs/pkg/vrs/record"
	"github.com/diwise/vrs/pkg/vrs/types"
)

func definitions() []leaf {
	variation := []string{FamilyVariation, FamilyMolecularVariation}
	utility := []string{FamilyVariation, FamilyUtilityVariation}
	copyNumber := []string{FamilyVariation, FamilySystemicVariation, FamilyCopyNumber}
	conditionMember := []string{FamilyDomainEntity, FamilyConditionMember}

	return []leaf{
		{types.TypeNumber, []string{FamilyRange}, record.Fields{optional("id"), required("value")}, decodeNumber},
		{types.TypeDefiniteRange, []string{FamilyRange}, record.Fields{optional("id"), required("min"), required("max")}, decodeDefiniteRange},
		{types.TypeIndefiniteRange, []string{FamilyRange}, record.Fields{optional("id"), required("value"), required("comparator")}, decodeIndefiniteRange},

		{types.TypeLiteralSequenceExpression, []string{FamilySequenceExpression}, record.Fields{optional("id"), required("sequence")}, decodeLiteralSequenceExpression},
		{types.TypeDerivedSequenceExpression, []string{FamilySequenceExpression}, record.Fields{optional("id"), required("location"), required("reverse_complement")}, decodeDerivedSequenceExpression},
		{types.TypeRepeatedSequenceExpression, []string{FamilySequenceExpression}, record.Fields{optional("id"), required("seq_expr"), required("count")}, decodeRepeatedSequenceExpression},
		{types.TypeComposedSequenceExpression, []string{FamilySequenceExpression}, record.Fields{optional("id"), required("components")}, decodeComposedSequenceExpression},

		{types.TypeChromosomeLocation, []string{FamilyLocation}, record.Fields{optional("id"), optional("species_id"), required("chr"), required("start"), required("end")}, decodeChromosomeLocation},
		{types.TypeSequenceLocation, []string{FamilyLocation}, record.Fields{optional("id"), required("sequence_id"), required("start"), required("end")}, decodeSequenceLocation},

		{types.TypeAllele, variation, record.Fields{optional("id"), required("location"), required("state")}, decodeAllele},
		{types.TypeHaplotype, variation, record.Fields{optional("id"), required("members")}, decodeHaplotype},
		{types.TypeText, utility, record.Fields{optional("id"), required("definition")}, decodeText},
		{types.TypeVariationSet, utility, record.Fields{optional("id"), optional("members")}, decodeVariationSet},
		{types.TypeAbsoluteCopyNumber, copyNumber, record.Fields{optional("id"), required("location"), required("copies")}, decodeAbsoluteCopyNumber},
		{types.TypeRelativeCopyNumber, copyNumber, record.Fields{optional("id"), required("location"), required("relative_copy_class")}, decodeRelativeCopyNumber},
		{types.TypeGenotypeMember, nil, record.Fields{optional("id"), required("count"), required("variation")}, decodeGenotypeMember},
		{types.TypeGenotype, []string{FamilyVariation, FamilySystemicVariation}, record.Fields{optional("id"), required("members"), required("count")}, decodeGenotype},

		{types.TypeDisease, conditionMember, record.Fields{required("id")}, decodeDomainEntity(types.NewDisease)},
		{types.TypePhenotype, conditionMember, record.Fields{required("id")}, decodeDomainEntity(types.NewPhenotype)},
		{types.TypeGene, []string{FamilyDomainEntity}, record.Fields{required("id")}, decodeDomainEntity(types.NewGene)},
		{types.TypeTherapeutic, []string{FamilyDomainEntity}, record.Fields{required("id")}, decodeDomainEntity(types.NewTherapeutic)},

		{types.TypeCondition, nil, record.Fields{optional("id"), optional("members")}, decodeCondition},
		{types.TypeCombinationTherapeuticCollection, []string{FamilyTherapeuticCollection}, record.Fields{optional("id"), optional("members")}, decodeTherapeuticCollection(types.NewCombinationTherapeuticCollection)},
		{types.TypeSubstituteTherapeuticCollection, []string{FamilyTherapeuticCollection}, record.Fields{optional("id"), optional("members")}, decodeTherapeuticCollection(types.NewSubstituteTherapeuticCollection)},

		{types.TypeExtension, nil, record.Fields{required("name"), optional("value")}, decodeExtension},
		{types.TypeRecordMetadata, nil, record.Fields{optional("id"), optional("label"), optional("extensions"), optional("is_version_of"), optional("version")}, decodeRecordMetadata},
		{types.TypeCoding, nil, record.Fields{optional("id"), optional("label"), optional("extensions"), optional("record_metadata")}, decodeCoding},
	}
}

// result hands a constructed entity back to the registry, recording the
// constructor error at the position of r.
func result[T types.Entity](r *record.Reader, e T, err error) (types.Entity, bool) {
	if err != nil {
		r.Fail(err)
		return nil, false
	}
	return e, true
}

func idOption(r *record.Reader) []types.Option {
	options := []types.Option{}
	if id, ok := r.String("id"); ok {
		options = append(options, types.ID(id))
	}
	return options
}

func extensibleOptions(r *record.Reader) []types.Option {
	options := idOption(r)

	if label, ok := r.String("label"); ok {
		options = append(options, types.Label(label))
	}

	if values, ok := r.List("extensions"); ok {
		extensions := make([]*types.Extension, 0, len(values))
		for _, v := range values {
			if ext, ok := embeddedValue[*types.Extension](v, types.TypeExtension); ok {
				extensions = append(extensions, ext)
			}
		}
		options = append(options, types.WithExtensions(extensions...))
	}

	return options
}

func embeddedValue[T types.Entity](v record.Value, family string) (T, bool) {
	var zero T

	obj, ok := v.AsObject()
	if !ok {
		return zero, false
	}

	e, ok := construct(obj, family)
	if !ok {
		return zero, false
	}

	t, ok := e.(T)
	if !ok {
		v.Report(vrserrors.ErrUnknownDiscriminator, "%s is not a %s", e.Type(), family)
		return zero, false
	}

	return t, true
}

func embedded[T types.Entity](r *record.Reader, field, family string) (T, bool) {
	v, ok := r.Field(field)
	if !ok {
		var zero T
		return zero, false
	}
	return embeddedValue[T](v, family)
}

func embeddedList[T types.Entity](r *record.Reader, field, family string) ([]T, bool) {
	values, ok := r.List(field)
	if !ok {
		return nil, false
	}

	list := make([]T, 0, len(values))
	for _, v := range values {
		if t, ok := embeddedValue[T](v, family); ok {
			list = append(list, t)
		}
	}

	return list, true
}

// memberValue decodes a slot that holds either an embedded object or a CURIE
func memberValue[T types.Entity](v record.Value, family string) (types.Member[T], bool) {
	if curie, ok := v.Raw().(string); ok {
		return types.Ref[T](curie), true
	}

	if !v.IsObject() {
		v.Report(vrserrors.ErrShapeMismatch, "expected object or CURIE, got %s", record.Describe(v.Raw()))
		return types.Member[T]{}, false
	}

	t, ok := embeddedValue[T](v, family)
	if !ok {
		return types.Member[T]{}, false
	}

	return types.Embed(t), true
}

func member[T types.Entity](r *record.Reader, field, family string) (types.Member[T], bool) {
	v, ok := r.Field(field)
	if !ok {
		return types.Member[T]{}, false
	}
	return memberValue[T](v, family)
}

func members[T types.Entity](r *record.Reader, field, family string) ([]types.Member[T], bool) {
	values, ok := r.List(field)
	if !ok {
		return nil, false
	}

	list := make([]types.Member[T], 0, len(values))
	for _, v := range values {
		if m, ok := memberValue[T](v, family); ok {
			list = append(list, m)
		}
	}

	return list, true
}

func rangeField(r *record.Reader, field string) (types.Range, bool) {
	return embedded[types.Range](r, field, FamilyRange)
}

func decodeNumber(r *record.Reader) (types.Entity, bool) {
	options := idOption(r)
	value, _ := r.Int("value")
	if r.Failed() {
		return nil, false
	}

	n, err := types.NewNumber(value, options...)
	return result(r, n, err)
}

func decodeDefiniteRange(r *record.Reader) (types.Entity, bool) {
	options := idOption(r)
	min, _ := r.Int("min")
	max, _ := r.Int("max")
	if r.Failed() {
		return nil, false
	}

	dr, err := types.NewDefiniteRange(min, max, options...)
	return result(r, dr, err)
}

func decodeIndefiniteRange(r *record.Reader) (types.Entity, bool) {
	options := idOption(r)
	value, _ := r.Int("value")
	comparator, _ := r.String("comparator")
	if r.Failed() {
		return nil, false
	}

	ir, err := types.NewIndefiniteRange(value, types.Comparator(comparator), options...)
	return result(r, ir, err)
}

func decodeLiteralSequenceExpression(r *record.Reader) (types.Entity, bool) {
	options := idOption(r)
	sequence, _ := r.String("sequence")
	if r.Failed() {
		return nil, false
	}

	lse, err := types.NewLiteralSequenceExpression(sequence, options...)
	return result(r, lse, err)
}

func decodeDerivedSequenceExpression(r *record.Reader) (types.Entity, bool) {
	options := idOption(r)
	location, _ := member[*types.SequenceLocation](r, "location", types.TypeSequenceLocation)
	reverseComplement, _ := r.Bool("reverse_complement")
	if r.Failed() {
		return nil, false
	}

	dse, err := types.NewDerivedSequenceExpression(location, reverseComplement, options...)
	return result(r, dse, err)
}

func decodeRepeatedSequenceExpression(r *record.Reader) (types.Entity, bool) {
	options := idOption(r)
	seqExpr, _ := embedded[*types.LiteralSequenceExpression](r, "seq_expr", types.TypeLiteralSequenceExpression)
	count, _ := rangeField(r, "count")
	if r.Failed() {
		return nil, false
	}

	rse, err := types.NewRepeatedSequenceExpression(seqExpr, count, options...)
	return result(r, rse, err)
}

func decodeComposedSequenceExpression(r *record.Reader) (types.Entity, bool) {
	options := idOption(r)
	components, _ := embeddedList[types.SequenceExpression](r, "components", FamilySequenceExpression)
	if r.Failed() {
		return nil, false
	}

	cse, err := types.NewComposedSequenceExpression(components, options...)
	return result(r, cse, err)
}

func decodeChromosomeLocation(r *record.Reader) (types.Entity, bool) {
	options := idOption(r)

	speciesID := types.DefaultSpeciesID
	if s, ok := r.String("species_id"); ok {
		speciesID = s
	}

	chr, _ := r.String("chr")
	start, _ := r.String("start")
	end, _ := r.String("end")
	if r.Failed() {
		return nil, false
	}

	cl, err := types.NewChromosomeLocation(speciesID, chr, start, end, options...)
	return result(r, cl, err)
}

func decodeSequenceLocation(r *record.Reader) (types.Entity, bool) {
	options := idOption(r)
	sequenceID, _ := r.String("sequence_id")
	start, _ := rangeField(r, "start")
	end, _ := rangeField(r, "end")
	if r.Failed() {
		return nil, false
	}

	sl, err := types.NewSequenceLocation(sequenceID, start, end, options...)
	return result(r, sl, err)
}

func decodeAllele(r *record.Reader) (types.Entity, bool) {
	options := idOption(r)
	location, _ := member[types.Location](r, "location", FamilyLocation)
	state, _ := embedded[types.SequenceExpression](r, "state", FamilySequenceExpression)
	if r.Failed() {
		return nil, false
	}

	a, err := types.NewAllele(location, state, options...)
	return result(r, a, err)
}

func decodeHaplotype(r *record.Reader) (types.Entity, bool) {
	options := idOption(r)
	alleles, _ := members[*types.Allele](r, "members", types.TypeAllele)
	if r.Failed() {
		return nil, false
	}

	h, err := types.NewHaplotype(alleles, options...)
	return result(r, h, err)
}

func decodeText(r *record.Reader) (types.Entity, bool) {
	options := idOption(r)
	definition, _ := r.String("definition")
	if r.Failed() {
		return nil, false
	}

	t, err := types.NewText(definition, options...)
	return result(r, t, err)
}

func decodeVariationSet(r *record.Reader) (types.Entity, bool) {
	options := idOption(r)
	variations, _ := members[types.Variation](r, "members", FamilyVariation)
	if r.Failed() {
		return nil, false
	}

	vs, err := types.NewVariationSet(variations, options...)
	return result(r, vs, err)
}

func decodeAbsoluteCopyNumber(r *record.Reader) (types.Entity, bool) {
	options := idOption(r)
	location, _ := member[types.Location](r, "location", FamilyLocation)
	copies, _ := rangeField(r, "copies")
	if r.Failed() {
		return nil, false
	}

	acn, err := types.NewAbsoluteCopyNumber(location, copies, options...)
	return result(r, acn, err)
}

func decodeRelativeCopyNumber(r *record.Reader) (types.Entity, bool) {
	options := idOption(r)
	location, _ := member[types.Location](r, "location", FamilyLocation)
	class, _ := r.String("relative_copy_class")
	if r.Failed() {
		return nil, false
	}

	rcn, err := types.NewRelativeCopyNumber(location, types.RelativeCopyClass(class), options...)
	return result(r, rcn, err)
}

func decodeGenotypeMember(r *record.Reader) (types.Entity, bool) {
	options := idOption(r)
	count, _ := rangeField(r, "count")
	variation, _ := member[types.MolecularVariation](r, "variation", FamilyMolecularVariation)
	if r.Failed() {
		return nil, false
	}

	gm, err := types.NewGenotypeMember(count, variation, options...)
	return result(r, gm, err)
}

func decodeGenotype(r *record.Reader) (types.Entity, bool) {
	options := idOption(r)
	genotypeMembers, _ := embeddedList[*types.GenotypeMember](r, "members", types.TypeGenotypeMember)
	count, _ := rangeField(r, "count")
	if r.Failed() {
		return nil, false
	}

	g, err := types.NewGenotype(genotypeMembers, count, options...)
	return result(r, g, err)
}

func decodeDomainEntity[T types.DomainEntity](newEntity func(string, ...types.Option) (T, error)) decodeFunc {
	return func(r *record.Reader) (types.Entity, bool) {
		id, _ := r.String("id")
		if r.Failed() {
			return nil, false
		}

		e, err := newEntity(id)
		return result(r, e, err)
	}
}

func decodeCondition(r *record.Reader) (types.Entity, bool) {
	options := idOption(r)
	conditionMembers, _ := members[types.ConditionMember](r, "members", FamilyConditionMember)
	if r.Failed() {
		return nil, false
	}

	c, err := types.NewCondition(conditionMembers, options...)
	return result(r, c, err)
}

func decodeTherapeuticCollection[T types.TherapeuticCollection](newCollection func([]types.Member[*types.Therapeutic], ...types.Option) (T, error)) decodeFunc {
	return func(r *record.Reader) (types.Entity, bool) {
		options := idOption(r)
		therapeutics, _ := members[*types.Therapeutic](r, "members", types.TypeTherapeutic)
		if r.Failed() {
			return nil, false
		}

		tc, err := newCollection(therapeutics, options...)
		return result(r, tc, err)
	}
}

func decodeExtension(r *record.Reader) (types.Entity, bool) {
	name, _ := r.String("name")

	options := []types.Option{}
	if v, ok := r.Field("value"); ok {
		options = append(options, types.Value(v.Raw()))
	}

	if r.Failed() {
		return nil, false
	}

	ext, err := types.NewExtension(name, options...)
	return result(r, ext, err)
}

func decodeRecordMetadata(r *record.Reader) (types.Entity, bool) {
	options := extensibleOptions(r)

	if isVersionOf, ok := r.String("is_version_of"); ok {
		options = append(options, types.IsVersionOf(isVersionOf))
	}
	if version, ok := r.String("version"); ok {
		options = append(options, types.Version(version))
	}

	if r.Failed() {
		return nil, false
	}

	rm, err := types.NewRecordMetadata(options...)
	return result(r, rm, err)
}

func decodeCoding(r *record.Reader) (types.Entity, bool) {
	options := extensibleOptions(r)

	if r.Has("record_metadata") {
		if rm, ok := embedded[*types.RecordMetadata](r, "record_metadata", types.TypeRecordMetadata); ok {
			options = append(options, types.WithRecordMetadata(rm))
		}
	}

	if r.Failed() {
		return nil, false
	}

	cd, err := types.NewCoding(options...)
	return result(r, cd, err)
}
