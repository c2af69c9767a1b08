package types

import (
	"github.com/diwise/vrs/pkg/vrs/record"
)

// DefaultSpeciesID is the NCBI taxonomy CURIE for human
const DefaultSpeciesID string = "taxonomy:9606"

// ChromosomeLocation is a location on a chromosome given as a cytoband interval
type ChromosomeLocation struct {
	valueEntity
	speciesID string
	chr       string
	start     string
	end       string
}

func NewChromosomeLocation(speciesID, chr, start, end string, options ...Option) (*ChromosomeLocation, error) {
	c := &checks{}
	cl := &ChromosomeLocation{
		valueEntity: newValueEntity(c, options),
		speciesID:   speciesID,
		chr:         chr,
		start:       start,
		end:         end,
	}

	if !IsCURIE(speciesID) {
		c.shape("species_id", "%q is not a CURIE", speciesID)
	}
	if chr == "" {
		c.shape("chr", "chromosome name must not be empty")
	}
	if !IsCytoband(start) {
		c.shape("start", "%q is not a cytoband", start)
	}
	if !IsCytoband(end) {
		c.shape("end", "%q is not a cytoband", end)
	}

	if !c.failed() && compareCytobands(start, end) > 0 {
		c.invariant([]string{"start"}, "start %q must lie nearer the p-arm telomere than end %q", start, end)
	}

	if c.failed() {
		return nil, c.err()
	}
	return cl, nil
}

func (cl *ChromosomeLocation) Type() string      { return TypeChromosomeLocation }
func (cl *ChromosomeLocation) SpeciesID() string { return cl.speciesID }
func (cl *ChromosomeLocation) Chr() string       { return cl.chr }
func (cl *ChromosomeLocation) Start() string     { return cl.start }
func (cl *ChromosomeLocation) End() string       { return cl.end }
func (cl *ChromosomeLocation) isLocation()       {}

func (cl *ChromosomeLocation) Record() record.Record {
	r := cl.record(TypeChromosomeLocation)
	r["species_id"] = cl.speciesID
	r["chr"] = cl.chr
	r["start"] = cl.start
	r["end"] = cl.end
	return r
}

func (cl *ChromosomeLocation) MarshalJSON() ([]byte, error) { return marshal(cl) }

// SequenceLocation is an interval on a referenced sequence, in 0-based
// inter-residue coordinates.
type SequenceLocation struct {
	valueEntity
	sequenceID string
	start      Range
	end        Range
}

func NewSequenceLocation(sequenceID string, start, end Range, options ...Option) (*SequenceLocation, error) {
	c := &checks{}
	sl := &SequenceLocation{
		valueEntity: newValueEntity(c, options),
		sequenceID:  sequenceID,
		start:       start,
		end:         end,
	}

	if !IsCURIE(sequenceID) {
		c.shape("sequence_id", "%q is not a CURIE", sequenceID)
	}
	if isNil(start) {
		c.missing("start")
	}
	if isNil(end) {
		c.missing("end")
	}

	if !c.failed() {
		if !nonNegative(start) {
			c.invariant([]string{"start"}, "start %s must not be negative", describeRange(start))
		}
		if !nonNegative(end) {
			c.invariant([]string{"end"}, "end %s must not be negative", describeRange(end))
		}
		if !c.failed() && startPoint(start) >= endPoint(end) {
			c.invariant(nil, "start %s must be less than end %s", describeRange(start), describeRange(end))
		}
	}

	if c.failed() {
		return nil, c.err()
	}
	return sl, nil
}

func (sl *SequenceLocation) Type() string       { return TypeSequenceLocation }
func (sl *SequenceLocation) SequenceID() string { return sl.sequenceID }
func (sl *SequenceLocation) Start() Range       { return sl.start }
func (sl *SequenceLocation) End() Range         { return sl.end }
func (sl *SequenceLocation) isLocation()        {}

// Interval returns the half-open interval used when comparing locations on the
// same sequence.
func (sl *SequenceLocation) Interval() (int, int) {
	return startPoint(sl.start), endPoint(sl.end)
}

func (sl *SequenceLocation) Record() record.Record {
	r := sl.record(TypeSequenceLocation)
	r["sequence_id"] = sl.sequenceID
	r["start"] = sl.start.Record()
	r["end"] = sl.end.Record()
	return r
}

func (sl *SequenceLocation) MarshalJSON() ([]byte, error) { return marshal(sl) }
