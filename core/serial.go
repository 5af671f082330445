package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the persisted domain types. Field order is part of the
// stored format; reordering fields requires a storage migration.
var (
	// IDMUS serializes ID values.
	IDMUS = idMUS{}
	// ConceptMUS serializes Concept values.
	ConceptMUS = conceptMUS{}
	// ClassificationResultMUS serializes ClassificationResult values.
	ClassificationResultMUS = classificationResultMUS{}
	// ClassificationRunMUS serializes ClassificationRun values.
	ClassificationRunMUS = classificationRunMUS{}
)

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (id ID, n int, err error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) (size int) {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

type conceptMUS struct{}

func (conceptMUS) Marshal(c Concept, bs []byte) (n int) {
	n = ord.String.Marshal(c.Text, bs)
	n += ord.String.Marshal(string(c.Kind), bs[n:])
	n += varint.Int.Marshal(c.Rank, bs[n:])
	n += ord.String.Marshal(c.Normalized, bs[n:])
	return
}

func (conceptMUS) Unmarshal(bs []byte) (c Concept, n int, err error) {
	var n1 int
	c.Text, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var kind string
	kind, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.Kind = ConceptKind(kind)
	c.Rank, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.Normalized, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (conceptMUS) Size(c Concept) (size int) {
	size = ord.String.Size(c.Text)
	size += ord.String.Size(string(c.Kind))
	size += varint.Int.Size(c.Rank)
	size += ord.String.Size(c.Normalized)
	return
}

func (conceptMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	return
}

type classificationResultMUS struct{}

func (classificationResultMUS) Marshal(r ClassificationResult, bs []byte) (n int) {
	n = ord.String.Marshal(r.Notation, bs)
	n += marshalStringSlice(r.Path, bs[n:])
	n += raw.Float64.Marshal(r.Confidence, bs[n:])
	n += varint.Int.Marshal(r.Depth, bs[n:])
	n += marshalConceptSlice(r.Concepts, bs[n:])
	return
}

func (classificationResultMUS) Unmarshal(bs []byte) (r ClassificationResult, n int, err error) {
	var n1 int
	r.Notation, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	r.Path, n1, err = unmarshalStringSlice(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.Confidence, n1, err = raw.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.Depth, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.Concepts, n1, err = unmarshalConceptSlice(bs[n:])
	n += n1
	return
}

func (classificationResultMUS) Size(r ClassificationResult) (size int) {
	size = ord.String.Size(r.Notation)
	size += sizeStringSlice(r.Path)
	size += raw.Float64.Size(r.Confidence)
	size += varint.Int.Size(r.Depth)
	size += sizeConceptSlice(r.Concepts)
	return
}

func (classificationResultMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	n1, err = skipStringSlice(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.Float64.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = skipConceptSlice(bs[n:])
	n += n1
	return
}

type classificationRunMUS struct{}

func (classificationRunMUS) Marshal(run ClassificationRun, bs []byte) (n int) {
	n = IDMUS.Marshal(run.ID, bs)
	n += ord.String.Marshal(run.Title, bs[n:])
	n += raw.TimeUnixMicro.Marshal(run.CreatedAt, bs[n:])
	n += marshalConceptSlice(run.Concepts, bs[n:])
	n += varint.PositiveInt.Marshal(len(run.Results), bs[n:])
	for i := range run.Results {
		n += ClassificationResultMUS.Marshal(run.Results[i], bs[n:])
	}
	return
}

func (classificationRunMUS) Unmarshal(bs []byte) (run ClassificationRun, n int, err error) {
	var n1 int
	run.ID, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	run.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	run.CreatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	run.Concepts, n1, err = unmarshalConceptSlice(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var count int
	count, n1, err = varint.PositiveInt.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	for i := 0; i < count; i++ {
		var r ClassificationResult
		r, n1, err = ClassificationResultMUS.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
		run.Results = append(run.Results, r)
	}
	return
}

func (classificationRunMUS) Size(run ClassificationRun) (size int) {
	size = IDMUS.Size(run.ID)
	size += ord.String.Size(run.Title)
	size += raw.TimeUnixMicro.Size(run.CreatedAt)
	size += sizeConceptSlice(run.Concepts)
	size += varint.PositiveInt.Size(len(run.Results))
	for i := range run.Results {
		size += ClassificationResultMUS.Size(run.Results[i])
	}
	return
}

func (classificationRunMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = skipConceptSlice(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var count int
	count, n1, err = varint.PositiveInt.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	for i := 0; i < count; i++ {
		n1, err = ClassificationResultMUS.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}

func marshalStringSlice(ss []string, bs []byte) (n int) {
	n = varint.PositiveInt.Marshal(len(ss), bs)
	for _, s := range ss {
		n += ord.String.Marshal(s, bs[n:])
	}
	return
}

func unmarshalStringSlice(bs []byte) (ss []string, n int, err error) {
	count, n, err := varint.PositiveInt.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	for i := 0; i < count; i++ {
		var s string
		s, n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
		ss = append(ss, s)
	}
	return
}

func sizeStringSlice(ss []string) (size int) {
	size = varint.PositiveInt.Size(len(ss))
	for _, s := range ss {
		size += ord.String.Size(s)
	}
	return
}

func skipStringSlice(bs []byte) (n int, err error) {
	count, n, err := varint.PositiveInt.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	for i := 0; i < count; i++ {
		n1, err = ord.String.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}

func marshalConceptSlice(cs []Concept, bs []byte) (n int) {
	n = varint.PositiveInt.Marshal(len(cs), bs)
	for i := range cs {
		n += ConceptMUS.Marshal(cs[i], bs[n:])
	}
	return
}

func unmarshalConceptSlice(bs []byte) (cs []Concept, n int, err error) {
	count, n, err := varint.PositiveInt.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	for i := 0; i < count; i++ {
		var c Concept
		c, n1, err = ConceptMUS.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
		cs = append(cs, c)
	}
	return
}

func sizeConceptSlice(cs []Concept) (size int) {
	size = varint.PositiveInt.Size(len(cs))
	for i := range cs {
		size += ConceptMUS.Size(cs[i])
	}
	return
}

func skipConceptSlice(bs []byte) (n int, err error) {
	count, n, err := varint.PositiveInt.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	for i := 0; i < count; i++ {
		n1, err = ConceptMUS.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}
