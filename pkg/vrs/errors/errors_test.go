package errors

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestValidationErrorMatchesItsKind(t *testing.T) {
	is := is.New(t)

	err := NewMissingRequiredFieldError("location")
	is.True(errors.Is(err, ErrMissingRequiredField))
	is.True(!errors.Is(err, ErrShapeMismatch))
	is.Equal(KindOf(err), ErrMissingRequiredField)
}

func TestWithinPrefixesThePath(t *testing.T) {
	is := is.New(t)

	err := Within(NewShapeMismatchError("value", "expected integer, got string"), "members", Index(2), "count")
	is.Equal(err.Error(), "shape mismatch at members[2].count.value: expected integer, got string")

	var ve *ValidationError
	is.True(errors.As(err, &ve))
	is.Equal(ve.Segments(), []string{"members", "[2]", "count", "value"})
}

func TestWithinRewritesJoinedErrors(t *testing.T) {
	is := is.New(t)

	joined := errors.Join(NewUnexpectedFieldError("a"), NewUnexpectedFieldError("b"))
	errs := Flatten(Within(joined, "state"))

	is.Equal(len(errs), 2)
	is.Equal(errs[0].(*ValidationError).Path(), "state.a")
	is.Equal(errs[1].(*ValidationError).Path(), "state.b")
}

func TestErrorWithoutPath(t *testing.T) {
	is := is.New(t)

	err := NewUnknownDiscriminatorError("%q is not a known family", "Thing")
	is.Equal(err.Error(), `unknown discriminator: "Thing" is not a known family`)
	is.Equal(KindOf(errors.New("plain")), nil)
}

func TestProblemTypesMapBackToKinds(t *testing.T) {
	is := is.New(t)

	for _, kind := range Kinds {
		typ := ProblemType(kind)
		is.True(typ != "")

		back, ok := KindFromProblemType(typ)
		is.True(ok)
		is.Equal(back, kind)
	}

	_, ok := KindFromProblemType("about:blank")
	is.True(!ok)
}
