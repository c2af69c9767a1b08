package types

import (
	"errors"

	vrserrors "github.com/diwise/vrs/pkg/vrs/errors"
)

// checks accumulates the validation errors of one constructor call. Shape errors
// are collected first; invariants are only evaluated on well-shaped input.
type checks struct {
	errs []error
}

func (c *checks) add(err error, path ...string) {
	if err != nil {
		c.errs = append(c.errs, vrserrors.Within(err, path...))
	}
}

func (c *checks) shape(field string, format string, args ...any) {
	c.add(vrserrors.NewShapeMismatchError(field, format, args...))
}

func (c *checks) missing(path ...string) {
	c.add(vrserrors.New(vrserrors.ErrMissingRequiredField, path, "%s is required", vrserrors.JoinPath(path)))
}

func (c *checks) invariant(path []string, format string, args ...any) {
	c.add(vrserrors.NewInvariantViolationError(path, format, args...))
}

func (c *checks) failed() bool {
	return len(c.errs) > 0
}

func (c *checks) err() error {
	switch len(c.errs) {
	case 0:
		return nil
	case 1:
		return c.errs[0]
	}
	return errors.Join(c.errs...)
}
