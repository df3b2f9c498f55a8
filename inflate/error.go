package inflate

import (
	"errors"
	"log/slog"

	"github.com/ardnew/inflate/pkg"
)

var (
	// ErrDuplicateRegistration is returned when a factory, template, or
	// variable name is already defined in the same registry or scope frame.
	ErrDuplicateRegistration = pkg.NewError("duplicate registration")
	// ErrMalformedTemplate is returned for a template without a body or
	// definition, a template argument with children, or a leaf value that is
	// not alone in its chain.
	ErrMalformedTemplate = pkg.NewError("malformed template")
	// ErrMalformedReference is returned for an "@" marker that does not hold
	// exactly one childless variable name.
	ErrMalformedReference = pkg.NewError("malformed reference")
	// ErrMalformedDeclaration is returned for a property other than defs
	// ahead of the node to inflate.
	ErrMalformedDeclaration = pkg.NewError("malformed declaration")
	// ErrUnknownType is returned when no factory is registered for the
	// resolved type name.
	ErrUnknownType = pkg.NewError("unknown type")
	// ErrMaxDepthExceeded is returned when nested inflation exceeds the limit
	// set with [WithMaxDepth].
	ErrMaxDepthExceeded = pkg.NewError("maximum inflation depth exceeded")
)

// withAttrs decorates err with attrs when it is a structured error.
func withAttrs(err error, attrs ...slog.Attr) error {
	var e *pkg.Error
	if errors.As(err, &e) {
		return e.With(attrs...)
	}

	return err
}
