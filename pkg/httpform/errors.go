package httpform

import "errors"

var (
	// ErrUnsupportedMediaType is returned by Bind for bodies that are neither
	// form encoded nor JSON.
	ErrUnsupportedMediaType = errors.New("httpform: unsupported media type")
	// ErrNilForm is returned when a factory yields no form.
	ErrNilForm = errors.New("httpform: form is nil")
)
