package form

import "github.com/zoobzio/capitan"

// Field keys for form events.
var (
	// KeyFormID identifies the form instance.
	KeyFormID = capitan.NewStringKey("form_id")

	// KeyField is the field name a change applies to.
	KeyField = capitan.NewStringKey("field")

	// KeyStrategy is the validation strategy of the instance.
	KeyStrategy = capitan.NewStringKey("strategy")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")

	// KeyErrorCount is the number of field errors after a pass.
	KeyErrorCount = capitan.NewIntKey("error_count")
)
