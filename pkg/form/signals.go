package form

import "github.com/zoobzio/capitan"

// State change signals.
var (
	// FormValuesChanged is emitted after a field value is written.
	FormValuesChanged = capitan.NewSignal(
		"formlight.form.values.changed",
		"Form values changed",
	)

	// FormErrorsChanged is emitted after the error map is merged or replaced.
	FormErrorsChanged = capitan.NewSignal(
		"formlight.form.errors.changed",
		"Form errors changed",
	)

	// FormReset is emitted when values are restored to their defaults.
	FormReset = capitan.NewSignal(
		"formlight.form.reset",
		"Form reset to defaults",
	)
)

// Validation and submit signals.
var (
	// FormValidated is emitted when a full validation pass completes.
	FormValidated = capitan.NewSignal(
		"formlight.form.validated",
		"Form validation pass completed",
	)

	// FormResolverFailed is emitted when a resolver returns an error or panics.
	FormResolverFailed = capitan.NewSignal(
		"formlight.form.resolver.failed",
		"Resolver failed during validation",
	)

	// FormSubmitted is emitted right before the submit callback runs.
	FormSubmitted = capitan.NewSignal(
		"formlight.form.submitted",
		"Form submitted",
	)

	// FormSubmitBlocked is emitted when validation prevents submission.
	FormSubmitBlocked = capitan.NewSignal(
		"formlight.form.submit.blocked",
		"Form submission blocked by validation",
	)
)
