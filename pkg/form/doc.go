// Package form holds the state-update and validation core of a form instance:
// a single store of field values and error messages, a field binder that
// wires widgets to the store, a validator that runs either inline pattern
// rules or a pluggable resolver, and the submit/reset coordinators.
//
// Fields are flat and scalar (string or bool) and addressed by name. The set
// of names is fixed by the defaults passed to New. Toggle widgets derive
// their checked state from Binding.Checked, so Reset only restores values
// and never reaches into the presentation layer.
//
// Validation is configured once per instance and resolves to exactly one
// strategy: no validation, rule based, or resolver based. When both rules
// and a resolver are supplied the resolver wins and its error map replaces
// the previous one wholesale.
package form
