// Package definition describes forms declaratively and compiles them into a
// form.Config. Definitions come from JSON/YAML files (LoadFS, Parse), from an
// OpenAPI component schema (FromOpenAPI), or from a Go struct reflected into
// JSON Schema (FromStruct). Renderers consume the same Definition to lay out
// labels, widgets, and options.
package definition
