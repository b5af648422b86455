// Package resolver provides form.Resolver implementations: a resolver backed
// by go-playground/validator tags, an adapter for inline rule tables, a
// combinator, and a timeout wrapper for resolvers that may never return.
package resolver
