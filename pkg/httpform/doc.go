// Package httpform binds HTTP submissions to form instances. Bind applies
// posted fields through the form bindings, Handler gates a callback on
// validation, and Page serves a rendered definition on GET and processes it
// on POST.
package httpform
