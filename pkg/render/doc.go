// Package render holds the renderer contract shared by the HTML and terminal
// presentations: the Renderer interface, per-request RenderOptions, the View
// built from a definition plus live form state, and theme helpers.
package render
