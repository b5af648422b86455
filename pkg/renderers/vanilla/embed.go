package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl templates/widgets/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

// StylesheetName is the default stylesheet inside AssetsFS.
const StylesheetName = "formlight.css"

// TemplatesFS exposes the embedded template bundle for consumers that want to
// override single widgets while keeping the rest.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// AssetsFS exposes the embedded stylesheet so callers can serve it over HTTP.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}

func defaultStylesheet() string {
	data, err := fs.ReadFile(embeddedAssets, "assets/"+StylesheetName)
	if err != nil {
		return ""
	}
	return string(data)
}
