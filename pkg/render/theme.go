package render

import (
	"errors"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ErrThemeNotFound is returned when a selector yields no manifest.
var ErrThemeNotFound = errors.New("render: theme not found")

// ThemeConfig resolves name/variant through selector and flattens the
// manifest into a renderer config: variant tokens and templates override the
// base ones, every token becomes a "--token" CSS variable, and asset keys
// resolve under the manifest prefix. A nil selector yields a nil config.
func ThemeConfig(selector theme.ThemeSelector, name, variant string) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, nil
	}

	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("render: select theme %q: %w", name, err)
	}
	if selection == nil || selection.Manifest == nil {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}

	manifest := selection.Manifest
	tokens := mergeStrings(manifest.Tokens, nil)
	partials := mergeStrings(manifest.Templates, nil)
	prefix := manifest.Assets.Prefix
	files := mergeStrings(manifest.Assets.Files, nil)

	if v, ok := manifest.Variants[selection.Variant]; ok {
		tokens = mergeStrings(tokens, v.Tokens)
		partials = mergeStrings(partials, v.Templates)
		files = mergeStrings(files, v.Assets.Files)
		if v.Assets.Prefix != "" {
			prefix = v.Assets.Prefix
		}
	}

	cfg := &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars(tokens),
		AssetURL: assetResolver(prefix, files),
	}
	if cfg.Theme == "" {
		cfg.Theme = manifest.Name
	}
	return cfg, nil
}

func cssVars(tokens map[string]string) map[string]string {
	if len(tokens) == 0 {
		return nil
	}
	out := make(map[string]string, len(tokens))
	for key, value := range tokens {
		name := strings.TrimSpace(key)
		if name == "" {
			continue
		}
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		out[name] = value
	}
	return out
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	prefix = strings.TrimRight(prefix, "/")
	return func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if prefix == "" {
			return file
		}
		return prefix + "/" + strings.TrimLeft(file, "/")
	}
}

func mergeStrings(base, overrides map[string]string) map[string]string {
	if len(base) == 0 && len(overrides) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(overrides))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range overrides {
		out[key] = value
	}
	return out
}
