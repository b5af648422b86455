package definition

import (
	"bytes"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Store holds definitions keyed by form id.
type Store struct {
	forms map[string]Definition
}

type documentFile struct {
	Forms map[string]Definition `json:"forms" yaml:"forms"`
}

// LoadFS walks fsys and parses every JSON/YAML definition file. A nil fsys
// yields an empty store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{forms: make(map[string]Definition)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("definition: read %s: %w", path, err)
		}

		defs, err := Parse(data, path)
		if err != nil {
			return err
		}
		for _, def := range defs {
			if _, exists := store.forms[def.ID]; exists {
				return fmt.Errorf("definition: duplicate form %q (file %s)", def.ID, path)
			}
			store.forms[def.ID] = def
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

// Parse decodes a single definition document. The format is chosen from the
// source extension; unknown extensions try JSON first, then YAML.
func Parse(data []byte, source string) ([]Definition, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("definition: file %s is empty", source)
	}

	doc, err := decodeDocument(data, source)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(doc.Forms))
	for id := range doc.Forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]Definition, 0, len(ids))
	for _, rawID := range ids {
		id := strings.TrimSpace(rawID)
		if id == "" {
			return nil, fmt.Errorf("definition: file %s defines an empty form id", source)
		}
		def := doc.Forms[rawID]
		def.ID = id
		def.Source = source
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("definition: %s: %w", source, err)
		}
		out = append(out, def)
	}
	return out, nil
}

func decodeDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	switch strings.ToLower(filepath.Ext(source)) {
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return documentFile{}, fmt.Errorf("definition: parse %s: %w", source, err)
		}
		return doc, nil
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return documentFile{}, fmt.Errorf("definition: parse %s: %w", source, err)
		}
		return doc, nil
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	return documentFile{}, fmt.Errorf("definition: parse %s: invalid JSON or YAML", source)
}

// Form returns the definition for id.
func (s *Store) Form(id string) (Definition, bool) {
	if s == nil {
		return Definition{}, false
	}
	def, ok := s.forms[id]
	return def, ok
}

// IDs returns the known form ids in sorted order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any definitions.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
