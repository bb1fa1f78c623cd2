// Package manifest loads declared dependency relations from manifest files.
//
// Two formats are supported, dispatched on file extension:
//
//   - TOML (.toml): a [deps] table mapping each key to its dependency array.
//     Declaration order in the file is preserved, so validation and
//     rendering are reproducible across runs.
//   - JSON (.json): {"relations": [{"key": "app", "deps": ["lib"]}]}.
//     The relations array preserves order natively.
//
// Load returns a deptree builder so callers decide when to finalize:
//
//	b, err := manifest.Load("deps.toml")
//	if err != nil {
//	    return err
//	}
//	tree, err := b.Build()
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/deptree/pkg/deptree"
	"github.com/matzehuels/deptree/pkg/errors"
)

// depsTable is the name of the TOML table holding the relations.
const depsTable = "deps"

// tomlManifest mirrors the TOML file structure.
type tomlManifest struct {
	Name string              `toml:"name"`
	Deps map[string][]string `toml:"deps"`
}

// jsonManifest mirrors the JSON file structure.
type jsonManifest struct {
	Name      string     `json:"name,omitempty"`
	Relations []Relation `json:"relations"`
}

// Relation is one declared key → dependency-list entry as it appears in a
// manifest or API request body.
type Relation struct {
	Key  string   `json:"key"`
	Deps []string `json:"deps,omitempty"`
}

// Load reads a manifest file and returns a builder with its relations
// declared in file order. The format is chosen by extension (.toml or
// .json). Keys are validated before declaration; a cycle is NOT detected
// here - that happens at Build.
func Load(path string) (*deptree.Builder[string], error) {
	if err := errors.ValidateManifestFilename(filepath.Base(path)); err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return loadTOML(path)
	case ".json":
		return loadJSON(path)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported manifest format: %s", filepath.Ext(path))
	}
}

// FromRelations declares an ordered relation list on a fresh builder.
// This is the entry point used by the HTTP API, where relations arrive as a
// decoded JSON array.
func FromRelations(relations []Relation) (*deptree.Builder[string], error) {
	b := deptree.New[string]()
	for _, rel := range relations {
		if err := errors.ValidateKey(rel.Key); err != nil {
			return nil, err
		}
		for _, dep := range rel.Deps {
			if err := errors.ValidateKey(dep); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidKey, err, "dependency of %q", rel.Key)
			}
		}
		b.WithDep(rel.Key, rel.Deps...)
	}
	return b, nil
}

func loadTOML(path string) (*deptree.Builder[string], error) {
	var m tomlManifest
	md, err := toml.DecodeFile(path, &m)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "manifest %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse %s", path)
	}

	// toml.MetaData reports keys in file order; the decoded map does not.
	relations := make([]Relation, 0, len(m.Deps))
	for _, key := range md.Keys() {
		if len(key) != 2 || key[0] != depsTable {
			continue
		}
		name := key[1]
		deps, ok := m.Deps[name]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidManifest, "entry %q is not a dependency array", name)
		}
		relations = append(relations, Relation{Key: name, Deps: deps})
	}
	return FromRelations(relations)
}

func loadJSON(path string) (*deptree.Builder[string], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "manifest %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var m jsonManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse %s", path)
	}
	return FromRelations(m.Relations)
}
