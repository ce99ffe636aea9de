package plugin

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// URI is the import every component type is registered under.
const URI = "org.kde.lingmoui"

//go:embed types.yaml
var manifestFS embed.FS

// ComponentType is one declarative component exported by the plugin.
type ComponentType struct {
	Name  string  `yaml:"name"`
	File  string  `yaml:"file"`
	Since Version `yaml:"since"`
}

// Manifest lists the component types of an import.
type Manifest struct {
	URI   string          `yaml:"uri"`
	Types []ComponentType `yaml:"types"`
}

var (
	defaultManifest     *Manifest
	defaultManifestErr  error
	defaultManifestOnce sync.Once
)

// DefaultManifest returns the embedded manifest. It is parsed once; callers
// must not modify it.
func DefaultManifest() (*Manifest, error) {
	defaultManifestOnce.Do(func() {
		data, err := manifestFS.ReadFile("types.yaml")
		if err != nil {
			defaultManifestErr = fmt.Errorf("failed to read embedded manifest: %w", err)
			return
		}
		defaultManifest, defaultManifestErr = LoadManifest(bytes.NewReader(data))
	})
	return defaultManifest, defaultManifestErr
}

// LoadManifest decodes and validates a YAML manifest.
func LoadManifest(r io.Reader) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks that type names are unique and every type has a
// component file.
func (m *Manifest) Validate() error {
	if m.URI == "" {
		return fmt.Errorf("%w: missing uri", ErrInvalidManifest)
	}
	seen := make(map[string]bool, len(m.Types))
	for i, t := range m.Types {
		switch {
		case t.Name == "":
			return fmt.Errorf("%w: type %d has no name", ErrInvalidManifest, i)
		case seen[t.Name]:
			return fmt.Errorf("%w: duplicate type %s", ErrInvalidManifest, t.Name)
		case path.Ext(t.File) != ".qml":
			return fmt.Errorf("%w: type %s has component file %q", ErrInvalidManifest, t.Name, t.File)
		}
		seen[t.Name] = true
	}
	return nil
}

// Registry resolves registered component types to their files.
type Registry struct {
	uri      string
	selector *StyleSelector
	types    map[string]ComponentType
	order    []string
}

// RegisterTypes registers every type of m under uri. The uri must be URI
// and must match the manifest's.
func RegisterTypes(uri string, m *Manifest, selector *StyleSelector) (*Registry, error) {
	if uri != URI || m.URI != URI {
		return nil, fmt.Errorf("%w: got %q", ErrWrongURI, uri)
	}
	if selector == nil {
		selector = &StyleSelector{}
	}

	r := &Registry{
		uri:      uri,
		selector: selector,
		types:    make(map[string]ComponentType, len(m.Types)),
	}
	for _, t := range m.Types {
		r.types[t.Name] = t
		r.order = append(r.order, t.Name)
	}
	return r, nil
}

// URI returns the import the registry serves.
func (r *Registry) URI() string {
	return r.uri
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	return len(r.order)
}

// Lookup returns the named type.
func (r *Registry) Lookup(name string) (ComponentType, bool) {
	t, ok := r.types[name]
	return t, ok
}

// Available reports whether an import of version v exposes the named type.
func (r *Registry) Available(name string, v Version) bool {
	t, ok := r.types[name]
	return ok && t.Since.Major == v.Major && !v.Less(t.Since)
}

// Types returns, in registration order, the types an import of version v
// exposes.
func (r *Registry) Types(v Version) []ComponentType {
	var out []ComponentType
	for _, name := range r.order {
		if r.Available(name, v) {
			out = append(out, r.types[name])
		}
	}
	return out
}

// Since returns the distinct versions types were introduced in, oldest first.
func (r *Registry) Since() []Version {
	var out []Version
	for _, name := range r.order {
		v := r.types[name].Since
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	slices.SortFunc(out, func(a, b Version) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		}
		return 0
	})
	return out
}

// ComponentURL returns where the named type's component file lives for the
// selected style.
func (r *Registry) ComponentURL(name string) (string, error) {
	t, ok := r.types[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownType, name)
	}
	return r.selector.ComponentURL(t.File), nil
}

// StyleSelector resolves component files against a base location,
// preferring the selected style's variant of a file when it exists.
type StyleSelector struct {
	// Base is the URL or directory components are resolved against.
	Base string
	// Style is the selected style; empty uses the base files only.
	Style string
	// Exists reports whether a path relative to Base exists. Nil means
	// only base files exist.
	Exists func(rel string) bool
}

// ResolveFilePath returns the path of file relative to Base.
func (s *StyleSelector) ResolveFilePath(file string) string {
	if s.Style != "" && s.Exists != nil {
		styled := path.Join("styles", s.Style, file)
		if s.Exists(styled) {
			return styled
		}
	}
	return path.Clean(file)
}

// ComponentURL joins Base and the resolved path of file.
func (s *StyleSelector) ComponentURL(file string) string {
	rel := s.ResolveFilePath(file)
	if s.Base == "" {
		return rel
	}
	return strings.TrimSuffix(s.Base, "/") + "/" + rel
}
