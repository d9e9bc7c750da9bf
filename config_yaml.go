package automap

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the document structure accepted by LoadConfig.
//
//	doNotMap: [github.com/acme/app.legacyStore]
//	singletons: [github.com/acme/app.auditLog]
//	policyInjection: [github.com/acme/app.orderService]
//	multimap: [github.com/acme/app.Handler]
//	namedMappings:
//	  github.com/acme/app.smtpMailer: smtp
type ConfigFile struct {
	DoNotMap        []string          `yaml:"doNotMap"`
	Singletons      []string          `yaml:"singletons"`
	PolicyInjection []string          `yaml:"policyInjection"`
	Multimap        []string          `yaml:"multimap"`
	NamedMappings   map[string]string `yaml:"namedMappings"`
}

// TypeRegistry resolves fully-qualified type names to types.
type TypeRegistry struct {
	types map[string]reflect.Type
}

// NewTypeRegistry creates a registry holding the given types under their TypeName.
func NewTypeRegistry(types ...reflect.Type) *TypeRegistry {
	r := &TypeRegistry{types: make(map[string]reflect.Type, len(types))}
	for _, t := range types {
		r.Add(t)
	}
	return r
}

// Add registers t under its TypeName. Nil types are ignored.
func (r *TypeRegistry) Add(t reflect.Type) {
	if t == nil {
		return
	}
	r.types[TypeName(t)] = t
}

// Lookup returns the type registered under name.
func (r *TypeRegistry) Lookup(name string) (reflect.Type, bool) {
	t, ok := r.types[name]
	return t, ok
}

// LoadConfig decodes a YAML configuration document, resolving type names through lookup.
func LoadConfig(r io.Reader, lookup *TypeRegistry) (*Config, error) {
	var file ConfigFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return nil, &ConfigError{Source: "yaml", Err: err}
	}
	return file.Config(lookup)
}

// LoadConfigFile reads a YAML configuration document from path.
func LoadConfigFile(path string, lookup *TypeRegistry) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ConfigError{Source: path, Err: err}
	}
	defer f.Close()

	cfg, err := LoadConfig(f, lookup)
	if cfgErr, ok := err.(*ConfigError); ok {
		cfgErr.Source = path
	}
	return cfg, err
}

// Config converts the document into an immutable configuration.
func (f *ConfigFile) Config(lookup *TypeRegistry) (*Config, error) {
	if lookup == nil {
		lookup = NewTypeRegistry()
	}
	b := NewConfigBuilder()

	sections := []struct {
		key   string
		names []string
		add   func(...reflect.Type) *ConfigBuilder
	}{
		{"doNotMap", f.DoNotMap, b.DoNotMap},
		{"singletons", f.Singletons, b.MapAsSingleton},
		{"policyInjection", f.PolicyInjection, b.UsePolicyInjection},
		{"multimap", f.Multimap, b.UseMultimapping},
	}
	for _, s := range sections {
		types, err := resolveNames(lookup, s.key, s.names)
		if err != nil {
			return nil, err
		}
		s.add(types...)
	}

	// Sorted so that build errors are reported in a stable order.
	names := make([]string, 0, len(f.NamedMappings))
	for name := range f.NamedMappings {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, typeName := range names {
		t, ok := lookup.Lookup(typeName)
		if !ok {
			return nil, unknownType("namedMappings", typeName)
		}
		b.UseNamedMapping(t, f.NamedMappings[typeName])
	}

	return b.Build()
}

func resolveNames(lookup *TypeRegistry, key string, names []string) ([]reflect.Type, error) {
	types := make([]reflect.Type, 0, len(names))
	for _, name := range names {
		t, ok := lookup.Lookup(name)
		if !ok {
			return nil, unknownType(key, name)
		}
		types = append(types, t)
	}
	return types, nil
}

func unknownType(key, name string) error {
	return &InvalidArgumentError{Argument: key, Reason: fmt.Sprintf("unknown type %q", name)}
}
