package automap

import (
	"reflect"

	"go.uber.org/multierr"
)

// Config is an immutable set of mapping instructions consulted by the
// default resolvers and validator. Build one with NewConfigBuilder.
type Config struct {
	doNotMap        map[reflect.Type]struct{}
	singletons      map[reflect.Type]struct{}
	policyInjection map[reflect.Type]struct{}
	multimap        map[string]struct{}
	namedMappings   map[reflect.Type]string
}

// DefaultConfig returns an empty configuration: every type is mappable,
// transient, unnamed by choice and without behaviors.
func DefaultConfig() *Config {
	cfg, _ := NewConfigBuilder().Build()
	return cfg
}

// NamedMapping returns the explicit name configured for the concrete type t.
func (c *Config) NamedMapping(t reflect.Type) (string, bool) {
	name, ok := c.namedMappings[t]
	return name, ok
}

// IsNamedMapping reports whether t has an explicit name.
func (c *Config) IsNamedMapping(t reflect.Type) bool {
	_, ok := c.namedMappings[t]
	return ok
}

// IsSingleton reports whether t is registered with LifetimeSingleton.
func (c *Config) IsSingleton(t reflect.Type) bool {
	_, ok := c.singletons[t]
	return ok
}

// IsPolicyInjection reports whether t takes part in policy injection.
func (c *Config) IsPolicyInjection(t reflect.Type) bool {
	_, ok := c.policyInjection[t]
	return ok
}

// PolicyInjectionRequired reports whether any type takes part in policy injection.
func (c *Config) PolicyInjectionRequired() bool {
	return len(c.policyInjection) > 0
}

// IsMappable reports whether t participates in automapping at all.
func (c *Config) IsMappable(t reflect.Type) bool {
	_, excluded := c.doNotMap[t]
	return !excluded
}

// IsMultimap reports whether t accepts several concrete mappings.
// Instantiations of a generic type match the configured definition.
func (c *Config) IsMultimap(t reflect.Type) bool {
	_, ok := c.multimap[genericDefinition(t)]
	return ok
}

// ConfigBuilder accumulates mapping instructions with a fluent API.
// Building does not consume the builder; each Build returns an independent snapshot.
type ConfigBuilder struct {
	doNotMap        []reflect.Type
	singletons      []reflect.Type
	policyInjection []reflect.Type
	multimap        []reflect.Type
	mergedMultimap  []string
	named           []namedMapping
	errs            []error
}

type namedMapping struct {
	typ  reflect.Type
	name string
}

// NewConfigBuilder creates an empty builder.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{}
}

// DoNotMap excludes the given types from automapping.
func (b *ConfigBuilder) DoNotMap(types ...reflect.Type) *ConfigBuilder {
	b.doNotMap = b.appendTypes("DoNotMap", b.doNotMap, types)
	return b
}

// MapAsSingleton registers the given concrete types as singletons.
func (b *ConfigBuilder) MapAsSingleton(types ...reflect.Type) *ConfigBuilder {
	b.singletons = b.appendTypes("MapAsSingleton", b.singletons, types)
	return b
}

// UsePolicyInjection attaches the policy injection behavior to the given concrete types.
func (b *ConfigBuilder) UsePolicyInjection(types ...reflect.Type) *ConfigBuilder {
	b.policyInjection = b.appendTypes("UsePolicyInjection", b.policyInjection, types)
	return b
}

// UseMultimapping allows the given interfaces to be mapped to several concretes.
func (b *ConfigBuilder) UseMultimapping(types ...reflect.Type) *ConfigBuilder {
	b.multimap = b.appendTypes("UseMultimapping", b.multimap, types)
	return b
}

// UseNamedMapping registers the concrete type t under an explicit name.
// The first name configured for a type wins.
func (b *ConfigBuilder) UseNamedMapping(t reflect.Type, name string) *ConfigBuilder {
	switch {
	case t == nil:
		b.errs = append(b.errs, &InvalidArgumentError{Argument: "UseNamedMapping", Reason: "type is nil"})
	case name == "":
		b.errs = append(b.errs, &InvalidArgumentError{Argument: "UseNamedMapping", Reason: "name is empty for " + TypeName(t)})
	default:
		b.named = append(b.named, namedMapping{typ: t, name: name})
	}
	return b
}

// Merge appends every instruction held by cfg.
func (b *ConfigBuilder) Merge(cfg *Config) *ConfigBuilder {
	if cfg == nil {
		return b
	}
	for t := range cfg.doNotMap {
		b.doNotMap = append(b.doNotMap, t)
	}
	for t := range cfg.singletons {
		b.singletons = append(b.singletons, t)
	}
	for t := range cfg.policyInjection {
		b.policyInjection = append(b.policyInjection, t)
	}
	for t, name := range cfg.namedMappings {
		b.named = append(b.named, namedMapping{typ: t, name: name})
	}
	b.mergedMultimap = append(b.mergedMultimap, keys(cfg.multimap)...)
	return b
}

// Build returns an immutable snapshot of the accumulated instructions.
// Returns the combined argument errors recorded by the fluent calls, if any.
func (b *ConfigBuilder) Build() (*Config, error) {
	if len(b.errs) > 0 {
		return nil, multierr.Combine(b.errs...)
	}

	cfg := &Config{
		doNotMap:        toSet(b.doNotMap),
		singletons:      toSet(b.singletons),
		policyInjection: toSet(b.policyInjection),
		multimap:        make(map[string]struct{}, len(b.multimap)+len(b.mergedMultimap)),
		namedMappings:   make(map[reflect.Type]string, len(b.named)),
	}
	for _, t := range b.multimap {
		cfg.multimap[genericDefinition(t)] = struct{}{}
	}
	for _, key := range b.mergedMultimap {
		cfg.multimap[key] = struct{}{}
	}
	for _, n := range b.named {
		if _, exists := cfg.namedMappings[n.typ]; !exists {
			cfg.namedMappings[n.typ] = n.name
		}
	}
	return cfg, nil
}

func (b *ConfigBuilder) appendTypes(op string, dst, types []reflect.Type) []reflect.Type {
	for _, t := range types {
		if t == nil {
			b.errs = append(b.errs, &InvalidArgumentError{Argument: op, Reason: "type is nil"})
			continue
		}
		dst = append(dst, t)
	}
	return dst
}

func toSet(types []reflect.Type) map[reflect.Type]struct{} {
	set := make(map[reflect.Type]struct{}, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}
	return set
}

func keys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}
