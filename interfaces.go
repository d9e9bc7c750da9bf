package automap

import "reflect"

// Package automap registers implementation types into a dependency injection
// container by convention and reports which bindings were added.

// Lifetime defines how instances of a binding are reused by the container.
type Lifetime string

// Available lifetimes
const (
	// LifetimeTransient creates a new instance for each resolution
	LifetimeTransient Lifetime = "transient"
	// LifetimeSingleton shares one instance for the lifetime of the container
	LifetimeSingleton Lifetime = "singleton"
)

// Behavior is a cross-cutting wrapper attached to the instances of a binding.
// Values are opaque to the engine and handed to the container verbatim.
type Behavior interface {
	// Name identifies the behavior kind.
	Name() string
}

// Extension is installed once on a container to enable behaviors.
type Extension interface {
	// Name identifies the extension on the container.
	Name() string
}

// Registration is a binding record as exposed by a Container.
// An empty Name is the default binding for RegisteredType.
type Registration struct {
	RegisteredType reflect.Type
	MappedToType   reflect.Type
	Name           string
}

// Container is the binding table driven by the engine.
type Container interface {
	// RegisterBinding maps from to to under name. Registering the same
	// (from, name) pair again replaces the previous binding.
	RegisterBinding(from, to reflect.Type, name string, lifetime Lifetime, behaviors []Behavior) error

	// ListBindings returns every binding currently held by the container.
	ListBindings() ([]Registration, error)

	// InstallExtension adds an extension to the container.
	InstallExtension(ext Extension) error
}

// ExtensionInspector is implemented by containers that can report installed extensions.
type ExtensionInspector interface {
	HasExtension(name string) bool
}

// NameResolver derives the binding name for a mapping.
type NameResolver interface {
	ResolveName(mapping TypeMapping) string
}

// LifetimeResolver derives the lifetime for a mapping.
type LifetimeResolver interface {
	ResolveLifetime(mapping TypeMapping) Lifetime
}

// BehaviorFactory derives the behaviors attached to a mapping, in declaration order.
type BehaviorFactory interface {
	CreateBehaviors(mapping TypeMapping) []Behavior
}

// MappingValidator rejects structurally invalid mappings.
type MappingValidator interface {
	Validate(mapping TypeMapping) error
}
