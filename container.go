package automap

import (
	"errors"
	"reflect"
	"sync"
)

// errExtensionInstalled is returned when an extension is installed twice.
var errExtensionInstalled = errors.New("extension already installed")

// BindingDefinition is a binding held by the in-memory container.
type BindingDefinition struct {
	Registration
	Lifetime  Lifetime
	Behaviors []Behavior
}

type bindingKey struct {
	from reflect.Type
	name string
}

// MemoryContainer is an in-memory binding table implementing Container and
// ExtensionInspector. It is safe for concurrent use.
type MemoryContainer struct {
	mu         sync.RWMutex
	bindings   map[bindingKey]BindingDefinition
	order      []bindingKey
	extensions map[string]Extension
}

// NewContainer creates an empty in-memory container.
func NewContainer() *MemoryContainer {
	return &MemoryContainer{
		bindings:   make(map[bindingKey]BindingDefinition, 32),
		extensions: make(map[string]Extension),
	}
}

// RegisterBinding stores a binding, replacing any binding registered for the
// same (from, name) pair. Returns InvalidArgumentError for nil types.
func (c *MemoryContainer) RegisterBinding(from, to reflect.Type, name string, lifetime Lifetime, behaviors []Behavior) error {
	if from == nil || to == nil {
		return &InvalidArgumentError{Argument: "binding", Reason: "type is nil"}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := bindingKey{from: from, name: name}
	if _, exists := c.bindings[key]; !exists {
		c.order = append(c.order, key)
	}
	c.bindings[key] = BindingDefinition{
		Registration: Registration{RegisteredType: from, MappedToType: to, Name: name},
		Lifetime:     lifetime,
		Behaviors:    append([]Behavior(nil), behaviors...),
	}
	return nil
}

// ListBindings returns the bindings in first-registration order.
func (c *MemoryContainer) ListBindings() ([]Registration, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Registration, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.bindings[key].Registration)
	}
	return out, nil
}

// Binding returns the definition registered for (from, name).
func (c *MemoryContainer) Binding(from reflect.Type, name string) (BindingDefinition, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	def, ok := c.bindings[bindingKey{from: from, name: name}]
	return def, ok
}

// InstallExtension adds ext. Returns ContainerOperationError if an extension
// with the same name is already installed.
func (c *MemoryContainer) InstallExtension(ext Extension) error {
	if ext == nil {
		return &InvalidArgumentError{Argument: "extension", Reason: "extension is nil"}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.extensions[ext.Name()]; exists {
		return &ContainerOperationError{Op: "install extension", Type: ext.Name(), Err: errExtensionInstalled}
	}
	c.extensions[ext.Name()] = ext
	return nil
}

// HasExtension reports whether an extension named name is installed.
func (c *MemoryContainer) HasExtension(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.extensions[name]
	return ok
}

// Reset clears all bindings and extensions.
// This function is intended for testing purposes only.
func (c *MemoryContainer) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.bindings = make(map[bindingKey]BindingDefinition, 32)
	c.order = nil
	c.extensions = make(map[string]Extension)
}
