package automap

import (
	"errors"
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// Option configures an Engine or Automapper.
type Option func(*options)

type options struct {
	logger          *zap.Logger
	newExtension    func() Extension
	continueOnError bool
}

func newOptions(opts []Option) options {
	o := options{
		logger:       zap.NewNop(),
		newExtension: func() Extension { return InterceptionExtension{} },
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger used for registration events.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithExtension replaces the extension installed for mappings that carry behaviors.
func WithExtension(factory func() Extension) Option {
	return func(o *options) {
		if factory != nil {
			o.newExtension = factory
		}
	}
}

// WithContinueOnError makes Automapper.Map register every mapping it can and
// report all failures together instead of stopping at the first one.
func WithContinueOnError() Option {
	return func(o *options) {
		o.continueOnError = true
	}
}

// Engine resolves name, lifetime and behaviors for each mapping and registers
// the result into a container. It installs the behavior extension at most once
// per container instance.
//
// The engine remembers every container it installed the extension on and keeps
// comparable containers reachable until Forget is called for them. Struct
// containers holding non-comparable values have no stable identity; they are
// deduplicated within a single PerformRegistrations call only, unless they
// implement ExtensionInspector.
type Engine struct {
	names     NameResolver
	lifetimes LifetimeResolver
	behaviors BehaviorFactory
	validator MappingValidator
	opts      options

	mu        sync.Mutex
	installed map[any]struct{}
}

// pointerKey identifies map, slice and func containers by their pointer.
type pointerKey struct {
	typ reflect.Type
	ptr uintptr
}

// NewEngine creates an engine from explicit collaborators.
func NewEngine(names NameResolver, lifetimes LifetimeResolver, behaviors BehaviorFactory, validator MappingValidator, opts ...Option) *Engine {
	return &Engine{
		names:     names,
		lifetimes: lifetimes,
		behaviors: behaviors,
		validator: validator,
		opts:      newOptions(opts),
		installed: make(map[any]struct{}),
	}
}

// NewEngineFromConfig creates an engine whose collaborators consult cfg.
// A nil cfg behaves like DefaultConfig.
func NewEngineFromConfig(cfg *Config, opts ...Option) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return NewEngine(
		ConfigNameResolver{Config: cfg},
		ConfigLifetimeResolver{Config: cfg},
		ConfigBehaviorFactory{Config: cfg},
		ConfigValidator{Config: cfg},
		opts...,
	)
}

// PerformRegistrations registers mappings into c in input order and returns one
// record per registered mapping. It stops at the first failure and returns the
// records registered before it along with the error.
//
// If installing the extension fails, the binding of the mapping that requested
// it is already in c but has no record in the result.
func (e *Engine) PerformRegistrations(c Container, mappings []TypeMapping) ([]Registration, error) {
	registrations := make([]Registration, 0, len(mappings))
	if len(mappings) == 0 {
		return registrations, nil
	}
	if c == nil {
		return registrations, &InvalidArgumentError{Argument: "container", Reason: "container is nil"}
	}

	extensionReady := false
	for _, mapping := range mappings {
		if err := e.validator.Validate(mapping); err != nil {
			return registrations, err
		}

		behaviors := e.behaviors.CreateBehaviors(mapping)
		lifetime := e.lifetimes.ResolveLifetime(mapping)
		name := e.names.ResolveName(mapping)

		if err := c.RegisterBinding(mapping.From, mapping.To, name, lifetime, behaviors); err != nil {
			return registrations, containerError("register", TypeName(mapping.From), err)
		}
		e.opts.logger.Debug("registered mapping",
			zap.String("from", TypeName(mapping.From)),
			zap.String("to", TypeName(mapping.To)),
			zap.String("name", name),
			zap.String("lifetime", string(lifetime)),
			zap.Int("behaviors", len(behaviors)),
		)

		if len(behaviors) > 0 && !extensionReady {
			if err := e.ensureExtension(c); err != nil {
				return registrations, err
			}
			extensionReady = true
		}

		registrations = append(registrations, Registration{
			RegisteredType: mapping.From,
			MappedToType:   mapping.To,
			Name:           name,
		})
	}
	return registrations, nil
}

// Forget drops the extension state held for c, releasing the reference to it.
// A later batch against c consults ExtensionInspector again, if implemented.
func (e *Engine) Forget(c Container) {
	key, ok := containerKey(c)
	if !ok {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.installed, key)
}

// ensureExtension installs the extension unless this engine already did so
// for c, or c reports it as present.
func (e *Engine) ensureExtension(c Container) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	key, keyed := containerKey(c)
	if keyed {
		if _, ok := e.installed[key]; ok {
			return nil
		}
	}

	ext := e.opts.newExtension()
	if inspector, ok := c.(ExtensionInspector); ok && inspector.HasExtension(ext.Name()) {
		if keyed {
			e.installed[key] = struct{}{}
		}
		return nil
	}
	if err := c.InstallExtension(ext); err != nil {
		return containerError("install extension", ext.Name(), err)
	}
	if keyed {
		e.installed[key] = struct{}{}
	}
	e.opts.logger.Info("installed container extension", zap.String("extension", ext.Name()))
	return nil
}

// containerKey returns a hashable identity for c, checked on the dynamic value
// so that struct containers holding slices or maps are not used as map keys.
func containerKey(c Container) (any, bool) {
	if c == nil {
		return nil, false
	}
	v := reflect.ValueOf(c)
	if v.Comparable() {
		return c, true
	}
	switch v.Kind() {
	case reflect.Map, reflect.Slice, reflect.Func:
		return pointerKey{typ: v.Type(), ptr: v.Pointer()}, true
	}
	return nil, false
}

func containerError(op, typ string, err error) error {
	var opErr *ContainerOperationError
	if errors.As(err, &opErr) {
		return err
	}
	return &ContainerOperationError{Op: op, Type: typ, Err: err}
}
