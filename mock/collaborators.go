package mock

import (
	"reflect"

	"github.com/stretchr/testify/mock"

	"github.com/centraunit/automap"
)

// Container is a testify mock of automap.Container.
type Container struct {
	mock.Mock
}

func (m *Container) RegisterBinding(from, to reflect.Type, name string, lifetime automap.Lifetime, behaviors []automap.Behavior) error {
	args := m.Called(from, to, name, lifetime, behaviors)
	return args.Error(0)
}

func (m *Container) ListBindings() ([]automap.Registration, error) {
	args := m.Called()
	regs, _ := args.Get(0).([]automap.Registration)
	return regs, args.Error(1)
}

func (m *Container) InstallExtension(ext automap.Extension) error {
	args := m.Called(ext)
	return args.Error(0)
}

// NameResolver is a testify mock of automap.NameResolver.
type NameResolver struct {
	mock.Mock
}

func (m *NameResolver) ResolveName(mapping automap.TypeMapping) string {
	return m.Called(mapping).String(0)
}

// LifetimeResolver is a testify mock of automap.LifetimeResolver.
type LifetimeResolver struct {
	mock.Mock
}

func (m *LifetimeResolver) ResolveLifetime(mapping automap.TypeMapping) automap.Lifetime {
	return m.Called(mapping).Get(0).(automap.Lifetime)
}

// BehaviorFactory is a testify mock of automap.BehaviorFactory.
type BehaviorFactory struct {
	mock.Mock
}

func (m *BehaviorFactory) CreateBehaviors(mapping automap.TypeMapping) []automap.Behavior {
	behaviors, _ := m.Called(mapping).Get(0).([]automap.Behavior)
	return behaviors
}

// MappingValidator is a testify mock of automap.MappingValidator.
type MappingValidator struct {
	mock.Mock
}

func (m *MappingValidator) Validate(mapping automap.TypeMapping) error {
	return m.Called(mapping).Error(0)
}

// FailingContainer wraps a container and fails listing, registration or
// extension install on demand.
type FailingContainer struct {
	automap.Container
	ListErr      error
	RegisterErr  error
	ExtensionErr error
}

func (f *FailingContainer) ListBindings() ([]automap.Registration, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return f.Container.ListBindings()
}

func (f *FailingContainer) RegisterBinding(from, to reflect.Type, name string, lifetime automap.Lifetime, behaviors []automap.Behavior) error {
	if f.RegisterErr != nil {
		return f.RegisterErr
	}
	return f.Container.RegisterBinding(from, to, name, lifetime, behaviors)
}

func (f *FailingContainer) InstallExtension(ext automap.Extension) error {
	if f.ExtensionErr != nil {
		return f.ExtensionErr
	}
	return f.Container.InstallExtension(ext)
}
