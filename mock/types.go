package mock

import "github.com/centraunit/automap"

// Core interfaces
type Database interface {
	Connect() error
}

type Cache interface {
	Get(key string) any
}

type Handler interface {
	automap.Multimap
	Handle() string
}

type Repository[T any] interface {
	Find(id string) (T, error)
}

// Concrete implementations
type MockDB struct {
	connected bool
}

func (m *MockDB) Connect() error {
	m.connected = true
	return nil
}

type SingletonDB struct{}

func (s *SingletonDB) Connect() error    { return nil }
func (s *SingletonDB) AutomapSingleton() {}

type AuditedCache struct{}

func (AuditedCache) Get(key string) any      { return nil }
func (AuditedCache) AutomapPolicyInjection() {}

type LegacyCache struct{}

func (LegacyCache) Get(key string) any { return nil }
func (LegacyCache) AutomapDoNotMap()   {}

type NamedCache struct{}

func (NamedCache) Get(key string) any { return nil }
func (NamedCache) MapAsName() string  { return "primary" }

// MemoryCache implements both Cache and Database.
type MemoryCache struct{}

func (*MemoryCache) Get(key string) any { return nil }
func (*MemoryCache) Connect() error     { return nil }

type HelloHandler struct{}

func (HelloHandler) AutomapMultimap() {}
func (HelloHandler) Handle() string   { return "hello" }

type GoodbyeHandler struct{}

func (GoodbyeHandler) AutomapMultimap() {}
func (GoodbyeHandler) Handle() string   { return "goodbye" }

type UserRepository struct{}

func (UserRepository) Find(id string) (string, error) { return id, nil }
