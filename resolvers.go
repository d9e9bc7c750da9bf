package automap

// PolicyInjectionBehaviorName identifies the policy injection behavior and its extension.
const PolicyInjectionBehaviorName = "policy-injection"

// PolicyInjectionBehavior applies the interception pipeline to resolved instances.
type PolicyInjectionBehavior struct{}

func (PolicyInjectionBehavior) Name() string { return PolicyInjectionBehaviorName }

// InterceptionExtension enables interception behaviors on a container.
type InterceptionExtension struct{}

func (InterceptionExtension) Name() string { return PolicyInjectionBehaviorName }

// ConfigNameResolver names a mapping after its explicit named mapping, or
// after the fully-qualified name of the target type.
type ConfigNameResolver struct {
	Config *Config
}

func (r ConfigNameResolver) ResolveName(mapping TypeMapping) string {
	if name, ok := r.Config.NamedMapping(mapping.To); ok {
		return name
	}
	return TypeName(mapping.To)
}

// ConfigLifetimeResolver returns LifetimeSingleton for targets marked as singletons.
type ConfigLifetimeResolver struct {
	Config *Config
}

func (r ConfigLifetimeResolver) ResolveLifetime(mapping TypeMapping) Lifetime {
	if r.Config.IsSingleton(mapping.To) {
		return LifetimeSingleton
	}
	return LifetimeTransient
}

// ConfigBehaviorFactory attaches the policy injection behavior to targets marked for it.
type ConfigBehaviorFactory struct {
	Config *Config
}

func (f ConfigBehaviorFactory) CreateBehaviors(mapping TypeMapping) []Behavior {
	if f.Config.IsPolicyInjection(mapping.To) {
		return []Behavior{PolicyInjectionBehavior{}}
	}
	return nil
}
