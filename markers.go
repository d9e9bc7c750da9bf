package automap

import "reflect"

// Marker interfaces let a type opt into configuration by declaring an empty method.
//
//	type auditLog struct{}
//
//	func (auditLog) AutomapSingleton() {}
type (
	// Singleton marks a concrete type for LifetimeSingleton.
	Singleton interface{ AutomapSingleton() }
	// PolicyInjected marks a concrete type for the policy injection behavior.
	PolicyInjected interface{ AutomapPolicyInjection() }
	// DoNotMap excludes a type from automapping.
	DoNotMap interface{ AutomapDoNotMap() }
	// Multimap marks an interface as accepting several concrete mappings.
	// Embed it in the interface declaration.
	Multimap interface{ AutomapMultimap() }
	// NamedMapper gives a concrete type an explicit binding name.
	NamedMapper interface{ MapAsName() string }
)

var (
	singletonMarker      = TypeOf[Singleton]()
	policyInjectedMarker = TypeOf[PolicyInjected]()
	doNotMapMarker       = TypeOf[DoNotMap]()
	multimapMarker       = TypeOf[Multimap]()
	namedMapperMarker    = TypeOf[NamedMapper]()
)

// ConfigFromTypes builds a configuration from the marker interfaces implemented
// by types or by pointers to them.
func ConfigFromTypes(types ...reflect.Type) (*Config, error) {
	b := NewConfigBuilder()
	for _, t := range types {
		if t == nil {
			return nil, &InvalidArgumentError{Argument: "types", Reason: "type is nil"}
		}
		if hasMarker(t, doNotMapMarker) {
			b.DoNotMap(t)
		}
		if hasMarker(t, singletonMarker) {
			b.MapAsSingleton(t)
		}
		if hasMarker(t, policyInjectedMarker) {
			b.UsePolicyInjection(t)
		}
		if hasMarker(t, multimapMarker) {
			b.UseMultimapping(t)
		}
		if name, ok := mapAsName(t); ok {
			b.UseNamedMapping(t, name)
		}
	}
	return b.Build()
}

func hasMarker(t, marker reflect.Type) bool {
	if t.Implements(marker) {
		return true
	}
	return t.Kind() != reflect.Interface && t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(marker)
}

// mapAsName calls MapAsName on a zero value of t.
func mapAsName(t reflect.Type) (string, bool) {
	if t.Kind() == reflect.Interface {
		return "", false
	}
	var v reflect.Value
	switch {
	case t.Implements(namedMapperMarker):
		if t.Kind() == reflect.Pointer {
			v = reflect.New(t.Elem())
		} else {
			v = reflect.Zero(t)
		}
	case t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(namedMapperMarker):
		v = reflect.New(t)
	default:
		return "", false
	}
	name := v.Interface().(NamedMapper).MapAsName()
	return name, name != ""
}
