package automap

import "reflect"

// DiscoverMappings pairs each concrete type with every candidate interface it
// implements. A concrete that only implements an interface through its pointer
// is mapped as that pointer type. Types excluded by cfg are skipped.
//
// Mappings are returned in concrete order, then interface order. Returns
// DuplicateMappingError if an interface that is not a multimap receives more
// than one concrete.
func DiscoverMappings(cfg *Config, interfaces, concretes []reflect.Type) ([]TypeMapping, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	for _, iface := range interfaces {
		if iface == nil || iface.Kind() != reflect.Interface {
			return nil, &InvalidArgumentError{Argument: "interfaces", Reason: TypeName(iface) + " is not an interface"}
		}
	}

	var mappings []TypeMapping
	found := make(map[reflect.Type][]string, len(interfaces))
	for _, concrete := range concretes {
		if concrete == nil {
			return nil, &InvalidArgumentError{Argument: "concretes", Reason: "type is nil"}
		}
		if concrete.Kind() == reflect.Interface || !cfg.IsMappable(concrete) {
			continue
		}
		for _, iface := range interfaces {
			if !cfg.IsMappable(iface) {
				continue
			}
			to, ok := implementation(iface, concrete)
			if !ok {
				continue
			}
			mappings = append(mappings, TypeMapping{From: iface, To: to})
			found[iface] = append(found[iface], TypeName(to))
		}
	}

	for _, iface := range interfaces {
		if len(found[iface]) > 1 && !cfg.IsMultimap(iface) {
			return nil, &DuplicateMappingError{Interface: TypeName(iface), Concretes: found[iface]}
		}
	}
	return mappings, nil
}

func implementation(iface, concrete reflect.Type) (reflect.Type, bool) {
	if concrete.Implements(iface) {
		return concrete, true
	}
	if concrete.Kind() != reflect.Pointer {
		if ptr := reflect.PointerTo(concrete); ptr.Implements(iface) {
			return ptr, true
		}
	}
	return nil, false
}
