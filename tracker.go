package automap

import "reflect"

// RegistrationTracker captures the bindings of a container at construction
// and reports the bindings added since.
type RegistrationTracker struct {
	target  Container
	initial []Registration
	seen    map[registrationKey]struct{}
}

// registrationKey is the identity of a binding for diffing. The mapped-to type
// is not part of it: rebinding an existing (type, name) pair to another target
// is not reported as new.
type registrationKey struct {
	registered reflect.Type
	name       string
}

func keyOf(r Registration) registrationKey {
	return registrationKey{registered: r.RegisteredType, name: r.Name}
}

// NewRegistrationTracker snapshots the current bindings of target.
// Returns the container's error if its bindings cannot be listed.
func NewRegistrationTracker(target Container) (*RegistrationTracker, error) {
	if target == nil {
		return nil, &InvalidArgumentError{Argument: "target", Reason: "container is nil"}
	}
	current, err := target.ListBindings()
	if err != nil {
		return nil, containerError("list bindings", "", err)
	}

	initial := make([]Registration, len(current))
	copy(initial, current)

	seen := make(map[registrationKey]struct{}, len(initial))
	for _, r := range initial {
		seen[keyOf(r)] = struct{}{}
	}
	return &RegistrationTracker{target: target, initial: initial, seen: seen}, nil
}

// InitialRegistrations returns a copy of the snapshot taken at construction.
func (t *RegistrationTracker) InitialRegistrations() []Registration {
	out := make([]Registration, len(t.initial))
	copy(out, t.initial)
	return out
}

// NewRegistrations lists the container again and returns every binding whose
// (RegisteredType, Name) pair was absent from the snapshot, in listing order.
func (t *RegistrationTracker) NewRegistrations() ([]Registration, error) {
	current, err := t.target.ListBindings()
	if err != nil {
		return nil, containerError("list bindings", "", err)
	}

	added := make([]Registration, 0)
	emitted := make(map[registrationKey]struct{})
	for _, r := range current {
		key := keyOf(r)
		if _, existed := t.seen[key]; existed {
			continue
		}
		if _, dup := emitted[key]; dup {
			continue
		}
		emitted[key] = struct{}{}
		added = append(added, r)
	}
	return added, nil
}
