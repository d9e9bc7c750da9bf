package automap

import (
	"fmt"
	"reflect"
	"strings"
)

// TypeMapping associates a requested type with the concrete type that should
// be supplied for it. It is a comparable value and can be used as a map key.
type TypeMapping struct {
	From reflect.Type
	To   reflect.Type
}

// NewTypeMapping creates a mapping from one type to another.
// Returns InvalidArgumentError if either type is nil.
func NewTypeMapping(from, to reflect.Type) (TypeMapping, error) {
	if from == nil {
		return TypeMapping{}, &InvalidArgumentError{Argument: "from", Reason: "type is nil"}
	}
	if to == nil {
		return TypeMapping{}, &InvalidArgumentError{Argument: "to", Reason: "type is nil"}
	}
	return TypeMapping{From: from, To: to}, nil
}

// MappingOf is the generic shorthand for NewTypeMapping(TypeOf[F](), TypeOf[T]()).
func MappingOf[F, T any]() TypeMapping {
	return TypeMapping{From: TypeOf[F](), To: TypeOf[T]()}
}

func (m TypeMapping) String() string {
	return fmt.Sprintf("%s -> %s", TypeName(m.From), TypeName(m.To))
}

// TypeOf returns the reflect.Type of T. Unlike reflect.TypeOf it works for interface types.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// TypeName returns the fully-qualified name of t, e.g. "github.com/acme/repo.UserStore".
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if t.Kind() == reflect.Pointer && t.Name() == "" {
		return "*" + TypeName(t.Elem())
	}
	if t.Name() == "" || t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

// genericDefinition strips type arguments so that every instantiation of a
// generic type shares one key.
func genericDefinition(t reflect.Type) string {
	if t == nil {
		return ""
	}
	if t.Kind() == reflect.Pointer && t.Name() == "" {
		return "*" + genericDefinition(t.Elem())
	}
	name := TypeName(t)
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return name
}

// satisfies reports whether values of to can be handed out for from.
func satisfies(from, to reflect.Type) bool {
	if from.Kind() == reflect.Interface {
		return to.Implements(from)
	}
	return to.AssignableTo(from)
}
