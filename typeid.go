package opana

import "reflect"

// TypeID is a process-wide unique identifier of a concrete analysis type.
// It is comparable, usable as a map key and obtainable without having a
// value of the type at hand.
type TypeID struct {
	rt reflect.Type
}

// TypeFor returns the identifier of type T.
func TypeFor[T any]() TypeID {
	return TypeID{rt: reflect.TypeFor[T]()}
}

// Name returns a short human-readable name of the identified type.
func (id TypeID) Name() string {
	if id.rt == nil {
		return "<no-type>"
	}
	return id.rt.String()
}

func (id TypeID) String() string { return id.Name() }
