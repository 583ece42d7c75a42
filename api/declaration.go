package api

import "strings"

// TypeRef is a resolved reference to a type as it appears in a source
// signature. Names are fully qualified; array types carry a "[]" suffix.
type TypeRef struct {
	// Name is the fully-qualified type name, e.g. "java.util.List".
	Name string
	// Primitive is true for int, boolean, void and friends.
	Primitive bool
	// Abstract is true for abstract classes and interfaces.
	Abstract bool
	// Enum is true for enum types.
	Enum bool
	// Supertypes is the known assignability closure of this type, as far
	// as the front-end could resolve it (built-in families plus local
	// extends/implements clauses).
	Supertypes []string
	// TypeArguments holds the generic arguments in declaration order.
	TypeArguments []TypeArgument
}

// TypeArgument is one generic argument of a parameterized type.
type TypeArgument struct {
	Name string
	Type *TypeRef
}

// IsAssignable reports whether the type is assignable to the named type.
func (t *TypeRef) IsAssignable(fqName string) bool {
	if t == nil {
		return false
	}
	if t.Name == fqName {
		return true
	}
	for _, s := range t.Supertypes {
		if s == fqName {
			return true
		}
	}
	return false
}

// IsArray reports whether the reference names an array type.
func (t *TypeRef) IsArray() bool {
	return t != nil && strings.HasSuffix(t.Name, "[]")
}

// ClassDecl is a class, interface, enum or record declaration.
type ClassDecl struct {
	// Name is the fully-qualified name of the declaration.
	Name string
	// Package is the declaring package, empty for the default package.
	Package  string
	Abstract bool
	Enum     bool
	Markers  Markers

	Methods      []*MethodDecl
	Constructors []*ConstructorDecl
}

// MethodDecl is a method declaration within a class.
type MethodDecl struct {
	Name       string
	Declaring  *ClassDecl
	ReturnType *TypeRef
	Parameters []*ParameterDecl
	Markers    Markers
}

// ConstructorDecl is a constructor declaration within a class.
type ConstructorDecl struct {
	Declaring  *ClassDecl
	Parameters []*ParameterDecl
	Markers    Markers
}

// ParameterDecl is a single formal parameter.
type ParameterDecl struct {
	Name string
	Type *TypeRef
}
