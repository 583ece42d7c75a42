package api

// AccessType describes how much runtime access a hinted type requires.
type AccessType int

const (
	// AccessAll requires full reflective access to public members and
	// constructors. This is the default when a hint does not say otherwise.
	AccessAll AccessType = iota
	// AccessClassLoading requires class-loading access only.
	AccessClassLoading
)

// Markers holds the typed view of the annotations attached to a
// declaration. The front-end populates it; the classifier only ever
// consumes typed fields, never raw annotation attributes.
type Markers struct {
	// Deprecated declarations contribute nothing, regardless of what
	// else they carry.
	Deprecated bool

	Introspected *IntrospectedMarker
	TypeHint     *TypeHintMarker

	// Creator marks a constructor as the reflective creation point of
	// its declaring type.
	Creator bool

	// EntryPoint marks a method as externally reachable, e.g. an HTTP
	// route handler.
	EntryPoint bool
}

// IntrospectedMarker corresponds to an introspection annotation on a class.
type IntrospectedMarker struct {
	// Classes lists additional fully-qualified names named by the
	// annotation, beyond the annotated class itself.
	Classes []string
}

// TypeHintMarker corresponds to a type-hint annotation on a class.
type TypeHintMarker struct {
	// Types are the class references listed on the hint.
	Types []string
	// TypeNames are the type-name strings listed on the hint.
	TypeNames []string
	// Access is the declared access type, AccessAll when unspecified.
	Access AccessType
}
