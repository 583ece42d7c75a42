package javasrc

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/sChintamani/reflectcfg/api"
)

// typeRef converts a type node from a signature into a TypeRef.
func (u *unit) typeRef(n *sitter.Node) *api.TypeRef {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "void_type", "integral_type", "floating_point_type", "boolean_type":
		return &api.TypeRef{Name: n.Content(u.src), Primitive: true}
	case "generic_type":
		return u.genericRef(n)
	case "array_type":
		elem := u.typeRef(n.ChildByFieldName("element"))
		if elem == nil {
			return nil
		}
		return &api.TypeRef{Name: elem.Name + "[]"}
	case "type_identifier", "scoped_type_identifier":
		return u.makeRef(u.res.resolve(n.Content(u.src)))
	default:
		return u.makeRef(u.res.resolve(n.Content(u.src)))
	}
}

func (u *unit) genericRef(n *sitter.Node) *api.TypeRef {
	var ref *api.TypeRef
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		switch c.Type() {
		case "type_identifier", "scoped_type_identifier":
			ref = u.makeRef(u.res.resolve(c.Content(u.src)))
		case "type_arguments":
			if ref == nil {
				continue
			}
			for j := 0; j < int(c.NamedChildCount()); j++ {
				arg := c.NamedChild(j)
				if arg.Type() == "wildcard" {
					continue
				}
				if t := u.typeRef(arg); t != nil {
					ref.TypeArguments = append(ref.TypeArguments, api.TypeArgument{
						Name: fmt.Sprintf("arg%d", len(ref.TypeArguments)),
						Type: t,
					})
				}
			}
		}
	}
	return ref
}

// makeRef builds a reference for a resolved name, attaching what the
// unit knows about it: flags of same-file declarations, or the built-in
// wrapper family closure.
func (u *unit) makeRef(fq string) *api.TypeRef {
	ref := &api.TypeRef{Name: fq}
	if info, ok := u.locals[fq]; ok {
		ref.Abstract = info.abstract
		ref.Enum = info.enum
		ref.Supertypes = info.supertypes
		return ref
	}
	if supers, ok := builtinSupertypes[fq]; ok {
		ref.Supertypes = supers
	}
	return ref
}

// baseTypeName returns the raw name of a supertype clause entry,
// dropping generic arguments.
func (u *unit) baseTypeName(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	if n.Type() == "generic_type" {
		for i := 0; i < int(n.NamedChildCount()); i++ {
			c := n.NamedChild(i)
			if c.Type() == "type_identifier" || c.Type() == "scoped_type_identifier" {
				return c.Content(u.src)
			}
		}
	}
	return n.Content(u.src)
}
