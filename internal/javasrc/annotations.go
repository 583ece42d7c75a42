package javasrc

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/sChintamani/reflectcfg/api"
)

// markers builds the typed marker view of a declaration's annotations.
func (u *unit) markers(decl *sitter.Node) api.Markers {
	var m api.Markers
	mods := u.modifiersNode(decl)
	if mods == nil {
		return m
	}
	for i := 0; i < int(mods.ChildCount()); i++ {
		ann := mods.Child(i)
		if ann.Type() != "annotation" && ann.Type() != "marker_annotation" {
			continue
		}
		name := ""
		if nameNode := ann.ChildByFieldName("name"); nameNode != nil {
			name = nameNode.Content(u.src)
		}
		args := ann.ChildByFieldName("arguments")

		switch simpleName(name) {
		case "Deprecated":
			m.Deprecated = true
		case "Introspected":
			m.Introspected = &api.IntrospectedMarker{
				Classes: u.classList(u.argValue(args, "classes")),
			}
		case "TypeHint":
			m.TypeHint = u.typeHint(args)
		case "Creator":
			m.Creator = true
		default:
			if _, ok := u.entryPoints[simpleName(name)]; ok {
				m.EntryPoint = true
			}
		}
	}
	return m
}

func (u *unit) typeHint(args *sitter.Node) *api.TypeHintMarker {
	hint := &api.TypeHintMarker{
		Types:     u.classList(u.argValue(args, "value")),
		TypeNames: u.stringList(u.argValue(args, "typeNames")),
	}
	if access := u.argValue(args, "accessType"); access != nil {
		if strings.Contains(access.Content(u.src), "CLASS_LOADING") {
			hint.Access = api.AccessClassLoading
		}
	}
	return hint
}

// argValue finds the value for a named annotation attribute. A bare
// value (no key) belongs to the "value" attribute.
func (u *unit) argValue(args *sitter.Node, key string) *sitter.Node {
	if args == nil {
		return nil
	}
	for i := 0; i < int(args.NamedChildCount()); i++ {
		c := args.NamedChild(i)
		if c.Type() == "element_value_pair" {
			k := c.ChildByFieldName("key")
			if k != nil && k.Content(u.src) == key {
				return c.ChildByFieldName("value")
			}
			continue
		}
		if key == "value" {
			return c
		}
	}
	return nil
}

// elementValues flattens an annotation value into its element list.
func (u *unit) elementValues(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	if n.Type() == "element_value_array_initializer" {
		var out []*sitter.Node
		for i := 0; i < int(n.NamedChildCount()); i++ {
			out = append(out, n.NamedChild(i))
		}
		return out
	}
	return []*sitter.Node{n}
}

// classList resolves class-literal values (Foo.class) into names.
func (u *unit) classList(n *sitter.Node) []string {
	var out []string
	for _, v := range u.elementValues(n) {
		text := v.Content(u.src)
		if !strings.HasSuffix(text, ".class") {
			continue
		}
		out = append(out, u.res.resolve(strings.TrimSuffix(text, ".class")))
	}
	return out
}

// stringList extracts string-literal values. Type-name strings are
// already fully qualified by convention.
func (u *unit) stringList(n *sitter.Node) []string {
	var out []string
	for _, v := range u.elementValues(n) {
		if v.Type() != "string_literal" {
			continue
		}
		out = append(out, unquote(v.Content(u.src)))
	}
	return out
}

// unquote decodes a quoted literal including its escapes. Java and Go
// share the escape forms a type-name string would carry, so a literal
// strconv rejects falls back to bare quote stripping.
func unquote(text string) string {
	if s, err := strconv.Unquote(text); err == nil {
		return s
	}
	return strings.Trim(text, `"`)
}

func simpleName(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}
