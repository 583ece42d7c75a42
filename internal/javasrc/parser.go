// Package javasrc reads Java sources into the typed declaration model.
// It resolves what it can from a single compilation unit: imports, the
// declaring package, built-in wrapper families and types declared in the
// same file. Anything else keeps the name the source wrote.
package javasrc

import (
	"context"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"github.com/sChintamani/reflectcfg/api"
)

// DefaultEntryPointAnnotations are the annotation simple names that mark
// a method as externally reachable.
var DefaultEntryPointAnnotations = []string{
	"Get", "Post", "Put", "Delete", "Patch", "Options", "Head", "Trace", "EntryPoint",
}

// Parser turns Java source files into declaration lists.
type Parser struct {
	entryPoints map[string]struct{}
}

// NewParser returns a parser recognizing the default entry-point
// annotations plus any extra simple names given.
func NewParser(extraEntryPoints ...string) *Parser {
	eps := make(map[string]struct{})
	for _, n := range DefaultEntryPointAnnotations {
		eps[n] = struct{}{}
	}
	for _, n := range extraEntryPoints {
		if n != "" {
			eps[n] = struct{}{}
		}
	}
	return &Parser{entryPoints: eps}
}

// ParseFile parses one source file.
func (p *Parser) ParseFile(ctx context.Context, path string) ([]*api.ClassDecl, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	decls, err := p.Parse(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return decls, nil
}

// Parse parses one compilation unit.
func (p *Parser) Parse(ctx context.Context, src []byte) ([]*api.ClassDecl, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(java.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	u := &unit{
		src:         src,
		res:         newResolver(),
		locals:      make(map[string]localInfo),
		entryPoints: p.entryPoints,
	}

	root := tree.RootNode()
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		switch child.Type() {
		case "package_declaration":
			if name := child.NamedChild(0); name != nil {
				u.res.pkg = name.Content(src)
			}
		case "import_declaration":
			u.addImport(child)
		}
	}

	// first pass: record local type kinds so signature references to
	// them carry the right flags
	for i := 0; i < int(root.NamedChildCount()); i++ {
		u.collectLocal(root.NamedChild(i), "")
	}

	var decls []*api.ClassDecl
	for i := 0; i < int(root.NamedChildCount()); i++ {
		decls = append(decls, u.buildClasses(root.NamedChild(i), "")...)
	}
	return decls, nil
}

type localInfo struct {
	abstract   bool
	enum       bool
	supertypes []string
}

type unit struct {
	src         []byte
	res         *resolver
	locals      map[string]localInfo
	entryPoints map[string]struct{}
}

func (u *unit) addImport(n *sitter.Node) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c.Type() == "asterisk" {
			return // on-demand import, nothing to index
		}
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c.Type() == "scoped_identifier" || c.Type() == "identifier" {
			u.res.addImport(c.Content(u.src))
			return
		}
	}
}

func isTypeDecl(kind string) bool {
	switch kind {
	case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration":
		return true
	}
	return false
}

// collectLocal indexes a type declaration (and its nested types) before
// signatures referencing it are built.
func (u *unit) collectLocal(n *sitter.Node, outer string) {
	if n == nil || !isTypeDecl(n.Type()) {
		return
	}
	name := u.declName(n, outer)
	if name == "" {
		return
	}
	info := localInfo{
		abstract: n.Type() == "interface_declaration" || u.hasModifier(n, "abstract"),
		enum:     n.Type() == "enum_declaration",
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		switch c.Type() {
		case "superclass":
			for j := 0; j < int(c.NamedChildCount()); j++ {
				info.supertypes = append(info.supertypes, u.res.resolve(u.baseTypeName(c.NamedChild(j))))
			}
		case "super_interfaces", "extends_interfaces":
			if list := c.NamedChild(0); list != nil {
				for j := 0; j < int(list.NamedChildCount()); j++ {
					info.supertypes = append(info.supertypes, u.res.resolve(u.baseTypeName(list.NamedChild(j))))
				}
			}
		}
	}
	u.locals[name] = info

	if body := n.ChildByFieldName("body"); body != nil {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			u.collectLocal(body.NamedChild(i), name)
		}
	}
}

func (u *unit) declName(n *sitter.Node, outer string) string {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return ""
	}
	simple := nameNode.Content(u.src)
	if outer != "" {
		return outer + "." + simple
	}
	if u.res.pkg != "" {
		return u.res.pkg + "." + simple
	}
	return simple
}

// buildClasses builds a type declaration together with every type nested
// inside it, in declaration order. Nested classes carry markers of their
// own, so each becomes a declaration the visitor sees.
func (u *unit) buildClasses(n *sitter.Node, outer string) []*api.ClassDecl {
	decl := u.buildClass(n, outer)
	if decl == nil {
		return nil
	}
	out := []*api.ClassDecl{decl}
	if body := n.ChildByFieldName("body"); body != nil {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			member := body.NamedChild(i)
			if isTypeDecl(member.Type()) {
				out = append(out, u.buildClasses(member, decl.Name)...)
			}
		}
	}
	return out
}

func (u *unit) buildClass(n *sitter.Node, outer string) *api.ClassDecl {
	if n == nil || !isTypeDecl(n.Type()) {
		return nil
	}
	name := u.declName(n, outer)
	if name == "" {
		return nil
	}
	decl := &api.ClassDecl{
		Name:     name,
		Package:  u.res.pkg,
		Abstract: n.Type() == "interface_declaration" || u.hasModifier(n, "abstract"),
		Enum:     n.Type() == "enum_declaration",
		Markers:  u.markers(n),
	}

	body := n.ChildByFieldName("body")
	if body == nil {
		return decl
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)
		switch member.Type() {
		case "method_declaration":
			decl.Methods = append(decl.Methods, u.buildMethod(member, decl))
		case "constructor_declaration":
			decl.Constructors = append(decl.Constructors, u.buildConstructor(member, decl))
		}
	}
	return decl
}

func (u *unit) buildMethod(n *sitter.Node, declaring *api.ClassDecl) *api.MethodDecl {
	m := &api.MethodDecl{
		Declaring: declaring,
		Markers:   u.markers(n),
	}
	if nameNode := n.ChildByFieldName("name"); nameNode != nil {
		m.Name = nameNode.Content(u.src)
	}
	if ret := n.ChildByFieldName("type"); ret != nil {
		m.ReturnType = u.typeRef(ret)
	}
	m.Parameters = u.parameters(n)
	return m
}

func (u *unit) buildConstructor(n *sitter.Node, declaring *api.ClassDecl) *api.ConstructorDecl {
	return &api.ConstructorDecl{
		Declaring:  declaring,
		Markers:    u.markers(n),
		Parameters: u.parameters(n),
	}
}

func (u *unit) parameters(n *sitter.Node) []*api.ParameterDecl {
	params := n.ChildByFieldName("parameters")
	if params == nil {
		return nil
	}
	var out []*api.ParameterDecl
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		if p.Type() != "formal_parameter" && p.Type() != "spread_parameter" {
			continue
		}
		decl := &api.ParameterDecl{}
		if typeNode := p.ChildByFieldName("type"); typeNode != nil {
			decl.Type = u.typeRef(typeNode)
		}
		if nameNode := p.ChildByFieldName("name"); nameNode != nil {
			decl.Name = nameNode.Content(u.src)
		}
		out = append(out, decl)
	}
	return out
}

// hasModifier reports whether the declaration carries the given modifier
// keyword. Modifier keywords are anonymous children of the modifiers node.
func (u *unit) hasModifier(n *sitter.Node, keyword string) bool {
	mods := u.modifiersNode(n)
	if mods == nil {
		return false
	}
	for i := 0; i < int(mods.ChildCount()); i++ {
		if mods.Child(i).Type() == keyword {
			return true
		}
	}
	return false
}

func (u *unit) modifiersNode(n *sitter.Node) *sitter.Node {
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c.Type() == "modifiers" {
			return c
		}
	}
	return nil
}
