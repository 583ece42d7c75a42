// Package classify decides which types need reflective metadata preserved
// by the native-image build, based on the markers a declaration carries
// and the signatures of externally reachable methods.
package classify

import (
	"github.com/sChintamani/reflectcfg/api"
	"github.com/sChintamani/reflectcfg/internal/collect"
)

// Collector applies the classification policy to declarations, writing
// facts into an accumulator. Only the root collector of a pass performs
// accumulation; derived collectors exist so the visitor can be composed
// without emitting duplicate facts.
type Collector struct {
	acc  *collect.Accumulator
	root bool
}

// NewCollector returns the root collector for a pass.
func NewCollector(acc *collect.Accumulator) *Collector {
	return &Collector{acc: acc, root: true}
}

// NewDerivedCollector returns a collector that visits but never
// accumulates. Composed visitors use it to avoid double emission.
func NewDerivedCollector(acc *collect.Accumulator) *Collector {
	return &Collector{acc: acc, root: false}
}

// VisitClass classifies a class declaration by its markers.
func (c *Collector) VisitClass(el *api.ClassDecl) {
	if !c.root || el == nil || el.Markers.Deprecated {
		return
	}
	switch {
	case el.Markers.Introspected != nil:
		c.acc.AddPackage(el.Package)
		c.acc.AddBean(el.Name)
		for _, name := range el.Markers.Introspected.Classes {
			c.addFact(name, api.AccessAll)
		}
	case el.Markers.TypeHint != nil:
		hint := el.Markers.TypeHint
		c.acc.AddPackage(el.Package)
		for _, name := range hint.Types {
			c.addFact(name, hint.Access)
		}
		for _, name := range hint.TypeNames {
			c.addFact(name, hint.Access)
		}
	}
}

// VisitMethod expands the signature of an entry-point method into facts.
func (c *Collector) VisitMethod(el *api.MethodDecl) {
	if !c.root || el == nil || el.Markers.Deprecated {
		return
	}
	if !el.Markers.EntryPoint {
		return
	}
	seen := make(map[string]struct{})
	c.reflectOnType(el.ReturnType, seen)
	for _, p := range el.Parameters {
		c.reflectOnType(p.Type, seen)
	}
}

// VisitConstructor records the declaring type of a creator constructor.
func (c *Collector) VisitConstructor(el *api.ConstructorDecl) {
	if !c.root || el == nil || el.Markers.Deprecated {
		return
	}
	if el.Markers.Creator && el.Declaring != nil {
		c.acc.AddPackage(el.Declaring.Package)
		c.acc.AddBean(el.Declaring.Name)
	}
}

// addFact routes a listed name into the set matching the hinted access
// type. Array names keep their own category so the emitter can rewrite
// them into descriptor syntax.
func (c *Collector) addFact(name string, access api.AccessType) {
	if name == "" {
		return
	}
	if isArrayName(name) {
		c.acc.AddArray(name)
		return
	}
	if access == api.AccessClassLoading {
		c.acc.AddClass(name)
	} else {
		c.acc.AddBean(name)
	}
}

func isArrayName(name string) bool {
	return len(name) > 2 && name[len(name)-2:] == "[]"
}
