package classify

import (
	"strings"

	"github.com/sChintamani/reflectcfg/api"
)

// Wrapper roots: container shapes that themselves need no reflective
// construction, though their generic arguments usually do.
var wrapperRoots = []string{
	"java.lang.Iterable",
	"org.reactivestreams.Publisher",
	"java.util.Map",
	"java.util.Optional",
	"java.util.concurrent.Future",
}

// reflectOnType walks a signature type, recording every concrete bean
// shape it contains. The seen set guards against recursive generic
// definitions (e.g. Node<T extends Node<T>>), which would otherwise
// recurse forever.
func (c *Collector) reflectOnType(t *api.TypeRef, seen map[string]struct{}) {
	if t == nil || t.Primitive || t.Abstract || t.Enum || strings.HasPrefix(t.Name, "java.lang") {
		return
	}
	if _, ok := seen[t.Name]; ok {
		return
	}
	seen[t.Name] = struct{}{}

	if !isWrapper(t) {
		if t.IsArray() {
			c.acc.AddArray(t.Name)
		} else {
			c.acc.AddBean(t.Name)
		}
	}
	for _, arg := range t.TypeArguments {
		c.reflectOnType(arg.Type, seen)
	}
}

func isWrapper(t *api.TypeRef) bool {
	for _, root := range wrapperRoots {
		if t.IsAssignable(root) {
			return true
		}
	}
	return false
}
