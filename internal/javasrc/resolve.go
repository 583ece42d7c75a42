package javasrc

import "strings"

// builtinTypes maps well-known simple names to their fully-qualified
// names so unimported core types still resolve.
var builtinTypes = map[string]string{
	"Object":       "java.lang.Object",
	"String":       "java.lang.String",
	"CharSequence": "java.lang.CharSequence",
	"Integer":      "java.lang.Integer",
	"Long":         "java.lang.Long",
	"Short":        "java.lang.Short",
	"Byte":         "java.lang.Byte",
	"Double":       "java.lang.Double",
	"Float":        "java.lang.Float",
	"Boolean":      "java.lang.Boolean",
	"Character":    "java.lang.Character",
	"Number":       "java.lang.Number",
	"Void":         "java.lang.Void",
	"Iterable":     "java.lang.Iterable",

	"List":       "java.util.List",
	"Set":        "java.util.Set",
	"Collection": "java.util.Collection",
	"Map":        "java.util.Map",
	"Optional":   "java.util.Optional",
	"ArrayList":  "java.util.ArrayList",
	"LinkedList": "java.util.LinkedList",
	"HashSet":    "java.util.HashSet",
	"HashMap":    "java.util.HashMap",

	"Future":            "java.util.concurrent.Future",
	"CompletionStage":   "java.util.concurrent.CompletionStage",
	"CompletableFuture": "java.util.concurrent.CompletableFuture",

	"Publisher": "org.reactivestreams.Publisher",
	"Flux":      "reactor.core.publisher.Flux",
	"Mono":      "reactor.core.publisher.Mono",
	"Flowable":  "io.reactivex.Flowable",
}

// builtinSupertypes is the assignability closure of the built-in wrapper
// families, enough for the classifier's wrapper detection.
var builtinSupertypes = map[string][]string{
	"java.util.List":       {"java.util.Collection", "java.lang.Iterable"},
	"java.util.Set":        {"java.util.Collection", "java.lang.Iterable"},
	"java.util.Collection": {"java.lang.Iterable"},
	"java.util.ArrayList":  {"java.util.List", "java.util.Collection", "java.lang.Iterable"},
	"java.util.LinkedList": {"java.util.List", "java.util.Collection", "java.lang.Iterable"},
	"java.util.HashSet":    {"java.util.Set", "java.util.Collection", "java.lang.Iterable"},
	"java.util.HashMap":    {"java.util.Map"},

	"java.util.concurrent.CompletableFuture": {"java.util.concurrent.Future", "java.util.concurrent.CompletionStage"},

	"reactor.core.publisher.Flux": {"org.reactivestreams.Publisher"},
	"reactor.core.publisher.Mono": {"org.reactivestreams.Publisher"},
	"io.reactivex.Flowable":       {"org.reactivestreams.Publisher"},
}

// resolver turns simple names from one compilation unit into fully
// qualified ones using its package and single-type imports.
type resolver struct {
	pkg     string
	imports map[string]string // simple name -> fully qualified
}

func newResolver() *resolver {
	return &resolver{imports: make(map[string]string)}
}

func (r *resolver) addImport(fq string) {
	if strings.HasSuffix(fq, ".*") {
		return // on-demand imports cannot be resolved without a classpath
	}
	if i := strings.LastIndex(fq, "."); i >= 0 {
		r.imports[fq[i+1:]] = fq
	}
}

// resolve maps a source-level type name to a fully-qualified one. Names
// already carrying a separator are taken as written.
func (r *resolver) resolve(name string) string {
	if name == "" || strings.Contains(name, ".") {
		return name
	}
	if fq, ok := r.imports[name]; ok {
		return fq
	}
	if fq, ok := builtinTypes[name]; ok {
		return fq
	}
	if r.pkg != "" {
		return r.pkg + "." + name
	}
	return name
}
