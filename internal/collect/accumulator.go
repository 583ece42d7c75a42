// Package collect holds the facts discovered during one build pass.
package collect

// Accumulator gathers the type facts and package observations of a single
// build pass. Insertion order is preserved: the path resolver breaks ties
// on first-seen packages and the emitter appends entries in discovery
// order. A name lives in at most one category; full reflective access
// dominates class-loading access, so AddBean promotes and AddClass yields.
//
// Not safe for concurrent use. The pass driver visits declarations
// sequentially; a parallel driver must merge per-worker accumulators via
// Merge instead of sharing one.
type Accumulator struct {
	packages orderedSet
	beans    orderedSet
	classes  orderedSet
	arrays   orderedSet
}

// New returns an empty accumulator.
func New() *Accumulator {
	return &Accumulator{}
}

// AddPackage records an observed package name. Empty names (default
// package) are ignored.
func (a *Accumulator) AddPackage(name string) {
	if name == "" {
		return
	}
	a.packages.add(name)
}

// AddBean records a type needing full reflective access. A name
// previously held as class-load-only is promoted.
func (a *Accumulator) AddBean(name string) {
	if name == "" {
		return
	}
	a.classes.remove(name)
	a.beans.add(name)
}

// AddClass records a type needing class-loading access only. Names
// already held as beans keep their stronger category.
func (a *Accumulator) AddClass(name string) {
	if name == "" || a.beans.has(name) {
		return
	}
	a.classes.add(name)
}

// AddArray records an array type needing reflective instantiation. The
// name keeps its source-level "[]" suffix; the emitter rewrites it into
// descriptor syntax.
func (a *Accumulator) AddArray(name string) {
	if name == "" {
		return
	}
	a.arrays.add(name)
}

// Packages returns the observed package names in first-seen order.
func (a *Accumulator) Packages() []string { return a.packages.values() }

// Beans returns the full-reflective type names in first-seen order.
func (a *Accumulator) Beans() []string { return a.beans.values() }

// Classes returns the class-load-only type names in first-seen order.
func (a *Accumulator) Classes() []string { return a.classes.values() }

// Arrays returns the array type names in first-seen order.
func (a *Accumulator) Arrays() []string { return a.arrays.values() }

// Empty reports whether no facts were discovered. Package observations
// alone do not count: with no facts there is nothing to emit.
func (a *Accumulator) Empty() bool {
	return len(a.beans.order) == 0 && len(a.classes.order) == 0 && len(a.arrays.order) == 0
}

// Merge folds another accumulator into this one, preserving the other's
// insertion order and re-applying the category dominance rules.
func (a *Accumulator) Merge(other *Accumulator) {
	if other == nil {
		return
	}
	for _, p := range other.packages.order {
		a.AddPackage(p)
	}
	for _, c := range other.classes.order {
		a.AddClass(c)
	}
	for _, n := range other.arrays.order {
		a.AddArray(n)
	}
	for _, b := range other.beans.order {
		a.AddBean(b)
	}
}

// Reset clears all sets. Called unconditionally at the end of a pass so
// no state leaks into the next one.
func (a *Accumulator) Reset() {
	a.packages = orderedSet{}
	a.beans = orderedSet{}
	a.classes = orderedSet{}
	a.arrays = orderedSet{}
}

// orderedSet is a string set that remembers insertion order.
type orderedSet struct {
	order []string
	index map[string]int
}

func (s *orderedSet) add(v string) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if _, ok := s.index[v]; ok {
		return
	}
	s.index[v] = len(s.order)
	s.order = append(s.order, v)
}

func (s *orderedSet) has(v string) bool {
	_, ok := s.index[v]
	return ok
}

func (s *orderedSet) remove(v string) {
	i, ok := s.index[v]
	if !ok {
		return
	}
	delete(s.index, v)
	s.order = append(s.order[:i], s.order[i+1:]...)
	for j := i; j < len(s.order); j++ {
		s.index[s.order[j]] = j
	}
}

func (s *orderedSet) values() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
