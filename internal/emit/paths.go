package emit

import "strings"

// reservedPrefix is the top-level namespace whose modules are emitted
// under a shared group segment.
const reservedPrefix = "io.micronaut"

// defaultRoot applies when a pass observed no packages at all.
const defaultRoot = "io.micronaut"

// ResolvePath derives the (group, module) output segments from the
// packages observed during a pass. The shortest package name wins, ties
// going to the first one seen.
func ResolvePath(packages []string) (group, module string) {
	base := defaultRoot
	if len(packages) > 0 {
		base = shortest(packages)
	}

	if strings.HasPrefix(base, reservedPrefix+".") {
		module = strings.ReplaceAll(base[len(reservedPrefix)+1:], ".", "-")
		return reservedPrefix, module
	}
	if i := strings.LastIndex(base, "."); i >= 0 {
		return base[:i], base[i+1:]
	}
	return base, base
}

func shortest(packages []string) string {
	best := packages[0]
	for _, p := range packages[1:] {
		if len(p) < len(best) {
			best = p
		}
	}
	return best
}
