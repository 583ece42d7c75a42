// Package emit merges the facts of a build pass with any hand-authored
// base configuration and writes the native-image metadata files.
package emit

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"

	"github.com/sChintamani/reflectcfg/internal/collect"
)

const (
	// ReflectionConfigName is the emitted configuration document.
	ReflectionConfigName = "reflection-config.json"
	// NativeImagePropertiesName is the companion properties file.
	NativeImagePropertiesName = "native-image.properties"

	propertiesDirective = "Args = -H:ReflectionConfigurationResources=${.}/reflection-config.json\n"

	nameKey                    = "name"
	allPublicMethodsKey        = "allPublicMethods"
	allDeclaredConstructorsKey = "allDeclaredConstructors"
)

// DefaultToolchain is the conventional directory under src/main holding
// the hand-authored base document.
const DefaultToolchain = "graal"

// FileCreator is the slice of the build-tool context the emitter needs:
// creating files inside the build's metadata output tree and reporting
// progress.
type FileCreator interface {
	// CreateMetaInfFile opens a file at the given path relative to the
	// META-INF output directory, creating parents as needed.
	CreateMetaInfFile(rel string) (io.WriteCloser, error)
	Infof(format string, args ...any)
}

// Emitter writes the merged configuration document once per pass.
type Emitter struct {
	// ProjectRoot is the directory holding src/main/<toolchain>/reflect.json.
	ProjectRoot string
	// Toolchain selects the base document directory, DefaultToolchain
	// when empty.
	Toolchain string
}

// BasePath returns the conventional location of the base document.
func (e *Emitter) BasePath() string {
	tc := e.Toolchain
	if tc == "" {
		tc = DefaultToolchain
	}
	return filepath.Join(e.ProjectRoot, "src", "main", tc, "reflect.json")
}

// Emit merges the accumulated facts with the base document and writes the
// configuration plus its companion properties file. A pass with no facts
// writes nothing. Both writes are fatal on failure: the configuration is
// useless without the properties file referencing it, and vice versa.
func (e *Emitter) Emit(acc *collect.Accumulator, out FileCreator) error {
	if acc.Empty() {
		return nil
	}

	doc, err := e.loadBase()
	if err != nil {
		return err
	}

	for _, name := range acc.Classes() {
		doc = append(doc, map[string]any{
			nameKey:                    name,
			allDeclaredConstructorsKey: true,
		})
	}
	for _, name := range acc.Arrays() {
		doc = append(doc, map[string]any{
			nameKey:                    arrayDescriptor(name),
			allDeclaredConstructorsKey: true,
		})
	}
	for _, name := range acc.Beans() {
		doc = append(doc, map[string]any{
			nameKey:                    name,
			allPublicMethodsKey:        true,
			allDeclaredConstructorsKey: true,
		})
	}

	group, module := ResolvePath(acc.Packages())
	dir := path.Join("native-image", group, module)

	propsPath := path.Join(dir, NativeImagePropertiesName)
	out.Infof("writing %s", propsPath)
	if err := writeFile(out, propsPath, []byte(propertiesDirective)); err != nil {
		return fmt.Errorf("write %s: %w", NativeImagePropertiesName, err)
	}

	configPath := path.Join(dir, ReflectionConfigName)
	out.Infof("writing %s", configPath)
	rendered := oj.JSON(doc, &ojg.Options{Indent: 2, Sort: true})
	if err := writeFile(out, configPath, []byte(rendered)); err != nil {
		return fmt.Errorf("write %s: %w", ReflectionConfigName, err)
	}
	return nil
}

// loadBase reads the hand-authored seed document if present. A base file
// that exists but does not parse as a list of entries is an authoring
// error and aborts the emission.
func (e *Emitter) loadBase() ([]any, error) {
	basePath := e.BasePath()
	content, err := os.ReadFile(basePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read base %s: %w", basePath, err)
	}
	parsed, err := oj.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse base %s: %w", basePath, err)
	}
	doc, ok := parsed.([]any)
	if !ok {
		return nil, fmt.Errorf("parse base %s: expected a list of entries, got %T", basePath, parsed)
	}
	return doc, nil
}

func writeFile(out FileCreator, rel string, data []byte) error {
	f, err := out.CreateMetaInfFile(rel)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// arrayDescriptor rewrites a source-level array name like "com.example.Foo[]"
// into the JVM descriptor syntax "[Lcom.example.Foo;".
func arrayDescriptor(name string) string {
	return "[L" + name[:len(name)-2] + ";"
}
