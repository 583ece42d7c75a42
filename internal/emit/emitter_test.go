package emit

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/ohler55/ojg/oj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sChintamani/reflectcfg/internal/collect"
)

func writeBase(t *testing.T, root, content string) {
	t.Helper()
	dir := filepath.Join(root, "src", "main", "graal")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "reflect.json"), []byte(content), 0o644))
}

func readOut(t *testing.T, w *MetaInfWriter, rel string) []byte {
	t.Helper()
	data, err := util.ReadFile(w.FS, filepath.Join("META-INF", rel))
	require.NoError(t, err)
	return data
}

func TestEmit_NothingToEmit(t *testing.T) {
	w := &MetaInfWriter{FS: memfs.New()}
	e := &Emitter{ProjectRoot: t.TempDir()}

	acc := collect.New()
	acc.AddPackage("com.example") // packages alone do not trigger emission
	require.NoError(t, e.Emit(acc, w))

	_, err := w.FS.Stat("META-INF")
	assert.True(t, os.IsNotExist(err))
}

func TestEmit_MergesWithBaseDocument(t *testing.T) {
	root := t.TempDir()
	writeBase(t, root, `[{"name":"com.example.Seed","allPublicMethods":true}]`)

	acc := collect.New()
	acc.AddPackage("com.example.app")
	acc.AddBean("com.example.First")
	acc.AddBean("com.example.Second")

	w := &MetaInfWriter{FS: memfs.New()}
	e := &Emitter{ProjectRoot: root}
	require.NoError(t, e.Emit(acc, w))

	data := readOut(t, w, "native-image/com.example/app/reflection-config.json")
	parsed, err := oj.Parse(data)
	require.NoError(t, err)
	doc, ok := parsed.([]any)
	require.True(t, ok)
	require.Len(t, doc, 3)

	seed := doc[0].(map[string]any)
	assert.Equal(t, "com.example.Seed", seed["name"])

	for _, entry := range doc[1:] {
		m := entry.(map[string]any)
		assert.Equal(t, true, m["allPublicMethods"])
		assert.Equal(t, true, m["allDeclaredConstructors"])
	}
	assert.Equal(t, "com.example.First", doc[1].(map[string]any)["name"])
	assert.Equal(t, "com.example.Second", doc[2].(map[string]any)["name"])
}

func TestEmit_EntryShapesPerCategory(t *testing.T) {
	acc := collect.New()
	acc.AddPackage("com.example.app")
	acc.AddClass("com.example.Loaded")
	acc.AddArray("com.example.Buf[]")
	acc.AddBean("com.example.Bean")

	w := &MetaInfWriter{FS: memfs.New()}
	e := &Emitter{ProjectRoot: t.TempDir()}
	require.NoError(t, e.Emit(acc, w))

	data := readOut(t, w, "native-image/com.example/app/reflection-config.json")
	parsed, err := oj.Parse(data)
	require.NoError(t, err)
	doc := parsed.([]any)
	require.Len(t, doc, 3)

	loaded := doc[0].(map[string]any)
	assert.Equal(t, "com.example.Loaded", loaded["name"])
	assert.Equal(t, true, loaded["allDeclaredConstructors"])
	assert.NotContains(t, loaded, "allPublicMethods")

	arr := doc[1].(map[string]any)
	assert.Equal(t, "[Lcom.example.Buf;", arr["name"])
	assert.Equal(t, true, arr["allDeclaredConstructors"])
	assert.NotContains(t, arr, "allPublicMethods")

	bean := doc[2].(map[string]any)
	assert.Equal(t, "com.example.Bean", bean["name"])
	assert.Equal(t, true, bean["allPublicMethods"])
	assert.Equal(t, true, bean["allDeclaredConstructors"])
}

func TestEmit_PropertiesFile(t *testing.T) {
	acc := collect.New()
	acc.AddPackage("io.micronaut.core")
	acc.AddBean("io.micronaut.core.Foo")

	w := &MetaInfWriter{FS: memfs.New()}
	e := &Emitter{ProjectRoot: t.TempDir()}
	require.NoError(t, e.Emit(acc, w))

	data := readOut(t, w, "native-image/io.micronaut/core/native-image.properties")
	assert.Equal(t, "Args = -H:ReflectionConfigurationResources=${.}/reflection-config.json\n", string(data))
}

func TestEmit_MalformedBaseIsFatal(t *testing.T) {
	root := t.TempDir()
	writeBase(t, root, `{"name": "not a list"`)

	acc := collect.New()
	acc.AddBean("com.example.Foo")

	w := &MetaInfWriter{FS: memfs.New()}
	e := &Emitter{ProjectRoot: root}
	err := e.Emit(acc, w)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse base")

	// no partial output
	_, statErr := w.FS.Stat("META-INF")
	assert.True(t, os.IsNotExist(statErr))
}

func TestEmit_BaseMustBeAList(t *testing.T) {
	root := t.TempDir()
	writeBase(t, root, `{"name": "an object, not a list"}`)

	acc := collect.New()
	acc.AddBean("com.example.Foo")

	e := &Emitter{ProjectRoot: root}
	err := e.Emit(acc, &MetaInfWriter{FS: memfs.New()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected a list")
}

// brokenCreator simulates output-tree failures: creation of one file, or
// every write to another.
type brokenCreator struct {
	failCreate string // rel path suffix whose create fails
	failWrite  string // rel path suffix whose writes fail
}

func (b *brokenCreator) CreateMetaInfFile(rel string) (io.WriteCloser, error) {
	if b.failCreate != "" && strings.HasSuffix(rel, b.failCreate) {
		return nil, errors.New("disk full")
	}
	if b.failWrite != "" && strings.HasSuffix(rel, b.failWrite) {
		return brokenFile{}, nil
	}
	return discardFile{}, nil
}

func (b *brokenCreator) Infof(string, ...any) {}

type discardFile struct{}

func (discardFile) Write(p []byte) (int, error) { return len(p), nil }
func (discardFile) Close() error                { return nil }

type brokenFile struct{}

func (brokenFile) Write([]byte) (int, error) { return 0, errors.New("disk full") }
func (brokenFile) Close() error              { return nil }

func TestEmit_FailedWritesAreFatal(t *testing.T) {
	newAcc := func() *collect.Accumulator {
		acc := collect.New()
		acc.AddPackage("com.example.app")
		acc.AddBean("com.example.Foo")
		return acc
	}

	t.Run("properties file", func(t *testing.T) {
		e := &Emitter{ProjectRoot: t.TempDir()}
		err := e.Emit(newAcc(), &brokenCreator{failCreate: NativeImagePropertiesName})
		require.Error(t, err)
		assert.Contains(t, err.Error(), NativeImagePropertiesName)
	})

	t.Run("configuration document", func(t *testing.T) {
		e := &Emitter{ProjectRoot: t.TempDir()}
		err := e.Emit(newAcc(), &brokenCreator{failWrite: ReflectionConfigName})
		require.Error(t, err)
		assert.Contains(t, err.Error(), ReflectionConfigName)
	})
}

func TestEmit_RoundTrip(t *testing.T) {
	acc := collect.New()
	acc.AddPackage("com.example.app")
	acc.AddBean("com.example.A")
	acc.AddClass("com.example.B")

	w := &MetaInfWriter{FS: memfs.New()}
	e := &Emitter{ProjectRoot: t.TempDir()}
	require.NoError(t, e.Emit(acc, w))

	data := readOut(t, w, "native-image/com.example/app/reflection-config.json")
	parsed, err := oj.Parse(data)
	require.NoError(t, err)

	names := map[string]bool{}
	for _, entry := range parsed.([]any) {
		names[entry.(map[string]any)["name"].(string)] = true
	}
	assert.Equal(t, map[string]bool{"com.example.A": true, "com.example.B": true}, names)
}

func TestEmitter_BasePathHonorsToolchain(t *testing.T) {
	e := &Emitter{ProjectRoot: "/proj", Toolchain: "svm"}
	assert.Equal(t, filepath.Join("/proj", "src", "main", "svm", "reflect.json"), e.BasePath())

	e = &Emitter{ProjectRoot: "/proj"}
	assert.Equal(t, filepath.Join("/proj", "src", "main", "graal", "reflect.json"), e.BasePath())
}
