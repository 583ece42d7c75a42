package emit

import (
	"io"
	"path"

	"github.com/charmbracelet/log"
	"github.com/go-git/go-billy/v5"
)

// MetaInfWriter creates files under the META-INF directory of a build's
// resource output tree. Backed by a billy filesystem so emission runs
// against a real directory in the CLI and an in-memory one in tests.
type MetaInfWriter struct {
	FS  billy.Filesystem
	Log *log.Logger
}

// CreateMetaInfFile implements FileCreator. Parent directories are
// created by the filesystem on demand.
func (w *MetaInfWriter) CreateMetaInfFile(rel string) (io.WriteCloser, error) {
	return w.FS.Create(path.Join("META-INF", rel))
}

// Infof implements FileCreator.
func (w *MetaInfWriter) Infof(format string, args ...any) {
	if w.Log != nil {
		w.Log.Infof(format, args...)
	}
}
