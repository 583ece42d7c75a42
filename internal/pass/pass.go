// Package pass drives one build pass: walking the source tree, visiting
// every declaration, and emitting the merged configuration exactly once
// at the end.
package pass

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-git/go-billy/v5"

	"github.com/sChintamani/reflectcfg/internal/classify"
	"github.com/sChintamani/reflectcfg/internal/collect"
	"github.com/sChintamani/reflectcfg/internal/emit"
	"github.com/sChintamani/reflectcfg/internal/factcache"
	"github.com/sChintamani/reflectcfg/internal/javasrc"
)

// Options configures a pass.
type Options struct {
	// Source is the file or directory tree to analyze.
	Source string
	// ProjectRoot holds the conventional base document location.
	ProjectRoot string
	// Toolchain selects the base document directory, "graal" when empty.
	Toolchain string
	// Out is the build's resource output tree; emitted files land under
	// its META-INF directory.
	Out billy.Filesystem
	// CachePath enables the per-file fact cache when non-empty.
	CachePath string
	// ExtraEntryPoints adds annotation simple names treated as entry
	// points beyond the defaults.
	ExtraEntryPoints []string

	Log *charmlog.Logger
}

// Pass is a single build pass. It owns its accumulator: state never
// leaks between passes, and two passes never share one.
type Pass struct {
	opts    Options
	parser  *javasrc.Parser
	acc     *collect.Accumulator
	emitter *emit.Emitter
	cache   *factcache.Cache
	log     *charmlog.Logger
}

// New prepares a pass. Call Close when done to release the fact cache.
func New(opts Options) (*Pass, error) {
	log := opts.Log
	if log == nil {
		log = charmlog.Default()
	}
	p := &Pass{
		opts:   opts,
		parser: javasrc.NewParser(opts.ExtraEntryPoints...),
		acc:    collect.New(),
		emitter: &emit.Emitter{
			ProjectRoot: opts.ProjectRoot,
			Toolchain:   opts.Toolchain,
		},
		log: log,
	}
	if opts.CachePath != "" {
		cache, err := factcache.Open(opts.CachePath)
		if err != nil {
			return nil, err
		}
		p.cache = cache
	}
	return p, nil
}

// Close releases pass resources.
func (p *Pass) Close() error {
	if p.cache != nil {
		return p.cache.Close()
	}
	return nil
}

// Run executes the pass: every .java file under the source path is
// visited once, then the merged configuration is emitted. The
// accumulator is cleared afterwards whether or not the pass succeeded.
func (p *Pass) Run(ctx context.Context) error {
	defer p.acc.Reset()

	info, err := os.Stat(p.opts.Source)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	if info.IsDir() {
		err = filepath.Walk(p.opts.Source, func(path string, fi os.FileInfo, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if fi.IsDir() || filepath.Ext(path) != ".java" {
				return nil
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return p.visitFile(ctx, path, fi)
		})
	} else {
		err = p.visitFile(ctx, p.opts.Source, info)
	}
	if err != nil {
		return err
	}

	out := &emit.MetaInfWriter{FS: p.opts.Out, Log: p.log}
	if err := p.emitter.Emit(p.acc, out); err != nil {
		return fmt.Errorf("emit native-image metadata: %w", err)
	}
	return nil
}

// visitFile classifies one source file through a scratch accumulator so
// the result can be cached and merged as a unit.
func (p *Pass) visitFile(ctx context.Context, path string, fi os.FileInfo) error {
	fp := factcache.Fingerprint{
		Path:    path,
		Size:    fi.Size(),
		ModTime: fi.ModTime().UnixNano(),
	}
	if p.cache != nil {
		if cached, ok := p.cache.Lookup(fp); ok {
			p.log.Debug("replaying cached facts", "file", path)
			p.acc.Merge(cached)
			return nil
		}
	}

	decls, err := p.parser.ParseFile(ctx, path)
	if err != nil {
		return err
	}

	scratch := collect.New()
	collector := classify.NewCollector(scratch)
	for _, class := range decls {
		collector.VisitClass(class)
		for _, m := range class.Methods {
			collector.VisitMethod(m)
		}
		for _, c := range class.Constructors {
			collector.VisitConstructor(c)
		}
	}

	if p.cache != nil {
		if err := p.cache.Store(fp, scratch); err != nil {
			// a broken cache never fails the build
			p.log.Warn("fact cache store failed", "file", path, "err", err)
		}
	}
	p.acc.Merge(scratch)
	return nil
}
