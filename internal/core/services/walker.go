package services

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/sercha-tagger/internal/core/domain"
	"github.com/custodia-labs/sercha-tagger/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-tagger/internal/logger"
)

// progressInterval throttles the "Processed N documents" progress line.
const progressInterval = 2 * time.Second

// WalkerOption configures a Walker.
type WalkerOption func(*Walker)

// WithWorkers sets how many files are processed concurrently.
// Values below 2 keep processing sequential.
func WithWorkers(n int) WalkerOption {
	return func(w *Walker) {
		w.workers = n
	}
}

// WithRateLimit caps extraction at filesPerSecond. Zero disables the limit.
func WithRateLimit(filesPerSecond float64) WalkerOption {
	return func(w *Walker) {
		if filesPerSecond > 0 {
			w.limiter = rate.NewLimiter(rate.Limit(filesPerSecond), 1)
		} else {
			w.limiter = nil
		}
	}
}

// WithMetadataPatcher enables updating sibling metadata files after a
// document is produced.
func WithMetadataPatcher(p driven.MetadataPatcher) WalkerOption {
	return func(w *Walker) {
		w.patcher = p
	}
}

// Walker traverses a directory tree and tags every eligible file.
//
// Each file is isolated: a failure in any stage becomes an ErrorLog entry
// and the walk moves on. Each directory is isolated too: a fault while
// traversing it is recorded and the parent continues with its next entry.
// Documents gathered in a faulted subtree before the fault are kept, but the
// subtree may be incomplete, so the result is marked partial.
type Walker struct {
	registry driven.ExtractorRegistry
	tagger   *Tagger
	ids      driven.IDGenerator
	patcher  driven.MetadataPatcher
	limiter  *rate.Limiter
	workers  int

	readDir  func(name string) ([]os.DirEntry, error)
	readFile func(name string) ([]byte, error)
}

// NewWalker creates a walker.
func NewWalker(
	registry driven.ExtractorRegistry,
	tagger *Tagger,
	ids driven.IDGenerator,
	opts ...WalkerOption,
) *Walker {
	w := &Walker{
		registry: registry,
		tagger:   tagger,
		ids:      ids,
		workers:  1,
		readDir:  os.ReadDir,
		readFile: os.ReadFile,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Walk processes root and, when recursive, every subdirectory below it.
// Symbolic links to directories are not followed.
func (w *Walker) Walk(ctx context.Context, root string, recursive bool) *domain.WalkResult {
	acc := domain.NewAccumulator()
	w.WalkInto(ctx, acc, root, recursive)
	return acc.Result()
}

// WalkInto is Walk with a caller-owned accumulator.
func (w *Walker) WalkInto(ctx context.Context, acc *domain.Accumulator, root string, recursive bool) {
	run := &walkRun{
		walker:    w,
		acc:       acc,
		recursive: recursive,
		progress:  &rate.Sometimes{Interval: progressInterval},
	}
	if w.workers > 1 {
		run.group = &errgroup.Group{}
		run.group.SetLimit(w.workers)
	}

	run.walkDir(ctx, root)

	if run.group != nil {
		_ = run.group.Wait()
	}
	logger.Info("Processed %d documents (%d errors)", acc.Len(), acc.ErrorCount())
}

// walkRun holds the state of one Walk call.
type walkRun struct {
	walker    *Walker
	acc       *domain.Accumulator
	recursive bool
	group     *errgroup.Group
	progress  *rate.Sometimes
	stopOnce  sync.Once
}

// walkDir processes one directory. A fault anywhere in it is contained here.
func (r *walkRun) walkDir(ctx context.Context, dir string) {
	defer func() {
		if v := recover(); v != nil {
			logger.Error("Fault while processing %s: %v", dir, v)
			r.acc.Fail(&domain.FaultError{Path: dir, Value: v})
			r.acc.MarkPartial()
		}
	}()

	// ReadDir may return the entries it managed to read alongside the error.
	entries, err := r.walker.readDir(dir)
	if err != nil {
		r.acc.Fail(&domain.DirectoryReadError{Path: dir, Err: err})
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			r.stop(dir, err)
			return
		}

		path := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			if r.recursive {
				r.walkDir(ctx, path)
			}
			continue
		}

		if !isFileLike(entry.Type()) {
			continue
		}

		extractor, ok := r.walker.registry.Lookup(entry.Name())
		if !ok {
			continue
		}

		r.schedule(ctx, path, extractor)
	}
}

func (r *walkRun) schedule(ctx context.Context, path string, extractor driven.TextExtractor) {
	if r.group == nil {
		r.processFile(ctx, path, extractor)
		return
	}
	r.group.Go(func() error {
		r.processFile(ctx, path, extractor)
		return nil
	})
}

// processFile runs one file through extract, tag, id and insert.
func (r *walkRun) processFile(ctx context.Context, path string, extractor driven.TextExtractor) {
	defer func() {
		if v := recover(); v != nil {
			logger.Error("Fault while processing %s: %v", path, v)
			r.acc.Fail(&domain.FaultError{Path: path, Value: v})
		}
	}()

	if err := ctx.Err(); err != nil {
		r.stop(path, err)
		return
	}
	if r.walker.limiter != nil {
		if err := r.walker.limiter.Wait(ctx); err != nil {
			r.stop(path, err)
			return
		}
	}

	name := filepath.Base(path)

	content, err := r.walker.readFile(path)
	if err != nil {
		r.acc.Fail(&domain.DirectoryReadError{Path: path, Err: err})
		return
	}

	logger.Debug("%s Name: %s", extractor.Format(), name)

	text, err := extractor.Extract(ctx, name, content)
	if err != nil {
		var extractErr *domain.ExtractionError
		if !errors.As(err, &extractErr) {
			err = &domain.ExtractionError{Filename: name, Format: extractor.Format(), Err: err}
		}
		r.acc.Fail(err)
		return
	}

	doc, err := r.walker.tagger.Tag(ctx, path, text)
	if err != nil {
		r.acc.Fail(&domain.TaggingError{Path: path, Err: err})
		return
	}

	r.acc.Add(r.walker.ids.Generate(), doc)

	if r.walker.patcher != nil {
		if err := r.walker.patcher.Patch(ctx, path, doc.Keywords); err != nil {
			var metaErr *domain.MetadataError
			if !errors.As(err, &metaErr) {
				err = &domain.MetadataError{Path: path, Err: err}
			}
			r.acc.Fail(err)
		}
	}

	r.progress.Do(func() {
		logger.Info("Processed %d documents", r.acc.Len())
	})
}

// stop records the first cancellation of the run. Later ones are ignored.
func (r *walkRun) stop(path string, err error) {
	r.stopOnce.Do(func() {
		logger.Warn("Walk stopped at %s: %v", path, err)
		r.acc.Fail(&domain.FaultError{Path: path, Value: err})
		r.acc.MarkPartial()
	})
}

// isFileLike reports whether an entry may be read as a document.
// Symlinks are resolved by the read; anything else irregular is skipped.
func isFileLike(mode fs.FileMode) bool {
	return mode.IsRegular() || mode&fs.ModeSymlink != 0
}
