// Package workspace finds Elixir sources under a root directory and parses
// them concurrently.
package workspace

import (
	"context"
	"io"
	"path"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/walteh/exsyntax/pkg/config"
	"github.com/walteh/exsyntax/pkg/diagnostic"
	"github.com/walteh/exsyntax/pkg/parser"
	"github.com/walteh/exsyntax/pkg/syntax"
)

// File is one parsed source file.
type File struct {
	// Path is slash separated and relative to the workspace root.
	Path        string
	Source      string
	Tree        *syntax.Tree
	Diagnostics []*diagnostic.Diagnostic
	// TabWidth is the display width of a tab for this file.
	TabWidth int
}

type Workspace struct {
	fs  afero.Fs
	cfg *config.Config
}

// New returns a workspace over the directory root of fs. All paths handed to
// and returned by the workspace are relative to root.
func New(fs afero.Fs, root string, cfg *config.Config) *Workspace {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Workspace{fs: afero.NewBasePathFs(fs, root), cfg: cfg.WithDefaults()}
}

// Discover expands patterns, or the configured includes when patterns is
// empty, and drops excluded paths. The result is sorted and deduplicated.
func (w *Workspace) Discover(ctx context.Context, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = w.cfg.Include
	}

	fsys := afero.NewIOFS(w.fs)
	seen := map[string]bool{}
	var out []string

	for _, pattern := range patterns {
		pattern = path.Clean(pattern)
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid pattern %q", pattern)
		}
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("globbing %q: %w", pattern, err)
		}
		for _, m := range matches {
			if seen[m] {
				continue
			}
			seen[m] = true
			excluded, err := w.excluded(m)
			if err != nil {
				return nil, err
			}
			if excluded {
				zerolog.Ctx(ctx).Debug().Str("file", m).Msg("excluded")
				continue
			}
			out = append(out, m)
		}
	}

	sort.Strings(out)
	return out, nil
}

func (w *Workspace) excluded(name string) (bool, error) {
	for _, ex := range w.cfg.Exclude {
		ok, err := doublestar.Match(ex, name)
		if err != nil {
			return false, errors.Errorf("matching exclude %q: %w", ex, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// ParseAll parses every path concurrently. Files that cannot be read are
// left out of the result and their errors are combined into the returned
// error; the other files are still returned, in input order.
func (w *Workspace) ParseAll(ctx context.Context, paths []string) ([]*File, error) {
	files := make([]*File, len(paths))
	opts := parser.Options{MaxDepth: w.cfg.MaxDepth}

	var mu sync.Mutex
	var errs error

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := w.parseFile(ctx, p, opts)
			if err != nil {
				mu.Lock()
				errs = multierr.Append(errs, err)
				mu.Unlock()
				return nil
			}
			files[i] = f
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errors.Errorf("parsing workspace: %w", err)
	}

	out := make([]*File, 0, len(files))
	for _, f := range files {
		if f != nil {
			out = append(out, f)
		}
	}
	return out, errs
}

func (w *Workspace) parseFile(ctx context.Context, name string, opts parser.Options) (*File, error) {
	start := time.Now()

	data, err := afero.ReadFile(w.fs, name)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", name, err)
	}

	src := string(data)
	tree := parser.ParseWithOptions(src, opts)
	f := &File{
		Path:        name,
		Source:      src,
		Tree:        tree,
		Diagnostics: diagnostic.FromTree(tree),
		TabWidth:    w.tabWidth(ctx, name),
	}

	zerolog.Ctx(ctx).Debug().
		Str("file", name).
		Int("bytes", len(data)).
		Int("diagnostics", len(f.Diagnostics)).
		Dur("took", time.Since(start)).
		Msg("parsed")

	return f, nil
}

// ReadSource reads name from fs, or all of stdin when name is "-".
func ReadSource(fs afero.Fs, name string, stdin io.Reader) (string, error) {
	if name == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", errors.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := afero.ReadFile(fs, name)
	if err != nil {
		return "", errors.Errorf("reading %s: %w", name, err)
	}
	return string(data), nil
}
