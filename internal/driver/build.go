package driver

import (
	"context"
	"fmt"
	"maps"
	"path/filepath"
	"runtime"
	"slices"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ddd/internal/buildpipeline"
	"ddd/internal/project"
	"ddd/internal/render"
)

// BuildOptions configure a directory build.
type BuildOptions struct {
	// Jobs limits parallel compiles; <= 0 means GOMAXPROCS.
	Jobs int
	// DryRun compiles everything but writes nothing.
	DryRun         bool
	MaxDiagnostics int
	Sink           buildpipeline.ProgressSink
	Logger         *zap.Logger
}

// FileResult is the outcome for one source file.
type FileResult struct {
	Source  string
	Output  string
	Written bool
	Result  *Result
	Err     error
}

// Summary aggregates a directory build.
type Summary struct {
	Files      []FileResult
	Companions []string
	Written    int
	Unchanged  int
	Failed     int
	Elapsed    time.Duration
}

// FileError ties a failure to the source file that caused it.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string { return e.Path + ": " + e.Err.Error() }

func (e *FileError) Unwrap() error { return e.Err }

// Builder compiles and writes files with one shared configuration.
// It is safe for concurrent use.
type Builder struct {
	cfg      project.Config
	renderer *render.Renderer
	opts     BuildOptions
}

// NewBuilder validates cfg and compiles its templates once.
func NewBuilder(cfg project.Config, opts BuildOptions) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r, err := render.New(cfg.Templates)
	if err != nil {
		return nil, fmt.Errorf("invalid templates: %w", err)
	}
	if opts.Sink == nil {
		opts.Sink = buildpipeline.NopSink{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Builder{cfg: cfg, renderer: r, opts: opts}, nil
}

// BuildDir compiles every source under root matched by the project globs.
// Failures of individual files do not stop the others; they are combined into
// the returned error while the Summary still describes every file.
func BuildDir(ctx context.Context, root string, cfg project.Config, opts BuildOptions) (*Summary, error) {
	b, err := NewBuilder(cfg, opts)
	if err != nil {
		return nil, err
	}
	return b.BuildDir(ctx, root)
}

func (b *Builder) BuildDir(ctx context.Context, root string) (*Summary, error) {
	start := time.Now()
	log := b.opts.Logger
	sink := b.opts.Sink

	sink.OnEvent(buildpipeline.Event{Stage: buildpipeline.StageDiscover, Status: buildpipeline.StatusWorking})
	files, err := project.Discover(root, b.cfg.Project.Include, b.cfg.Project.Exclude)
	if err != nil {
		sink.OnEvent(buildpipeline.Event{Stage: buildpipeline.StageDiscover, Status: buildpipeline.StatusError, Err: err})
		return nil, err
	}
	sink.OnEvent(buildpipeline.Event{Stage: buildpipeline.StageDiscover, Status: buildpipeline.StatusDone, Elapsed: time.Since(start)})
	log.Debug("Discovered sources", zap.String("root", root), zap.Int("count", len(files)))

	summary := &Summary{Files: make([]FileResult, len(files))}
	if len(files) == 0 {
		summary.Elapsed = time.Since(start)
		return summary, nil
	}
	for _, path := range files {
		sink.OnEvent(buildpipeline.Event{File: path, Stage: buildpipeline.StageParse, Status: buildpipeline.StatusQueued})
	}

	jobs := b.opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			summary.Files[i] = b.BuildFile(gctx, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var (
		errs    []error
		outDirs = make(map[string]struct{})
	)
	for _, fr := range summary.Files {
		switch {
		case fr.Err != nil:
			summary.Failed++
			errs = append(errs, fr.Err)
			continue
		case fr.Written:
			summary.Written++
		default:
			summary.Unchanged++
		}
		outDirs[filepath.Dir(fr.Output)] = struct{}{}
	}

	if !b.opts.DryRun {
		written, err := b.writeCompanions(outDirs)
		summary.Companions = written
		if err != nil {
			errs = append(errs, err)
		}
	}

	summary.Elapsed = time.Since(start)
	log.Info("Build finished",
		zap.Int("files", len(files)),
		zap.Int("written", summary.Written),
		zap.Int("unchanged", summary.Unchanged),
		zap.Int("failed", summary.Failed),
		zap.Duration("elapsed", summary.Elapsed))
	return summary, multierr.Combine(errs...)
}

// BuildFile compiles one source and writes its output unless it is unchanged.
func (b *Builder) BuildFile(ctx context.Context, path string) FileResult {
	fr := FileResult{Source: path, Output: project.OutputPath(path, b.cfg.Project.OutputExt)}
	log := b.opts.Logger.With(zap.String("file", path))

	res, err := CompileFile(ctx, path, Options{
		Keywords:       b.cfg.DSL.Keywords,
		MaxDiagnostics: b.opts.MaxDiagnostics,
		Renderer:       b.renderer,
		Sink:           b.opts.Sink,
	})
	if err != nil {
		fr.Err = &FileError{Path: path, Err: err}
		b.opts.Sink.OnEvent(buildpipeline.Event{File: path, Stage: buildpipeline.StageParse, Status: buildpipeline.StatusError, Err: err})
		log.Error("Unable to compile", zap.Error(err))
		return fr
	}
	fr.Result = res
	if res.Err != nil {
		fr.Err = &FileError{Path: path, Err: res.Err}
		log.Debug("Compile failed", zap.Error(res.Err))
		return fr
	}

	if b.opts.DryRun {
		b.opts.Sink.OnEvent(buildpipeline.Event{File: path, Stage: buildpipeline.StageWrite, Status: buildpipeline.StatusSkipped})
		return fr
	}

	b.opts.Sink.OnEvent(buildpipeline.Event{File: path, Stage: buildpipeline.StageWrite, Status: buildpipeline.StatusWorking})
	start := time.Now()
	written, err := writeIfChanged(fr.Output, []byte(res.Output))
	elapsed := time.Since(start)
	res.Timings.Set(buildpipeline.StageWrite, elapsed)
	switch {
	case err != nil:
		fr.Err = &FileError{Path: path, Err: err}
		b.opts.Sink.OnEvent(buildpipeline.Event{File: path, Stage: buildpipeline.StageWrite, Status: buildpipeline.StatusError, Err: err, Elapsed: elapsed})
		log.Error("Unable to write output", zap.String("output", fr.Output), zap.Error(err))
	case written:
		fr.Written = true
		b.opts.Sink.OnEvent(buildpipeline.Event{File: path, Stage: buildpipeline.StageWrite, Status: buildpipeline.StatusDone, Elapsed: elapsed})
		log.Debug("Output written", zap.String("output", fr.Output))
	default:
		b.opts.Sink.OnEvent(buildpipeline.Event{File: path, Stage: buildpipeline.StageWrite, Status: buildpipeline.StatusSkipped, Elapsed: elapsed})
	}
	return fr
}

// companionMu serialises companion writes across builders sharing a directory.
var companionMu sync.Mutex

// WriteCompanions writes the configured companion files into dir.
func (b *Builder) WriteCompanions(dir string) ([]string, error) {
	return b.writeCompanions(map[string]struct{}{dir: {}})
}

func (b *Builder) writeCompanions(dirs map[string]struct{}) ([]string, error) {
	if len(b.cfg.Project.Companions) == 0 {
		return nil, nil
	}
	companionMu.Lock()
	defer companionMu.Unlock()

	var (
		written []string
		errs    []error
	)
	for _, dir := range slices.Sorted(maps.Keys(dirs)) {
		for _, c := range b.cfg.Project.Companions {
			path := filepath.Join(dir, c.Name)
			changed, err := writeIfChanged(path, []byte(c.Content))
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if changed {
				written = append(written, path)
				b.opts.Logger.Debug("Companion written", zap.String("path", path))
			}
		}
	}
	return written, multierr.Combine(errs...)
}
