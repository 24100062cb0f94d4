package driver

import (
	"context"
	"fmt"
	"os"

	"ddd/internal/ast"
	"ddd/internal/buildpipeline"
	"ddd/internal/diag"
	"ddd/internal/lexer"
	"ddd/internal/model"
	"ddd/internal/observ"
	"ddd/internal/parser"
	"ddd/internal/render"
	"ddd/internal/sema"
	"ddd/internal/source"
	"ddd/internal/token"
)

// Options configure a single compile.
type Options struct {
	// Keywords start message declarations; empty selects the parser defaults.
	Keywords []string
	// MaxDiagnostics caps the diagnostic bag; 0 means unlimited.
	MaxDiagnostics int
	// Templates are compiled on every call unless Renderer is set.
	Templates render.Templates
	Renderer  *render.Renderer
	// Sink receives per-stage events; nil drops them.
	Sink buildpipeline.ProgressSink
}

// Result holds every artefact of one compile. Err is the first failure of the
// source itself (typed *sema.Error); configuration and I/O problems are
// returned separately by Compile.
type Result struct {
	Path    string
	FileSet *source.FileSet
	File    *source.File
	Tree    *ast.Tree
	Bag     *diag.Bag
	Model   *model.Context
	Output  string
	Err     error
	Timer   *observ.Timer
	Timings buildpipeline.Timings
}

// OK reports whether the compile produced output.
func (r *Result) OK() bool { return r.Err == nil }

// CompileFile reads path and compiles it.
func CompileFile(ctx context.Context, path string, opts Options) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Compile(ctx, path, data, opts)
}

// Compile runs source text through parse, build and render.
func Compile(ctx context.Context, path string, src []byte, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	renderer := opts.Renderer
	if renderer == nil {
		r, err := render.New(opts.Templates)
		if err != nil {
			return nil, fmt.Errorf("invalid templates: %w", err)
		}
		renderer = r
	}
	sink := opts.Sink
	if sink == nil {
		sink = buildpipeline.NopSink{}
	}

	res := &Result{
		Path:    path,
		FileSet: source.NewFileSet(),
		Bag:     diag.NewBag(opts.MaxDiagnostics),
		Timer:   observ.NewTimer(),
	}
	fileID := res.FileSet.AddSource(path, src, 0)
	res.File = res.FileSet.Get(fileID)
	reporter := &diag.BagReporter{Bag: res.Bag}

	stage := func(st buildpipeline.Stage, fn func() error) error {
		sink.OnEvent(buildpipeline.Event{File: path, Stage: st, Status: buildpipeline.StatusWorking})
		var err error
		dur := res.Timer.Track(string(st), func() { err = fn() })
		res.Timings.Set(st, dur)
		status := buildpipeline.StatusDone
		if err != nil {
			status = buildpipeline.StatusError
		}
		sink.OnEvent(buildpipeline.Event{File: path, Stage: st, Status: status, Err: err, Elapsed: dur})
		return err
	}

	_ = stage(buildpipeline.StageParse, func() error {
		pr := parser.Parse(res.File, parser.Options{
			Reporter:  reporter,
			Keywords:  opts.Keywords,
			MaxErrors: uint(max(opts.MaxDiagnostics, 0)), // #nosec G115 -- clamped
		})
		res.Tree = pr.Tree
		return nil
	})
	parseFailed := res.Bag.HasErrors()

	err := stage(buildpipeline.StageBuild, func() error {
		semaOpts := sema.Options{}
		if !parseFailed {
			// syntax errors were already reported by the parser
			semaOpts.Reporter = reporter
		}
		m, err := sema.Build(res.Tree, semaOpts)
		if err != nil {
			return err
		}
		if parseFailed {
			return firstSyntaxError(res)
		}
		res.Model = m
		return nil
	})
	if err != nil {
		res.Err = err
		return res, nil
	}

	err = stage(buildpipeline.StageRender, func() error {
		out, err := renderer.Render(res.Model)
		if err != nil {
			reporter.Report(diag.ProjRenderFailed, diag.SevError, source.Span{File: fileID}, err.Error(), nil)
			return err
		}
		res.Output = out
		return nil
	})
	if err != nil {
		res.Err = err
	}
	return res, nil
}

// firstSyntaxError turns the first reported error diagnostic into a typed
// syntax error for sources whose tree is well formed but whose text is not,
// e.g. an unterminated block comment.
func firstSyntaxError(res *Result) error {
	d, ok := res.Bag.FirstError()
	if !ok {
		return nil
	}
	return &sema.Error{
		Kind: sema.KindSyntax,
		Line: res.File.Line(d.Primary.Start),
		Span: d.Primary,
		Text: d.Message,
	}
}

// Tokenize lexes src and returns every token up to and including EOF.
func Tokenize(path string, src []byte, maxDiagnostics int) (*source.FileSet, []token.Token, *diag.Bag) {
	fs := source.NewFileSet()
	id := fs.AddSource(path, src, 0)
	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})
	return fs, lx.All(), bag
}

// Parse lexes and parses src without building the model.
func Parse(path string, src []byte, keywords []string, maxDiagnostics int) (*source.FileSet, *ast.Tree, *diag.Bag) {
	fs := source.NewFileSet()
	id := fs.AddSource(path, src, 0)
	bag := diag.NewBag(maxDiagnostics)
	res := parser.Parse(fs.Get(id), parser.Options{
		Reporter: &diag.BagReporter{Bag: bag},
		Keywords: keywords,
	})
	return fs, res.Tree, bag
}
