package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"ddd/internal/buildpipeline"
	"ddd/internal/project"
	"ddd/internal/sema"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func testOptions() BuildOptions {
	return BuildOptions{Jobs: 2, Logger: zap.NewNop()}
}

func TestBuildDirWritesOutputs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "orders.ddd"), orderSource)
	writeFile(t, filepath.Join(root, "sub", "billing.ddd"), "event Charged { int Amount }")

	summary, err := BuildDir(context.Background(), root, project.DefaultConfig(), testOptions())
	if err != nil {
		t.Fatalf("BuildDir: %v", err)
	}
	if summary.Written != 2 || summary.Failed != 0 {
		t.Fatalf("summary = %+v", summary)
	}
	for _, out := range []string{"orders.cs", filepath.Join("sub", "billing.cs"), "IsExternalInit.cs", filepath.Join("sub", "IsExternalInit.cs")} {
		if _, err := os.Stat(filepath.Join(root, out)); err != nil {
			t.Errorf("expected %s: %v", out, err)
		}
	}
	data, err := os.ReadFile(filepath.Join(root, "orders.cs"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != summary.Files[0].Result.Output {
		t.Fatal("written file differs from rendered output")
	}
}

func TestBuildDirSkipsUnchanged(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "orders.ddd"), orderSource)
	cfg := project.DefaultConfig()

	if _, err := BuildDir(context.Background(), root, cfg, testOptions()); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(root, "orders.cs")
	before, err := os.Stat(out)
	if err != nil {
		t.Fatal(err)
	}

	rec := &buildpipeline.Recorder{}
	opts := testOptions()
	opts.Sink = rec
	summary, err := BuildDir(context.Background(), root, cfg, opts)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Written != 0 || summary.Unchanged != 1 || len(summary.Companions) != 0 {
		t.Fatalf("second build rewrote files: %+v", summary)
	}
	after, err := os.Stat(out)
	if err != nil {
		t.Fatal(err)
	}
	if !after.ModTime().Equal(before.ModTime()) {
		t.Fatal("unchanged output was rewritten")
	}
	last, ok := rec.Last(filepath.Join(root, "orders.ddd"))
	if !ok || last.Stage != buildpipeline.StageWrite || last.Status != buildpipeline.StatusSkipped {
		t.Fatalf("last event = %+v", last)
	}
}

func TestBuildDirAggregatesFailures(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.ddd"), "entity A { missing }")
	writeFile(t, filepath.Join(root, "b.ddd"), "command B { ref Nowhere }")
	writeFile(t, filepath.Join(root, "c.ddd"), orderSource)

	summary, err := BuildDir(context.Background(), root, project.DefaultConfig(), testOptions())
	if err == nil {
		t.Fatal("expected aggregated error")
	}
	if n := len(multierr.Errors(err)); n != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", n, err)
	}
	if !errors.Is(err, sema.ErrUnknownFragment) || !errors.Is(err, sema.ErrUnknownInclude) {
		t.Fatalf("typed errors lost: %v", err)
	}
	var fe *FileError
	if !errors.As(err, &fe) || filepath.Base(fe.Path) != "a.ddd" {
		t.Fatalf("expected FileError for a.ddd, got %v", err)
	}
	if summary.Failed != 2 || summary.Written != 1 {
		t.Fatalf("summary = %+v", summary)
	}
	if _, err := os.Stat(filepath.Join(root, "a.cs")); !os.IsNotExist(err) {
		t.Fatal("failed source must not produce output")
	}
}

func TestBuildDirDryRun(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "orders.ddd"), orderSource)
	opts := testOptions()
	opts.DryRun = true

	summary, err := BuildDir(context.Background(), root, project.DefaultConfig(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Written != 0 || summary.Files[0].Result.Output == "" {
		t.Fatalf("summary = %+v", summary)
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("dry run wrote files: %v", entries)
	}
}

func TestBuildDirExclude(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "orders.ddd"), orderSource)
	writeFile(t, filepath.Join(root, "vendor", "broken.ddd"), "entity {")
	cfg := project.DefaultConfig()
	cfg.Project.Exclude = []string{"vendor/**"}
	cfg.Project.Companions = nil

	summary, err := BuildDir(context.Background(), root, cfg, testOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(summary.Files) != 1 {
		t.Fatalf("files = %+v", summary.Files)
	}
}

func TestNewBuilderRejectsBadConfig(t *testing.T) {
	cfg := project.DefaultConfig()
	cfg.Templates.Engine = "nope"
	if _, err := NewBuilder(cfg, BuildOptions{}); err == nil {
		t.Fatal("expected error for unknown engine")
	}
}

func TestWriteIfChanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.cs")
	changed, err := writeIfChanged(path, []byte("a"))
	if err != nil || !changed {
		t.Fatalf("first write: changed=%v err=%v", changed, err)
	}
	changed, err = writeIfChanged(path, []byte("a"))
	if err != nil || changed {
		t.Fatalf("same content: changed=%v err=%v", changed, err)
	}
	changed, err = writeIfChanged(path, []byte("b"))
	if err != nil || !changed {
		t.Fatalf("new content: changed=%v err=%v", changed, err)
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}
