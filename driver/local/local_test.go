package local

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gobeaver/pathkit"
)

func TestNew(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		_, err := New(nil, "")
		if !pathkit.IsPathNotFound(err) {
			t.Errorf("expected path not found, got %v", err)
		}
	})

	t.Run("file scheme is accepted", func(t *testing.T) {
		dir := t.TempDir()
		p, err := FromString(nil, "file://"+dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Path() != dir {
			t.Errorf("expected %s, got %s", dir, p.Path())
		}
	})

	t.Run("relative paths become absolute", func(t *testing.T) {
		p, err := New(nil, "some/relative")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !filepath.IsAbs(p.Path()) {
			t.Errorf("expected absolute path, got %s", p.Path())
		}
	})
}

func TestNavigation(t *testing.T) {
	dir := t.TempDir()
	p, _ := New(nil, dir)

	child := p.Append("sub").(*Path)
	if child.Path() != filepath.Join(dir, "sub") {
		t.Errorf("unexpected child %s", child.Path())
	}
	if child.Name() != "sub" {
		t.Errorf("expected sub, got %s", child.Name())
	}

	parent, err := child.Parent()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !pathkit.Equal(parent, p) {
		t.Errorf("expected parent %s, got %s", p.Path(), parent.Path())
	}

	root, _ := New(nil, string(filepath.Separator))
	if parent, _ := root.Parent(); parent != nil {
		t.Errorf("expected no parent at root, got %v", parent)
	}
	if root.ParentDir() != nil {
		t.Error("expected nil ParentDir at root")
	}
	if root.Name() == "" {
		t.Error("expected root to have a name")
	}
}

func TestItems(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	os.Mkdir(filepath.Join(dir, "sub"), 0755)
	os.WriteFile(filepath.Join(dir, "a.txt"), []byte("abc"), 0644)

	p, _ := New(nil, dir)
	items, err := p.Items(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Name() < items[j].Name() })
	if len(items) != 2 || items[0].Name() != "a.txt" || items[1].Name() != "sub" {
		t.Fatalf("unexpected items %v", items)
	}

	if size, ok := items[0].Size(); !ok || size != 3 {
		t.Errorf("expected size 3, got %d (%v)", size, ok)
	}
	if _, ok := items[1].Size(); ok {
		t.Error("expected undefined size for directory")
	}
	if items[1].Sort() != pathkit.SortDirectory || items[0].Sort() != pathkit.SortFile {
		t.Error("unexpected sort priorities")
	}
	if items[1].Icon() != pathkit.IconFolder {
		t.Errorf("unexpected folder icon %q", items[1].Icon())
	}

	t.Run("missing directory", func(t *testing.T) {
		missing, _ := New(nil, filepath.Join(dir, "missing"))
		if _, err := missing.Items(ctx); err == nil {
			t.Error("expected error for missing directory")
		}
	})
}

func TestExists(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	file := filepath.Join(dir, "a.zip")
	os.WriteFile(file, []byte("x"), 0644)

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"directory", dir, true},
		{"file", file, true},
		{"missing", filepath.Join(dir, "nope"), false},
		{"through a file", filepath.Join(file, "inner"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := New(nil, tt.path)
			got, err := p.Exists(ctx)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Exists() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSupports(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	os.WriteFile(file, []byte("x"), 0644)

	d, _ := New(nil, dir)
	f, _ := New(nil, file)

	for _, feature := range pathkit.Features() {
		wantDir := feature != pathkit.FeatureView && feature != pathkit.FeatureEdit
		if got := d.Supports(feature); got != wantDir {
			t.Errorf("dir Supports(%s) = %v, want %v", feature, got, wantDir)
		}
		wantFile := feature != pathkit.FeatureChildren
		if got := f.Supports(feature); got != wantFile {
			t.Errorf("file Supports(%s) = %v, want %v", feature, got, wantFile)
		}
	}
}

func TestMutations(t *testing.T) {
	ctx := context.Background()

	t.Run("create directory and file", func(t *testing.T) {
		dir := t.TempDir()
		p, _ := New(nil, dir)

		sub := p.Append("sub").(*Path)
		if err := sub.Create(ctx, true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !sub.IsDir() {
			t.Error("expected directory")
		}

		file := sub.Append("f.txt").(*Path)
		if err := file.Create(ctx, false); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := file.Create(ctx, false); !pathkit.IsExist(err) {
			t.Errorf("expected exist error, got %v", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		dir := t.TempDir()
		sub := filepath.Join(dir, "sub")
		os.MkdirAll(filepath.Join(sub, "deep"), 0755)

		p, _ := New(nil, sub)
		if err := p.Delete(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := os.Stat(sub); !errors.Is(err, os.ErrNotExist) {
			t.Error("expected directory to be removed")
		}
		if err := p.Delete(ctx); !pathkit.IsNotExist(err) {
			t.Errorf("expected not exist, got %v", err)
		}
	})

	t.Run("rename", func(t *testing.T) {
		dir := t.TempDir()
		os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0644)
		os.WriteFile(filepath.Join(dir, "taken.txt"), []byte("t"), 0644)

		p, _ := New(nil, filepath.Join(dir, "a.txt"))

		if _, err := p.Rename(ctx, "taken.txt"); !pathkit.IsExist(err) {
			t.Errorf("expected exist error, got %v", err)
		}
		if _, err := p.Rename(ctx, "../escape"); !errors.Is(err, pathkit.ErrNotAllowed) {
			t.Errorf("expected not allowed, got %v", err)
		}

		renamed, err := p.Rename(ctx, "b.txt")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if renamed.Name() != "b.txt" {
			t.Errorf("expected b.txt, got %s", renamed.Name())
		}
	})

	t.Run("copy keeps content and time", func(t *testing.T) {
		dir := t.TempDir()
		srcPath := filepath.Join(dir, "src.txt")
		os.WriteFile(srcPath, []byte("payload"), 0644)
		stamp := time.Date(2021, 6, 7, 8, 9, 10, 0, time.UTC)
		os.Chtimes(srcPath, stamp, stamp)

		src, _ := New(nil, srcPath)
		dst, _ := New(nil, filepath.Join(dir, "dst.txt"))
		if err := dst.CreateFrom(ctx, src); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		rc, err := dst.Open(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		data, _ := io.ReadAll(rc)
		rc.Close()
		if string(data) != "payload" {
			t.Errorf("expected payload, got %q", data)
		}

		mod, ok := dst.ModTime()
		if !ok || !mod.Equal(stamp) {
			t.Errorf("expected %v, got %v", stamp, mod)
		}
	})

	t.Run("open directory", func(t *testing.T) {
		p, _ := New(nil, t.TempDir())
		if _, err := p.Open(ctx); !errors.Is(err, pathkit.ErrIsDir) {
			t.Errorf("expected is-dir error, got %v", err)
		}
	})
}

func TestDescription(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	os.WriteFile(file, make([]byte, 2048), 0644)

	p, _ := New(nil, file)
	if d := p.Description(); !strings.HasPrefix(d, file) || !strings.Contains(d, "2.0 KiB") {
		t.Errorf("unexpected description %q", d)
	}

	custom, _ := New(&pathkit.Env{Sizes: func(int64) string { return "big" }}, file)
	if d := custom.Description(); d != file+", big" {
		t.Errorf("unexpected description %q", d)
	}
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	p, _ := New(nil, dir)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token, err := p.Watch(ctx, "*.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fired := make(chan struct{})
	token.RegisterChangeCallback(func() { close(fired) })

	os.WriteFile(filepath.Join(dir, "ignored.log"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(dir, "seen.txt"), []byte("x"), 0644)

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change")
	}
	if !token.HasChanged() {
		t.Error("expected token to be changed")
	}

	t.Run("invalid filter", func(t *testing.T) {
		if _, err := p.Watch(ctx, "[a-"); err == nil {
			t.Error("expected error for invalid filter")
		}
	})
}
