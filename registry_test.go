package pathkit

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestSplitScheme(t *testing.T) {
	tests := []struct {
		in     string
		scheme string
		rest   string
	}{
		{"zip:///tmp/a.zip/dir/", "zip", "/tmp/a.zip/dir/"},
		{"FAV://", "fav", ""},
		{"file:///home", "file", "/home"},
		{"/home/user", "file", "/home/user"},
		{"relative/path", "file", "relative/path"},
		{"/odd/zip://x", "file", "/odd/zip://x"},
		{"", "file", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			scheme, rest := SplitScheme(tt.in)
			if scheme != tt.scheme || rest != tt.rest {
				t.Errorf("SplitScheme(%q) = %q, %q, want %q, %q", tt.in, scheme, rest, tt.scheme, tt.rest)
			}
		})
	}
}

func TestExtensionOf(t *testing.T) {
	tests := map[string]string{
		"/tmp/a.zip":      "zip",
		"/tmp/A.JAR":      "jar",
		"/tmp/a.tar.xpi/": "xpi",
		"/tmp/noext":      "",
		"/tmp/.hidden":    "hidden",
	}
	for in, want := range tests {
		if got := ExtensionOf(in); got != want {
			t.Errorf("ExtensionOf(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRegistry(t *testing.T) {
	ctx := context.Background()

	t.Run("resolve passes rest and env", func(t *testing.T) {
		env := &Env{FavoritesLabel: "Bookmarks"}
		r := NewRegistry(env)

		var gotEnv *Env
		var gotPath string
		r.RegisterScheme("mem", func(e *Env, path string) (Path, error) {
			gotEnv, gotPath = e, path
			return newMockDir("mem://"+path, path), nil
		})

		p, err := r.Resolve("MEM://bucket/key")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Path() != "mem://bucket/key" {
			t.Errorf("unexpected path %s", p.Path())
		}
		if gotEnv != env || gotPath != "bucket/key" {
			t.Errorf("factory got %v %q", gotEnv, gotPath)
		}
	})

	t.Run("bare paths use the default scheme", func(t *testing.T) {
		r := NewRegistry(nil)
		r.RegisterScheme(DefaultScheme, func(e *Env, path string) (Path, error) {
			return newMockFile(path, path, ""), nil
		})

		p, err := r.Resolve("/etc/hosts")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Path() != "/etc/hosts" {
			t.Errorf("unexpected path %s", p.Path())
		}
	})

	t.Run("unknown scheme", func(t *testing.T) {
		r := NewRegistry(nil)
		_, err := r.Resolve("ftp://host/file")
		if !errors.Is(err, ErrUnknownScheme) {
			t.Errorf("expected unknown scheme, got %v", err)
		}
		var pe *PathError
		if !errors.As(err, &pe) || pe.Path != "ftp://host/file" {
			t.Errorf("expected PathError for the input, got %v", err)
		}
	})

	t.Run("last writer wins", func(t *testing.T) {
		r := NewRegistry(nil)
		r.RegisterScheme("x", func(e *Env, path string) (Path, error) {
			return newMockFile("first", "first", ""), nil
		})
		r.RegisterScheme("X", func(e *Env, path string) (Path, error) {
			return newMockFile("second", "second", ""), nil
		})

		p, err := r.Resolve("x://")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Path() != "second" {
			t.Errorf("expected second factory, got %s", p.Path())
		}
		if got := r.Schemes(); !reflect.DeepEqual(got, []string{"x"}) {
			t.Errorf("Schemes() = %v", got)
		}
	})

	t.Run("extensions", func(t *testing.T) {
		r := NewRegistry(nil)
		handler := func(ctx context.Context, env *Env, path string, nav Navigator) error { return nil }
		r.RegisterExtension(".Zip", handler)
		r.RegisterExtension("jar", handler)

		if !r.HasExtension("ZIP") || !r.HasExtension(".jar") {
			t.Error("expected registered extensions to be found")
		}
		if r.HasExtension("") || r.HasExtension("tar") {
			t.Error("unexpected extension match")
		}
		if got := r.Extensions(); !reflect.DeepEqual(got, []string{"jar", "zip"}) {
			t.Errorf("Extensions() = %v", got)
		}
	})

	t.Run("dispatch without handler", func(t *testing.T) {
		r := NewRegistry(nil)
		err := r.DispatchExtension(ctx, "/tmp/a.rar", &recordingNavigator{})
		if !errors.Is(err, ErrNotSupported) {
			t.Errorf("expected not supported, got %v", err)
		}
		err = r.DispatchExtension(ctx, "/tmp/noext", &recordingNavigator{})
		if !errors.Is(err, ErrNotSupported) {
			t.Errorf("expected not supported, got %v", err)
		}
	})

	t.Run("env", func(t *testing.T) {
		r := NewRegistry(nil)
		if r.Env() == nil {
			t.Fatal("expected non-nil env")
		}
		env := &Env{FavoritesLabel: "x"}
		r.SetEnv(env)
		if r.Env() != env {
			t.Error("expected env to be replaced")
		}
		r.SetEnv(nil)
		if r.Env() == nil {
			t.Error("expected non-nil env after reset")
		}
	})
}
