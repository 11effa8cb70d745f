package pathkit

import (
	"context"
	"io"
	"testing"
)

func TestReadOnly(t *testing.T) {
	ctx := context.Background()
	file := newMockFile("/dir/a.txt", "a.txt", "hello")
	dir := newMockDir("/dir", "dir", file)
	file.parent = dir

	ro := ReadOnly(dir)

	t.Run("masks mutating features", func(t *testing.T) {
		want := map[Feature]bool{
			FeatureChildren: true,
			FeatureView:     false,
			FeatureCopy:     true,
			FeatureDelete:   false,
			FeatureCreate:   false,
			FeatureRename:   false,
			FeatureEdit:     false,
		}
		for f, w := range want {
			if got := ro.Supports(f); got != w {
				t.Errorf("Supports(%s) = %v, want %v", f, got, w)
			}
		}
		if _, ok := ro.(Deleter); ok {
			t.Error("expected no Deleter on read-only path")
		}
	})

	t.Run("wrapping twice is a no-op", func(t *testing.T) {
		if ReadOnly(ro) != ro {
			t.Error("expected the same wrapper")
		}
		if ReadOnly(nil) != nil {
			t.Error("expected nil for nil")
		}
	})

	t.Run("children and parents stay read-only", func(t *testing.T) {
		items, err := ro.Items(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(items) != 1 {
			t.Fatalf("expected 1 item, got %d", len(items))
		}
		child, ok := items[0].(*ReadOnlyPath)
		if !ok {
			t.Fatalf("expected read-only child, got %T", items[0])
		}
		if child.Unwrap() != file {
			t.Error("expected child to wrap the file")
		}

		parent, err := child.Parent()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := parent.(*ReadOnlyPath); !ok {
			t.Errorf("expected read-only parent, got %T", parent)
		}
		if !Equal(parent, dir) {
			t.Error("expected parent to equal the wrapped dir")
		}
	})

	t.Run("content stays readable", func(t *testing.T) {
		rc, err := ReadOnly(file).(Opener).Open(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer rc.Close()
		data, _ := io.ReadAll(rc)
		if string(data) != "hello" {
			t.Errorf("expected hello, got %q", data)
		}
	})

	t.Run("navigation stays read-only", func(t *testing.T) {
		nav := &recordingNavigator{}
		if err := Activate(ctx, NewRegistry(nil), ro, nav); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(nav.visited) != 1 {
			t.Fatalf("expected one navigation, got %d", len(nav.visited))
		}
		if _, ok := nav.visited[0].(*ReadOnlyPath); !ok {
			t.Errorf("expected read-only target, got %T", nav.visited[0])
		}
	})
}
