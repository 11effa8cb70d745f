package pathkit

import (
	"context"
	"io"
	"time"
)

// ReadOnlyPath wraps a Path and hides every mutating capability. Use it to
// show a backend in a panel where nothing may be changed, e.g. a
// second view on an archive that is being written elsewhere.
//
//	ro := pathkit.ReadOnly(node)
//	ro.Supports(pathkit.FeatureDelete) // false
//	_, ok := ro.(pathkit.Deleter)      // false
type ReadOnlyPath struct {
	p Path
}

// ReadOnly wraps p. Wrapping an already read-only path returns it unchanged.
func ReadOnly(p Path) Path {
	if p == nil {
		return nil
	}
	if ro, ok := p.(*ReadOnlyPath); ok {
		return ro
	}
	return &ReadOnlyPath{p: p}
}

// Unwrap returns the wrapped node.
func (r *ReadOnlyPath) Unwrap() Path { return r.p }

func (r *ReadOnlyPath) Path() string { return r.p.Path() }
func (r *ReadOnlyPath) Name() string { return r.p.Name() }
func (r *ReadOnlyPath) Size() (int64, bool) { return r.p.Size() }
func (r *ReadOnlyPath) ModTime() (time.Time, bool) { return r.p.ModTime() }
func (r *ReadOnlyPath) Sort() int { return r.p.Sort() }
func (r *ReadOnlyPath) Icon() string { return r.p.Icon() }
func (r *ReadOnlyPath) Equal(other Path) bool { return Equal(r.p, unwrapReadOnly(other)) }
func (r *ReadOnlyPath) Exists(ctx context.Context) (bool, error) { return r.p.Exists(ctx) }

func (r *ReadOnlyPath) Parent() (Path, error) {
	parent, err := r.p.Parent()
	if err != nil || parent == nil {
		return parent, err
	}
	return ReadOnly(parent), nil
}

func (r *ReadOnlyPath) Items(ctx context.Context) ([]Path, error) {
	items, err := r.p.Items(ctx)
	if err != nil {
		return nil, err
	}
	for i, item := range items {
		items[i] = ReadOnly(item)
	}
	return items, nil
}

// Supports masks the mutating features of the wrapped node.
func (r *ReadOnlyPath) Supports(f Feature) bool {
	switch f {
	case FeatureChildren, FeatureView, FeatureCopy:
		return r.p.Supports(f)
	case FeatureDelete, FeatureCreate, FeatureRename, FeatureEdit:
		return false
	}
	return false
}

// Open streams the wrapped node when it is an Opener.
func (r *ReadOnlyPath) Open(ctx context.Context) (io.ReadCloser, error) {
	if o, ok := r.p.(Opener); ok {
		return o.Open(ctx)
	}
	return nil, NewPathError("open", r.p.Path(), ErrNotSupported)
}

// Activate activates the wrapped node. Nodes entered from a read-only view
// stay read-only.
func (r *ReadOnlyPath) Activate(ctx context.Context, reg *Registry, nav Navigator) error {
	return Activate(ctx, reg, r.p, readOnlyNavigator{nav})
}

type readOnlyNavigator struct {
	nav Navigator
}

func (n readOnlyNavigator) Navigate(p Path) error {
	return n.nav.Navigate(ReadOnly(p))
}

func unwrapReadOnly(p Path) Path {
	if ro, ok := p.(*ReadOnlyPath); ok {
		return ro.p
	}
	return p
}
