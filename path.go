package pathkit

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

// Feature names an operation a path node may support.
type Feature int

const (
	// FeatureChildren means the node can be listed with Items.
	FeatureChildren Feature = iota
	// FeatureView means the node content can be viewed.
	FeatureView
	// FeatureCopy means the node can act as a copy source or target.
	FeatureCopy
	// FeatureDelete means the node can be deleted.
	FeatureDelete
	// FeatureCreate means new nodes can be created at this address.
	FeatureCreate
	// FeatureRename means the node can be renamed.
	FeatureRename
	// FeatureEdit means the node content can be edited in place.
	FeatureEdit

	featureCount
)

var featureNames = [featureCount]string{
	FeatureChildren: "children",
	FeatureView:     "view",
	FeatureCopy:     "copy",
	FeatureDelete:   "delete",
	FeatureCreate:   "create",
	FeatureRename:   "rename",
	FeatureEdit:     "edit",
}

// Features lists every feature in declaration order.
func Features() []Feature {
	out := make([]Feature, 0, featureCount)
	for f := Feature(0); f < featureCount; f++ {
		out = append(out, f)
	}
	return out
}

func (f Feature) String() string {
	if f < 0 || f >= featureCount {
		return fmt.Sprintf("feature(%d)", int(f))
	}
	return featureNames[f]
}

// ParseFeature returns the feature with the given name (case-insensitive).
func ParseFeature(name string) (Feature, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for f, n := range featureNames {
		if n == name {
			return Feature(f), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown feature %q", ErrNotSupported, name)
}

// Sort priorities. Directories are listed before files.
const (
	SortDirectory = 1
	SortFile      = 2
)

// ============================================================================
// Core Interface
// ============================================================================

// Path is a node of a virtual filesystem. Every backend (local files, archive
// entries, favorites) implements it; callers never need to know which one
// they hold.
type Path interface {
	// Path returns the canonical address, including the backend scheme.
	Path() string

	// Name returns the display name.
	Name() string

	// Parent derives the parent node. It returns nil, nil at a top-level node.
	Parent() (Path, error)

	// Items lists the immediate children. Results are never cached.
	Items(ctx context.Context) ([]Path, error)

	// Size returns the size in bytes. ok is false when the size is undefined,
	// which is the case for directories.
	Size() (size int64, ok bool)

	// ModTime returns the last modification time, if known.
	ModTime() (t time.Time, ok bool)

	// Sort returns the sort priority; lower values are listed first.
	Sort() int

	// Icon returns an icon reference for the node.
	Icon() string

	// Exists reports whether the node exists in its backing store.
	Exists(ctx context.Context) (bool, error)

	// Supports reports whether the node supports the given feature.
	Supports(f Feature) bool
}

// ============================================================================
// Optional Capability Interfaces
// ============================================================================
// Backends implement the interfaces that match the features they support.
// Use a type assertion to reach them:
//
//	if d, ok := p.(Deleter); ok && p.Supports(FeatureDelete) {
//	    err := d.Delete(ctx)
//	}

// Creator creates the node in its backing store.
type Creator interface {
	Create(ctx context.Context, directory bool) error
}

// Deleter removes the node from its backing store.
type Deleter interface {
	Delete(ctx context.Context) error
}

// Renamer renames the node within its parent and returns the renamed node.
type Renamer interface {
	Rename(ctx context.Context, name string) (Path, error)
}

// Appender builds a child node. It never touches the backing store.
type Appender interface {
	Append(name string) Path
}

// Opener produces a byte stream of the node content.
// The caller must close the returned reader.
type Opener interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// CopyTarget fills the node from the content of another node.
type CopyTarget interface {
	CreateFrom(ctx context.Context, src Path) error
}

// Activator customizes what happens when a node is activated in a panel.
type Activator interface {
	Activate(ctx context.Context, r *Registry, nav Navigator) error
}

// Describer returns a one-line human description of the node.
type Describer interface {
	Description() string
}

// Equaler compares nodes across backends.
type Equaler interface {
	Equal(other Path) bool
}

// Watcher produces a change token for the node and its children.
type Watcher interface {
	Watch(ctx context.Context, filter string) (ChangeToken, error)
}

// Navigator is the active display surface. Navigate points it at a node.
type Navigator interface {
	Navigate(p Path) error
}

// Equal reports whether two nodes address the same thing. Backends that
// implement Equaler decide for themselves; otherwise canonical addresses are
// compared.
func Equal(a, b Path) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if eq, ok := a.(Equaler); ok && eq.Equal(b) {
		return true
	}
	if eq, ok := b.(Equaler); ok && eq.Equal(a) {
		return true
	}
	return a.Path() == b.Path()
}

// Activate runs the default activation of a node: nodes with their own
// behavior decide for themselves, containers are navigated into, and files
// with a registered extension are dispatched to the extension handler.
func Activate(ctx context.Context, r *Registry, p Path, nav Navigator) error {
	if a, ok := p.(Activator); ok {
		return a.Activate(ctx, r, nav)
	}
	if p.Supports(FeatureChildren) {
		return nav.Navigate(p)
	}
	if r.HasExtension(ExtensionOf(p.Path())) {
		return r.DispatchExtension(ctx, p.Path(), nav)
	}
	return NewPathError("activate", p.Path(), ErrNotSupported)
}
