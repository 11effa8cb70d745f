package local

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gobeaver/pathkit"
	"go.uber.org/zap"
)

// Path is a node of the local filesystem. Its canonical address is the plain
// native path, without a scheme.
type Path struct {
	env  *pathkit.Env
	path string
	info fs.FileInfo // stat result captured by a listing, if any
}

// New returns the node for path. Relative paths are made absolute.
func New(env *pathkit.Env, path string) (*Path, error) {
	if path == "" {
		return nil, pathkit.NewPathError("resolve", path, pathkit.ErrPathNotFound)
	}
	abs, err := filepath.Abs(filepath.FromSlash(path))
	if err != nil {
		return nil, pathkit.NewPathError("resolve", path, pathkit.ErrPathNotFound)
	}
	return &Path{env: env, path: abs}, nil
}

// FromString resolves a local path string. A leading "file://" is accepted.
func FromString(env *pathkit.Env, s string) (*Path, error) {
	return New(env, strings.TrimPrefix(s, "file://"))
}

// File returns the native path, as needed by libraries that open the file.
func (p *Path) File() string { return p.path }

// Path implements pathkit.Path
func (p *Path) Path() string { return p.path }

// Name implements pathkit.Path
func (p *Path) Name() string {
	if p.isRoot() {
		return p.path
	}
	return filepath.Base(p.path)
}

// Parent implements pathkit.Path. The filesystem root has no parent.
func (p *Path) Parent() (pathkit.Path, error) {
	if p.isRoot() {
		return nil, nil
	}
	return &Path{env: p.env, path: filepath.Dir(p.path)}, nil
}

// ParentDir is Parent with the concrete type; nil at the filesystem root.
func (p *Path) ParentDir() *Path {
	if p.isRoot() {
		return nil
	}
	return &Path{env: p.env, path: filepath.Dir(p.path)}
}

func (p *Path) isRoot() bool {
	return filepath.Dir(p.path) == p.path
}

// Items implements pathkit.Path
func (p *Path) Items(ctx context.Context) ([]pathkit.Path, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	entries, err := os.ReadDir(p.path)
	if err != nil {
		return nil, pathkit.WrapPathErr("items", p.path, err)
	}

	items := make([]pathkit.Path, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			// removed between ReadDir and Info
			p.env.Log().Debug("skipping unreadable entry",
				zap.String("dir", p.path), zap.String("name", entry.Name()), zap.Error(err))
			continue
		}
		items = append(items, &Path{
			env:  p.env,
			path: filepath.Join(p.path, entry.Name()),
			info: info,
		})
	}
	return items, nil
}

// stat returns the captured stat result or stats the file now.
func (p *Path) stat() (fs.FileInfo, error) {
	if p.info != nil {
		return p.info, nil
	}
	info, err := os.Stat(p.path)
	if err != nil {
		return nil, err
	}
	p.info = info
	return info, nil
}

// IsDir reports whether the node is an existing directory.
func (p *Path) IsDir() bool {
	info, err := p.stat()
	return err == nil && info.IsDir()
}

// Size implements pathkit.Path
func (p *Path) Size() (int64, bool) {
	info, err := p.stat()
	if err != nil || info.IsDir() {
		return 0, false
	}
	return info.Size(), true
}

// ModTime implements pathkit.Path
func (p *Path) ModTime() (time.Time, bool) {
	info, err := p.stat()
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// Sort implements pathkit.Path
func (p *Path) Sort() int {
	if p.IsDir() {
		return pathkit.SortDirectory
	}
	return pathkit.SortFile
}

// Icon implements pathkit.Path
func (p *Path) Icon() string {
	if p.IsDir() {
		return pathkit.IconFolder
	}
	return p.env.Icon("file://" + filepath.ToSlash(p.path))
}

// Description implements pathkit.Describer
func (p *Path) Description() string {
	if size, ok := p.Size(); ok {
		return p.path + ", " + p.env.FormatSize(size)
	}
	return p.path
}

// Exists implements pathkit.Path. A path running through a regular file
// ("/tmp/a.zip/inner") does not exist.
func (p *Path) Exists(ctx context.Context) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}

	_, err := os.Stat(p.path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, syscall.ENOTDIR):
		return false, nil
	default:
		return false, pathkit.WrapPathErr("exists", p.path, err)
	}
}

// Supports implements pathkit.Path
func (p *Path) Supports(f pathkit.Feature) bool {
	switch f {
	case pathkit.FeatureChildren:
		return p.IsDir()
	case pathkit.FeatureView, pathkit.FeatureEdit:
		return !p.IsDir()
	case pathkit.FeatureCopy, pathkit.FeatureDelete, pathkit.FeatureCreate, pathkit.FeatureRename:
		return true
	}
	return false
}

// Equal implements pathkit.Equaler
func (p *Path) Equal(other pathkit.Path) bool {
	o, ok := other.(*Path)
	return ok && o.path == p.path
}

// Append implements pathkit.Appender
func (p *Path) Append(name string) pathkit.Path {
	return &Path{env: p.env, path: filepath.Join(p.path, name)}
}

// Create implements pathkit.Creator
func (p *Path) Create(ctx context.Context, directory bool) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	p.info = nil
	if directory {
		return pathkit.WrapPathErr("create", p.path, os.Mkdir(p.path, 0755))
	}

	f, err := os.OpenFile(p.path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return pathkit.WrapPathErr("create", p.path, err)
	}
	return pathkit.WrapPathErr("create", p.path, f.Close())
}

// Delete implements pathkit.Deleter. Directories are removed with their
// contents.
func (p *Path) Delete(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if _, err := os.Lstat(p.path); err != nil {
		return pathkit.WrapPathErr("delete", p.path, pathkit.ErrNotExist)
	}
	p.info = nil
	return pathkit.WrapPathErr("delete", p.path, os.RemoveAll(p.path))
}

// Rename implements pathkit.Renamer
func (p *Path) Rename(ctx context.Context, name string) (pathkit.Path, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return nil, pathkit.NewPathError("rename", p.path, pathkit.ErrNotAllowed)
	}

	target := filepath.Join(filepath.Dir(p.path), name)
	if _, err := os.Lstat(target); err == nil {
		return nil, pathkit.NewPathError("rename", target, pathkit.ErrExist)
	}
	if err := os.Rename(p.path, target); err != nil {
		return nil, pathkit.WrapPathErr("rename", p.path, err)
	}
	return &Path{env: p.env, path: target}, nil
}

// Open implements pathkit.Opener
func (p *Path) Open(ctx context.Context) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if p.IsDir() {
		return nil, pathkit.NewPathError("open", p.path, pathkit.ErrIsDir)
	}
	f, err := os.Open(p.path)
	if err != nil {
		return nil, pathkit.WrapPathErr("open", p.path, err)
	}
	return f, nil
}

// CreateFrom implements pathkit.CopyTarget. The source modification time is
// carried over when known.
func (p *Path) CreateFrom(ctx context.Context, src pathkit.Path) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	opener, ok := src.(pathkit.Opener)
	if !ok {
		return pathkit.NewPathError("copy", src.Path(), pathkit.ErrNotSupported)
	}

	rc, err := opener.Open(ctx)
	if err != nil {
		return err
	}
	defer rc.Close()

	f, err := os.Create(p.path)
	if err != nil {
		return pathkit.WrapPathErr("copy", p.path, err)
	}
	if _, err := io.Copy(f, rc); err != nil {
		f.Close()
		return pathkit.WrapPathErr("copy", p.path, err)
	}
	if err := f.Close(); err != nil {
		return pathkit.WrapPathErr("copy", p.path, err)
	}

	p.info = nil
	if mod, ok := src.ModTime(); ok {
		if err := os.Chtimes(p.path, mod, mod); err != nil {
			return pathkit.WrapPathErr("copy", p.path, err)
		}
	}
	return nil
}

// Ensure Path implements interfaces
var (
	_ pathkit.Path       = (*Path)(nil)
	_ pathkit.Creator    = (*Path)(nil)
	_ pathkit.Deleter    = (*Path)(nil)
	_ pathkit.Renamer    = (*Path)(nil)
	_ pathkit.Appender   = (*Path)(nil)
	_ pathkit.Opener     = (*Path)(nil)
	_ pathkit.CopyTarget = (*Path)(nil)
	_ pathkit.Describer  = (*Path)(nil)
	_ pathkit.Equaler    = (*Path)(nil)
	_ pathkit.Watcher    = (*Path)(nil)
)
