package zip

import (
	"archive/zip"
	"context"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gobeaver/pathkit"
	"github.com/gobeaver/pathkit/driver/local"
	"go.uber.org/zap"
)

// Scheme is the address prefix of archive nodes.
const Scheme = "zip"

// Path is a node inside a zip archive: the archive file on the local
// filesystem plus an entry name using "/" as separator. The empty name is
// the archive root.
//
// A Path holds no open handle. Every operation opens the archive, does its
// work and closes it again. Operations on nodes of the same archive must not
// overlap; the caller serializes them.
type Path struct {
	env  *pathkit.Env
	file *local.Path
	name string

	// descriptor, fetched from the archive on first use
	entry   *Entry
	fetched bool
}

// New returns the node for entry name inside the archive file.
func New(env *pathkit.Env, file *local.Path, name string) *Path {
	return &Path{env: env, file: file, name: name}
}

func newWithEntry(env *pathkit.Env, file *local.Path, entry *Entry) *Path {
	return &Path{env: env, file: file, name: entry.Name, entry: entry, fetched: true}
}

// FromString resolves "<archive path>[/<entry name>]". The local part is the
// longest prefix that exists on disk; the remaining segments form the entry
// name. A trailing separator in s is kept on the entry name.
func FromString(env *pathkit.Env, s string) (*Path, error) {
	file, err := local.FromString(env, s)
	if err != nil {
		return nil, pathkit.NewPathError("resolve", s, pathkit.ErrPathNotFound)
	}

	var segments []string
	for {
		if ok, _ := file.Exists(context.Background()); ok {
			break
		}
		segments = append([]string{file.Name()}, segments...)
		file = file.ParentDir()
		if file == nil {
			return nil, pathkit.NewPathError("resolve", s, pathkit.ErrPathNotFound)
		}
	}

	name := strings.Join(segments, "/")
	if name != "" && hasTrailingSeparator(s) && !strings.HasSuffix(name, "/") {
		name += "/"
	}
	return New(env, file, name), nil
}

func hasTrailingSeparator(s string) bool {
	return strings.HasSuffix(s, "/") || strings.HasSuffix(s, string(filepath.Separator))
}

// File returns the local archive file.
func (p *Path) File() *local.Path { return p.file }

// EntryName returns the archive-relative entry name.
func (p *Path) EntryName() string { return p.name }

func (p *Path) isRoot() bool { return p.name == "" }

// Path implements pathkit.Path
func (p *Path) Path() string {
	s := Scheme + "://" + p.file.Path()
	if p.name != "" {
		s += "/" + p.name
	}
	return s
}

// Name implements pathkit.Path. Directory names keep their meaning despite
// the trailing slash.
func (p *Path) Name() string {
	if p.isRoot() {
		return p.file.Name()
	}
	return lastSegment(p.name)
}

// lastSegment returns the last non-empty "/"-separated segment.
func lastSegment(name string) string {
	parts := strings.Split(name, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" {
			return parts[i]
		}
	}
	return ""
}

// Parent implements pathkit.Path. The parent of the archive root is the
// directory holding the archive file.
func (p *Path) Parent() (pathkit.Path, error) {
	if p.isRoot() {
		return p.file.Parent()
	}

	parts := strings.Split(p.name, "/")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	parts = parts[:len(parts)-1]

	parent := ""
	if len(parts) > 0 {
		parent = strings.Join(parts, "/") + "/"
	}
	return New(p.env, p.file, parent), nil
}

// Entry returns the archive descriptor of the node, or nil for the root and
// for names the archive does not contain.
func (p *Path) Entry() *Entry {
	if p.isRoot() {
		return nil
	}
	if !p.fetched {
		p.fetched = true
		err := withReader(p.file.File(), func(r *zip.Reader) error {
			f, implicit := findEntry(r, p.name)
			switch {
			case f != nil:
				entry, err := readEntry(f)
				if err != nil {
					return err
				}
				p.entry = entry
			case implicit != nil:
				p.entry = implicit
			}
			return nil
		})
		if err != nil {
			p.env.Log().Debug("cannot read entry descriptor",
				zap.String("archive", p.file.Path()), zap.String("entry", p.name), zap.Error(err))
		}
	}
	return p.entry
}

// isDir uses the archive's directory flag; without a descriptor the
// trailing slash decides.
func (p *Path) isDir() bool {
	if p.isRoot() {
		return true
	}
	if e := p.Entry(); e != nil {
		return e.IsDir
	}
	return strings.HasSuffix(p.name, "/")
}

// Items implements pathkit.Path. Only immediate children are returned.
// Entries whose descriptor cannot be read are left out.
func (p *Path) Items(ctx context.Context) ([]pathkit.Path, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	prefix := p.name
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	var items []pathkit.Path
	err := withReader(p.file.File(), func(r *zip.Reader) error {
		explicit := make(map[string]bool)
		implied := make(map[string]bool)

		for _, f := range r.File {
			rest, ok := strings.CutPrefix(f.Name, prefix)
			if !ok || rest == "" {
				continue
			}
			segment, tail, _ := strings.Cut(rest, "/")
			if segment == "" {
				continue
			}
			if tail != "" {
				implied[segment] = true
				continue
			}

			explicit[segment] = true
			entry, err := readEntry(f)
			if err != nil {
				p.env.Log().Debug("skipping unreadable entry",
					zap.String("archive", p.file.Path()), zap.String("entry", f.Name), zap.Error(err))
				continue
			}
			items = append(items, newWithEntry(p.env, p.file, entry))
		}

		var synthesized []string
		for segment := range implied {
			if !explicit[segment] {
				synthesized = append(synthesized, segment)
			}
		}
		sort.Strings(synthesized)
		for _, segment := range synthesized {
			items = append(items, newWithEntry(p.env, p.file, implicitEntry(prefix+segment+"/")))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Size implements pathkit.Path. Directories have no size.
func (p *Path) Size() (int64, bool) {
	if p.isDir() {
		return 0, false
	}
	e := p.Entry()
	if e == nil {
		return 0, false
	}
	return e.Size, true
}

// ModTime implements pathkit.Path. The archive root reports the archive
// file's time.
func (p *Path) ModTime() (time.Time, bool) {
	if p.isRoot() {
		return p.file.ModTime()
	}
	e := p.Entry()
	if e == nil || e.Implicit {
		return time.Time{}, false
	}
	return e.Modified, true
}

// Sort implements pathkit.Path
func (p *Path) Sort() int {
	if p.isDir() {
		return pathkit.SortDirectory
	}
	return pathkit.SortFile
}

// Icon implements pathkit.Path
func (p *Path) Icon() string {
	if p.isDir() {
		return pathkit.IconFolder
	}
	return p.env.Icon("file://" + filepath.ToSlash(p.file.Path()) + "/" + p.name)
}

// Description implements pathkit.Describer
func (p *Path) Description() string {
	d := p.Path()
	if size, ok := p.Size(); ok {
		d += ", " + p.env.FormatSize(size)
	}
	return d
}

// Exists implements pathkit.Path. The root exists whenever the archive file
// does, whatever its content.
func (p *Path) Exists(ctx context.Context) (bool, error) {
	ok, err := p.file.Exists(ctx)
	if err != nil || !ok {
		return false, err
	}
	if p.isRoot() {
		return true, nil
	}

	found := false
	err = withReader(p.file.File(), func(r *zip.Reader) error {
		f, implicit := findEntry(r, p.name)
		found = f != nil || implicit != nil
		return nil
	})
	return found, err
}

// Supports implements pathkit.Path
func (p *Path) Supports(f pathkit.Feature) bool {
	switch f {
	case pathkit.FeatureChildren:
		return p.isDir()
	case pathkit.FeatureView:
		return !p.isDir()
	case pathkit.FeatureDelete:
		// implicit directories have no entry to remove
		if e := p.Entry(); e != nil && e.Implicit {
			return false
		}
		return true
	case pathkit.FeatureCopy, pathkit.FeatureCreate:
		return true
	case pathkit.FeatureRename, pathkit.FeatureEdit:
		return false
	}
	return false
}

// Equal implements pathkit.Equaler. The archive root and the archive file
// are the same place, and a directory is equal with or without its
// trailing slash.
func (p *Path) Equal(other pathkit.Path) bool {
	switch o := other.(type) {
	case *local.Path:
		return p.isRoot() && p.file.Equal(o)
	case *Path:
		if !p.file.Equal(o.file) {
			return false
		}
		if o.name == p.name {
			return true
		}
		return strings.TrimSuffix(o.name, "/") == strings.TrimSuffix(p.name, "/") &&
			p.isDir() && o.isDir()
	}
	return other.Path() == p.Path()
}

// Append implements pathkit.Appender. It does not touch the archive.
func (p *Path) Append(name string) pathkit.Path {
	child := strings.TrimSuffix(p.name, "/")
	if child != "" {
		child += "/"
	}
	return New(p.env, p.file, child+name)
}

// Create implements pathkit.Creator. Only directories can be created; the
// archive is created when missing. Creating the root is a no-op.
func (p *Path) Create(ctx context.Context, directory bool) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if p.isRoot() {
		return nil
	}
	if !directory {
		return pathkit.NewPathError("create", p.Path(), pathkit.ErrNotImplemented)
	}

	name := p.name
	if !strings.HasSuffix(name, "/") {
		name += "/"
	}

	err := withWriter(p.file.File(), true, p.env.Log(), func(w *writer) error {
		return w.AddDirectory(name, time.Now())
	})
	if err != nil {
		return err
	}

	p.name = name
	p.entry, p.fetched = nil, false
	return nil
}

// Delete implements pathkit.Deleter. Only this entry is removed; entries
// below a directory stay, so an implicit directory cannot be deleted.
// Deleting the root deletes the archive file.
func (p *Path) Delete(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if p.isRoot() {
		return p.file.Delete(ctx)
	}

	err := withWriter(p.file.File(), false, p.env.Log(), func(w *writer) error {
		name := p.name
		if !w.has(name) && !strings.HasSuffix(name, "/") && w.has(name+"/") {
			name += "/"
		}
		return w.Remove(name)
	})
	if err != nil {
		return err
	}

	p.entry, p.fetched = nil, false
	return nil
}

// Open implements pathkit.Opener. The returned reader keeps the archive open
// until it is closed.
func (p *Path) Open(ctx context.Context) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if p.isDir() {
		return nil, pathkit.NewPathError("open", p.Path(), pathkit.ErrIsDir)
	}

	rc, err := zip.OpenReader(p.file.File())
	if err != nil {
		return nil, pathkit.WrapPathErr("open", p.file.Path(), err)
	}

	f, _ := findEntry(&rc.Reader, p.name)
	if f == nil {
		rc.Close()
		return nil, pathkit.NewPathError("open", p.Path(), pathkit.ErrNotExist)
	}

	stream, err := f.Open()
	if err != nil {
		rc.Close()
		return nil, pathkit.WrapPathErr("open", p.Path(), err)
	}
	return &entryReader{ReadCloser: stream, archive: rc}, nil
}

// entryReader closes the archive together with the entry stream.
type entryReader struct {
	io.ReadCloser
	archive *zip.ReadCloser
}

func (r *entryReader) Close() error {
	err := r.ReadCloser.Close()
	if cerr := r.archive.Close(); err == nil {
		err = cerr
	}
	return err
}

// CreateFrom implements pathkit.CopyTarget. An entry already at this address
// is replaced. The new entry is deflated and stamped with the source's
// modification time.
func (p *Path) CreateFrom(ctx context.Context, src pathkit.Path) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if p.isRoot() || strings.HasSuffix(p.name, "/") {
		return pathkit.NewPathError("copy", p.Path(), pathkit.ErrIsDir)
	}

	opener, ok := src.(pathkit.Opener)
	if !ok {
		return pathkit.NewPathError("copy", src.Path(), pathkit.ErrNotSupported)
	}

	stream, err := opener.Open(ctx)
	if err != nil {
		return err
	}
	defer stream.Close()

	modified, ok := src.ModTime()
	if !ok {
		modified = time.Now()
	}

	err = withWriter(p.file.File(), true, p.env.Log(), func(w *writer) error {
		if w.has(p.name) {
			if err := w.Remove(p.name); err != nil {
				return err
			}
		}
		return w.AddStream(p.name, modified, zip.Deflate, stream)
	})
	if err != nil {
		return err
	}

	p.entry, p.fetched = nil, false
	return nil
}

// Watch implements pathkit.Watcher. Any change to the archive file fires the
// token; filter is ignored.
func (p *Path) Watch(ctx context.Context, filter string) (pathkit.ChangeToken, error) {
	return p.file.Watch(ctx, "")
}

// HandleExtension opens the archive at path and navigates into it.
func HandleExtension(ctx context.Context, env *pathkit.Env, path string, nav pathkit.Navigator) error {
	p, err := FromString(env, path)
	if err != nil {
		return err
	}
	return nav.Navigate(p)
}

// Ensure Path implements interfaces
var (
	_ pathkit.Path       = (*Path)(nil)
	_ pathkit.Creator    = (*Path)(nil)
	_ pathkit.Deleter    = (*Path)(nil)
	_ pathkit.Appender   = (*Path)(nil)
	_ pathkit.Opener     = (*Path)(nil)
	_ pathkit.CopyTarget = (*Path)(nil)
	_ pathkit.Describer  = (*Path)(nil)
	_ pathkit.Equaler    = (*Path)(nil)
	_ pathkit.Watcher    = (*Path)(nil)
)
