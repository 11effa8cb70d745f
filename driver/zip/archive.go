package zip

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gobeaver/pathkit"
	"go.uber.org/zap"
)

// Entry describes one archive entry.
type Entry struct {
	Name     string
	IsDir    bool
	Size     int64 // uncompressed
	Modified time.Time
	// Implicit is set for directories that have no entry of their own but
	// are implied by deeper entries ("a/b/c" implies "a/" and "a/b/").
	Implicit bool
}

// readEntry builds the descriptor of f. It reads the local file header, so
// a damaged entry fails here rather than later.
func readEntry(f *zip.File) (*Entry, error) {
	if _, err := f.DataOffset(); err != nil {
		return nil, err
	}
	return &Entry{
		Name:     f.Name,
		IsDir:    strings.HasSuffix(f.Name, "/") || f.FileInfo().IsDir(),
		Size:     int64(f.UncompressedSize64),
		Modified: f.Modified,
	}, nil
}

func implicitEntry(name string) *Entry {
	return &Entry{Name: name, IsDir: true, Implicit: true}
}

// findEntry looks name up in r. A name without trailing slash also matches
// its directory form, and a directory only implied by deeper entries yields
// an implicit descriptor. It returns nil when nothing matches.
func findEntry(r *zip.Reader, name string) (*zip.File, *Entry) {
	dirName := name
	if !strings.HasSuffix(dirName, "/") {
		dirName += "/"
	}

	var dirFile *zip.File
	implied := false
	for _, f := range r.File {
		switch {
		case f.Name == name:
			return f, nil
		case f.Name == dirName:
			dirFile = f
		case strings.HasPrefix(f.Name, dirName):
			implied = true
		}
	}
	if dirFile != nil {
		return dirFile, nil
	}
	if implied {
		return nil, implicitEntry(dirName)
	}
	return nil, nil
}

// withReader opens the archive, runs fn and closes the archive again on
// every exit path.
func withReader(archive string, fn func(r *zip.Reader) error) error {
	rc, err := zip.OpenReader(archive)
	if err != nil {
		return pathkit.WrapPathErr("open", archive, err)
	}
	defer rc.Close()

	return fn(&rc.Reader)
}

// withWriter opens a write session on the archive, runs fn and commits the
// session. When fn fails the session is discarded and the archive is left
// untouched. create allows starting a new archive when none exists.
func withWriter(archive string, create bool, log *zap.Logger, fn func(w *writer) error) error {
	w, err := openWriter(archive, create, log)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if !committed {
			w.abort()
		}
	}()

	if err := fn(w); err != nil {
		return err
	}
	committed = true
	return w.commit()
}

// writer is a write session. archive/zip cannot change an archive in place,
// so commit writes surviving entries (copied raw, without recompression)
// and the new ones to a temp file which then replaces the archive.
type writer struct {
	path    string
	log     *zap.Logger
	src     *zip.ReadCloser // nil for a new archive
	removed map[string]bool
	added   []*pendingEntry
	dirty   bool
}

type pendingEntry struct {
	header  *zip.FileHeader
	content []byte
}

func openWriter(archive string, create bool, log *zap.Logger) (*writer, error) {
	w := &writer{
		path:    archive,
		log:     log,
		removed: make(map[string]bool),
	}

	info, err := os.Stat(archive)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if !create {
			return nil, pathkit.WrapPathErr("open", archive, pathkit.ErrNotExist)
		}
		w.dirty = true
		return w, nil
	case err != nil:
		return nil, pathkit.WrapPathErr("open", archive, err)
	case info.IsDir():
		return nil, pathkit.WrapPathErr("open", archive, pathkit.ErrIsDir)
	case info.Size() == 0:
		// an empty file is an empty archive
		return w, nil
	}

	src, err := zip.OpenReader(archive)
	if err != nil {
		return nil, pathkit.WrapPathErr("open", archive, err)
	}
	w.src = src
	return w, nil
}

// has reports whether name is present in the session.
func (w *writer) has(name string) bool {
	for _, a := range w.added {
		if a.header.Name == name {
			return true
		}
	}
	if w.src == nil || w.removed[name] {
		return false
	}
	for _, f := range w.src.File {
		if f.Name == name {
			return true
		}
	}
	return false
}

// AddDirectory adds a zero-size directory entry. name must end with "/".
func (w *writer) AddDirectory(name string, modified time.Time) error {
	if w.has(name) {
		return pathkit.NewPathError("create", name, pathkit.ErrExist)
	}

	header := &zip.FileHeader{
		Name:     name,
		Method:   zip.Store,
		Modified: modified,
	}
	header.SetMode(os.ModeDir | 0755)

	w.added = append(w.added, &pendingEntry{header: header})
	w.dirty = true
	return nil
}

// AddStream adds a file entry with the content of r.
func (w *writer) AddStream(name string, modified time.Time, method uint16, r io.Reader) error {
	if w.has(name) {
		return pathkit.NewPathError("write", name, pathkit.ErrExist)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return pathkit.NewPathError("write", name, err)
	}

	header := &zip.FileHeader{
		Name:     name,
		Method:   method,
		Modified: modified,
	}
	header.SetMode(0644)

	w.added = append(w.added, &pendingEntry{header: header, content: data})
	w.dirty = true
	return nil
}

// Remove drops the entry called name. Children of a directory entry are
// kept.
func (w *writer) Remove(name string) error {
	for i, a := range w.added {
		if a.header.Name == name {
			w.added = append(w.added[:i], w.added[i+1:]...)
			return nil
		}
	}
	if !w.has(name) {
		return pathkit.NewPathError("delete", name, pathkit.ErrNotExist)
	}
	w.removed[name] = true
	w.dirty = true
	return nil
}

func (w *writer) abort() {
	if w.src != nil {
		w.src.Close()
		w.src = nil
	}
}

func (w *writer) commit() error {
	if !w.dirty {
		w.abort()
		return nil
	}
	defer w.abort()

	tmp, err := os.CreateTemp(filepath.Dir(w.path), filepath.Base(w.path)+".*.tmp")
	if err != nil {
		return pathkit.WrapPathErr("write", w.path, err)
	}
	tmpPath := tmp.Name()

	if err := w.writeTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return pathkit.WrapPathErr("write", w.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return pathkit.WrapPathErr("write", w.path, err)
	}

	// release the source before replacing the file it reads from
	w.abort()

	if err := os.Rename(tmpPath, w.path); err != nil {
		os.Remove(tmpPath)
		return pathkit.WrapPathErr("write", w.path, err)
	}

	w.log.Debug("archive rewritten",
		zap.String("archive", w.path),
		zap.Int("added", len(w.added)),
		zap.Int("removed", len(w.removed)))
	return nil
}

func (w *writer) writeTo(out io.Writer) error {
	zw := zip.NewWriter(out)

	if w.src != nil {
		for _, f := range w.src.File {
			if w.removed[f.Name] {
				continue
			}
			if err := zw.Copy(f); err != nil {
				zw.Close()
				return fmt.Errorf("copy %s: %w", f.Name, err)
			}
		}
	}

	for _, a := range w.added {
		fw, err := zw.CreateHeader(a.header)
		if err != nil {
			zw.Close()
			return fmt.Errorf("add %s: %w", a.header.Name, err)
		}
		if _, err := io.Copy(fw, bytes.NewReader(a.content)); err != nil {
			zw.Close()
			return fmt.Errorf("add %s: %w", a.header.Name, err)
		}
	}

	return zw.Close()
}
