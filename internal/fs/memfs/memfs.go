// Package memfs is an in-memory fs.FileSystem: the boot image's fixed set
// of files (the shell's /fib.bin demo binaries, any files ls/cat read),
// built once at boot from linked-in byte slices rather than read from an
// SD card. It exists because this kernel's FAT32 driver is out of scope
// (see DESIGN.md) while internal/shell and internal/proc still need a real
// fs.FileSystem to exercise against.
package memfs

import (
	"bytes"
	"io"
	"strings"

	"mazarin/internal/fs"
)

// file is a read-only in-memory fs.File.
type file struct {
	r *bytes.Reader
}

func (f *file) Size() (int64, error) { return f.r.Size(), nil }

func (f *file) Read(p []byte) (int, error) { return f.r.Read(p) }

// entry is one named fs.Entry: either a file or a directory, never both.
type entry struct {
	name string
	f    *file
	d    *dir
}

func (e *entry) Name() string { return e.name }

// Attrs reports synthetic attributes: directories set Dir, files set
// Archive (matching the DOS convention that a freshly-written file carries
// the archive bit), and any entry whose name starts with "." sets Hidden.
// There is no on-disk metadata to read ReadOnly/System/VolumeID from, so
// those are always false.
func (e *entry) Attrs() fs.Attrs {
	return fs.Attrs{
		Hidden:  strings.HasPrefix(e.name, "."),
		Dir:     e.d != nil,
		Archive: e.f != nil,
	}
}

func (e *entry) AsFile() (fs.File, bool) {
	if e.f == nil {
		return nil, false
	}
	return e.f, true
}

func (e *entry) AsDir() (fs.Dir, bool) {
	if e.d == nil {
		return nil, false
	}
	return e.d, true
}

// dir is an in-memory directory: a flat, ordered list of child entries.
type dir struct {
	children []*entry
}

func (d *dir) Entries() ([]fs.Entry, error) {
	out := make([]fs.Entry, len(d.children))
	for i, c := range d.children {
		out[i] = c
	}
	return out, nil
}

// FS is the whole in-memory filesystem, rooted at root.
type FS struct {
	root *dir
}

// New builds an FS from a flat map of absolute paths ("/fib.bin") to file
// contents. Intermediate directories are synthesized automatically.
func New(files map[string][]byte) *FS {
	root := &dir{}
	fsys := &FS{root: root}
	for path, data := range files {
		fsys.put(path, data)
	}
	return fsys
}

func (fsys *FS) put(path string, data []byte) {
	path = strings.TrimPrefix(path, "/")
	parts := strings.Split(path, "/")

	cur := fsys.root
	for _, name := range parts[:len(parts)-1] {
		cur = cur.mkdir(name)
	}
	leaf := parts[len(parts)-1]
	cur.children = append(cur.children, &entry{
		name: leaf,
		f:    &file{r: bytes.NewReader(data)},
	})
}

func (d *dir) mkdir(name string) *dir {
	for _, c := range d.children {
		if c.name == name && c.d != nil {
			return c.d
		}
	}
	sub := &dir{}
	d.children = append(d.children, &entry{name: name, d: sub})
	return sub
}

// Open resolves an absolute, slash-separated path to its Entry.
func (fsys *FS) Open(path string) (fs.Entry, error) {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return &entry{name: "/", d: fsys.root}, nil
	}
	parts := strings.Split(path, "/")

	cur := fsys.root
	for i, name := range parts {
		child := find(cur, name)
		if child == nil {
			return nil, errNotFound(path)
		}
		if i == len(parts)-1 {
			return child, nil
		}
		if child.d == nil {
			return nil, errNotFound(path)
		}
		cur = child.d
	}
	return nil, errNotFound(path)
}

func find(d *dir, name string) *entry {
	for _, c := range d.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

type notFoundError string

func (e notFoundError) Error() string { return "memfs: " + string(e) + " not found" }

func errNotFound(path string) error { return notFoundError(path) }

var _ io.Reader = (*file)(nil)
