package testutil

import (
	"archive/tar"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/klauspost/compress/gzip"
)

// Entry is one member of a test archive.
// Dir, Symlink and Hardlink select the entry type; otherwise it is a regular file.
type Entry struct {
	Name     string
	Body     string
	Mode     int64
	Dir      bool
	Linkname string
	Symlink  bool
	Hardlink bool
}

// TarGz builds a gzip-compressed tar archive from entries, in order.
// t is the active test.
func TarGz(t *testing.T, entries ...Entry) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for _, e := range entries {
		header := &tar.Header{Name: e.Name, Mode: e.Mode}
		switch {
		case e.Dir:
			header.Typeflag = tar.TypeDir
			if header.Mode == 0 {
				header.Mode = 0o755
			}
		case e.Symlink:
			header.Typeflag = tar.TypeSymlink
			header.Linkname = e.Linkname
		case e.Hardlink:
			header.Typeflag = tar.TypeLink
			header.Linkname = e.Linkname
		default:
			header.Typeflag = tar.TypeReg
			header.Size = int64(len(e.Body))
			if header.Mode == 0 {
				header.Mode = 0o644
			}
		}
		if err := tw.WriteHeader(header); err != nil {
			t.Fatalf("write header %s: %v", e.Name, err)
		}
		if header.Typeflag == tar.TypeReg {
			if _, err := tw.Write([]byte(e.Body)); err != nil {
				t.Fatalf("write body %s: %v", e.Name, err)
			}
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("close tar: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
	return buf.Bytes()
}

// ReleaseArchive builds the usual release layout: a single top-level folder
// holding an executable named name plus a README.
func ReleaseArchive(t *testing.T, folder string, name string, script string) []byte {
	t.Helper()
	return TarGz(t,
		Entry{Name: folder + "/", Dir: true},
		Entry{Name: folder + "/" + name, Body: script, Mode: 0o755},
		Entry{Name: folder + "/README.md", Body: "# " + name + "\n"},
	)
}

// WriteStubWithExit writes an executable shell stub that exits with the provided code.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteStubWithExit(t *testing.T, dir string, name string, exitCode int) string {
	t.Helper()
	return WriteScript(t, dir, name, fmt.Sprintf("#!/bin/sh\nexit %d\n", exitCode))
}

// WriteScript writes an executable file with the given content and returns its path.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteScript(t *testing.T, dir string, name string, content string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

// ListTree returns every path under root, relative and slash-separated, sorted.
// t is the active test; root is the directory to walk.
func ListTree(t *testing.T, root string) []string {
	t.Helper()
	var paths []string
	err := filepath.Walk(root, func(path string, _ os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
	sort.Strings(paths)
	return paths
}
