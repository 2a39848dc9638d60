package install

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/xmit-co/xmit-npm/internal/messages"
)

// extractTarGz unpacks a gzip-compressed tar stream into dest, dropping the
// first path component of every entry. Every write goes through an os.Root on
// dest, so links created by earlier entries cannot carry later ones outside it.
// It returns the number of entries written.
func extractTarGz(r io.Reader, dest string) (int, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return 0, fmt.Errorf(messages.InstallGzipFmt, err)
	}
	defer func() { _ = gz.Close() }()

	root, err := os.OpenRoot(dest)
	if err != nil {
		return 0, fmt.Errorf(messages.InstallOpenRootFmt, dest, err)
	}
	defer func() { _ = root.Close() }()

	tr := tar.NewReader(gz)
	written := 0
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return written, nil
		}
		if err != nil {
			return written, fmt.Errorf(messages.InstallReadEntryFmt, err)
		}

		rel, ok, err := stripFirstComponent(header.Name)
		if err != nil {
			return written, err
		}
		if !ok {
			continue
		}
		name, err := localName(rel)
		if err != nil {
			return written, err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := root.MkdirAll(name, 0o755); err != nil {
				return written, fmt.Errorf(messages.InstallCreateEntryDirFmt, rel, err)
			}
		case tar.TypeReg:
			if err := writeFile(root, name, tr, header.FileInfo().Mode().Perm()); err != nil {
				return written, fmt.Errorf(messages.InstallWriteEntryFmt, rel, err)
			}
		case tar.TypeSymlink:
			if err := writeSymlink(root, name, header.Linkname); err != nil {
				return written, err
			}
		case tar.TypeLink:
			linkRel, ok, err := stripFirstComponent(header.Linkname)
			if err != nil || !ok {
				return written, fmt.Errorf(messages.InstallIllegalLinkFmt, header.Name, header.Linkname)
			}
			source, err := localName(linkRel)
			if err != nil {
				return written, err
			}
			if err := mkdirParent(root, name); err != nil {
				return written, fmt.Errorf(messages.InstallCreateEntryDirFmt, rel, err)
			}
			if err := root.Link(source, name); err != nil {
				return written, fmt.Errorf(messages.InstallLinkEntryFmt, rel, err)
			}
		default:
			// Devices, fifos and the like never appear in release archives.
			continue
		}
		written++
	}
}

// stripFirstComponent removes the leading path segment of a tar entry name.
// ok is false for entries that have nothing left, such as the top-level folder itself.
func stripFirstComponent(name string) (string, bool, error) {
	slashed := strings.ReplaceAll(name, "\\", "/")
	for _, part := range strings.Split(slashed, "/") {
		if part == ".." {
			return "", false, fmt.Errorf(messages.InstallIllegalPathFmt, name)
		}
	}
	cleaned := strings.TrimPrefix(path.Clean("/"+slashed), "/")
	_, rest, found := strings.Cut(cleaned, "/")
	if !found || rest == "" {
		return "", false, nil
	}
	return rest, true, nil
}

// localName converts a stripped slash path to a name relative to the install root.
func localName(rel string) (string, error) {
	name := filepath.FromSlash(rel)
	if !filepath.IsLocal(name) {
		return "", fmt.Errorf(messages.InstallIllegalPathFmt, rel)
	}
	return name, nil
}

func mkdirParent(root *os.Root, name string) error {
	dir := filepath.Dir(name)
	if dir == "." {
		return nil
	}
	return root.MkdirAll(dir, 0o755)
}

func writeFile(root *os.Root, name string, r io.Reader, perm os.FileMode) error {
	if perm == 0 {
		perm = 0o644
	}
	if err := mkdirParent(root, name); err != nil {
		return err
	}
	out, err := root.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// writeSymlink creates name pointing at linkname. os.Root does not check link
// targets, so targets that leave the root, even on paper, are rejected here.
func writeSymlink(root *os.Root, name string, linkname string) error {
	target := filepath.FromSlash(linkname)
	if filepath.IsAbs(target) || strings.HasPrefix(linkname, "/") {
		return fmt.Errorf(messages.InstallIllegalLinkFmt, name, linkname)
	}
	if !filepath.IsLocal(filepath.Join(filepath.Dir(name), target)) {
		return fmt.Errorf(messages.InstallIllegalLinkFmt, name, linkname)
	}
	if err := mkdirParent(root, name); err != nil {
		return fmt.Errorf(messages.InstallCreateEntryDirFmt, name, err)
	}
	if err := root.Symlink(target, name); err != nil {
		return fmt.Errorf(messages.InstallLinkEntryFmt, name, err)
	}
	return nil
}
