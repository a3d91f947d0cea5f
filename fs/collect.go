package fs

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/diskreport"
)

// Collector expands paths into report files. Directories are walked for
// supported extensions and ZIP archives are extracted, recursively, into
// TempDir.
type Collector struct {
	// TempDir receives extracted archive members. Archives are skipped
	// with an error entry when it is empty.
	TempDir string
}

// Collect returns the report files found under paths in order. Explicit
// file paths are kept whatever their extension so the caller can report
// unsupported types. Unreadable archives become error entries.
// Returns ENOTFOUND if a path does not exist.
func (c *Collector) Collect(paths []string) ([]diskreport.InputFile, []diskreport.ParseErrorEntry, error) {
	var files []diskreport.InputFile
	var errs []diskreport.ParseErrorEntry

	for _, p := range paths {
		info, err := os.Stat(p)
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, nil, diskreport.Errorf(diskreport.ENOTFOUND, "Path not found: %s", p)
		} else if err != nil {
			return nil, nil, fmt.Errorf("stat %s: %w", p, err)
		}

		if info.IsDir() {
			found, archiveErrs, err := c.walk(p)
			if err != nil {
				return nil, nil, err
			}
			files = append(files, found...)
			errs = append(errs, archiveErrs...)
			continue
		}

		if IsArchive(p) {
			extracted, err := c.extract(p)
			if err != nil {
				errs = append(errs, diskreport.ParseErrorEntry{
					FileName:     filepath.Base(p),
					ErrorMessage: fmt.Sprintf("Failed to process: %v", err),
				})
				continue
			}
			files = append(files, extracted...)
			continue
		}

		files = append(files, diskreport.InputFile{Path: p, Name: filepath.Base(p)})
	}
	return files, errs, nil
}

// walk collects supported files and archives below root in lexical order.
func (c *Collector) walk(root string) ([]diskreport.InputFile, []diskreport.ParseErrorEntry, error) {
	var files []diskreport.InputFile
	var errs []diskreport.ParseErrorEntry

	err := filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root && isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		switch {
		case IsArchive(path):
			extracted, err := c.extract(path)
			if err != nil {
				errs = append(errs, diskreport.ParseErrorEntry{
					FileName:     d.Name(),
					ErrorMessage: fmt.Sprintf("Failed to process: %v", err),
				})
				return nil
			}
			files = append(files, extracted...)
		case diskreport.DetectFormat(path) != diskreport.FormatUnknown:
			files = append(files, diskreport.InputFile{Path: path, Name: d.Name()})
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, errs, nil
}

// extract unpacks supported members of a ZIP archive into a fresh
// directory under TempDir. Nested archives are extracted in place of the
// member. Unsupported members are dropped.
func (c *Collector) extract(archive string) ([]diskreport.InputFile, error) {
	if c.TempDir == "" {
		return nil, errors.New("no directory for archive extraction")
	}
	dir, err := os.MkdirTemp(c.TempDir, "zip-")
	if err != nil {
		return nil, err
	}

	r, err := zip.OpenReader(archive)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var files []diskreport.InputFile
	for _, m := range r.File {
		if m.FileInfo().IsDir() || skipMember(m.Name) {
			continue
		}
		nested := IsArchive(m.Name)
		if !nested && diskreport.DetectFormat(m.Name) == diskreport.FormatUnknown {
			continue
		}

		dst, err := memberPath(dir, m.Name)
		if err != nil {
			return nil, err
		}
		if err := writeMember(m, dst); err != nil {
			return nil, fmt.Errorf("extract %s: %w", m.Name, err)
		}

		if nested {
			inner, err := c.extract(dst)
			if err != nil {
				return nil, fmt.Errorf("nested archive %s: %w", m.Name, err)
			}
			files = append(files, inner...)
			continue
		}
		files = append(files, diskreport.InputFile{Path: dst, Name: filepath.Base(m.Name)})
	}
	return files, nil
}

// IsArchive reports whether path names a ZIP archive.
func IsArchive(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".zip")
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// skipMember drops directory entries, dot files and macOS resource forks.
func skipMember(name string) bool {
	return strings.HasSuffix(name, "/") ||
		strings.HasPrefix(name, "__MACOSX") ||
		isHidden(filepath.Base(name))
}

// memberPath resolves an archive member inside dir, rejecting names that
// escape it.
func memberPath(dir, name string) (string, error) {
	dst := filepath.Join(dir, filepath.FromSlash(name))
	rel, err := filepath.Rel(dir, dst)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", diskreport.Errorf(diskreport.EINVALID, "archive member escapes extraction directory: %s", name)
	}
	return dst, nil
}

func writeMember(m *zip.File, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	src, err := m.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
