package deploy

import (
	"archive/tar"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"git.handmade.network/hmn/mashinka/src/oops"
	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
)

// Archive writes every file and directory under root to w as a gzipped tar.
// Entry names are relative to root and use forward slashes. It returns the
// number of regular files written.
func Archive(root string, w io.Writer) (int, error) {
	gz := gzip.NewWriter(w)
	tw := tar.NewWriter(gz)

	files := 0
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() && !info.IsDir() {
			return nil
		}
		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		header.Name = filepath.ToSlash(rel)
		if info.IsDir() {
			header.Name += "/"
		}
		if err := tw.WriteHeader(header); err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		f, err := os.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()
		if _, err := io.Copy(tw, f); err != nil {
			return err
		}
		files++
		return nil
	})
	if err != nil {
		return 0, oops.New(err, "failed to archive %s", root)
	}

	if err := tw.Close(); err != nil {
		return 0, oops.New(err, "failed to finish tar stream")
	}
	if err := gz.Close(); err != nil {
		return 0, oops.New(err, "failed to finish gzip stream")
	}
	return files, nil
}

// ArchiveToTemp archives root into a uniquely named file in the temp
// directory. The caller removes the file.
func ArchiveToTemp(root string) (archivePath string, files int, err error) {
	archivePath = filepath.Join(os.TempDir(), "mashinka-build-"+uuid.New().String()+".tar.gz")
	f, err := os.Create(archivePath)
	if err != nil {
		return "", 0, oops.New(err, "failed to create archive file")
	}

	files, err = Archive(root, f)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = oops.New(closeErr, "failed to close archive file")
	}
	if err != nil {
		os.Remove(archivePath)
		return "", 0, err
	}
	return archivePath, files, nil
}

// Extract unpacks a gzipped tar read from r into dst and returns the number of
// regular files written. Only directories and regular files are unpacked.
func Extract(r io.Reader, dst string) (int, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return 0, oops.New(err, "archive is not gzipped")
	}
	defer gz.Close()
	tr := tar.NewReader(gz)

	files := 0
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return files, oops.New(err, "failed to read archive")
		}

		// Cleaning against "/" keeps "../" entries inside dst.
		name := path.Clean("/" + header.Name)
		if name == "/" {
			continue
		}
		target := filepath.Join(dst, filepath.FromSlash(name))

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return files, oops.New(err, "failed to create %s", target)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return files, oops.New(err, "failed to create %s", filepath.Dir(target))
			}
			f, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
			if err != nil {
				return files, oops.New(err, "failed to create %s", target)
			}
			_, err = io.Copy(f, tr)
			f.Close()
			if err != nil {
				return files, oops.New(err, "failed to write %s", target)
			}
			files++
		}
	}
	return files, nil
}
