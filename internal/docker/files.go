package docker

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// copyDir recursively copies the app source into the build context,
// preserving file modes. Symlinks are followed as regular files; the build
// context is consumed by the backend, not served back.
func copyDir(src, dest string) error {
	return filepath.WalkDir(src, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, "walking %s", p)
		}

		rel, err := filepath.Rel(src, p)
		if err != nil {
			return errors.Wrapf(err, "relativizing %s", p)
		}
		target := filepath.Join(dest, rel)

		if d.IsDir() {
			if rel == "." {
				return nil
			}
			return os.MkdirAll(target, 0o755)
		}

		return copyFile(p, target)
	})
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "opening %s", src)
	}
	defer in.Close()

	fi, err := in.Stat()
	if err != nil {
		return errors.Wrapf(err, "reading mode of %s", src)
	}

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, fi.Mode().Perm())
	if err != nil {
		return errors.Wrapf(err, "creating %s", dest)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return errors.Wrapf(err, "copying %s", src)
	}
	return out.Close()
}
