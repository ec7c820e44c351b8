package wall

import (
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/photowall/pkg/backend"
	perrors "github.com/matzehuels/photowall/pkg/errors"
)

// SaveAtomic saves img to path through a temporary file in the same
// directory and a rename, so readers of path never see a partial image.
func SaveAtomic(b backend.Backend, img *backend.Image, path string) error {
	tmp, err := siblingTemp(path)
	if err != nil {
		return perrors.Composition("create temporary file for "+path, err)
	}
	if err := b.Save(img, tmp); err != nil {
		os.Remove(tmp)
		return backend.Failed("save "+path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return perrors.Composition("rename "+tmp+" to "+path, err)
	}
	return nil
}

// CopyAtomic replaces dst with a copy of src through a temporary file in the
// directory of dst.
func CopyAtomic(src, dst string) error {
	op := "copy " + src + " to " + dst
	in, err := os.Open(src)
	if err != nil {
		return perrors.Composition(op, err)
	}
	defer in.Close()

	tmp, err := siblingTemp(dst)
	if err != nil {
		return perrors.Composition(op, err)
	}
	out, err := os.OpenFile(tmp, os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		os.Remove(tmp)
		return perrors.Composition(op, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(tmp)
		return perrors.Composition(op, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return perrors.Composition(op, err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return perrors.Composition(op, err)
	}
	return nil
}

// siblingTemp creates an empty temporary file next to path, keeping its
// extension so encoders pick the right format.
func siblingTemp(path string) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(path), ".photowall-*"+filepath.Ext(path))
	if err != nil {
		return "", err
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		os.Remove(name)
		return "", err
	}
	return name, nil
}
