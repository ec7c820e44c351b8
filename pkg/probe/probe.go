// Package probe classifies candidate files before they are opened.
//
// Composers resolve one level of symbolic link with [ResolveOneLevel] and then
// ask a [Probe] whether the result is an image. The probe is optional: with
// no probe the resolved path is trusted.
package probe

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Probe classifies files by content.
type Probe interface {
	// Classify returns a MIME-like descriptor such as "image/jpeg".
	Classify(path string) (string, error)
}

// Magic classifies files by sniffing their leading bytes.
type Magic struct{}

// Classify implements Probe.
func (Magic) Classify(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "inode/directory", nil
	}
	m, err := mimetype.DetectFile(path)
	if err != nil {
		return "", err
	}
	return m.String(), nil
}

// IsImage reports whether a descriptor names an image type.
func IsImage(descriptor string) bool {
	return strings.HasPrefix(descriptor, "image/")
}

// ResolveOneLevel returns the target of path if path is a symbolic link, and
// path itself otherwise. Only one level is followed; relative targets are
// taken relative to the link's directory.
func ResolveOneLevel(path string) string {
	target, err := os.Readlink(path)
	if err != nil {
		return path
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	return target
}

var _ Probe = Magic{}
