package wall

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/matzehuels/photowall/pkg/probe"
)

var captionEscaper = strings.NewReplacer(`'`, `\'`, `"`, `\"`)

// Caption derives the caption of a photo from its path.
//
// Photo libraries laid out as .../<marker>/<theme>/<year>/<album>/<file> are
// captioned "<album> (<theme>)"; the layout is looked up after following one
// symbolic link. Any other file is captioned with its base name minus the
// extension, underscores becoming line breaks.
func Caption(path, marker string) string {
	if marker != "" {
		link := filepath.ToSlash(probe.ResolveOneLevel(path))
		sep := "/" + marker + "/"
		if i := strings.Index(link, sep); i >= 0 {
			parts := strings.Split(link[i+len(sep):], "/")
			if len(parts) == 4 {
				theme, album := parts[0], parts[2]
				return fmt.Sprintf("%s (%s)", album, theme)
			}
		}
	}

	name := filepath.Base(path)
	if ext := filepath.Ext(name); ext != "" && ext != name {
		name = strings.TrimSuffix(name, ext)
	}
	return strings.ReplaceAll(name, "_", "\n")
}

// EscapeCaption backslash-escapes single and double quotes.
func EscapeCaption(s string) string {
	return captionEscaper.Replace(s)
}
