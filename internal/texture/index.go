package texture

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

// Index maps lowercase file stems to paths under an asset directory.
// When two files share a stem, the format earlier in Extensions wins, so an
// alpha-capable PNG or TGA shadows a JPEG of the same name.
type Index struct {
	entries map[string]string // stem → full path
}

// BuildIndex walks dir recursively for supported image files. A missing or
// unreadable directory yields an empty index.
func BuildIndex(dir string) *Index {
	idx := &Index{entries: make(map[string]string)}
	if dir == "" {
		return idx
	}

	filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		rank := extRank(path)
		if rank < 0 {
			return nil
		}
		stem := stemOf(path)
		if existing, ok := idx.entries[stem]; !ok || rank < extRank(existing) {
			idx.entries[stem] = path
		}
		return nil
	})
	return idx
}

func extRank(path string) int {
	return slices.Index(Extensions, strings.ToLower(filepath.Ext(path)))
}

func stemOf(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	base := filepath.Base(name)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}

// ResolvePath returns the file for an asset name. Directory prefixes and
// extensions in name are ignored: "sprites/Hero.png" resolves like "hero".
func (idx *Index) ResolvePath(name string) (string, bool) {
	path, ok := idx.entries[stemOf(name)]
	return path, ok
}

// Len returns the number of indexed assets.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Names returns the indexed stems in sorted order.
func (idx *Index) Names() []string {
	names := make([]string, 0, len(idx.entries))
	for k := range idx.entries {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}
