package pathkit

import (
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// Filter keeps the items whose name matches the glob pattern. Patterns use
// gobwas/glob syntax ("*.txt", "{a,b}*", "[!.]*"); matching is
// case-insensitive. An empty pattern keeps everything.
func Filter(items []Path, pattern string) ([]Path, error) {
	if pattern == "" {
		return items, nil
	}

	g, err := glob.Compile(strings.ToLower(pattern))
	if err != nil {
		return nil, err
	}

	out := make([]Path, 0, len(items))
	for _, item := range items {
		if g.Match(strings.ToLower(item.Name())) {
			out = append(out, item)
		}
	}
	return out, nil
}

// SortItems orders items the way panels show them: by Sort priority, then by
// name.
func SortItems(items []Path) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Sort() != b.Sort() {
			return a.Sort() < b.Sort()
		}
		return strings.ToLower(a.Name()) < strings.ToLower(b.Name())
	})
}
