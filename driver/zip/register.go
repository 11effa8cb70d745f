package zip

import "github.com/gobeaver/pathkit"

func init() {
	Register(pathkit.Default(), pathkit.DefaultArchiveExtensions...)
}

// Register adds the "zip" scheme to r and routes the given file extensions
// to archive navigation.
func Register(r *pathkit.Registry, extensions ...string) {
	r.RegisterScheme(Scheme, func(env *pathkit.Env, path string) (pathkit.Path, error) {
		return FromString(env, path)
	})
	for _, ext := range extensions {
		r.RegisterExtension(ext, HandleExtension)
	}
}
