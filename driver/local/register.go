package local

import "github.com/gobeaver/pathkit"

func init() {
	Register(pathkit.Default())
}

// Register adds the "file" scheme to r.
func Register(r *pathkit.Registry) {
	r.RegisterScheme("file", func(env *pathkit.Env, path string) (pathkit.Path, error) {
		return FromString(env, path)
	})
}
