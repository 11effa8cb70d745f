package favorites

import "github.com/gobeaver/pathkit"

func init() {
	Register(pathkit.Default())
}

// Register adds the "fav" scheme to r. Whatever follows "fav://" is ignored.
func Register(r *pathkit.Registry) {
	r.RegisterScheme(Scheme, func(env *pathkit.Env, _ string) (pathkit.Path, error) {
		return New(env), nil
	})
}
