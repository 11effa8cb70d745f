package pathkit

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// SchemeFactory builds a node from the part of a path that follows
// "scheme://".
type SchemeFactory func(env *Env, path string) (Path, error)

// ExtensionHandler is invoked when a file with a registered extension is
// activated. It usually builds a backend node and navigates into it.
type ExtensionHandler func(ctx context.Context, env *Env, path string, nav Navigator) error

// DefaultScheme handles strings that carry no "scheme://" prefix.
const DefaultScheme = "file"

const schemeSeparator = "://"

// Registry maps schemes and file extensions to backends.
//
// A registry is populated once at startup (the bundled drivers register
// themselves into Default from their init functions) and queried afterwards.
// Registering the same key again replaces the previous entry.
type Registry struct {
	mu         sync.RWMutex
	env        *Env
	schemes    map[string]SchemeFactory
	extensions map[string]ExtensionHandler
}

// NewRegistry creates an empty registry handing env to its factories.
func NewRegistry(env *Env) *Registry {
	if env == nil {
		env = &Env{}
	}
	return &Registry{
		env:        env,
		schemes:    make(map[string]SchemeFactory),
		extensions: make(map[string]ExtensionHandler),
	}
}

var defaultRegistry = NewRegistry(nil)

// Default returns the process-wide registry the drivers register into.
func Default() *Registry {
	return defaultRegistry
}

// RegisterScheme registers a scheme factory in the default registry.
func RegisterScheme(scheme string, factory SchemeFactory) {
	defaultRegistry.RegisterScheme(scheme, factory)
}

// RegisterExtension registers an extension handler in the default registry.
func RegisterExtension(ext string, handler ExtensionHandler) {
	defaultRegistry.RegisterExtension(ext, handler)
}

// Resolve resolves path with the default registry.
func Resolve(path string) (Path, error) {
	return defaultRegistry.Resolve(path)
}

// Env returns the collaborators handed to factories.
func (r *Registry) Env() *Env {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.env
}

// SetEnv replaces the collaborators handed to factories.
func (r *Registry) SetEnv(env *Env) {
	if env == nil {
		env = &Env{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.env = env
}

// RegisterScheme registers factory for scheme ("zip", "fav", ...).
func (r *Registry) RegisterScheme(scheme string, factory SchemeFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schemes[normalizeKey(scheme)] = factory
}

// RegisterExtension registers handler for ext, with or without leading dot.
func (r *Registry) RegisterExtension(ext string, handler ExtensionHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extensions[normalizeKey(ext)] = handler
}

// HasExtension reports whether a handler is registered for ext.
func (r *Registry) HasExtension(ext string) bool {
	if ext == "" {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.extensions[normalizeKey(ext)]
	return ok
}

// Schemes returns the registered schemes, sorted.
func (r *Registry) Schemes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.schemes)
}

// Extensions returns the registered extensions, sorted.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.extensions)
}

// Resolve turns a path string into a node. The scheme prefix selects the
// backend; strings without one go to DefaultScheme.
func (r *Registry) Resolve(path string) (Path, error) {
	scheme, rest := SplitScheme(path)

	r.mu.RLock()
	factory, ok := r.schemes[scheme]
	env := r.env
	r.mu.RUnlock()

	if !ok {
		return nil, NewPathError("resolve", path, ErrUnknownScheme)
	}
	return factory(env, rest)
}

// DispatchExtension hands path to the handler registered for its extension.
func (r *Registry) DispatchExtension(ctx context.Context, path string, nav Navigator) error {
	ext := ExtensionOf(path)

	r.mu.RLock()
	handler, ok := r.extensions[ext]
	env := r.env
	r.mu.RUnlock()

	if ext == "" || !ok {
		return NewPathError("dispatch", path, ErrNotSupported)
	}
	return handler(ctx, env, path, nav)
}

// SplitScheme splits "scheme://rest" into its lower-cased scheme and rest.
// Strings without a scheme yield DefaultScheme and the unchanged input.
func SplitScheme(path string) (scheme, rest string) {
	i := strings.Index(path, schemeSeparator)
	if i <= 0 || strings.ContainsAny(path[:i], `/\`) {
		return DefaultScheme, path
	}
	return normalizeKey(path[:i]), path[i+len(schemeSeparator):]
}

// ExtensionOf returns the lower-cased extension of path without the dot.
func ExtensionOf(path string) string {
	return normalizeKey(filepath.Ext(strings.TrimSuffix(path, "/")))
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(k), "."))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
