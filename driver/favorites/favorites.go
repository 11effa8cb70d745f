// Package favorites exposes the ten bookmark slots stored in the host
// preferences as a browsable node.
package favorites

import (
	"context"
	"strconv"
	"time"

	"github.com/gobeaver/pathkit"
)

// Scheme is the address prefix of the favorites root.
const Scheme = "fav"

// Slots is the number of bookmark slots.
const Slots = 10

// SlotKey returns the preference key of slot. Slot 10 shares key "fav.0"
// with slot 0, matching the digit keys 1..9 and 0 of a keyboard row.
func SlotKey(slot int) string {
	return "fav." + strconv.Itoa(slot%Slots)
}

// Assign stores target in slot (0..10). An empty target clears the slot.
func Assign(prefs pathkit.Preferences, slot int, target string) error {
	if slot < 0 || slot > Slots {
		return pathkit.NewPathError("assign", strconv.Itoa(slot), pathkit.ErrInvalidSlot)
	}
	if prefs == nil {
		return pathkit.NewPathError("assign", SlotKey(slot), pathkit.ErrNotSupported)
	}
	return prefs.Set(SlotKey(slot), target)
}

// Root is the favorites list. It has no parent and always exists.
type Root struct {
	env *pathkit.Env
}

// New returns the favorites root.
func New(env *pathkit.Env) *Root {
	return &Root{env: env}
}

// Path implements pathkit.Path
func (r *Root) Path() string { return Scheme + "://" }

// Name implements pathkit.Path
func (r *Root) Name() string { return r.env.Label() }

// Parent implements pathkit.Path
func (r *Root) Parent() (pathkit.Path, error) { return nil, nil }

// Items implements pathkit.Path. Slots are listed 1..9 then 0; empty slots
// are left out.
func (r *Root) Items(ctx context.Context) ([]pathkit.Path, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var prefs pathkit.Preferences
	if r.env != nil {
		prefs = r.env.Preferences
	}
	if prefs == nil {
		return nil, nil
	}

	var items []pathkit.Path
	for i := 1; i <= Slots; i++ {
		target, err := prefs.Get(SlotKey(i))
		if err != nil {
			return nil, pathkit.WrapPathErr("items", SlotKey(i), err)
		}
		if target == "" {
			continue
		}
		items = append(items, &Slot{env: r.env, target: target, index: i % Slots})
	}
	return items, nil
}

// Size implements pathkit.Path
func (r *Root) Size() (int64, bool) { return 0, false }

// ModTime implements pathkit.Path
func (r *Root) ModTime() (time.Time, bool) { return time.Time{}, false }

// Sort implements pathkit.Path
func (r *Root) Sort() int { return pathkit.SortDirectory }

// Icon implements pathkit.Path
func (r *Root) Icon() string { return pathkit.IconFavorite }

// Exists implements pathkit.Path
func (r *Root) Exists(ctx context.Context) (bool, error) { return true, nil }

// Supports implements pathkit.Path
func (r *Root) Supports(f pathkit.Feature) bool {
	switch f {
	case pathkit.FeatureChildren:
		return true
	case pathkit.FeatureView, pathkit.FeatureCopy, pathkit.FeatureDelete,
		pathkit.FeatureCreate, pathkit.FeatureRename, pathkit.FeatureEdit:
		return false
	}
	return false
}

// Slot is one bookmark. Its path and name are the bookmarked target.
type Slot struct {
	env    *pathkit.Env
	target string
	index  int
}

// Index returns the slot index (0..9).
func (s *Slot) Index() int { return s.index }

// Target returns the bookmarked path string.
func (s *Slot) Target() string { return s.target }

// Path implements pathkit.Path
func (s *Slot) Path() string { return s.target }

// Name implements pathkit.Path
func (s *Slot) Name() string { return s.target }

// Parent implements pathkit.Path
func (s *Slot) Parent() (pathkit.Path, error) { return New(s.env), nil }

// Items implements pathkit.Path
func (s *Slot) Items(ctx context.Context) ([]pathkit.Path, error) { return nil, nil }

// Size implements pathkit.Path. It reports the slot index, which panels
// display in the size column.
func (s *Slot) Size() (int64, bool) { return int64(s.index), true }

// ModTime implements pathkit.Path
func (s *Slot) ModTime() (time.Time, bool) { return time.Time{}, false }

// Sort implements pathkit.Path
func (s *Slot) Sort() int { return pathkit.SortDirectory }

// Icon implements pathkit.Path
func (s *Slot) Icon() string { return pathkit.IconFavorite }

// Exists implements pathkit.Path
func (s *Slot) Exists(ctx context.Context) (bool, error) { return true, nil }

// Supports implements pathkit.Path
func (s *Slot) Supports(f pathkit.Feature) bool {
	switch f {
	case pathkit.FeatureDelete:
		return true
	case pathkit.FeatureChildren, pathkit.FeatureView, pathkit.FeatureCopy,
		pathkit.FeatureCreate, pathkit.FeatureRename, pathkit.FeatureEdit:
		return false
	}
	return false
}

// Delete implements pathkit.Deleter. The slot is cleared; other slots keep
// their index.
func (s *Slot) Delete(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	var prefs pathkit.Preferences
	if s.env != nil {
		prefs = s.env.Preferences
	}
	return Assign(prefs, s.index, "")
}

// Activate implements pathkit.Activator. The target is resolved through the
// registry and shown in the panel.
func (s *Slot) Activate(ctx context.Context, r *pathkit.Registry, nav pathkit.Navigator) error {
	p, err := r.Resolve(s.target)
	if err != nil {
		return err
	}
	return nav.Navigate(p)
}

// Ensure types implement interfaces
var (
	_ pathkit.Path      = (*Root)(nil)
	_ pathkit.Path      = (*Slot)(nil)
	_ pathkit.Deleter   = (*Slot)(nil)
	_ pathkit.Activator = (*Slot)(nil)
)
